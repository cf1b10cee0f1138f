package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFile(body func(*jen.File)) *jen.File {
	f := jen.NewFile("model")
	body(f)
	return f
}

func TestWriterWrite(t *testing.T) {
	dir := t.TempDir()
	files := map[string]*jen.File{
		"user_gen.go": testFile(func(f *jen.File) {
			f.Const().Id("UserTable").Op("=").Lit("users")
		}),
		"post_gen.go": testFile(func(f *jen.File) {
			f.Const().Id("PostTable").Op("=").Lit("posts")
		}),
	}

	w := NewWriter(dir).WithWorkers(2)
	require.NoError(t, w.Write(context.Background(), files))

	for name := range files {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Contains(t, string(raw), "package model")
	}
	m := w.Metrics()
	assert.Equal(t, 2, m.FilesGenerated)
	assert.Positive(t, m.TotalBytes)
}

func TestWriterAddsImports(t *testing.T) {
	dir := t.TempDir()
	files := map[string]*jen.File{
		"clock_gen.go": testFile(func(f *jen.File) {
			// Verbatim type token, no import registered with jennifer. The
			// goimports pass must resolve it.
			f.Func().Id("Now").Params().Id("time.Time").Block(
				jen.Return(jen.Id("time.Now").Call()),
			)
		}),
	}
	require.NoError(t, NewWriter(dir).Write(context.Background(), files))

	raw, err := os.ReadFile(filepath.Join(dir, "clock_gen.go"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"time"`)
}

func TestWriterCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	files := map[string]*jen.File{
		"user_gen.go": testFile(func(f *jen.File) {
			f.Const().Id("UserTable").Op("=").Lit("users")
		}),
	}
	err := NewWriter(t.TempDir()).Write(ctx, files)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriterInvalidOutput(t *testing.T) {
	dir := t.TempDir()
	files := map[string]*jen.File{
		"broken_gen.go": testFile(func(f *jen.File) {
			// Renders to source that does not parse.
			f.Id("not a declaration")
		}),
	}
	err := NewWriter(dir).Write(context.Background(), files)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	// Nothing is written for the broken file.
	_, statErr := os.Stat(filepath.Join(dir, "broken_gen.go"))
	assert.True(t, os.IsNotExist(statErr))
}
