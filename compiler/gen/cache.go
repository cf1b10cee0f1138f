package gen

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/tablegen/compiler/load"
)

// SnapshotFile is the name of the snapshot written next to the generated
// files. It lets repeated runs (notably watch mode) skip regeneration when
// nothing changed.
const SnapshotFile = ".tablegen.snapshot"

// Snapshot is a digest of one generation run: the configuration and every
// parsed descriptor that fed it.
type Snapshot struct {
	Sum string `msgpack:"sum"`
}

// snapshotInput is the canonical encoding the digest is computed over.
// Descriptors are flat and fully exported, so msgpack encoding is stable.
type snapshotInput struct {
	Package string        `msgpack:"package"`
	Header  string        `msgpack:"header"`
	Dialect string        `msgpack:"dialect"`
	Tables  []*load.Table `msgpack:"tables"`
}

// ComputeSnapshot returns the snapshot of a generation run over the given
// descriptors.
func ComputeSnapshot(c *Config, tables []*load.Table) (*Snapshot, error) {
	in := snapshotInput{
		Package: c.Package,
		Header:  c.Header,
		Tables:  tables,
	}
	if c.Dialect != nil {
		in.Dialect = c.Dialect.Name()
	}
	raw, err := msgpack.Marshal(in)
	if err != nil {
		return nil, NewGenerationError("snapshot", "", "encode snapshot", err)
	}
	sum := sha256.Sum256(raw)
	return &Snapshot{Sum: hex.EncodeToString(sum[:])}, nil
}

// ReadSnapshot loads the snapshot of a previous run from dir. A missing or
// corrupt snapshot reads as absent, never as an error: the caller falls back
// to a full regeneration.
func ReadSnapshot(dir string) (*Snapshot, bool) {
	raw, err := os.ReadFile(filepath.Join(dir, SnapshotFile))
	if err != nil {
		return nil, false
	}
	var s Snapshot
	if err := msgpack.Unmarshal(raw, &s); err != nil || s.Sum == "" {
		return nil, false
	}
	return &s, true
}

// Write stores the snapshot in dir.
func (s *Snapshot) Write(dir string) error {
	raw, err := msgpack.Marshal(s)
	if err != nil {
		return NewGenerationError("snapshot", "", "encode snapshot", err)
	}
	if err := os.WriteFile(filepath.Join(dir, SnapshotFile), raw, 0o644); err != nil {
		return NewGenerationError("snapshot", SnapshotFile, "write snapshot", err)
	}
	return nil
}

// Equal reports whether both snapshots digest the same input.
func (s *Snapshot) Equal(other *Snapshot) bool {
	return other != nil && s.Sum == other.Sum
}
