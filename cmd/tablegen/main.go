// Package main is the entry point of the tablegen CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/syssam/tablegen/compiler/gen"
	gensql "github.com/syssam/tablegen/compiler/gen/sql"
	"github.com/syssam/tablegen/compiler/load"
)

var (
	// Version information (set by build)
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "tablegen",
		Short:         "Generate database-access code from table descriptors",
		Long:          "tablegen compiles declarative table descriptors into per-table CRUD code for a target SQL dialect",
		Version:       fmt.Sprintf("%s (commit: %s)", Version, Commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newGenerateCommand())
	return root
}

func newGenerateCommand() *cobra.Command {
	var (
		dialectName string
		target      string
		pkg         string
		header      string
		watch       bool
	)

	cmd := &cobra.Command{
		Use:   "generate [flags] descriptor.yaml ...",
		Short: "Generate code from descriptor files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []gen.Option{
				gen.WithDialectName(dialectName),
				gen.WithTarget(target),
				gen.WithPackage(pkg),
			}
			if header != "" {
				opts = append(opts, gen.WithHeader(header))
			}
			c, err := gen.NewConfig(opts...)
			if err != nil {
				return err
			}
			if err := generate(cmd.Context(), c, args); err != nil {
				if !watch {
					return err
				}
				// Watch mode keeps running through bad descriptors; the next
				// save gets another chance.
				printDiagnostics(err)
			}
			if watch {
				return watchAndGenerate(cmd.Context(), c, args)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dialectName, "dialect", "", "target SQL dialect: postgres, mysql or sqlite (required)")
	cmd.Flags().StringVar(&target, "target", "./model", "output directory for generated files")
	cmd.Flags().StringVar(&pkg, "package", "model", "package name of the generated files")
	cmd.Flags().StringVar(&header, "header", "", "override the generated file header comment")
	cmd.Flags().BoolVar(&watch, "watch", false, "watch descriptor files and regenerate on change")
	_ = cmd.MarkFlagRequired("dialect")

	return cmd
}

func generate(ctx context.Context, c *gen.Config, paths []string) error {
	var inputs []*load.TableInput
	for _, path := range paths {
		ins, err := load.ParseFile(path)
		if err != nil {
			return err
		}
		inputs = append(inputs, ins...)
	}
	if err := gensql.Generate(ctx, c, inputs); err != nil {
		return err
	}
	color.Green("✓ generated %d table(s) into %s", len(inputs), c.Target)
	return nil
}

// printDiagnostics writes descriptor violations to stderr, one per line.
func printDiagnostics(err error) {
	if errors.Is(err, load.ErrInvalidDescriptor) {
		color.New(color.FgRed).Fprintln(os.Stderr, err.Error())
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// watchAndGenerate reruns generation whenever a descriptor file changes.
// Directories are watched instead of the files themselves so editors that
// replace files on save keep being tracked.
func watchAndGenerate(ctx context.Context, c *gen.Config, paths []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	watched := make(map[string]bool, len(paths))
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		watched[abs] = true
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return err
		}
	}
	log.Printf("watching %d descriptor file(s)", len(paths))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			log.Printf("%s changed, regenerating", event.Name)
			if err := generate(ctx, c, paths); err != nil {
				printDiagnostics(err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", err)
		}
	}
}
