package gen

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/tablegen/dialect"
)

// DefaultHeader is added at the top of every generated file unless
// overridden with WithHeader.
const DefaultHeader = "Code generated by tablegen. DO NOT EDIT."

// Config holds the generation settings shared by every table.
type Config struct {
	// Package is the name of the generated package.
	Package string
	// Header is the file header comment.
	Header string
	// Target is the output directory.
	Target string
	// Dialect drives placeholder syntax, RETURNING support and the bind
	// call shape. It is selected once per generation run.
	Dialect dialect.Dialect
}

// Option configures code generation.
type Option func(*Config) error

// WithPackage sets the generated package name.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithHeader sets the file header comment.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithDialect sets the dialect.
func WithDialect(d dialect.Dialect) Option {
	return func(c *Config) error {
		if d == nil {
			return NewConfigError("Dialect", nil, "dialect cannot be nil")
		}
		c.Dialect = d
		return nil
	}
}

// WithDialectName sets the dialect by engine name.
func WithDialectName(name string) Option {
	return func(c *Config) error {
		d, ok := dialect.Lookup(name)
		if !ok {
			return NewConfigError("Dialect", name, "unsupported dialect; use postgres, mysql, or sqlite")
		}
		c.Dialect = d
		return nil
	}
}

// NewConfig builds a Config from the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Package: "model",
		Header:  DefaultHeader,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// NewFile creates a new Jennifer file for the configured package with the
// standard header comment.
func (c *Config) NewFile() *jen.File {
	f := jen.NewFile(c.Package)
	if c.Header != "" {
		f.HeaderComment(c.Header)
	}
	return f
}
