// Package convert turns a word list into an array-literal declaration file.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/upsun/wordprep/pkg/literal"
	"github.com/upsun/wordprep/pkg/wordpair"
)

const (
	DefaultInputPath  = "words.txt"
	DefaultOutputPath = "words_prep.txt"
	DefaultFileMode   = fs.FileMode(0o644)
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	InputPath  string // Path of the word list, relative to the input filesystem.
	OutputPath string // Path of the generated file, relative to the output filesystem.

	Escape       bool                        // Escape quotes and backslashes in words.
	TrailingLine wordpair.TrailingLinePolicy // How to treat the line after a final line break.
	FailFast     bool                        // Report only the first malformed line.
	FileMode     fs.FileMode                 // Permissions of the generated file.
}

// DefaultConfig reads words.txt and writes words_prep.txt in the working directory.
func DefaultConfig() *Config {
	return &Config{
		InputPath:    DefaultInputPath,
		OutputPath:   DefaultOutputPath,
		TrailingLine: wordpair.TrailingLineSkip,
		FileMode:     DefaultFileMode,
	}
}

func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("%w: input path is empty", ErrInvalidConfig)
	}
	if c.OutputPath == "" {
		return fmt.Errorf("%w: output path is empty", ErrInvalidConfig)
	}
	if c.TrailingLine != "" && !c.TrailingLine.Valid() {
		return fmt.Errorf("%w: unknown trailing line policy %q", ErrInvalidConfig, c.TrailingLine)
	}
	if c.FileMode == 0 {
		return fmt.Errorf("%w: file mode is zero", ErrInvalidConfig)
	}
	if c.FileMode&^fs.ModePerm != 0 {
		return fmt.Errorf("%w: file mode %o has non-permission bits", ErrInvalidConfig, c.FileMode)
	}
	return nil
}

func (c *Config) parseOptions() wordpair.ParseOptions {
	return wordpair.ParseOptions{TrailingLine: c.TrailingLine, FailFast: c.FailFast}
}

// Result summarizes a finished conversion.
type Result struct {
	InputPath  string
	OutputPath string
	Pairs      int
	Bytes      int
}

// Converter turns a word list into an array-literal declaration.
type Converter struct {
	in  fs.FS
	out afero.Fs
	cnf *Config
}

// New creates a Converter reading from in and writing to out.
func New(in fs.FS, out afero.Fs, cnf *Config) (*Converter, error) {
	if cnf == nil {
		cnf = DefaultConfig()
	}
	if err := cnf.Validate(); err != nil {
		return nil, err
	}
	return &Converter{in: in, out: out, cnf: cnf}, nil
}

// Convert reads the whole input, parses every line and then writes the output.
// Nothing is written if reading or parsing fails, so a previous output file
// stays intact.
func (c *Converter) Convert(ctx context.Context) (*Result, error) {
	pairs, err := wordpair.ReadFile(c.in, c.cnf.InputPath, c.cnf.parseOptions())
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := literal.Render(&buf, pairs, literal.Options{Escape: c.cnf.Escape}); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := writeFileAtomic(c.out, c.cnf.OutputPath, buf.Bytes(), c.cnf.FileMode); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", c.cnf.OutputPath, err)
	}

	return &Result{
		InputPath:  c.cnf.InputPath,
		OutputPath: c.cnf.OutputPath,
		Pairs:      len(pairs),
		Bytes:      buf.Len(),
	}, nil
}

// writeFileAtomic writes data to a temporary file next to path and renames it into place.
func writeFileAtomic(fsys afero.Fs, path string, data []byte, mode fs.FileMode) error {
	f, err := afero.TempFile(fsys, filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	cleanup := func() { _ = fsys.Remove(tmpName) }

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		cleanup()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		cleanup()
		return err
	}
	if err := f.Close(); err != nil {
		cleanup()
		return err
	}
	if err := fsys.Chmod(tmpName, mode); err != nil {
		cleanup()
		return err
	}
	if err := fsys.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
