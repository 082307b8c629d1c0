// Package config loads wordprep configuration files (YAML, TOML or JSON with comments).
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/upsun/wordprep/pkg/convert"
	"github.com/upsun/wordprep/pkg/wordpair"
)

//go:embed schema.json
var schemaBytes []byte

// FileNames lists the configuration files looked up in a directory, in order of preference.
var FileNames = []string{
	"wordprep.yaml",
	"wordprep.yml",
	"wordprep.toml",
	"wordprep.json",
	"wordprep.jsonc",
}

// File is a configuration file. Unset keys keep the value they override.
type File struct {
	Input        *string `json:"input,omitempty"`
	Output       *string `json:"output,omitempty"`
	Escape       *bool   `json:"escape,omitempty"`
	TrailingLine *string `json:"trailing_line,omitempty"`
	FailFast     *bool   `json:"fail_fast,omitempty"`
	FileMode     *string `json:"file_mode,omitempty"`
}

// Find returns the name of the first configuration file present in fsys, or "" if there is none.
func Find(fsys fs.FS) (string, error) {
	for _, name := range FileNames {
		_, err := fs.Stat(fsys, name)
		if err == nil {
			return name, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
	return "", nil
}

// Load reads and validates a configuration file. Its format is chosen by extension.
func Load(fsys fs.FS, name string) (*File, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	f, err := Parse(b, filepath.Ext(name))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	return f, nil
}

// Parse validates and decodes configuration data. The ext selects the format
// (".yaml", ".yml", ".toml", ".json" or ".jsonc").
func Parse(data []byte, ext string) (*File, error) {
	jsonData, err := toJSON(data, ext)
	if err != nil {
		return nil, err
	}
	if err := Validate(jsonData); err != nil {
		return nil, err
	}
	var f File
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", convert.ErrInvalidConfig, err)
	}
	return &f, nil
}

func toJSON(data []byte, ext string) ([]byte, error) {
	var doc any
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: failed to parse YAML: %w", convert.ErrInvalidConfig, err)
		}
	case ".toml":
		m := map[string]any{}
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&m); err != nil {
			return nil, fmt.Errorf("%w: failed to parse TOML: %w", convert.ErrInvalidConfig, err)
		}
		doc = m
	case ".json", ".jsonc":
		b := jsonc.ToJSON(data)
		if len(bytes.TrimSpace(b)) == 0 {
			return []byte("{}"), nil
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: unsupported configuration format %q", convert.ErrInvalidConfig, ext)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to convert to JSON: %w", convert.ErrInvalidConfig, err)
	}
	return b, nil
}

// Validate checks a JSON document against the embedded configuration schema.
func Validate(jsonData []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(jsonData),
	)
	if err != nil {
		return fmt.Errorf("%w: schema validation failed: %w", convert.ErrInvalidConfig, err)
	}
	if !result.Valid() {
		var errs []string
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		return fmt.Errorf("%w: %s", convert.ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return nil
}

// Apply overrides fields of cnf with the keys set in f.
func (f *File) Apply(cnf *convert.Config) error {
	if f.Input != nil {
		cnf.InputPath = *f.Input
	}
	if f.Output != nil {
		cnf.OutputPath = *f.Output
	}
	if f.Escape != nil {
		cnf.Escape = *f.Escape
	}
	if f.TrailingLine != nil {
		cnf.TrailingLine = wordpair.TrailingLinePolicy(*f.TrailingLine)
	}
	if f.FailFast != nil {
		cnf.FailFast = *f.FailFast
	}
	if f.FileMode != nil {
		mode, err := strconv.ParseUint(*f.FileMode, 8, 32)
		if err != nil {
			return fmt.Errorf("%w: file_mode: %w", convert.ErrInvalidConfig, err)
		}
		cnf.FileMode = fs.FileMode(mode)
	}
	return cnf.Validate()
}

// Resolve builds the effective configuration: defaults, overridden by the
// file at path if given, otherwise by the first of FileNames found in fsys.
// It also returns the name of the file used, if any.
func Resolve(fsys fs.FS, path string) (*convert.Config, string, error) {
	cnf := convert.DefaultConfig()
	if path == "" {
		var err error
		if path, err = Find(fsys); err != nil {
			return nil, "", err
		}
		if path == "" {
			return cnf, "", nil
		}
	}
	f, err := Load(fsys, path)
	if err != nil {
		return nil, "", err
	}
	if err := f.Apply(cnf); err != nil {
		return nil, "", fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return cnf, path, nil
}
