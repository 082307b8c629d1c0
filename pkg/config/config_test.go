package config_test

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upsun/wordprep/pkg/config"
	"github.com/upsun/wordprep/pkg/convert"
	"github.com/upsun/wordprep/pkg/wordpair"
)

func TestParse(t *testing.T) {
	expected := &convert.Config{
		InputPath:    "hu.txt",
		OutputPath:   "hu.js",
		Escape:       true,
		TrailingLine: wordpair.TrailingLineMalformed,
		FailFast:     true,
		FileMode:     0o600,
	}

	cases := []struct {
		name    string
		ext     string
		content string
	}{
		{
			name: "yaml",
			ext:  ".yaml",
			content: `input: hu.txt
output: hu.js
escape: true
trailing_line: malformed
fail_fast: true
file_mode: "0600"
`,
		},
		{
			name: "toml",
			ext:  ".toml",
			content: `input = "hu.txt"
output = "hu.js"
escape = true
trailing_line = "malformed"
fail_fast = true
file_mode = "600"
`,
		},
		{
			name: "jsonc",
			ext:  ".jsonc",
			content: `{
  // Hungarian word list.
  "input": "hu.txt",
  "output": "hu.js",
  "escape": true,
  "trailing_line": "malformed",
  "fail_fast": true,
  "file_mode": "0600", // Trailing commas are allowed.
}`,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f, err := config.Parse([]byte(c.content), c.ext)
			require.NoError(t, err)
			cnf := convert.DefaultConfig()
			require.NoError(t, f.Apply(cnf))
			assert.Equal(t, expected, cnf)
		})
	}
}

func TestParsePartial(t *testing.T) {
	f, err := config.Parse([]byte("escape: true\n"), ".yml")
	require.NoError(t, err)
	cnf := convert.DefaultConfig()
	require.NoError(t, f.Apply(cnf))

	expected := convert.DefaultConfig()
	expected.Escape = true
	assert.Equal(t, expected, cnf)

	for _, ext := range []string{".yaml", ".toml", ".json"} {
		f, err := config.Parse(nil, ext)
		require.NoError(t, err, ext)
		assert.Equal(t, &config.File{}, f)
	}
}

func TestParseInvalid(t *testing.T) {
	cases := []struct {
		name     string
		ext      string
		content  string
		errorMsg string
	}{
		{name: "unknown key", ext: ".yaml", content: "delimiter: ','\n", errorMsg: "Additional property delimiter is not allowed"},
		{name: "bad policy", ext: ".yaml", content: "trailing_line: ignore\n", errorMsg: "trailing_line"},
		{name: "wrong type", ext: ".toml", content: "escape = \"yes\"\n", errorMsg: "escape"},
		{name: "bad mode", ext: ".json", content: `{"file_mode": "0999"}`, errorMsg: "file_mode"},
		{name: "empty input", ext: ".json", content: `{"input": ""}`, errorMsg: "input"},
		{name: "bad yaml", ext: ".yaml", content: "input: [", errorMsg: "failed to parse YAML"},
		{name: "bad toml", ext: ".toml", content: "input = ", errorMsg: "failed to parse TOML"},
		{name: "unsupported format", ext: ".ini", content: "", errorMsg: `unsupported configuration format ".ini"`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := config.Parse([]byte(c.content), c.ext)
			require.Error(t, err)
			assert.ErrorIs(t, err, convert.ErrInvalidConfig)
			assert.ErrorContains(t, err, c.errorMsg)
		})
	}
}

func TestResolve(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		cnf, name, err := config.Resolve(fstest.MapFS{}, "")
		require.NoError(t, err)
		assert.Empty(t, name)
		assert.Equal(t, convert.DefaultConfig(), cnf)
	})

	t.Run("first file found wins", func(t *testing.T) {
		fsys := fstest.MapFS{
			"wordprep.toml": &fstest.MapFile{Data: []byte(`input = "from-toml.txt"`)},
			"wordprep.yml":  &fstest.MapFile{Data: []byte(`input: from-yaml.txt`)},
		}
		cnf, name, err := config.Resolve(fsys, "")
		require.NoError(t, err)
		assert.Equal(t, "wordprep.yml", name)
		assert.Equal(t, "from-yaml.txt", cnf.InputPath)
		assert.Equal(t, convert.DefaultOutputPath, cnf.OutputPath)
	})

	t.Run("explicit path", func(t *testing.T) {
		fsys := fstest.MapFS{
			"wordprep.yaml":  &fstest.MapFile{Data: []byte(`input: ignored.txt`)},
			"conf/it.jsonc": &fstest.MapFile{Data: []byte(`{"output": "it.js"}`)},
		}
		cnf, name, err := config.Resolve(fsys, "conf/it.jsonc")
		require.NoError(t, err)
		assert.Equal(t, "conf/it.jsonc", name)
		assert.Equal(t, convert.DefaultInputPath, cnf.InputPath)
		assert.Equal(t, "it.js", cnf.OutputPath)
	})

	t.Run("missing explicit path", func(t *testing.T) {
		_, _, err := config.Resolve(fstest.MapFS{}, "nope.yaml")
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("zero file mode", func(t *testing.T) {
		fsys := fstest.MapFS{"wordprep.yaml": &fstest.MapFile{Data: []byte(`file_mode: "000"`)}}
		_, _, err := config.Resolve(fsys, "")
		assert.ErrorIs(t, err, convert.ErrInvalidConfig)
		assert.ErrorContains(t, err, "file mode is zero")
	})

	t.Run("invalid file", func(t *testing.T) {
		fsys := fstest.MapFS{"wordprep.yaml": &fstest.MapFile{Data: []byte(`fail_fast: 1`)}}
		_, _, err := config.Resolve(fsys, "")
		assert.ErrorIs(t, err, convert.ErrInvalidConfig)
		assert.ErrorContains(t, err, "wordprep.yaml")
	})
}
