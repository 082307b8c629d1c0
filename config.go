package wordprep

import (
	_ "embed"

	"github.com/upsun/wordprep/pkg/config"
	"github.com/upsun/wordprep/pkg/convert"
)

// ExampleConfig is a commented configuration file spelling out every default.
//
//go:embed wordprep.example.yaml
var ExampleConfig []byte

// LoadExampleConfig parses ExampleConfig into a converter configuration.
func LoadExampleConfig() (*convert.Config, error) {
	f, err := config.Parse(ExampleConfig, ".yaml")
	if err != nil {
		return nil, err
	}
	cnf := convert.DefaultConfig()
	if err := f.Apply(cnf); err != nil {
		return nil, err
	}
	return cnf, nil
}
