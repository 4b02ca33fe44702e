package cmd

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config holds engine limits loaded from a kavo.toml file.
type Config struct {
	// MaxParseDepth bounds expression nesting; 0 keeps the default.
	MaxParseDepth int `toml:"max_parse_depth"`

	// MaxSteps bounds evaluation; 0 means unlimited.
	MaxSteps int `toml:"max_steps"`
}

// loadConfig reads path when given, otherwise kavo.toml in the working
// directory when present. A missing default file is not an error.
func loadConfig(path string) (Config, error) {
	var cfg Config
	explicit := path != ""
	if path == "" {
		path = "kavo.toml"
	}
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, errors.Wrapf(err, "load config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.Errorf("config %s: unknown key %s", path, undecoded[0])
	}
	return cfg, nil
}
