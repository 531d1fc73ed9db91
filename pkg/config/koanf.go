package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/picsort/pkg/errors"
	"github.com/arthur-debert/picsort/pkg/logging"
)

var log = logging.GetLogger("config")

// Load builds the effective configuration. Embedded defaults load first,
// then each given file in order, with later files overriding earlier
// ones. Files may be TOML or YAML, picked by extension. Missing files
// are skipped silently; unreadable or malformed files fail the load.
func Load(configFiles ...string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load default configuration")
	}

	// 2. Layer user files, lowest priority first
	for _, path := range configFiles {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to access config file %s", path)
		}

		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, parseError(path, err)
		}

		log.Debug().Str("path", path).Msg("Config layer loaded")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}

	cfg.normalize()

	return &cfg, nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// parseError decorates a failed layer load. TOML files are reparsed to
// recover the line and column of the first syntax error.
func parseError(path string, err error) error {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".yaml" && ext != ".yml" {
		if data, readErr := os.ReadFile(path); readErr == nil {
			if serr := checkSyntax(path, data); serr != nil {
				return serr
			}
		}
	}

	return errors.Wrapf(err, errors.ErrConfigParse, "failed to merge config file %s", path)
}
