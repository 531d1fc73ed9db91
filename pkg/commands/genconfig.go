package commands

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/picsort/pkg/config"
	"github.com/arthur-debert/picsort/pkg/errors"
	"github.com/arthur-debert/picsort/pkg/logging"
	"github.com/arthur-debert/picsort/pkg/paths"
)

// GenConfigOptions holds options for the gen-config command
type GenConfigOptions struct {
	// Write writes the file instead of only returning its content
	Write bool

	// Dir overrides the destination directory; empty writes to the XDG
	// config directory
	Dir string
}

// GenConfigResult is the outcome of the gen-config command
type GenConfigResult struct {
	// ConfigContent is the generated file content
	ConfigContent string

	// Path is the file written, empty when nothing was written
	Path string
}

// GenConfig produces a starter configuration file with every setting
// present but commented out. An existing file is never overwritten.
func GenConfig(opts GenConfigOptions) (*GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	result := &GenConfigResult{ConfigContent: config.GenerateConfigContent()}

	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	dir := opts.Dir
	if dir == "" {
		p, err := paths.New(".", "")
		if err != nil {
			return result, err
		}
		dir = p.ConfigDir()
	}

	target := filepath.Join(dir, paths.ConfigFileName)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return result, errors.Wrapf(err, errors.ErrDirCreate, "failed to create config directory %s", dir)
	}

	if _, err := os.Stat(target); err == nil {
		logger.Warn().Str("path", target).Msg("Config file already exists, skipping")
		return result, errors.Newf(errors.ErrInvalidInput, "config file %s already exists", target)
	}

	if err := os.WriteFile(target, []byte(result.ConfigContent), 0644); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileWrite, "failed to write config to %s", target)
	}

	logger.Info().Str("path", target).Msg("Written config file")
	result.Path = target

	return result, nil
}
