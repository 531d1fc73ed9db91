package config

import (
	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/picsort/pkg/errors"
)

// checkSyntax parses data as TOML to surface syntax errors with their
// position before the file is merged into the layered configuration.
func checkSyntax(path string, data []byte) error {
	var probe map[string]interface{}
	err := toml.Unmarshal(data, &probe)
	if err == nil {
		return nil
	}

	if de, ok := err.(*toml.DecodeError); ok {
		row, col := de.Position()
		return errors.Wrapf(err, errors.ErrConfigParse, "invalid TOML in %s", path).
			WithDetail("line", row).
			WithDetail("column", col)
	}

	return errors.Wrapf(err, errors.ErrConfigParse, "invalid TOML in %s", path)
}
