package executor

import (
	"bytes"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/picsort/pkg/errors"
	"github.com/arthur-debert/picsort/pkg/types"
)

// reviewFile is the on-disk shape of the manual review list
type reviewFile struct {
	GeneratedAt string           `yaml:"generated_at"`
	Conflicts   []types.Conflict `yaml:"conflicts"`
}

// writeReview records ambiguous duplicates in a YAML file next to the
// output tree so the operator can work through them after the run.
func writeReview(path string, conflicts []types.Conflict) error {
	var buf bytes.Buffer
	buf.WriteString("# Files with a target that was already migrated from different content.\n")
	buf.WriteString("# Compare each pair by hand; picsort has not touched either copy.\n")

	data, err := yaml.Marshal(&reviewFile{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Conflicts:   conflicts,
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode review file")
	}
	buf.Write(data)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write review file %s", path)
	}

	return nil
}
