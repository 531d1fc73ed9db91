// Package cleaner removes the empty directories a migration leaves
// behind in the source tree.
package cleaner

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/picsort/pkg/errors"
	"github.com/arthur-debert/picsort/pkg/logging"
)

var log = logging.GetLogger("cleaner")

// Cleanup removes every directory under root, root included, that holds
// no files and no surviving subdirectories. Traversal is post-order so
// a directory whose children all get removed is itself removed. Returns
// the number of directories deleted.
func Cleanup(root string) (int, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, errors.Newf(errors.ErrNotFound, "directory %s does not exist", root)
		}
		return 0, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", root)
	}
	if !info.IsDir() {
		return 0, errors.Newf(errors.ErrInvalidInput, "%s is not a directory", root)
	}

	removed, _, err := sweep(root)

	log.Debug().Str("root", root).Int("removed", removed).Msg("Cleanup finished")

	return removed, err
}

// sweep recursively removes empty directories below dir and reports how
// many went and whether dir itself is gone.
func sweep(dir string) (int, bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, false, errors.Wrapf(err, errors.ErrFileAccess, "failed to read directory %s", dir)
	}

	removed := 0
	hasContent := false

	for _, entry := range entries {
		// Symlinks count as content even when they point at directories;
		// they are never followed or removed.
		if !entry.IsDir() {
			hasContent = true
			continue
		}

		n, gone, err := sweep(filepath.Join(dir, entry.Name()))
		removed += n
		if err != nil {
			return removed, false, err
		}
		if !gone {
			hasContent = true
		}
	}

	if hasContent {
		return removed, false, nil
	}

	if err := os.Remove(dir); err != nil {
		return removed, false, errors.Wrapf(err, errors.ErrFileDelete, "failed to remove directory %s", dir)
	}

	log.Debug().Str("dir", dir).Msg("Removed empty directory")

	return removed + 1, true, nil
}
