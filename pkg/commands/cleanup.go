package commands

import (
	"github.com/arthur-debert/picsort/pkg/cleaner"
	"github.com/arthur-debert/picsort/pkg/logging"
	"github.com/arthur-debert/picsort/pkg/paths"
)

// CleanupOptions holds options for the cleanup command
type CleanupOptions struct {
	// Source is the directory to sweep for empty directories
	Source string
}

// CleanupResult is the outcome of the cleanup command
type CleanupResult struct {
	// Removed is the number of directories deleted, the source root
	// included when it ended up empty
	Removed int
}

// Cleanup removes empty directories below (and including) the source
// root, without requiring a sort run first.
func Cleanup(opts CleanupOptions) (*CleanupResult, error) {
	logger := logging.GetLogger("commands.cleanup")

	p, err := paths.New(opts.Source, "")
	if err != nil {
		return nil, err
	}

	removed, err := cleaner.Cleanup(p.SourceRoot())
	if err != nil {
		return nil, err
	}

	logger.Info().Int("removed", removed).Str("root", p.SourceRoot()).Msg("Cleanup finished")

	return &CleanupResult{Removed: removed}, nil
}
