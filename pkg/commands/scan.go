package commands

import (
	"github.com/arthur-debert/picsort/pkg/config"
	"github.com/arthur-debert/picsort/pkg/logging"
	"github.com/arthur-debert/picsort/pkg/paths"
	"github.com/arthur-debert/picsort/pkg/scan"
	"github.com/arthur-debert/picsort/pkg/timestamp"
)

// ScanOptions holds options for the scan command
type ScanOptions struct {
	// Source is the dump directory to inspect
	Source string

	// Out resolves the output root; used only to exclude a nested
	// output tree from the walk
	Out string

	// ConfigFiles overrides the default config search path when non-nil
	ConfigFiles []string

	// Progress, when set, is invoked per scanned media file
	Progress func(path string)
}

// ScanInfo is the outcome of a discovery-only run
type ScanInfo struct {
	Paths  paths.Paths
	Result *scan.Result
}

// Scan discovers and classifies media files without planning or moving
// anything, for inspecting a dump before a sort.
func Scan(opts ScanOptions) (*ScanInfo, error) {
	logger := logging.GetLogger("commands.scan")

	p, err := paths.New(opts.Source, opts.Out)
	if err != nil {
		return nil, err
	}

	configFiles := opts.ConfigFiles
	if configFiles == nil {
		configFiles = p.ConfigSearchPaths()
	}
	cfg, err := config.Load(configFiles...)
	if err != nil {
		return nil, err
	}

	resolvers := timestamp.New(cfg)
	defer func() { _ = resolvers.Close() }()

	var exclude []string
	if p.OutputInsideSource() {
		exclude = append(exclude, p.OutputRoot())
	}

	result, err := scan.Run(scan.Options{
		Root:      p.SourceRoot(),
		Exclude:   exclude,
		Config:    cfg,
		Resolvers: resolvers,
		Progress:  opts.Progress,
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("valid", result.ValidCount()).
		Int("invalid", result.InvalidCount()).
		Msg("Scan finished")

	return &ScanInfo{Paths: p, Result: result}, nil
}
