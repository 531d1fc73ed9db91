// Package commands implements the operations behind the picsort CLI.
// Each command is a plain function taking an options struct and
// returning a result struct; rendering and flag handling live in the
// cobra layer.
package commands

import (
	"github.com/arthur-debert/picsort/pkg/cleaner"
	"github.com/arthur-debert/picsort/pkg/config"
	"github.com/arthur-debert/picsort/pkg/executor"
	"github.com/arthur-debert/picsort/pkg/ledger"
	"github.com/arthur-debert/picsort/pkg/logging"
	"github.com/arthur-debert/picsort/pkg/paths"
	"github.com/arthur-debert/picsort/pkg/plan"
	"github.com/arthur-debert/picsort/pkg/scan"
	"github.com/arthur-debert/picsort/pkg/timestamp"
	"github.com/arthur-debert/picsort/pkg/types"
)

// SortOptions holds options for the sort command
type SortOptions struct {
	// Source is the dump directory to organize
	Source string

	// Out is the output root; empty resolves the default (see paths.New)
	Out string

	// Apply moves files and updates the ledger; false is a dry run
	Apply bool

	// Cleanup removes directories left empty under the source root
	// after an apply run
	Cleanup bool

	// ConfigFiles overrides the default config search path when non-nil
	ConfigFiles []string

	// Progress, when set, is invoked per scanned media file
	Progress func(path string)

	// ScanDone, when set, is invoked once discovery finishes and before
	// any planning or moving starts
	ScanDone func(result *scan.Result)

	// MoveProgress, when set, is invoked after each attempted move in
	// apply mode
	MoveProgress func(done, total int)
}

// SortResult is the outcome of one sort invocation
type SortResult struct {
	// Paths carries the resolved source, output, and run file locations
	Paths paths.Paths

	// Scan is the discovery outcome, including unmatched files and
	// per-file timestamp failures
	Scan *scan.Result

	// Report is the migration outcome; may be partial when an error is
	// returned alongside it
	Report *types.Report

	// CleanedDirs is the number of empty directories removed from the
	// source tree, when cleanup ran
	CleanedDirs int
}

// Sort runs the full pipeline: discover media files, plan their target
// layout, reconcile against the ledger, and execute in dry-run or apply
// mode. Cleanup of the source tree runs last and only in apply mode, so
// a dry run never mutates anything.
func Sort(opts SortOptions) (*SortResult, error) {
	logger := logging.GetLogger("commands.sort")

	p, err := paths.New(opts.Source, opts.Out)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("source", p.SourceRoot()).
		Str("output", p.OutputRoot()).
		Bool("apply", opts.Apply).
		Msg("Starting sort")

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

	// An output root nested in the source must not be rescanned, or
	// every migrated file would come back as a conflict.
	var exclude []string
	if p.OutputInsideSource() {
		exclude = append(exclude, p.OutputRoot())
	}

	scanResult, err := scan.Run(scan.Options{
		Root:      p.SourceRoot(),
		Exclude:   exclude,
		Config:    cfg,
		Resolvers: resolvers,
		Progress:  opts.Progress,
	})
	if err != nil {
		return nil, err
	}

	if opts.ScanDone != nil {
		opts.ScanDone(scanResult)
	}

	result := &SortResult{Paths: p, Scan: scanResult}

	led, err := ledger.Load(p.LedgerPath())
	if err != nil {
		return result, err
	}

	pl := plan.Build(scanResult.Records)
	reconciled := led.Reconcile(pl, p.OutputRoot())

	report, err := executor.Execute(executor.Options{
		Plan:       pl,
		Ledger:     led,
		Reconciled: reconciled,
		OutputRoot: p.OutputRoot(),
		Apply:      opts.Apply,
		ReviewPath: p.ReviewPath(),
		Progress:   opts.MoveProgress,
	})
	result.Report = report
	if err != nil {
		return result, err
	}

	if opts.Cleanup && opts.Apply {
		removed, err := cleaner.Cleanup(p.SourceRoot())
		result.CleanedDirs = removed
		if err != nil {
			return result, err
		}
	}

	return result, nil
}
