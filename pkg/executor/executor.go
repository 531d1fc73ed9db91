// Package executor applies a reconciled migration plan to the
// filesystem. Apply mode creates target directories, moves files,
// deletes proven duplicates, and records the outcome in the ledger as
// the final step, so a crash never leaves the ledger claiming moves
// that did not happen. Dry-run mode produces the identical report
// without touching anything.
package executor

import (
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/picsort/pkg/errors"
	"github.com/arthur-debert/picsort/pkg/ledger"
	"github.com/arthur-debert/picsort/pkg/logging"
	"github.com/arthur-debert/picsort/pkg/plan"
	"github.com/arthur-debert/picsort/pkg/types"
)

// Options configures a single execution run
type Options struct {
	// Plan holds the moves that survived reconciliation
	Plan *plan.Plan

	// Ledger is the loaded migration record; mutated and persisted in
	// apply mode only
	Ledger *ledger.Ledger

	// Reconciled carries the duplicates and conflicts found during
	// reconciliation
	Reconciled *ledger.ReconcileResult

	// OutputRoot is the absolute directory targets are resolved under
	OutputRoot string

	// Apply mutates the filesystem and ledger; false reports only
	Apply bool

	// ReviewPath is where conflicts are written for manual review in
	// apply mode; empty disables the review file
	ReviewPath string

	// Progress, when set, is invoked after each attempted move in
	// apply mode, failures included
	Progress func(done, total int)
}

// Execute runs the migration described by opts and reports what
// happened. Per-file failures are collected and execution continues;
// only ledger-level failures abort.
func Execute(opts Options) (*types.Report, error) {
	start := time.Now()
	runID := uuid.New().String()

	logger := logging.GetLogger("executor").With().
		Str("runID", runID).
		Bool("apply", opts.Apply).
		Logger()

	report := &types.Report{
		RunID:      runID,
		Apply:      opts.Apply,
		OutputRoot: opts.OutputRoot,
	}
	if opts.Reconciled != nil {
		report.Duplicates = opts.Reconciled.Duplicates
		report.Conflicts = opts.Reconciled.Conflicts
	}

	moves := opts.Plan.Moves()

	if !opts.Apply {
		report.Moves = moves
		report.Elapsed = time.Since(start)
		logger.Info().
			Int("planned", len(moves)).
			Int("duplicates", len(report.Duplicates)).
			Msg("Dry run complete")
		return report, nil
	}

	logger.Info().Int("moves", len(moves)).Msg("Moving files")

	for i, m := range moves {
		if err := applyMove(logger, opts.OutputRoot, m); err != nil {
			logger.Error().Err(err).Str("target", m.Target).Msg("Move failed")
			report.Failures = append(report.Failures, types.MoveFailure{Move: m, Err: err})
		} else {
			report.Moves = append(report.Moves, m)
		}
		if opts.Progress != nil {
			opts.Progress(i+1, len(moves))
		}
	}

	// Proven duplicates are deleted only after the moves; a failed
	// deletion leaves an identical copy behind, which the next run
	// detects again.
	for _, dup := range report.Duplicates {
		if err := os.Remove(dup.Incoming); err != nil {
			wrapped := errors.Wrapf(err, errors.ErrFileDelete,
				"failed to delete duplicate %s", dup.Incoming)
			logger.Warn().Err(wrapped).Str("incoming", dup.Incoming).Msg("Duplicate not deleted")
			report.Failures = append(report.Failures, types.MoveFailure{
				Move: types.Move{Target: dup.Target, Source: dup.Incoming},
				Err:  wrapped,
			})
		}
	}

	// Ledger updates are the last step so the persisted record never
	// gets ahead of the filesystem.
	if err := opts.Ledger.Append(report.Moves); err != nil {
		report.Elapsed = time.Since(start)
		return report, err
	}
	if err := opts.Ledger.Persist(); err != nil {
		report.Elapsed = time.Since(start)
		return report, err
	}

	if opts.ReviewPath != "" && len(report.Conflicts) > 0 {
		if err := writeReview(opts.ReviewPath, report.Conflicts); err != nil {
			// The conflicts are still in the report; a missing review
			// file must not fail an otherwise complete run.
			logger.Warn().Err(err).Str("path", opts.ReviewPath).Msg("Could not write review file")
		}
	}

	report.Elapsed = time.Since(start)

	logger.Info().
		Int("moved", len(report.Moves)).
		Int("duplicates", len(report.Duplicates)).
		Int("conflicts", len(report.Conflicts)).
		Int("failures", len(report.Failures)).
		Dur("elapsed", report.Elapsed).
		Msg("Apply complete")

	return report, nil
}

// applyMove materializes one move on disk. The existence check guards
// against anything that appeared at the target between planning and
// execution; such a file is never overwritten.
func applyMove(logger zerolog.Logger, outputRoot string, m types.Move) error {
	target := filepath.Join(outputRoot, filepath.FromSlash(m.Target))

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dir)
	}

	if _, err := os.Lstat(target); err == nil {
		return errors.Newf(errors.ErrTargetExists,
			"won't move %s to %s, file already exists", m.Source, target).
			WithDetail("source", m.Source).
			WithDetail("target", target)
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to check target %s", target)
	}

	if err := moveFile(m.Source, target); err != nil {
		return errors.Wrapf(err, errors.ErrFileMove, "failed to move %s to %s", m.Source, target)
	}

	logger.Debug().Str("source", m.Source).Str("target", target).Msg("Moved")
	return nil
}

// moveFile renames src to dst, falling back to copy-then-remove when the
// two sit on different filesystems.
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}

	if !isCrossDevice(err) {
		return err
	}

	if err := copyFile(src, dst); err != nil {
		// Never leave a half-written target behind
		_ = os.Remove(dst)
		return err
	}
	return os.Remove(src)
}

func isCrossDevice(err error) bool {
	linkErr, ok := err.(*os.LinkError)
	return ok && linkErr.Err == syscall.EXDEV
}

// copyFile writes an exact copy of src at dst and syncs it before
// returning, so the source can be safely removed afterwards.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = srcFile.Close() }()

	info, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := dstFile.ReadFrom(srcFile); err != nil {
		_ = dstFile.Close()
		return err
	}
	if err := dstFile.Sync(); err != nil {
		_ = dstFile.Close()
		return err
	}
	return dstFile.Close()
}
