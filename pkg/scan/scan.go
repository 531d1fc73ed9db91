// Package scan walks a dump directory, classifies the files it finds,
// and resolves a capture timestamp for each media file. The outcome is
// a set of source records ready for target planning, plus the files
// that could not be classified or dated.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/picsort/pkg/config"
	"github.com/arthur-debert/picsort/pkg/errors"
	"github.com/arthur-debert/picsort/pkg/logging"
	"github.com/arthur-debert/picsort/pkg/timestamp"
	"github.com/arthur-debert/picsort/pkg/types"
)

var log = logging.GetLogger("scan")

// FileError records a file the scan had to set aside and why
type FileError struct {
	Path string
	Err  error
}

// Result is the outcome of scanning a dump directory
type Result struct {
	// Records are the media files with a resolved timestamp, in walk order
	Records []types.SourceRecord

	// Unmatched are files whose extension picsort does not organize
	Unmatched []string

	// Errors are media files without a usable timestamp or that could
	// not be read
	Errors []FileError
}

// ValidCount is the number of files ready to migrate
func (r *Result) ValidCount() int { return len(r.Records) }

// InvalidCount is the number of media files set aside with errors
func (r *Result) InvalidCount() int { return len(r.Errors) }

// Options configures a scan
type Options struct {
	// Root is the absolute path of the dump directory to walk
	Root string

	// Exclude lists absolute directory paths pruned from the walk,
	// typically the output root when it sits inside the dump
	Exclude []string

	// Config supplies the extension sets and scan switches
	Config *config.Config

	// Resolvers supplies the per-kind timestamp chains
	Resolvers *timestamp.Resolvers

	// Progress, when set, is invoked with each media file before its
	// timestamp is resolved
	Progress func(path string)
}

// Run walks the dump and resolves timestamps. The walk never follows
// symlinks and skips hidden entries unless configured otherwise.
// Per-file failures are collected in the result; only an unusable root
// is an error.
func Run(opts Options) (*Result, error) {
	info, err := os.Stat(opts.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrNotFound, "source directory %s does not exist", opts.Root)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to access source directory %s", opts.Root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "source %s is not a directory", opts.Root)
	}

	excluded := make(map[string]bool, len(opts.Exclude))
	for _, dir := range opts.Exclude {
		excluded[filepath.Clean(dir)] = true
	}

	result := &Result{}
	walkErr := filepath.WalkDir(opts.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, FileError{
				Path: path,
				Err:  errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path),
			})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path == opts.Root {
			return nil
		}

		hidden := opts.Config.Scan.SkipHidden && strings.HasPrefix(d.Name(), ".")

		if d.IsDir() {
			if hidden || excluded[filepath.Clean(path)] {
				return filepath.SkipDir
			}
			return nil
		}

		if hidden {
			return nil
		}
		if !d.Type().IsRegular() {
			log.Debug().Str("path", path).Msg("Skipping non-regular file")
			return nil
		}

		scanFile(path, opts, result)
		return nil
	})
	if walkErr != nil {
		return nil, errors.Wrapf(walkErr, errors.ErrInternal, "scan of %s aborted", opts.Root)
	}

	log.Info().
		Str("root", opts.Root).
		Int("valid", result.ValidCount()).
		Int("invalid", result.InvalidCount()).
		Int("unmatched", len(result.Unmatched)).
		Msg("Scan complete")

	return result, nil
}

func scanFile(path string, opts Options, result *Result) {
	kind := opts.Config.Extensions.Classify(path)
	chain, ok := opts.Resolvers.For(kind)
	if !ok {
		result.Unmatched = append(result.Unmatched, path)
		return
	}

	if opts.Progress != nil {
		opts.Progress(path)
	}

	stamp, err := chain.Resolve(path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("No timestamp for file")
		result.Errors = append(result.Errors, FileError{Path: path, Err: err})
		return
	}

	log.Debug().
		Str("path", path).
		Time("timestamp", stamp.Time).
		Str("origin", string(stamp.Origin)).
		Msg("Resolved timestamp")

	result.Records = append(result.Records, types.SourceRecord{
		Timestamp: stamp.Time,
		Path:      path,
	})
}
