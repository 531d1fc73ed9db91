// Package ledger persists the durable record of every file picsort has
// migrated: a mapping from relative target path to the absolute path the
// file was moved from. The ledger lives under the output root, is loaded
// at the start of a run, reconciled against the fresh plan to weed out
// duplicates, and atomically rewritten as the last step of an apply run.
package ledger

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/picsort/pkg/errors"
	"github.com/arthur-debert/picsort/pkg/logging"
	"github.com/arthur-debert/picsort/pkg/plan"
	"github.com/arthur-debert/picsort/pkg/types"
)

var log = logging.GetLogger("ledger")

// Ledger is the persisted target-to-source mapping. Keys are target paths
// relative to the output root so the output tree can be renamed or moved
// wholesale without invalidating the record.
type Ledger struct {
	path    string
	entries map[string]string
}

// ReconcileResult separates plan entries that clashed with the ledger
// into proven duplicates and ambiguous conflicts.
type ReconcileResult struct {
	// Duplicates are incoming files byte-identical to their already
	// migrated counterpart
	Duplicates []types.Duplicate

	// Conflicts are incoming files whose content differs from the file
	// already recorded at the same target
	Conflicts []types.Conflict
}

// Load reads the ledger persisted at path. A missing file yields an
// empty ledger; unparseable content fails with CORRUPT_LEDGER so a run
// never silently proceeds as if nothing had been migrated before.
func Load(path string) (*Ledger, error) {
	l := &Ledger{
		path:    path,
		entries: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("path", path).Msg("No ledger found, starting empty")
			return l, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read ledger %s", path)
	}

	if err := json.Unmarshal(data, &l.entries); err != nil {
		return nil, errors.Wrapf(err, errors.ErrCorruptLedger, "failed to parse ledger %s", path).
			WithDetail("path", path)
	}

	log.Debug().Str("path", path).Int("entries", len(l.entries)).Msg("Ledger loaded")

	return l, nil
}

// Path returns the location this ledger persists to
func (l *Ledger) Path() string {
	return l.path
}

// Len returns the number of recorded migrations
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Has reports whether target is already recorded
func (l *Ledger) Has(target string) bool {
	_, ok := l.entries[target]
	return ok
}

// Source returns the recorded pre-move source path for target
func (l *Ledger) Source(target string) (string, bool) {
	src, ok := l.entries[target]
	return src, ok
}

// Targets returns all recorded target paths in sorted order
func (l *Ledger) Targets() []string {
	targets := make([]string, 0, len(l.entries))
	for target := range l.entries {
		targets = append(targets, target)
	}
	sort.Strings(targets)
	return targets
}

// Reconcile compares the plan against the ledger. Every planned target
// that is already recorded is removed from the plan and classified: if
// the incoming file is byte-identical to the file at the recorded target
// it is a duplicate; otherwise the pair is a conflict for the operator
// to resolve by hand. Files that cannot be compared are treated as
// conflicts rather than guessed at. The ledger itself is not modified.
func (l *Ledger) Reconcile(p *plan.Plan, outputRoot string) *ReconcileResult {
	result := &ReconcileResult{}

	for _, target := range l.Targets() {
		incoming, ok := p.Source(target)
		if !ok {
			continue
		}

		// Whatever the outcome, the entry must not be moved or
		// re-recorded this run.
		p.Remove(target)

		existing := filepath.Join(outputRoot, filepath.FromSlash(target))

		identical, err := equalFiles(existing, incoming)
		if err != nil {
			log.Warn().
				Err(err).
				Str("target", target).
				Str("incoming", incoming).
				Msg("Cannot compare against migrated file, leaving for manual review")
			result.Conflicts = append(result.Conflicts, types.Conflict{
				Target:   target,
				Existing: existing,
				Incoming: incoming,
			})
			continue
		}

		if identical {
			result.Duplicates = append(result.Duplicates, types.Duplicate{
				Target:   target,
				Existing: existing,
				Incoming: incoming,
			})
		} else {
			log.Warn().
				Str("existing", existing).
				Str("incoming", incoming).
				Msg("Files differ, please compare manually")
			result.Conflicts = append(result.Conflicts, types.Conflict{
				Target:   target,
				Existing: existing,
				Incoming: incoming,
			})
		}
	}

	log.Debug().
		Int("duplicates", len(result.Duplicates)).
		Int("conflicts", len(result.Conflicts)).
		Msg("Reconciliation complete")

	return result
}

// Append records the given moves. A move whose target is already
// recorded signals that reconciliation did not run or did not do its
// job, which must abort the run rather than overwrite history.
func (l *Ledger) Append(moves []types.Move) error {
	for _, m := range moves {
		if existing, ok := l.entries[m.Target]; ok {
			return errors.Newf(errors.ErrLedgerConflict,
				"target %s is already recorded for %s", m.Target, existing).
				WithDetail("target", m.Target).
				WithDetail("recorded_source", existing).
				WithDetail("incoming_source", m.Source)
		}
		l.entries[m.Target] = m.Source
	}
	return nil
}

// Persist atomically rewrites the ledger file. The content is written to
// a temporary file in the same directory, synced, and renamed over the
// previous version so a crash never leaves a partially written ledger.
func (l *Ledger) Persist() error {
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create ledger directory %s", dir)
	}

	data, err := json.MarshalIndent(l.entries, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode ledger")
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(l.path)+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to create temp ledger in %s", dir)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write temp ledger %s", tmpName)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to sync temp ledger %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to close temp ledger %s", tmpName)
	}

	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to set mode on temp ledger %s", tmpName)
	}

	if err := os.Rename(tmpName, l.path); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to replace ledger %s", l.path)
	}

	log.Debug().Str("path", l.path).Int("entries", len(l.entries)).Msg("Ledger persisted")

	return nil
}

// equalFiles compares two files byte for byte. Size is checked first so
// the common differing case never reads content.
func equalFiles(a, b string) (bool, error) {
	infoA, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	infoB, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	if infoA.Size() != infoB.Size() {
		return false, nil
	}

	fa, err := os.Open(a)
	if err != nil {
		return false, err
	}
	defer func() { _ = fa.Close() }()

	fb, err := os.Open(b)
	if err != nil {
		return false, err
	}
	defer func() { _ = fb.Close() }()

	bufA := make([]byte, 64*1024)
	bufB := make([]byte, 64*1024)
	for {
		nA, errA := io.ReadFull(fa, bufA)
		nB, errB := io.ReadFull(fb, bufB)

		if !bytes.Equal(bufA[:nA], bufB[:nB]) {
			return false, nil
		}

		if errA == io.EOF || errA == io.ErrUnexpectedEOF {
			if errB == io.EOF || errB == io.ErrUnexpectedEOF {
				return nA == nB, nil
			}
			return false, nil
		}
		if errA != nil {
			return false, errA
		}
		if errB != nil {
			if errB == io.EOF || errB == io.ErrUnexpectedEOF {
				return false, nil
			}
			return false, errB
		}
	}
}
