package timestamp

import (
	"os"
	"time"

	"github.com/arthur-debert/picsort/pkg/errors"
)

// FileMetaResolver falls back to the filesystem modification time. It
// sits last in every chain.
type FileMetaResolver struct {
	// now is swapped in tests
	now func() time.Time
}

// NewFileMetaResolver returns a modification-time resolver
func NewFileMetaResolver() *FileMetaResolver {
	return &FileMetaResolver{now: time.Now}
}

// Resolve returns the file's modification time. A modification time on
// the run's own calendar date is rejected: a file touched today was
// almost certainly copied or downloaded just now, and filing it under
// today would scatter whole dumps into a bogus date.
func (r *FileMetaResolver) Resolve(path string) (Stamp, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Stamp{}, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", path)
	}

	ts := info.ModTime().Truncate(time.Second)

	now := r.now()
	if sameDate(ts, now) {
		return Stamp{}, errors.Newf(errors.ErrNoTimestamp,
			"suspicious timestamp %s on %s", ts.Format(time.RFC3339), path).
			WithDetail("timestamp", ts.Format(time.RFC3339)).
			WithDetail("reason", "modified on the current date")
	}

	return Stamp{Time: ts, Origin: OriginFileMeta}, nil
}

// sameDate reports whether a and b fall on the same calendar day
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
