package timestamp

import (
	"strings"
	"sync"
	"time"

	exiftool "github.com/barasher/go-exiftool"

	"github.com/arthur-debert/picsort/pkg/errors"
)

// videoDateKeys are probed in priority order
var videoDateKeys = []string{
	"DateTimeOriginal",
	"MediaCreateDate",
	"CreateDate",
	"TrackCreateDate",
	"CreationDate",
}

// videoLayouts cover exiftool's date output with and without a zone
var videoLayouts = []string{
	"2006:01:02 15:04:05Z07:00",
	"2006:01:02 15:04:05",
}

// VideoMetaResolver reads container creation dates through an external
// exiftool process. The process starts on first use and is reused for
// the rest of the run.
type VideoMetaResolver struct {
	binary string

	once    sync.Once
	et      *exiftool.Exiftool
	initErr error
}

// NewVideoMetaResolver returns an exiftool-backed resolver. binary may
// be empty to search PATH.
func NewVideoMetaResolver(binary string) *VideoMetaResolver {
	return &VideoMetaResolver{binary: binary}
}

// Resolve extracts the earliest known creation date key from the file's
// container metadata. A missing exiftool binary is not an error for the
// file; resolution falls through to the next source in the chain.
func (r *VideoMetaResolver) Resolve(path string) (Stamp, error) {
	r.once.Do(r.start)
	if r.initErr != nil {
		return Stamp{}, errors.Wrapf(r.initErr, errors.ErrNoTimestamp, "exiftool unavailable for %s", path)
	}

	metas := r.et.ExtractMetadata(path)
	if len(metas) == 0 {
		return Stamp{}, errors.Newf(errors.ErrNoTimestamp, "no metadata for %s", path)
	}
	meta := metas[0]
	if meta.Err != nil {
		return Stamp{}, errors.Wrapf(meta.Err, errors.ErrNoTimestamp, "metadata extraction failed for %s", path)
	}

	for _, key := range videoDateKeys {
		raw, err := meta.GetString(key)
		if err != nil {
			continue
		}

		ts, err := parseVideoDate(raw)
		if err != nil {
			log.Debug().
				Str("path", path).
				Str("key", key).
				Str("value", raw).
				Msg("Unparseable container date")
			continue
		}

		return Stamp{Time: ts, Origin: OriginVideoMeta}, nil
	}

	return Stamp{}, errors.Newf(errors.ErrNoTimestamp, "no creation date in metadata of %s", path)
}

// Close shuts the exiftool process down
func (r *VideoMetaResolver) Close() error {
	if r.et == nil {
		return nil
	}
	return r.et.Close()
}

func (r *VideoMetaResolver) start() {
	var opts []func(*exiftool.Exiftool) error
	if r.binary != "" {
		opts = append(opts, exiftool.SetExiftoolBinaryPath(r.binary))
	}

	r.et, r.initErr = exiftool.NewExiftool(opts...)
	if r.initErr != nil {
		log.Warn().
			Err(r.initErr).
			Msg("exiftool not available, video timestamps fall back to file times")
	}
}

// parseVideoDate parses exiftool's colon-separated date output. The
// all-zero value exiftool reports for unset dates fails parsing and is
// treated as absent.
func parseVideoDate(raw string) (time.Time, error) {
	cleaned := strings.TrimSpace(raw)

	var lastErr error
	for _, layout := range videoLayouts {
		ts, err := time.ParseInLocation(layout, cleaned, time.Local)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}

	return time.Time{}, lastErr
}
