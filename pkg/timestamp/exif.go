package timestamp

import (
	"os"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/arthur-debert/picsort/pkg/errors"
)

// exifLayout is the date format EXIF tags carry
const exifLayout = "2006:01:02 15:04:05"

// exifDateFields are probed in full; when several are present the
// earliest value wins, since edits tend to refresh the later ones.
var exifDateFields = []exif.FieldName{
	exif.DateTime,
	exif.DateTimeOriginal,
	exif.DateTimeDigitized,
}

// ExifResolver reads capture times from embedded EXIF metadata
type ExifResolver struct{}

// NewExifResolver returns an EXIF-backed resolver
func NewExifResolver() *ExifResolver {
	return &ExifResolver{}
}

// Resolve decodes the file's EXIF block. Files without a usable block
// or without any date tag fall through with NO_TIMESTAMP; only an
// unreadable file is a hard failure.
func (r *ExifResolver) Resolve(path string) (Stamp, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stamp{}, errors.Wrapf(err, errors.ErrFileAccess, "failed to open %s", path)
	}
	defer func() { _ = f.Close() }()

	x, err := exif.Decode(f)
	if err != nil {
		return Stamp{}, errors.Wrapf(err, errors.ErrNoTimestamp, "no EXIF data in %s", path)
	}

	var earliest time.Time
	for _, field := range exifDateFields {
		tag, err := x.Get(field)
		if err != nil {
			continue
		}
		raw, err := tag.StringVal()
		if err != nil {
			continue
		}

		ts, err := parseExifDate(raw)
		if err != nil {
			log.Debug().
				Str("path", path).
				Str("field", string(field)).
				Str("value", raw).
				Msg("Unparseable EXIF date tag")
			continue
		}

		if earliest.IsZero() || ts.Before(earliest) {
			earliest = ts
		}
	}

	if earliest.IsZero() {
		return Stamp{}, errors.Newf(errors.ErrNoTimestamp, "no EXIF date tags in %s", path)
	}

	return Stamp{Time: earliest, Origin: OriginExif}, nil
}

// parseExifDate parses an EXIF date value, tolerating the NUL padding
// some cameras write
func parseExifDate(raw string) (time.Time, error) {
	cleaned := strings.TrimSpace(strings.Trim(raw, "\x00"))
	return time.ParseInLocation(exifLayout, cleaned, time.Local)
}
