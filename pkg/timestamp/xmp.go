package timestamp

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/arthur-debert/picsort/pkg/errors"
)

// xmpField names a namespaced XMP property
type xmpField struct {
	space string
	name  string
}

// xmpDateFields in priority order; the first one found anywhere in the
// sidecar wins
var xmpDateFields = []xmpField{
	{space: "exif", name: "DateTimeOriginal"},
	{space: "xmp", name: "CreateDate"},
	{space: "photoshop", name: "DateCreated"},
}

// xmpLayouts cover the date shapes seen in sidecars, from full RFC3339
// down to a bare date
var xmpLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// XMPResolver reads capture times from XMP sidecar files, which raw
// formats in particular tend to carry instead of embedded metadata
type XMPResolver struct {
	sidecarExts []string
}

// NewXMPResolver returns a sidecar-backed resolver probing the given
// extensions
func NewXMPResolver(sidecarExts []string) *XMPResolver {
	return &XMPResolver{sidecarExts: sidecarExts}
}

// Resolve locates a sidecar next to the file and pulls the first known
// date property out of it. A missing or unusable sidecar falls through
// with NO_TIMESTAMP.
func (r *XMPResolver) Resolve(path string) (Stamp, error) {
	sidecar, ok := r.findSidecar(path)
	if !ok {
		return Stamp{}, errors.Newf(errors.ErrNoTimestamp, "no sidecar for %s", path)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(sidecar); err != nil {
		log.Debug().Err(err).Str("sidecar", sidecar).Msg("Unparseable sidecar")
		return Stamp{}, errors.Wrapf(err, errors.ErrNoTimestamp, "unparseable sidecar %s", sidecar)
	}

	root := doc.Root()
	if root == nil {
		return Stamp{}, errors.Newf(errors.ErrNoTimestamp, "empty sidecar %s", sidecar)
	}

	for _, field := range xmpDateFields {
		raw := findXMPValue(root, field)
		if raw == "" {
			continue
		}

		ts, err := parseXMPDate(raw)
		if err != nil {
			log.Debug().
				Str("sidecar", sidecar).
				Str("field", field.space+":"+field.name).
				Str("value", raw).
				Msg("Unparseable sidecar date")
			continue
		}

		return Stamp{Time: ts, Origin: OriginXMP}, nil
	}

	return Stamp{}, errors.Newf(errors.ErrNoTimestamp, "no date in sidecar %s", sidecar)
}

// findSidecar probes for a sidecar both by appending the sidecar
// extension to the full name and by replacing the file's extension
func (r *XMPResolver) findSidecar(path string) (string, bool) {
	var candidates []string
	for _, ext := range r.sidecarExts {
		candidates = append(candidates, path+ext)
		if fileExt := filepath.Ext(path); fileExt != "" {
			candidates = append(candidates, strings.TrimSuffix(path, fileExt)+ext)
		}
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}

	return "", false
}

// findXMPValue searches the element tree for the field, both as element
// text and as an attribute, matching namespace prefix and local name
func findXMPValue(e *etree.Element, field xmpField) string {
	if e.Space == field.space && e.Tag == field.name {
		if text := strings.TrimSpace(e.Text()); text != "" {
			return text
		}
	}

	for _, attr := range e.Attr {
		if attr.Space == field.space && attr.Key == field.name && attr.Value != "" {
			return attr.Value
		}
	}

	for _, child := range e.ChildElements() {
		if value := findXMPValue(child, field); value != "" {
			return value
		}
	}

	return ""
}

// parseXMPDate tries each known layout in order
func parseXMPDate(raw string) (time.Time, error) {
	cleaned := strings.TrimSpace(raw)

	var lastErr error
	for _, layout := range xmpLayouts {
		ts, err := time.ParseInLocation(layout, cleaned, time.Local)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}

	return time.Time{}, lastErr
}
