// Package timestamp resolves the capture time of media files. Each
// metadata source is an adapter behind the Resolver interface; adapters
// are arranged into per-kind chains that fall through on NO_TIMESTAMP
// and stop on anything else.
package timestamp

import (
	"time"

	"github.com/arthur-debert/picsort/pkg/config"
	"github.com/arthur-debert/picsort/pkg/errors"
	"github.com/arthur-debert/picsort/pkg/logging"
	"github.com/arthur-debert/picsort/pkg/types"
)

var log = logging.GetLogger("timestamp")

// Origin identifies the metadata source a stamp came from
type Origin string

const (
	// OriginExif is embedded EXIF data
	OriginExif Origin = "exif"

	// OriginXMP is an XMP sidecar file
	OriginXMP Origin = "xmp"

	// OriginVideoMeta is container metadata read through exiftool
	OriginVideoMeta Origin = "video_meta"

	// OriginFileMeta is the filesystem modification time
	OriginFileMeta Origin = "file_meta"
)

// Stamp is a resolved capture time, second resolution, and its origin
type Stamp struct {
	Time   time.Time
	Origin Origin
}

// Resolver extracts a capture timestamp from a file. A NO_TIMESTAMP
// error means this source has nothing usable and the next source may
// try; any other error aborts resolution for the file.
type Resolver interface {
	Resolve(path string) (Stamp, error)
}

// Chain tries each resolver in order until one produces a stamp
type Chain struct {
	resolvers []Resolver
}

// NewChain builds a chain over the given resolvers
func NewChain(resolvers ...Resolver) *Chain {
	return &Chain{resolvers: resolvers}
}

// Resolve walks the chain. NO_TIMESTAMP failures fall through; hard
// failures and successes return immediately.
func (c *Chain) Resolve(path string) (Stamp, error) {
	for _, r := range c.resolvers {
		stamp, err := r.Resolve(path)
		if err == nil {
			return stamp, nil
		}
		if !errors.IsErrorCode(err, errors.ErrNoTimestamp) {
			return Stamp{}, err
		}
	}

	return Stamp{}, errors.Newf(errors.ErrNoTimestamp, "no usable timestamp for %s", path)
}

// Resolvers holds the per-kind resolution chains for one run
type Resolvers struct {
	imageMeta Resolver
	image     Resolver
	video     Resolver

	videoMeta *VideoMetaResolver
}

// New wires the resolution chains from configuration. Images with
// embedded metadata try EXIF first, then an XMP sidecar, then the file
// modification time; plain images skip straight to the sidecar; videos
// go through exiftool when it is enabled.
func New(cfg *config.Config) *Resolvers {
	fileMeta := NewFileMetaResolver()
	xmp := NewXMPResolver(cfg.Extensions.Sidecars)

	r := &Resolvers{
		imageMeta: NewChain(NewExifResolver(), xmp, fileMeta),
		image:     NewChain(xmp, fileMeta),
	}

	if cfg.Exiftool.Enabled {
		r.videoMeta = NewVideoMetaResolver(cfg.Exiftool.Binary)
		r.video = NewChain(r.videoMeta, fileMeta)
	} else {
		r.video = NewChain(fileMeta)
	}

	return r
}

// For returns the chain responsible for the given file kind, or false
// for kinds picsort does not organize
func (r *Resolvers) For(kind types.FileKind) (Resolver, bool) {
	switch kind {
	case types.KindImageWithMeta:
		return r.imageMeta, true
	case types.KindImage:
		return r.image, true
	case types.KindVideo:
		return r.video, true
	default:
		return nil, false
	}
}

// Close releases resources held by the chains, such as the exiftool
// subprocess
func (r *Resolvers) Close() error {
	if r.videoMeta != nil {
		return r.videoMeta.Close()
	}
	return nil
}
