package config

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/picsort/pkg/types"
)

// Extensions holds the extension sets that drive file classification.
// Sets are stored normalized: lowercase with a leading dot.
type Extensions struct {
	// Images lists image extensions picsort organizes
	Images []string `koanf:"images" toml:"images"`

	// Exif lists the image extensions that may carry EXIF metadata
	Exif []string `koanf:"exif" toml:"exif"`

	// Videos lists video extensions picsort organizes
	Videos []string `koanf:"videos" toml:"videos"`

	// Sidecars lists sidecar extensions probed for XMP metadata
	Sidecars []string `koanf:"sidecars" toml:"sidecars"`
}

// Scan holds source walking configuration
type Scan struct {
	// SkipHidden skips dot-prefixed files and directories
	SkipHidden bool `koanf:"skip_hidden" toml:"skip_hidden"`
}

// Exiftool holds external exiftool integration configuration
type Exiftool struct {
	// Enabled turns exiftool-backed video metadata on
	Enabled bool `koanf:"enabled" toml:"enabled"`

	// Binary is an explicit exiftool path; empty means search PATH
	Binary string `koanf:"binary" toml:"binary"`
}

// Config is the main configuration structure
type Config struct {
	Extensions Extensions `koanf:"extensions"`
	Scan       Scan       `koanf:"scan"`
	Exiftool   Exiftool   `koanf:"exiftool"`
}

// Default returns the configuration built from embedded defaults alone
func Default() *Config {
	cfg, err := Load()
	if err != nil {
		// Defaults are embedded at build time, so this only happens if
		// the shipped file is broken. Fall back to a minimal config.
		return &Config{
			Extensions: Extensions{
				Images: []string{".jpg", ".jpeg", ".png", ".gif", ".nef", ".cr2", ".dng", ".bmp"},
				Exif:   []string{".jpg", ".jpeg"},
				Videos: []string{".mp4", ".mov", ".avi"},
			},
			Scan:     Scan{SkipHidden: true},
			Exiftool: Exiftool{Enabled: true},
		}
	}
	return cfg
}

// normalize rewrites the extension sets to canonical form
func (c *Config) normalize() {
	c.Extensions.Images = normalizeExts(c.Extensions.Images)
	c.Extensions.Exif = normalizeExts(c.Extensions.Exif)
	c.Extensions.Videos = normalizeExts(c.Extensions.Videos)
	c.Extensions.Sidecars = normalizeExts(c.Extensions.Sidecars)
}

func normalizeExts(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

// Classify maps a file path to its kind based on the extension sets.
// Matching is case-insensitive; files without a recognized extension are
// reported as unrecognized and left untouched by migration.
func (e *Extensions) Classify(path string) types.FileKind {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return types.KindUnrecognized
	}

	switch {
	case containsExt(e.Exif, ext):
		return types.KindImageWithMeta
	case containsExt(e.Images, ext):
		return types.KindImage
	case containsExt(e.Videos, ext):
		return types.KindVideo
	default:
		return types.KindUnrecognized
	}
}

func containsExt(exts []string, ext string) bool {
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}
