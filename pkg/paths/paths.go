// Package paths provides centralized path handling for picsort.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/picsort/pkg/errors"
)

// Environment variable names
const (
	// EnvOutputDir overrides the default output root location
	EnvOutputDir = "PICSORT_OUTPUT_DIR"

	// EnvConfigDir overrides the XDG config directory for picsort
	EnvConfigDir = "PICSORT_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for picsort
	EnvStateDir = "PICSORT_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
// IMPORTANT: The ledger and review file names define picsort's on-disk
// record structure and are NOT user-configurable. Renaming the ledger
// between runs would break duplicate detection against earlier runs.
// User-configurable settings belong in pkg/config instead.
const (
	// DefaultOutputDirName is the default output root name, created as a
	// sibling of the source root
	DefaultOutputDirName = "pictures"

	// PicsortDirName is the directory name for picsort-specific files
	PicsortDirName = "picsort"

	// LedgerFileName is the name of the migration ledger inside the
	// output root
	LedgerFileName = "info.json"

	// ReviewFileName is the name of the conflict review file inside the
	// output root
	ReviewFileName = "review.yaml"

	// ConfigFileName is the name of the user configuration file in the
	// XDG config directory
	ConfigFileName = "picsort.toml"

	// ConfigFileNameYAML is the YAML variant of the user configuration file
	ConfigFileNameYAML = "picsort.yaml"

	// SourceConfigFile is the name of the per-source configuration file
	SourceConfigFile = ".picsort.toml"

	// SourceConfigFileYAML is the YAML variant of the per-source
	// configuration file
	SourceConfigFileYAML = ".picsort.yaml"

	// LogFileName is the name of the log file
	LogFileName = "picsort.log"
)

// Paths provides centralized path management for picsort
type Paths interface {
	SourceRoot() string
	OutputRoot() string
	DefaultedOutput() bool
	LedgerPath() string
	ReviewPath() string
	ConfigDir() string
	StateDir() string
	ConfigFilePath() string
	SourceConfigPath() string
	ConfigSearchPaths() []string
	LogFilePath() string
	NormalizePath(path string) (string, error)
	OutputInsideSource() bool
}

// paths provides centralized path management for picsort
type paths struct {
	// sourceRoot is the directory being organized
	sourceRoot string

	// outputRoot is the directory migrated files land in
	outputRoot string

	// xdgConfig is the XDG config directory
	xdgConfig string

	// xdgState is the XDG state directory
	xdgState string

	// defaultedOutput indicates the output root was derived rather than
	// given explicitly (for warning display)
	defaultedOutput bool
}

// New creates a new Paths instance for the given source root. If
// outputRoot is empty, it is resolved from the PICSORT_OUTPUT_DIR
// environment variable, falling back to a sibling of the source root
// named "pictures".
func New(sourceRoot, outputRoot string) (Paths, error) {
	if sourceRoot == "" {
		return nil, errors.New(errors.ErrInvalidInput, "source root is required")
	}

	p := &paths{}

	absSource, err := normalize(sourceRoot)
	if err != nil {
		return nil, err
	}
	p.sourceRoot = absSource

	// Set up output root
	if outputRoot == "" {
		out, defaulted := findOutputRoot(p.sourceRoot)
		p.outputRoot = out
		p.defaultedOutput = defaulted
	} else {
		p.outputRoot = expandHome(outputRoot)
		p.defaultedOutput = false
	}

	absOutput, err := normalize(p.outputRoot)
	if err != nil {
		return nil, err
	}
	p.outputRoot = absOutput

	// Set up XDG directories
	if err := p.setupXDGDirs(); err != nil {
		return nil, err
	}

	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() error {
	// Config directory
	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = expandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, PicsortDirName)
	}

	// State directory
	if stateDir := os.Getenv(EnvStateDir); stateDir != "" {
		p.xdgState = expandHome(stateDir)
	} else {
		p.xdgState = filepath.Join(xdg.StateHome, PicsortDirName)
	}

	return nil
}

// findOutputRoot determines the output root using the following priority:
// 1. PICSORT_OUTPUT_DIR environment variable (if set)
// 2. A sibling of the source root named "pictures" (fallback)
//
// The function returns:
// - string: The resolved output root path
// - bool: Whether the sibling fallback was used
func findOutputRoot(sourceRoot string) (string, bool) {
	if out := os.Getenv(EnvOutputDir); out != "" {
		return expandHome(out), false
	}

	return filepath.Join(filepath.Dir(sourceRoot), DefaultOutputDirName), true
}

// normalize expands home, makes the path absolute, and cleans it
func normalize(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	expanded := expandHome(path)

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path")
	}

	return filepath.Clean(abs), nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to HOME env var
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				// Can't expand, return as-is
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		// Handle both ~/ and ~
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// SourceRoot returns the directory being organized
func (p *paths) SourceRoot() string {
	return p.sourceRoot
}

// OutputRoot returns the directory migrated files land in
func (p *paths) OutputRoot() string {
	return p.outputRoot
}

// DefaultedOutput returns true if the output root was derived from the
// source root rather than given explicitly
func (p *paths) DefaultedOutput() bool {
	return p.defaultedOutput
}

// LedgerPath returns the path to the migration ledger
func (p *paths) LedgerPath() string {
	return filepath.Join(p.outputRoot, LedgerFileName)
}

// ReviewPath returns the path to the conflict review file
func (p *paths) ReviewPath() string {
	return filepath.Join(p.outputRoot, ReviewFileName)
}

// ConfigDir returns the XDG config directory for picsort
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// StateDir returns the XDG state directory for picsort
func (p *paths) StateDir() string {
	return p.xdgState
}

// ConfigFilePath returns the path to the user configuration file
func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

// SourceConfigPath returns the path to the per-source configuration file
func (p *paths) SourceConfigPath() string {
	return filepath.Join(p.sourceRoot, SourceConfigFile)
}

// ConfigSearchPaths returns every configuration file location in load
// order, lowest priority first: the XDG config file, then the
// per-source file, each in TOML and YAML variants. Missing files are
// skipped by the loader.
func (p *paths) ConfigSearchPaths() []string {
	return []string{
		filepath.Join(p.xdgConfig, ConfigFileName),
		filepath.Join(p.xdgConfig, ConfigFileNameYAML),
		filepath.Join(p.sourceRoot, SourceConfigFile),
		filepath.Join(p.sourceRoot, SourceConfigFileYAML),
	}
}

// LogFilePath returns the path to the picsort log file
// Respects XDG_STATE_HOME if set
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// NormalizePath normalizes a path by expanding home, making it absolute,
// and cleaning it
func (p *paths) NormalizePath(path string) (string, error) {
	return normalize(path)
}

// OutputInsideSource reports whether the output root sits inside the
// source root. Files migrated into such an output root would be walked
// again on the next run, so callers warn when this is true.
func (p *paths) OutputInsideSource() bool {
	within, err := IsWithin(p.sourceRoot, p.outputRoot)
	if err != nil {
		return false
	}
	return within
}

// IsWithin checks if child is located at or below parent
func IsWithin(parent, child string) (bool, error) {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false, nil
	}

	// If the relative path starts with .., it's outside parent
	return !strings.HasPrefix(rel, ".."), nil
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	return expandHome(path)
}
