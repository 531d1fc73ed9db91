package types

import (
	"time"
)

// FileKind classifies a discovered file by its extension
type FileKind string

const (
	// KindImageWithMeta is an image format that usually carries EXIF metadata
	KindImageWithMeta FileKind = "image_meta"

	// KindImage is an image format without embedded capture metadata
	KindImage FileKind = "image"

	// KindVideo is a video container format
	KindVideo FileKind = "video"

	// KindUnrecognized is anything picsort does not organize
	KindUnrecognized FileKind = "unrecognized"
)

// SourceRecord pairs a discovered media file with its resolved capture time.
// Timestamps are timezone-naive with second resolution; records are built
// during discovery and discarded once a plan exists.
type SourceRecord struct {
	// Timestamp is the best-known capture time of the file
	Timestamp time.Time

	// Path is the absolute path of the source file
	Path string
}

// Move is a single planned migration: a relative target below the output
// root and the absolute source file that will land there.
type Move struct {
	// Target is the date-derived path relative to the output root
	Target string

	// Source is the absolute pre-move path of the file
	Source string
}

// MoveFailure records a move that could not be applied. The run continues;
// failures surface in the report instead of aborting the whole migration.
type MoveFailure struct {
	Move Move

	// Err is the failure, typically a TARGET_EXISTS or FILE_MOVE error
	Err error
}

// Duplicate is an incoming file proven byte-identical to a target that a
// previous run already migrated. In apply mode the incoming copy is deleted.
type Duplicate struct {
	// Target is the relative target path both files map to
	Target string

	// Existing is the absolute path of the already-migrated file
	Existing string

	// Incoming is the absolute path of the redundant source file
	Incoming string
}

// Conflict is an ambiguous duplicate: a target already recorded in the
// ledger whose incoming file has different content. Neither copy is
// touched; the operator resolves it by hand.
type Conflict struct {
	// Target is the contested relative target path
	Target string `yaml:"target"`

	// Existing is the absolute path of the already-migrated file
	Existing string `yaml:"existing"`

	// Incoming is the absolute path of the file left behind at its source
	Incoming string `yaml:"incoming"`
}

// Report is the outcome of one migration run. Dry runs produce the same
// report content as apply runs without touching the filesystem.
type Report struct {
	// RunID uniquely identifies this invocation in logs and output
	RunID string

	// Apply is true when the filesystem and ledger were actually mutated
	Apply bool

	// OutputRoot is the absolute directory migrated files land in
	OutputRoot string

	// Moves lists every migration that was applied (or, in a dry run,
	// would be applied), sorted by target path
	Moves []Move

	// Duplicates lists incoming files proven byte-identical to an
	// already-migrated target (deleted in apply mode)
	Duplicates []Duplicate

	// Conflicts lists ambiguous duplicates requiring manual review
	Conflicts []Conflict

	// Failures lists moves that could not be applied
	Failures []MoveFailure

	// Elapsed is the wall-clock duration of the run
	Elapsed time.Duration
}
