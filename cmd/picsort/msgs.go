package picsort

import (
	"embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort         = "Sort photo and video dumps into a date-based library"
	MsgSortShort         = "Move media files into the output library"
	MsgScanShort         = "Inspect a dump without moving anything"
	MsgLedgerShort       = "Inspect the migration ledger"
	MsgLedgerListShort   = "List every migrated file the ledger records"
	MsgLedgerVerifyShort = "Check that recorded files still exist on disk"
	MsgCleanupShort      = "Remove empty directories from a source tree"
	MsgCleanupLong       = "Cleanup removes every directory under SOURCE that holds no files, the deepest ones first."
	MsgGenConfigShort    = "Generate a starter configuration file"
	MsgCompletionShort   = "Generate shell completion script"
	MsgTopicsShort       = "List available help topics"
	MsgTopicsLong        = "Topics lists the long-form help topics. Read one with 'picsort help <topic>'."

	// Status messages
	MsgSourceFormat        = "Source: %s\n"
	MsgDefaultOutFormat    = "Output dir wasn't specified, so %s will be used\n"
	MsgScanSummaryFormat   = "Found %d valid files and %d invalid files...\n"
	MsgMovingFiles         = "Moving files..."
	MsgUnmatchedHeader     = "Files that weren't pictures:"
	MsgErrorsHeader        = "Files that had errors:"
	MsgErrorItemFormat     = "%s: %v\n"
	MsgCleanupFormat       = "Deleted %d empty directories\n"
	MsgConfigWrittenFormat = "Config written to %s\n"
	MsgLedgerEntryFormat   = "%s  <--  %s\n"
	MsgLedgerCountFormat   = "%d files recorded in %s\n"
	MsgVerifyOkFormat      = "All %d recorded files are present\n"
	MsgVerifyMissingFormat = "%d of %d recorded files are missing:\n"
	MsgMissingItemFormat   = "  %s\n"

	// Error messages
	MsgErrSort      = "failed to sort files: %w"
	MsgErrScan      = "failed to scan files: %w"
	MsgErrLedger    = "failed to read ledger: %w"
	MsgErrCleanup   = "failed to clean up: %w"
	MsgErrGenConfig = "failed to generate config: %w"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat  = "Output format: auto, term, text or json"
	MsgFlagNoColor = "Disable colors and styling (same as --format text)"
	MsgFlagOut     = "Output directory (default: a 'pictures' sibling of SOURCE)"
	MsgFlagApply   = "Move and delete files (dry run without)"
	MsgFlagCleanup = "Remove empty directories from SOURCE after moving"
	MsgFlagWrite   = "Write the config file instead of printing it"
	MsgFlagDir     = "Directory to write the config file into"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/sort-long.txt
	msgSortLongRaw string
	MsgSortLong    = strings.TrimSpace(msgSortLongRaw)

	//go:embed msgs/sort-example.txt
	msgSortExampleRaw string
	MsgSortExample    = strings.TrimSpace(msgSortExampleRaw)

	//go:embed msgs/scan-long.txt
	msgScanLongRaw string
	MsgScanLong    = strings.TrimSpace(msgScanLongRaw)

	//go:embed msgs/ledger-long.txt
	msgLedgerLongRaw string
	MsgLedgerLong    = strings.TrimSpace(msgLedgerLongRaw)

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = msgUsageTemplateRaw
)

// Long-form help topics, readable via `picsort help <topic>`
//
//go:embed topics
var topicsFS embed.FS
