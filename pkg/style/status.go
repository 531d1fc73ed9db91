package style

import (
	"github.com/pterm/pterm"
)

// Outcome classifies what happened, or would happen, to a single file
// during a run
type Outcome string

const (
	OutcomeMoved     Outcome = "moved"     // File migrated into the output tree
	OutcomePlanned   Outcome = "planned"   // Dry run, file would be migrated
	OutcomeDuplicate Outcome = "duplicate" // Byte-identical to an already migrated file
	OutcomeConflict  Outcome = "conflict"  // Same target, different content, needs review
	OutcomeFailed    Outcome = "failed"    // Move attempted and failed
)

// OutcomeStyle returns the appropriate pterm style for an outcome
func OutcomeStyle(outcome Outcome) *pterm.Style {
	switch outcome {
	case OutcomeMoved:
		return pterm.NewStyle(pterm.FgGreen)
	case OutcomePlanned:
		return pterm.NewStyle(pterm.FgYellow)
	case OutcomeDuplicate:
		return pterm.NewStyle(pterm.FgMagenta)
	case OutcomeConflict:
		return pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	case OutcomeFailed:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// outcomeGlyphs are the single-character markers shown before file lines
var outcomeGlyphs = map[Outcome]string{
	OutcomeMoved:     "✓",
	OutcomePlanned:   "→",
	OutcomeDuplicate: "=",
	OutcomeConflict:  "!",
	OutcomeFailed:    "✗",
}

// Indicator returns the styled marker for an outcome
func Indicator(outcome Outcome) string {
	glyph, ok := outcomeGlyphs[outcome]
	if !ok {
		glyph = "·"
	}
	return OutcomeStyle(outcome).Sprint(glyph)
}
