package style

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/picsort/pkg/errors"
	"github.com/arthur-debert/picsort/pkg/types"
)

// Renderer defines the interface for rendering run output
type Renderer interface {
	RenderReport(report *types.Report) string
	RenderError(err error) string
}

// NewRenderer returns the renderer for a format, resolving auto
// detection against stdout
func NewRenderer(format Format) Renderer {
	switch format.Resolve() {
	case FormatJSON:
		return &JSONRenderer{}
	case FormatTerminal:
		return &TerminalRenderer{}
	default:
		return &PlainRenderer{}
	}
}

// targetPath resolves a relative target for display
func targetPath(report *types.Report, target string) string {
	if report.OutputRoot == "" {
		return filepath.FromSlash(target)
	}
	return filepath.Join(report.OutputRoot, filepath.FromSlash(target))
}

// conflictLine is shared by the text renderers; terminal output renders
// the markup and plain output strips it
func conflictLine(report *types.Report, c types.Conflict) string {
	return fmt.Sprintf("[conflict]Files %s and %s are different. Please compare manually![/conflict]",
		targetPath(report, c.Target), c.Incoming)
}

// TerminalRenderer implements Renderer with rich terminal output
type TerminalRenderer struct{}

// RenderReport renders a run report with colors and a summary box
func (r *TerminalRenderer) RenderReport(report *types.Report) string {
	if reportEmpty(report) {
		return MutedStyle.Render("Nothing to do")
	}

	var result strings.Builder

	lineOutcome := OutcomeMoved
	if !report.Apply {
		lineOutcome = OutcomePlanned
	}

	for _, m := range report.Moves {
		result.WriteString(fmt.Sprintf("%s %s --> %s\n",
			Indicator(lineOutcome),
			PathStyle.Render(m.Source),
			MoveStyle.Render(targetPath(report, m.Target))))
	}

	for _, f := range report.Failures {
		result.WriteString(fmt.Sprintf("%s %s --> %s: %v\n",
			Indicator(OutcomeFailed),
			PathStyle.Render(f.Move.Source),
			PathStyle.Render(targetPath(report, f.Move.Target)),
			f.Err))
	}

	for _, c := range report.Conflicts {
		result.WriteString(fmt.Sprintf("%s %s\n", Indicator(OutcomeConflict), Render(conflictLine(report, c))))
	}

	result.WriteString("\n" + BoxStyle.Render(summaryLines(report)))

	return result.String()
}

// RenderError renders an error in the error style. Coded errors already
// carry their code in the message, so nothing is added here.
func (r *TerminalRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	return ErrorStyle.Render(fmt.Sprintf("Error: %v", err))
}

// PlainRenderer implements Renderer with plain text output (no styling)
type PlainRenderer struct{}

// RenderReport renders a plain report in the classic dry-run layout
func (r *PlainRenderer) RenderReport(report *types.Report) string {
	if reportEmpty(report) {
		return "Nothing to do"
	}

	var result strings.Builder

	for _, m := range report.Moves {
		result.WriteString(fmt.Sprintf("%s --> \t\t%s\n", m.Source, targetPath(report, m.Target)))
	}

	for _, f := range report.Failures {
		result.WriteString(fmt.Sprintf("FAILED %s --> %s: %v\n",
			f.Move.Source, targetPath(report, f.Move.Target), f.Err))
	}

	for _, c := range report.Conflicts {
		result.WriteString(StripTags(conflictLine(report, c)) + "\n")
	}

	result.WriteString("\n" + summaryLines(report))

	return result.String()
}

// RenderError renders a plain error message
func (r *PlainRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// JSONRenderer implements Renderer with machine-readable output
type JSONRenderer struct{}

type jsonFailure struct {
	Target string `json:"target"`
	Source string `json:"source"`
	Error  string `json:"error"`
}

type jsonConflict struct {
	Target   string `json:"target"`
	Existing string `json:"existing"`
	Incoming string `json:"incoming"`
}

type jsonReport struct {
	RunID      string            `json:"run_id"`
	Apply      bool              `json:"apply"`
	OutputRoot string            `json:"output_root"`
	Moves      map[string]string `json:"moves"`
	Duplicates []string          `json:"duplicates"`
	Conflicts  []jsonConflict    `json:"conflicts"`
	Failures   []jsonFailure     `json:"failures"`
	ElapsedMS  int64             `json:"elapsed_ms"`
}

// RenderReport renders the report as indented JSON
func (r *JSONRenderer) RenderReport(report *types.Report) string {
	out := jsonReport{
		RunID:      report.RunID,
		Apply:      report.Apply,
		OutputRoot: report.OutputRoot,
		Moves:      make(map[string]string, len(report.Moves)),
		Duplicates: make([]string, 0, len(report.Duplicates)),
		Conflicts:  make([]jsonConflict, 0, len(report.Conflicts)),
		Failures:   make([]jsonFailure, 0, len(report.Failures)),
		ElapsedMS:  report.Elapsed.Milliseconds(),
	}

	for _, m := range report.Moves {
		out.Moves[m.Target] = m.Source
	}
	for _, d := range report.Duplicates {
		out.Duplicates = append(out.Duplicates, d.Incoming)
	}
	for _, c := range report.Conflicts {
		out.Conflicts = append(out.Conflicts, jsonConflict{Target: c.Target, Existing: c.Existing, Incoming: c.Incoming})
	}
	for _, f := range report.Failures {
		out.Failures = append(out.Failures, jsonFailure{Target: f.Move.Target, Source: f.Move.Source, Error: f.Err.Error()})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}

// RenderError renders the error as a JSON object with its code and details
func (r *JSONRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}

	out := map[string]interface{}{
		"error": err.Error(),
		"code":  string(errors.GetErrorCode(err)),
	}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		out["details"] = details
	}

	data, merr := json.MarshalIndent(out, "", "  ")
	if merr != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}

func reportEmpty(report *types.Report) bool {
	return len(report.Moves) == 0 && len(report.Duplicates) == 0 &&
		len(report.Conflicts) == 0 && len(report.Failures) == 0
}

// summaryLines builds the counts block shared by the text renderers
func summaryLines(report *types.Report) string {
	var lines []string

	if report.Apply {
		lines = append(lines, fmt.Sprintf("Moved %d files", len(report.Moves)))
		if len(report.Duplicates) > 0 {
			lines = append(lines, fmt.Sprintf("Deleted %d duplicates", len(report.Duplicates)))
		}
	} else {
		lines = append(lines, fmt.Sprintf("Would move %d files", len(report.Moves)))
		if len(report.Duplicates) > 0 {
			lines = append(lines, fmt.Sprintf("Would have deleted %d duplicates", len(report.Duplicates)))
		}
	}

	if len(report.Conflicts) > 0 {
		lines = append(lines, fmt.Sprintf("%d conflicts need manual review", len(report.Conflicts)))
	}
	if len(report.Failures) > 0 {
		lines = append(lines, fmt.Sprintf("%d moves failed", len(report.Failures)))
	}

	lines = append(lines, fmt.Sprintf("Finished in %s", report.Elapsed.Round(time.Millisecond)))

	return strings.Join(lines, "\n")
}
