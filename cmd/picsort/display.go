package picsort

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/picsort/pkg/commands"
	"github.com/arthur-debert/picsort/pkg/paths"
	"github.com/arthur-debert/picsort/pkg/scan"
	"github.com/arthur-debert/picsort/pkg/style"
)

// initPaths resolves the run's directories and, outside JSON mode,
// prints where files come from and where they will land
func initPaths(source, out string, format style.Format) (paths.Paths, error) {
	p, err := paths.New(source, out)
	if err != nil {
		return nil, err
	}

	if format != style.FormatJSON {
		fmt.Printf(MsgSourceFormat, p.SourceRoot())
		if p.DefaultedOutput() {
			fmt.Printf(MsgDefaultOutFormat, p.OutputRoot())
		}
	}

	return p, nil
}

// scanProgress shows the file currently being scanned. Off-terminal (and
// in text or JSON mode) it does nothing.
type scanProgress struct {
	spinner *pterm.SpinnerPrinter
}

func newScanProgress(format style.Format) *scanProgress {
	if format.Resolve() != style.FormatTerminal {
		return &scanProgress{}
	}

	spinner, err := pterm.DefaultSpinner.WithRemoveWhenDone(true).Start("Scanning...")
	if err != nil {
		return &scanProgress{}
	}
	return &scanProgress{spinner: spinner}
}

// Update shows the file being scanned
func (p *scanProgress) Update(path string) {
	if p.spinner != nil {
		p.spinner.UpdateText("Scanning " + filepath.Base(path))
	}
}

// Done stops the spinner; safe to call more than once
func (p *scanProgress) Done() {
	if p.spinner != nil {
		_ = p.spinner.Stop()
		p.spinner = nil
	}
}

// moveProgress shows a bar while files are moved. The bar starts lazily
// on the first update because the move count is only known after
// reconciliation.
type moveProgress struct {
	enabled bool
	bar     *pterm.ProgressbarPrinter
}

func newMoveProgress(format style.Format) *moveProgress {
	return &moveProgress{enabled: format.Resolve() == style.FormatTerminal}
}

// Update advances the bar to done of total
func (p *moveProgress) Update(done, total int) {
	if !p.enabled {
		return
	}

	if p.bar == nil {
		bar, err := pterm.DefaultProgressbar.
			WithTotal(total).
			WithTitle("Moving files").
			WithRemoveWhenDone(true).
			Start()
		if err != nil {
			p.enabled = false
			return
		}
		p.bar = bar
	}
	p.bar.Increment()
}

// Done stops the bar; safe to call more than once
func (p *moveProgress) Done() {
	if p.bar != nil {
		_, _ = p.bar.Stop()
		p.bar = nil
	}
	p.enabled = false
}

// printInvalid lists files the scan could not use, in the classic
// verbose layout. On a terminal the markup renders as color; elsewhere
// it is stripped.
func printInvalid(result *scan.Result, format style.Format) {
	render := style.Render
	if format.Resolve() != style.FormatTerminal {
		render = style.StripTags
	}

	if len(result.Unmatched) > 0 {
		fmt.Println(render("[warning]" + MsgUnmatchedHeader + "[/warning]"))
		for _, path := range result.Unmatched {
			fmt.Println(render("[path]" + path + "[/path]"))
		}
	}

	if len(result.Errors) > 0 {
		fmt.Println(render("[warning]" + MsgErrorsHeader + "[/warning]"))
		for _, fe := range result.Errors {
			fmt.Printf(MsgErrorItemFormat, render("[path]"+fe.Path+"[/path]"), fe.Err)
		}
	}
}

type jsonScanError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

type jsonScan struct {
	Valid     int             `json:"valid"`
	Invalid   int             `json:"invalid"`
	Files     []string        `json:"files"`
	Unmatched []string        `json:"unmatched"`
	Errors    []jsonScanError `json:"errors"`
}

// renderScanJSON renders a discovery result as indented JSON
func renderScanJSON(result *scan.Result) string {
	out := jsonScan{
		Valid:     result.ValidCount(),
		Invalid:   result.InvalidCount(),
		Files:     make([]string, 0, len(result.Records)),
		Unmatched: result.Unmatched,
		Errors:    make([]jsonScanError, 0, len(result.Errors)),
	}
	if out.Unmatched == nil {
		out.Unmatched = []string{}
	}

	for _, rec := range result.Records {
		out.Files = append(out.Files, rec.Path)
	}
	for _, fe := range result.Errors {
		out.Errors = append(out.Errors, jsonScanError{Path: fe.Path, Error: fe.Err.Error()})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}

type jsonLedgerEntry struct {
	Target string `json:"target"`
	Source string `json:"source"`
}

type jsonLedger struct {
	Path    string            `json:"path"`
	Entries []jsonLedgerEntry `json:"entries"`
}

// renderLedgerJSON renders the ledger entries as indented JSON
func renderLedgerJSON(result *commands.LedgerListResult) string {
	out := jsonLedger{
		Path:    result.Paths.LedgerPath(),
		Entries: make([]jsonLedgerEntry, 0, len(result.Entries)),
	}
	for _, e := range result.Entries {
		out.Entries = append(out.Entries, jsonLedgerEntry{Target: e.Target, Source: e.Source})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}

type jsonVerify struct {
	Ok      bool     `json:"ok"`
	Total   int      `json:"total"`
	Missing []string `json:"missing"`
}

// renderVerifyJSON renders a ledger verification as indented JSON
func renderVerifyJSON(result *commands.LedgerVerifyResult) string {
	out := jsonVerify{
		Ok:      result.Ok(),
		Total:   result.Total,
		Missing: make([]string, 0, len(result.Missing)),
	}
	for _, e := range result.Missing {
		out.Missing = append(out.Missing, e.Target)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}
