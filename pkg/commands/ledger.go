package commands

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/picsort/pkg/ledger"
	"github.com/arthur-debert/picsort/pkg/logging"
	"github.com/arthur-debert/picsort/pkg/paths"
)

// LedgerOptions holds options for the ledger subcommands
type LedgerOptions struct {
	// Source is the dump directory; the ledger location derives from it
	// the same way it does during a sort
	Source string

	// Out is the output root; empty resolves the default
	Out string
}

// LedgerEntry is one migrated file as recorded in the ledger
type LedgerEntry struct {
	// Target is the relative path below the output root
	Target string

	// Source is the absolute pre-move path the file came from
	Source string
}

// LedgerListResult is the outcome of the ledger list command
type LedgerListResult struct {
	Paths   paths.Paths
	Entries []LedgerEntry
}

// LedgerList loads the ledger and returns its entries sorted by target
func LedgerList(opts LedgerOptions) (*LedgerListResult, error) {
	p, led, err := loadLedger(opts)
	if err != nil {
		return nil, err
	}

	result := &LedgerListResult{Paths: p}
	for _, target := range led.Targets() {
		source, _ := led.Source(target)
		result.Entries = append(result.Entries, LedgerEntry{Target: target, Source: source})
	}

	return result, nil
}

// LedgerVerifyResult is the outcome of the ledger verify command
type LedgerVerifyResult struct {
	Paths paths.Paths

	// Total is the number of ledger entries checked
	Total int

	// Missing lists entries whose target no longer exists below the
	// output root
	Missing []LedgerEntry
}

// Ok reports whether every recorded target is present on disk
func (r *LedgerVerifyResult) Ok() bool {
	return len(r.Missing) == 0
}

// LedgerVerify checks that every target the ledger records still exists
// below the output root. Missing targets usually mean files were moved
// or deleted by hand after migration.
func LedgerVerify(opts LedgerOptions) (*LedgerVerifyResult, error) {
	logger := logging.GetLogger("commands.ledger")

	p, led, err := loadLedger(opts)
	if err != nil {
		return nil, err
	}

	result := &LedgerVerifyResult{Paths: p, Total: led.Len()}
	for _, target := range led.Targets() {
		abs := filepath.Join(p.OutputRoot(), filepath.FromSlash(target))
		if _, err := os.Stat(abs); err != nil {
			source, _ := led.Source(target)
			result.Missing = append(result.Missing, LedgerEntry{Target: target, Source: source})
		}
	}

	logger.Info().
		Int("total", result.Total).
		Int("missing", len(result.Missing)).
		Msg("Ledger verified")

	return result, nil
}

func loadLedger(opts LedgerOptions) (paths.Paths, *ledger.Ledger, error) {
	p, err := paths.New(opts.Source, opts.Out)
	if err != nil {
		return nil, nil, err
	}

	led, err := ledger.Load(p.LedgerPath())
	if err != nil {
		return nil, nil, err
	}

	return p, led, nil
}
