// Package plan turns timestamped source records into a migration plan:
// a mapping from date-derived target paths to the source files that will
// move there. Targets are relative to the output root; the executor and
// ledger join them against the configured root.
package plan

import (
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/picsort/pkg/logging"
	"github.com/arthur-debert/picsort/pkg/types"
)

var log = logging.GetLogger("plan")

// Plan maps relative target paths to absolute source paths. Every target
// is unique; collisions are resolved during building.
type Plan struct {
	moves map[string]string
}

// NewPlan returns an empty plan
func NewPlan() *Plan {
	return &Plan{moves: make(map[string]string)}
}

// Len returns the number of planned moves
func (p *Plan) Len() int {
	return len(p.moves)
}

// Source returns the source path planned for target
func (p *Plan) Source(target string) (string, bool) {
	src, ok := p.moves[target]
	return src, ok
}

// Targets returns all target paths in sorted order
func (p *Plan) Targets() []string {
	targets := make([]string, 0, len(p.moves))
	for target := range p.moves {
		targets = append(targets, target)
	}
	sort.Strings(targets)
	return targets
}

// Moves returns the planned moves sorted by target path
func (p *Plan) Moves() []types.Move {
	moves := make([]types.Move, 0, len(p.moves))
	for _, target := range p.Targets() {
		moves = append(moves, types.Move{Target: target, Source: p.moves[target]})
	}
	return moves
}

// Remove drops the move planned for target, if any
func (p *Plan) Remove(target string) {
	delete(p.moves, target)
}

// add records a move. It is only called with targets already proven unique.
func (p *Plan) add(target, source string) {
	p.moves[target] = source
}

// Build derives a migration plan from the given records. Records mapping
// to the same second and extension receive a numeric suffix before the
// extension, assigned in source path order so repeated runs over the same
// input produce the same plan.
func Build(records []types.SourceRecord) *Plan {
	p := NewPlan()

	// Sort by source path so suffix assignment does not depend on
	// discovery order.
	sorted := make([]types.SourceRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	grouped := make(map[string][]string)
	order := make([]string, 0, len(sorted))
	for _, rec := range sorted {
		target := TargetFor(rec.Timestamp, rec.Path)
		if _, seen := grouped[target]; !seen {
			order = append(order, target)
		}
		grouped[target] = append(grouped[target], rec.Path)
	}

	for _, target := range order {
		sources := grouped[target]
		if len(sources) == 1 {
			p.add(target, sources[0])
			continue
		}

		// All colliding sources get a suffix, including the first one
		for i, source := range sources {
			p.add(disambiguate(target, i+1), source)
		}
	}

	log.Debug().
		Int("records", len(records)).
		Int("moves", p.Len()).
		Msg("Plan built")

	return p
}

// TargetFor returns the relative target path for a file captured at ts.
// The layout is one directory per year with a verbose, sortable file
// name, keeping the source file's extension verbatim:
//
//	2019/07_14_12_30_05__14th_of_July_at_12h_30m.jpg
func TargetFor(ts time.Time, sourcePath string) string {
	name := fmt.Sprintf("%02d_%02d_%02d_%02d_%02d__%dth_of_%s_at_%02dh_%02dm",
		int(ts.Month()), ts.Day(), ts.Hour(), ts.Minute(), ts.Second(),
		ts.Day(), ts.Month().String(), ts.Hour(), ts.Minute())

	if ext := extensionOf(sourcePath); ext != "" {
		name = name + "." + ext
	}

	return path.Join(strconv.Itoa(ts.Year()), name)
}

// disambiguate inserts a 1-based suffix between the name and its extension
func disambiguate(target string, n int) string {
	ext := path.Ext(target)
	base := strings.TrimSuffix(target, ext)
	return fmt.Sprintf("%s_%d%s", base, n, ext)
}

// extensionOf returns the text after the final dot of the file name,
// preserving its case
func extensionOf(sourcePath string) string {
	base := path.Base(sourcePath)
	idx := strings.LastIndex(base, ".")
	if idx < 0 || idx == len(base)-1 {
		return ""
	}
	return base[idx+1:]
}
