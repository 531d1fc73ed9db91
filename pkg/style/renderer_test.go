package style

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/picsort/pkg/errors"
	"github.com/arthur-debert/picsort/pkg/types"
)

func sampleReport(apply bool) *types.Report {
	return &types.Report{
		RunID:      "run-1",
		Apply:      apply,
		OutputRoot: "/out",
		Moves: []types.Move{
			{Target: "2020/03_02_08_15_00__2th_of_March_at_08h_15m.png", Source: "/dump/a.png"},
		},
		Duplicates: []types.Duplicate{
			{Target: "2019/07_14_12_30_05__14th_of_July_at_12h_30m.jpg", Existing: "/out/2019/b.jpg", Incoming: "/dump/b.jpg"},
		},
		Elapsed: 1500 * time.Millisecond,
	}
}

func TestPlainRenderDryRun(t *testing.T) {
	r := &PlainRenderer{}
	got := r.RenderReport(sampleReport(false))

	assert.Contains(t, got, "/dump/a.png --> \t\t/out/2020/03_02_08_15_00__2th_of_March_at_08h_15m.png")
	assert.Contains(t, got, "Would move 1 files")
	assert.Contains(t, got, "Would have deleted 1 duplicates")
	assert.Contains(t, got, "Finished in 1.5s")
}

func TestPlainRenderApply(t *testing.T) {
	report := sampleReport(true)
	report.Conflicts = []types.Conflict{
		{Target: "2018/01_01_09_00_00__1th_of_January_at_09h_00m.jpg", Existing: "/out/old.jpg", Incoming: "/dump/new.jpg"},
	}
	report.Failures = []types.MoveFailure{
		{
			Move: types.Move{Target: "2021/05_05_05_05_05__5th_of_May_at_05h_05m.mp4", Source: "/dump/c.mp4"},
			Err:  errors.New(errors.ErrTargetExists, "target exists"),
		},
	}

	got := (&PlainRenderer{}).RenderReport(report)

	assert.Contains(t, got, "Moved 1 files")
	assert.Contains(t, got, "Deleted 1 duplicates")
	assert.Contains(t, got, "Please compare manually!")
	assert.Contains(t, got, "/dump/new.jpg")
	assert.Contains(t, got, "1 conflicts need manual review")
	assert.Contains(t, got, "FAILED /dump/c.mp4")
	assert.Contains(t, got, "1 moves failed")
}

func TestPlainRenderEmptyReport(t *testing.T) {
	got := (&PlainRenderer{}).RenderReport(&types.Report{RunID: "run-1"})
	assert.Equal(t, "Nothing to do", got)
}

func TestTerminalRenderReport(t *testing.T) {
	got := (&TerminalRenderer{}).RenderReport(sampleReport(false))

	// styling may degrade to plain text off-terminal, content must survive
	assert.Contains(t, got, "/dump/a.png")
	assert.Contains(t, got, "2020/03_02_08_15_00__2th_of_March_at_08h_15m.png")
	assert.Contains(t, got, "Would move 1 files")
}

func TestRenderErrorWithCode(t *testing.T) {
	err := errors.New(errors.ErrNotFound, "source directory /nope does not exist")

	plain := (&PlainRenderer{}).RenderError(err)
	assert.Contains(t, plain, "[NOT_FOUND]")
	assert.Contains(t, plain, "/nope")

	term := (&TerminalRenderer{}).RenderError(err)
	assert.Contains(t, term, "NOT_FOUND")

	assert.Empty(t, (&PlainRenderer{}).RenderError(nil))
	assert.Empty(t, (&TerminalRenderer{}).RenderError(nil))
}

func TestJSONRenderReport(t *testing.T) {
	report := sampleReport(true)
	report.Failures = []types.MoveFailure{
		{
			Move: types.Move{Target: "2021/05_05_05_05_05__5th_of_May_at_05h_05m.mp4", Source: "/dump/c.mp4"},
			Err:  errors.New(errors.ErrFileMove, "disk full"),
		},
	}

	got := (&JSONRenderer{}).RenderReport(report)

	var decoded struct {
		RunID      string            `json:"run_id"`
		Apply      bool              `json:"apply"`
		OutputRoot string            `json:"output_root"`
		Moves      map[string]string `json:"moves"`
		Duplicates []string          `json:"duplicates"`
		Failures   []struct {
			Target string `json:"target"`
			Error  string `json:"error"`
		} `json:"failures"`
		ElapsedMS int64 `json:"elapsed_ms"`
	}
	require.NoError(t, json.Unmarshal([]byte(got), &decoded))

	assert.Equal(t, "run-1", decoded.RunID)
	assert.True(t, decoded.Apply)
	assert.Equal(t, "/out", decoded.OutputRoot)
	assert.Equal(t, "/dump/a.png", decoded.Moves["2020/03_02_08_15_00__2th_of_March_at_08h_15m.png"])
	assert.Equal(t, []string{"/dump/b.jpg"}, decoded.Duplicates)
	require.Len(t, decoded.Failures, 1)
	assert.Contains(t, decoded.Failures[0].Error, "disk full")
	assert.Equal(t, int64(1500), decoded.ElapsedMS)
}

func TestJSONRenderError(t *testing.T) {
	err := errors.New(errors.ErrConfigParse, "bad toml").WithDetail("line", 3)

	got := (&JSONRenderer{}).RenderError(err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(got), &decoded))
	assert.Equal(t, "CONFIG_PARSE", decoded["code"])
	assert.Contains(t, decoded["error"], "bad toml")
	details, ok := decoded["details"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 3, details["line"])
}

func TestNewRenderer(t *testing.T) {
	assert.IsType(t, &JSONRenderer{}, NewRenderer(FormatJSON))
	assert.IsType(t, &PlainRenderer{}, NewRenderer(FormatText))
	assert.IsType(t, &TerminalRenderer{}, NewRenderer(FormatTerminal))
}
