package plan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/picsort/pkg/types"
)

func ts(year int, month time.Month, day, hour, min, sec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, 0, time.Local)
}

func TestTargetFor(t *testing.T) {
	tests := []struct {
		name   string
		time   time.Time
		source string
		want   string
	}{
		{
			name:   "afternoon capture",
			time:   ts(2019, time.July, 14, 12, 30, 5),
			source: "/dump/IMG_0001.jpg",
			want:   "2019/07_14_12_30_05__14th_of_July_at_12h_30m.jpg",
		},
		{
			name:   "single digit day stays unpadded in the verbose part",
			time:   ts(2021, time.January, 3, 4, 5, 6),
			source: "/dump/IMG_0002.png",
			want:   "2021/01_03_04_05_06__3th_of_January_at_04h_05m.png",
		},
		{
			name:   "extension case is preserved",
			time:   ts(2019, time.July, 14, 12, 30, 5),
			source: "/dump/DSC_0001.NEF",
			want:   "2019/07_14_12_30_05__14th_of_July_at_12h_30m.NEF",
		},
		{
			name:   "only the final extension survives",
			time:   ts(2020, time.December, 31, 23, 59, 59),
			source: "/dump/archive.backup.jpeg",
			want:   "2020/12_31_23_59_59__31th_of_December_at_23h_59m.jpeg",
		},
		{
			name:   "no extension yields no trailing dot",
			time:   ts(2020, time.June, 1, 0, 0, 0),
			source: "/dump/scan0001",
			want:   "2020/06_01_00_00_00__1th_of_June_at_00h_00m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TargetFor(tt.time, tt.source))
		})
	}
}

func TestBuildSingleRecords(t *testing.T) {
	records := []types.SourceRecord{
		{Timestamp: ts(2019, time.July, 14, 12, 30, 5), Path: "/dump/a.jpg"},
		{Timestamp: ts(2020, time.March, 2, 8, 15, 0), Path: "/dump/b.mov"},
	}

	p := Build(records)

	require.Equal(t, 2, p.Len())

	src, ok := p.Source("2019/07_14_12_30_05__14th_of_July_at_12h_30m.jpg")
	require.True(t, ok)
	assert.Equal(t, "/dump/a.jpg", src)

	src, ok = p.Source("2020/03_02_08_15_00__2th_of_March_at_08h_15m.mov")
	require.True(t, ok)
	assert.Equal(t, "/dump/b.mov", src)
}

func TestBuildCollisions(t *testing.T) {
	when := ts(2019, time.July, 14, 12, 30, 5)

	records := []types.SourceRecord{
		{Timestamp: when, Path: "/dump/z.jpg"},
		{Timestamp: when, Path: "/dump/a.jpg"},
	}

	p := Build(records)

	require.Equal(t, 2, p.Len())

	// Suffixes are assigned in source path order, first included
	src, ok := p.Source("2019/07_14_12_30_05__14th_of_July_at_12h_30m_1.jpg")
	require.True(t, ok)
	assert.Equal(t, "/dump/a.jpg", src)

	src, ok = p.Source("2019/07_14_12_30_05__14th_of_July_at_12h_30m_2.jpg")
	require.True(t, ok)
	assert.Equal(t, "/dump/z.jpg", src)

	// The unsuffixed target must not exist once a collision happened
	_, ok = p.Source("2019/07_14_12_30_05__14th_of_July_at_12h_30m.jpg")
	assert.False(t, ok)
}

func TestBuildSameSecondDifferentExtension(t *testing.T) {
	when := ts(2019, time.July, 14, 12, 30, 5)

	records := []types.SourceRecord{
		{Timestamp: when, Path: "/dump/a.jpg"},
		{Timestamp: when, Path: "/dump/a.png"},
	}

	p := Build(records)

	require.Equal(t, 2, p.Len())
	_, ok := p.Source("2019/07_14_12_30_05__14th_of_July_at_12h_30m.jpg")
	assert.True(t, ok)
	_, ok = p.Source("2019/07_14_12_30_05__14th_of_July_at_12h_30m.png")
	assert.True(t, ok)
}

func TestBuildDeterministic(t *testing.T) {
	when := ts(2019, time.July, 14, 12, 30, 5)

	forward := []types.SourceRecord{
		{Timestamp: when, Path: "/dump/a.jpg"},
		{Timestamp: when, Path: "/dump/b.jpg"},
		{Timestamp: when, Path: "/dump/c.jpg"},
	}
	backward := []types.SourceRecord{
		{Timestamp: when, Path: "/dump/c.jpg"},
		{Timestamp: when, Path: "/dump/b.jpg"},
		{Timestamp: when, Path: "/dump/a.jpg"},
	}

	assert.Equal(t, Build(forward).Moves(), Build(backward).Moves())
}

func TestPlanAccessors(t *testing.T) {
	records := []types.SourceRecord{
		{Timestamp: ts(2020, time.May, 5, 5, 5, 5), Path: "/dump/b.jpg"},
		{Timestamp: ts(2019, time.May, 5, 5, 5, 5), Path: "/dump/a.jpg"},
	}

	p := Build(records)

	targets := p.Targets()
	require.Len(t, targets, 2)
	assert.True(t, targets[0] < targets[1], "targets must be sorted")

	moves := p.Moves()
	require.Len(t, moves, 2)
	assert.Equal(t, targets[0], moves[0].Target)

	p.Remove(targets[0])
	assert.Equal(t, 1, p.Len())
	_, ok := p.Source(targets[0])
	assert.False(t, ok)
}
