package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/picsort/pkg/errors"
	"github.com/arthur-debert/picsort/pkg/paths"
	"github.com/arthur-debert/picsort/pkg/testutil"
)

// testConfig writes a config file disabling exiftool so tests never
// spawn a subprocess, and returns it as a one-element search path.
func testConfig(t *testing.T) []string {
	t.Helper()

	dir := testutil.TempDir(t)
	path := testutil.CreateFile(t, dir, "picsort.toml", "[exiftool]\nenabled = false\n")
	return []string{path}
}

func appendBytes(t *testing.T, path, data string) {
	t.Helper()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func TestSortDryRun(t *testing.T) {
	src := testutil.TempDir(t)
	out := filepath.Join(testutil.TempDir(t), "pictures")
	photo := testutil.CreateTIFF(t, src, "photo.jpg", "2019:07:14 12:30:05")
	testutil.CreateFileModTime(t, src, "holiday.png", "pixels",
		time.Date(2020, 3, 2, 8, 15, 0, 0, time.Local))
	testutil.CreateFile(t, src, "notes.txt", "not media")

	result, err := Sort(SortOptions{Source: src, Out: out, ConfigFiles: testConfig(t)})
	require.NoError(t, err)

	require.NotNil(t, result.Report)
	assert.False(t, result.Report.Apply)
	assert.Equal(t, out, result.Report.OutputRoot)

	require.Len(t, result.Report.Moves, 2)
	assert.Equal(t, "2019/07_14_12_30_05__14th_of_July_at_12h_30m.jpg", result.Report.Moves[0].Target)
	assert.Equal(t, photo, result.Report.Moves[0].Source)
	assert.Equal(t, "2020/03_02_08_15_00__2th_of_March_at_08h_15m.png", result.Report.Moves[1].Target)

	assert.Equal(t, []string{filepath.Join(src, "notes.txt")}, result.Scan.Unmatched)

	// Nothing on disk changes in a dry run
	assert.True(t, testutil.FileExists(t, photo))
	testutil.AssertNoFile(t, out)
	testutil.AssertNoFile(t, result.Paths.LedgerPath())
}

func TestSortApply(t *testing.T) {
	src := testutil.TempDir(t)
	out := filepath.Join(testutil.TempDir(t), "pictures")
	photo := testutil.CreateTIFF(t, src, "photo.jpg", "2019:07:14 12:30:05")

	result, err := Sort(SortOptions{Source: src, Out: out, Apply: true, ConfigFiles: testConfig(t)})
	require.NoError(t, err)

	require.Len(t, result.Report.Moves, 1)
	assert.True(t, result.Report.Apply)

	target := filepath.Join(out, "2019", "07_14_12_30_05__14th_of_July_at_12h_30m.jpg")
	assert.True(t, testutil.FileExists(t, target))
	testutil.AssertNoFile(t, photo)
	assert.True(t, testutil.FileExists(t, result.Paths.LedgerPath()))
}

func TestSortDuplicateRoundTrip(t *testing.T) {
	src := testutil.TempDir(t)
	out := filepath.Join(testutil.TempDir(t), "pictures")
	cfg := testConfig(t)

	testutil.CreateTIFF(t, src, "photo.jpg", "2019:07:14 12:30:05")
	_, err := Sort(SortOptions{Source: src, Out: out, Apply: true, ConfigFiles: cfg})
	require.NoError(t, err)

	// The same shot shows up again under a different name
	again := testutil.CreateTIFF(t, src, "copy-of-photo.jpg", "2019:07:14 12:30:05")

	result, err := Sort(SortOptions{Source: src, Out: out, Apply: true, ConfigFiles: cfg})
	require.NoError(t, err)

	assert.Empty(t, result.Report.Moves)
	require.Len(t, result.Report.Duplicates, 1)
	assert.Equal(t, again, result.Report.Duplicates[0].Incoming)
	testutil.AssertNoFile(t, again)

	target := filepath.Join(out, "2019", "07_14_12_30_05__14th_of_July_at_12h_30m.jpg")
	assert.True(t, testutil.FileExists(t, target))
}

func TestSortConflictLeavesBothFiles(t *testing.T) {
	src := testutil.TempDir(t)
	out := filepath.Join(testutil.TempDir(t), "pictures")
	cfg := testConfig(t)

	testutil.CreateTIFF(t, src, "photo.jpg", "2019:07:14 12:30:05")
	_, err := Sort(SortOptions{Source: src, Out: out, Apply: true, ConfigFiles: cfg})
	require.NoError(t, err)

	// Same capture second, different content. Decoders ignore trailing
	// bytes, so this still resolves to the migrated target.
	reshoot := testutil.CreateTIFF(t, src, "reshoot.jpg", "2019:07:14 12:30:05")
	appendBytes(t, reshoot, "different pixels")

	result, err := Sort(SortOptions{Source: src, Out: out, Apply: true, ConfigFiles: cfg})
	require.NoError(t, err)

	assert.Empty(t, result.Report.Moves)
	assert.Empty(t, result.Report.Duplicates)
	require.Len(t, result.Report.Conflicts, 1)

	conflict := result.Report.Conflicts[0]
	assert.Equal(t, reshoot, conflict.Incoming)
	assert.True(t, testutil.FileExists(t, reshoot))
	assert.True(t, testutil.FileExists(t, conflict.Existing))
	assert.True(t, testutil.FileExists(t, result.Paths.ReviewPath()))
}

func TestSortCleanupRunsOnlyInApplyMode(t *testing.T) {
	cfg := testConfig(t)
	stamp := time.Date(2020, 3, 2, 8, 15, 0, 0, time.Local)

	srcDry := testutil.TempDir(t)
	testutil.CreateFile(t, srcDry, "keep.txt", "stays")
	testutil.CreateFileModTime(t, srcDry, "sub/holiday.png", "pixels", stamp)

	dry, err := Sort(SortOptions{
		Source:      srcDry,
		Out:         filepath.Join(testutil.TempDir(t), "pictures"),
		Cleanup:     true,
		ConfigFiles: cfg,
	})
	require.NoError(t, err)
	assert.Zero(t, dry.CleanedDirs)
	assert.True(t, testutil.DirExists(t, filepath.Join(srcDry, "sub")))

	srcApply := testutil.TempDir(t)
	testutil.CreateFile(t, srcApply, "keep.txt", "stays")
	testutil.CreateFileModTime(t, srcApply, "sub/holiday.png", "pixels", stamp)

	applied, err := Sort(SortOptions{
		Source:      srcApply,
		Out:         filepath.Join(testutil.TempDir(t), "pictures"),
		Apply:       true,
		Cleanup:     true,
		ConfigFiles: cfg,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, applied.CleanedDirs)
	testutil.AssertNoFile(t, filepath.Join(srcApply, "sub"))
}

func TestSortMissingSource(t *testing.T) {
	dir := testutil.TempDir(t)

	_, err := Sort(SortOptions{
		Source:      filepath.Join(dir, "nope"),
		Out:         filepath.Join(dir, "out"),
		ConfigFiles: testConfig(t),
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestSortCorruptLedgerAborts(t *testing.T) {
	src := testutil.TempDir(t)
	out := testutil.TempDir(t)
	testutil.CreateTIFF(t, src, "photo.jpg", "2019:07:14 12:30:05")
	testutil.CreateFile(t, out, paths.LedgerFileName, "{ not json")

	result, err := Sort(SortOptions{Source: src, Out: out, Apply: true, ConfigFiles: testConfig(t)})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCorruptLedger))

	// Discovery finished before the failure and nothing moved
	require.NotNil(t, result)
	assert.Len(t, result.Scan.Records, 1)
	assert.Nil(t, result.Report)
	assert.True(t, testutil.FileExists(t, filepath.Join(src, "photo.jpg")))
}

func TestSortNestedOutputNotRescanned(t *testing.T) {
	src := testutil.TempDir(t)
	out := filepath.Join(src, "pictures")
	cfg := testConfig(t)

	testutil.CreateTIFF(t, src, "photo.jpg", "2019:07:14 12:30:05")
	_, err := Sort(SortOptions{Source: src, Out: out, Apply: true, ConfigFiles: cfg})
	require.NoError(t, err)

	result, err := Sort(SortOptions{Source: src, Out: out, ConfigFiles: cfg})
	require.NoError(t, err)
	assert.Empty(t, result.Report.Moves)
	assert.Empty(t, result.Report.Conflicts)
	assert.Empty(t, result.Scan.Records)
	assert.Empty(t, result.Scan.Unmatched)
}

func TestSortCollectsTimestampFailures(t *testing.T) {
	src := testutil.TempDir(t)
	testutil.CreateFile(t, src, "fresh.png", "taken today")

	result, err := Sort(SortOptions{
		Source:      src,
		Out:         filepath.Join(testutil.TempDir(t), "pictures"),
		ConfigFiles: testConfig(t),
	})
	require.NoError(t, err)

	assert.Empty(t, result.Report.Moves)
	require.Len(t, result.Scan.Errors, 1)
	assert.True(t, errors.IsErrorCode(result.Scan.Errors[0].Err, errors.ErrNoTimestamp))
}

func TestSortEmptySource(t *testing.T) {
	result, err := Sort(SortOptions{
		Source:      testutil.TempDir(t),
		Out:         filepath.Join(testutil.TempDir(t), "pictures"),
		ConfigFiles: testConfig(t),
	})
	require.NoError(t, err)
	assert.Empty(t, result.Report.Moves)
	assert.Zero(t, result.Scan.ValidCount())
}

func TestSortReportsProgress(t *testing.T) {
	src := testutil.TempDir(t)
	testutil.CreateTIFF(t, src, "photo.jpg", "2019:07:14 12:30:05")

	var seen []string
	_, err := Sort(SortOptions{
		Source:      src,
		Out:         filepath.Join(testutil.TempDir(t), "pictures"),
		ConfigFiles: testConfig(t),
		Progress:    func(path string) { seen = append(seen, path) },
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(src, "photo.jpg")}, seen)
}
