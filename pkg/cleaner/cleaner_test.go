package cleaner

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/picsort/pkg/errors"
	"github.com/arthur-debert/picsort/pkg/testutil"
)

func TestCleanupMixedTree(t *testing.T) {
	root := testutil.TempDir(t)

	// An empty leaf, a directory whose only child is that kind of leaf,
	// and a directory holding an actual file
	testutil.CreateDir(t, root, "y/x")
	testutil.CreateFile(t, root, "z/photo.jpg", "bytes")

	removed, err := Cleanup(root)
	require.NoError(t, err)

	assert.Equal(t, 2, removed)
	testutil.AssertNoFile(t, filepath.Join(root, "y"))
	assert.True(t, testutil.DirExists(t, filepath.Join(root, "z")))
	assert.True(t, testutil.DirExists(t, root), "root survives while any file remains")
}

func TestCleanupRemovesRootWhenFullyEmpty(t *testing.T) {
	tmpDir := testutil.TempDir(t)
	root := testutil.CreateDir(t, tmpDir, "dump")
	testutil.CreateDir(t, root, "a/b/c")

	removed, err := Cleanup(root)
	require.NoError(t, err)

	assert.Equal(t, 4, removed)
	testutil.AssertNoFile(t, root)
}

func TestCleanupDeepNesting(t *testing.T) {
	tmpDir := testutil.TempDir(t)
	root := testutil.CreateDir(t, tmpDir, "dump")

	testutil.CreateDir(t, root, "2019/a/deep/empty")
	testutil.CreateFile(t, root, "2019/keep/photo.jpg", "bytes")

	removed, err := Cleanup(root)
	require.NoError(t, err)

	// a/deep/empty collapses upward, 2019 and keep stay
	assert.Equal(t, 3, removed)
	assert.True(t, testutil.DirExists(t, filepath.Join(root, "2019", "keep")))
	testutil.AssertNoFile(t, filepath.Join(root, "2019", "a"))
}

func TestCleanupNoEmptyDirs(t *testing.T) {
	tmpDir := testutil.TempDir(t)
	root := testutil.CreateDir(t, tmpDir, "dump")
	testutil.CreateFile(t, root, "photo.jpg", "bytes")

	removed, err := Cleanup(root)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

func TestCleanupSymlinkCountsAsContent(t *testing.T) {
	testutil.SkipOnWindows(t)

	tmpDir := testutil.TempDir(t)
	root := testutil.CreateDir(t, tmpDir, "dump")
	outside := testutil.CreateDir(t, tmpDir, "outside")

	testutil.CreateSymlink(t, outside, filepath.Join(root, "link"))

	removed, err := Cleanup(root)
	require.NoError(t, err)

	assert.Equal(t, 0, removed)
	assert.True(t, testutil.DirExists(t, root))
	assert.True(t, testutil.DirExists(t, outside), "link targets are never followed")
}

func TestCleanupMissingRoot(t *testing.T) {
	tmpDir := testutil.TempDir(t)

	_, err := Cleanup(filepath.Join(tmpDir, "ghost"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestCleanupRootIsFile(t *testing.T) {
	tmpDir := testutil.TempDir(t)
	file := testutil.CreateFile(t, tmpDir, "not-a-dir", "bytes")

	_, err := Cleanup(file)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
