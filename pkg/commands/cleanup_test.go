package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/picsort/pkg/errors"
	"github.com/arthur-debert/picsort/pkg/testutil"
)

func TestCleanupRemovesNestedEmptyDirs(t *testing.T) {
	src := testutil.TempDir(t)
	testutil.CreateDir(t, src, "a/b")
	testutil.CreateFile(t, src, "c/keep.txt", "stays")

	result, err := Cleanup(CleanupOptions{Source: src})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Removed)
	testutil.AssertNoFile(t, filepath.Join(src, "a"))
	assert.True(t, testutil.FileExists(t, filepath.Join(src, "c", "keep.txt")))
}

func TestCleanupMissingSource(t *testing.T) {
	_, err := Cleanup(CleanupOptions{Source: filepath.Join(testutil.TempDir(t), "nope")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}
