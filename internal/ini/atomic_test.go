package ini

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusctl/internal/focuserr"
)

func TestWriteAtomic_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kwinrc")

	require.NoError(t, WriteAtomic(path, []byte("[Plugins]\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[Plugins]\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
	assertNoTempFiles(t, dir)
}

func TestWriteAtomic_KeepsExistingMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kwinrc")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o600))
	require.NoError(t, os.Chmod(path, 0o600))

	require.NoError(t, WriteAtomic(path, []byte("new\n")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriteAtomic_WithMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kwinrc")
	require.NoError(t, WriteAtomic(path, []byte("x\n"), WithMode(0o640)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}

func TestWriteAtomic_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "kwinrc")
	err := WriteAtomic(path, []byte("x\n"))
	require.Error(t, err)
	assert.True(t, focuserr.HasCode(err, focuserr.CodeIO))
}

func TestWriteAtomic_RenameFailureLeavesTargetAlone(t *testing.T) {
	dir := t.TempDir()
	// A non-empty directory cannot be replaced by a rename of a file.
	target := filepath.Join(dir, "kwinrc")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "keep"), []byte("keep"), 0o644))

	err := WriteAtomic(target, []byte("x\n"))
	require.Error(t, err)
	assert.True(t, focuserr.HasCode(err, focuserr.CodeIO))

	data, err := os.ReadFile(filepath.Join(target, "keep"))
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
	assertNoTempFiles(t, dir)
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".*.tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}
