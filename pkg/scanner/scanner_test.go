package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel string, size int) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

// buildTree creates the reference tree:
// a.txt (10B), sub/b.txt (20B), .DS_Store (4096B), sub/.hidden (1B)
func buildTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "a.txt", 10)
	writeFile(t, root, "sub/b.txt", 20)
	writeFile(t, root, ".DS_Store", 4096)
	writeFile(t, root, "sub/.hidden", 1)
	return root
}

func TestValidateRoot(t *testing.T) {
	root := t.TempDir()
	assert.NoError(t, ValidateRoot(root))

	assert.Error(t, ValidateRoot(""))
	assert.Error(t, ValidateRoot(filepath.Join(root, "missing")))

	file := filepath.Join(root, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	err := ValidateRoot(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestListFilesSkipsHidden(t *testing.T) {
	root := buildTree(t)

	files := ListFiles(context.Background(), root, false)

	assert.Equal(t, []string{"a.txt", "sub/b.txt"}, files)
}

func TestListFilesIncludeHidden(t *testing.T) {
	root := buildTree(t)

	files := ListFiles(context.Background(), root, true)

	assert.Equal(t, []string{".DS_Store", "a.txt", "sub/.hidden", "sub/b.txt"}, files)
}

func TestListFilesDescendsHiddenDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".git/config", 5)
	writeFile(t, root, ".git/.index", 3)

	// hiddenness filters files only, not the directories containing them
	files := ListFiles(context.Background(), root, false)
	assert.Equal(t, []string{".git/config"}, files)

	files = ListFiles(context.Background(), root, true)
	assert.Equal(t, []string{".git/.index", ".git/config"}, files)
}

func TestListFilesEmptyDirectory(t *testing.T) {
	root := t.TempDir()

	files := ListFiles(context.Background(), root, false)

	assert.NotNil(t, files)
	assert.Empty(t, files)
}

func TestListFilesSorted(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "z.txt", 1)
	writeFile(t, root, "b/nested.txt", 1)
	writeFile(t, root, "a.txt", 1)
	writeFile(t, root, "Z.txt", 1)

	files := ListFiles(context.Background(), root, false)

	// case-sensitive ordinal ordering
	assert.Equal(t, []string{"Z.txt", "a.txt", "b/nested.txt", "z.txt"}, files)
}

func TestStatistics(t *testing.T) {
	root := buildTree(t)

	stats := Statistics(context.Background(), root)

	// .DS_Store excluded from the count but included in the size,
	// sub/.hidden counted like any other file
	assert.Equal(t, uint64(3), stats.Files)
	assert.Equal(t, uint64(1), stats.Folders)
	assert.Equal(t, uint64(4127), stats.TotalSize)
}

func TestStatisticsEmptyDirectory(t *testing.T) {
	stats := Statistics(context.Background(), t.TempDir())

	assert.Equal(t, Stats{}, stats)
}

func TestStatisticsCountsNestedFolders(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a/b/c/d.txt", 7)
	writeFile(t, root, "a/e.txt", 3)

	stats := Statistics(context.Background(), root)

	assert.Equal(t, uint64(2), stats.Files)
	assert.Equal(t, uint64(3), stats.Folders)
	assert.Equal(t, uint64(10), stats.TotalSize)
}

func TestStatisticsDSStoreOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".DS_Store", 128)

	stats := Statistics(context.Background(), root)

	assert.Equal(t, uint64(0), stats.Files)
	assert.Equal(t, uint64(128), stats.TotalSize)
}

func TestUnreadableDirectorySkipped(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	root := t.TempDir()
	writeFile(t, root, "a.txt", 10)
	writeFile(t, root, "locked/secret.txt", 99)

	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	ctx := context.Background()

	// the unreadable directory's contents are omitted, the rest survives
	files := ListFiles(ctx, root, false)
	assert.Equal(t, []string{"a.txt"}, files)

	// the directory itself is still counted; its children contribute nothing
	stats := Statistics(ctx, root)
	assert.Equal(t, uint64(1), stats.Files)
	assert.Equal(t, uint64(1), stats.Folders)
	assert.Equal(t, uint64(10), stats.TotalSize)
}

func TestIdempotence(t *testing.T) {
	root := buildTree(t)
	ctx := context.Background()

	assert.Equal(t, ListFiles(ctx, root, true), ListFiles(ctx, root, true))
	assert.Equal(t, Statistics(ctx, root), Statistics(ctx, root))
}
