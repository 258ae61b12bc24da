// Package scanner implements the directory traversal behind the list-files
// and file-statistics skills: a recursive walk producing either sorted
// relative file paths or aggregate counts and sizes.
package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/skillet-dev/skillet/pkg/logger"
)

// Stats holds aggregate counts for a directory tree.
// Files excludes entries named exactly ".DS_Store"; TotalSize includes them.
// Folders excludes the scan root itself.
type Stats struct {
	Files     uint64 `json:"files"`
	Folders   uint64 `json:"folders"`
	TotalSize uint64 `json:"total_size"`
}

// ValidateRoot checks that path exists and is a directory.
func ValidateRoot(path string) error {
	if path == "" {
		return errors.New("directory path is required")
	}

	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "directory %s does not exist", path)
	}
	if !info.IsDir() {
		return errors.Errorf("%s is not a directory", path)
	}

	return nil
}

// ListFiles walks root recursively and returns the relative paths of all
// files found, sorted lexicographically. Files whose basename starts with a
// period are skipped unless includeHidden is set; hidden directories are
// still descended into. Entries directly under root use bare names with no
// "./" prefix. The walk itself never fails; callers validate root with
// ValidateRoot first. Unreadable directories are skipped.
func ListFiles(ctx context.Context, root string, includeHidden bool) []string {
	files := []string{}

	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.G(ctx).WithError(err).WithField("path", path).Debug("skipping unreadable entry")
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !includeHidden && strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			logger.G(ctx).WithError(err).WithField("path", path).Debug("cannot relativize path")
			return nil
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})

	sort.Strings(files)
	return files
}

// Statistics walks root recursively and returns aggregate counts: the number
// of files (excluding ".DS_Store" entries), the number of directories
// strictly under root, and the total byte size of all files including
// ".DS_Store". A file whose metadata cannot be read contributes nothing to
// the total size but does not abort the scan.
func Statistics(ctx context.Context, root string) Stats {
	var stats Stats

	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.G(ctx).WithError(err).WithField("path", path).Debug("skipping unreadable entry")
			return nil
		}

		if d.IsDir() {
			if path != root {
				stats.Folders++
			}
			return nil
		}

		if d.Name() != ".DS_Store" {
			stats.Files++
		}

		info, err := d.Info()
		if err != nil {
			logger.G(ctx).WithError(err).WithField("path", path).Debug("cannot stat file, size not counted")
			return nil
		}
		stats.TotalSize += uint64(info.Size())
		return nil
	})

	return stats
}
