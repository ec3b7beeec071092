package parser

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MarkdownFiles walks a bundle directory and returns the relative,
// slash-separated paths of all markdown files, sorted. Hidden files and
// directories are skipped.
func MarkdownFiles(dir string) ([]string, error) {
	return walkFiles(dir, func(relPath string) bool {
		return strings.HasSuffix(relPath, ".md")
	})
}

// AssetFiles returns the relative paths of all non-markdown regular
// files in a bundle directory, sorted.
func AssetFiles(dir string) ([]string, error) {
	return walkFiles(dir, func(relPath string) bool {
		return !strings.HasSuffix(relPath, ".md")
	})
}

func walkFiles(dir string, keep func(relPath string) bool) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") && path != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if keep(rel) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %q: %w", dir, err)
	}

	sort.Strings(files)
	return files, nil
}

// BundleDirs returns the subdirectories of basePath that contain a
// SKILL.md file. A SKILL.md directly in basePath counts as well.
// A missing basePath is not an error.
func BundleDirs(basePath string) ([]string, error) {
	if _, err := os.Stat(basePath); os.IsNotExist(err) {
		return nil, nil
	}

	var dirs []string
	if hasManifest(basePath) {
		dirs = append(dirs, basePath)
	}

	entries, err := os.ReadDir(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", basePath, err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		sub := filepath.Join(basePath, entry.Name())
		// Follow symlinked bundle directories.
		info, err := os.Stat(sub)
		if err != nil || !info.IsDir() {
			continue
		}
		if hasManifest(sub) {
			dirs = append(dirs, sub)
		}
	}

	sort.Strings(dirs)
	return dirs, nil
}

func hasManifest(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, "SKILL.md"))
	return err == nil && info.Mode().IsRegular()
}
