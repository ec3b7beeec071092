// Package builtin ships the starter skill bundle embedded in the
// skillpack binary. The starter doubles as a reference for the bundle
// format: it passes every lint check.
package builtin

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed all:starter
var starterFS embed.FS

// StarterName is the bundle name declared in the starter's manifest.
const StarterName = "backend-patterns"

// Starter returns the embedded starter bundle as a filesystem rooted at
// the bundle directory.
func Starter() (fs.FS, error) {
	sub, err := fs.Sub(starterFS, "starter")
	if err != nil {
		return nil, fmt.Errorf("embedded starter bundle is missing: %w", err)
	}
	return sub, nil
}

// WriteTo materializes the starter bundle under baseDir/<StarterName>
// and returns the bundle directory. Fails if the directory exists.
func WriteTo(baseDir string) (string, error) {
	bundleDir := filepath.Join(baseDir, StarterName)
	if _, err := os.Stat(bundleDir); err == nil {
		return "", fmt.Errorf("directory %q already exists", bundleDir)
	}

	starter, err := Starter()
	if err != nil {
		return "", err
	}

	err = fs.WalkDir(starter, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(bundleDir, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0o750)
		}

		data, err := fs.ReadFile(starter, path)
		if err != nil {
			return err
		}
		// #nosec G306 - bundle documents are world-readable markdown
		return os.WriteFile(target, data, 0o644)
	})
	if err != nil {
		return "", fmt.Errorf("failed to write starter bundle: %w", err)
	}

	return bundleDir, nil
}
