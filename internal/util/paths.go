// Package util provides filesystem path helpers shared across skillpack.
package util

import (
	"os"
	"path/filepath"
	"strings"
)

// HomeDir returns the user's home directory.
func HomeDir() string {
	home, _ := os.UserHomeDir()
	return home
}

// ConfigDir returns the skillpack configuration directory.
// Honors XDG_CONFIG_HOME when set.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "skillpack")
	}
	return filepath.Join(HomeDir(), ".config", "skillpack")
}

// ArchiveDir returns the default directory for packed bundle archives
// and pre-overwrite backups.
func ArchiveDir() string {
	return filepath.Join(ConfigDir(), "archives")
}

// ClaudeCodeBundlesPath returns the user-scope Claude Code skills directory.
func ClaudeCodeBundlesPath() string {
	return filepath.Join(HomeDir(), ".claude", "skills")
}

// CursorBundlesPath returns the user-scope Cursor skills directory.
func CursorBundlesPath() string {
	return filepath.Join(HomeDir(), ".cursor", "skills")
}

// CodexBundlesPath returns the user-scope Codex skills directory.
func CodexBundlesPath() string {
	return filepath.Join(HomeDir(), ".codex", "skills")
}

// ExpandPath expands a leading ~ to the home directory and resolves
// relative paths against baseDir. Returns "" for empty input.
func ExpandPath(path, baseDir string) string {
	if path == "" {
		return ""
	}

	if path == "~" {
		return HomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(HomeDir(), path[2:])
	}

	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(baseDir, path)
}

// ExpandPaths expands each path in the slice, dropping empty entries.
func ExpandPaths(paths []string, baseDir string) []string {
	result := make([]string, 0, len(paths))
	for _, p := range paths {
		if expanded := ExpandPath(p, baseDir); expanded != "" {
			result = append(result, expanded)
		}
	}
	return result
}

// FileExists returns true if path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// DirExists returns true if path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
