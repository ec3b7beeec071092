// Package install copies validated skill bundles into host platform
// directories and removes them again.
package install

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/drewcray/skillpack/internal/archive"
	"github.com/drewcray/skillpack/internal/bundle"
	"github.com/drewcray/skillpack/internal/logging"
	"github.com/drewcray/skillpack/internal/model"
)

// Options configures an install operation.
type Options struct {
	// DryRun previews the operation without touching the filesystem.
	DryRun bool
	// Force replaces an already-installed bundle of the same name.
	Force bool
	// BackupDir receives a packed copy of a bundle about to be replaced.
	// Empty disables backups.
	BackupDir string
	// KeepBackups caps retained backups per bundle name (0 keeps all).
	KeepBackups int
}

// Result describes a completed install.
type Result struct {
	Bundle     string `json:"bundle"`
	TargetDir  string `json:"target_dir"`
	FilesCount int    `json:"files_count"`
	BackupPath string `json:"backup_path,omitempty"`
	DryRun     bool   `json:"dry_run,omitempty"`
}

// Install copies the bundle into targetDir/<name>. An existing install
// of the same name is an error unless opts.Force is set, in which case
// it is backed up (when a backup dir is configured) and replaced.
func Install(b *model.Bundle, targetDir string, opts Options) (*Result, error) {
	if err := b.Manifest.Validate(); err != nil {
		return nil, err
	}

	dest := filepath.Join(targetDir, b.Name)
	result := &Result{
		Bundle:     b.Name,
		TargetDir:  dest,
		FilesCount: len(bundle.Files(b)),
		DryRun:     opts.DryRun,
	}

	if same, err := sameDir(b.Dir, dest); err == nil && same {
		return nil, fmt.Errorf("bundle %q is already installed at %q", b.Name, dest)
	}

	if _, err := os.Stat(dest); err == nil {
		if !opts.Force {
			return nil, fmt.Errorf("bundle %q already installed at %q (use force to replace)", b.Name, dest)
		}
		if opts.DryRun {
			return result, nil
		}
		backupPath, err := backupExisting(dest, opts)
		if err != nil {
			return nil, err
		}
		result.BackupPath = backupPath
		if err := os.RemoveAll(dest); err != nil {
			return nil, fmt.Errorf("failed to remove existing install: %w", err)
		}
	} else if opts.DryRun {
		return result, nil
	}

	if err := copyBundle(b, dest); err != nil {
		// Leave no partial install behind.
		_ = os.RemoveAll(dest)
		return nil, err
	}

	logging.Info("installed bundle",
		logging.Bundle(b.Name),
		logging.Path(dest),
		logging.Count(result.FilesCount),
	)
	return result, nil
}

// Uninstall removes the installed bundle named name from targetDir.
// Refuses to remove a directory that does not look like a bundle.
func Uninstall(name, targetDir string) error {
	if err := model.ValidateBundleName(name); err != nil {
		return err
	}

	dest := filepath.Join(targetDir, name)
	info, err := os.Stat(dest)
	if err != nil {
		return fmt.Errorf("bundle %q is not installed at %q", name, targetDir)
	}
	if !info.IsDir() {
		return fmt.Errorf("%q is not a bundle directory", dest)
	}
	if _, err := os.Stat(filepath.Join(dest, model.ManifestFileName)); err != nil {
		return fmt.Errorf("%q has no %s, refusing to remove", dest, model.ManifestFileName)
	}

	if err := os.RemoveAll(dest); err != nil {
		return fmt.Errorf("failed to remove %q: %w", dest, err)
	}

	logging.Info("uninstalled bundle", logging.Bundle(name), logging.Path(dest))
	return nil
}

// copyBundle writes every file of the bundle below dest.
func copyBundle(b *model.Bundle, dest string) error {
	for _, rel := range bundle.Files(b) {
		src := filepath.Join(b.Dir, filepath.FromSlash(rel))
		// #nosec G304 - rel comes from the loaded bundle inventory
		data, err := os.ReadFile(src)
		if err != nil {
			return fmt.Errorf("failed to read %q: %w", rel, err)
		}

		target := filepath.Join(dest, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
			return err
		}
		// #nosec G306 - bundle documents are world-readable markdown
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %q: %w", rel, err)
		}
	}
	return nil
}

// backupExisting packs the bundle at dest into the backup directory
// before it is replaced. A bundle too broken to load is skipped with a
// warning; force-replacing it is the point of the operation.
func backupExisting(dest string, opts Options) (string, error) {
	if opts.BackupDir == "" {
		return "", nil
	}

	old, err := bundle.Load(dest)
	if err != nil {
		logging.Warn("existing install is not a loadable bundle, skipping backup",
			logging.Path(dest),
			logging.Err(err),
		)
		return "", nil
	}

	stamp := time.Now().UTC().Format("20060102T150405Z")
	name := fmt.Sprintf("%s-%s-%s.tar.gz", old.Name, old.Manifest.Version, stamp)
	backupPath := filepath.Join(opts.BackupDir, name)

	if _, err := archive.PackFile(old, backupPath); err != nil {
		return "", fmt.Errorf("failed to back up existing install: %w", err)
	}

	if opts.KeepBackups > 0 {
		pruneBackups(opts.BackupDir, old.Name, opts.KeepBackups)
	}

	logging.Info("backed up existing install",
		logging.Bundle(old.Name),
		logging.Path(backupPath),
	)
	return backupPath, nil
}

// pruneBackups removes the oldest backups of a bundle beyond keep.
func pruneBackups(dir, name string, keep int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	prefix := name + "-"
	var backups []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), prefix) && strings.HasSuffix(entry.Name(), ".tar.gz") {
			backups = append(backups, entry.Name())
		}
	}
	if len(backups) <= keep {
		return
	}

	// The timestamp suffix makes lexical order chronological.
	sort.Strings(backups)
	for _, old := range backups[:len(backups)-keep] {
		if err := os.Remove(filepath.Join(dir, old)); err != nil {
			logging.Warn("failed to prune backup", logging.Path(old), logging.Err(err))
		}
	}
}

// sameDir reports whether two paths refer to the same directory.
func sameDir(a, b string) (bool, error) {
	ai, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	return os.SameFile(ai, bi), nil
}
