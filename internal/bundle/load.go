// Package bundle loads skill bundles from disk and discovers installed
// bundles across host platform directories.
package bundle

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/drewcray/skillpack/internal/model"
	"github.com/drewcray/skillpack/internal/parser"
)

// Load reads a skill bundle from dir: the SKILL.md manifest plus every
// markdown document and asset around it. The manifest must decode with
// its declared types and carry the required keys; use the lint package
// for the full document-integrity report.
func Load(dir string) (*model.Bundle, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", dir, err)
	}

	skillPath := filepath.Join(absDir, model.ManifestFileName)
	// #nosec G304 - skillPath is derived from the caller-provided bundle dir
	content, err := os.ReadFile(skillPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", model.ManifestFileName, err)
	}

	manifest, body, err := parser.ParseManifest(content)
	if err != nil {
		return nil, fmt.Errorf("invalid manifest in %q: %w", skillPath, err)
	}
	if err := manifest.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest in %q: %w", skillPath, err)
	}

	info, err := os.Stat(skillPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %q: %w", skillPath, err)
	}

	b := &model.Bundle{
		Name:       manifest.Name,
		Dir:        absDir,
		Manifest:   manifest,
		Body:       body,
		ModifiedAt: info.ModTime(),
	}

	mdFiles, err := parser.MarkdownFiles(absDir)
	if err != nil {
		return nil, err
	}
	for _, rel := range mdFiles {
		if rel == model.ManifestFileName {
			continue
		}
		// #nosec G304 - rel comes from walking the bundle dir
		data, err := os.ReadFile(filepath.Join(absDir, rel))
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", rel, err)
		}
		b.Docs = append(b.Docs, model.Doc{RelPath: rel, Content: data})
	}

	if b.Assets, err = parser.AssetFiles(absDir); err != nil {
		return nil, err
	}

	return b, nil
}

// Files returns the relative paths of every file in the bundle,
// SKILL.md first, then docs and assets in sorted order.
func Files(b *model.Bundle) []string {
	files := make([]string, 0, 1+len(b.Docs)+len(b.Assets))
	files = append(files, model.ManifestFileName)
	for _, d := range b.Docs {
		files = append(files, d.RelPath)
	}
	files = append(files, b.Assets...)
	return files
}
