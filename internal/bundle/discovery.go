package bundle

import (
	"fmt"
	"sort"

	"github.com/drewcray/skillpack/internal/logging"
	"github.com/drewcray/skillpack/internal/model"
	"github.com/drewcray/skillpack/internal/parser"
	"github.com/drewcray/skillpack/internal/util"
)

// Location is a directory searched for installed bundles, annotated with
// the platform and scope it represents.
type Location struct {
	Platform model.Platform
	Scope    model.Scope
	Path     string
}

// DefaultLocations returns the standard search locations for every
// platform: the repo-scope directory under workDir, then the user-scope
// directory in the home directory.
func DefaultLocations(workDir string) []Location {
	return []Location{
		{Platform: model.ClaudeCode, Scope: model.ScopeRepo, Path: util.ExpandPath(".claude/skills", workDir)},
		{Platform: model.Cursor, Scope: model.ScopeRepo, Path: util.ExpandPath(".cursor/skills", workDir)},
		{Platform: model.Codex, Scope: model.ScopeRepo, Path: util.ExpandPath(".codex/skills", workDir)},
		{Platform: model.ClaudeCode, Scope: model.ScopeUser, Path: util.ClaudeCodeBundlesPath()},
		{Platform: model.Cursor, Scope: model.ScopeUser, Path: util.CursorBundlesPath()},
		{Platform: model.Codex, Scope: model.ScopeUser, Path: util.CodexBundlesPath()},
	}
}

// Discovery finds installed bundles across a set of locations.
type Discovery struct {
	locations []Location
}

// NewDiscovery creates a Discovery over the given locations.
func NewDiscovery(locations []Location) *Discovery {
	return &Discovery{locations: locations}
}

// Discover loads every bundle found in the configured locations.
// When the same bundle name appears in multiple scopes, the higher
// scope wins (repo overrides user overrides builtin). Bundles that fail
// to load are logged and skipped rather than aborting discovery.
func (d *Discovery) Discover() ([]*model.Bundle, error) {
	byName := make(map[string]*model.Bundle)

	for _, loc := range d.locations {
		dirs, err := parser.BundleDirs(loc.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %q: %w", loc.Path, err)
		}

		for _, dir := range dirs {
			b, err := Load(dir)
			if err != nil {
				logging.Warn("skipping unreadable bundle",
					logging.Platform(string(loc.Platform)),
					logging.Path(dir),
					logging.Err(err),
				)
				continue
			}
			b.Platform = loc.Platform
			b.Scope = loc.Scope

			existing, ok := byName[b.Name]
			if !ok || b.IsHigherPrecedence(existing) {
				byName[b.Name] = b
			}
		}
	}

	bundles := make([]*model.Bundle, 0, len(byName))
	for _, b := range byName {
		bundles = append(bundles, b)
	}
	sort.Slice(bundles, func(i, j int) bool {
		return bundles[i].Name < bundles[j].Name
	})

	logging.Debug("discovered bundles", logging.Count(len(bundles)))
	return bundles, nil
}

// Find returns the bundle with the given name, honoring scope precedence.
func (d *Discovery) Find(name string) (*model.Bundle, error) {
	bundles, err := d.Discover()
	if err != nil {
		return nil, err
	}
	for _, b := range bundles {
		if b.Name == name {
			return b, nil
		}
	}
	return nil, fmt.Errorf("bundle %q not found", name)
}
