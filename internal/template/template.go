// Package template scaffolds new skill bundles from built-in templates.
package template

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/drewcray/skillpack/internal/model"
	"github.com/drewcray/skillpack/internal/parser"
)

// Data holds the values rendered into the bundle templates.
type Data struct {
	Name            string
	Description     string
	Version         string
	Author          string
	Tags            []string
	AgentType       string
	AllowedTools    []string
	ConfidenceStyle string
	MaxIterations   int
	Year            int
}

// Generator renders skill bundle files from templates.
type Generator struct {
	templates map[string]*template.Template
}

// bundleFiles maps each generated file to its template, in write order.
var bundleFiles = []struct {
	relPath string
	tmpl    string
}{
	{model.ManifestFileName, skillTemplate},
	{model.ReadmeFileName, readmeTemplate},
	{model.InstallFileName, installTemplate},
	{"reference/patterns.md", referenceTemplate},
	{"examples/walkthrough.md", exampleTemplate},
}

// New creates a generator with the built-in templates parsed.
func New() (*Generator, error) {
	g := &Generator{templates: make(map[string]*template.Template)}
	for _, f := range bundleFiles {
		tmpl, err := template.New(f.relPath).Parse(f.tmpl)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template for %s: %w", f.relPath, err)
		}
		g.templates[f.relPath] = tmpl
	}
	return g, nil
}

// Render renders a single bundle file by relative path.
func (g *Generator) Render(relPath string, data Data) (string, error) {
	tmpl, ok := g.templates[relPath]
	if !ok {
		return "", fmt.Errorf("no template for %q", relPath)
	}

	fillDefaults(&data)

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", relPath, err)
	}
	return buf.String(), nil
}

// CreateBundle scaffolds a complete bundle under baseDir/<name> and
// returns the bundle directory. The generated SKILL.md is re-parsed to
// guarantee the scaffold always yields a loadable bundle.
func (g *Generator) CreateBundle(baseDir string, data Data) (string, error) {
	fillDefaults(&data)
	if err := model.ValidateBundleName(data.Name); err != nil {
		return "", err
	}

	bundleDir := filepath.Join(baseDir, data.Name)
	if _, err := os.Stat(bundleDir); err == nil {
		return "", fmt.Errorf("directory %q already exists", bundleDir)
	}

	for _, f := range bundleFiles {
		content, err := g.Render(f.relPath, data)
		if err != nil {
			return "", err
		}

		if f.relPath == model.ManifestFileName {
			manifest, _, err := parser.ParseManifest([]byte(content))
			if err != nil {
				return "", fmt.Errorf("generated manifest is invalid: %w", err)
			}
			if err := manifest.Validate(); err != nil {
				return "", fmt.Errorf("generated manifest is invalid: %w", err)
			}
		}

		target := filepath.Join(bundleDir, filepath.FromSlash(f.relPath))
		if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
			return "", err
		}
		// #nosec G306 - bundle documents are world-readable markdown
		if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", f.relPath, err)
		}
	}

	return bundleDir, nil
}

func fillDefaults(data *Data) {
	if data.Version == "" {
		data.Version = "0.1.0"
	}
	if data.AgentType == "" {
		data.AgentType = string(model.AgentGeneral)
	}
	if data.ConfidenceStyle == "" {
		data.ConfidenceStyle = string(model.ConfidencePlain)
	}
	if data.MaxIterations == 0 {
		data.MaxIterations = 25
	}
	if len(data.AllowedTools) == 0 {
		data.AllowedTools = []string{"read", "grep", "bash"}
	}
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
}
