package lint

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/drewcray/skillpack/internal/markdown"
	"github.com/drewcray/skillpack/internal/model"
)

// checkStructure verifies the bundle's document skeleton: SKILL.md has a
// top-level heading and a non-empty body, and the companion documents a
// complete bundle ships (README, INSTALL guide) are present.
func checkStructure(report *Report, dir string, mdFiles []string, opts Options) {
	skillPath := filepath.Join(dir, model.ManifestFileName)
	// #nosec G304 - path is inside the bundle dir under inspection
	if content, err := os.ReadFile(skillPath); err == nil {
		doc, err := markdown.Parse(content)
		if err != nil {
			report.errorf(CheckStructure, model.ManifestFileName, 0, "unparsable markdown: %v", err)
		} else {
			if !doc.HasBody() {
				report.errorf(CheckStructure, model.ManifestFileName, 0, "skill body is empty")
			}
			if !hasTopHeading(doc) {
				report.issue(opts.Strict, CheckStructure, model.ManifestFileName, 0, "skill body has no top-level heading")
			}
		}
	}

	if !slices.Contains(mdFiles, model.ReadmeFileName) {
		report.issue(opts.Strict, CheckStructure, model.ReadmeFileName, 0, "bundle has no README.md")
	}
	if !slices.Contains(mdFiles, model.InstallFileName) {
		if opts.RequireInstallGuide {
			report.errorf(CheckStructure, model.InstallFileName, 0, "bundle has no INSTALL.md")
		} else if opts.Strict {
			report.warnf(CheckStructure, model.InstallFileName, 0, "bundle has no INSTALL.md")
		}
	}
}

func hasTopHeading(doc *markdown.Document) bool {
	for _, h := range doc.Headings() {
		if h.Level == 1 {
			return true
		}
	}
	return false
}
