package lint

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/drewcray/skillpack/internal/model"
	"github.com/drewcray/skillpack/internal/parser"
)

// versionPattern accepts semantic versions with an optional pre-release
// suffix (1.2.0, 0.4.1-beta.2).
var versionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?$`)

// checkMetadata validates the SKILL.md front matter: it must parse as
// structured front matter with all required keys present and of the
// declared types. Returns the decoded manifest when usable, nil otherwise.
func checkMetadata(report *Report, dir string, opts Options) *model.Manifest {
	skillPath := filepath.Join(dir, model.ManifestFileName)
	// #nosec G304 - path is inside the bundle dir under inspection
	content, err := os.ReadFile(skillPath)
	if err != nil {
		report.errorf(CheckMetadata, model.ManifestFileName, 0, "missing %s: %v", model.ManifestFileName, err)
		return nil
	}

	split := parser.SplitFrontmatter(content)
	if !split.HasFrontmatter {
		report.errorf(CheckMetadata, model.ManifestFileName, 1, "missing front matter")
		return nil
	}

	fm, err := parser.ParseYAML(split.Frontmatter)
	if err != nil {
		report.errorf(CheckMetadata, model.ManifestFileName, 1, "front matter is not valid YAML: %v", err)
		return nil
	}

	// Report every mistyped key, not just the first.
	typed := true
	for _, te := range parser.TypeErrors(fm) {
		report.errorf(CheckMetadata, model.ManifestFileName, 1, "%s", te.Error())
		typed = false
	}

	for _, key := range model.RequiredKeys() {
		if val, ok := fm[key]; !ok || val == "" || val == nil {
			report.errorf(CheckMetadata, model.ManifestFileName, 1, "required key %q is missing", key)
			typed = false
		}
	}

	if !typed {
		return nil
	}

	manifest, err := parser.DecodeManifest(fm)
	if err != nil {
		report.errorf(CheckMetadata, model.ManifestFileName, 1, "%v", err)
		return nil
	}

	if err := model.ValidateBundleName(manifest.Name); err != nil {
		report.errorf(CheckMetadata, model.ManifestFileName, 1, "%v", err)
	}
	if !versionPattern.MatchString(manifest.Version) {
		report.errorf(CheckMetadata, model.ManifestFileName, 1, "version %q is not a semantic version", manifest.Version)
	}
	if manifest.MaxIterations < 0 {
		report.errorf(CheckMetadata, model.ManifestFileName, 1, "max-iterations must be positive, got %d", manifest.MaxIterations)
	} else if _, ok := fm["max-iterations"]; ok && manifest.MaxIterations == 0 {
		report.errorf(CheckMetadata, model.ManifestFileName, 1, "max-iterations must be positive, got 0")
	}

	if _, err := model.ParseAgentType(manifest.AgentType); err != nil {
		report.issue(opts.Strict, CheckMetadata, model.ManifestFileName, 1, "%v", err)
	}
	if _, err := model.ParseConfidenceStyle(manifest.ConfidenceStyle); err != nil {
		report.issue(opts.Strict, CheckMetadata, model.ManifestFileName, 1, "%v", err)
	}

	if opts.MaxDescriptionLen > 0 && len(manifest.Description) > opts.MaxDescriptionLen {
		report.warnf(CheckMetadata, model.ManifestFileName, 1,
			"description is %d characters, hosts may truncate beyond %d",
			len(manifest.Description), opts.MaxDescriptionLen)
	}

	checkDuplicates(report, "tags", manifest.Tags)
	checkDuplicates(report, "allowed-tools", manifest.AllowedTools)

	for _, tool := range manifest.AllowedTools {
		if strings.TrimSpace(tool) == "" {
			report.errorf(CheckMetadata, model.ManifestFileName, 1, "allowed-tools contains an empty entry")
			break
		}
	}

	return &manifest
}

func checkDuplicates(report *Report, key string, values []string) {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		normalized := strings.ToLower(strings.TrimSpace(v))
		if seen[normalized] {
			report.warnf(CheckMetadata, model.ManifestFileName, 1, "%s contains duplicate entry %q", key, v)
			return
		}
		seen[normalized] = true
	}
}
