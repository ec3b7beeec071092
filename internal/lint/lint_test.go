package lint

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validSkill = `---
name: backend-patterns
description: Backend guidance for production services
version: 1.0.0
author: Platform Team
tags:
  - backend
  - api
agent-type: coding
allowed-tools:
  - read
  - grep
max-iterations: 25
confidence-style: hedged
---
# Backend Patterns

Guidance for building backend services.
`

const validReadme = "# Backend Patterns\n" +
	"\n" +
	"What's included:\n" +
	"\n" +
	"```\n" +
	"backend-patterns/\n" +
	"├── SKILL.md\n" +
	"├── README.md\n" +
	"├── INSTALL.md\n" +
	"├── reference/\n" +
	"│   └── patterns.md\n" +
	"└── examples/\n" +
	"    └── walkthrough.md\n" +
	"```\n" +
	"\n" +
	"See [the patterns](reference/patterns.md) to get started.\n"

const validReference = "# Patterns\n" +
	"\n" +
	"```yaml\n" +
	"retry:\n" +
	"  attempts: 3\n" +
	"```\n"

const validExample = "# Walkthrough\n" +
	"\n" +
	"Back to [patterns](../reference/patterns.md).\n" +
	"\n" +
	"```json\n" +
	"{\"status\": \"ok\"}\n" +
	"```\n"

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// writeValidBundle writes a bundle expected to pass every check.
func writeValidBundle(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, dir, "SKILL.md", validSkill)
	writeFile(t, dir, "README.md", validReadme)
	writeFile(t, dir, "INSTALL.md", "# Install\n\nCopy the directory.\n")
	writeFile(t, dir, "reference/patterns.md", validReference)
	writeFile(t, dir, "examples/walkthrough.md", validExample)
}

func issuesFor(t *testing.T, report *Report, check string) []Issue {
	t.Helper()
	var found []Issue
	for _, i := range report.Issues {
		if i.Check == check {
			found = append(found, i)
		}
	}
	return found
}

func hasIssueContaining(report *Report, check, fragment string) bool {
	for _, i := range report.Issues {
		if i.Check == check && strings.Contains(i.Message, fragment) {
			return true
		}
	}
	return false
}

func TestRunValidBundle(t *testing.T) {
	dir := t.TempDir()
	writeValidBundle(t, dir)

	report, err := Run(dir, DefaultOptions())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !report.OK() {
		t.Errorf("valid bundle failed: %v", report.Issues)
	}
	if len(report.Issues) != 0 {
		t.Errorf("valid bundle produced issues: %v", report.Issues)
	}
	if report.Name != "backend-patterns" {
		t.Errorf("Name = %q", report.Name)
	}
}

func TestRunValidBundleStrict(t *testing.T) {
	dir := t.TempDir()
	writeValidBundle(t, dir)

	opts := DefaultOptions()
	opts.Strict = true
	report, err := Run(dir, opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(report.Issues) != 0 {
		t.Errorf("valid bundle produced issues in strict mode: %v", report.Issues)
	}
}

func TestRunMissingDir(t *testing.T) {
	if _, err := Run(filepath.Join(t.TempDir(), "nope"), DefaultOptions()); err == nil {
		t.Error("Run() on missing dir succeeded, want error")
	}
}

func TestMetadataChecks(t *testing.T) {
	tests := map[string]struct {
		skill        string
		wantFragment string
		wantErrors   int
	}{
		"missing front matter": {
			skill:        "# No front matter\n",
			wantFragment: "missing front matter",
			wantErrors:   1,
		},
		"invalid yaml": {
			skill:        "---\nname: [broken\n---\nbody\n",
			wantFragment: "not valid YAML",
			wantErrors:   1,
		},
		"missing required keys": {
			skill:        "---\nname: x\n---\n# X\n",
			wantFragment: "required key",
			wantErrors:   2, // description and version
		},
		"all type errors reported": {
			skill:        "---\nname: x\ndescription: d\nversion: 1.0.0\ntags: nope\nmax-iterations: lots\n---\n# X\n",
			wantFragment: "must be",
			wantErrors:   2,
		},
		"bad bundle name": {
			skill:        "---\nname: Bad Name\ndescription: d\nversion: 1.0.0\n---\n# X\n",
			wantFragment: "invalid character",
			wantErrors:   1,
		},
		"bad version": {
			skill:        "---\nname: x\ndescription: d\nversion: latest\n---\n# X\n",
			wantFragment: "not a semantic version",
			wantErrors:   1,
		},
		"zero max-iterations": {
			skill:        "---\nname: x\ndescription: d\nversion: 1.0.0\nmax-iterations: 0\n---\n# X\n",
			wantFragment: "must be positive",
			wantErrors:   1,
		},
		"empty allowed tool": {
			skill:        "---\nname: x\ndescription: d\nversion: 1.0.0\nallowed-tools:\n  - read\n  - \"\"\n---\n# X\n",
			wantFragment: "empty entry",
			wantErrors:   1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "SKILL.md", tt.skill)

			report, err := Run(dir, DefaultOptions())
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			metadata := issuesFor(t, report, CheckMetadata)
			errors := 0
			for _, i := range metadata {
				if i.Severity == SeverityError {
					errors++
				}
			}
			if errors != tt.wantErrors {
				t.Errorf("metadata errors = %d, want %d: %v", errors, tt.wantErrors, metadata)
			}
			if !hasIssueContaining(report, CheckMetadata, tt.wantFragment) {
				t.Errorf("no metadata issue containing %q: %v", tt.wantFragment, metadata)
			}
		})
	}
}

func TestMetadataMissingSkillFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "README.md", "# Readme\n")

	report, err := Run(dir, DefaultOptions())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !hasIssueContaining(report, CheckMetadata, "missing SKILL.md") {
		t.Errorf("expected missing SKILL.md error: %v", report.Issues)
	}
}

func TestMetadataAdvisoryFindings(t *testing.T) {
	skill := "---\nname: x\ndescription: d\nversion: 1.0.0\nagent-type: wizard\ntags:\n  - api\n  - api\n---\n# X\n"

	dir := t.TempDir()
	writeFile(t, dir, "SKILL.md", skill)

	report, err := Run(dir, DefaultOptions())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Unknown agent type and duplicate tags are warnings by default.
	if !report.OK() {
		t.Errorf("advisory findings must not fail the default run: %v", report.Issues)
	}
	if !hasIssueContaining(report, CheckMetadata, "unknown agent type") {
		t.Errorf("missing agent type warning: %v", report.Issues)
	}
	if !hasIssueContaining(report, CheckMetadata, "duplicate entry") {
		t.Errorf("missing duplicate tag warning: %v", report.Issues)
	}

	// Strict upgrades the agent type finding to an error.
	opts := DefaultOptions()
	opts.Strict = true
	report, err = Run(dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if report.OK() {
		t.Error("strict run should fail on unknown agent type")
	}
}

func TestDescriptionLengthWarning(t *testing.T) {
	long := strings.Repeat("x", 60)
	skill := "---\nname: x\ndescription: " + long + "\nversion: 1.0.0\n---\n# X\n"

	dir := t.TempDir()
	writeFile(t, dir, "SKILL.md", skill)

	opts := DefaultOptions()
	opts.MaxDescriptionLen = 40
	report, err := Run(dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !hasIssueContaining(report, CheckMetadata, "hosts may truncate") {
		t.Errorf("missing description length warning: %v", report.Issues)
	}
	if !report.OK() {
		t.Errorf("length warning must not fail the run: %v", report.Issues)
	}
}

func TestStructureChecks(t *testing.T) {
	t.Run("empty skill body", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "SKILL.md", "---\nname: x\ndescription: d\nversion: 1.0.0\n---\n")

		report, err := Run(dir, DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		if !hasIssueContaining(report, CheckStructure, "body is empty") {
			t.Errorf("missing empty body error: %v", report.Issues)
		}
	})

	t.Run("missing readme is advisory", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "SKILL.md", validSkill)

		report, err := Run(dir, DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		if !report.OK() {
			t.Errorf("missing README must not fail by default: %v", report.Issues)
		}
		if !hasIssueContaining(report, CheckStructure, "no README.md") {
			t.Errorf("missing README warning: %v", report.Issues)
		}
	})

	t.Run("require install guide", func(t *testing.T) {
		dir := t.TempDir()
		writeValidBundle(t, dir)
		if err := os.Remove(filepath.Join(dir, "INSTALL.md")); err != nil {
			t.Fatal(err)
		}

		opts := DefaultOptions()
		opts.RequireInstallGuide = true
		report, err := Run(dir, opts)
		if err != nil {
			t.Fatal(err)
		}
		if report.OK() {
			t.Error("missing INSTALL.md should fail when required")
		}
		if !hasIssueContaining(report, CheckStructure, "no INSTALL.md") {
			t.Errorf("missing INSTALL.md error: %v", report.Issues)
		}
	})

	t.Run("no top heading strict", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "SKILL.md", "---\nname: x\ndescription: d\nversion: 1.0.0\n---\njust prose\n")

		opts := DefaultOptions()
		opts.Strict = true
		report, err := Run(dir, opts)
		if err != nil {
			t.Fatal(err)
		}
		if !hasIssueContaining(report, CheckStructure, "no top-level heading") {
			t.Errorf("missing heading finding: %v", report.Issues)
		}
		if report.OK() {
			t.Error("strict run should fail on missing top-level heading")
		}
	})
}

func TestLinkChecks(t *testing.T) {
	tests := map[string]struct {
		doc          string
		wantFragment string
		wantOK       bool
	}{
		"broken relative link": {
			doc:          "# Doc\n\n[missing](does-not-exist.md)\n",
			wantFragment: "does not exist",
		},
		"escaping link": {
			doc:          "# Doc\n\n[out](../../etc/passwd)\n",
			wantFragment: "escapes the bundle",
		},
		"external url ignored": {
			doc:    "# Doc\n\n[site](https://example.com/page)\n",
			wantOK: true,
		},
		"fragment ignored": {
			doc:    "# Doc\n\n[section](#setup)\n",
			wantOK: true,
		},
		"mailto ignored": {
			doc:    "# Doc\n\n[mail](mailto:team@example.com)\n",
			wantOK: true,
		},
		"existing target passes": {
			doc:    "# Doc\n\n[skill](SKILL.md)\n",
			wantOK: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "SKILL.md", validSkill)
			writeFile(t, dir, "INSTALL.md", tt.doc)

			report, err := Run(dir, DefaultOptions())
			if err != nil {
				t.Fatal(err)
			}

			files := issuesFor(t, report, CheckFiles)
			if tt.wantOK {
				if len(files) != 0 {
					t.Errorf("unexpected file issues: %v", files)
				}
				return
			}
			if !hasIssueContaining(report, CheckFiles, tt.wantFragment) {
				t.Errorf("no files issue containing %q: %v", tt.wantFragment, report.Issues)
			}
		})
	}
}

func TestLinkTargetsWithPercentEncoding(t *testing.T) {
	// Link destinations are decoded exactly once: an encoded space must
	// find a file with a space, and an encoded percent must find a file
	// with a literal percent in its name.
	tests := map[string]struct {
		file string
		link string
	}{
		"encoded space":   {file: "extra notes.md", link: "extra%20notes.md"},
		"encoded percent": {file: "a%20b.md", link: "a%2520b.md"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "SKILL.md", validSkill)
			writeFile(t, dir, tt.file, "# Extra\n")
			writeFile(t, dir, "INSTALL.md", "# Doc\n\n[extra]("+tt.link+")\n")

			report, err := Run(dir, DefaultOptions())
			if err != nil {
				t.Fatal(err)
			}
			if issues := issuesFor(t, report, CheckFiles); len(issues) != 0 {
				t.Errorf("encoded link flagged: %v", issues)
			}
		})
	}
}

func TestLinkResolvedAgainstDocumentDir(t *testing.T) {
	dir := t.TempDir()
	writeValidBundle(t, dir)
	// ../reference/patterns.md from examples/walkthrough.md must resolve.
	report, err := Run(dir, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(issuesFor(t, report, CheckFiles)) != 0 {
		t.Errorf("relative link from subdirectory flagged: %v", report.Issues)
	}
}

func TestTreeChecks(t *testing.T) {
	dir := t.TempDir()
	writeValidBundle(t, dir)

	readme := "# Readme\n\n```\nbackend-patterns/\n├── SKILL.md\n├── ghost.md  # not on disk\n└── missing-dir/\n```\n"
	writeFile(t, dir, "README.md", readme)

	report, err := Run(dir, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	if !hasIssueContaining(report, CheckTree, `"ghost.md"`) {
		t.Errorf("missing tree file error: %v", report.Issues)
	}
	if !hasIssueContaining(report, CheckTree, `"missing-dir"`) {
		t.Errorf("missing tree dir error: %v", report.Issues)
	}
}

func TestTreeNestedEntries(t *testing.T) {
	dir := t.TempDir()
	writeValidBundle(t, dir)

	// The valid README lists nested entries; none should be flagged.
	report, err := Run(dir, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(issuesFor(t, report, CheckTree)) != 0 {
		t.Errorf("valid tree flagged: %v", report.Issues)
	}
}

func TestFenceChecks(t *testing.T) {
	tests := map[string]struct {
		doc          string
		wantFragment string
		wantOK       bool
	}{
		"bad json": {
			doc:          "# Doc\n\n```json\n{broken\n```\n",
			wantFragment: "json block is not well-formed",
		},
		"bad yaml": {
			doc:          "# Doc\n\n```yaml\nkey: [unclosed\n```\n",
			wantFragment: "yaml block is not well-formed",
		},
		"bad toml": {
			doc:          "# Doc\n\n```toml\nkey = = 1\n```\n",
			wantFragment: "toml block is not well-formed",
		},
		"good json": {
			doc:    "# Doc\n\n```json\n{\"a\": 1}\n```\n",
			wantOK: true,
		},
		"unknown language ignored": {
			doc:    "# Doc\n\n```python\ndef f(: pass\n```\n",
			wantOK: true,
		},
		"json5 recognized but not validated": {
			doc:    "# Doc\n\n```json5\n{a: 1, /* comment */}\n```\n",
			wantOK: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "SKILL.md", validSkill)
			writeFile(t, dir, "INSTALL.md", tt.doc)

			report, err := Run(dir, DefaultOptions())
			if err != nil {
				t.Fatal(err)
			}

			fences := issuesFor(t, report, CheckFences)
			if tt.wantOK {
				if len(fences) != 0 {
					t.Errorf("unexpected fence issues: %v", fences)
				}
				return
			}
			if !hasIssueContaining(report, CheckFences, tt.wantFragment) {
				t.Errorf("no fence issue containing %q: %v", tt.wantFragment, report.Issues)
			}
		})
	}
}

func TestFenceStrictFindings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "SKILL.md", validSkill)
	writeFile(t, dir, "INSTALL.md", "# Doc\n\n```\nplain block\n```\n\n```yaml\n```\n")

	opts := DefaultOptions()
	opts.Strict = true
	report, err := Run(dir, opts)
	if err != nil {
		t.Fatal(err)
	}

	if !hasIssueContaining(report, CheckFences, "no language tag") {
		t.Errorf("missing untagged fence warning: %v", report.Issues)
	}
	if !hasIssueContaining(report, CheckFences, "block is empty") {
		t.Errorf("missing empty fence warning: %v", report.Issues)
	}
}

func TestIssueString(t *testing.T) {
	i := Issue{Check: CheckFiles, Path: "README.md", Line: 12, Severity: SeverityError, Message: "broken"}
	want := "README.md:12: error: [files] broken"
	if got := i.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	bare := Issue{Check: CheckMetadata, Severity: SeverityWarning, Message: "note"}
	if got := bare.String(); got != ".: warning: [metadata] note" {
		t.Errorf("String() = %q", got)
	}
}

func TestReportOrdering(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "SKILL.md", "---\nname: x\ndescription: d\nversion: bad\n---\n# X\n")
	writeFile(t, dir, "INSTALL.md", "# Doc\n\n[missing](nope.md)\n")

	report, err := Run(dir, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Issues) < 2 {
		t.Fatalf("expected issues from both files: %v", report.Issues)
	}
	if report.Issues[0].Path != "SKILL.md" {
		t.Errorf("first issue path = %q, want SKILL.md first", report.Issues[0].Path)
	}
}

func TestReportCounts(t *testing.T) {
	r := &Report{}
	r.errorf(CheckFiles, "a.md", 1, "e")
	r.warnf(CheckFences, "b.md", 2, "w")

	if r.ErrorCount() != 1 || r.WarningCount() != 1 {
		t.Errorf("counts = %d/%d, want 1/1", r.ErrorCount(), r.WarningCount())
	}
	if r.OK() {
		t.Error("OK() = true with an error present")
	}
	if got := r.Summary(); got != "1 error(s), 1 warning(s)" {
		t.Errorf("Summary() = %q", got)
	}
	if (&Report{}).Summary() != "all checks passed" {
		t.Error("empty report summary mismatch")
	}
}
