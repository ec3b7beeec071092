// Package lint implements document-integrity checks for skill bundles:
// the front matter parses with required keys of the declared types, every
// relative path referenced from the documentation resolves inside the
// bundle, the README's "what's included" tree matches the files on disk,
// and fenced code blocks are well-formed for the data formats their
// fence tags declare.
package lint

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/drewcray/skillpack/internal/logging"
	"github.com/drewcray/skillpack/internal/model"
	"github.com/drewcray/skillpack/internal/parser"
)

// Check names, one per document-integrity property.
const (
	CheckMetadata  = "metadata"
	CheckStructure = "structure"
	CheckFiles     = "files"
	CheckTree      = "tree"
	CheckFences    = "fences"
)

// Severity classifies a lint issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single lint finding.
type Issue struct {
	// Check names the check that produced the issue.
	Check string `json:"check"`
	// Path is the file the issue refers to, relative to the bundle root.
	Path string `json:"path,omitempty"`
	// Line is the 1-based line number, when known.
	Line int `json:"line,omitempty"`
	// Severity is error or warning.
	Severity Severity `json:"severity"`
	// Message describes the finding.
	Message string `json:"message"`
}

// String formats the issue the way compilers format diagnostics.
func (i Issue) String() string {
	loc := i.Path
	if loc == "" {
		loc = "."
	}
	if i.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, i.Line)
	}
	return fmt.Sprintf("%s: %s: [%s] %s", loc, i.Severity, i.Check, i.Message)
}

// Report is the outcome of linting one bundle.
type Report struct {
	// Dir is the bundle directory that was linted.
	Dir string `json:"dir"`
	// Name is the bundle name, when the manifest decoded far enough
	// to provide one.
	Name string `json:"name,omitempty"`
	// Issues holds all findings, errors first, in file order.
	Issues []Issue `json:"issues"`
}

// OK returns true if the report contains no errors.
func (r *Report) OK() bool {
	return r.ErrorCount() == 0
}

// ErrorCount returns the number of error-severity issues.
func (r *Report) ErrorCount() int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			n++
		}
	}
	return n
}

// WarningCount returns the number of warning-severity issues.
func (r *Report) WarningCount() int {
	return len(r.Issues) - r.ErrorCount()
}

// Summary returns a one-line human-readable result.
func (r *Report) Summary() string {
	if len(r.Issues) == 0 {
		return "all checks passed"
	}
	return fmt.Sprintf("%d error(s), %d warning(s)", r.ErrorCount(), r.WarningCount())
}

func (r *Report) errorf(check, path string, line int, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{
		Check: check, Path: path, Line: line,
		Severity: SeverityError, Message: fmt.Sprintf(format, args...),
	})
}

func (r *Report) warnf(check, path string, line int, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{
		Check: check, Path: path, Line: line,
		Severity: SeverityWarning, Message: fmt.Sprintf(format, args...),
	})
}

// issue emits at error severity when strict is set, warning otherwise.
func (r *Report) issue(strict bool, check, path string, line int, format string, args ...any) {
	if strict {
		r.errorf(check, path, line, format, args...)
	} else {
		r.warnf(check, path, line, format, args...)
	}
}

// Options configures lint behavior.
type Options struct {
	// Strict upgrades advisory findings to errors and enables extra checks.
	Strict bool
	// MaxDescriptionLen is the longest description that passes without a
	// warning. Hosts surface the description in pickers, so it stays short.
	MaxDescriptionLen int
	// RequireInstallGuide errors when INSTALL.md is missing.
	RequireInstallGuide bool
}

// DefaultOptions returns the default lint options.
func DefaultOptions() Options {
	return Options{
		Strict:              false,
		MaxDescriptionLen:   1024,
		RequireInstallGuide: false,
	}
}

// Run lints the bundle at dir and returns the full report. An error is
// returned only when the directory itself cannot be inspected; findings
// about the bundle content are always reported as issues.
func Run(dir string, opts Options) (*Report, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", dir, err)
	}
	if info, err := os.Stat(absDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("bundle directory %q not found", dir)
	}

	report := &Report{Dir: absDir}

	manifest := checkMetadata(report, absDir, opts)
	if manifest != nil {
		report.Name = manifest.Name
	}

	mdFiles, err := parser.MarkdownFiles(absDir)
	if err != nil {
		return nil, err
	}

	checkStructure(report, absDir, mdFiles, opts)

	for _, rel := range mdFiles {
		// #nosec G304 - rel comes from walking the bundle dir
		content, err := os.ReadFile(filepath.Join(absDir, rel))
		if err != nil {
			report.errorf(CheckFiles, rel, 0, "cannot read file: %v", err)
			continue
		}
		checkLinks(report, absDir, rel, content)
		checkFences(report, rel, content, opts)
		if rel == model.ReadmeFileName {
			checkReadmeTree(report, absDir, content)
		}
	}

	sortIssues(report)

	for _, issue := range report.Issues {
		logging.Debug("lint finding",
			logging.Check(issue.Check),
			logging.Path(issue.Path),
		)
	}
	logging.Debug("lint completed",
		logging.Path(absDir),
		logging.Count(len(report.Issues)),
	)
	return report, nil
}

// sortIssues orders issues by file, then line, then severity.
func sortIssues(r *Report) {
	sort.SliceStable(r.Issues, func(i, j int) bool {
		a, b := r.Issues[i], r.Issues[j]
		if a.Path != b.Path {
			// SKILL.md findings lead the report.
			if a.Path == model.ManifestFileName {
				return true
			}
			if b.Path == model.ManifestFileName {
				return false
			}
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Severity == SeverityError && b.Severity != SeverityError
	})
}
