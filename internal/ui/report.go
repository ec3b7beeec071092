package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/drewcray/skillpack/internal/lint"
	"github.com/drewcray/skillpack/internal/model"
)

// Report rendering styles.
var reportStyles = struct {
	Header   lipgloss.Style
	Check    lipgloss.Style
	Passed   lipgloss.Style
	Failed   lipgloss.Style
	Location lipgloss.Style
}{
	Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
	Check:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	Passed:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
	Failed:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	Location: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderReport writes a human-readable lint report.
func RenderReport(w io.Writer, report *lint.Report) {
	title := report.Dir
	if report.Name != "" {
		title = fmt.Sprintf("%s (%s)", report.Name, report.Dir)
	}
	fmt.Fprintln(w, reportStyles.Header.Render(title))

	for _, issue := range report.Issues {
		loc := issue.Path
		if loc == "" {
			loc = "."
		}
		if issue.Line > 0 {
			loc = fmt.Sprintf("%s:%d", loc, issue.Line)
		}

		symbol := StatusWarning("")
		if issue.Severity == lint.SeverityError {
			symbol = StatusError("")
		}

		fmt.Fprintf(w, "  %s %s %s %s\n",
			symbol,
			reportStyles.Location.Render(loc),
			reportStyles.Check.Render("["+issue.Check+"]"),
			issue.Message,
		)
	}

	if report.OK() {
		fmt.Fprintln(w, "  "+reportStyles.Passed.Render(SymbolSuccess+" "+report.Summary()))
	} else {
		fmt.Fprintln(w, "  "+reportStyles.Failed.Render(SymbolError+" "+report.Summary()))
	}
}

// RenderBundleList writes a table of discovered bundles.
func RenderBundleList(w io.Writer, bundles []*model.Bundle) {
	if len(bundles) == 0 {
		fmt.Fprintln(w, Dim("no bundles found"))
		return
	}

	nameWidth := len("NAME")
	for _, b := range bundles {
		if len(b.Name) > nameWidth {
			nameWidth = len(b.Name)
		}
	}

	fmt.Fprintf(w, "%s  %-10s  %-8s  %s\n",
		Bold(pad("NAME", nameWidth)), "PLATFORM", "SCOPE", "VERSION")
	for _, b := range bundles {
		fmt.Fprintf(w, "%s  %-10s  %-8s  %s\n",
			pad(b.Name, nameWidth),
			b.Platform,
			b.Scope,
			b.Manifest.Version,
		)
	}
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
