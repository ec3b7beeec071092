package lint

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/drewcray/skillpack/internal/markdown"
	"github.com/drewcray/skillpack/internal/model"
	"github.com/drewcray/skillpack/internal/util"
)

// checkReadmeTree parses the "what's included" file tree in README.md
// fenced blocks and verifies every listed entry exists in the bundle.
// Any fenced block drawn with tree connectors is treated as the
// inventory; READMEs without one pass trivially.
func checkReadmeTree(report *Report, dir string, content []byte) {
	doc, err := markdown.Parse(content)
	if err != nil {
		// Already reported by the link check.
		return
	}

	for _, block := range doc.CodeBlocks() {
		if !strings.Contains(block.Body, "── ") {
			continue
		}
		for _, entry := range parseTreeBlock(block.Body) {
			full := filepath.Join(dir, filepath.FromSlash(entry.path))
			switch {
			case entry.isDir && !util.DirExists(full):
				report.errorf(CheckTree, model.ReadmeFileName, block.Line,
					"directory %q listed in the file tree does not exist", entry.path)
			case !entry.isDir && !util.FileExists(full):
				report.errorf(CheckTree, model.ReadmeFileName, block.Line,
					"file %q listed in the file tree does not exist", entry.path)
			}
		}
	}
}

type treeEntry struct {
	path  string
	isDir bool
}

// treeIndentWidth is the width of one tree level ("│   " or "    ").
const treeIndentWidth = 4

// parseTreeBlock reconstructs relative paths from an ASCII/box-drawing
// file tree. A first line without connectors names the root and is
// skipped; trailing "# ..." annotations are ignored.
func parseTreeBlock(body string) []treeEntry {
	var entries []treeEntry
	var dirStack []string

	for i, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			continue
		}

		name, depth, ok := splitTreeLine(line)
		if !ok {
			// Root line ("my-skill/" or ".") or stray prose.
			if i == 0 {
				continue
			}
			continue
		}

		isDir := strings.HasSuffix(name, "/")
		name = strings.TrimSuffix(name, "/")
		if name == "" {
			continue
		}

		if depth > len(dirStack) {
			depth = len(dirStack)
		}
		rel := path.Join(append(append([]string{}, dirStack[:depth]...), name)...)
		entries = append(entries, treeEntry{path: rel, isDir: isDir})

		if isDir {
			dirStack = append(dirStack[:depth], name)
		}
	}
	return entries
}

// splitTreeLine splits a tree line into its entry name and depth.
// Returns ok=false for lines without a tree connector.
func splitTreeLine(line string) (name string, depth int, ok bool) {
	for _, connector := range []string{"├── ", "└── "} {
		idx := strings.Index(line, connector)
		if idx < 0 {
			continue
		}
		name = strings.TrimSpace(line[idx+len(connector):])
		name = stripAnnotation(name)
		// Runes before the connector are "│" and spaces; each level
		// renders as a fixed-width group.
		depth = len([]rune(line[:idx])) / treeIndentWidth
		return name, depth, true
	}
	return "", 0, false
}

// stripAnnotation removes trailing "# comment" annotations common in
// README trees.
func stripAnnotation(name string) string {
	if idx := strings.Index(name, " #"); idx >= 0 {
		name = name[:idx]
	}
	return strings.TrimSpace(name)
}
