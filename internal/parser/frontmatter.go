// Package parser extracts and decodes the structured front matter of
// skill definition files.
package parser

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FrontmatterResult contains the split front matter and remaining content.
type FrontmatterResult struct {
	// Frontmatter contains the raw front-matter bytes.
	Frontmatter []byte
	// Body contains the markdown content after the front matter.
	Body string
	// HasFrontmatter indicates whether front matter was found.
	HasFrontmatter bool
}

// SplitFrontmatter extracts front matter delimited by --- (YAML) or
// +++ lines from the start of content. Windows line endings are handled.
// If no closing delimiter exists, the whole input is treated as body.
func SplitFrontmatter(content []byte) FrontmatterResult {
	for _, delim := range [][]byte{[]byte("---"), []byte("+++")} {
		if bytes.HasPrefix(content, append(delim, '\n')) ||
			bytes.HasPrefix(content, append(delim, '\r', '\n')) {
			return splitAt(content, delim)
		}
	}
	return FrontmatterResult{Body: string(content)}
}

func splitAt(content, delim []byte) FrontmatterResult {
	rest := content[len(delim):]
	rest = trimOneNewline(rest)

	var matter []byte
	var bodyStart int

	switch {
	case bytes.HasPrefix(rest, delim):
		// Empty front matter: opening delimiter immediately closed.
		bodyStart = len(delim)
	default:
		idx := bytes.Index(rest, append([]byte("\n"), delim...))
		if idx < 0 {
			idx = bytes.Index(rest, append([]byte("\r\n"), delim...))
			if idx < 0 {
				return FrontmatterResult{Body: string(content)}
			}
			matter = rest[:idx]
			bodyStart = idx + 2 + len(delim)
			break
		}
		matter = rest[:idx]
		bodyStart = idx + 1 + len(delim)
	}

	matter = bytes.TrimSuffix(matter, []byte("\r"))
	matter = bytes.ReplaceAll(matter, []byte("\r\n"), []byte("\n"))

	body := trimOneNewline(rest[min(bodyStart, len(rest)):])
	return FrontmatterResult{
		Frontmatter:    matter,
		Body:           string(body),
		HasFrontmatter: true,
	}
}

func trimOneNewline(b []byte) []byte {
	if bytes.HasPrefix(b, []byte("\r\n")) {
		return b[2:]
	}
	if bytes.HasPrefix(b, []byte("\n")) {
		return b[1:]
	}
	return b
}

// ParseYAML parses front-matter bytes into a generic map.
// Empty input yields an empty map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	if len(frontmatter) == 0 {
		return map[string]any{}, nil
	}

	var result map[string]any
	if err := yaml.Unmarshal(frontmatter, &result); err != nil {
		return nil, fmt.Errorf("failed to parse YAML front matter: %w", err)
	}
	if result == nil {
		result = map[string]any{}
	}
	return result, nil
}
