// Package model provides data types for skillpack.
package model

import (
	"fmt"
	"strings"
)

// Platform represents a host AI-assistant runtime that loads skill bundles.
type Platform string

const (
	ClaudeCode Platform = "claude-code"
	Cursor     Platform = "cursor"
	Codex      Platform = "codex"
)

// IsValid returns true if the platform is recognized.
func (p Platform) IsValid() bool {
	switch p {
	case ClaudeCode, Cursor, Codex:
		return true
	default:
		return false
	}
}

// String returns the string representation of the platform.
func (p Platform) String() string {
	return string(p)
}

// Description returns a human-readable description of the platform.
func (p Platform) Description() string {
	switch p {
	case ClaudeCode:
		return "Claude Code skills (~/.claude/skills)"
	case Cursor:
		return "Cursor skills (~/.cursor/skills)"
	case Codex:
		return "Codex skills (~/.codex/skills)"
	default:
		return "Unknown platform"
	}
}

// AllPlatforms returns all supported platforms.
func AllPlatforms() []Platform {
	return []Platform{ClaudeCode, Cursor, Codex}
}

// ParsePlatform converts a string to a Platform.
// Accepts common aliases like "claudecode" and "claude".
func ParsePlatform(s string) (Platform, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))

	p := Platform(normalized)
	if p.IsValid() {
		return p, nil
	}

	switch normalized {
	case "claudecode", "claude", "claude_code":
		return ClaudeCode, nil
	case "openai-codex":
		return Codex, nil
	default:
		return "", fmt.Errorf("unknown platform %q (valid: claude-code, cursor, codex)", s)
	}
}
