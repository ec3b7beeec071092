package model

import (
	"fmt"
	"strings"
)

// Scope represents where a skill bundle is installed.
// Scopes follow a precedence order where more specific scopes override
// more general ones during discovery.
type Scope string

const (
	// ScopeBuiltin represents the starter bundle embedded in skillpack.
	ScopeBuiltin Scope = "builtin"

	// ScopeUser represents bundles installed under the user's home directory.
	ScopeUser Scope = "user"

	// ScopeRepo represents bundles local to a specific project checkout.
	ScopeRepo Scope = "repo"
)

// scopePrecedence defines the order of precedence for bundle scopes.
// Higher index = higher precedence (overrides lower).
var scopePrecedence = map[Scope]int{
	ScopeBuiltin: 0,
	ScopeUser:    1,
	ScopeRepo:    2,
}

// IsValid returns true if the scope is recognized.
func (s Scope) IsValid() bool {
	_, ok := scopePrecedence[s]
	return ok
}

// AllScopes returns all supported scopes in precedence order (lowest to highest).
func AllScopes() []Scope {
	return []Scope{ScopeBuiltin, ScopeUser, ScopeRepo}
}

// String returns the string representation of the scope.
func (s Scope) String() string {
	return string(s)
}

// Description returns a human-readable description of the scope.
func (s Scope) Description() string {
	switch s {
	case ScopeBuiltin:
		return "Starter bundle embedded in skillpack"
	case ScopeUser:
		return "Bundles installed in the user's home directory"
	case ScopeRepo:
		return "Bundles local to the current project"
	default:
		return "Unknown scope"
	}
}

// Precedence returns the precedence level of the scope.
// Higher values indicate higher precedence (overrides lower).
func (s Scope) Precedence() int {
	if p, ok := scopePrecedence[s]; ok {
		return p
	}
	return -1
}

// IsHigherPrecedence returns true if this scope has higher precedence than other.
func (s Scope) IsHigherPrecedence(other Scope) bool {
	return s.Precedence() > other.Precedence()
}

// ParseScope converts a string to a Scope.
// Returns an error if the scope is not recognized.
func ParseScope(s string) (Scope, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))

	scope := Scope(normalized)
	if scope.IsValid() {
		return scope, nil
	}

	switch normalized {
	case "repository", "project", "local":
		return ScopeRepo, nil
	case "global", "home":
		return ScopeUser, nil
	case "default", "built-in", "embedded":
		return ScopeBuiltin, nil
	default:
		return "", fmt.Errorf("unknown scope %q (valid: %s)", s, joinScopes(AllScopes()))
	}
}

func joinScopes(scopes []Scope) string {
	names := make([]string, len(scopes))
	for i, sc := range scopes {
		names[i] = sc.String()
	}
	return strings.Join(names, ", ")
}
