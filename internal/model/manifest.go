package model

import (
	"fmt"
	"strings"
)

// ManifestFileName is the canonical name of the skill definition file.
const ManifestFileName = "SKILL.md"

// Manifest is the structured front matter of a SKILL.md file.
// Its fields are consumed by the host runtime that loads the bundle;
// skillpack parses and validates them but never enforces their semantics.
type Manifest struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Version     string   `yaml:"version" json:"version"`
	Author      string   `yaml:"author,omitempty" json:"author,omitempty"`
	Tags        []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Context     string   `yaml:"context,omitempty" json:"context,omitempty"`
	AgentType   string   `yaml:"agent-type,omitempty" json:"agent_type,omitempty"`

	// AllowedTools lists the tool identifiers the host should expose
	// to the assistant while this skill is active.
	AllowedTools []string `yaml:"allowed-tools,omitempty" json:"allowed_tools,omitempty"`

	// DisableModelInvocation prevents the model from activating the
	// skill autonomously; only explicit user invocation applies.
	DisableModelInvocation bool `yaml:"disable-model-invocation,omitempty" json:"disable_model_invocation,omitempty"`

	// MaxIterations caps agentic loop iterations while the skill is active.
	// Zero means the host default applies.
	MaxIterations int `yaml:"max-iterations,omitempty" json:"max_iterations,omitempty"`

	ConfidenceStyle string `yaml:"confidence-style,omitempty" json:"confidence_style,omitempty"`

	// Extra holds unrecognized front-matter keys, preserved verbatim so
	// round-tripping a bundle never drops host-specific fields.
	Extra map[string]string `yaml:"-" json:"extra,omitempty"`
}

// RequiredKeys returns the front-matter keys every manifest must declare.
func RequiredKeys() []string {
	return []string{"name", "description", "version"}
}

// Validate checks the structural invariants of the manifest: required
// fields are present and the name is a valid bundle identifier.
// Deeper checks (version format, enum values) belong to the lint package.
func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("manifest: name is required")
	}
	if err := ValidateBundleName(m.Name); err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	if m.Description == "" {
		return fmt.Errorf("manifest: description is required")
	}
	if m.Version == "" {
		return fmt.Errorf("manifest: version is required")
	}
	if m.MaxIterations < 0 {
		return fmt.Errorf("manifest: max-iterations cannot be negative")
	}
	return nil
}

// ValidateBundleName checks if a bundle name is a valid identifier.
// Valid names are non-empty, lowercase kebab-case: letters, digits,
// and single hyphens between segments.
func ValidateBundleName(name string) error {
	if name == "" {
		return fmt.Errorf("bundle name cannot be empty")
	}
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("bundle name cannot have leading/trailing whitespace: %q", name)
	}
	if strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-") || strings.Contains(name, "--") {
		return fmt.Errorf("bundle name has misplaced hyphen: %q", name)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return fmt.Errorf("bundle name contains invalid character %q: %q", r, name)
		}
	}
	return nil
}

// AgentType values understood by the hosts skillpack targets.
type AgentType string

const (
	AgentGeneral AgentType = "general"
	AgentCoding  AgentType = "coding"
	AgentReview  AgentType = "review"
)

// IsValid returns true if the agent type is recognized.
func (t AgentType) IsValid() bool {
	switch t {
	case AgentGeneral, AgentCoding, AgentReview:
		return true
	default:
		return false
	}
}

// AllAgentTypes returns all recognized agent types.
func AllAgentTypes() []AgentType {
	return []AgentType{AgentGeneral, AgentCoding, AgentReview}
}

// ParseAgentType converts a string to an AgentType.
// Returns AgentGeneral for empty input.
func ParseAgentType(s string) (AgentType, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" {
		return AgentGeneral, nil
	}

	t := AgentType(normalized)
	if t.IsValid() {
		return t, nil
	}

	switch normalized {
	case "coder", "code":
		return AgentCoding, nil
	case "reviewer", "code-review":
		return AgentReview, nil
	default:
		return "", fmt.Errorf("unknown agent type %q (valid: %s)", s, joinAgentTypes(AllAgentTypes()))
	}
}

func joinAgentTypes(types []AgentType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// ConfidenceStyle values describe how the assistant should express certainty.
type ConfidenceStyle string

const (
	ConfidencePlain  ConfidenceStyle = "plain"
	ConfidenceHedged ConfidenceStyle = "hedged"
	ConfidenceScored ConfidenceStyle = "scored"
)

// IsValid returns true if the confidence style is recognized.
func (c ConfidenceStyle) IsValid() bool {
	switch c {
	case ConfidencePlain, ConfidenceHedged, ConfidenceScored:
		return true
	default:
		return false
	}
}

// AllConfidenceStyles returns all recognized confidence styles.
func AllConfidenceStyles() []ConfidenceStyle {
	return []ConfidenceStyle{ConfidencePlain, ConfidenceHedged, ConfidenceScored}
}

// ParseConfidenceStyle converts a string to a ConfidenceStyle.
// Returns ConfidencePlain for empty input.
func ParseConfidenceStyle(s string) (ConfidenceStyle, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" {
		return ConfidencePlain, nil
	}

	c := ConfidenceStyle(normalized)
	if c.IsValid() {
		return c, nil
	}

	switch normalized {
	case "qualified", "cautious":
		return ConfidenceHedged, nil
	case "numeric", "percentage":
		return ConfidenceScored, nil
	default:
		return "", fmt.Errorf("unknown confidence style %q (valid: %s)", s, joinConfidenceStyles(AllConfidenceStyles()))
	}
}

func joinConfidenceStyles(styles []ConfidenceStyle) string {
	names := make([]string, len(styles))
	for i, c := range styles {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
