package model

import (
	"strings"
	"testing"
)

func TestValidateBundleName(t *testing.T) {
	tests := map[string]struct {
		input   string
		wantErr bool
	}{
		"simple":              {input: "backend-patterns", wantErr: false},
		"single word":         {input: "review", wantErr: false},
		"with digits":         {input: "api-v2-helper", wantErr: false},
		"empty":               {input: "", wantErr: true},
		"uppercase":           {input: "Backend", wantErr: true},
		"leading hyphen":      {input: "-skill", wantErr: true},
		"trailing hyphen":     {input: "skill-", wantErr: true},
		"double hyphen":       {input: "a--b", wantErr: true},
		"underscore":          {input: "my_skill", wantErr: true},
		"spaces":              {input: "my skill", wantErr: true},
		"leading whitespace":  {input: " skill", wantErr: true},
		"trailing whitespace": {input: "skill ", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := ValidateBundleName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBundleName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestManifestValidate(t *testing.T) {
	valid := Manifest{Name: "backend-patterns", Description: "desc", Version: "1.0.0"}

	tests := map[string]struct {
		mutate  func(m *Manifest)
		wantErr bool
	}{
		"valid":                  {mutate: func(m *Manifest) {}, wantErr: false},
		"missing name":           {mutate: func(m *Manifest) { m.Name = "" }, wantErr: true},
		"invalid name":           {mutate: func(m *Manifest) { m.Name = "Bad Name" }, wantErr: true},
		"missing description":    {mutate: func(m *Manifest) { m.Description = "" }, wantErr: true},
		"missing version":        {mutate: func(m *Manifest) { m.Version = "" }, wantErr: true},
		"negative iterations":    {mutate: func(m *Manifest) { m.MaxIterations = -1 }, wantErr: true},
		"zero iterations is ok":  {mutate: func(m *Manifest) { m.MaxIterations = 0 }, wantErr: false},
		"optional fields filled": {mutate: func(m *Manifest) { m.Author = "a"; m.Tags = []string{"x"} }, wantErr: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			m := valid
			tt.mutate(&m)
			err := m.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRequiredKeys(t *testing.T) {
	keys := RequiredKeys()
	want := []string{"name", "description", "version"}
	if len(keys) != len(want) {
		t.Fatalf("RequiredKeys() = %v, want %v", keys, want)
	}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("RequiredKeys()[%d] = %q, want %q", i, keys[i], k)
		}
	}
}

func TestParseAgentType(t *testing.T) {
	tests := map[string]struct {
		input   string
		want    AgentType
		wantErr bool
	}{
		"empty defaults to general": {input: "", want: AgentGeneral},
		"general":                   {input: "general", want: AgentGeneral},
		"coding":                    {input: "coding", want: AgentCoding},
		"review":                    {input: "review", want: AgentReview},
		"alias coder":               {input: "coder", want: AgentCoding},
		"alias code-review":         {input: "code-review", want: AgentReview},
		"mixed case":                {input: "  Coding ", want: AgentCoding},
		"unknown":                   {input: "wizard", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseAgentType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAgentType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseAgentType(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseConfidenceStyle(t *testing.T) {
	tests := map[string]struct {
		input   string
		want    ConfidenceStyle
		wantErr bool
	}{
		"empty defaults to plain": {input: "", want: ConfidencePlain},
		"plain":                   {input: "plain", want: ConfidencePlain},
		"hedged":                  {input: "hedged", want: ConfidenceHedged},
		"scored":                  {input: "scored", want: ConfidenceScored},
		"alias qualified":         {input: "qualified", want: ConfidenceHedged},
		"alias numeric":           {input: "numeric", want: ConfidenceScored},
		"unknown":                 {input: "loud", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseConfidenceStyle(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseConfidenceStyle(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseConfidenceStyle(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAgentTypeErrorListsValidValues(t *testing.T) {
	_, err := ParseAgentType("wizard")
	if err == nil {
		t.Fatal("expected error for unknown agent type")
	}
	for _, at := range AllAgentTypes() {
		if !strings.Contains(err.Error(), string(at)) {
			t.Errorf("error %q does not mention agent type %q", err, at)
		}
	}
}

func TestParseConfidenceStyleErrorListsValidValues(t *testing.T) {
	_, err := ParseConfidenceStyle("loud")
	if err == nil {
		t.Fatal("expected error for unknown confidence style")
	}
	for _, c := range AllConfidenceStyles() {
		if !strings.Contains(err.Error(), string(c)) {
			t.Errorf("error %q does not mention confidence style %q", err, c)
		}
	}
}
