package parser

import (
	"errors"
	"fmt"

	"github.com/drewcray/skillpack/internal/model"
)

// TypeError reports a front-matter key whose value has the wrong type.
type TypeError struct {
	Key  string
	Want string
	Got  any
}

// Error returns a formatted type error message.
func (e *TypeError) Error() string {
	return fmt.Sprintf("front-matter key %q must be %s, got %T", e.Key, e.Want, e.Got)
}

// manifestKeys maps every recognized front-matter key to its declared type.
var manifestKeys = map[string]string{
	"name":                     "string",
	"description":              "string",
	"version":                  "string",
	"author":                   "string",
	"tags":                     "list of strings",
	"context":                  "string",
	"agent-type":               "string",
	"allowed-tools":            "list of strings",
	"disable-model-invocation": "boolean",
	"max-iterations":           "integer",
	"confidence-style":         "string",
}

// DecodeManifest decodes a parsed front-matter map into a typed Manifest,
// enforcing the declared type of every recognized key. Unrecognized keys
// are preserved as strings in Manifest.Extra. Missing required keys are
// reported by Manifest.Validate, not here.
func DecodeManifest(fm map[string]any) (model.Manifest, error) {
	var m model.Manifest
	var err error

	if m.Name, err = stringKey(fm, "name"); err != nil {
		return m, err
	}
	if m.Description, err = stringKey(fm, "description"); err != nil {
		return m, err
	}
	if m.Version, err = stringKey(fm, "version"); err != nil {
		return m, err
	}
	if m.Author, err = stringKey(fm, "author"); err != nil {
		return m, err
	}
	if m.Tags, err = stringListKey(fm, "tags"); err != nil {
		return m, err
	}
	if m.Context, err = stringKey(fm, "context"); err != nil {
		return m, err
	}
	if m.AgentType, err = stringKey(fm, "agent-type"); err != nil {
		return m, err
	}
	if m.AllowedTools, err = stringListKey(fm, "allowed-tools"); err != nil {
		return m, err
	}
	if m.DisableModelInvocation, err = boolKey(fm, "disable-model-invocation"); err != nil {
		return m, err
	}
	if m.MaxIterations, err = intKey(fm, "max-iterations"); err != nil {
		return m, err
	}
	if m.ConfidenceStyle, err = stringKey(fm, "confidence-style"); err != nil {
		return m, err
	}

	for key, val := range fm {
		if _, known := manifestKeys[key]; known {
			continue
		}
		if m.Extra == nil {
			m.Extra = make(map[string]string)
		}
		if s, ok := val.(string); ok {
			m.Extra[key] = s
		} else {
			m.Extra[key] = fmt.Sprintf("%v", val)
		}
	}

	return m, nil
}

// ParseManifest splits front matter from SKILL.md content and decodes it.
// Returns the manifest, the markdown body, and any parse or type error.
func ParseManifest(content []byte) (model.Manifest, string, error) {
	result := SplitFrontmatter(content)
	if !result.HasFrontmatter {
		return model.Manifest{}, result.Body, fmt.Errorf("missing front matter")
	}

	fm, err := ParseYAML(result.Frontmatter)
	if err != nil {
		return model.Manifest{}, result.Body, err
	}

	m, err := DecodeManifest(fm)
	if err != nil {
		return model.Manifest{}, result.Body, err
	}
	return m, result.Body, nil
}

// TypeErrors checks every recognized key in the front-matter map against
// its declared type and returns all mismatches. Unlike DecodeManifest it
// does not stop at the first failure, which lets lint report them all.
func TypeErrors(fm map[string]any) []*TypeError {
	var errs []*TypeError
	check := func(key string, err error) {
		var te *TypeError
		if errors.As(err, &te) {
			errs = append(errs, te)
		}
	}

	for _, key := range []string{"name", "description", "version", "author", "context", "agent-type", "confidence-style"} {
		_, err := stringKey(fm, key)
		check(key, err)
	}
	for _, key := range []string{"tags", "allowed-tools"} {
		_, err := stringListKey(fm, key)
		check(key, err)
	}
	_, err := boolKey(fm, "disable-model-invocation")
	check("disable-model-invocation", err)
	_, err = intKey(fm, "max-iterations")
	check("max-iterations", err)

	return errs
}

func stringKey(fm map[string]any, key string) (string, error) {
	val, ok := fm[key]
	if !ok || val == nil {
		return "", nil
	}
	s, ok := val.(string)
	if !ok {
		return "", &TypeError{Key: key, Want: manifestKeys[key], Got: val}
	}
	return s, nil
}

func stringListKey(fm map[string]any, key string) ([]string, error) {
	val, ok := fm[key]
	if !ok || val == nil {
		return nil, nil
	}
	list, ok := val.([]any)
	if !ok {
		return nil, &TypeError{Key: key, Want: manifestKeys[key], Got: val}
	}
	result := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, &TypeError{Key: key, Want: manifestKeys[key], Got: item}
		}
		result = append(result, s)
	}
	return result, nil
}

func boolKey(fm map[string]any, key string) (bool, error) {
	val, ok := fm[key]
	if !ok || val == nil {
		return false, nil
	}
	b, ok := val.(bool)
	if !ok {
		return false, &TypeError{Key: key, Want: manifestKeys[key], Got: val}
	}
	return b, nil
}

func intKey(fm map[string]any, key string) (int, error) {
	val, ok := fm[key]
	if !ok || val == nil {
		return 0, nil
	}
	switch n := val.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	default:
		return 0, &TypeError{Key: key, Want: manifestKeys[key], Got: val}
	}
}
