package lint

import (
	"encoding/json"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/drewcray/skillpack/internal/markdown"
)

// fenceValidators maps fence tags to syntax validators. Only data
// formats with an unambiguous parser are validated; programming-language
// snippets in a bundle are illustrative prose and are never compiled.
var fenceValidators = map[string]func(body string) error{
	"json":  validateJSON,
	"yaml":  validateYAML,
	"yml":   validateYAML,
	"toml":  validateTOML,
	"json5": nil, // recognized, no validator
}

// checkFences verifies every fenced code block whose tag declares a data
// format parses with the corresponding decoder. In strict mode, untagged
// and empty fences are flagged too.
func checkFences(report *Report, rel string, content []byte, opts Options) {
	doc, err := markdown.Parse(content)
	if err != nil {
		// Already reported by the link check.
		return
	}

	for _, block := range doc.CodeBlocks() {
		lang := strings.ToLower(block.Lang)

		if lang == "" {
			if opts.Strict && !strings.Contains(block.Body, "── ") {
				report.warnf(CheckFences, rel, block.Line, "fenced block has no language tag")
			}
			continue
		}

		if opts.Strict && strings.TrimSpace(block.Body) == "" {
			report.warnf(CheckFences, rel, block.Line, "fenced %s block is empty", lang)
			continue
		}

		validate, known := fenceValidators[lang]
		if !known || validate == nil {
			continue
		}
		if err := validate(block.Body); err != nil {
			report.errorf(CheckFences, rel, block.Line, "fenced %s block is not well-formed: %v", lang, err)
		}
	}
}

func validateJSON(body string) error {
	var v any
	return json.Unmarshal([]byte(body), &v)
}

func validateYAML(body string) error {
	var v any
	return yaml.Unmarshal([]byte(body), &v)
}

func validateTOML(body string) error {
	var v map[string]any
	return toml.Unmarshal([]byte(body), &v)
}
