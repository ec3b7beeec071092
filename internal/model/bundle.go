package model

import (
	"path/filepath"
	"time"
)

// Well-known file and directory names inside a skill bundle.
const (
	ReadmeFileName  = "README.md"
	InstallFileName = "INSTALL.md"
	ReferenceDir    = "reference"
	ExamplesDir     = "examples"
)

// Doc is a markdown document inside a bundle, identified by its path
// relative to the bundle root.
type Doc struct {
	// RelPath is the path relative to the bundle root, slash-separated.
	RelPath string `json:"rel_path"`
	// Content is the raw file content.
	Content []byte `json:"-"`
}

// Bundle is a skill bundle loaded from disk: the parsed SKILL.md manifest
// plus the documentation set around it. A bundle performs no computation;
// it is a document set consumed by a host runtime.
type Bundle struct {
	// Name is the bundle identifier from the manifest.
	Name string `json:"name"`
	// Dir is the absolute path of the bundle root directory.
	Dir string `json:"dir"`
	// Manifest is the parsed SKILL.md front matter.
	Manifest Manifest `json:"manifest"`
	// Body is the SKILL.md markdown body after the front matter.
	Body string `json:"-"`
	// Docs holds every markdown document in the bundle except SKILL.md,
	// keyed by relative path (README.md, INSTALL.md, reference/*, examples/*).
	Docs []Doc `json:"docs,omitempty"`
	// Assets lists non-markdown files shipped with the bundle.
	Assets []string `json:"assets,omitempty"`
	// Scope records where the bundle was discovered, when known.
	Scope Scope `json:"scope,omitempty"`
	// Platform records which host directory the bundle was discovered in.
	Platform Platform `json:"platform,omitempty"`
	// ModifiedAt is the modification time of SKILL.md.
	ModifiedAt time.Time `json:"modified_at"`
}

// SkillPath returns the absolute path of the bundle's SKILL.md.
func (b *Bundle) SkillPath() string {
	return filepath.Join(b.Dir, ManifestFileName)
}

// Doc returns the document with the given relative path, if present.
func (b *Bundle) Doc(relPath string) (Doc, bool) {
	for _, d := range b.Docs {
		if d.RelPath == relPath {
			return d, true
		}
	}
	return Doc{}, false
}

// HasReadme returns true if the bundle ships a README.md.
func (b *Bundle) HasReadme() bool {
	_, ok := b.Doc(ReadmeFileName)
	return ok
}

// References returns the documents under reference/.
func (b *Bundle) References() []Doc {
	return b.docsUnder(ReferenceDir)
}

// Examples returns the documents under examples/.
func (b *Bundle) Examples() []Doc {
	return b.docsUnder(ExamplesDir)
}

func (b *Bundle) docsUnder(dir string) []Doc {
	prefix := dir + "/"
	var docs []Doc
	for _, d := range b.Docs {
		if len(d.RelPath) > len(prefix) && d.RelPath[:len(prefix)] == prefix {
			docs = append(docs, d)
		}
	}
	return docs
}

// IsHigherPrecedence returns true if this bundle's scope overrides other's.
func (b *Bundle) IsHigherPrecedence(other *Bundle) bool {
	return b.Scope.IsHigherPrecedence(other.Scope)
}
