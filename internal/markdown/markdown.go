// Package markdown provides read-only inspection of markdown documents
// for bundle linting: front matter, fenced code blocks, links, and
// headings. Documents are parsed once into a goldmark AST and never
// rendered.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	gparser "github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// CodeBlock is a fenced code block found in a document.
type CodeBlock struct {
	// Lang is the language declared by the fence tag ("" when untagged).
	Lang string
	// Body is the raw block content.
	Body string
	// Line is the 1-based line of the opening fence.
	Line int
}

// Link is a link or image destination found in a document.
type Link struct {
	// Dest is the raw destination as written.
	Dest string
	// Image is true for image links.
	Image bool
	// Line is the 1-based line of the enclosing block.
	Line int
}

// Heading is a section heading found in a document.
type Heading struct {
	Level int
	Text  string
	Line  int
}

// Document is a parsed markdown document.
type Document struct {
	source []byte
	root   ast.Node
	meta   map[string]any
}

var md = goldmark.New(goldmark.WithExtensions(meta.Meta))

// Parse parses markdown source, extracting YAML front matter when present.
func Parse(source []byte) (*Document, error) {
	pctx := gparser.NewContext()
	root := md.Parser().Parse(text.NewReader(source), gparser.WithContext(pctx))
	if root == nil {
		return nil, fmt.Errorf("failed to parse markdown")
	}

	return &Document{
		source: source,
		root:   root,
		meta:   meta.Get(pctx),
	}, nil
}

// Meta returns the document's YAML front matter, or nil when absent.
func (d *Document) Meta() map[string]any {
	return d.meta
}

// CodeBlocks returns all fenced code blocks in document order.
func (d *Document) CodeBlocks() []CodeBlock {
	var blocks []CodeBlock
	_ = ast.Walk(d.root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var lang string
		if l := fence.Language(d.source); l != nil {
			lang = string(l)
		}

		var body bytes.Buffer
		lines := fence.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			body.Write(seg.Value(d.source))
		}

		blocks = append(blocks, CodeBlock{
			Lang: lang,
			Body: body.String(),
			Line: d.lineOf(n),
		})
		return ast.WalkContinue, nil
	})
	return blocks
}

// Links returns all link and image destinations in document order.
func (d *Document) Links() []Link {
	var links []Link
	_ = ast.Walk(d.root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			links = append(links, Link{
				Dest: string(node.Destination),
				Line: d.lineOf(enclosingBlock(n)),
			})
		case *ast.Image:
			links = append(links, Link{
				Dest:  string(node.Destination),
				Image: true,
				Line:  d.lineOf(enclosingBlock(n)),
			})
		}
		return ast.WalkContinue, nil
	})
	return links
}

// Headings returns all headings in document order.
func (d *Document) Headings() []Heading {
	var headings []Heading
	_ = ast.Walk(d.root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		headings = append(headings, Heading{
			Level: h.Level,
			Text:  string(h.Text(d.source)),
			Line:  d.lineOf(n),
		})
		return ast.WalkContinue, nil
	})
	return headings
}

// HasBody returns true if the document contains any content besides
// front matter and blank lines.
func (d *Document) HasBody() bool {
	for c := d.root.FirstChild(); c != nil; c = c.NextSibling() {
		return true
	}
	return false
}

// lineOf returns the 1-based line number of a block node's first segment.
// Returns 0 when the node carries no source segments.
func (d *Document) lineOf(n ast.Node) int {
	if n == nil {
		return 0
	}
	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		// Fenced blocks report their content lines; an empty block still
		// has an opening fence, so fall back to walking children.
		if fence, ok := n.(*ast.FencedCodeBlock); ok && fence.Info != nil {
			seg := fence.Info.Segment
			return bytes.Count(d.source[:seg.Start], []byte("\n")) + 1
		}
		return 0
	}
	seg := lines.At(0)
	return bytes.Count(d.source[:seg.Start], []byte("\n")) + 1
}

// enclosingBlock walks up from an inline node to its containing block.
func enclosingBlock(n ast.Node) ast.Node {
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.Type() == ast.TypeBlock {
			return cur
		}
	}
	return nil
}
