package markdown

import "testing"

const sampleDoc = `---
title: Sample
---
# Heading One

Some text with a [link](reference/patterns.md) and an
![image](assets/diagram.svg).

## Heading Two

` + "```yaml\nkey: value\n```" + `

` + "```\nuntagged\n```" + `
`

func TestParseMeta(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	meta := doc.Meta()
	if meta == nil || meta["title"] != "Sample" {
		t.Errorf("Meta() = %v, want title Sample", meta)
	}
}

func TestCodeBlocks(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	blocks := doc.CodeBlocks()
	if len(blocks) != 2 {
		t.Fatalf("CodeBlocks() returned %d blocks, want 2", len(blocks))
	}
	if blocks[0].Lang != "yaml" {
		t.Errorf("blocks[0].Lang = %q, want yaml", blocks[0].Lang)
	}
	if blocks[0].Body != "key: value\n" {
		t.Errorf("blocks[0].Body = %q", blocks[0].Body)
	}
	if blocks[0].Line == 0 {
		t.Error("blocks[0].Line = 0, want a positive line number")
	}
	if blocks[1].Lang != "" {
		t.Errorf("blocks[1].Lang = %q, want untagged", blocks[1].Lang)
	}
}

func TestLinks(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	links := doc.Links()
	if len(links) != 2 {
		t.Fatalf("Links() returned %d links, want 2", len(links))
	}
	if links[0].Dest != "reference/patterns.md" || links[0].Image {
		t.Errorf("links[0] = %+v", links[0])
	}
	if links[1].Dest != "assets/diagram.svg" || !links[1].Image {
		t.Errorf("links[1] = %+v", links[1])
	}
	if links[0].Line == 0 {
		t.Error("links[0].Line = 0, want a positive line number")
	}
}

func TestHeadings(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	headings := doc.Headings()
	if len(headings) != 2 {
		t.Fatalf("Headings() returned %d, want 2", len(headings))
	}
	if headings[0].Level != 1 || headings[0].Text != "Heading One" {
		t.Errorf("headings[0] = %+v", headings[0])
	}
	if headings[1].Level != 2 {
		t.Errorf("headings[1].Level = %d, want 2", headings[1].Level)
	}
}

func TestHasBody(t *testing.T) {
	doc, err := Parse([]byte("# Content\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !doc.HasBody() {
		t.Error("HasBody() = false for document with content")
	}

	empty, err := Parse([]byte(""))
	if err != nil {
		t.Fatal(err)
	}
	if empty.HasBody() {
		t.Error("HasBody() = true for empty document")
	}
}
