package template

// skillTemplate renders the SKILL.md definition file with the full
// front-matter header consumed by host runtimes.
const skillTemplate = `---
name: {{.Name}}
description: {{.Description}}
version: {{.Version}}
{{- if .Author}}
author: {{.Author}}
{{- end}}
{{- if .Tags}}
tags:
{{- range .Tags}}
  - {{.}}
{{- end}}
{{- end}}
context: Use this skill when the task matches its description.
agent-type: {{.AgentType}}
allowed-tools:
{{- range .AllowedTools}}
  - {{.}}
{{- end}}
disable-model-invocation: false
max-iterations: {{.MaxIterations}}
confidence-style: {{.ConfidenceStyle}}
---

# {{.Name}}

{{.Description}}

## When to use

Describe the situations where the assistant should activate this skill,
and the situations where it should stay out of the way.

## Guidelines

1. State the behavior the assistant should follow, one rule per line.
2. Prefer concrete instructions over aspirational ones.
3. Link supporting material from [reference/patterns.md](reference/patterns.md).

## Worked examples

See [examples/walkthrough.md](examples/walkthrough.md) for a complete
transcript showing the intended behavior.
`

// readmeTemplate renders the bundle README with the file inventory tree
// that lint verifies against the files on disk.
const readmeTemplate = `# {{.Name}}

{{.Description}}

## What's included

` + "```" + `
{{.Name}}/
├── SKILL.md
├── README.md
├── INSTALL.md
├── reference/
│   └── patterns.md
└── examples/
    └── walkthrough.md
` + "```" + `

- [SKILL.md](SKILL.md) defines the skill metadata and operating rules.
- [INSTALL.md](INSTALL.md) explains how to install the bundle.
- [reference/patterns.md](reference/patterns.md) catalogs supporting patterns.
- [examples/walkthrough.md](examples/walkthrough.md) shows the skill in use.

## Requirements

A host runtime that loads Agent Skills bundles (Claude Code, Cursor, or
Codex). No other dependencies; the bundle is documentation only.
`

// installTemplate renders the installation guide.
const installTemplate = `# Installing {{.Name}}

## With skillpack

` + "```" + `bash
skillpack install ./{{.Name}} --platform claude-code --scope user
` + "```" + `

## By hand

Copy the bundle directory into your platform's skills directory:

` + "```" + `bash
cp -r {{.Name}} ~/.claude/skills/{{.Name}}
` + "```" + `

Restart the assistant session so the host re-scans its skills directory.

## Verifying

Run the validator against the installed copy:

` + "```" + `bash
skillpack validate ~/.claude/skills/{{.Name}}
` + "```" + `
`

// referenceTemplate renders the starter reference document.
const referenceTemplate = `# Patterns

Catalog the reusable patterns this skill teaches. Each entry should name
the pattern, say when it applies, and show a short illustrative snippet.

## Example pattern

State the problem the pattern solves, then the shape of the solution:

` + "```" + `yaml
pattern: example
applies-when: the task matches the skill description
` + "```" + `

Keep entries short; the assistant reads this file to ground its answers,
not to copy it verbatim.
`

// exampleTemplate renders the starter example transcript.
const exampleTemplate = `# Walkthrough

A narrated transcript showing the skill steering the assistant.

## Request

> User: help me apply {{.Name}} to my project.

## Response

The assistant consults [../reference/patterns.md](../reference/patterns.md),
picks the matching pattern, and answers with a concrete plan. Replace
this section with a real transcript once the skill has been exercised.
`
