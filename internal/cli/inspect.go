package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/drewcray/skillpack/internal/bundle"
	"github.com/drewcray/skillpack/internal/config"
	"github.com/drewcray/skillpack/internal/model"
	"github.com/drewcray/skillpack/internal/ui"
	"github.com/drewcray/skillpack/internal/ui/tui"
	"github.com/drewcray/skillpack/internal/util"
)

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Show the manifest and contents of a skill bundle",
		ArgsUsage: "[bundle-dir-or-name]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (text, json)",
			},
		},
		Action: runInspect,
	}
}

func runInspect(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	b, err := resolveBundle(cfg, cmd.Args().First())
	if err != nil {
		return err
	}
	if b == nil {
		return nil // picker dismissed
	}

	format := cmd.String("format")
	if format == "" {
		format = cfg.Output.Format
	}

	switch format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(b)
	case "text", "":
		renderBundle(b)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (valid: text, json)", format)
	}
}

// resolveBundle turns the command argument into a loaded bundle: a
// directory containing SKILL.md is loaded directly, anything else is
// treated as an installed bundle name. Without an argument the
// interactive picker runs over all discovered bundles.
func resolveBundle(cfg *config.Config, arg string) (*model.Bundle, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	if arg == "" {
		discovery := bundle.NewDiscovery(cfg.Locations(workDir))
		bundles, err := discovery.Discover()
		if err != nil {
			return nil, err
		}
		return tui.PickBundle("Select a bundle", bundles)
	}

	dir := util.ExpandPath(arg, workDir)
	if util.FileExists(filepath.Join(dir, model.ManifestFileName)) {
		return bundle.Load(dir)
	}

	discovery := bundle.NewDiscovery(cfg.Locations(workDir))
	return discovery.Find(arg)
}

func renderBundle(b *model.Bundle) {
	fmt.Println(ui.Bold(b.Name), ui.Dim(b.Manifest.Version))
	if b.Manifest.Description != "" {
		fmt.Println(b.Manifest.Description)
	}
	fmt.Println()

	m := b.Manifest
	printField("Author", m.Author)
	printField("Tags", strings.Join(m.Tags, ", "))
	printField("Context", m.Context)
	printField("Agent type", m.AgentType)
	printField("Allowed tools", strings.Join(m.AllowedTools, ", "))
	printField("Confidence style", m.ConfidenceStyle)
	if m.MaxIterations > 0 {
		printField("Max iterations", fmt.Sprintf("%d", m.MaxIterations))
	}
	if m.DisableModelInvocation {
		printField("Model invocation", "disabled")
	}
	if b.Scope != "" {
		printField("Scope", string(b.Scope))
	}
	if b.Platform != "" {
		printField("Platform", string(b.Platform))
	}
	printField("Directory", b.Dir)
	printField("Definition", b.SkillPath())

	fmt.Println()
	fmt.Println(ui.Bold("Files"))
	for _, rel := range bundle.Files(b) {
		fmt.Printf("  %s\n", rel)
	}
}

func printField(label, value string) {
	if value == "" {
		return
	}
	fmt.Printf("  %-18s %s\n", ui.Dim(label), value)
}
