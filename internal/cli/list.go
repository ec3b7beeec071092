package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/drewcray/skillpack/internal/bundle"
	"github.com/drewcray/skillpack/internal/config"
	"github.com/drewcray/skillpack/internal/model"
	"github.com/drewcray/skillpack/internal/ui"
)

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List installed skill bundles across all platforms",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "platform",
				Aliases: []string{"p"},
				Usage:   "Only show bundles for one platform (claude-code, cursor, codex)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (text, json)",
			},
		},
		Action: runList,
	}
}

func runList(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return err
	}

	locations := cfg.Locations(workDir)
	if raw := cmd.String("platform"); raw != "" {
		platform, err := model.ParsePlatform(raw)
		if err != nil {
			return err
		}
		filtered := locations[:0]
		for _, loc := range locations {
			if loc.Platform == platform {
				filtered = append(filtered, loc)
			}
		}
		locations = filtered
	}

	bundles, err := bundle.NewDiscovery(locations).Discover()
	if err != nil {
		return err
	}

	format := cmd.String("format")
	if format == "" {
		format = cfg.Output.Format
	}

	switch format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(bundles)
	case "text", "":
		ui.RenderBundleList(os.Stdout, bundles)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (valid: text, json)", format)
	}
}
