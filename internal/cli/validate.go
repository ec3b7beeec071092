package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/drewcray/skillpack/internal/config"
	"github.com/drewcray/skillpack/internal/lint"
	"github.com/drewcray/skillpack/internal/progress"
	"github.com/drewcray/skillpack/internal/ui"
)

// progressThreshold is the number of bundles above which a progress bar
// is shown during validation.
const progressThreshold = 3

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Run document-integrity checks on one or more skill bundles",
		ArgsUsage: "[bundle-dir...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Upgrade advisory findings to errors",
			},
			&cli.BoolFlag{
				Name:  "require-install-guide",
				Usage: "Error when a bundle has no INSTALL.md",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (text, json)",
			},
		},
		Action: runValidate,
	}
}

func runValidate(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	opts := cfg.LintOptions()
	if cmd.Bool("strict") {
		opts.Strict = true
	}
	if cmd.Bool("require-install-guide") {
		opts.RequireInstallGuide = true
	}

	dirs := cmd.Args().Slice()
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	var bar *progress.Bar
	if len(dirs) > progressThreshold {
		bar = progress.Simple(int64(len(dirs)), "validating bundles")
	}

	reports := make([]*lint.Report, 0, len(dirs))
	for _, dir := range dirs {
		if bar != nil {
			bar.Describe("validating " + filepath.Base(dir))
		}
		report, err := lint.Run(dir, opts)
		if err != nil {
			if bar != nil {
				_ = bar.Clear()
			}
			return err
		}
		reports = append(reports, report)
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	format := cmd.String("format")
	if format == "" {
		format = cfg.Output.Format
	}

	failed := 0
	for _, report := range reports {
		if !report.OK() {
			failed++
		}
	}

	switch format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(reports); err != nil {
			return err
		}
	case "text", "":
		for i, report := range reports {
			if i > 0 {
				fmt.Println()
			}
			ui.RenderReport(os.Stdout, report)
		}
	default:
		return fmt.Errorf("unknown output format %q (valid: text, json)", format)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d bundle(s) failed validation", failed, len(reports))
	}
	return nil
}
