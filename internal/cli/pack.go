package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/drewcray/skillpack/internal/archive"
	"github.com/drewcray/skillpack/internal/bundle"
	"github.com/drewcray/skillpack/internal/config"
	"github.com/drewcray/skillpack/internal/lint"
	"github.com/drewcray/skillpack/internal/ui"
)

func packCommand() *cli.Command {
	return &cli.Command{
		Name:      "pack",
		Usage:     "Pack a skill bundle into a tar.gz archive",
		ArgsUsage: "<bundle-dir>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Archive file path (defaults to <name>-<version>.tar.gz in the archive dir)",
			},
			&cli.BoolFlag{
				Name:  "skip-validation",
				Usage: "Pack even when the bundle fails lint checks",
			},
		},
		Action: runPack,
	}
}

func runPack(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.Args().First()
	if dir == "" {
		return fmt.Errorf("bundle directory is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if !cmd.Bool("skip-validation") {
		report, err := lint.Run(dir, cfg.LintOptions())
		if err != nil {
			return err
		}
		if !report.OK() {
			ui.RenderReport(os.Stderr, report)
			return fmt.Errorf("bundle failed validation (use skip-validation to override)")
		}
	}

	b, err := bundle.Load(dir)
	if err != nil {
		return err
	}

	dest := cmd.String("output")
	if dest == "" {
		dest = filepath.Join(cfg.Archive.Location, archive.DefaultArchiveName(b.Manifest))
	}

	manifest, err := archive.PackFile(b, dest)
	if err != nil {
		return err
	}

	fmt.Println(ui.StatusSuccess(fmt.Sprintf("packed %s (%d files) to %s",
		b.Name, len(manifest.Files), dest)))
	return nil
}

func unpackCommand() *cli.Command {
	return &cli.Command{
		Name:      "unpack",
		Usage:     "Extract a packed skill bundle archive",
		ArgsUsage: "<archive.tar.gz>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "target",
				Aliases: []string{"C"},
				Value:   ".",
				Usage:   "Directory to extract into",
			},
			&cli.BoolFlag{
				Name:  "info",
				Usage: "Show the archive manifest without extracting",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format for info (text, json)",
			},
		},
		Action: runUnpack,
	}
}

func runUnpack(ctx context.Context, cmd *cli.Command) error {
	src := cmd.Args().First()
	if src == "" {
		return fmt.Errorf("archive path is required")
	}

	if cmd.Bool("info") {
		return showArchiveInfo(src, cmd.String("format"))
	}

	manifest, bundleDir, err := archive.UnpackFile(src, cmd.String("target"))
	if err != nil {
		return err
	}

	fmt.Println(ui.StatusSuccess(fmt.Sprintf("unpacked %s %s (%d files) to %s",
		manifest.Bundle.Name, manifest.Bundle.Version, len(manifest.Files), bundleDir)))
	return nil
}

func showArchiveInfo(src, format string) error {
	// #nosec G304 - src is provided by the user on the command line
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open archive %q: %w", src, err)
	}
	defer f.Close()

	manifest, err := archive.Inspect(f)
	if err != nil {
		return err
	}

	if format == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(manifest)
	}

	fmt.Println(ui.Bold(manifest.Bundle.Name), ui.Dim(manifest.Bundle.Version))
	fmt.Printf("  %-15s %s\n", ui.Dim("Created"), manifest.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("  %-15s %s\n", ui.Dim("Format"), manifest.FormatVersion)
	fmt.Println()
	fmt.Println(ui.Bold("Files"))
	for _, entry := range manifest.Files {
		fmt.Printf("  %8d  %s\n", entry.Size, entry.Path)
	}
	return nil
}
