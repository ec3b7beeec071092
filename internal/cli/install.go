package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/drewcray/skillpack/internal/bundle"
	"github.com/drewcray/skillpack/internal/config"
	"github.com/drewcray/skillpack/internal/install"
	"github.com/drewcray/skillpack/internal/lint"
	"github.com/drewcray/skillpack/internal/model"
	"github.com/drewcray/skillpack/internal/ui"
	"github.com/drewcray/skillpack/internal/ui/tui"
)

func installCommand() *cli.Command {
	return &cli.Command{
		Name:      "install",
		Usage:     "Install a skill bundle into a host platform directory",
		ArgsUsage: "<bundle-dir>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "platform",
				Aliases: []string{"p"},
				Value:   string(model.ClaudeCode),
				Usage:   "Target platform (claude-code, cursor, codex)",
			},
			&cli.StringFlag{
				Name:    "scope",
				Aliases: []string{"s"},
				Value:   string(model.ScopeUser),
				Usage:   "Target scope (user, repo)",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Replace an already-installed bundle of the same name",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Preview the operation without touching the filesystem",
			},
			&cli.BoolFlag{
				Name:  "skip-validation",
				Usage: "Install even when the bundle fails lint checks",
			},
		},
		Action: runInstall,
	}
}

func runInstall(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.Args().First()
	if dir == "" {
		return fmt.Errorf("bundle directory is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	platform, err := model.ParsePlatform(cmd.String("platform"))
	if err != nil {
		return err
	}
	scope, err := model.ParseScope(cmd.String("scope"))
	if err != nil {
		return err
	}
	if scope == model.ScopeBuiltin {
		return fmt.Errorf("cannot install into the builtin scope")
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

	workDir, err := os.Getwd()
	if err != nil {
		return err
	}
	targetDir := cfg.InstallPath(platform, scope, workDir)
	if targetDir == "" {
		return fmt.Errorf("no bundle path configured for platform %q", platform)
	}

	result, err := install.Install(b, targetDir, install.Options{
		DryRun:      cmd.Bool("dry-run"),
		Force:       cmd.Bool("force"),
		BackupDir:   cfg.Archive.Location,
		KeepBackups: cfg.Archive.KeepBackups,
	})
	if err != nil {
		return err
	}

	if result.DryRun {
		fmt.Println(ui.Info("dry run:"), fmt.Sprintf("would install %s (%d files) to %s",
			result.Bundle, result.FilesCount, result.TargetDir))
		return nil
	}

	fmt.Println(ui.StatusSuccess(fmt.Sprintf("installed %s (%d files) to %s",
		result.Bundle, result.FilesCount, result.TargetDir)))
	if result.BackupPath != "" {
		fmt.Println(ui.Dim("previous install backed up to " + result.BackupPath))
	}
	return nil
}

func uninstallCommand() *cli.Command {
	return &cli.Command{
		Name:      "uninstall",
		Usage:     "Remove an installed skill bundle",
		ArgsUsage: "[bundle-name]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "platform",
				Aliases: []string{"p"},
				Usage:   "Limit removal to one platform (claude-code, cursor, codex)",
			},
		},
		Action: runUninstall,
	}
}

func runUninstall(ctx context.Context, cmd *cli.Command) error {
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

	discovery := bundle.NewDiscovery(locations)

	name := cmd.Args().First()
	var target *model.Bundle
	if name == "" {
		bundles, err := discovery.Discover()
		if err != nil {
			return err
		}
		target, err = tui.PickBundle("Select a bundle to uninstall", bundles)
		if err != nil {
			return err
		}
		if target == nil {
			return nil
		}
	} else {
		target, err = discovery.Find(name)
		if err != nil {
			return err
		}
	}

	parentDir := filepath.Dir(target.Dir)
	if err := install.Uninstall(target.Name, parentDir); err != nil {
		return err
	}

	fmt.Println(ui.StatusSuccess(fmt.Sprintf("uninstalled %s from %s", target.Name, parentDir)))
	return nil
}
