package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/drewcray/skillpack/internal/config"
	"github.com/drewcray/skillpack/internal/ui"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage skillpack configuration",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Print the effective configuration",
				Action: runConfigShow,
			},
			{
				Name:   "init",
				Usage:  "Write a default configuration file",
				Action: runConfigInit,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing configuration file",
					},
				},
			},
			{
				Name:   "path",
				Usage:  "Print the configuration file path",
				Action: runConfigPath,
			},
		},
	}
}

func runConfigShow(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	if config.Exists() {
		fmt.Println(ui.Dim("# " + config.FilePath()))
	} else {
		fmt.Println(ui.Dim("# defaults (no config file)"))
	}
	_, err = os.Stdout.Write(data)
	return err
}

func runConfigInit(ctx context.Context, cmd *cli.Command) error {
	if config.Exists() && !cmd.Bool("force") {
		return fmt.Errorf("config file already exists at %s (use force to overwrite)", config.FilePath())
	}

	if err := config.Default().Save(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Println(ui.StatusSuccess("wrote config to " + config.FilePath()))
	return nil
}

func runConfigPath(ctx context.Context, cmd *cli.Command) error {
	fmt.Println(config.FilePath())
	return nil
}
