package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/drewcray/skillpack/internal/builtin"
	"github.com/drewcray/skillpack/internal/template"
	"github.com/drewcray/skillpack/internal/ui"
)

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "new",
		Usage:     "Scaffold a new skill bundle",
		ArgsUsage: "<bundle-name>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Value:   ".",
				Usage:   "Parent directory for the new bundle",
			},
			&cli.StringFlag{
				Name:  "description",
				Usage: "One-line bundle description",
			},
			&cli.StringFlag{
				Name:  "author",
				Usage: "Bundle author",
			},
			&cli.StringSliceFlag{
				Name:  "tag",
				Usage: "Bundle tag (repeatable)",
			},
			&cli.StringFlag{
				Name:  "agent-type",
				Usage: "Agent type (general, coding, review)",
			},
			&cli.BoolFlag{
				Name:  "starter",
				Usage: "Write the built-in starter bundle instead of a fresh scaffold",
			},
		},
		Action: runNew,
	}
}

func runNew(ctx context.Context, cmd *cli.Command) error {
	baseDir := cmd.String("dir")

	if cmd.Bool("starter") {
		bundleDir, err := builtin.WriteTo(baseDir)
		if err != nil {
			return err
		}
		fmt.Println(ui.StatusSuccess("created starter bundle at " + bundleDir))
		return nil
	}

	name := cmd.Args().First()
	if name == "" {
		return fmt.Errorf("bundle name is required (or use starter)")
	}

	description := cmd.String("description")
	if description == "" {
		description = "Describe what this skill teaches the assistant to do."
	}

	generator, err := template.New()
	if err != nil {
		return err
	}

	bundleDir, err := generator.CreateBundle(baseDir, template.Data{
		Name:        name,
		Description: description,
		Author:      cmd.String("author"),
		Tags:        cmd.StringSlice("tag"),
		AgentType:   cmd.String("agent-type"),
	})
	if err != nil {
		return err
	}

	fmt.Println(ui.StatusSuccess("created bundle at " + bundleDir))
	fmt.Println(ui.Dim("edit SKILL.md, then run: skillpack validate " + bundleDir))
	return nil
}
