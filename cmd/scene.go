package cmd

import (
	"errors"
	"fmt"

	"github.com/df07/go-weekend-raytracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List built-in scenes and the scene files found in --dir.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	scenes, err := scene.ListAllScenes(ctx.String("dir"))
	if err != nil {
		return exitError(err)
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Name", "Group", "Description"})
	for _, group := range scenes.Groups {
		for _, info := range group.Scenes {
			table.Append([]string{info.ID, info.DisplayName, group.Name, info.Description})
		}
	}
	table.Render()

	return nil
}

// Export a built-in scene as a JSON scene file.
func ExportScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return exitError(errors.New("missing output scene file argument"))
	}

	sc, err := scene.Create(ctx.String("scene"))
	if err != nil {
		return exitError(err)
	}

	file, err := scene.Export(sc)
	if err != nil {
		return exitError(err)
	}
	file.Name = ctx.String("scene")
	file.Description = fmt.Sprintf("Exported from the built-in %q scene", ctx.String("scene"))

	path := ctx.Args().First()
	if err := scene.Save(path, file); err != nil {
		return exitError(err)
	}

	logger.Noticef("exported %d spheres and %d materials to %s", len(file.Spheres), len(file.Materials), path)
	return nil
}
