package main

import (
	"os"

	"github.com/df07/go-weekend-raytracer/cmd"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/urfave/cli"
)

func main() {
	newApp().Run(os.Args)
}

func newApp() *cli.App {
	// -v is taken by verbose logging
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "raytracer"
	app.Usage = "render scenes of spheres using path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a still frame",
			Description: `
Render a built-in scene, or a JSON scene file, to an image. The output format is
chosen from the file extension (.ppm, .png, .bmp, .tif, .tiff). Use "-" as the
output to write a PPM image to stdout.

Camera flags left unset keep the value the scene defines.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:   "scene",
					Value:  "final",
					Usage:  "built-in scene to render",
					EnvVar: "RAYTRACER_SCENE",
				},
				cli.StringFlag{
					Name:   "scene-file",
					Usage:  "JSON scene file to render instead of a built-in scene",
					EnvVar: "RAYTRACER_SCENE_FILE",
				},
				cli.StringFlag{
					Name:   "out, o",
					Value:  "render.ppm",
					Usage:  "image filename for the rendered frame",
					EnvVar: "RAYTRACER_OUT",
				},
				cli.IntFlag{
					Name:   "width",
					Usage:  "frame width",
					EnvVar: "RAYTRACER_WIDTH",
				},
				cli.Float64Flag{
					Name:   "aspect",
					Usage:  "frame aspect ratio (width over height)",
					EnvVar: "RAYTRACER_ASPECT",
				},
				cli.IntFlag{
					Name:   "spp",
					Usage:  "samples per pixel",
					EnvVar: "RAYTRACER_SPP",
				},
				cli.IntFlag{
					Name:   "depth",
					Usage:  "maximum number of ray bounces",
					EnvVar: "RAYTRACER_DEPTH",
				},
				cli.Float64Flag{
					Name:   "vfov",
					Usage:  "vertical field of view in degrees",
					EnvVar: "RAYTRACER_VFOV",
				},
				cli.Float64Flag{
					Name:   "defocus-angle",
					Usage:  "lens aperture angle in degrees, 0 for a pinhole camera",
					EnvVar: "RAYTRACER_DEFOCUS_ANGLE",
				},
				cli.Float64Flag{
					Name:   "focus-dist",
					Usage:  "distance to the plane of perfect focus (0 = keep scene value)",
					EnvVar: "RAYTRACER_FOCUS_DIST",
				},
				cli.Int64Flag{
					Name:   "seed",
					Value:  renderer.DefaultSeed,
					Usage:  "random seed; equal seeds give identical images",
					EnvVar: "RAYTRACER_SEED",
				},
				cli.IntFlag{
					Name:   "workers",
					Usage:  "number of render workers (0 = one per logical core)",
					EnvVar: "RAYTRACER_WORKERS",
				},
				cli.IntFlag{
					Name:   "tile-size",
					Value:  renderer.DefaultTileSize,
					Usage:  "edge length of the square tiles handed to workers",
					EnvVar: "RAYTRACER_TILE_SIZE",
				},
				cli.BoolFlag{
					Name:  "stats",
					Usage: "print per-worker render statistics",
				},
			},
			Action: cmd.Render,
		},
		{
			Name:  "scenes",
			Usage: "list available scenes",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:   "dir",
					Value:  "scenes",
					Usage:  "directory searched for JSON scene files",
					EnvVar: "RAYTRACER_SCENES_DIR",
				},
			},
			Action: cmd.ListScenes,
			Subcommands: []cli.Command{
				{
					Name:      "export",
					Usage:     "write a built-in scene as a JSON scene file",
					ArgsUsage: "scene_file.json",
					Flags: []cli.Flag{
						cli.StringFlag{
							Name:  "scene",
							Value: "three-spheres",
							Usage: "built-in scene to export",
						},
					},
					Action: cmd.ExportScene,
				},
			},
		},
		{
			Name:  "serve",
			Usage: "run the HTTP render service",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:   "port",
					Value:  8080,
					Usage:  "port to serve on",
					EnvVar: "RAYTRACER_PORT",
				},
				cli.StringFlag{
					Name:   "dir",
					Value:  "scenes",
					Usage:  "directory searched for JSON scene files",
					EnvVar: "RAYTRACER_SCENES_DIR",
				},
			},
			Action: cmd.Serve,
		},
	}

	return app
}
