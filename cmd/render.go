package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/df07/go-weekend-raytracer/pkg/output"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// StdoutPath makes the render command write a PPM image to stdout
const StdoutPath = "-"

// Render a still frame.
func Render(ctx *cli.Context) error {
	setupLogging(ctx)
	logHostInfo()

	sc, err := loadScene(ctx)
	if err != nil {
		return exitError(err)
	}

	config := cameraOverrides(ctx, sc.CameraConfig)
	if err := config.Validate(); err != nil {
		return exitError(err)
	}
	checkFrameMemory(config.ImageWidth, config.ImageHeight())

	options := renderer.RenderOptions{
		Workers:  ctx.Int("workers"),
		TileSize: ctx.Int("tile-size"),
		Seed:     ctx.Int64("seed"),
		Progress: progressLogger(logger.Infof),
	}

	r, err := renderer.NewRaytracer(sc, config, options)
	if err != nil {
		return exitError(err)
	}

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	frame, stats, err := r.Render(renderCtx)
	if err != nil {
		return exitError(fmt.Errorf("render interrupted: %w", err))
	}

	if err := writeFrame(ctx, frame); err != nil {
		return exitError(err)
	}

	if ctx.Bool("stats") {
		displayRenderStats(stats)
	}

	return nil
}

// loadScene returns the scene file given by --scene-file, or else the built-in --scene
func loadScene(ctx *cli.Context) (*scene.Scene, error) {
	if path := ctx.String("scene-file"); path != "" {
		return scene.Load(path)
	}
	return scene.Create(ctx.String("scene"))
}

// cameraOverrides applies every camera flag set on the command line or through the
// environment on top of the scene's camera. A zero --focus-dist keeps the scene value.
func cameraOverrides(ctx *cli.Context, config renderer.CameraConfig) renderer.CameraConfig {
	intFlag := func(name string, target *int) {
		if ctx.IsSet(name) || ctx.Int(name) != 0 {
			*target = ctx.Int(name)
		}
	}
	floatFlag := func(name string, target *float64) {
		if ctx.IsSet(name) || ctx.Float64(name) != 0 {
			*target = ctx.Float64(name)
		}
	}

	intFlag("width", &config.ImageWidth)
	intFlag("spp", &config.SamplesPerPixel)
	if ctx.IsSet("depth") {
		config.MaxDepth = ctx.Int("depth")
	}
	floatFlag("aspect", &config.AspectRatio)
	floatFlag("vfov", &config.VFov)
	floatFlag("defocus-angle", &config.DefocusAngle)
	if ctx.Float64("focus-dist") != 0 {
		config.FocusDist = ctx.Float64("focus-dist")
	}

	return config
}

// progressLogger returns a progress callback reporting every 10% of completed tiles to logf
func progressLogger(logf func(format string, v ...interface{})) func(done, total int) {
	lastDecile := 0
	return func(done, total int) {
		decile := 10 * done / total
		if decile > lastDecile {
			lastDecile = decile
			logf("rendered %d%% (%d/%d tiles)", 10*decile, done, total)
		}
	}
}

// writeFrame saves the frame to --out, or streams a PPM to the app writer for "-"
func writeFrame(ctx *cli.Context, frame *renderer.Frame) error {
	path := ctx.String("out")
	if path == StdoutPath {
		return output.WritePPM(ctx.App.Writer, frame)
	}

	if err := output.Save(path, frame); err != nil {
		if errors.Is(err, output.ErrUnsupportedFormat) {
			return fmt.Errorf("%w (supported: .ppm .png .bmp .tif .tiff)", err)
		}
		return err
	}
	logger.Noticef("wrote %dx%d image to %s", frame.Width, frame.Height, path)
	return nil
}

func displayRenderStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Tiles", "Pixels", "Samples", "Busy time", "Samples/s"})
	for _, ws := range stats.Workers {
		table.Append([]string{
			fmt.Sprintf("%d", ws.ID),
			fmt.Sprintf("%d", ws.Tiles),
			fmt.Sprintf("%d", ws.Pixels),
			fmt.Sprintf("%d", ws.Samples),
			ws.Duration.String(),
			fmt.Sprintf("%.0f", ws.SamplesPerSecond()),
		})
	}
	table.SetFooter([]string{
		"TOTAL",
		fmt.Sprintf("%d", stats.TilesRendered),
		fmt.Sprintf("%d", stats.TotalPixels),
		fmt.Sprintf("%d", stats.TotalSamples),
		stats.Duration.String(),
		fmt.Sprintf("%.0f", stats.SamplesPerSecond()),
	})

	table.Render()
	logger.Noticef("render statistics\n%s", buf.String())
}
