package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/log"
	"github.com/df07/go-weekend-raytracer/pkg/output"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
	"github.com/labstack/echo/v4"
)

// Parameter bounds for /api/render
const (
	minWidth, maxWidth = 16, 1920
	minSPP, maxSPP     = 1, 1000
	minDepth, maxDepth = 0, 100
)

// Caps on the scene's own width and spp when a request does not set them
const (
	defaultMaxWidth = 400
	defaultMaxSPP   = 50
)

// DefaultScene is rendered when a request names none
const DefaultScene = "three-spheres"

var renderCounter atomic.Int64

// RenderRequest represents a parsed /api/render request. Optional fields are nil when the
// request leaves the scene's own value in place.
type RenderRequest struct {
	Scene           string
	Width           *int
	SamplesPerPixel *int
	MaxDepth        *int
	Seed            int64
	Format          string
}

// Apply overrides the fields the request sets. Width and spp the request leaves unset are capped
// at defaultMaxWidth and defaultMaxSPP, and the result always lies within the parameter bounds.
func (r *RenderRequest) Apply(config renderer.CameraConfig) renderer.CameraConfig {
	if r.Width != nil {
		config.ImageWidth = *r.Width
	} else {
		config.ImageWidth = min(config.ImageWidth, defaultMaxWidth)
	}
	if r.SamplesPerPixel != nil {
		config.SamplesPerPixel = *r.SamplesPerPixel
	} else {
		config.SamplesPerPixel = min(config.SamplesPerPixel, defaultMaxSPP)
	}
	if r.MaxDepth != nil {
		config.MaxDepth = *r.MaxDepth
	}
	return clampToLimits(config)
}

// clampToLimits forces width, spp and depth into the /api/render parameter bounds
func clampToLimits(config renderer.CameraConfig) renderer.CameraConfig {
	config.ImageWidth = max(minWidth, min(config.ImageWidth, maxWidth))
	config.SamplesPerPixel = max(minSPP, min(config.SamplesPerPixel, maxSPP))
	config.MaxDepth = max(minDepth, min(config.MaxDepth, maxDepth))
	return config
}

// parseRenderRequest parses and validates request parameters
func parseRenderRequest(c echo.Context) (*RenderRequest, error) {
	req := &RenderRequest{
		Scene:  c.QueryParam("scene"),
		Seed:   renderer.DefaultSeed,
		Format: c.QueryParam("format"),
	}
	if req.Scene == "" {
		req.Scene = DefaultScene
	}

	switch req.Format {
	case "":
		req.Format = output.FormatPNG
	case output.FormatPNG, output.FormatPPM:
	default:
		return nil, fmt.Errorf("format must be png or ppm, got: %s", req.Format)
	}

	optional := []struct {
		key      string
		min, max int
		target   **int
	}{
		{"width", minWidth, maxWidth, &req.Width},
		{"spp", minSPP, maxSPP, &req.SamplesPerPixel},
		{"depth", minDepth, maxDepth, &req.MaxDepth},
	}
	for _, p := range optional {
		value, present, err := parseIntParam(c, p.key, 0, p.min, p.max)
		if err != nil {
			return nil, err
		}
		if present {
			*p.target = &value
		}
	}

	if raw := c.QueryParam("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid seed: %s", raw)
		}
		req.Seed = seed
	}

	return req, nil
}

// handleRender renders a scene synchronously and responds with the encoded image. Closing the
// request cancels the render.
func (s *Server) handleRender(c echo.Context) error {
	req, err := parseRenderRequest(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	sceneObj, err := scene.Resolve(req.Scene, s.sceneDir)
	if errors.Is(err, scene.ErrUnknownScene) {
		return jsonError(c, http.StatusNotFound, err.Error())
	}
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	renderID := fmt.Sprintf("render-%d", renderCounter.Add(1))
	config := req.Apply(sceneObj.CameraConfig)

	raytracer, err := renderer.NewRaytracer(sceneObj, config, renderer.RenderOptions{
		Seed:   req.Seed,
		Logger: NewWebLogger(renderID, log.New("renderer"), s.console),
	})
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	frame, stats, err := raytracer.Render(c.Request().Context())
	if err != nil {
		return jsonError(c, http.StatusServiceUnavailable, fmt.Sprintf("render aborted: %v", err))
	}

	var buf bytes.Buffer
	if err := output.Encode(&buf, frame, req.Format); err != nil {
		return jsonError(c, http.StatusInternalServerError, err.Error())
	}

	header := c.Response().Header()
	header.Set("X-Render-Id", renderID)
	header.Set("X-Render-Time", stats.Duration.Round(time.Millisecond).String())
	header.Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))

	return c.Blob(http.StatusOK, contentType(req.Format), buf.Bytes())
}

func contentType(format string) string {
	if format == output.FormatPPM {
		return "image/x-portable-pixmap"
	}
	return "image/png"
}
