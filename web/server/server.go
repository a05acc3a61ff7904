package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/log"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
	"github.com/labstack/echo/v4"
)

var logger = log.New("server")

// DefaultConsoleSize is the number of log messages kept for /api/console
const DefaultConsoleSize = 200

// Server exposes the raytracer over HTTP
type Server struct {
	port     int
	sceneDir string
	echo     *echo.Echo
	console  *Console
}

// NewServer creates a new web server. JSON scene files are discovered in sceneDir.
func NewServer(port int, sceneDir string) *Server {
	s := &Server{
		port:     port,
		sceneDir: sceneDir,
		echo:     echo.New(),
		console:  NewConsole(DefaultConsoleSize),
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Use(requestLogger, corsMiddleware)

	// API endpoints
	s.echo.GET("/api/health", s.handleHealth)
	s.echo.GET("/api/scenes", s.handleScenes)
	s.echo.GET("/api/render", s.handleRender)
	s.echo.GET("/api/inspect", s.handleInspect)
	s.echo.GET("/api/console", s.handleConsole)

	return s
}

// Handler returns the HTTP handler serving all endpoints
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves on the configured port until Shutdown is called
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	logger.Noticef("starting web server on http://localhost%s", addr)

	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests until ctx is done
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and scene files, grouped
func (s *Server) handleScenes(c echo.Context) error {
	scenes, err := scene.ListAllScenes(s.sceneDir)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, scenes)
}

// handleConsole returns the most recent render log messages, oldest first
func (s *Server) handleConsole(c echo.Context) error {
	return c.JSON(http.StatusOK, s.console.Messages())
}

// jsonError writes a {"error": message} body with the given status
func jsonError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}

// parseIntParam parses an integer query parameter with validation. present is false when the
// parameter is absent, in which case defaultValue is returned.
func parseIntParam(c echo.Context, key string, defaultValue, min, max int) (value int, present bool, err error) {
	raw := c.QueryParam(key)
	if raw == "" {
		return defaultValue, false, nil
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true, fmt.Errorf("invalid %s: %s", key, raw)
	}
	if parsed < min || parsed > max {
		return 0, true, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
	}
	return parsed, true, nil
}

// requestLogger logs every request at Info once it has been served
func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		req := c.Request()
		logger.Infof("%s %s -> %d in %v", req.Method, req.URL.RequestURI(), c.Response().Status, time.Since(start))
		return nil
	}
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}

		return next(c)
	}
}
