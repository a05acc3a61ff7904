package cmd

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/df07/go-weekend-raytracer/web/server"
	"github.com/urfave/cli"
)

// shutdownTimeout bounds how long in-flight renders may take once the server is stopping
const shutdownTimeout = 10 * time.Second

// Serve the HTTP render service until interrupted.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)
	logHostInfo()

	srv := server.NewServer(ctx.Int("port"), ctx.String("dir"))

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	interrupt, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	select {
	case err := <-errChan:
		return exitError(err)
	case <-interrupt.Done():
		logger.Notice("shutting down web server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return exitError(srv.Shutdown(shutdownCtx))
}
