package cmd

import (
	"github.com/df07/go-weekend-raytracer/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("raytracer")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

// exitError converts err into an error urfave/cli reports with a non-zero exit status
func exitError(err error) error {
	if err == nil {
		return nil
	}
	return cli.NewExitError(err.Error(), 1)
}
