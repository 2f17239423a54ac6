// Command stencil renders JSON document trees to HTML, serves them for preview, and resolves script and stylesheet
// tags for packages on unpkg.com.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

var opts struct {
	Verbose bool
	Quiet   bool
	JSON    bool
}

func main() {
	app := &cli.App{
		Name:  `stencil`,
		Usage: `render HTML documents described as JSON trees`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        `verbose`,
				Aliases:     []string{`v`},
				Usage:       `include debug level logs`,
				Destination: &opts.Verbose,
			},
			&cli.BoolFlag{
				Name:        `quiet`,
				Aliases:     []string{`q`},
				Usage:       `only log warnings and errors`,
				Destination: &opts.Quiet,
			},
			&cli.BoolFlag{
				Name:        `log-json`,
				Usage:       `log JSON lines instead of console output`,
				EnvVars:     []string{`STENCIL_LOG_JSON`},
				Destination: &opts.JSON,
			},
		},
		Before: setupLogging,
		Commands: []*cli.Command{
			renderCommand,
			dataviewCommand,
			serveCommand,
			unpkgCommand,
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg(``)
		stop()
		os.Exit(1)
	}
}

func setupLogging(*cli.Context) error {
	if opts.JSON {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	switch {
	case opts.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case opts.Quiet:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	zerolog.DefaultContextLogger = &log.Logger
	return nil
}
