package main

import (
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/swdunlop/stencil/internal/server"
)

var serveCommand = &cli.Command{
	Name:  `serve`,
	Usage: `serve the JSON documents in a directory as HTML`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    `addr`,
			Usage:   `address to listen on`,
			Value:   `localhost:8181`,
			EnvVars: []string{`STENCIL_ADDR`},
		},
		&cli.StringFlag{
			Name:    `root`,
			Usage:   `directory containing JSON documents`,
			Value:   `.`,
			EnvVars: []string{`STENCIL_ROOT`},
		},
		&cli.BoolFlag{
			Name:  `reload`,
			Usage: `reload pages in the browser when the server restarts or a document changes`,
		},
	},
	Action: func(c *cli.Context) error {
		options := []server.Option{server.Logger(log.Logger)}
		if c.Bool(`reload`) {
			options = append(options, server.Reload())
		}
		addr, root := c.String(`addr`), c.String(`root`)
		log.Info().Str(`addr`, addr).Str(`root`, root).Msg(`serving documents`)
		return server.ListenAndServe(c.Context, addr, server.New(root, options...))
	},
}
