package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/swdunlop/stencil"
	"github.com/swdunlop/stencil/dataview"
	"github.com/swdunlop/stencil/tag"
	"github.com/swdunlop/stencil/tree"
)

var renderCommand = &cli.Command{
	Name:      `render`,
	Usage:     `render JSON document trees as HTML`,
	ArgsUsage: `<file.json>...`,
	Description: `Renders each JSON document tree to HTML.  With no output directory, the documents are written to
stdout in order.  With -o, each document is written next to the others in the output directory, replacing its
.json extension with .html.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    `out`,
			Aliases: []string{`o`},
			Usage:   `write <name>.html files to this directory instead of stdout`,
			EnvVars: []string{`STENCIL_OUT`},
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() == 0 {
			return fmt.Errorf(`no documents specified`)
		}
		out := c.String(`out`)
		var allErr error
		for _, path := range c.Args().Slice() {
			if err := renderFile(path, out); err != nil {
				allErr = errors.Join(allErr, err)
			}
		}
		return allErr
	},
}

func renderFile(path, outDir string) error {
	doc, err := tree.ParseFile(path)
	if err != nil {
		return err
	}
	p := stencil.Append(make([]byte, 0, 16384), doc...)
	log.Debug().Str(`path`, path).Int(`nodes`, tree.Count(doc)).Int(`bytes`, len(p)).Msg(`rendered`)
	if outDir == `` {
		_, err = os.Stdout.Write(p)
		return err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + `.html`
	return writeFile(filepath.Join(outDir, name), p)
}

// writeFile writes p to path, always overwriting any existing file.
func writeFile(path string, p []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, p, 0o644); err != nil {
		return err
	}
	log.Info().Str(`path`, path).Int(`bytes`, len(p)).Msg(`wrote`)
	return nil
}

var dataviewCommand = &cli.Command{
	Name:      `dataview`,
	Usage:     `render JSON from stdin as an HTML page of nested tables`,
	ArgsUsage: ` `,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  `title`,
			Usage: `title of the page`,
			Value: `Data`,
		},
	},
	Action: func(c *cli.Context) error {
		js, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		view, err := dataview.FromJSON(js)
		if err != nil {
			return fmt.Errorf(`%w on stdin`, err)
		}
		page := tag.Page(c.String(`title`), []stencil.Node{tag.Style(dataview.Stylesheet() + css)},
			tag.Content(view),
		)
		_, err = os.Stdout.Write(stencil.Append(make([]byte, 0, 1024*1024), page...))
		return err
	},
}

// css extends the structural CSS from the dataview with colors, fonts and spacing.
const css = `
body{ background-color: #111; color: #eee; font-family: sans-serif; }
.object, .array, .table { border-top: 2px solid #888; }
.label { font-weight: bold; background-color: #333; }
.empty, .undefined, .null { font-style: italic; }
.label, .value { font-family: monospace; padding: .35em; }
`
