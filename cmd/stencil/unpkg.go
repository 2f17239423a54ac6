package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/swdunlop/stencil"
	"github.com/swdunlop/stencil/tag"
)

var unpkgCommand = &cli.Command{
	Name:      `unpkg`,
	Usage:     `resolve packages on unpkg.com to script or link tags`,
	ArgsUsage: `<path>...`,
	Description: `Queries unpkg.com for dependencies and follows redirects to the full URL then outputs a script or link
tag with SRI information and disabled referrer policy.

  stencil unpkg alpinejs
  stencil unpkg alpinejs@latest
  stencil unpkg alpinejs@3.12.0
  stencil unpkg alpinejs/dist/cdn.min.js
  stencil unpkg alpinejs@latest/dist/cdn.min.js`,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  `defer`,
			Usage: `use defer attribute for <script> tags`,
		},
	},
	Action: func(c *cli.Context) error {
		for _, path := range c.Args().Slice() {
			dep, err := resolve(c.Context, path, c.Bool(`defer`))
			if err != nil {
				log.Error().Err(err).Str(`path`, path).Msg(`could not resolve`)
				continue
			}
			fmt.Println(stencil.Render(dep))
		}
		return nil
	},
}

const unpkgURL = `https://unpkg.com/`

func resolve(ctx context.Context, path string, deferred bool) (stencil.Element, error) {
	corrected, err := resolveUnpkgPath(ctx, path)
	if err != nil {
		return stencil.Element{}, err
	}
	if path != corrected {
		log.Debug().Str(`from`, path).Str(`to`, corrected).Msg(`redirected`)
		path = corrected
	}
	meta, err := fetchUnpkgMeta(ctx, path)
	if err != nil {
		return stencil.Element{}, err
	}
	return dependencyTag(unpkgURL+path, meta, deferred)
}

// dependencyTag builds the script or link tag for a file, depending on its content type.
func dependencyTag(url string, meta *fileMeta, deferred bool) (stencil.Element, error) {
	sri := tag.Apply(
		tag.Attr(`integrity`, stencil.Escape(meta.Integrity)),
		tag.Attr(`crossorigin`, `anonymous`),
		tag.Attr(`referrerpolicy`, `no-referrer`),
	)
	contentType := strings.SplitN(meta.Type, `;`, 2)[0]
	switch contentType {
	case `text/javascript`, `application/javascript`:
		options := make([]tag.Option, 0, 3)
		if deferred {
			options = append(options, tag.Flag(`defer`))
		}
		options = append(options, tag.Attr(`src`, stencil.Escape(url)), sri)
		return tag.New(`script`, options...), nil
	case `text/css`:
		return tag.New(`link`, tag.Attr(`rel`, `stylesheet`), tag.Attr(`href`, stencil.Escape(url)), sri), nil
	case ``:
		return stencil.Element{}, fmt.Errorf(`no content type; Unpkg has changed its schema again?`)
	default:
		return stencil.Element{}, fmt.Errorf(`unknown content type %q`, contentType)
	}
}

// resolveUnpkgPath lets unpkg redirect us to the full path, which includes the package, path and version.
func resolveUnpkgPath(ctx context.Context, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, `GET`, unpkgURL+path, nil)
	if err != nil {
		return path, err
	}
	rsp, err := http.DefaultClient.Do(req)
	if err != nil {
		return path, err
	}
	defer rsp.Body.Close()
	defer io.Copy(io.Discard, rsp.Body)
	return strings.TrimPrefix(rsp.Request.URL.Path, `/`), nil
}

func fetchUnpkgMeta(ctx context.Context, path string) (*fileMeta, error) {
	m := rxResource.FindStringSubmatch(path)
	if m == nil {
		return nil, fmt.Errorf(`could not parse %q into package, file and version`, path)
	}
	pkg, filePath := m[1], m[3]

	var meta packageMeta
	url := unpkgURL + pkg + `?meta`
	err := getJSON(ctx, &meta, url)
	if err != nil {
		return nil, err
	}
	for i := range meta.Files {
		file := &meta.Files[i]
		if file.Path == filePath {
			return file, nil
		}
	}

	return nil, fmt.Errorf(`could not find path %q in %v`, filePath, url)
}

var rxResource = regexp.MustCompile(`^(@?[^@/]+)(@[^/@]+)?(/.*)$`)

type packageMeta struct {
	Package string
	Version string
	Prefix  string
	Files   []fileMeta
}

type fileMeta struct {
	Path      string
	Size      int64
	Type      string
	Integrity string
}

func getJSON(ctx context.Context, v any, url string) error {
	req, err := http.NewRequestWithContext(ctx, `GET`, url, nil)
	if err != nil {
		return err
	}
	rsp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = rsp.Body.Close() }()
	switch rsp.StatusCode {
	case 200:
		return json.NewDecoder(rsp.Body).Decode(v)
	default:
		return fmt.Errorf(`%v while fetching %v`, rsp.Status, url)
	}
}
