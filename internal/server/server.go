// Package server implements a preview server that renders JSON document trees, and views of JSON data, from a
// directory as HTML.
package server

import (
	"context"
	"encoding/hex"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/blake2b"

	"github.com/swdunlop/stencil"
	"github.com/swdunlop/stencil/dataview"
	"github.com/swdunlop/stencil/deadmanswitch"
	"github.com/swdunlop/stencil/htmx"
	"github.com/swdunlop/stencil/tag"
	"github.com/swdunlop/stencil/tree"
)

// New returns a server that renders the JSON files found in root.
func New(root string, options ...Option) *Server {
	s := &Server{root: root, log: zerolog.Nop(), metrics: newMetrics()}
	for _, option := range options {
		option(s)
	}
	s.routes()
	return s
}

// Reload adds a Dead Man's Switch to each full page, so the browser reloads the page when the server restarts or
// when a JSON file in the root is added, removed or modified.
func Reload() Option {
	return func(s *Server) {
		s.dms = deadmanswitch.New(deadmanswitch.Watch(s.version, reloadInterval))
	}
}

const reloadInterval = time.Second

// Logger sets the logger used for request logs.  By default, nothing is logged.
func Logger(log zerolog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// An Option affects the configuration of a new Server.
type Option func(*Server)

// Server is an http.Handler that renders documents.
type Server struct {
	root    string
	log     zerolog.Logger
	dms     deadmanswitch.Interface
	metrics *metrics
	router  chi.Router
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.router.ServeHTTP(w, r) }

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logRequests(s.log))
	r.Get(`/`, s.serveIndex)
	r.Get(`/doc/{name}`, s.serveDocument)
	r.Get(`/data/{name}`, s.serveData)
	r.Method(`GET`, `/metrics`, s.metrics.handler())
	if s.dms != nil {
		r.Method(`GET`, s.dms.Path(), s.dms)
	}
	s.router = r
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	names, err := s.list()
	if err != nil {
		s.fail(w, r, `index`, err)
		return
	}
	items := make([]stencil.Node, 0, len(names))
	for _, name := range names {
		items = append(items, tag.New(`li`,
			tag.Content(tag.New(`a`, tag.Attr(`href`, `/doc/`+name), tag.Text(name))),
			tag.Text(` `),
			tag.Content(tag.New(`a.data`, tag.Attr(`href`, `/data/`+name), tag.Text(`(data)`))),
		))
	}
	var list stencil.Node = tag.New(`ul#documents`, tag.Content(items...))
	if len(items) == 0 {
		list = tag.New(`p.empty`, tag.Text(`No documents in `+s.root))
	}
	s.render(w, r, `index`, s.page(`Documents`, nil, tag.New(`h1`, tag.Text(`Documents`)), list)...)
}

func (s *Server) serveDocument(w http.ResponseWriter, r *http.Request) {
	path, ok := s.path(w, r)
	if !ok {
		return
	}
	doc, err := tree.ParseFile(path)
	if err != nil {
		s.fail(w, r, `doc`, err)
		return
	}
	zerolog.Ctx(r.Context()).Debug().Int(`nodes`, tree.Count(doc)).Msg(`parsed document`)
	nodes, found := htmx.Target(r, doc...)
	if !found {
		http.NotFound(w, r)
		return
	}
	if s.dms != nil && r.Header.Get(`HX-Target`) == `` {
		nodes = append(nodes, s.dms.Node())
	}
	s.render(w, r, `doc`, nodes...)
}

func (s *Server) serveData(w http.ResponseWriter, r *http.Request) {
	path, ok := s.path(w, r)
	if !ok {
		return
	}
	js, err := os.ReadFile(path)
	if err != nil {
		s.fail(w, r, `data`, err)
		return
	}
	view, err := dataview.FromJSON(js)
	if err != nil {
		s.fail(w, r, `data`, err)
		return
	}
	name := chi.URLParam(r, `name`)
	head := []stencil.Node{tag.Style(dataview.Stylesheet())}
	s.render(w, r, `data`, s.page(name, head, tag.New(`h1`, tag.Text(name)), view)...)
}

func (s *Server) page(title string, head []stencil.Node, body ...stencil.Node) []stencil.Node {
	if s.dms != nil {
		body = append(body, s.dms.Node())
	}
	return tag.Page(title, head, tag.Content(body...))
}

// path resolves the name in the request to a JSON file in the root, responding with 404 if the name is not a plain
// file name.
func (s *Server) path(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := chi.URLParam(r, `name`)
	if name == `` || strings.HasPrefix(name, `.`) || name != filepath.Base(name) {
		http.NotFound(w, r)
		return ``, false
	}
	return filepath.Join(s.root, name+`.json`), true
}

func (s *Server) list() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, `.`) || filepath.Ext(name) != `.json` {
			continue
		}
		names = append(names, strings.TrimSuffix(name, `.json`))
	}
	sort.Strings(names)
	return names, nil
}

// version summarizes the name, size and modification time of each JSON file in the root.  It changes whenever the
// set of documents, or the content of one, changes.
func (s *Server) version() (string, error) {
	names, err := s.list()
	if err != nil {
		return ``, err
	}
	h, err := blake2b.New256(nil)
	if err != nil {
		return ``, err
	}
	for _, name := range names {
		info, err := os.Stat(filepath.Join(s.root, name+`.json`))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			continue // removed since it was listed
		case err != nil:
			return ``, err
		}
		h.Write([]byte(name))
		h.Write([]byte{0})
		h.Write(strconv.AppendInt(nil, info.Size(), 10))
		h.Write([]byte{0})
		h.Write(strconv.AppendInt(nil, info.ModTime().UnixNano(), 10))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)[:16]), nil
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, kind string, err error) {
	s.metrics.failed(kind)
	status := http.StatusInternalServerError
	var terr *tree.Error
	switch {
	case errors.Is(err, fs.ErrNotExist):
		status = http.StatusNotFound
	case errors.As(err, &terr):
		status = http.StatusUnprocessableEntity
	}
	zerolog.Ctx(r.Context()).Warn().Err(err).Str(`kind`, kind).Msg(`could not render`)
	http.Error(w, err.Error(), status)
}

// render renders the nodes with a strong ETag derived from the content, responding with 304 if the client already
// has it.
func (s *Server) render(w http.ResponseWriter, r *http.Request, kind string, nodes ...stencil.Node) {
	p := stencil.Append(make([]byte, 0, 16384), nodes...)
	s.metrics.rendered(kind, len(p))
	sum := blake2b.Sum256(p)
	etag := `"` + hex.EncodeToString(sum[:16]) + `"`

	h := w.Header()
	h.Set(`ETag`, etag)
	h.Set(`Vary`, `HX-Target`)
	if r.Header.Get(`If-None-Match`) == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	h.Set(`Content-Type`, `text/html; charset=utf-8`)
	h.Set(`Content-Length`, strconv.Itoa(len(p)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(p); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg(``)
	}
}

// ListenAndServe serves the handler on addr until the context is cancelled, then shuts down gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdown)
	if errors.Is(err, context.DeadlineExceeded) {
		return srv.Close()
	}
	return err
}
