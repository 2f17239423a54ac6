// Package deadmanswitch provides a component that reloads a preview page when the server restarts, or when the
// documents behind the page change.  The page holds a Server Sent Events (SSE) connection open to the switch; losing
// and regaining that connection means the server restarted, and a "changed" event means the content did.
package deadmanswitch

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/swdunlop/stencil"
	"github.com/swdunlop/stencil/tag"
)

// New returns a new Dead Man's Switch.  Mount it in your HTTP router at its Path and include its Node in each page
// that should be reloaded.
func New(options ...Option) Interface {
	cfg := &config{path: "/dead-man-switch"}
	for _, option := range options {
		option(cfg)
	}
	cfg.script = tag.Script(script(cfg.path))
	return cfg
}

// Path specifies the path to the Dead Man's Switch handler.  By default, this is "/dead-man-switch".
func Path(path string) Option { return func(cfg *config) { cfg.path = path } }

// Watch makes each connection poll the version function at the provided interval, sending a "changed" event that
// reloads the page when the version differs from the one seen when the page connected.  Errors from the version
// function are logged and otherwise ignored.
func Watch(version func() (string, error), every time.Duration) Option {
	return func(cfg *config) {
		cfg.version = version
		cfg.every = every
	}
}

// An Option affects the configuration of a new Dead Man's Switch.
type Option func(*config)

// Interface describes the methods provided by a configured Dead Man's Switch.
type Interface interface {
	http.Handler

	// Node returns the script element that connects to the switch; include it in the body of a document.
	Node() stencil.Node

	// Path returns the path where the handler should be mounted.
	Path() string
}

type config struct {
	path    string
	version func() (string, error)
	every   time.Duration
	script  stencil.Element
}

// Path implements Interface by returning the expected path for SSE connections.
func (cfg *config) Path() string { return cfg.path }

// Node implements Interface by returning the script element.
func (cfg *config) Node() stencil.Node { return cfg.script }

// ServeHTTP implements http.Handler by accepting inbound SSE connections and holding them until the request context
// is cancelled or the connection is lost, reporting changes if Watch was configured.
func (cfg *config) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, `streaming unsupported`, http.StatusInternalServerError)
		return
	}
	h := w.Header()
	h.Set(`Content-Type`, `text/event-stream`)
	h.Set(`Cache-Control`, `no-cache`)
	h.Set(`Connection`, `keep-alive`)
	if !send(w, flusher, "event: connected\n\n") {
		return
	}

	ctx := r.Context()
	if cfg.version == nil {
		<-ctx.Done()
		return
	}

	log := zerolog.Ctx(ctx)
	seen, err := cfg.version()
	if err != nil {
		log.Warn().Err(err).Msg(`could not determine version`)
	}
	ticker := time.NewTicker(cfg.every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		current, err := cfg.version()
		if err != nil {
			log.Warn().Err(err).Msg(`could not determine version`)
			continue
		}
		if current == seen {
			continue
		}
		seen = current
		log.Debug().Str(`version`, current).Msg(`content changed`)
		if !send(w, flusher, "event: changed\ndata: "+strings.ReplaceAll(current, "\n", ``)+"\n\n") {
			return
		}
	}
}

func send(w http.ResponseWriter, flusher http.Flusher, event string) bool {
	if _, err := w.Write([]byte(event)); err != nil {
		return false
	}
	flusher.Flush()
	return true
}

// script returns the JavaScript that connects to the switch.  The path is encoded as a JSON string, which cannot
// contain "</script>" since json.Marshal escapes '<'.
func script(path string) string {
	p, err := json.Marshal(path)
	if err != nil {
		panic(err)
	}
	return beforePath + string(p) + afterPath
}

const (
	beforePath = `(function(){
	if (window.dms != undefined) return;
	const sse = new EventSource(`

	afterPath = `);
	const dms = {connected: null, sse: sse};
	window.dms = dms;
	sse.addEventListener('open', function(){
		if (dms.connected === false) window.location.reload();
		dms.connected = true;
	});
	sse.addEventListener('error', function(){
		if (dms.connected) dms.connected = false;
	});
	sse.addEventListener('changed', function(){ window.location.reload(); });
})()
`
)
