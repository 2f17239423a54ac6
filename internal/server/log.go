package server

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// logRequests returns a middleware that logs requests and recovers from panics while rendering.  It adds the
// remote_addr, method and path of the request to the log context found by zerolog.Ctx, and logs the following
// after the request completes:
//
//   - status: the HTTP status code of the response
//   - wrote: the number of bytes written to the response
//   - took: the number of milliseconds the request took to process
//   - panic: the panic message, if the request panicked
//   - stack: the stack trace, if the request panicked, as a list of strings where each string is a function and line.
func logRequests(base zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			log := base.With().
				Str(`remote_addr`, r.RemoteAddr).
				Str(`method`, r.Method).
				Str(`path`, r.URL.Path).
				Logger()
			r = r.WithContext(log.WithContext(r.Context()))
			defer logResponse(&log, ww, start)
			next.ServeHTTP(ww, r)
		})
	}
}

func logResponse(log *zerolog.Logger, ww middleware.WrapResponseWriter, start time.Time) {
	var evt *zerolog.Event
	if e := recover(); e != nil {
		if e == http.ErrAbortHandler {
			panic(e) // rethrow, http will handle it.
		}
		evt = logRecovery(log, e)
		if ww.Status() == 0 {
			http.Error(ww, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	} else {
		status := ww.Status()
		switch {
		case status >= 500:
			evt = log.Error()
		case status >= 400:
			evt = log.Warn()
		default:
			evt = log.Info()
		}
		evt = evt.Int(`status`, status).
			Int(`wrote`, ww.BytesWritten()).
			Int64(`took`, time.Since(start).Milliseconds())
	}
	evt.Msg(``)
}

func logRecovery(log *zerolog.Logger, e any) *zerolog.Event {
	evt := log.WithLevel(zerolog.PanicLevel)
	evt = addStackTrace(evt, 4)
	return evt.Str(`panic`, fmt.Sprint(e))
}

func addStackTrace(evt *zerolog.Event, skip int) *zerolog.Event {
	var calls [64]uintptr
	n := runtime.Callers(skip+1, calls[:])
	stack := make([]string, 0, n)
	for _, pc := range calls[:n] {
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		_, line := fn.FileLine(pc)
		stack = append(stack, fmt.Sprintf(`%v:%v`, fn.Name(), line))
	}
	return evt.Strs(`stack`, stack)
}
