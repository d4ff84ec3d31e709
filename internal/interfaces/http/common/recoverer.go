package common

import (
	"log"
	"net/http"
	"runtime/debug"
)

// Recoverer turns a panic in a handler into the standard failure envelope so a single bad request
// never takes the process down.
func Recoverer(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				if logger != nil {
					logger.Printf("panic while serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				}
				WriteFailure(logger, w, http.StatusInternalServerError, "internal server error", nil)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
