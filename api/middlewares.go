package api

import (
	"net/http"

	"github.com/vocdoni/payments-backend/errors"
	"go.vocdoni.io/dvote/log"
)

// recoverer converts any panic escaping a handler into a generic JSON server
// error. A single bad request must never take the process down.
func (*API) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Errorf("panic while handling %s %s: %v", r.Method, r.URL.Path, rec)
				errors.ErrGenericInternalServerError.Write(w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// notFoundHandler answers any unmatched route or method with a 404 naming
// both the method and the path.
func (*API) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	errors.ErrRouteNotFound.Withf("%s %s", r.Method, r.URL.Path).Write(w)
}
