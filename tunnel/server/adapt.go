package server

import (
	"net/http"
	"net/http/httptest"
)

// AdaptHandler wraps an ordinary http.Handler as an AppHandler, driving it
// in-process against an httptest.ResponseRecorder instead of a real
// socket — the same "no outbound proxying" shortcut session.go uses on
// the request side.
func AdaptHandler(h http.Handler) AppHandler {
	return func(req *http.Request) (*http.Response, error) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Result(), nil
	}
}
