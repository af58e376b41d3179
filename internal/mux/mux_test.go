package mux

import (
	"net/http"
	"testing"
)

func TestNewMux_Routes(t *testing.T) {
	ts := newTestServer(t)

	assertGet(t, ts, "/table", nil, http.StatusMethodNotAllowed)
	assertPost(t, ts, "/health", nil, http.StatusMethodNotAllowed)
	assertGet(t, ts, "/cards/abc", nil, http.StatusNotFound)
	assertGet(t, ts, "/unknown", nil, http.StatusNotFound)
}
