package server

import (
	"io"
	"net/http"
)

// writeText writes a plain-text response; every endpoint of the file API
// speaks text/plain.
func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
