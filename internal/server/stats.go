package server

import "net/http"

// statsHandler serves /v1/stats. The limit is read once from
// configuration at startup and never changes.
type statsHandler struct {
	sizeLimit string
}

// uploadSizeLimit handles GET /v1/stats/fileUploadSizeLimit.
func (h *statsHandler) uploadSizeLimit(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, h.sizeLimit)
}
