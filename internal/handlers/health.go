package handlers

import "net/http"

const rootPage = `<h1>elicapp API</h1><p>Service is running. User resource lives under /api/users.</p>`

// Root serves a static informational fragment used as a liveness check.
func Root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(rootPage))
}

// Healthz reports process liveness.
func Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, MessageResponse{Message: "ok"})
}
