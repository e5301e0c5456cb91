package http

import "net/http"

// HealthCheck responds 200 with an empty body.
func HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Home serves the landing page.
func Home(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Welcome to the mailpost newsletter!\n"))
}
