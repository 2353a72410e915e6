package app

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RequireMethod validates that the request uses the specified HTTP method
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		http.Error(w, ErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// NewRouter registers every route of the listings service
func NewRouter() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", ServeIndex)
	mux.HandleFunc("/api/listings", HandleListings)
	mux.HandleFunc("/healthz", HandleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return LoggingMiddleware(mux)
}

// LoggingMiddleware logs all requests
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s - %v", r.Method, r.URL.Path, time.Since(start))
	})
}
