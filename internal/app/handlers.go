package app

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
)

// ServeIndex renders the mounted view as the listings page
func ServeIndex(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	view := Current
	if view == nil {
		http.Error(w, ErrViewNotMounted, http.StatusServiceUnavailable)
		return
	}

	var buf bytes.Buffer
	data := PageData{
		Title: PageTitle,
		Cards: BuildCards(view.Listings(), Display),
	}
	if err := RenderPage(&buf, data); err != nil {
		log.Printf("Error rendering listings page: %v", err)
		http.Error(w, ErrFailedToRender, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", HTMLContentType)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Error writing listings page: %v", err)
	}
}

// HandleListings returns the current view state as a JSON array
func HandleListings(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	view := Current
	if view == nil {
		http.Error(w, ErrViewNotMounted, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(view.Listings()); err != nil {
		log.Printf("Error encoding listings: %v", err)
		http.Error(w, ErrFailedToEncode, http.StatusInternalServerError)
	}
}

// HandleHealth reports liveness
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		log.Printf("Error writing health response: %v", err)
	}
}
