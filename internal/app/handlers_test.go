package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mountTestView installs a loaded view as Current for the duration of the test
func mountTestView(t *testing.T, listings []Listing) *ListingView {
	t.Helper()
	v := NewListingView(&fakeSource{name: "fake", listings: listings})
	v.Mount(context.Background())
	waitDone(t, v)

	prev, prevDisplay := Current, Display
	Current = v
	Display = testDisplay
	t.Cleanup(func() {
		Current, Display = prev, prevDisplay
		v.Unmount()
	})
	return v
}

func TestServeIndex(t *testing.T) {
	mountTestView(t, sampleListings(2))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	ServeIndex(w, req)

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, HTMLContentType, resp.Header.Get("Content-Type"))

	body := w.Body.String()
	assert.Equal(t, 2, strings.Count(body, `<li class="card"`))
	assert.Contains(t, body, "May 1, 2023")
}

func TestServeIndexEmptyView(t *testing.T) {
	mountTestView(t, nil)

	w := httptest.NewRecorder()
	ServeIndex(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<ul role="list" class="grid">`)
	assert.NotContains(t, w.Body.String(), `<li class="card"`)
}

func TestServeIndexNotMounted(t *testing.T) {
	prev := Current
	Current = nil
	defer func() { Current = prev }()

	w := httptest.NewRecorder()
	ServeIndex(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), ErrViewNotMounted)
}

func TestServeIndexUnknownPath(t *testing.T) {
	mountTestView(t, nil)

	w := httptest.NewRecorder()
	ServeIndex(w, httptest.NewRequest(http.MethodGet, "/favicon.ico", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleListings(t *testing.T) {
	mountTestView(t, sampleListings(3))

	w := httptest.NewRecorder()
	HandleListings(w, httptest.NewRequest(http.MethodGet, "/api/listings", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var got []map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0]["id"])
	assert.Equal(t, "2023-05-01", got[0]["event_date"])
}

func TestHandleListingsEmpty(t *testing.T) {
	mountTestView(t, nil)

	w := httptest.NewRecorder()
	HandleListings(w, httptest.NewRequest(http.MethodGet, "/api/listings", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]\n", w.Body.String())
}

func TestHandlersRejectOtherMethods(t *testing.T) {
	mountTestView(t, nil)

	handlers := map[string]http.HandlerFunc{
		"/":             ServeIndex,
		"/api/listings": HandleListings,
		"/healthz":      HandleHealth,
	}
	for path, h := range handlers {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			h(w, httptest.NewRequest(http.MethodPost, path, nil))

			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
			assert.Equal(t, http.MethodGet, w.Header().Get("Allow"))
		})
	}
}

func TestHandleHealth(t *testing.T) {
	w := httptest.NewRecorder()
	HandleHealth(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestRouter(t *testing.T) {
	mountTestView(t, sampleListings(1))

	srv := httptest.NewServer(NewRouter())
	defer srv.Close()

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/", http.StatusOK, `<li class="card"`},
		{"/api/listings", http.StatusOK, `"occasion":"Picnic"`},
		{"/healthz", http.StatusOK, "ok"},
		{"/metrics", http.StatusOK, "listings_page_renders_total"},
		{"/nope", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantBody != "" {
				var sb strings.Builder
				_, err := io.Copy(&sb, resp.Body)
				require.NoError(t, err)
				assert.Contains(t, sb.String(), tt.wantBody)
			}
		})
	}
}
