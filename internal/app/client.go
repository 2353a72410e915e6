package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// ListingsSource fetches the current listings from somewhere
type ListingsSource interface {
	FetchListings(ctx context.Context) ([]Listing, error)
	Name() string
}

// FailureKind tags why a fetch failed. The view does not act on it; it only
// feeds logs and metrics.
type FailureKind string

const (
	FailureNetwork FailureKind = "network"
	FailureStatus  FailureKind = "status"
	FailureDecode  FailureKind = "decode"
)

// FetchError is returned by HTTPSource for every failed fetch
type FetchError struct {
	Kind       FailureKind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == FailureStatus {
		return fmt.Sprintf("listings: http %d", e.StatusCode)
	}
	return fmt.Sprintf("listings: %s: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// HTTPSource reads listings from the listings service
type HTTPSource struct {
	endpoint  string
	method    string
	headers   map[string]string
	userAgent string
	client    *http.Client
}

// NewHTTPSource builds a source from the source config. Headers are copied.
func NewHTTPSource(cfg SourceConfig) *HTTPSource {
	method := strings.ToUpper(strings.TrimSpace(cfg.Method))
	if method == "" {
		method = http.MethodGet
	}
	to := cfg.Timeout
	if to == 0 {
		to = 10 * time.Second
	}
	headers := make(map[string]string, len(cfg.Headers))
	for k, v := range cfg.Headers {
		headers[k] = v
	}
	return &HTTPSource{
		endpoint:  cfg.Endpoint,
		method:    method,
		headers:   headers,
		userAgent: cfg.UserAgent,
		client:    NewHTTPClient(to),
	}
}

// NewHTTPClient returns a client with a bounded dialer and idle pool
func NewHTTPClient(timeout time.Duration) *http.Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: tr}
}

func (s *HTTPSource) Name() string { return "http" }

// FetchListings issues a single request without a body and decodes the JSON
// array in the response.
func (s *HTTPSource) FetchListings(ctx context.Context) ([]Listing, error) {
	req, err := http.NewRequestWithContext(ctx, s.method, s.endpoint, nil)
	if err != nil {
		return nil, &FetchError{Kind: FailureNetwork, Err: err}
	}
	for k, v := range s.headers {
		req.Header.Set(k, v)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: FailureNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{Kind: FailureStatus, StatusCode: resp.StatusCode}
	}

	var listings []Listing
	if err := json.NewDecoder(resp.Body).Decode(&listings); err != nil {
		return nil, &FetchError{Kind: FailureDecode, Err: err}
	}
	return listings, nil
}
