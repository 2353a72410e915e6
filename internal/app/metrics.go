package app

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "listings",
			Name:      "fetch_total",
			Help:      "Listings fetches by source and result",
		},
		[]string{"source", "result"},
	)

	fetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "listings",
			Name:      "fetch_duration_seconds",
			Help:      "Time spent fetching listings",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	viewItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "listings",
			Name:      "view_items",
			Help:      "Number of listings held by the most recently populated view",
		},
	)

	pageRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "listings",
			Name:      "page_renders_total",
			Help:      "Rendered listing pages by format",
		},
		[]string{"format"},
	)
)

// fetchResult maps a fetch error to its metric label
func fetchResult(err error) string {
	if err == nil {
		return "ok"
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return string(fe.Kind)
	}
	return "error"
}
