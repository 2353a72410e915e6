package app

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ListingView holds the listings of one mounted view. The fetch is issued at
// most once per view; renders only ever read the current state.
type ListingView struct {
	ID     string
	source ListingsSource

	mu        sync.RWMutex
	listings  []Listing
	alive     bool
	unmounted bool
	cancel    context.CancelFunc

	mountOnce sync.Once
	done      chan struct{}
}

// NewListingView creates an unmounted, empty view reading from src
func NewListingView(src ListingsSource) *ListingView {
	return &ListingView{
		ID:       uuid.NewString(),
		source:   src,
		listings: []Listing{},
		done:     make(chan struct{}),
	}
}

// Mount starts the single asynchronous fetch. Later calls are no-ops, and a
// view that was already unmounted never fetches.
func (v *ListingView) Mount(ctx context.Context) {
	v.mountOnce.Do(func() {
		v.mu.Lock()
		if v.unmounted {
			v.mu.Unlock()
			close(v.done)
			return
		}
		fetchCtx, cancel := context.WithCancel(ctx)
		v.cancel = cancel
		v.alive = true
		v.mu.Unlock()

		log.Printf("View %s mounted, fetching listings from %s source", v.ID, v.source.Name())
		go v.load(fetchCtx, cancel)
	})
}

// Unmount cancels a fetch still in flight. Results arriving afterwards are
// dropped. A view that was never mounted is finished right away.
func (v *ListingView) Unmount() {
	v.mu.Lock()
	v.alive = false
	v.unmounted = true
	cancel := v.cancel
	v.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	v.mountOnce.Do(func() { close(v.done) })
}

func (v *ListingView) load(ctx context.Context, cancel context.CancelFunc) {
	defer close(v.done)
	defer cancel()

	name := v.source.Name()
	start := time.Now()
	listings, err := v.source.FetchListings(ctx)
	fetchDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	fetchTotal.WithLabelValues(name, fetchResult(err)).Inc()

	if err != nil {
		if ctx.Err() != nil {
			log.Printf("View %s: fetch cancelled: %v", v.ID, err)
			return
		}
		log.Printf("View %s: error fetching listings: %v", v.ID, err)
		return
	}
	log.Printf("View %s: fetched %d listings", v.ID, len(listings))

	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.alive {
		log.Printf("View %s: unmounted, dropping %d listings", v.ID, len(listings))
		return
	}
	if listings == nil {
		listings = []Listing{}
	}
	v.listings = listings
	viewItems.Set(float64(len(listings)))
}

// Listings returns a copy of the current view state
func (v *ListingView) Listings() []Listing {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]Listing, len(v.listings))
	copy(out, v.listings)
	return out
}

// Mounted reports whether the view is between Mount and Unmount
func (v *ListingView) Mounted() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.alive
}

// Done is closed once the fetch has finished, failed or been dropped
func (v *ListingView) Done() <-chan struct{} {
	return v.done
}

// Wait blocks until Done or until ctx ends
func (v *ListingView) Wait(ctx context.Context) error {
	select {
	case <-v.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
