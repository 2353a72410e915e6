package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/klabast/wb-services/listings-view/internal/app"
)

// mountOnce loads the config, mounts a view and waits for its single fetch.
// A failed fetch leaves the view empty, the same as in the server.
func mountOnce(cfgPath string) (*app.Config, *app.ListingView) {
	cfg, err := app.LoadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	view := app.NewListingView(app.NewHTTPSource(cfg.Source))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Source.Timeout+5*time.Second)
	defer cancel()

	view.Mount(ctx)
	if err := view.Wait(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Timed out waiting for listings: %v\n", err)
	}
	view.Unmount()
	return cfg, view
}
