package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/klabast/wb-services/listings-view/internal/app"
	"github.com/klabast/wb-services/listings-view/internal/commands"
)

func main() {
	// Check for subcommands
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "print":
			commands.Print(os.Args[2:])
			return
		case "export":
			commands.Export(os.Args[2:])
			return
		}
	}

	// Parse flags
	cfgPath := flag.String("config", "", "Path to YAML config file")
	flag.Parse()

	cfg, err := app.LoadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	app.PageTitle = cfg.View.Title
	app.Display = cfg.View.DisplayOptions()

	// Mount the view for the lifetime of the server
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	view := app.NewListingView(app.NewHTTPSource(cfg.Source))
	app.Current = view
	view.Mount(ctx)

	srv := &http.Server{
		Addr:         cfg.Server.ListenAddress,
		Handler:      app.NewRouter(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("Starting listings view on %s (source: %s)", cfg.Server.ListenAddress, cfg.Source.Endpoint)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	view.Unmount()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
