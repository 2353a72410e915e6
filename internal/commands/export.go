package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/klabast/wb-services/listings-view/internal/app"
)

// Export handles the export subcommand
func Export(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config file")
	out := fs.String("out", "", "Output file (default: export.output from config)")
	bucket := fs.String("bucket", "", "S3 bucket to upload the page to (optional)")
	key := fs.String("key", "", "S3 object key (default: export.key from config)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: listings-view export [OPTIONS]\n\n")
		fmt.Fprintf(os.Stderr, "Fetches the listings once and writes them as a static HTML page.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  EXPORT_BUCKET    Default S3 bucket\n")
	}
	fs.Parse(args)

	cfg, view := mountOnce(*cfgPath)
	if *out == "" {
		*out = cfg.Export.Output
	}
	if *bucket == "" {
		*bucket = cfg.Export.Bucket
	}
	if *key == "" {
		*key = cfg.Export.Key
	}

	listings := view.Listings()
	digest, err := app.SnapshotDigest(listings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data := app.PageData{
		Title:  cfg.View.Title,
		Cards:  app.BuildCards(listings, cfg.View.DisplayOptions()),
		Digest: digest,
	}
	if err := app.ExportPage(*out, data); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *bucket == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load AWS SDK config: %v\n", err)
		os.Exit(1)
	}
	uploader := manager.NewUploader(s3.NewFromConfig(awsCfg))
	if err := app.PublishPage(ctx, uploader, *bucket, *key, *out, digest); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
