package app

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/crypto/blake2b"
)

const (
	HTMLContentType   = "text/html; charset=utf-8"
	DigestMetadataKey = "listings-digest"
	TmpSuffix         = ".tmp"
)

// Uploader is the part of the S3 upload manager used for publishing
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// SnapshotDigest fingerprints a set of listings (hex BLAKE2b-256 of their JSON)
func SnapshotDigest(listings []Listing) (string, error) {
	if listings == nil {
		listings = []Listing{}
	}
	b, err := json.Marshal(listings)
	if err != nil {
		return "", fmt.Errorf("marshal listings: %w", err)
	}
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// ExportPage renders the page to path. The file is written next to the
// target first and renamed into place.
func ExportPage(path string, data PageData) error {
	var buf bytes.Buffer
	if err := RenderPage(&buf, data); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmpFile := path + TmpSuffix
	if err := os.WriteFile(tmpFile, buf.Bytes(), FilePermissions); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmpFile, err)
	}
	if err := os.Rename(tmpFile, path); err != nil {
		return fmt.Errorf("failed to move page into place: %w", err)
	}

	log.Printf("Exported %d listings to %s", len(data.Cards), path)
	return nil
}

// PublishPage uploads an exported page to bucket/key
func PublishPage(ctx context.Context, up Uploader, bucket, key, path, digest string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	input := &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(HTMLContentType),
	}
	if digest != "" {
		input.Metadata = map[string]string{DigestMetadataKey: digest}
	}

	if _, err := up.Upload(ctx, input); err != nil {
		return fmt.Errorf("failed to upload %s to S3: %w", key, err)
	}

	log.Printf("Uploaded %s to s3://%s/%s", path, bucket, key)
	return nil
}
