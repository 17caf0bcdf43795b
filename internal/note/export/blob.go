package export

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/storage"

	"github.com/tair/warehouse-inbound/pkg/logger"
)

// BlobStore stores export artifacts and issues time-limited download URLs.
type BlobStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	SignedURL(key string, expires time.Duration) (string, error)
}

// GCSBlobStore is a BlobStore backed by a Google Cloud Storage bucket.
type GCSBlobStore struct {
	client *storage.Client
	bucket string
}

// NewGCSBlobStore creates a blob store for the given bucket.
func NewGCSBlobStore(ctx context.Context, bucket string) (*GCSBlobStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	logger.Logger.Info().
		Str("bucket", bucket).
		Msg("Blob store initialized")

	return &GCSBlobStore{client: client, bucket: bucket}, nil
}

func (s *GCSBlobStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize upload of %s: %w", key, err)
	}
	return nil
}

func (s *GCSBlobStore) SignedURL(key string, expires time.Duration) (string, error) {
	url, err := s.client.Bucket(s.bucket).SignedURL(key, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(expires),
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign URL for %s: %w", key, err)
	}
	return url, nil
}

// Close releases the underlying storage client.
func (s *GCSBlobStore) Close() error {
	return s.client.Close()
}
