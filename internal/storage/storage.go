package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"jobmarket_backend/internal/config"
)

var ErrObjectNotFound = errors.New("object not found")

// Storage keeps uploaded objects under slash-separated keys such as
// "videos/<uuid>.webm".
type Storage interface {
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete succeeds when the object is already gone.
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// URL is the public address of the object.
	URL(key string) string
	SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// New returns the backend selected by cfg.Type.
func New(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg.BasePath, cfg.BaseURL)
	case "s3", "cloudflare_r2":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
