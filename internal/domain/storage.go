package domain

import (
	"context"
	"io"
	"time"
)

// BlobStore is the poster object store. Stored object keys are internal;
// read access goes through short-lived signed URLs only.
type BlobStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, overwrite bool) error
	Remove(ctx context.Context, keys []string) error
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}
