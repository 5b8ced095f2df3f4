package mocks

import (
	"context"
	"io"
	"time"

	"github.com/movievault/movievault/internal/domain"
)

type MockBlobStore struct {
	domain.BlobStore
	UploadFunc    func(ctx context.Context, key, contentType string, body io.Reader, overwrite bool) error
	RemoveFunc    func(ctx context.Context, keys []string) error
	SignedURLFunc func(ctx context.Context, key string, ttl time.Duration) (string, error)
}

func (m *MockBlobStore) Upload(ctx context.Context, key, contentType string, body io.Reader, overwrite bool) error {
	return m.UploadFunc(ctx, key, contentType, body, overwrite)
}

func (m *MockBlobStore) Remove(ctx context.Context, keys []string) error {
	return m.RemoveFunc(ctx, keys)
}

func (m *MockBlobStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return m.SignedURLFunc(ctx, key, ttl)
}
