package storage

import (
	"context"
	"errors"
	"time"

	catalogapp "github.com/jx4/backend/internal/application/catalog"
)

// StubImageStorage is a no-op implementation used when object storage
// is disabled in configuration. Products keep whatever imagen_url they
// already carry and upload endpoints return placeholder URLs.
type StubImageStorage struct {
	BaseURL string
}

// NewStubImageStorage creates a stub storage with a placeholder base URL
func NewStubImageStorage() *StubImageStorage {
	return &StubImageStorage{
		BaseURL: "https://storage.invalid",
	}
}

var _ catalogapp.ObjectStorageService = (*StubImageStorage)(nil)

// GenerateUploadURL returns a placeholder upload URL
func (s *StubImageStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/upload/" + storageKey, expiresAt, nil
}

// GenerateDownloadURL returns a placeholder download URL
func (s *StubImageStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/download/" + storageKey, expiresAt, nil
}

// DeleteObject is a no-op
func (s *StubImageStorage) DeleteObject(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	return nil
}
