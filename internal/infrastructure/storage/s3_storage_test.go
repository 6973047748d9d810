package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jx4/backend/internal/infrastructure/config"
)

func TestNewS3ImageStorage_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3ImageStorage(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		cfg := &config.StorageConfig{
			AccessKeyID:     "test-key",
			SecretAccessKey: "test-secret",
		}
		_, err := NewS3ImageStorage(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("missing credentials returns error", func(t *testing.T) {
		cfg := &config.StorageConfig{
			Bucket: "jx4-product-images",
		}
		_, err := NewS3ImageStorage(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "credentials are required")
	})

	t.Run("valid config creates storage", func(t *testing.T) {
		cfg := &config.StorageConfig{
			Bucket:          "jx4-product-images",
			AccessKeyID:     "test-key",
			SecretAccessKey: "test-secret",
			Region:          "us-east-1",
			Endpoint:        "http://localhost:9000",
			UsePathStyle:    true,
			PresignExpiry:   15 * time.Minute,
		}
		st, err := NewS3ImageStorage(cfg, WithLogger(zaptest.NewLogger(t)))
		require.NoError(t, err)
		require.NotNil(t, st)
		assert.Equal(t, "jx4-product-images", st.bucket)
		assert.Equal(t, 15*time.Minute, st.presignExpiration)
	})

	t.Run("scheme defaults to https when endpoint omits it", func(t *testing.T) {
		cfg := &config.StorageConfig{
			Bucket:          "jx4-product-images",
			AccessKeyID:     "test-key",
			SecretAccessKey: "test-secret",
			Endpoint:        "s3.us-east-1.amazonaws.com",
		}
		st, err := NewS3ImageStorage(cfg)
		require.NoError(t, err)
		require.NotNil(t, st)
	})

	t.Run("zero presign expiry falls back to default", func(t *testing.T) {
		cfg := &config.StorageConfig{
			Bucket:          "jx4-product-images",
			AccessKeyID:     "test-key",
			SecretAccessKey: "test-secret",
		}
		st, err := NewS3ImageStorage(cfg)
		require.NoError(t, err)
		assert.Equal(t, 15*time.Minute, st.presignExpiration)
	})
}
