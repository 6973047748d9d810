package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	originalEnv := map[string]string{
		"JX4_APP_NAME":          os.Getenv("JX4_APP_NAME"),
		"JX4_APP_ENV":           os.Getenv("JX4_APP_ENV"),
		"JX4_APP_PORT":          os.Getenv("JX4_APP_PORT"),
		"JX4_DATABASE_DRIVER":   os.Getenv("JX4_DATABASE_DRIVER"),
		"JX4_DATABASE_HOST":     os.Getenv("JX4_DATABASE_HOST"),
		"JX4_DATABASE_PORT":     os.Getenv("JX4_DATABASE_PORT"),
		"JX4_DATABASE_PASSWORD": os.Getenv("JX4_DATABASE_PASSWORD"),
		"JX4_JWT_SECRET":        os.Getenv("JX4_JWT_SECRET"),
		"JX4_ADVISORY_ENABLED":  os.Getenv("JX4_ADVISORY_ENABLED"),
		"JX4_ADVISORY_API_KEY":  os.Getenv("JX4_ADVISORY_API_KEY"),
		"JX4_WHATSAPP_BASE_URL": os.Getenv("JX4_WHATSAPP_BASE_URL"),
	}
	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "jx4-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "jx4", cfg.Database.DBName)
		assert.Equal(t, "https://wa.me", cfg.WhatsApp.BaseURL)
		assert.Equal(t, "gemini-2.0-flash", cfg.Advisory.Model)
		assert.False(t, cfg.Advisory.Enabled)
	})

	t.Run("loads values from environment variables with JX4 prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("JX4_APP_NAME", "jx4-test")
		os.Setenv("JX4_APP_PORT", "9000")
		os.Setenv("JX4_DATABASE_DRIVER", "sqlite")
		os.Setenv("JX4_WHATSAPP_BASE_URL", "https://api.whatsapp.com/send")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "jx4-test", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "https://api.whatsapp.com/send", cfg.WhatsApp.BaseURL)
	})

	t.Run("rejects unknown database driver", func(t *testing.T) {
		clearEnv()
		os.Setenv("JX4_DATABASE_DRIVER", "oracle")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.driver")
	})

	t.Run("requires jwt secret in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("JX4_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("requires api key when advisory is enabled", func(t *testing.T) {
		clearEnv()
		os.Setenv("JX4_ADVISORY_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "advisory.api_key")
	})
}

func TestDatabaseConfigDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.local",
		Port:     5432,
		User:     "jx4",
		Password: "p@ss/word",
		DBName:   "jx4",
		SSLMode:  "require",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.local:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}
