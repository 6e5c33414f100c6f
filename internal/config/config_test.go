package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mysql", cfg.DatabaseDriver)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.NotEqual(t, cfg.SecretKey, cfg.RefreshSecretKey)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.TrustProxy)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file:crimson.db")
	t.Setenv("SECRET_KEY", "access")
	t.Setenv("REFRESH_SECRET_KEY", "refresh")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "file:crimson.db", cfg.DatabaseURL)
	assert.Equal(t, "access", cfg.SecretKey)
	assert.Equal(t, "refresh", cfg.RefreshSecretKey)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoad_ProductionRejectsDefaultSecrets(t *testing.T) {
	t.Setenv("ENV", "production")

	_, err := Load()
	require.ErrorIs(t, err, ErrDefaultSecrets)
}

func TestLoad_RejectsSharedSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "same")
	t.Setenv("REFRESH_SECRET_KEY", "same")

	_, err := Load()
	require.ErrorIs(t, err, ErrSharedSecret)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "oracle")

	_, err := Load()
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("debug").String())
	assert.Equal(t, "WARN", parseLevel("WARN").String())
	assert.Equal(t, "INFO", parseLevel("verbose").String())
}
