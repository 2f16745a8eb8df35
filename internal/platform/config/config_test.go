package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("PGSQL_URL", "postgres://localhost/fintrack")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/fintrack", cfg.DatabaseURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 720*time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, "5-M", cfg.LoginRateLimit)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Equal(t, "0.01", cfg.ReconcileTolerance.String())
	assert.Equal(t, 60*time.Second, cfg.CategorizerTimeout)
	assert.Equal(t, 2, cfg.CategorizerWorkers)
	assert.Equal(t, "statements", cfg.ArchivePrefix)
}

func TestLoadConfig_Overrides(t *testing.T) {
	viper.Reset()
	t.Setenv("CATEGORIZER_TIMEOUT", "5s")
	t.Setenv("JWT_EXPIRY_DURATION", "not-a-duration")
	t.Setenv("RECONCILE_TOLERANCE", "-1")
	t.Setenv("CATEGORIZER_WORKERS", "4")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.CategorizerTimeout)
	assert.Equal(t, 720*time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, "0.01", cfg.ReconcileTolerance.String())
	assert.Equal(t, 4, cfg.CategorizerWorkers)
}
