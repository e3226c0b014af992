package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, 3306, cfg.Database.Port)
		assert.Equal(t, "media", cfg.Media.Bucket)
		assert.Equal(t, 500, cfg.Catalog.RequestDelayMS)
		assert.Equal(t, 30, cfg.Token.ExpireMinutes)
		assert.Empty(t, cfg.Cache.URL)
	})

	t.Run("Environment Override", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("DATABASE_NAME", "collection_test")
		t.Setenv("CATALOG_REQUEST_DELAY_MS", "100")

		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, "collection_test", cfg.Database.Name)
		assert.Equal(t, 100, cfg.Catalog.RequestDelayMS)
	})
}
