package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refiner/pkg/refiner"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"REFINER_NAMESPACE", "REFINER_SEARCH_PARAM", "REFINER_SORT_PARAM",
		"APP_PORT", "APP_ENV", "LOG_LEVEL", "DATABASE_URL",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, `\App\Refiners`, cfg.Namespace)
	assert.Equal(t, refiner.DefaultKeys(), cfg.Keys())
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.Development())
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoad_DotenvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("REFINER_SORT_PARAM", "order")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"REFINER_NAMESPACE=\\Shop\\Refiners\nREFINER_SEARCH_PARAM=filter\nREFINER_SORT_PARAM=ignored\nAPP_ENV=production\n",
	), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, `\Shop\Refiners`, cfg.Namespace)
	assert.Equal(t, refiner.Keys{Search: "filter", Sort: "order"}, cfg.Keys())
	assert.False(t, cfg.Development())

	// godotenv sets variables process-wide.
	for _, key := range []string{"REFINER_NAMESPACE", "REFINER_SEARCH_PARAM", "APP_ENV"} {
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_EmptyKeyRejected(t *testing.T) {
	clearEnv(t)
	t.Setenv("REFINER_SEARCH_PARAM", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, refiner.ErrInvalidConfiguration)
}
