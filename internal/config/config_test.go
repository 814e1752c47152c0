package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvConfig(t *testing.T) {
	t.Run("defaults apply when nothing is set", func(t *testing.T) {
		require.NoError(t, LoadEnvConfig())

		assert.Equal(t, "8080", DefaultEnvConfig.APP_PORT)
		assert.Equal(t, 3, DefaultEnvConfig.RETRY_MAX_ATTEMPTS)
		assert.Equal(t, time.Second, DefaultEnvConfig.RETRY_INITIAL_DELAY)
		assert.Equal(t, "export_layout.yaml", DefaultEnvConfig.EXPORT_LAYOUT_PATH)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("UPSTREAM_BASE_URL", "http://upstream:9000/api/v1/employee")
		t.Setenv("RETRY_MAX_ATTEMPTS", "5")
		t.Setenv("RETRY_INITIAL_DELAY", "250ms")
		t.Setenv("HTTP_MAX_IDLE_CONNS", "50")

		require.NoError(t, LoadEnvConfig())

		assert.Equal(t, "http://upstream:9000/api/v1/employee", DefaultEnvConfig.UPSTREAM_BASE_URL)
		assert.Equal(t, 5, DefaultEnvConfig.RETRY_MAX_ATTEMPTS)
		assert.Equal(t, 250*time.Millisecond, DefaultEnvConfig.RETRY_INITIAL_DELAY)
		assert.Equal(t, 50, DefaultEnvConfig.HTTP_MAX_IDLE_CONNS)
	})

	t.Run("bare integer durations are seconds", func(t *testing.T) {
		t.Setenv("RETRY_INITIAL_DELAY", "2")

		require.NoError(t, LoadEnvConfig())
		assert.Equal(t, 2*time.Second, DefaultEnvConfig.RETRY_INITIAL_DELAY)
	})

	t.Run("unparseable values fall back", func(t *testing.T) {
		t.Setenv("RETRY_MAX_ATTEMPTS", "many")

		require.NoError(t, LoadEnvConfig())
		assert.Equal(t, 3, DefaultEnvConfig.RETRY_MAX_ATTEMPTS)
	})
}
