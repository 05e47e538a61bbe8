package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mindvex/watsonx-relay/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("should load config with defaults", func(t *testing.T) {
		// Clear environment
		os.Clearenv()

		cfg := config.Load()

		require.NotNil(t, cfg)

		// Verify defaults
		require.Equal(t, 8080, cfg.Server.Port)
		require.Equal(t, 30, cfg.Server.ReadTimeout)
		require.Equal(t, 120, cfg.Server.WriteTimeout)
		require.Equal(t, "https://us-south.ml.cloud.ibm.com", cfg.Watsonx.Endpoint)
		require.Equal(t, "https://iam.cloud.ibm.com/identity/token", cfg.Watsonx.IAMURL)
		require.Equal(t, 60, cfg.Watsonx.Timeout)
		require.Empty(t, cfg.Watsonx.APIKey)
		require.Empty(t, cfg.Watsonx.SpaceID)
		require.Empty(t, cfg.Cache.Addr)
	})

	t.Run("should load config from environment variables", func(t *testing.T) {
		// Set environment variables using t.Setenv for automatic cleanup
		t.Setenv("SERVER_PORT", "9000")
		t.Setenv("SERVER_READ_TIMEOUT", "60")
		t.Setenv("SERVER_WRITE_TIMEOUT", "60")
		t.Setenv("WATSONX_API_KEY", "test-api-key")
		t.Setenv("WATSONX_SPACE_ID", "space-123")
		t.Setenv("WATSONX_ENDPOINT", "https://eu-de.ml.cloud.ibm.com")
		t.Setenv("WATSONX_IAM_URL", "https://iam.test.cloud.ibm.com/identity/token")
		t.Setenv("WATSONX_TIMEOUT", "120")
		t.Setenv("REDIS_ADDR", "localhost:6379")
		t.Setenv("REDIS_DB", "2")

		cfg := config.Load()

		require.NotNil(t, cfg)

		// Verify loaded values
		require.Equal(t, 9000, cfg.Server.Port)
		require.Equal(t, 60, cfg.Server.ReadTimeout)
		require.Equal(t, 60, cfg.Server.WriteTimeout)
		require.Equal(t, "test-api-key", cfg.Watsonx.APIKey)
		require.Equal(t, "space-123", cfg.Watsonx.SpaceID)
		require.Equal(t, "https://eu-de.ml.cloud.ibm.com", cfg.Watsonx.Endpoint)
		require.Equal(t, "https://iam.test.cloud.ibm.com/identity/token", cfg.Watsonx.IAMURL)
		require.Equal(t, 120, cfg.Watsonx.Timeout)
		require.Equal(t, "localhost:6379", cfg.Cache.Addr)
		require.Equal(t, 2, cfg.Cache.DB)
	})
}
