package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"ENV", "PORT", "STORE_DRIVER", "IMAGE_HOST", "MEDIA_BASE_URL",
		"TOKEN_CACHE_TTL", "LEGACY_STATUS_CODES", "CORS_ALLOWED_ORIGINS", "MAX_UPLOAD_BYTES",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "sqlite", cfg.StoreDriver)
	require.Equal(t, "local", cfg.ImageHost)
	require.Equal(t, "http://localhost:8080/media", cfg.MediaBaseURL)
	require.Equal(t, 15*time.Minute, cfg.TokenCacheTTL)
	require.False(t, cfg.LegacyStatusCodes)
	require.Nil(t, cfg.CORSAllowedOrigins)
	require.EqualValues(t, 10<<20, cfg.MaxUploadBytes)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "MONGO")
	t.Setenv("MEDIA_BASE_URL", "")
	t.Setenv("TOKEN_CACHE_TTL", "90s")
	t.Setenv("LEGACY_STATUS_CODES", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg := LoadConfig()
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, "mongo", cfg.StoreDriver)
	require.Equal(t, "http://localhost:9090/media", cfg.MediaBaseURL)
	require.Equal(t, 90*time.Second, cfg.TokenCacheTTL)
	require.True(t, cfg.LegacyStatusCodes)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_INT", "nope")
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_MINUTES", "5")

	require.Equal(t, 7, getEnvIntOrDefault("X_INT", 7))
	require.True(t, getEnvBoolOrDefault("X_BOOL", true))
	require.Equal(t, 5*time.Minute, getEnvDurationOrDefault("X_MINUTES", time.Second))
}

func TestNewRejectsUnknownDrivers(t *testing.T) {
	cfg := Config{StoreDriver: "postgres", LogFormat: "text"}
	_, err := New(cfg)
	require.ErrorContains(t, err, "STORE_DRIVER")

	cfg = Config{
		StoreDriver:  "sqlite",
		DatabaseFile: t.TempDir() + "/market.db",
		ImageHost:    "ftp",
		LogFormat:    "text",
	}
	_, err = New(cfg)
	require.ErrorContains(t, err, "IMAGE_HOST")
}

func TestNewWiresLocalStack(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		StoreDriver:         "sqlite",
		DatabaseFile:        dir + "/market.db",
		ImageHost:           "local",
		MediaDir:            dir + "/media",
		MediaBaseURL:        "http://localhost:8080/media",
		LogFormat:           "text",
		ShutdownGracePeriod: time.Second,
	}

	application, err := New(cfg)
	require.NoError(t, err)
	require.NotNil(t, application.Handler())
	require.Nil(t, application.authService.Cache)
	require.NoError(t, application.Shutdown())
}
