package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"API_BASE_URL", "API_TIMEOUT", "PORT", "LOCAL_STORE_DSN",
		"IDP_JWT_SECRET", "CART_MERGE_ON_LOGIN", "GO_ENV", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api/v1", cfg.APIBaseURL)
	assert.Equal(t, time.Duration(0), cfg.APITimeout)
	assert.Equal(t, "4200", cfg.Port)
	assert.Equal(t, ":4200", cfg.Addr())
	assert.NotEmpty(t, cfg.LocalStoreDSN)
	assert.Empty(t, cfg.IDPJWTSecret)
	assert.False(t, cfg.CartMergeOnLogin)
	assert.Equal(t, "prod", cfg.GoEnv)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_BASE_URL", "https://shop.example.com/api/v1")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("PORT", ":9000")
	t.Setenv("LOCAL_STORE_DSN", "postgres://u:p@localhost:5432/store")
	t.Setenv("IDP_JWT_SECRET", "s3cret")
	t.Setenv("CART_MERGE_ON_LOGIN", "true")
	t.Setenv("GO_ENV", "dev")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example.com/api/v1", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.APITimeout)
	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, "postgres://u:p@localhost:5432/store", cfg.LocalStoreDSN)
	assert.Equal(t, "s3cret", cfg.IDPJWTSecret)
	assert.True(t, cfg.CartMergeOnLogin)
	assert.Equal(t, "dev", cfg.GoEnv)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "base url scheme", key: "API_BASE_URL", val: "ftp://x"},
		{name: "timeout", key: "API_TIMEOUT", val: "soon"},
		{name: "negative timeout", key: "API_TIMEOUT", val: "-1s"},
		{name: "port", key: "PORT", val: "http"},
		{name: "merge flag", key: "CART_MERGE_ON_LOGIN", val: "maybe"},
		{name: "env", key: "GO_ENV", val: "staging"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)

	require.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=4300\nGO_ENV=dev\n"), 0o600))

	// 空文字で設定済みの変数は godotenv が上書きしないので消しておく
	require.NoError(t, os.Unsetenv("PORT"))
	require.NoError(t, os.Unsetenv("GO_ENV"))

	require.NoError(t, LoadEnvFile(path))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "4300", cfg.Port)
	assert.Equal(t, "dev", cfg.GoEnv)
}
