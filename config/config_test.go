package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		TDA: TDAConfig{
			ClientID:     "CLIENT_ID",
			RefreshToken: "REFRESH_TOKEN",
		},
		TokenStore: TokenStoreConfig{
			Backend: "file",
			Path:    "/tmp/token.json",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing client id",
			mutate:  func(c *Config) { c.TDA.ClientID = "" },
			wantErr: "tda.client_id",
		},
		{
			name:    "missing refresh token",
			mutate:  func(c *Config) { c.TDA.RefreshToken = "" },
			wantErr: "tda.refresh_token",
		},
		{
			name:    "invalid backend",
			mutate:  func(c *Config) { c.TokenStore.Backend = "sqlite" },
			wantErr: "token_store.backend",
		},
		{
			name: "redis backend without URL",
			mutate: func(c *Config) {
				c.TokenStore.Backend = "redis"
				c.TokenStore.RedisURL = ""
			},
			wantErr: "token_store.redis_url",
		},
		{
			name:    "invalid logging level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "invalid logging level",
		},
		{
			name:    "invalid logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
tda:
  client_id: CLIENT_ID
  refresh_token: REFRESH_TOKEN
  account_id: "123456789"
token_store:
  backend: file
  path: ` + filepath.Join(dir, "token.json") + `
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "CLIENT_ID", cfg.TDA.ClientID)
	assert.Equal(t, "123456789", cfg.TDA.AccountID)
	assert.Equal(t, "file", cfg.TokenStore.Backend)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	// Defaults still apply to unset keys.
	assert.Equal(t, "tdactl:access_token", cfg.TokenStore.RedisKey)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
tda:
  client_id: FROM_FILE
  refresh_token: REFRESH_TOKEN
token_store:
  backend: file
  path: ` + filepath.Join(dir, "token.json") + `
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("TDA_CLIENT_ID", "FROM_ENV")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "FROM_ENV", cfg.TDA.ClientID)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
