package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigExpandsEnvAndAppliesDefaults(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "s3cret")
	t.Setenv("TEST_API_KEY", "sk-test")

	raw := `
server:
  port: 8080
database:
  host: localhost
  user: bytebuddy
  password: ${TEST_DB_PASSWORD}
  dbname: bytebuddy
  port: "5432"
  sslmode: disable
llm:
  api_key: ${TEST_API_KEY}
auth:
  jwt_secret: topsecret
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	require.NoError(t, LoadConfig(path))

	cfg := &GlobalConfig
	require.Equal(t, "s3cret", cfg.Database.Password)
	require.Equal(t, "sk-test", cfg.LLM.APIKey)
	require.Equal(t, 8080, cfg.Server.Port)

	// Unset keys fall back to defaults
	require.Equal(t, "gpt-3.5-turbo", cfg.LLM.Model)
	require.Equal(t, "public/uploads", cfg.Upload.Dir)
	require.EqualValues(t, 5*1024*1024, cfg.Upload.MaxBytes)
	require.Equal(t, 7, cfg.Retention.Days)
	require.Equal(t, 60, cfg.Retention.SweepMinutes)

	require.Equal(t,
		"host=localhost user=bytebuddy password=s3cret dbname=bytebuddy port=5432 sslmode=disable",
		cfg.DSN())
}
