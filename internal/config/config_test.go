package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"alcyxob/fitness-planner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "fitness_planner", cfg.Database.Name)
	assert.False(t, cfg.S3.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.S3.PresignExpiry)
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 3, cfg.AI.MaxRetries)
	assert.Equal(t, domain.DefaultValidationRules(), cfg.Rules)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  address: ":9090"
ai:
  provider: anthropic
  model: claude-test
  initial_backoff: 250ms
rules:
  min_calories: 1400
  rest_days_per_week:
    max: 2
s3:
  enabled: true
  bucket_name: snapshots
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("AI_API_KEY", "sk-env")
	t.Setenv("DATABASE_URI", "mongodb://db:27017")
	t.Setenv("RULES_MAX_CALORIES", "3500")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "anthropic", cfg.AI.Provider)
	assert.Equal(t, "claude-test", cfg.AI.Model)
	assert.Equal(t, "sk-env", cfg.AI.APIKey)
	assert.Equal(t, 250*time.Millisecond, cfg.AI.InitialBackoff)
	assert.Equal(t, "mongodb://db:27017", cfg.Database.URI)
	assert.True(t, cfg.S3.Enabled)
	assert.Equal(t, "snapshots", cfg.S3.BucketName)

	assert.Equal(t, 1400, cfg.Rules.MinCalories)
	assert.Equal(t, 3500, cfg.Rules.MaxCalories)
	assert.Equal(t, domain.Range{Min: 1, Max: 2}, cfg.Rules.RestDaysPerWeek)
	assert.Equal(t, 1.6, cfg.Rules.MinProteinPerKg)
}

func TestLoadConfigMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unclosed"), 0o600))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}
