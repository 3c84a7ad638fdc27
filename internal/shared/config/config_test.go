package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"ENV", "PORT", "OBJECT_STORE", "ROLES_EMBEDDER", "SKILLGAP_ENGINE", "INSIGHTS_TIMEOUT", "SKILLGAP_WEAK_THRESHOLD"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "local", cfg.ObjectStoreType)
	assert.Equal(t, "ngram", cfg.RolesEmbedder)
	assert.Equal(t, "ngram", cfg.SkillGapEngine)
	assert.Equal(t, 0.4, cfg.SkillGapWeakThreshold)
	assert.Equal(t, 20*time.Second, cfg.InsightsTimeout)
	assert.True(t, cfg.RolesSeedOnStart)
}

func TestLoadOverridesAndInvalidValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENV", "prod")
	t.Setenv("OBJECT_STORE", "S3")
	t.Setenv("SKILLGAP_ENGINE", "Substring")
	t.Setenv("INSIGHTS_TIMEOUT", "not-a-duration")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("ROLES_SEED_ON_START", "false")
	t.Setenv("CORS_ALLOW_ORIGINS", " http://a.test , ,http://b.test")

	cfg := Load()
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "s3", cfg.ObjectStoreType)
	assert.Equal(t, "substring", cfg.SkillGapEngine)
	assert.Equal(t, 20*time.Second, cfg.InsightsTimeout)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.False(t, cfg.RolesSeedOnStart)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowOrigin)
}

func TestLoadReadsDotEnvWithoutOverridingEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=9999\nLLM_MODEL=\"from-file\"\n"), 0o644))
	t.Setenv("PORT", "7000")
	t.Setenv("LLM_MODEL", "")
	os.Unsetenv("LLM_MODEL")

	cfg := Load()
	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "from-file", cfg.LLMModel)
}
