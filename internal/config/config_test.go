package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
database:
  path: /tmp/mod.db
data:
  knowledge_base: /tmp/kb.json
auth:
  jwt_secret: testsecret
  token_ttl_hours: 12
moderation:
  confidence_threshold: 0.8
romantic:
  match_threshold: 0.75
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/tmp/mod.db", cfg.Database.Path)
	assert.Equal(t, "/tmp/kb.json", cfg.Data.KnowledgeBase)
	assert.Equal(t, "testsecret", cfg.Auth.JWTSecret)
	assert.Equal(t, int64(12), cfg.Auth.TokenTTLHours)
	assert.Equal(t, 0.8, cfg.Moderation.ConfidenceThreshold)
	assert.Equal(t, 0.75, cfg.Romantic.MatchThreshold)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `server: {}`))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "./data/moderation.db", cfg.Database.Path)
	assert.Equal(t, "./data/knowledge-base.json", cfg.Data.KnowledgeBase)
	assert.Equal(t, int64(24), cfg.Auth.TokenTTLHours)
	assert.Equal(t, 0.7, cfg.Moderation.ConfidenceThreshold)
	assert.Equal(t, 0.6, cfg.Romantic.MatchThreshold)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoadConfig_Malformed(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `server: [not a map`))
	assert.Error(t, err)
}
