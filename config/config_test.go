package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"SERVER_PORT", "GIN_MODE", "MAX_UPLOAD_MB", "KEYWORDS_FILE", "TABLE_MIN_CONFIDENCE"} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, int64(32<<20), cfg.MaxFileSize)
	assert.Empty(t, cfg.KeywordsFile)
	assert.Equal(t, 0.5, cfg.TableMinConfidence)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("GIN_MODE", "debug")
	t.Setenv("MAX_UPLOAD_MB", "8")
	t.Setenv("KEYWORDS_FILE", "/etc/ledger/keywords.yaml")
	t.Setenv("TABLE_MIN_CONFIDENCE", "0.7")

	cfg := LoadConfig()
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "debug", cfg.GinMode)
	assert.Equal(t, int64(8<<20), cfg.MaxFileSize)
	assert.Equal(t, "/etc/ledger/keywords.yaml", cfg.KeywordsFile)
	assert.Equal(t, 0.7, cfg.TableMinConfidence)
}

func TestLoadConfigIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("MAX_UPLOAD_MB", "lots")
	t.Setenv("TABLE_MIN_CONFIDENCE", "2")

	cfg := LoadConfig()
	assert.Equal(t, int64(32<<20), cfg.MaxFileSize)
	assert.Equal(t, 0.5, cfg.TableMinConfidence)
}
