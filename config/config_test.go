//
// Copyright (C) 2025 Ringside Authors. All rights reserved.
//
// ringside is licensed under the Apache License Version 2.0.
//
//

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearCredentialEnv blanks the credential variables so ambient CI
// environment cannot leak into assertions.
func clearCredentialEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OPENAI_API_KEY", "GITHUB_TOKEN", "OPENAI_BASE_URL",
		"OPENAI_EMBEDDINGS_URL", "RINGSIDE_CORPUS_DIR", "RINGSIDE_MODEL_NAME",
	} {
		t.Setenv(key, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultCorpusDir, cfg.CorpusDir)
	assert.Equal(t, DefaultModelName, cfg.ModelName)
	assert.Equal(t, DefaultEmbeddingModel, cfg.EmbeddingModel)
	assert.Equal(t, DefaultTemperature, cfg.Temperature)
	assert.Equal(t, DefaultTopK, cfg.TopK)
	assert.Equal(t, DefaultListenAddr, cfg.ListenAddr)
	assert.Empty(t, cfg.APIKey)
}

func TestLoadWithoutFile(t *testing.T) {
	clearCredentialEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromFile(t *testing.T) {
	clearCredentialEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api_key: file-key
corpus_dir: /srv/corpus
model_name: gpt-4o-mini
temperature: 0.5
top_k: 6
listen_addr: ":9090"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, "/srv/corpus", cfg.CorpusDir)
	assert.Equal(t, "gpt-4o-mini", cfg.ModelName)
	assert.Equal(t, 0.5, cfg.Temperature)
	assert.Equal(t, 6, cfg.TopK)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	// Unset file fields keep their defaults.
	assert.Equal(t, DefaultEmbeddingModel, cfg.EmbeddingModel)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("corpus_dir: [unterminated"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestEnvOverrides(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("OPENAI_BASE_URL", "https://models.example.test/v1")
	t.Setenv("RINGSIDE_CORPUS_DIR", "/env/corpus")
	t.Setenv("RINGSIDE_MODEL_NAME", "gpt-4o-mini")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "https://models.example.test/v1", cfg.BaseURL)
	assert.Equal(t, "/env/corpus", cfg.CorpusDir)
	assert.Equal(t, "gpt-4o-mini", cfg.ModelName)
}

func TestGithubTokenAlias(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("GITHUB_TOKEN", "gh-token")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "gh-token", cfg.APIKey)
}

func TestOpenAIKeyWinsOverGithubToken(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("OPENAI_API_KEY", "openai-key")
	t.Setenv("GITHUB_TOKEN", "gh-token")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "openai-key", cfg.APIKey)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.ErrorIs(t, cfg.Validate(), ErrMissingAPIKey)

	cfg.APIKey = "key"
	require.NoError(t, cfg.Validate())

	cfg.CorpusDir = ""
	require.Error(t, cfg.Validate())

	cfg.CorpusDir = "data"
	cfg.TopK = -1
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultTopK, cfg.TopK)
}
