//
// Copyright (C) 2025 Ringside Authors. All rights reserved.
//
// ringside is licensed under the Apache License Version 2.0.
//
//

// Package config loads the application configuration from an optional
// YAML file with environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultCorpusDir      = "data"
	DefaultModelName      = "gpt-4o"
	DefaultEmbeddingModel = "text-embedding-3-small"
	DefaultTemperature    = 0.3
	DefaultTopK           = 4
	DefaultListenAddr     = ":8080"
)

// ErrMissingAPIKey is returned by Validate when no credential is
// configured. It is a fatal startup condition.
var ErrMissingAPIKey = errors.New("config: API key is required (set OPENAI_API_KEY or GITHUB_TOKEN)")

// Config holds the application configuration.
type Config struct {
	// APIKey is the credential for the model backends. Required.
	APIKey string `yaml:"api_key"`

	// BaseURL is the generation backend base URL. Empty uses the SDK default.
	BaseURL string `yaml:"base_url"`

	// EmbeddingsBaseURL is the embeddings backend base URL. Empty uses
	// the SDK default.
	EmbeddingsBaseURL string `yaml:"embeddings_base_url"`

	// CorpusDir is the corpus document directory, read at startup only.
	CorpusDir string `yaml:"corpus_dir"`

	// ModelName is the chat model used for answers and judging.
	ModelName string `yaml:"model_name"`

	// EmbeddingModel is the embedding model name.
	EmbeddingModel string `yaml:"embedding_model"`

	// Temperature is the answer-generation sampling temperature.
	Temperature float64 `yaml:"temperature"`

	// TopK is the number of chunks retrieved per query.
	TopK int `yaml:"top_k"`

	// ListenAddr is the HTTP server listen address.
	ListenAddr string `yaml:"listen_addr"`
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	return &Config{
		CorpusDir:      DefaultCorpusDir,
		ModelName:      DefaultModelName,
		EmbeddingModel: DefaultEmbeddingModel,
		Temperature:    DefaultTemperature,
		TopK:           DefaultTopK,
		ListenAddr:     DefaultListenAddr,
	}
}

// Load builds the configuration: defaults, then the YAML file at path if
// it is non-empty, then environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overrides file values with environment variables.
// GITHUB_TOKEN is accepted as a credential alias for deployments that
// authenticate against the GitHub Models endpoint.
func (c *Config) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.APIKey = v
	} else if v := os.Getenv("GITHUB_TOKEN"); v != "" && c.APIKey == "" {
		c.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("OPENAI_EMBEDDINGS_URL"); v != "" {
		c.EmbeddingsBaseURL = v
	}
	if v := os.Getenv("RINGSIDE_CORPUS_DIR"); v != "" {
		c.CorpusDir = v
	}
	if v := os.Getenv("RINGSIDE_MODEL_NAME"); v != "" {
		c.ModelName = v
	}
}

// Validate checks that the configuration can serve at all.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.CorpusDir == "" {
		return errors.New("config: corpus directory is required")
	}
	if c.TopK <= 0 {
		c.TopK = DefaultTopK
	}
	return nil
}
