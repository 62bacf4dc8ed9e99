// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config loads the analyzer service configuration from a YAML
// file with environment-variable overrides, and validates the result.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the full analyzer service configuration.
type Config struct {
	// Port the HTTP server listens on.
	Port string `yaml:"port" validate:"required,numeric"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// Embedding selects and configures the embedding backend.
	Embedding EmbeddingConfig `yaml:"embedding"`

	// Store configures report persistence. Empty DataDir disables it.
	Store StoreConfig `yaml:"store"`

	// RateLimit bounds analyze requests per second (token bucket).
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	// OTLPEndpoint enables trace export when non-empty, e.g.
	// "otel-collector:4317".
	OTLPEndpoint string `yaml:"otlp_endpoint"`
}

// EmbeddingConfig configures the embedding backend.
type EmbeddingConfig struct {
	// Backend is one of http, openai, ollama.
	Backend string `yaml:"backend" validate:"oneof=http openai ollama"`

	// BaseURL is the sidecar or Ollama server URL.
	BaseURL string `yaml:"base_url" validate:"omitempty,url"`

	// Model is the embedding model name (backend default when empty).
	Model string `yaml:"model"`

	// APIKey authenticates the openai backend. Prefer the
	// OPENAI_API_KEY environment variable over the file.
	APIKey string `yaml:"api_key"`
}

// StoreConfig configures report persistence.
type StoreConfig struct {
	// DataDir is the badger database directory. Empty disables the store.
	DataDir string `yaml:"data_dir"`
}

// RateLimitConfig configures the analyze-endpoint token bucket.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"gt=0"`
	Burst             int     `yaml:"burst" validate:"gt=0"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Port:     "12300",
		LogLevel: "info",
		Embedding: EmbeddingConfig{
			Backend: "http",
			BaseURL: "http://localhost:8000",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 5,
			Burst:             10,
		},
	}
}

// Load reads the config file at path (defaults apply when path is empty or
// the file does not exist), applies environment overrides and validates.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	applyEnv(&cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyEnv overrides file values from the environment. Environment always
// wins so deployments can reconfigure without editing files.
func applyEnv(cfg *Config) {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString(&cfg.Port, "TRUSTSCOPE_PORT")
	setString(&cfg.LogLevel, "TRUSTSCOPE_LOG_LEVEL")
	setString(&cfg.Embedding.Backend, "TRUSTSCOPE_EMBEDDING_BACKEND")
	setString(&cfg.Embedding.BaseURL, "TRUSTSCOPE_EMBEDDING_URL")
	setString(&cfg.Embedding.Model, "TRUSTSCOPE_EMBEDDING_MODEL")
	setString(&cfg.Embedding.APIKey, "OPENAI_API_KEY")
	setString(&cfg.Store.DataDir, "TRUSTSCOPE_DATA_DIR")
	setString(&cfg.OTLPEndpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
}
