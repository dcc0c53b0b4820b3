// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for AI service providers.
type Config struct {
	// APIHost is the base URL for the assistants API.
	// Example: "https://api.openai.com/v1"
	APIHost string

	// APIKey is the bearer token sent with every request.
	APIKey string

	// AssistantID identifies the assistant that performs classification.
	// Example: "asst_abc123"
	AssistantID string

	// EmbeddingHost is the base URL for the embedding service API.
	// Defaults to APIHost, so a single OpenAI-compatible endpoint can
	// serve both concerns.
	EmbeddingHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "text-embedding-3-small"
	EmbeddingModel string

	// PollInterval is the delay between status checks while waiting for a
	// classification run to finish.
	// Default: 2s
	PollInterval time.Duration

	// PollTimeout bounds the total time spent waiting for a classification
	// run. Runs that are still in flight when it elapses fail with
	// ErrClassificationTimeout.
	// Default: 2m
	PollTimeout time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithAPIHost sets the assistants API host URL.
func WithAPIHost(host string) ConfigOption {
	return func(c *Config) {
		c.APIHost = host
	}
}

// WithAPIKey sets the API bearer token.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithAssistantID sets the classification assistant identity.
func WithAssistantID(id string) ConfigOption {
	return func(c *Config) {
		c.AssistantID = id
	}
}

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithPollInterval sets the delay between run status checks.
func WithPollInterval(interval time.Duration) ConfigOption {
	return func(c *Config) {
		c.PollInterval = interval
	}
}

// WithPollTimeout sets the total time budget for a classification run.
func WithPollTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.PollTimeout = timeout
	}
}

// DefaultConfig returns a Config with sensible defaults for the hosted
// OpenAI API. APIKey and AssistantID have no defaults and must be supplied.
func DefaultConfig() *Config {
	return &Config{
		APIHost:        "https://api.openai.com/v1",
		EmbeddingModel: "text-embedding-3-small",
		PollInterval:   2 * time.Second,
		PollTimeout:    2 * time.Minute,
	}
}

// NewConfig creates a Config with the default values and applies the provided
// options. This is the recommended way to create a Config with custom settings.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithAPIKey(key),
//	    ai.WithAssistantID("asst_abc123"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// Hosts get the /v1 suffix required by OpenAI-compatible APIs, and an empty
// EmbeddingHost falls back to APIHost.
func (c *Config) Normalize() {
	if c.APIHost != "" && !strings.HasSuffix(c.APIHost, "/v1") {
		c.APIHost = strings.TrimSuffix(c.APIHost, "/") + "/v1"
	}
	if c.EmbeddingHost == "" {
		c.EmbeddingHost = c.APIHost
	}
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/") + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.APIHost == "" {
		return errors.New("ai config: APIHost is required")
	}
	if c.APIKey == "" {
		return errors.New("ai config: APIKey is required")
	}
	if c.AssistantID == "" {
		return errors.New("ai config: AssistantID is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.PollInterval <= 0 {
		return errors.New("ai config: PollInterval must be positive")
	}
	if c.PollTimeout <= 0 {
		return errors.New("ai config: PollTimeout must be positive")
	}
	return nil
}
