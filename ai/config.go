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
)

// Config holds configuration for AI service providers.
type Config struct {
	// Host is the base URL for the OpenAI-compatible chat API.
	// Example: "https://api.openai.com/v1", "http://localhost:11434/v1"
	Host string

	// APIKey authenticates against the chat API. For local services that
	// don't require authentication, any non-empty value works.
	APIKey string

	// SelectorModel is the model identifier used for the coarse,
	// title-level selection pass.
	SelectorModel string

	// ExtractorModel is the model identifier used for full-text quote
	// extraction. Usually the same model as SelectorModel.
	ExtractorModel string

	// MaxQuoteLen is the maximum length, in runes, of a single extracted
	// quote. Longer quotes returned by the model are discarded.
	// Default: 600
	MaxQuoteLen int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the chat API host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithAPIKey sets the chat API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithModel sets both selector and extractor to the same model.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.SelectorModel = model
		c.ExtractorModel = model
	}
}

// WithSelectorModel sets the selection model identifier.
func WithSelectorModel(model string) ConfigOption {
	return func(c *Config) {
		c.SelectorModel = model
	}
}

// WithExtractorModel sets the extraction model identifier.
func WithExtractorModel(model string) ConfigOption {
	return func(c *Config) {
		c.ExtractorModel = model
	}
}

// WithMaxQuoteLen sets the maximum extracted quote length.
func WithMaxQuoteLen(n int) ConfigOption {
	return func(c *Config) {
		c.MaxQuoteLen = n
	}
}

// DefaultConfig returns a Config with sensible defaults for the hosted
// OpenAI API. The APIKey must still be supplied by the caller.
func DefaultConfig() *Config {
	return &Config{
		Host:           "https://api.openai.com/v1",
		SelectorModel:  "gpt-5-nano",
		ExtractorModel: "gpt-5-nano",
		MaxQuoteLen:    600,
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options. This is the recommended way to create a Config.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithAPIKey(key),
//	    ai.WithModel("gpt-4o-mini"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It adds the /v1 suffix to the host if missing, which is required by most
// OpenAI-compatible APIs (OpenAI, Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/")
		c.Host = c.Host + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.APIKey == "" {
		return errors.New("ai config: APIKey is required")
	}
	if c.SelectorModel == "" {
		return errors.New("ai config: SelectorModel is required")
	}
	if c.ExtractorModel == "" {
		return errors.New("ai config: ExtractorModel is required")
	}
	if c.MaxQuoteLen < 1 {
		return errors.New("ai config: MaxQuoteLen must be positive")
	}
	return nil
}
