// Package models implements the model-checker skill: querying an
// OpenAI-compatible API for its available models.
package models

import (
	"context"
	"os"
	"sort"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"
	"github.com/spf13/viper"

	"github.com/skillet-dev/skillet/pkg/logger"
)

// Config holds the connection settings for an OpenAI-compatible endpoint.
type Config struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

// ConfigFromViper builds a Config from viper keys and environment fallbacks.
// api.base_url / api.key are viper keys; OPENAI_API_BASE and OPENAI_API_KEY
// are honored when the keys are unset.
func ConfigFromViper() Config {
	cfg := Config{
		BaseURL: viper.GetString("api.base_url"),
		APIKey:  viper.GetString("api.key"),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("OPENAI_API_BASE")
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	return cfg
}

// Client lists models from an OpenAI-compatible endpoint.
type Client struct {
	api *openai.Client
}

// NewClient creates a Client for the configured endpoint.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("API key is not configured (set api.key or OPENAI_API_KEY)")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Client{api: openai.NewClientWithConfig(clientConfig)}, nil
}

// ListModels returns the IDs of all models the endpoint reports, sorted.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	resp, err := c.api.ListModels(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list models")
	}

	ids := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		ids = append(ids, m.ID)
	}
	sort.Strings(ids)

	logger.G(ctx).WithField("count", len(ids)).Debug("listed models")
	return ids, nil
}
