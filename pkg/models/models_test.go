package models

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestConfigFromViper(t *testing.T) {
	viper.Set("api.base_url", "http://localhost:8000/v1")
	viper.Set("api.key", "sk-test")
	defer viper.Set("api.base_url", "")
	defer viper.Set("api.key", "")

	cfg := ConfigFromViper()
	assert.Equal(t, "http://localhost:8000/v1", cfg.BaseURL)
	assert.Equal(t, "sk-test", cfg.APIKey)
}

func TestListModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data": []map[string]any{
				{"id": "gpt-4o", "object": "model"},
				{"id": "gpt-3.5-turbo", "object": "model"},
			},
		})
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL + "/v1", APIKey: "sk-test"})
	require.NoError(t, err)

	ids, err := client.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"gpt-3.5-turbo", "gpt-4o"}, ids)
}

func TestListModelsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": {"message": "unauthorized"}}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL + "/v1", APIKey: "sk-test"})
	require.NoError(t, err)

	_, err = client.ListModels(context.Background())
	assert.Error(t, err)
}
