// internal/services/sellerfinder_service_test.go
package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricewise/pricewise-backend/internal/config"
)

func finderConfig(baseURL string) config.AIConfig {
	return config.AIConfig{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		Model:          "test-model",
		TimeoutSeconds: 5,
	}
}

func chatReply(t *testing.T, content interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(content)
	require.NoError(t, err)
	body, err := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": string(raw)}},
		},
	})
	require.NoError(t, err)
	return body
}

func TestFindSellersParsesWellFormedResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write(chatReply(t, map[string]interface{}{
			"sellers": []map[string]interface{}{
				{"name": "Amazon", "price": 64999.0, "link": "https://amazon.in/x"},
				{"name": "Flipkart", "price": 63499.0, "link": "https://flipkart.com/y"},
			},
		}))
	}))
	defer server.Close()

	service := NewSellerFinderService(finderConfig(server.URL))

	sellers, err := service.FindSellers(context.Background(), "Galaxy S23", "SM-S911B")

	require.NoError(t, err)
	require.Len(t, sellers, 2)
	assert.Equal(t, "Amazon", sellers[0].Name)
	assert.Equal(t, 64999.0, sellers[0].Price)
	assert.True(t, sellers[0].IsOnline)
	assert.Equal(t, "https://flipkart.com/y", sellers[1].Link)
}

func TestFindSellersEmptyInputShortCircuits(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	service := NewSellerFinderService(finderConfig(server.URL))

	for _, pair := range [][2]string{{"", "SM-S911B"}, {"Galaxy S23", ""}, {"", ""}} {
		sellers, err := service.FindSellers(context.Background(), pair[0], pair[1])
		require.NoError(t, err)
		assert.Empty(t, sellers)
	}
	assert.False(t, called, "empty input must not reach the hosted model")
}

func TestFindSellersDisabledWithoutAPIKey(t *testing.T) {
	cfg := finderConfig("http://unused.invalid")
	cfg.APIKey = ""
	service := NewSellerFinderService(cfg)

	sellers, err := service.FindSellers(context.Background(), "Galaxy S23", "SM-S911B")

	require.NoError(t, err)
	assert.Empty(t, sellers)
}

func TestFindSellersRejectsMalformedEntry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(chatReply(t, map[string]interface{}{
			"sellers": []map[string]interface{}{
				{"name": "Amazon", "price": 64999.0, "link": "https://amazon.in/x"},
				{"name": "", "price": 0.0, "link": ""},
			},
		}))
	}))
	defer server.Close()

	service := NewSellerFinderService(finderConfig(server.URL))

	sellers, err := service.FindSellers(context.Background(), "Galaxy S23", "SM-S911B")

	// One bad entry poisons the whole result, never a partial list
	assert.ErrorIs(t, err, ErrSellerLookupFailed)
	assert.Nil(t, sellers)
}

func TestFindSellersRejectsNonJSONContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := json.Marshal(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "sorry, I could not find anything"}},
			},
		})
		w.Write(body)
	}))
	defer server.Close()

	service := NewSellerFinderService(finderConfig(server.URL))

	_, err := service.FindSellers(context.Background(), "Galaxy S23", "SM-S911B")

	assert.ErrorIs(t, err, ErrSellerLookupFailed)
}

func TestFindSellersRejectsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	service := NewSellerFinderService(finderConfig(server.URL))

	_, err := service.FindSellers(context.Background(), "Galaxy S23", "SM-S911B")

	assert.ErrorIs(t, err, ErrSellerLookupFailed)
}

func TestFindSellersEmptySellerListIsValid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(chatReply(t, map[string]interface{}{"sellers": []interface{}{}}))
	}))
	defer server.Close()

	service := NewSellerFinderService(finderConfig(server.URL))

	sellers, err := service.FindSellers(context.Background(), "Galaxy S23", "SM-S911B")

	require.NoError(t, err)
	assert.Empty(t, sellers)
}
