// internal/services/sellerfinder_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pricewise/pricewise-backend/internal/config"
)

// SellerFinderService asks a hosted model for online sellers of a product.
// The model's JSON output is the sole contract: it either parses into
// well-formed seller entries or the whole lookup fails, never a partial
// result.
type SellerFinderService struct {
	cfg    config.AIConfig
	client *http.Client
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type sellerFinderOutput struct {
	Sellers []struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
		Link  string  `json:"link"`
	} `json:"sellers"`
}

const sellerFinderPrompt = `You are an expert shopping assistant. Your task is to find the best online prices in India for a specific product.

Product Name: %s
Model: %s

Search for this product and identify up to 3 different online sellers (e.g., Amazon.in, Flipkart, Croma, Reliance Digital).

For each seller, provide their name, the product's price in INR (as a number only), and a direct link to the product page.

Respond with a JSON object of the shape {"sellers": [{"name": string, "price": number, "link": string}]}. If you cannot find any sellers, return {"sellers": []}.`

func NewSellerFinderService(cfg config.AIConfig) *SellerFinderService {
	return &SellerFinderService{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// FindSellers returns candidate online sellers for the given product.
// Empty name or model short-circuits to an empty result without any
// network call, as does a missing API key.
func (s *SellerFinderService) FindSellers(ctx context.Context, productName, model string) ([]SellerInput, error) {
	if productName == "" || model == "" {
		return []SellerInput{}, nil
	}
	if s.cfg.APIKey == "" {
		logrus.Debug("seller finder disabled: no API key configured")
		return []SellerInput{}, nil
	}

	body, err := json.Marshal(chatRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "user", Content: fmt.Sprintf(sellerFinderPrompt, productName, model)},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode lookup request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build lookup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("seller lookup call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: upstream status %d", ErrSellerLookupFailed, resp.StatusCode)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSellerLookupFailed, err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrSellerLookupFailed)
	}

	var output sellerFinderOutput
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &output); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSellerLookupFailed, err)
	}

	sellers := make([]SellerInput, 0, len(output.Sellers))
	for _, found := range output.Sellers {
		// One malformed entry poisons the whole result by contract
		if found.Name == "" || found.Price <= 0 || found.Link == "" {
			return nil, fmt.Errorf("%w: malformed seller entry", ErrSellerLookupFailed)
		}
		sellers = append(sellers, SellerInput{
			Name:     found.Name,
			Price:    found.Price,
			IsOnline: true,
			Link:     found.Link,
		})
	}

	logrus.WithFields(logrus.Fields{
		"product": productName,
		"model":   model,
		"found":   len(sellers),
	}).Info("seller lookup completed")

	return sellers, nil
}
