package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"tripdesk/models"
)

// UpstreamClient talks to the partner product API.
type UpstreamClient struct {
	apiKey string
	client *resty.Client
}

func NewUpstreamClient(baseURL, apiKey string) *UpstreamClient {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(15 * time.Second)

	return &UpstreamClient{
		apiKey: apiKey,
		client: client,
	}
}

type productResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message,omitempty"`
	Data    *models.Product `json:"data"`
}

// FetchProduct pulls one product/package document. The response body is kept
// loosely typed; normalization happens later in the pricing layer.
func (c *UpstreamClient) FetchProduct(ctx context.Context, id string) (*models.Product, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("X-Api-Key", c.apiKey).
		Get("/v1/products/" + id)
	if err != nil {
		return nil, fmt.Errorf("upstream product fetch failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("upstream product fetch returned %d", resp.StatusCode())
	}

	var body productResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("decoding product response failed: %w", err)
	}
	if body.Data == nil {
		return nil, fmt.Errorf("product %s not found upstream", id)
	}

	doc := body.Data
	doc.ID = id
	doc.FetchedAt = time.Now()
	return doc, nil
}
