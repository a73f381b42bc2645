package order

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"tripdesk/models"
)

// Result is the partner order API's acknowledgement of a submission.
type Result struct {
	OrderNo string `json:"order_no"`
	Status  string `json:"status"`
}

// SubmitError carries the upstream rejection through to the handler layer.
type SubmitError struct {
	StatusCode int
	Message    string
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("order submission rejected (%d): %s", e.StatusCode, e.Message)
}

// Client submits reservation payloads to the partner order API.
type Client struct {
	apiKey string
	client *resty.Client
}

func NewClient(baseURL, apiKey string) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(20 * time.Second)

	return &Client{
		apiKey: apiKey,
		client: client,
	}
}

type submitResponse struct {
	Code    int     `json:"code"`
	Message string  `json:"message,omitempty"`
	Data    *Result `json:"data,omitempty"`
}

// Submit posts the payload. partner_order_no doubles as the idempotency key,
// so retrying a failed submission with the same payload is safe.
func (c *Client) Submit(ctx context.Context, payload *models.ReservationPayload) (*Result, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("X-Api-Key", c.apiKey).
		SetHeader("Idempotency-Key", payload.PartnerOrderNo).
		SetBody(payload).
		Post("/v1/orders")
	if err != nil {
		return nil, fmt.Errorf("order submission failed: %w", err)
	}

	var body submitResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil && !resp.IsError() {
		return nil, fmt.Errorf("decoding order response failed: %w", err)
	}
	if resp.IsError() {
		return nil, &SubmitError{StatusCode: resp.StatusCode(), Message: body.Message}
	}
	if body.Data == nil {
		return nil, fmt.Errorf("order response missing data")
	}
	return body.Data, nil
}
