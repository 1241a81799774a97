// Package aimodel talks to the Python model service that serves crop
// recommendation and yield prediction.
package aimodel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"agrisense-api/internal/core/domain"
)

// Client posts farmer ids to the model service and returns its raw JSON answer
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a model service client
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// RecommendCrop calls /m1/crop-recommendation
func (c *Client) RecommendCrop(ctx context.Context, farmerID string) (json.RawMessage, error) {
	return c.post(ctx, "/m1/crop-recommendation", farmerID)
}

// PredictYield calls /m1/yield
func (c *Client) PredictYield(ctx context.Context, farmerID string) (json.RawMessage, error) {
	return c.post(ctx, "/m1/yield", farmerID)
}

func (c *Client) post(ctx context.Context, path, farmerID string) (json.RawMessage, error) {
	payload, err := json.Marshal(map[string]string{"farmerId": farmerID})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.UpstreamError{
			Service:    "model service",
			StatusCode: resp.StatusCode,
			Detail:     errorDetail(body),
		}
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: model service returned invalid JSON", domain.ErrServiceUnavailable)
	}

	return json.RawMessage(body), nil
}

// errorDetail extracts FastAPI's {"detail": ...}
func errorDetail(body []byte) string {
	var out struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &out); err != nil || len(out.Detail) == 0 {
		return "Error from model service"
	}
	var s string
	if err := json.Unmarshal(out.Detail, &s); err == nil {
		return s
	}
	return string(out.Detail)
}
