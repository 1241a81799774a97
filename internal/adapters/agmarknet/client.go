// Package agmarknet reads daily mandi prices from the data.gov.in Agmarknet resource.
package agmarknet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"agrisense-api/internal/core/domain"
)

// DefaultBaseURL is the "current daily price of various commodities" resource
const DefaultBaseURL = "https://api.data.gov.in/resource/9ef84268-d588-465a-a308-a864a43d0070"

// Client calls the Agmarknet resource endpoint
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates an Agmarknet client; timeout bounds every call
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type priceResponse struct {
	Records []json.RawMessage `json:"records"`
	Total   json.RawMessage   `json:"total"`
	Message string            `json:"message"`
}

// FetchPrices returns one page of price records matching q
func (c *Client) FetchPrices(ctx context.Context, q domain.PriceQuery) (*domain.PriceResult, error) {
	params := url.Values{}
	params.Set("api-key", c.apiKey)
	params.Set("format", "json")
	params.Set("offset", strconv.Itoa(q.Offset))
	params.Set("limit", strconv.Itoa(q.Limit))
	setFilter(params, "state.keyword", q.State)
	setFilter(params, "district", q.District)
	setFilter(params, "market", q.Market)
	setFilter(params, "commodity", q.Commodity)
	setFilter(params, "variety", q.Variety)
	setFilter(params, "grade", q.Grade)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "AgriSense/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: agmarknet request: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: agmarknet response: %v", domain.ErrServiceUnavailable, err)
	}

	var out priceResponse
	decodeErr := json.Unmarshal(body, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := http.StatusText(resp.StatusCode)
		if decodeErr == nil && out.Message != "" {
			detail = out.Message
		}
		return nil, &domain.UpstreamError{Service: "agmarknet", StatusCode: resp.StatusCode, Detail: detail}
	}
	if decodeErr != nil || out.Records == nil {
		detail := "Invalid response from Agmarknet API: No records found"
		if decodeErr == nil && out.Message != "" {
			detail = out.Message
		}
		return nil, &domain.UpstreamError{Service: "agmarknet", StatusCode: http.StatusBadGateway, Detail: detail}
	}

	return &domain.PriceResult{Records: out.Records, Total: parseTotal(out.Total)}, nil
}

func setFilter(params url.Values, field, value string) {
	if value = strings.TrimSpace(value); value != "" {
		params.Set("filters["+field+"]", value)
	}
}

// parseTotal accepts the total either as a number or as a quoted number
func parseTotal(raw json.RawMessage) int {
	n, err := strconv.Atoi(strings.Trim(string(raw), `"`))
	if err != nil {
		return 0
	}
	return n
}
