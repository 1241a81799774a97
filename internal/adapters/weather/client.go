// Package weather fetches current conditions from weatherapi.com.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"agrisense-api/internal/core/domain"
)

// Client calls the weatherapi.com current conditions endpoint
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a weather client; timeout bounds every call
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type currentResponse struct {
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	Current *struct {
		TempC    *float64 `json:"temp_c"`
		Humidity *float64 `json:"humidity"`
		PrecipMM *float64 `json:"precip_mm"`
	} `json:"current"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// FetchCurrent returns current temperature, humidity and last-hour rainfall
// for "district,state".
func (c *Client) FetchCurrent(ctx context.Context, district, state string) (*domain.WeatherReading, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("q", district+","+state)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/current.json?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "AgriSense/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("weather response: %w", err)
	}

	var out currentResponse
	decodeErr := json.Unmarshal(body, &out)

	if resp.StatusCode != http.StatusOK {
		detail := http.StatusText(resp.StatusCode)
		if decodeErr == nil && out.Error != nil && out.Error.Message != "" {
			detail = out.Error.Message
		}
		return nil, &domain.UpstreamError{Service: "weather", StatusCode: resp.StatusCode, Detail: detail}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("weather response: malformed body: %w", decodeErr)
	}

	if out.Current == nil || out.Current.TempC == nil || out.Current.Humidity == nil {
		return nil, fmt.Errorf("weather response: missing current conditions")
	}

	reading := &domain.WeatherReading{
		Temperature: *out.Current.TempC,
		Humidity:    *out.Current.Humidity,
		Location:    out.Location.Name,
	}
	if out.Current.PrecipMM != nil {
		reading.RainfallLastHour = *out.Current.PrecipMM
	}

	return reading, nil
}
