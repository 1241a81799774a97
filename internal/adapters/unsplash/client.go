// Package unsplash looks up illustrative photos through the Unsplash search API.
package unsplash

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

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultBaseURL is the public Unsplash API
const DefaultBaseURL = "https://api.unsplash.com"

// Client searches photos; found URLs are remembered per query for a day
type Client struct {
	baseURL    string
	accessKey  string
	httpClient *http.Client
	cache      *lru.LRU[string, string]
}

// NewClient creates an Unsplash client; timeout bounds every call
func NewClient(baseURL, accessKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		accessKey:  accessKey,
		httpClient: &http.Client{Timeout: timeout},
		cache:      lru.NewLRU[string, string](128, nil, 24*time.Hour),
	}
}

type searchResponse struct {
	Results []struct {
		URLs struct {
			Small string `json:"small"`
		} `json:"urls"`
	} `json:"results"`
}

// SearchPhoto returns the small-size URL of the first landscape result.
// An empty string with a nil error means nothing matched.
func (c *Client) SearchPhoto(ctx context.Context, query string) (string, error) {
	if u, ok := c.cache.Get(query); ok {
		return u, nil
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", "1")
	params.Set("orientation", "landscape")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search/photos?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: unsplash request: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &domain.UpstreamError{Service: "unsplash", StatusCode: resp.StatusCode, Detail: http.StatusText(resp.StatusCode)}
	}

	var out searchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return "", fmt.Errorf("unsplash response: malformed body: %w", err)
	}
	if len(out.Results) == 0 || out.Results[0].URLs.Small == "" {
		return "", nil
	}

	u := out.Results[0].URLs.Small
	c.cache.Add(query, u)
	return u, nil
}
