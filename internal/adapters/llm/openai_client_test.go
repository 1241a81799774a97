package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agrisense-api/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer hf_test", r.Header.Get("Authorization"))

		var req chatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, 0.7, req.Temperature)
		assert.Equal(t, 512, req.MaxTokens)
		if assert.Len(t, req.Messages, 2) {
			assert.Equal(t, "system", req.Messages[0].Role)
		}

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  Irrigate in the evening.\n"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/v1", "hf_test", "test-model", time.Second)
	out, err := c.Complete(context.Background(), []Message{
		{Role: "system", Content: "sys"},
		{Role: "user", Content: "When should I water?"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Irrigate in the evening.", out)
}

func TestClient_CompleteOptions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 0.8, req.Temperature)
		assert.Equal(t, 1024, req.MaxTokens)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"[]"}}]}`))
	}))
	defer srv.Close()

	out, err := NewClient(srv.URL, "t", "m", time.Second).Complete(context.Background(),
		[]Message{{Role: "user", Content: "tips"}},
		WithTemperature(0.8), WithMaxTokens(1024),
	)
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}

func TestClient_CompleteErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantDetail string
		wantIs     error
	}{
		{
			name:       "string error",
			status:     http.StatusUnauthorized,
			body:       `{"error":"Invalid credentials in Authorization header"}`,
			wantStatus: http.StatusUnauthorized,
			wantDetail: "Invalid credentials in Authorization header",
		},
		{
			name:       "object error",
			status:     http.StatusTooManyRequests,
			body:       `{"error":{"message":"rate limited"}}`,
			wantStatus: http.StatusTooManyRequests,
			wantDetail: "rate limited",
		},
		{
			name:   "no choices",
			status: http.StatusOK,
			body:   `{"choices":[]}`,
			wantIs: domain.ErrServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, "t", "m", time.Second).Complete(context.Background(), nil)
			require.Error(t, err)

			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
				return
			}
			var up *domain.UpstreamError
			require.True(t, errors.As(err, &up))
			assert.Equal(t, tt.wantStatus, up.StatusCode)
			assert.Equal(t, tt.wantDetail, up.Detail)
		})
	}
}
