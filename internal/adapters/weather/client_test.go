package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"agrisense-api/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/current.json", r.URL.Path)
		assert.Equal(t, "k", r.URL.Query().Get("key"))
		assert.Equal(t, "Ludhiana,Punjab", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"location":{"name":"Ludhiana"},"current":{"temp_c":31.2,"humidity":64,"precip_mm":1.5}}`))
	}))
	defer srv.Close()

	reading, err := NewClient(srv.URL, "k", time.Second).FetchCurrent(context.Background(), "Ludhiana", "Punjab")
	require.NoError(t, err)
	assert.Equal(t, 31.2, reading.Temperature)
	assert.Equal(t, 64.0, reading.Humidity)
	assert.Equal(t, 1.5, reading.RainfallLastHour)
	assert.Equal(t, "Ludhiana", reading.Location)
}

func TestClient_MissingPrecipitationDefaultsToZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"current":{"temp_c":20,"humidity":50}}`))
	}))
	defer srv.Close()

	reading, err := NewClient(srv.URL, "k", time.Second).FetchCurrent(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, 0.0, reading.RainfallLastHour)
}

func TestClient_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "upstream error with message",
			status: http.StatusBadRequest,
			body:   `{"error":{"code":1006,"message":"No matching location found."}}`,
			check: func(t *testing.T, err error) {
				var up *domain.UpstreamError
				require.True(t, errors.As(err, &up))
				assert.Equal(t, http.StatusBadRequest, up.StatusCode)
				assert.Equal(t, "No matching location found.", up.Detail)
			},
		},
		{
			name:   "upstream error with html body",
			status: http.StatusBadGateway,
			body:   `<html>bad gateway</html>`,
			check: func(t *testing.T, err error) {
				var up *domain.UpstreamError
				require.True(t, errors.As(err, &up))
				assert.Equal(t, http.StatusBadGateway, up.StatusCode)
			},
		},
		{
			name:   "malformed body",
			status: http.StatusOK,
			body:   `{"current":`,
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "malformed")
			},
		},
		{
			name:   "missing temperature",
			status: http.StatusOK,
			body:   `{"current":{"humidity":50}}`,
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "missing current conditions")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, "k", time.Second).FetchCurrent(context.Background(), "a", "b")
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "k", 20*time.Millisecond).FetchCurrent(context.Background(), "a", "b")
	assert.Error(t, err)
}

type stubProvider struct {
	calls   atomic.Int32
	reading *domain.WeatherReading
	err     error
}

func (s *stubProvider) FetchCurrent(ctx context.Context, district, state string) (*domain.WeatherReading, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	r := *s.reading
	return &r, nil
}

type countingRecorder struct {
	hits, misses int
}

func (c *countingRecorder) RecordCache(hit bool) {
	if hit {
		c.hits++
	} else {
		c.misses++
	}
}

func TestCachedProvider_CachesSuccess(t *testing.T) {
	next := &stubProvider{reading: &domain.WeatherReading{Temperature: 25, Humidity: 40}}
	rec := &countingRecorder{}
	p := NewCachedProvider(next, 16, time.Hour, rec)

	ctx := context.Background()
	first, err := p.FetchCurrent(ctx, "Ludhiana", "Punjab")
	require.NoError(t, err)
	second, err := p.FetchCurrent(ctx, " ludhiana", "PUNJAB ")
	require.NoError(t, err)

	assert.Equal(t, int32(1), next.calls.Load())
	assert.Equal(t, first, second)
	assert.Equal(t, 1, rec.hits)
	assert.Equal(t, 1, rec.misses)
	assert.Equal(t, 1, p.Len())
}

func TestCachedProvider_DoesNotCacheFailures(t *testing.T) {
	next := &stubProvider{err: errors.New("boom")}
	p := NewCachedProvider(next, 16, time.Hour, nil)

	ctx := context.Background()
	_, err := p.FetchCurrent(ctx, "a", "b")
	require.Error(t, err)
	_, err = p.FetchCurrent(ctx, "a", "b")
	require.Error(t, err)

	assert.Equal(t, int32(2), next.calls.Load())
	assert.Equal(t, 0, p.Len())
}

func TestCachedProvider_Expires(t *testing.T) {
	next := &stubProvider{reading: &domain.WeatherReading{Temperature: 25, Humidity: 40}}
	p := NewCachedProvider(next, 16, 30*time.Millisecond, nil)

	ctx := context.Background()
	_, err := p.FetchCurrent(ctx, "a", "b")
	require.NoError(t, err)

	time.Sleep(80 * time.Millisecond)

	_, err = p.FetchCurrent(ctx, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, int32(2), next.calls.Load())
}
