package clients

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/clients/pipeline"
	"github.com/jsamuelsen/askkodiak-gateway/internal/platform/config"
	"github.com/jsamuelsen/askkodiak-gateway/internal/platform/logging"
)

func defaultConfig() *Config {
	return &Config{
		ServiceName: "askkodiak",
		Timeout:     5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     3,
			InitialInterval: time.Millisecond,
			MaxInterval:     10 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   5,
			Timeout:       time.Second,
			HalfOpenLimit: 2,
		},
	}
}

// newTestClient starts handler and returns a client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc, mutate func(*Config)) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := defaultConfig()
	cfg.BaseURL = server.URL
	if mutate != nil {
		mutate(cfg)
	}

	client, err := New(cfg)
	require.NoError(t, err)

	return client
}

func closeBody(t *testing.T, resp *http.Response) {
	t.Helper()
	if err := resp.Body.Close(); err != nil {
		t.Errorf("failed to close response body: %v", err)
	}
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config is required")

	cfg := defaultConfig()
	cfg.ServiceName = ""
	_, err = New(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service name is required")
}

func TestNew_Defaults(t *testing.T) {
	cfg := defaultConfig()
	cfg.BaseURL = "https://api.askkodiak.com/"
	cfg.Timeout = 0
	cfg.Retry.MaxAttempts = 0

	client, err := New(cfg)
	require.NoError(t, err)

	assert.Equal(t, "https://api.askkodiak.com", client.baseURL)
	assert.Equal(t, defaultTimeout, client.http.Timeout)
	assert.Equal(t, 1, client.cfg.Retry.MaxAttempts)
	assert.Equal(t, "askkodiak", client.ServiceName())
}

func TestClient_Get_PreservesDelimiterOnTheWire(t *testing.T) {
	var requestURI string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requestURI = r.RequestURI
		w.WriteHeader(http.StatusOK)
	}, func(cfg *Config) {
		cfg.Pipeline = pipeline.New(pipeline.Config{Edition: "2022"})
	})

	query := url.Values{}
	query.Set("owners", pipeline.JoinValues("ABC123", "DEF456"))

	resp, err := client.Get(context.Background(), "/v2/products/class-code/naics/722513", query)
	require.NoError(t, err)
	defer closeBody(t, resp)

	assert.Equal(t, "/v2/products/class-code/naics/722513?owners=ABC123+DEF456", requestURI)
}

func TestClient_Get_InjectsEdition(t *testing.T) {
	var got url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.WriteHeader(http.StatusOK)
	}, func(cfg *Config) {
		cfg.Pipeline = pipeline.New(pipeline.Config{Edition: "2022", Auth: pipeline.BasicAuth("g", "k")})
	})

	resp, err := client.Get(context.Background(), "/v2/suggest/naics-codes/bakery", nil)
	require.NoError(t, err)
	defer closeBody(t, resp)

	assert.Equal(t, "2022", got.Get(pipeline.ParamNaicsEdition))
}

func TestClient_PipelineFailureSendsNothing(t *testing.T) {
	var calls atomic.Int32
	boom := errors.New("no tenant")
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}, func(cfg *Config) {
		cfg.Pipeline = pipeline.New(pipeline.Config{
			Steps: []pipeline.Step{pipeline.Named("tenant", pipeline.StepFunc(func(*http.Request) error { return boom }))},
		})
	})

	resp, err := client.Get(context.Background(), "/v2/companies", nil)

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, pipeline.IsConstructionError(err))
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, calls.Load())
	assert.Equal(t, StateClosed, client.CircuitState())
}

func TestClient_HeaderPropagation(t *testing.T) {
	var header http.Header
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Clone()
	}, nil)

	ctx := logging.WithRequestID(context.Background(), "req-123")
	ctx = logging.WithCorrelationID(ctx, "corr-456")

	resp, err := client.Get(ctx, "v2/companies", nil)
	require.NoError(t, err)
	defer closeBody(t, resp)

	assert.Equal(t, "req-123", header.Get(logging.HeaderRequestID))
	assert.Equal(t, "corr-456", header.Get(logging.HeaderCorrelationID))
	assert.Equal(t, "application/json", header.Get("Accept"))
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var attempts atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}, nil)

	resp, err := client.Get(context.Background(), "/v2/companies", nil)
	require.NoError(t, err)
	defer closeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestClient_ReturnsFinalServerErrorResponse(t *testing.T) {
	var attempts atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"message":"maintenance"}`)
	}, nil)

	resp, err := client.Get(context.Background(), "/v2/companies", nil)
	require.NoError(t, err)
	defer closeBody(t, resp)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.JSONEq(t, `{"message":"maintenance"}`, string(body))
	assert.Equal(t, int32(3), attempts.Load())
}

func TestClient_NoRetryOnClientError(t *testing.T) {
	var attempts atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}, nil)

	resp, err := client.Get(context.Background(), "/v2/companies", nil)
	require.NoError(t, err)
	defer closeBody(t, resp)

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestClient_TransportErrorExhaustsRetries(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	cfg := defaultConfig()
	cfg.BaseURL = "http://" + addr
	client, err := New(cfg)
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "/v2/companies", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMaxRetriesExceeded)
}

func TestClient_CircuitOpensOnServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}, func(cfg *Config) {
		cfg.Retry.MaxAttempts = 1
		cfg.Circuit.MaxFailures = 2
	})

	for range 2 {
		resp, err := client.Get(context.Background(), "/v2/companies", nil)
		require.NoError(t, err)
		closeBody(t, resp)
	}
	assert.Equal(t, StateOpen, client.CircuitState())

	_, err := client.Get(context.Background(), "/v2/companies", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_ContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Get(ctx, "/v2/companies", nil)
	require.Error(t, err)
}

func TestClient_NewRequest_EncodesQuery(t *testing.T) {
	client, err := New(&Config{ServiceName: "askkodiak", BaseURL: "https://api.askkodiak.com"})
	require.NoError(t, err)

	req, err := client.NewRequest(context.Background(), http.MethodGet, "/v2/companies", url.Values{"page": {"2"}, "companyType": {"carrier"}})
	require.NoError(t, err)

	assert.Equal(t, "https://api.askkodiak.com/v2/companies?companyType=carrier&page=2", req.URL.String())
}

func TestCalculateBackoff(t *testing.T) {
	cfg := defaultConfig()
	cfg.Retry.InitialInterval = 100 * time.Millisecond
	cfg.Retry.MaxInterval = time.Second
	cfg.Retry.JitterFactor = 0.1

	client, err := New(cfg)
	require.NoError(t, err)

	assert.InDelta(t, float64(100*time.Millisecond), float64(client.calculateBackoff(1)), float64(10*time.Millisecond))
	assert.InDelta(t, float64(200*time.Millisecond), float64(client.calculateBackoff(2)), float64(20*time.Millisecond))
	assert.InDelta(t, float64(400*time.Millisecond), float64(client.calculateBackoff(3)), float64(40*time.Millisecond))
	assert.LessOrEqual(t, client.calculateBackoff(10), cfg.Retry.MaxInterval+cfg.Retry.MaxInterval/10)
}

type testNetError struct {
	timeout bool
}

func (e testNetError) Error() string   { return "test net error" }
func (e testNetError) Timeout() bool   { return e.timeout }
func (e testNetError) Temporary() bool { return true }

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil error", nil, false},
		{"context canceled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, false},
		{"server error", &serverError{status: http.StatusBadGateway}, true},
		{"net timeout", testNetError{timeout: true}, true},
		{"net error without timeout", testNetError{timeout: false}, false},
		{"connection refused", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}, true},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, isRetryableError(tt.err))
		})
	}
}
