package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/clients/pipeline"
	"github.com/jsamuelsen/askkodiak-gateway/internal/platform/config"
	"github.com/jsamuelsen/askkodiak-gateway/internal/platform/logging"
	"github.com/jsamuelsen/askkodiak-gateway/internal/platform/telemetry"
)

const (
	instrumentationName = "github.com/jsamuelsen/askkodiak-gateway/internal/adapters/clients"

	httpStatusCategoryDivisor = 100

	defaultTimeout = 30 * time.Second

	defaultJitterFactor = 0.25

	// jitterRangeMultiplier converts rand [0,1) to [-1,1) for symmetric jitter.
	jitterRangeMultiplier = 2

	// drainLimit bounds how much of a discarded body is read to keep the connection reusable.
	drainLimit = 64 << 10
)

// Config configures an HTTP client instance.
type Config struct {
	// BaseURL is the scheme and host all paths are resolved against.
	BaseURL string

	// ServiceName identifies the downstream service in logs, spans and metrics.
	ServiceName string

	// Timeout is the per-attempt timeout.
	Timeout time.Duration

	Retry     config.RetryConfig
	Circuit   config.CircuitBreakerConfig
	Transport config.TransportConfig

	// Pipeline runs over every request before it is sent. Optional.
	Pipeline *pipeline.Pipeline

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Client is an instrumented HTTP client for a downstream API.
// Requests go through the configured pipeline, the circuit breaker and a
// retry loop; each call is traced, measured and logged.
type Client struct {
	http        *http.Client
	baseURL     string
	serviceName string
	cfg         *Config
	pipeline    *pipeline.Pipeline
	logger      *slog.Logger
	cb          *CircuitBreaker

	tracer          trace.Tracer
	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
}

// New creates a new instrumented HTTP client.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	if cfg.Retry.MaxAttempts < 1 {
		cfg.Retry.MaxAttempts = 1
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(
		slog.String("component", "clients.Client"),
		slog.String("downstream", cfg.ServiceName),
	)

	cb := NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures:   cfg.Circuit.MaxFailures,
		Timeout:       cfg.Circuit.Timeout,
		HalfOpenLimit: cfg.Circuit.HalfOpenLimit,
	})
	cb.OnStateChange(func(from, to State) {
		logger.Warn("circuit breaker state changed",
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
	})

	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("Duration of HTTP client requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration metric: %w", err)
	}

	requestTotal, err := meter.Int64Counter(
		"http.client.request.total",
		metric.WithDescription("Total number of HTTP client requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	return &Client{
		http:            &http.Client{Timeout: cfg.Timeout, Transport: newTransport(cfg.Transport)},
		baseURL:         strings.TrimSuffix(cfg.BaseURL, "/"),
		serviceName:     cfg.ServiceName,
		cfg:             cfg,
		pipeline:        cfg.Pipeline,
		logger:          logger,
		cb:              cb,
		tracer:          otel.Tracer(instrumentationName),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}, nil
}

func newTransport(cfg config.TransportConfig) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.MaxIdleConns > 0 {
		t.MaxIdleConns = cfg.MaxIdleConns
	}
	if cfg.MaxIdleConnsPerHost > 0 {
		t.MaxIdleConnsPerHost = cfg.MaxIdleConnsPerHost
	}
	if cfg.IdleConnTimeout > 0 {
		t.IdleConnTimeout = cfg.IdleConnTimeout
	}

	return t
}

// Do sends req after running it through the pipeline.
//
// A pipeline failure is returned as *pipeline.ConstructionError and nothing is
// sent. A 5xx response that survives every retry is returned as a response,
// not an error, so callers can decode the body.
//
// Retries only rewind bodies when req.GetBody is set.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	startTime := time.Now()
	logger := logging.FromContext(ctx).With(
		slog.String("downstream", c.serviceName),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	c.injectHeaders(ctx, req)

	if err := c.pipeline.Apply(req); err != nil {
		var ce *pipeline.ConstructionError
		if errors.As(err, &ce) {
			telemetry.RecordPipelineRejection(ce.Step)
		}
		c.recordMetrics(ctx, req.Method, 0, time.Since(startTime), "construction_error")
		logger.Warn("request not sent", slog.Any("error", err))

		return nil, err
	}

	if !c.cb.Allow() {
		c.recordMetrics(ctx, req.Method, 0, time.Since(startTime), "circuit_open")
		logger.Warn("request blocked by circuit breaker")

		return nil, ErrCircuitOpen
	}

	ctx, span := c.tracer.Start(ctx, fmt.Sprintf("HTTP %s %s", req.Method, c.serviceName),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.Redacted()),
			attribute.String("peer.service", c.serviceName),
		),
	)
	defer span.End()

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	logger.Log(ctx, logging.LevelTrace, "sending request",
		slog.String("url", req.URL.String()),
		slog.Any("headers", req.Header),
	)

	resp, err := c.executeWithRetry(ctx, req, logger)

	return c.recordResult(ctx, req, resp, err, span, logger, startTime)
}

// serverError marks a 5xx attempt as retryable.
type serverError struct {
	status int
}

func (e *serverError) Error() string {
	return fmt.Sprintf("server error: %d", e.status)
}

// executeWithRetry sends req until it gets a non-5xx response, a
// non-retryable error, or runs out of attempts.
func (c *Client) executeWithRetry(ctx context.Context, req *http.Request, logger *slog.Logger) (*http.Response, error) {
	var last *http.Response

	resp, err := retry.DoWithData(
		func() (*http.Response, error) {
			if last != nil {
				discard(last)
				last = nil
			}

			attempt, err := rewind(ctx, req)
			if err != nil {
				return nil, retry.Unrecoverable(err)
			}

			resp, err := c.http.Do(attempt)
			if err != nil {
				return nil, err
			}

			if resp.StatusCode >= http.StatusInternalServerError {
				last = resp
				return nil, &serverError{status: resp.StatusCode}
			}

			return resp, nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.cfg.Retry.MaxAttempts)),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryableError),
		retry.DelayType(func(n uint, _ error, _ *retry.Config) time.Duration {
			return c.calculateBackoff(int(n) + 1)
		}),
		retry.OnRetry(func(n uint, err error) {
			logger.Debug("retrying request",
				slog.Int("attempt", int(n)+1),
				slog.Any("error", err),
			)
		}),
	)

	var se *serverError
	if errors.As(err, &se) && last != nil {
		return last, nil
	}

	if last != nil {
		discard(last)
	}

	return resp, err
}

// rewind prepares a fresh attempt, restoring the body when possible.
func rewind(ctx context.Context, req *http.Request) (*http.Request, error) {
	attempt := req.WithContext(ctx)
	if req.GetBody == nil {
		return attempt, nil
	}

	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("rewinding request body: %w", err)
	}
	attempt.Body = body

	return attempt, nil
}

func discard(resp *http.Response) {
	_, _ = io.CopyN(io.Discard, resp.Body, drainLimit)
	_ = resp.Body.Close()
}

// recordResult updates the circuit breaker, span and metrics for a finished call.
func (c *Client) recordResult(
	ctx context.Context,
	req *http.Request,
	resp *http.Response,
	lastErr error,
	span trace.Span,
	logger *slog.Logger,
	startTime time.Time,
) (*http.Response, error) {
	duration := time.Since(startTime)

	if lastErr != nil {
		c.cb.RecordFailure()
		span.SetStatus(codes.Error, lastErr.Error())

		if errors.Is(lastErr, context.Canceled) || errors.Is(lastErr, context.DeadlineExceeded) {
			c.recordMetrics(ctx, req.Method, 0, duration, "context_canceled")
			return nil, lastErr
		}

		c.recordMetrics(ctx, req.Method, 0, duration, "error")
		logger.Error("request failed",
			slog.Duration("duration", duration),
			slog.Any("error", lastErr),
		)

		return nil, fmt.Errorf("%w: %w", ErrMaxRetriesExceeded, lastErr)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		c.cb.RecordFailure()
	} else {
		c.cb.RecordSuccess()
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	statusCategory := fmt.Sprintf("%dxx", resp.StatusCode/httpStatusCategoryDivisor)
	c.recordMetrics(ctx, req.Method, resp.StatusCode, duration, statusCategory)

	logger.Debug("request completed",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", duration),
	)

	return resp, nil
}

// Get performs a GET request. query is encoded with url.Values.Encode, the
// first stage of request construction; the pipeline does the rest.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	req, err := c.NewRequest(ctx, http.MethodGet, path, query)
	if err != nil {
		return nil, err
	}

	return c.Do(ctx, req)
}

// NewRequest builds a JSON request against the base URL.
func (c *Client) NewRequest(ctx context.Context, method, path string, query url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

// CircuitState returns the current state of the circuit breaker.
func (c *Client) CircuitState() State {
	return c.cb.State()
}

// ServiceName returns the downstream service name.
func (c *Client) ServiceName() string {
	return c.serviceName
}

// injectHeaders propagates request and correlation IDs.
func (c *Client) injectHeaders(ctx context.Context, req *http.Request) {
	if requestID := logging.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(logging.HeaderRequestID, requestID)
	}

	if correlationID := logging.CorrelationIDFromContext(ctx); correlationID != "" {
		req.Header.Set(logging.HeaderCorrelationID, correlationID)
	}
}

func (c *Client) buildURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}

// calculateBackoff returns initial * multiplier^(attempt-1), capped at the max
// interval, with symmetric jitter.
func (c *Client) calculateBackoff(attempt int) time.Duration {
	retryCfg := c.cfg.Retry

	multiplier := retryCfg.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}

	backoff := float64(retryCfg.InitialInterval) * math.Pow(multiplier, float64(attempt-1))
	if retryCfg.MaxInterval > 0 && backoff > float64(retryCfg.MaxInterval) {
		backoff = float64(retryCfg.MaxInterval)
	}

	jitterFactor := retryCfg.JitterFactor
	if jitterFactor <= 0 {
		jitterFactor = defaultJitterFactor
	}

	jitter := rand.Float64()*jitterRangeMultiplier - 1 //nolint:gosec // jitter does not need crypto randomness
	backoff += backoff * jitterFactor * jitter

	return time.Duration(backoff)
}

func (c *Client) recordMetrics(ctx context.Context, method string, statusCode int, duration time.Duration, result string) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("peer.service", c.serviceName),
		attribute.String("result", result),
	}

	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	c.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	c.requestTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// isRetryableError reports whether another attempt may succeed.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var se *serverError
	if errors.As(err, &se) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError

	return errors.As(err, &opErr)
}
