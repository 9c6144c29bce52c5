package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/clients"
	"github.com/jsamuelsen/askkodiak-gateway/internal/domain"
	"github.com/jsamuelsen/askkodiak-gateway/internal/platform/logging"
	"github.com/jsamuelsen/askkodiak-gateway/internal/platform/telemetry"
)

// BaseAdapter sends requests through a clients.Client and turns failures
// into domain errors. Embed it in service-specific adapters.
type BaseAdapter struct {
	client      *clients.Client
	serviceName string
	logger      *slog.Logger
}

// NewBaseAdapter returns a BaseAdapter. A nil logger uses slog.Default.
func NewBaseAdapter(client *clients.Client, serviceName string, logger *slog.Logger) BaseAdapter {
	if logger == nil {
		logger = slog.Default()
	}

	return BaseAdapter{client: client, serviceName: serviceName, logger: logger}
}

// ServiceName returns the name of the external service.
func (a *BaseAdapter) ServiceName() string {
	return a.serviceName
}

// Get performs a GET and returns the body of a 2xx response (caller closes).
//
// Error results:
//   - *pipeline.ConstructionError when the request could not be built; nothing was sent
//   - *NormalizedError for any non-2xx response
//   - *domain.UnavailableError for transport failures
func (a *BaseAdapter) Get(ctx context.Context, path string, query url.Values, operation string) (io.ReadCloser, error) {
	a.logger.Log(ctx, logging.LevelTrace, "starting request",
		slog.String("operation", operation),
		slog.String("path", path))

	resp, err := a.client.Get(ctx, path, query)
	if err != nil {
		return nil, mapClientError(err, a.serviceName, operation)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer func() { _ = resp.Body.Close() }()

		ne := NormalizeError(resp)
		telemetry.RecordUpstreamError(ne.Status)
		a.logger.WarnContext(ctx, "ask kodiak returned an error",
			slog.String("operation", operation),
			slog.Int("status", ne.Status),
			slog.String("message", ne.Message))

		return nil, ne
	}

	return resp.Body, nil
}

// fetch performs a GET and decodes the JSON body into T.
func fetch[T any](ctx context.Context, a *BaseAdapter, path string, query url.Values, operation string) (*T, error) {
	body, err := a.Get(ctx, path, query, operation)
	if err != nil {
		return nil, err
	}

	out, err := DecodeResponse[T](body)
	if err != nil {
		return nil, domain.NewUnavailableError(a.serviceName, fmt.Sprintf("%s: %v", operation, err))
	}

	return out, nil
}

// DecodeResponse decodes a JSON body into T and closes it.
func DecodeResponse[T any](body io.ReadCloser) (*T, error) {
	if body == nil {
		return nil, errors.New("response body is nil")
	}
	defer func() { _ = body.Close() }()

	var result T
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &result, nil
}

// ValidateRequired rejects an empty path parameter before anything is sent.
func ValidateRequired(value, fieldName string) error {
	if value == "" {
		return domain.NewValidationError(fieldName, "is required")
	}

	return nil
}

// Translator converts an external DTO into a domain value.
type Translator[External any, Domain any] func(ext *External) (Domain, error)

// TranslateSlice translates every item, stopping at the first failure.
func TranslateSlice[E any, D any](items []E, translate Translator[E, D]) ([]D, error) {
	result := make([]D, 0, len(items))

	for i := range items {
		translated, err := translate(&items[i])
		if err != nil {
			return nil, fmt.Errorf("translating item %d: %w", i, err)
		}

		result = append(result, translated)
	}

	return result, nil
}

// TranslateMap translates every value of a keyed collection.
func TranslateMap[E any, D any](items map[string]E, translate Translator[E, D]) (map[string]D, error) {
	result := make(map[string]D, len(items))

	for key, item := range items {
		translated, err := translate(&item)
		if err != nil {
			return nil, fmt.Errorf("translating %s: %w", key, err)
		}

		result[key] = translated
	}

	return result, nil
}
