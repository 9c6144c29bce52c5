package acl

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/clients"
	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/clients/pipeline"
	"github.com/jsamuelsen/askkodiak-gateway/internal/domain"
)

// maxErrorBody bounds how much of an error body is read.
const maxErrorBody = 1 << 20

// NormalizedError is a non-2xx Ask Kodiak response reduced to a status and
// a human readable message.
type NormalizedError struct {
	Status  int
	Message string
}

func (e *NormalizedError) Error() string {
	return fmt.Sprintf("ask kodiak: %d %s", e.Status, e.Message)
}

// Unwrap exposes the domain sentinel matching the status so callers can use
// domain.IsNotFound and friends. Statuses without a domain meaning unwrap to nil.
func (e *NormalizedError) Unwrap() error {
	switch {
	case e.Status == http.StatusNotFound:
		return domain.ErrNotFound
	case e.Status == http.StatusBadRequest, e.Status == http.StatusUnprocessableEntity:
		return domain.ErrValidation
	case e.Status == http.StatusUnauthorized, e.Status == http.StatusForbidden:
		return domain.ErrForbidden
	case e.Status == http.StatusConflict:
		return domain.ErrConflict
	case e.Status == http.StatusTooManyRequests, e.Status >= http.StatusInternalServerError:
		return domain.ErrUnavailable
	default:
		return nil
	}
}

// NormalizeError reads resp's body once and builds a NormalizedError.
// It never fails: unreadable or non-JSON bodies fall back to the reason phrase.
// The caller still owns resp.Body and must close it.
func NormalizeError(resp *http.Response) *NormalizedError {
	if resp == nil {
		return &NormalizedError{Message: "no response"}
	}

	reason := reasonPhrase(resp)
	if resp.Body == nil {
		return &NormalizedError{Status: resp.StatusCode, Message: reason}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return &NormalizedError{Status: resp.StatusCode, Message: reason}
	}

	return NormalizeBody(resp.StatusCode, reason, body)
}

// NormalizeBody picks the message for an error body: a "message" string,
// else a "code" string, else reason. An empty string still wins.
func NormalizeBody(status int, reason string, body []byte) *NormalizedError {
	ne := &NormalizedError{Status: status, Message: reason}

	if !gjson.ValidBytes(body) {
		return ne
	}

	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return ne
	}

	for _, field := range []string{"message", "code"} {
		if v := doc.Get(field); v.Type == gjson.String {
			ne.Message = v.Str
			break
		}
	}

	return ne
}

// reasonPhrase prefers the phrase the server sent, then the standard one.
func reasonPhrase(resp *http.Response) string {
	// resp.Status is "404 Not Found"; the phrase may be absent or non-standard.
	if _, phrase, ok := strings.Cut(resp.Status, " "); ok && strings.TrimSpace(phrase) != "" {
		return strings.TrimSpace(phrase)
	}

	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}

	return "HTTP " + strconv.Itoa(resp.StatusCode)
}

// mapClientError translates a failure that produced no response.
// Construction errors pass through untouched: nothing was sent, and the
// caller needs to see which step refused.
func mapClientError(err error, serviceName, operation string) error {
	switch {
	case pipeline.IsConstructionError(err):
		return err

	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("circuit breaker open during %s", operation))

	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("max retries exceeded during %s", operation))

	default:
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("%s failed: %v", operation, err))
	}
}
