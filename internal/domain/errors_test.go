package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{ErrNotFound, ErrConflict, ErrValidation, ErrForbidden, ErrUnavailable}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b)
			}
		}
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		want     string
	}{
		{"not found with id", NewNotFoundError("naics code", "4f1c"), ErrNotFound, `naics code "4f1c" not found`},
		{"not found without id", NewNotFoundError("product", ""), ErrNotFound, "product not found"},
		{"conflict", NewConflictError("company", "duplicate"), ErrConflict, "company conflict: duplicate"},
		{"validation with field", NewValidationError("codes", "at least one code required"), ErrValidation, "invalid codes: at least one code required"},
		{"validation without field", NewValidationError("", "Bad Request"), ErrValidation, "invalid input: Bad Request"},
		{"forbidden", NewForbiddenError("get product", "Unauthorized"), ErrForbidden, "get product forbidden: Unauthorized"},
		{"forbidden without reason", NewForbiddenError("list companies", ""), ErrForbidden, "list companies forbidden"},
		{"unavailable", NewUnavailableError("askkodiak", "circuit breaker open"), ErrUnavailable, "askkodiak unavailable: circuit breaker open"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, tt.sentinel)
		})
	}
}

func TestErrorsAs_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("resolve codes: %w", fmt.Errorf("fetch: %w", NewNotFoundError("naics code", "abc")))

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "abc", notFound.ID)
	assert.True(t, IsNotFound(err))

	var unavailable *UnavailableError
	assert.NotErrorAs(t, err, &unavailable)
}

func TestIsHelpers(t *testing.T) {
	tests := []struct {
		name string
		err  error
		is   func(error) bool
		want bool
	}{
		{"not found typed", NewNotFoundError("company", "1"), IsNotFound, true},
		{"not found wrapped sentinel", fmt.Errorf("x: %w", ErrNotFound), IsNotFound, true},
		{"not found other", ErrConflict, IsNotFound, false},
		{"conflict typed", NewConflictError("company", "dup"), IsConflict, true},
		{"validation typed", NewValidationError("q", "required"), IsValidation, true},
		{"validation nil", nil, IsValidation, false},
		{"forbidden typed", NewForbiddenError("get", ""), IsForbidden, true},
		{"unavailable typed", NewUnavailableError("askkodiak", ""), IsUnavailable, true},
		{"unavailable other", ErrForbidden, IsUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.is(tt.err))
		})
	}
}

func TestNaicsGroup_IsLeaf(t *testing.T) {
	assert.True(t, (&NaicsGroup{Code: "212111"}).IsLeaf())
	assert.False(t, (&NaicsGroup{Code: "21", Descendants: []string{"211", "212"}}).IsLeaf())
}
