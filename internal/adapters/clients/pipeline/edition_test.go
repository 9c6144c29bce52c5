package pipeline

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(t *testing.T, target string) *http.Request {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, target, http.NoBody)
	require.NoError(t, err)

	return req
}

func TestMatchesEditionPath(t *testing.T) {
	tests := []struct {
		target   string
		expected bool
	}{
		{"/v2/naics", true},
		{"/v2/naics/codes", true},
		{"/v2/naics/code/abc123", true},
		{"/v2/naics/group/31-33", true},
		{"https://api.example.com/v2/naics/code/212111?x=1", true},
		{"http://localhost:8080/v2/naics/codes", true},
		{"/v2/suggest/naics-codes", true},
		{"/v2/suggest/naics-codes/bakery", true},
		{"/v2/suggest/naics-codes/bakery?hitsPerPage=5", true},
		{"/v2/suggest/naics-groups/bakery", false},
		{"/v2/suggest/geo/94107", false},
		{"/v2/product/abc", false},
		{"/v2/products/class-code/naics/722513", false},
		{"/v2/companies", false},
		{"/v2/naicsx", false},
		{"/v1/naics/codes", false},
		{"https://api.example.com/v2/companies?naics=1", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchesEditionPath(tt.target))
		})
	}
}

func TestEditionInjector_QualifyingPaths(t *testing.T) {
	targets := []string{
		"/v2/naics/codes",
		"https://api.example.com/v2/naics/code/212111?x=1",
		"/v2/suggest/naics-codes/bakery",
	}

	for _, target := range targets {
		t.Run(target, func(t *testing.T) {
			req := newRequest(t, target)

			require.NoError(t, EditionInjector{Edition: "2022"}.Apply(req))

			assert.Equal(t, []string{"2022"}, req.URL.Query()[ParamNaicsEdition])
		})
	}
}

func TestEditionInjector_KeepsExistingQuery(t *testing.T) {
	req := newRequest(t, "https://api.example.com/v2/naics/code/212111?x=1")

	require.NoError(t, EditionInjector{Edition: "2022"}.Apply(req))

	assert.Equal(t, "x=1&naicsEdition=2022", req.URL.RawQuery)
}

func TestEditionInjector_NonQualifyingPaths(t *testing.T) {
	targets := []string{
		"/v2/suggest/naics-groups/bakery",
		"/v2/product/abc",
		"/v2/companies",
	}

	for _, target := range targets {
		t.Run(target, func(t *testing.T) {
			req := newRequest(t, target)

			require.NoError(t, EditionInjector{Edition: "2022"}.Apply(req))

			assert.False(t, req.URL.Query().Has(ParamNaicsEdition))
		})
	}
}

func TestEditionInjector_CallerValueWins(t *testing.T) {
	req := newRequest(t, "/v2/naics/codes?naicsEdition=2017")

	require.NoError(t, EditionInjector{Edition: "2022"}.Apply(req))

	assert.Equal(t, []string{"2017"}, req.URL.Query()[ParamNaicsEdition])
}

func TestEditionInjector_EmptyValueCountsAsPresent(t *testing.T) {
	req := newRequest(t, "/v2/naics/codes?naicsEdition=")

	require.NoError(t, EditionInjector{Edition: "2022"}.Apply(req))

	assert.Equal(t, "naicsEdition=", req.URL.RawQuery)
}

func TestEditionInjector_Disabled(t *testing.T) {
	targets := []string{
		"/v2/naics/codes",
		"/v2/suggest/naics-codes/bakery",
		"/v2/companies",
	}

	for _, target := range targets {
		req := newRequest(t, target)

		require.NoError(t, EditionInjector{}.Apply(req))

		assert.False(t, req.URL.Query().Has(ParamNaicsEdition), target)
	}
}

func TestEditionInjector_Idempotent(t *testing.T) {
	editions := []string{"", "2017", "2022"}
	targets := []string{
		"/v2/naics/codes",
		"/v2/naics/codes?naicsEdition=2012",
		"/v2/suggest/naics-codes/bakery?page=1",
		"/v2/suggest/naics-groups/bakery",
		"/v2/product/abc",
	}

	for _, edition := range editions {
		for _, target := range targets {
			once := newRequest(t, target)
			twice := newRequest(t, target)
			step := EditionInjector{Edition: edition}

			require.NoError(t, step.Apply(once))
			require.NoError(t, step.Apply(twice))
			require.NoError(t, step.Apply(twice))

			assert.Equal(t, once.URL.RawQuery, twice.URL.RawQuery, "edition=%q target=%q", edition, target)
			assert.LessOrEqual(t, len(twice.URL.Query()[ParamNaicsEdition]), 1)
		}
	}
}

func TestEditionInjector_EscapesEdition(t *testing.T) {
	req := newRequest(t, "/v2/naics/codes")

	require.NoError(t, EditionInjector{Edition: "2022 rev"}.Apply(req))

	assert.Equal(t, "naicsEdition=2022+rev", req.URL.RawQuery)
}
