package benchmark

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/clients/acl"
	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/clients/pipeline"
)

// productQuery is a typical eligible-products query with delimited lists.
var productQuery = url.Values{
	"geos":         {pipeline.JoinValues("US-MN", "US-HI", "US-WI")},
	"productCodes": {pipeline.JoinValues("BOP", "GL", "WC")},
	"page":         {"2"},
}.Encode()

// BenchmarkRestorePlus measures delimiter restoration on an encoded query.
func BenchmarkRestorePlus(b *testing.B) {
	b.ReportAllocs()

	for b.Loop() {
		_ = pipeline.RestorePlus(productQuery)
	}
}

// BenchmarkRestorePlus_NoDelimiter is the fast path taken by most NAICS calls.
func BenchmarkRestorePlus_NoDelimiter(b *testing.B) {
	query := "hits=10&q=bakery"

	b.ReportAllocs()

	for b.Loop() {
		_ = pipeline.RestorePlus(query)
	}
}

// BenchmarkEditionInjector measures injection on a NAICS suggestion request.
func BenchmarkEditionInjector(b *testing.B) {
	step := pipeline.EditionInjector{Edition: "2022"}

	b.ReportAllocs()

	for b.Loop() {
		req := httptest.NewRequest(http.MethodGet, "https://api.askkodiak.com/v2/suggest/naics-codes?q=bakery", http.NoBody)
		if err := step.Apply(req); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkPipeline_Full runs every built-in step plus basic auth.
func BenchmarkPipeline_Full(b *testing.B) {
	p := pipeline.New(pipeline.Config{
		Edition: "2022",
		Auth:    pipeline.BasicAuth("-Kx9aQ", "secret-key"),
		Steps:   []pipeline.Step{pipeline.Header("User-Agent", "kodiak-bench")},
	})

	b.ReportAllocs()

	for b.Loop() {
		req := httptest.NewRequest(http.MethodGet, "https://api.askkodiak.com/v2/products/class-code/naics/311811?"+productQuery, http.NoBody)
		if err := p.Apply(req); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkNormalizeBody measures error normalization for each message source.
func BenchmarkNormalizeBody(b *testing.B) {
	bodies := map[string][]byte{
		"message": []byte(`{"message":"Code not found","code":"NOT_FOUND"}`),
		"code":    []byte(`{"code":"RATE_LIMIT"}`),
		"reason":  []byte(`<html>Bad Gateway</html>`),
	}

	for name, body := range bodies {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()

			for b.Loop() {
				_ = acl.NormalizeBody(http.StatusNotFound, "Not Found", body)
			}
		})
	}
}
