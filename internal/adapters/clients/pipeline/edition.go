package pipeline

import (
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

// ParamNaicsEdition is the query parameter that pins the NAICS taxonomy edition.
const ParamNaicsEdition = "naicsEdition"

var (
	schemeHostPattern = regexp.MustCompile(`^https?://[^/]+`)

	// Matches /v2/naics[/...] and /v2/suggest/naics-codes[/<term>].
	editionPathPattern = regexp.MustCompile(`^/v2/(?:naics(?:/.*)?|suggest/naics-codes(?:/.+)?)$`)
)

// MatchesEditionPath reports whether target addresses an edition-aware endpoint.
// target may be a bare path or an absolute URL, with or without a query.
func MatchesEditionPath(target string) bool {
	path := schemeHostPattern.ReplaceAllString(target, "")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}

	return editionPathPattern.MatchString(path)
}

// EditionInjector appends naicsEdition to edition-aware requests.
// An empty Edition disables the step. A value already on the request wins.
type EditionInjector struct {
	Edition string
}

// Apply implements Step. It never fails and is idempotent.
func (e EditionInjector) Apply(req *http.Request) error {
	if e.Edition == "" || req.URL == nil {
		return nil
	}

	if !MatchesEditionPath(req.URL.Path) {
		return nil
	}

	if hasParam(req.URL.RawQuery, ParamNaicsEdition) {
		return nil
	}

	param := ParamNaicsEdition + "=" + url.QueryEscape(e.Edition)
	if req.URL.RawQuery == "" {
		req.URL.RawQuery = param
	} else {
		req.URL.RawQuery += "&" + param
	}

	return nil
}

// hasParam checks for name without decoding values, so restored "+"
// delimiters are never touched.
func hasParam(rawQuery, name string) bool {
	for pair := range strings.SplitSeq(rawQuery, "&") {
		key, _, _ := strings.Cut(pair, "=")
		if decoded, err := url.QueryUnescape(key); err == nil {
			key = decoded
		}

		if key == name {
			return true
		}
	}

	return false
}
