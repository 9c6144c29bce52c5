package pipeline

import (
	"net/http"
	"strings"
)

const (
	// ValueDelimiter separates multiple values packed into one query parameter.
	// The API has no escape for a literal "+" inside a single value.
	ValueDelimiter = "+"

	// EscapedDelimiter is what url.Values.Encode turns ValueDelimiter into.
	EscapedDelimiter = "%2B"

	// KeySeparator joins the two halves of a composite key (tid:cid).
	KeySeparator = ":"
)

// JoinValues packs values into a single "+"-delimited parameter value.
// Empty values are dropped.
func JoinValues(values ...string) string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			kept = append(kept, v)
		}
	}

	return strings.Join(kept, ValueDelimiter)
}

// CompositeKey addresses a nested resource, e.g. a code inside a taxonomy.
func CompositeKey(taxonomyID, codeID string) string {
	return taxonomyID + KeySeparator + codeID
}

// RestorePlus rewrites every %2B inside a query value back to a literal "+".
// Parameter names and every other escape sequence are left as they are.
func RestorePlus(rawQuery string) string {
	if !strings.Contains(rawQuery, EscapedDelimiter) {
		return rawQuery
	}

	pairs := strings.Split(rawQuery, "&")
	for i, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}

		pairs[i] = name + "=" + strings.ReplaceAll(value, EscapedDelimiter, ValueDelimiter)
	}

	return strings.Join(pairs, "&")
}

// QueryEncoder is the step that preserves "+" delimiters on the wire.
// It must run after the query has been encoded into URL.RawQuery.
type QueryEncoder struct{}

// Apply implements Step. It never fails.
func (QueryEncoder) Apply(req *http.Request) error {
	if req.URL == nil {
		return nil
	}

	req.URL.RawQuery = RestorePlus(req.URL.RawQuery)

	return nil
}
