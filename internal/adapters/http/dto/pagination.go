package dto

// MaxPerPage caps per-page sizes forwarded to Ask Kodiak.
const MaxPerPage = 100

// PageRequest is the page window of a list endpoint. Ask Kodiak pages by
// number, so the gateway forwards both values as-is; zero means "let the
// upstream pick".
type PageRequest struct {
	Page    int `form:"page" json:"page" validate:"gte=0"`
	PerPage int `form:"perPage" json:"perPage" validate:"gte=0,lte=100"`
}

// PageMeta describes the page that was returned.
type PageMeta struct {
	Page    int `json:"page"`
	Pages   int `json:"pages"`
	PerPage int `json:"perPage"`
	Count   int `json:"count"`
}

// HasMore reports whether a later page exists. Pages is a count and Page
// is zero-based, as Ask Kodiak returns them.
func (m PageMeta) HasMore() bool {
	return m.Page+1 < m.Pages
}

// Paginated wraps one page of items.
type Paginated[T any] struct {
	Items   []T      `json:"items"`
	Meta    PageMeta `json:"meta"`
	HasMore bool     `json:"hasMore"`
}

// NewPaginated converts a page of domain values with conv. Items is never
// nil, so empty pages encode as [].
func NewPaginated[D, T any](values []D, meta PageMeta, conv func(D) T) *Paginated[T] {
	items := make([]T, 0, len(values))
	for _, v := range values {
		items = append(items, conv(v))
	}

	return &Paginated[T]{
		Items:   items,
		Meta:    meta,
		HasMore: meta.HasMore(),
	}
}
