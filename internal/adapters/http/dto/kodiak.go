package dto

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/jsamuelsen/askkodiak-gateway/internal/domain"
	"github.com/jsamuelsen/askkodiak-gateway/internal/ports"
)

// SplitList flattens repeated and comma separated query values:
// ?hashes=a,b&hashes=c yields [a b c]. Blank entries are dropped.
func SplitList(values []string) []string {
	var out []string

	for _, v := range values {
		for part := range strings.SplitSeq(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}

	return out
}

// Requests

// SuggestRequest is the query of GET /naics/suggest.
type SuggestRequest struct {
	Q           string `form:"q" validate:"required,notblank"`
	GroupType   string `form:"groupType"`
	Page        int    `form:"page" validate:"gte=0"`
	HitsPerPage int    `form:"hitsPerPage" validate:"gte=0,lte=100"`
}

// Options converts the request to port options.
func (r *SuggestRequest) Options() ports.SuggestOptions {
	return ports.SuggestOptions{GroupType: r.GroupType, Page: r.Page, HitsPerPage: r.HitsPerPage}
}

// SearchRequest is the query of GET /naics/search.
type SearchRequest struct {
	Q     string `form:"q" validate:"required,notblank"`
	Limit int    `form:"limit" validate:"gte=0,lte=100"`
}

// ResolveRequest is the query of GET /naics/codes. Call Normalize before
// validating so comma separated values count individually.
type ResolveRequest struct {
	Hashes []string `form:"hashes" validate:"min=1,max=100"`
}

// Normalize splits comma separated hashes in place.
func (r *ResolveRequest) Normalize() {
	r.Hashes = SplitList(r.Hashes)
}

// ProductRequest is the query of GET /products/:id.
type ProductRequest struct {
	Eligibility bool     `form:"eligibility"`
	Geos        []string `form:"geos"`
}

// Options converts the request to port options.
func (r *ProductRequest) Options() ports.ProductOptions {
	return ports.ProductOptions{IncludeEligibility: r.Eligibility, Geos: SplitList(r.Geos)}
}

// EligibilityReportRequest is the body of POST /products/:id/eligibility.
type EligibilityReportRequest struct {
	Codes []string `json:"codes" validate:"min=1,dive,naics"`
}

// EligibleProductsRequest is the query of GET /products/eligible/:code.
type EligibleProductsRequest struct {
	Owners      []string `form:"owners"`
	Geos        []string `form:"geos"`
	EntityTypes []string `form:"entityTypes"`
	Summary     bool     `form:"summary"`
	PageRequest
}

// Options converts the request to port options.
func (r *EligibleProductsRequest) Options() ports.EligibleOptions {
	return ports.EligibleOptions{
		Owners:      SplitList(r.Owners),
		Geos:        SplitList(r.Geos),
		EntityTypes: SplitList(r.EntityTypes),
		SummaryOnly: r.Summary,
		Page:        r.Page,
		PerPage:     r.PerPage,
	}
}

// CompanyListRequest is the query of GET /companies.
type CompanyListRequest struct {
	Type string `form:"type"`
	PageRequest
}

// Options converts the request to port options.
func (r *CompanyListRequest) Options() ports.CompanyListOptions {
	return ports.CompanyListOptions{CompanyType: r.Type, Page: r.Page, PerPage: r.PerPage}
}

// Responses

// NaicsCodeResponse is a NAICS code.
type NaicsCodeResponse struct {
	Hash        string `json:"hash"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// NewNaicsCodeResponse converts a domain code.
func NewNaicsCodeResponse(c domain.NaicsCode) NaicsCodeResponse {
	return NaicsCodeResponse{Hash: c.Hash, Code: c.Code, Description: c.Description}
}

// NaicsGroupResponse is a node of the NAICS hierarchy.
type NaicsGroupResponse struct {
	Code        string   `json:"code"`
	Title       string   `json:"title"`
	Type        string   `json:"type,omitempty"`
	Parent      string   `json:"parent,omitempty"`
	Seq         string   `json:"seq,omitempty"`
	Codes       []string `json:"codes"`
	Descendants []string `json:"descendants"`
	Leaf        bool     `json:"leaf"`
}

// NewNaicsGroupResponse converts a domain group.
func NewNaicsGroupResponse(g *domain.NaicsGroup) NaicsGroupResponse {
	return NaicsGroupResponse{
		Code:        g.Code,
		Title:       g.Title,
		Type:        g.Type,
		Parent:      g.Parent,
		Seq:         g.Seq,
		Codes:       orEmpty(g.Codes),
		Descendants: orEmpty(g.Descendants),
		Leaf:        g.IsLeaf(),
	}
}

// CodeSuggestionResponse is one code hit of a suggestion search.
type CodeSuggestionResponse struct {
	Hash        string   `json:"hash"`
	Code        string   `json:"code"`
	Description string   `json:"description"`
	SIC         string   `json:"sic,omitempty"`
	Path        []string `json:"path,omitempty"`
	Sector      string   `json:"sector,omitempty"`
	Subsector   string   `json:"subsector,omitempty"`
	ReplacedBy  []string `json:"replacedBy,omitempty"`
	Replaces    []string `json:"replaces,omitempty"`
}

// GroupSuggestionResponse is one group hit of a suggestion search.
type GroupSuggestionResponse struct {
	Code        string   `json:"code"`
	Title       string   `json:"title"`
	Seq         string   `json:"seq,omitempty"`
	Descendants []string `json:"descendants,omitempty"`
}

// SuggestionPageResponse is one page of hits.
type SuggestionPageResponse[T any] struct {
	Hits        []T `json:"hits"`
	TotalHits   int `json:"totalHits"`
	Page        int `json:"page"`
	Pages       int `json:"pages"`
	HitsPerPage int `json:"hitsPerPage"`
}

// SuggestionsResponse combines code and group suggestions for one term.
type SuggestionsResponse struct {
	Term   string                                           `json:"term"`
	Codes  *SuggestionPageResponse[CodeSuggestionResponse]  `json:"codes"`
	Groups *SuggestionPageResponse[GroupSuggestionResponse] `json:"groups"`
}

// NewSuggestionsResponse converts domain suggestions.
func NewSuggestionsResponse(s *domain.Suggestions) SuggestionsResponse {
	codes := newSuggestionPage(s.Codes, func(h domain.NaicsCodeSuggestion) CodeSuggestionResponse {
		return CodeSuggestionResponse{
			Hash:        h.Hash,
			Code:        h.Code,
			Description: h.Description,
			SIC:         h.SIC,
			Path:        h.Path,
			Sector:      h.Sector,
			Subsector:   h.Subsector,
			ReplacedBy:  h.ReplacedBy,
			Replaces:    h.Replaces,
		}
	})

	groups := newSuggestionPage(s.Groups, func(h domain.NaicsGroupSuggestion) GroupSuggestionResponse {
		return GroupSuggestionResponse{Code: h.Code, Title: h.Title, Seq: h.Seq, Descendants: h.Descendants}
	})

	return SuggestionsResponse{Term: s.Term, Codes: codes, Groups: groups}
}

func newSuggestionPage[D, T any](p *domain.SuggestionPage[D], conv func(D) T) *SuggestionPageResponse[T] {
	if p == nil {
		return nil
	}

	hits := make([]T, 0, len(p.Hits))
	for _, h := range p.Hits {
		hits = append(hits, conv(h))
	}

	return &SuggestionPageResponse[T]{
		Hits:        hits,
		TotalHits:   p.TotalHits,
		Page:        p.Page,
		Pages:       p.Pages,
		HitsPerPage: p.HitsPerPage,
	}
}

// CodeMatchResponse is a fuzzy search hit.
type CodeMatchResponse struct {
	NaicsCodeResponse
	Score int `json:"score"`
}

// NewCodeMatchResponses converts search hits, keeping their order.
func NewCodeMatchResponses(matches []domain.CodeMatch) []CodeMatchResponse {
	out := make([]CodeMatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, CodeMatchResponse{NaicsCodeResponse: NewNaicsCodeResponse(m.NaicsCode), Score: m.Score})
	}

	return out
}

// ResolutionResponse answers a batch hash lookup.
type ResolutionResponse struct {
	Codes   []NaicsCodeResponse `json:"codes"`
	Missing []string            `json:"missing"`
}

// NewResolutionResponse converts a domain resolution.
func NewResolutionResponse(r *domain.Resolution) ResolutionResponse {
	codes := make([]NaicsCodeResponse, 0, len(r.Codes))
	for _, c := range r.Codes {
		codes = append(codes, NewNaicsCodeResponse(c))
	}

	return ResolutionResponse{Codes: codes, Missing: orEmpty(r.Missing)}
}

// ProductResponse is an insurance product.
type ProductResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	OwnerID      string   `json:"ownerId,omitempty"`
	OwnerType    string   `json:"ownerType,omitempty"`
	Admitted     *bool    `json:"admitted,omitempty"`
	CoverageType []string `json:"coverageType,omitempty"`
	Highlights   []string `json:"highlights,omitempty"`
	Geos         []string `json:"geos,omitempty"`
	Eligible     *bool    `json:"eligible,omitempty"`
	Score        int      `json:"score,omitempty"`
}

// NewProductResponse converts a domain product.
func NewProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		OwnerID:      p.OwnerID,
		OwnerType:    p.OwnerType,
		Admitted:     p.Admitted,
		CoverageType: p.CoverageType,
		Highlights:   p.Highlights,
		Geos:         p.Geos,
		Eligible:     p.Eligible,
		Score:        p.Score,
	}
}

// EligibleProductsResponse is a page of products eligible for one code.
type EligibleProductsResponse struct {
	Code        string `json:"code"`
	Hash        string `json:"hash,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	*Paginated[ProductResponse]
}

// NewEligibleProductsResponse converts a domain product page.
func NewEligibleProductsResponse(p *domain.ProductPage) EligibleProductsResponse {
	meta := PageMeta{Page: p.Page, Pages: p.Pages, PerPage: p.PerPage, Count: p.Count}

	return EligibleProductsResponse{
		Code:        p.Code,
		Hash:        p.Hash,
		Description: p.Description,
		Type:        p.Type,
		Paginated:   NewPaginated(p.Products, meta, NewProductResponse),
	}
}

// EligibilityResponse answers one product/code question.
type EligibilityResponse struct {
	ProductID              string  `json:"productId"`
	Code                   string  `json:"code"`
	Eligible               bool    `json:"eligible"`
	PercentOfCodesEligible float64 `json:"percentOfCodesEligible,omitempty"`
}

// NewEligibilityResponse converts a domain eligibility.
func NewEligibilityResponse(e domain.Eligibility) EligibilityResponse {
	return EligibilityResponse{
		ProductID:              e.ProductID,
		Code:                   e.Code,
		Eligible:               e.Eligible,
		PercentOfCodesEligible: e.PercentOfCodesEligible,
	}
}

// EligibilityReportResponse answers one product against many codes.
type EligibilityReportResponse struct {
	ProductID  string                `json:"productId"`
	Results    []EligibilityResponse `json:"results"`
	Eligible   []string              `json:"eligible"`
	Ineligible []string              `json:"ineligible"`
}

// NewEligibilityReportResponse converts a domain report.
func NewEligibilityReportResponse(r *domain.EligibilityReport) EligibilityReportResponse {
	results := make([]EligibilityResponse, 0, len(r.Results))
	for _, e := range r.Results {
		results = append(results, NewEligibilityResponse(e))
	}

	return EligibilityReportResponse{
		ProductID:  r.ProductID,
		Results:    results,
		Eligible:   orEmpty(r.Eligible),
		Ineligible: orEmpty(r.Ineligible),
	}
}

// NaicsDescriptionResponse is the long form text of a NAICS group.
type NaicsDescriptionResponse struct {
	Group       string `json:"group"`
	Description string `json:"description"`
}

// NewNaicsDescriptionResponse converts a domain description.
func NewNaicsDescriptionResponse(d domain.NaicsDescription) NaicsDescriptionResponse {
	return NaicsDescriptionResponse{Group: d.Group, Description: d.Text}
}

// GroupEligibilityResponse answers one product against every group of a
// hierarchy level. Groups are ordered by code.
type GroupEligibilityResponse struct {
	ProductID string                `json:"productId"`
	Type      string                `json:"type"`
	Groups    []EligibilityResponse `json:"groups"`
}

// NewGroupEligibilityResponse converts eligibility keyed by group code.
func NewGroupEligibilityResponse(productID, groupType string, groups map[string]domain.Eligibility) GroupEligibilityResponse {
	out := make([]EligibilityResponse, 0, len(groups))
	for _, code := range slices.Sorted(maps.Keys(groups)) {
		out = append(out, NewEligibilityResponse(groups[code]))
	}

	return GroupEligibilityResponse{ProductID: productID, Type: groupType, Groups: out}
}

// CompanyResponse is a carrier, agency or other market participant.
type CompanyResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	ShortName   string     `json:"shortName,omitempty"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Website     string     `json:"website,omitempty"`
	Logo        string     `json:"logo,omitempty"`
	NAIC        string     `json:"naic,omitempty"`
	IsCarrier   bool       `json:"isCarrier"`
	Joined      *time.Time `json:"joined,omitempty"`
	Products    []string   `json:"products,omitempty"`
}

// NewCompanyResponse converts a domain company. A zero Joined is omitted.
func NewCompanyResponse(c domain.Company) CompanyResponse {
	resp := CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		ShortName:   c.ShortName,
		Description: c.Description,
		Location:    c.Location,
		Phone:       c.Phone,
		Website:     c.Website,
		Logo:        c.Logo,
		NAIC:        c.NAIC,
		IsCarrier:   c.IsCarrier,
		Products:    c.Products,
	}

	if !c.Joined.IsZero() {
		joined := c.Joined.UTC()
		resp.Joined = &joined
	}

	return resp
}

// NewCompanyPageResponse converts a domain company page.
func NewCompanyPageResponse(p *domain.CompanyPage) *Paginated[CompanyResponse] {
	return NewPaginated(p.Companies,
		PageMeta{Page: p.Page, Pages: p.Pages, PerPage: p.PerPage, Count: p.Count},
		NewCompanyResponse)
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
