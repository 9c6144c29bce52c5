package acl

import (
	"net/url"
	"strconv"

	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/clients/pipeline"
)

// Query parameter bags for the Ask Kodiak endpoints. Zero values are omitted.
// Multi-valued fields are sent as one "+"-delimited parameter, which the API
// reads as OR: Owners{"ABC123","DEF456"} becomes owners=ABC123+DEF456.

// ProductFilters narrow a product search.
type ProductFilters struct {
	Geos         []string
	ProductCodes []string
	EntityTypes  []string
	Tags         []string

	// Ranges use the API's "min-max" form, e.g. "100000-500000".
	AnnualPayroll     string
	AnnualRevenue     string
	FullTimeEmployees string
	YearsInBusiness   string

	IncludeEligibility bool
	SummaryOnly        bool
	ProductsPerPage    int
	Page               int
}

func (f ProductFilters) encode(v url.Values) {
	setJoined(v, "geos", f.Geos)
	setJoined(v, "productCodes", f.ProductCodes)
	setJoined(v, "entityTypes", f.EntityTypes)
	setJoined(v, "tags", f.Tags)
	setString(v, "annualPayroll", f.AnnualPayroll)
	setString(v, "annualRevenue", f.AnnualRevenue)
	setString(v, "fullTimeEmployees", f.FullTimeEmployees)
	setString(v, "yearsInBusiness", f.YearsInBusiness)
	setBool(v, "includeEligibility", f.IncludeEligibility)
	setBool(v, "summaryOnly", f.SummaryOnly)
	setInt(v, "productsPerPage", f.ProductsPerPage)
	setInt(v, "page", f.Page)
}

// EligibleQuery filters GET /v2/products/class-code/naics/{code}.
type EligibleQuery struct {
	Owners []string
	ProductFilters
}

// Values encodes the query.
func (q EligibleQuery) Values() url.Values {
	v := url.Values{}
	setJoined(v, "owners", q.Owners)
	q.encode(v)

	return v
}

// CompanyQuery filters GET /v2/products/company/{gid}.
type CompanyQuery struct {
	NaicsGroups []string
	NaicsCodes  []string
	ProductFilters
}

// Values encodes the query.
func (q CompanyQuery) Values() url.Values {
	v := url.Values{}
	setJoined(v, "naicsGroups", q.NaicsGroups)
	setJoined(v, "naicsCodes", q.NaicsCodes)
	q.encode(v)

	return v
}

// Classification addresses a code inside a custom taxonomy.
type Classification struct {
	TaxonomyID string
	CodeID     string
}

// UserQuery filters GET /v2/products/user.
type UserQuery struct {
	Owners          []string
	CompanyType     string
	NaicsGroups     []string
	NaicsCodes      []string
	Classifications []Classification
	ProductFilters
}

// Values encodes the query. Classifications are sent as tid:cid pairs.
func (q UserQuery) Values() url.Values {
	v := url.Values{}
	setJoined(v, "owners", q.Owners)
	setString(v, "companyType", q.CompanyType)
	setJoined(v, "naicsGroups", q.NaicsGroups)
	setJoined(v, "naicsCodes", q.NaicsCodes)

	keys := make([]string, 0, len(q.Classifications))
	for _, c := range q.Classifications {
		if c.TaxonomyID != "" && c.CodeID != "" {
			keys = append(keys, pipeline.CompositeKey(c.TaxonomyID, c.CodeID))
		}
	}
	setJoined(v, "classifications", keys)
	q.encode(v)

	return v
}

// ProductQuery shapes GET /v2/product/{id}.
type ProductQuery struct {
	IncludeEligibility bool
	Geos               []string
	NaicsGroups        []string
	NaicsCodes         []string
}

// Values encodes the query.
func (q ProductQuery) Values() url.Values {
	v := url.Values{}
	setBool(v, "includeEligibility", q.IncludeEligibility)
	setJoined(v, "geos", q.Geos)
	setJoined(v, "naicsGroups", q.NaicsGroups)
	setJoined(v, "naicsCodes", q.NaicsCodes)

	return v
}

// SuggestQuery pages GET /v2/suggest/naics-{codes,groups}/{term}.
type SuggestQuery struct {
	// GroupType restricts group suggestions, e.g. "sector" or "industry-group".
	GroupType   string
	HitsPerPage int
	Page        int
}

// Values encodes the query.
func (q SuggestQuery) Values() url.Values {
	v := url.Values{}
	setString(v, "groupType", q.GroupType)
	setInt(v, "hitsPerPage", q.HitsPerPage)
	setInt(v, "page", q.Page)

	return v
}

// CompaniesQuery pages GET /v2/companies.
type CompaniesQuery struct {
	CompanyType      string
	CompaniesPerPage int
	Page             int
}

// Values encodes the query.
func (q CompaniesQuery) Values() url.Values {
	v := url.Values{}
	setString(v, "companyType", q.CompanyType)
	setInt(v, "companiesPerPage", q.CompaniesPerPage)
	setInt(v, "page", q.Page)

	return v
}

func setJoined(v url.Values, key string, values []string) {
	if joined := pipeline.JoinValues(values...); joined != "" {
		v.Set(key, joined)
	}
}

func setString(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func setInt(v url.Values, key string, n int) {
	if n > 0 {
		v.Set(key, strconv.Itoa(n))
	}
}

func setBool(v url.Values, key string, b bool) {
	if b {
		v.Set(key, "true")
	}
}
