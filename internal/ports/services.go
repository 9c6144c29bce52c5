// Package ports defines the contracts the application layer depends on.
// Adapters implement them; app code never sees HTTP, DTOs or transport errors.
package ports

import (
	"context"

	"github.com/jsamuelsen/askkodiak-gateway/internal/domain"
)

// SuggestOptions pages a suggestion search.
type SuggestOptions struct {
	// GroupType restricts group suggestions, e.g. "sector".
	GroupType   string
	Page        int
	HitsPerPage int
}

// ProductOptions shapes a single product lookup.
type ProductOptions struct {
	IncludeEligibility bool
	Geos               []string
}

// EligibleOptions filters a products-by-code search. Slices are ORed.
type EligibleOptions struct {
	Owners      []string
	Geos        []string
	EntityTypes []string
	SummaryOnly bool
	Page        int
	PerPage     int
}

// CompanyListOptions pages the company directory.
type CompanyListOptions struct {
	CompanyType string
	Page        int
	PerPage     int
}

// ClassificationClient is the NAICS and product eligibility catalogue.
//
// Errors are domain errors: a missing code or product satisfies
// domain.IsNotFound, an unreachable or throttling upstream satisfies
// domain.IsUnavailable.
type ClassificationClient interface {
	GetNaicsCode(ctx context.Context, hash string) (*domain.NaicsCode, error)
	ListNaicsCodes(ctx context.Context) (map[string]domain.NaicsCode, error)
	GetNaicsGroup(ctx context.Context, group string) (*domain.NaicsGroup, error)
	SuggestNaicsCodes(ctx context.Context, term string, opts SuggestOptions) (*domain.SuggestionPage[domain.NaicsCodeSuggestion], error)
	SuggestNaicsGroups(ctx context.Context, term string, opts SuggestOptions) (*domain.SuggestionPage[domain.NaicsGroupSuggestion], error)

	GetProduct(ctx context.Context, id string, opts ProductOptions) (*domain.Product, error)
	CheckEligibility(ctx context.Context, productID, code string) (*domain.Eligibility, error)
	ProductsEligibleForCode(ctx context.Context, code string, opts EligibleOptions) (*domain.ProductPage, error)

	GetCompany(ctx context.Context, id string) (*domain.Company, error)
	ListCompanies(ctx context.Context, opts CompanyListOptions) (*domain.CompanyPage, error)
	BusinessEntityTypes(ctx context.Context) (map[string]string, error)
}
