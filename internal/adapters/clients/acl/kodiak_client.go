package acl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/clients"
	"github.com/jsamuelsen/askkodiak-gateway/internal/domain"
	"github.com/jsamuelsen/askkodiak-gateway/internal/platform/logging"
	"github.com/jsamuelsen/askkodiak-gateway/internal/ports"
)

// ServiceName identifies Ask Kodiak in errors, logs and health checks.
const ServiceName = "askkodiak"

// KodiakClientConfig configures a KodiakClient.
type KodiakClientConfig struct {
	// Client must carry the Ask Kodiak pipeline (edition, basic auth).
	Client *clients.Client

	Logger *slog.Logger
}

// KodiakClient is the typed Ask Kodiak v2 API. It implements
// ports.ClassificationClient and ports.HealthChecker.
type KodiakClient struct {
	BaseAdapter
}

var (
	_ ports.ClassificationClient = (*KodiakClient)(nil)
	_ ports.HealthChecker        = (*KodiakClient)(nil)
)

// NewKodiakClient panics if cfg.Client is nil.
func NewKodiakClient(cfg KodiakClientConfig) *KodiakClient {
	if cfg.Client == nil {
		panic("KodiakClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &KodiakClient{
		BaseAdapter: NewBaseAdapter(cfg.Client, ServiceName, logger.With(slog.String("adapter", ServiceName))),
	}
}

// GetNaicsCode fetches GET /v2/naics/code/{hash}.
func (c *KodiakClient) GetNaicsCode(ctx context.Context, hash string) (*domain.NaicsCode, error) {
	if err := ValidateRequired(hash, "hash"); err != nil {
		return nil, err
	}

	ext, err := fetch[naicsCodeDTO](ctx, &c.BaseAdapter, "/v2/naics/code/"+url.PathEscape(hash), nil, "get naics code")
	if err != nil {
		return nil, err
	}

	code, err := translateNaicsCode(ext)
	if err != nil {
		return nil, err
	}

	return &code, nil
}

// ListNaicsCodes fetches GET /v2/naics/codes, keyed by hash.
func (c *KodiakClient) ListNaicsCodes(ctx context.Context) (map[string]domain.NaicsCode, error) {
	ext, err := fetch[map[string]naicsCodeDTO](ctx, &c.BaseAdapter, "/v2/naics/codes", nil, "list naics codes")
	if err != nil {
		return nil, err
	}

	// Older payloads omit the hash inside each entry; the key is authoritative.
	for hash, dto := range *ext {
		if dto.Hash == "" {
			dto.Hash = hash
			(*ext)[hash] = dto
		}
	}

	codes, err := TranslateMap(*ext, translateNaicsCode)
	if err != nil {
		return nil, err
	}

	c.logger.Log(ctx, logging.LevelTrace, "translated naics codes", slog.Int("count", len(codes)))

	return codes, nil
}

// GetNaicsGroup fetches GET /v2/naics/group/{group}.
func (c *KodiakClient) GetNaicsGroup(ctx context.Context, group string) (*domain.NaicsGroup, error) {
	if err := ValidateRequired(group, "group"); err != nil {
		return nil, err
	}

	ext, err := fetch[naicsGroupDTO](ctx, &c.BaseAdapter, "/v2/naics/group/"+url.PathEscape(group), nil, "get naics group")
	if err != nil {
		return nil, err
	}

	g, err := translateNaicsGroup(ext)
	if err != nil {
		return nil, err
	}

	return &g, nil
}

// NaicsDescription fetches GET /v2/naics/description/{gid}.
// Groups without a description answer 404, surfaced as domain.ErrNotFound.
func (c *KodiakClient) NaicsDescription(ctx context.Context, group string) (*domain.NaicsDescription, error) {
	if err := ValidateRequired(group, "group"); err != nil {
		return nil, err
	}

	ext, err := fetch[naicsDescriptionDTO](ctx, &c.BaseAdapter,
		"/v2/naics/description/"+url.PathEscape(group), nil, "get naics description")
	if err != nil {
		return nil, err
	}

	return &domain.NaicsDescription{Group: group, Text: ext.Description}, nil
}

// SuggestNaicsCodes searches GET /v2/suggest/naics-codes/{term}.
func (c *KodiakClient) SuggestNaicsCodes(
	ctx context.Context, term string, opts ports.SuggestOptions,
) (*domain.SuggestionPage[domain.NaicsCodeSuggestion], error) {
	if err := ValidateRequired(term, "term"); err != nil {
		return nil, err
	}

	query := SuggestQuery{GroupType: opts.GroupType, HitsPerPage: opts.HitsPerPage, Page: opts.Page}

	ext, err := fetch[suggestionsDTO[naicsCodeSuggestionDTO]](ctx, &c.BaseAdapter,
		"/v2/suggest/naics-codes/"+url.PathEscape(term), query.Values(), "suggest naics codes")
	if err != nil {
		return nil, err
	}

	return translateSuggestions(ext, translateCodeSuggestion)
}

// SuggestNaicsGroups searches GET /v2/suggest/naics-groups/{term}.
// This endpoint is not edition-aware.
func (c *KodiakClient) SuggestNaicsGroups(
	ctx context.Context, term string, opts ports.SuggestOptions,
) (*domain.SuggestionPage[domain.NaicsGroupSuggestion], error) {
	if err := ValidateRequired(term, "term"); err != nil {
		return nil, err
	}

	query := SuggestQuery{GroupType: opts.GroupType, HitsPerPage: opts.HitsPerPage, Page: opts.Page}

	ext, err := fetch[suggestionsDTO[naicsGroupSuggestionDTO]](ctx, &c.BaseAdapter,
		"/v2/suggest/naics-groups/"+url.PathEscape(term), query.Values(), "suggest naics groups")
	if err != nil {
		return nil, err
	}

	return translateSuggestions(ext, translateGroupSuggestion)
}

// GetProduct fetches GET /v2/product/{id}.
func (c *KodiakClient) GetProduct(ctx context.Context, id string, opts ports.ProductOptions) (*domain.Product, error) {
	if err := ValidateRequired(id, "id"); err != nil {
		return nil, err
	}

	query := ProductQuery{IncludeEligibility: opts.IncludeEligibility, Geos: opts.Geos}

	ext, err := fetch[productDTO](ctx, &c.BaseAdapter, "/v2/product/"+url.PathEscape(id), query.Values(), "get product")
	if err != nil {
		return nil, err
	}

	p, err := translateProduct(ext)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// CheckEligibility fetches GET /v2/product/{id}/is-eligible-for/{code}.
func (c *KodiakClient) CheckEligibility(ctx context.Context, productID, code string) (*domain.Eligibility, error) {
	if err := ValidateRequired(productID, "productId"); err != nil {
		return nil, err
	}
	if err := ValidateRequired(code, "code"); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/v2/product/%s/is-eligible-for/%s", url.PathEscape(productID), url.PathEscape(code))

	ext, err := fetch[eligibilityDTO](ctx, &c.BaseAdapter, path, nil, "check eligibility")
	if err != nil {
		return nil, err
	}

	e := translateEligibility(ext)
	if e.ProductID == "" {
		e.ProductID = productID
	}
	if e.Code == "" {
		e.Code = code
	}

	return &e, nil
}

// EligibilityByNaicsType fetches GET /v2/product/{id}/eligibility-by-naics-type/{type}:
// the groups of one hierarchy level the product accepts, keyed by group code.
func (c *KodiakClient) EligibilityByNaicsType(
	ctx context.Context, productID, groupType string,
) (map[string]domain.Eligibility, error) {
	if err := ValidateRequired(productID, "productId"); err != nil {
		return nil, err
	}
	if !domain.IsNaicsGroupType(groupType) {
		return nil, domain.NewValidationError("type", "must be one of "+strings.Join(domain.NaicsGroupTypes, ", "))
	}

	path := fmt.Sprintf("/v2/product/%s/eligibility-by-naics-type/%s", url.PathEscape(productID), groupType)

	ext, err := fetch[map[string]eligibilityDTO](ctx, &c.BaseAdapter, path, nil, "eligibility by naics type")
	if err != nil {
		return nil, err
	}

	return translateGroupEligibility(productID, *ext), nil
}

// ProductsEligibleForCode searches GET /v2/products/class-code/naics/{code}.
func (c *KodiakClient) ProductsEligibleForCode(
	ctx context.Context, code string, opts ports.EligibleOptions,
) (*domain.ProductPage, error) {
	query := EligibleQuery{
		Owners: opts.Owners,
		ProductFilters: ProductFilters{
			Geos:            opts.Geos,
			EntityTypes:     opts.EntityTypes,
			SummaryOnly:     opts.SummaryOnly,
			Page:            opts.Page,
			ProductsPerPage: opts.PerPage,
		},
	}

	return c.searchProducts(ctx, "/v2/products/class-code/naics/", code, query.Values(), "products eligible for code")
}

// ProductsForCompany searches GET /v2/products/company/{gid}.
func (c *KodiakClient) ProductsForCompany(ctx context.Context, gid string, query CompanyQuery) (*domain.ProductPage, error) {
	return c.searchProducts(ctx, "/v2/products/company/", gid, query.Values(), "products for company")
}

// ProductsForUser searches GET /v2/products/user, scoped by the credentials.
func (c *KodiakClient) ProductsForUser(ctx context.Context, query UserQuery) (*domain.ProductPage, error) {
	ext, err := fetch[productsDTO](ctx, &c.BaseAdapter, "/v2/products/user", query.Values(), "products for user")
	if err != nil {
		return nil, err
	}

	return translateProducts(ext)
}

func (c *KodiakClient) searchProducts(
	ctx context.Context, prefix, id string, query url.Values, operation string,
) (*domain.ProductPage, error) {
	if err := ValidateRequired(id, "id"); err != nil {
		return nil, err
	}

	ext, err := fetch[productsDTO](ctx, &c.BaseAdapter, prefix+url.PathEscape(id), query, operation)
	if err != nil {
		return nil, err
	}

	return translateProducts(ext)
}

// GetCompany fetches GET /v2/company/{gid}.
func (c *KodiakClient) GetCompany(ctx context.Context, id string) (*domain.Company, error) {
	if err := ValidateRequired(id, "id"); err != nil {
		return nil, err
	}

	ext, err := fetch[companyDTO](ctx, &c.BaseAdapter, "/v2/company/"+url.PathEscape(id), nil, "get company")
	if err != nil {
		return nil, err
	}

	company, err := translateCompany(ext)
	if err != nil {
		return nil, err
	}

	return &company, nil
}

// ListCompanies pages GET /v2/companies.
func (c *KodiakClient) ListCompanies(ctx context.Context, opts ports.CompanyListOptions) (*domain.CompanyPage, error) {
	query := CompaniesQuery{CompanyType: opts.CompanyType, CompaniesPerPage: opts.PerPage, Page: opts.Page}

	ext, err := fetch[companiesDTO](ctx, &c.BaseAdapter, "/v2/companies", query.Values(), "list companies")
	if err != nil {
		return nil, err
	}

	return translateCompanies(ext)
}

// BusinessEntityTypes fetches GET /v2/ref-data/business-entity-types.
func (c *KodiakClient) BusinessEntityTypes(ctx context.Context) (map[string]string, error) {
	ext, err := fetch[map[string]string](ctx, &c.BaseAdapter, "/v2/ref-data/business-entity-types", nil, "business entity types")
	if err != nil {
		return nil, err
	}

	return *ext, nil
}

// Name implements ports.HealthChecker.
func (c *KodiakClient) Name() string {
	return ServiceName
}

// Check implements ports.HealthChecker using the cheapest authenticated endpoint.
func (c *KodiakClient) Check(ctx context.Context) error {
	body, err := c.Get(ctx, "/v2/ref-data/business-entity-types", nil, "health check")
	if err != nil {
		return err
	}

	return body.Close()
}
