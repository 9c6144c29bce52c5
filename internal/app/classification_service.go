// Package app contains application services that orchestrate use cases.
package app

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/jsamuelsen/askkodiak-gateway/internal/app/memo"
	"github.com/jsamuelsen/askkodiak-gateway/internal/domain"
	"github.com/jsamuelsen/askkodiak-gateway/internal/ports"
)

const (
	defaultMaxConcurrency = 4
	defaultMaxCodes       = 50
	defaultSearchLimit    = 10
)

// ClassificationService answers NAICS and eligibility questions on top of a
// ports.ClassificationClient. Lookups made while serving one request are
// memoized through the memo stored in the request context.
type ClassificationService struct {
	client         ports.ClassificationClient
	logger         *slog.Logger
	exec           *Executor
	maxConcurrency int
	maxCodes       int
}

// ClassificationServiceConfig contains configuration for the classification service.
type ClassificationServiceConfig struct {
	Client ports.ClassificationClient
	Logger *slog.Logger

	// MaxConcurrency bounds upstream calls in flight for one fan-out.
	MaxConcurrency int

	// MaxCodes bounds how many codes one eligibility report may cover.
	MaxCodes int
}

// NewClassificationService creates a classification service. It panics if
// Client is nil.
func NewClassificationService(cfg ClassificationServiceConfig) *ClassificationService {
	if cfg.Client == nil {
		panic("app: classification client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.MaxConcurrency < 1 {
		cfg.MaxConcurrency = defaultMaxConcurrency
	}

	if cfg.MaxCodes < 1 {
		cfg.MaxCodes = defaultMaxCodes
	}

	return &ClassificationService{
		client:         cfg.Client,
		logger:         logger,
		exec:           NewExecutor(logger),
		maxConcurrency: cfg.MaxConcurrency,
		maxCodes:       cfg.MaxCodes,
	}
}

// GetNaicsCode returns the code identified by hash.
func (s *ClassificationService) GetNaicsCode(ctx context.Context, hash string) (*domain.NaicsCode, error) {
	if strings.TrimSpace(hash) == "" {
		return nil, domain.NewValidationError("hash", "is required")
	}

	return memo.GetOrFetch(ctx, memo.FromContext(ctx), "naics:"+hash,
		func(ctx context.Context) (*domain.NaicsCode, error) {
			return s.client.GetNaicsCode(ctx, hash)
		})
}

// GetNaicsGroup returns a node of the NAICS hierarchy.
func (s *ClassificationService) GetNaicsGroup(ctx context.Context, group string) (*domain.NaicsGroup, error) {
	if strings.TrimSpace(group) == "" {
		return nil, domain.NewValidationError("group", "is required")
	}

	return memo.GetOrFetch(ctx, memo.FromContext(ctx), "naics-group:"+group,
		func(ctx context.Context) (*domain.NaicsGroup, error) {
			return s.client.GetNaicsGroup(ctx, group)
		})
}

// Suggest looks term up as both a code and a group, concurrently.
func (s *ClassificationService) Suggest(ctx context.Context, term string, opts ports.SuggestOptions) (*domain.Suggestions, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, domain.NewValidationError("q", "is required")
	}

	codes, groups, err := Parallel2(ctx,
		func(ctx context.Context) (*domain.SuggestionPage[domain.NaicsCodeSuggestion], error) {
			return s.client.SuggestNaicsCodes(ctx, term, opts)
		},
		func(ctx context.Context) (*domain.SuggestionPage[domain.NaicsGroupSuggestion], error) {
			return s.client.SuggestNaicsGroups(ctx, term, opts)
		},
	)
	if err != nil {
		s.logger.WarnContext(ctx, "naics suggestion failed",
			slog.String("term", term),
			slog.Any("error", err))

		return nil, err
	}

	return &domain.Suggestions{Term: term, Codes: codes, Groups: groups}, nil
}

type codeSource []domain.NaicsCode

func (c codeSource) String(i int) string { return strings.ToLower(c[i].Code + " " + c[i].Description) }
func (c codeSource) Len() int            { return len(c) }

// SearchCodes fuzzy-matches text against the full code list, best first.
// limit < 1 uses a default of 10.
func (s *ClassificationService) SearchCodes(ctx context.Context, text string, limit int) ([]domain.CodeMatch, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.NewValidationError("q", "is required")
	}

	if limit < 1 {
		limit = defaultSearchLimit
	}

	all, err := memo.GetOrFetch(ctx, memo.FromContext(ctx), "naics-list", s.client.ListNaicsCodes)
	if err != nil {
		return nil, err
	}

	codes := make(codeSource, 0, len(all))
	for _, c := range all {
		codes = append(codes, c)
	}

	// Map order is random; sort so equal scores come back in a stable order.
	slices.SortFunc(codes, func(a, b domain.NaicsCode) int {
		return cmp.Compare(a.Code, b.Code)
	})

	results := fuzzy.FindFrom(strings.ToLower(text), codes)

	matches := make([]domain.CodeMatch, 0, min(limit, len(results)))
	for _, r := range results {
		if len(matches) == limit {
			break
		}

		matches = append(matches, domain.CodeMatch{NaicsCode: codes[r.Index], Score: r.Score})
	}

	return matches, nil
}

// ResolveCodes looks up every hash. Unknown hashes are reported in Missing;
// any other failure fails the whole call.
func (s *ClassificationService) ResolveCodes(ctx context.Context, hashes []string) (*domain.Resolution, error) {
	hashes = dedupe(hashes)
	if len(hashes) == 0 {
		return nil, domain.NewValidationError("hashes", "at least one is required")
	}

	fns := make([]func(context.Context) (*domain.NaicsCode, error), len(hashes))
	for i, hash := range hashes {
		fns[i] = func(ctx context.Context) (*domain.NaicsCode, error) {
			return s.GetNaicsCode(ctx, hash)
		}
	}

	res := &domain.Resolution{Codes: []domain.NaicsCode{}, Missing: []string{}}

	for i, r := range ParallelPartialLimit(ctx, s.maxConcurrency, fns...) {
		switch {
		case r.Err == nil:
			res.Codes = append(res.Codes, *r.Value)
		case domain.IsNotFound(r.Err):
			res.Missing = append(res.Missing, hashes[i])
		default:
			return nil, r.Err
		}
	}

	return res, nil
}

// GetProduct returns a product by id.
func (s *ClassificationService) GetProduct(ctx context.Context, id string, opts ports.ProductOptions) (*domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewValidationError("id", "is required")
	}

	return s.client.GetProduct(ctx, id, opts)
}

// CheckEligibility reports whether productID covers code.
func (s *ClassificationService) CheckEligibility(ctx context.Context, productID, code string) (*domain.Eligibility, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, domain.NewValidationError("productId", "is required")
	}

	if strings.TrimSpace(code) == "" {
		return nil, domain.NewValidationError("code", "is required")
	}

	return memo.GetOrFetch(ctx, memo.FromContext(ctx), "eligible:"+productID+":"+code,
		func(ctx context.Context) (*domain.Eligibility, error) {
			return s.client.CheckEligibility(ctx, productID, code)
		})
}

type reportRequest struct {
	productID string
	codes     []string
}

// EligibilityReport checks one product against many codes.
func (s *ClassificationService) EligibilityReport(ctx context.Context, productID string, codes []string) (*domain.EligibilityReport, error) {
	op := Operation[reportRequest, []*domain.Eligibility, *domain.EligibilityReport]{
		Name:     "eligibility_report",
		Validate: s.validateReport,
		Perform: func(ctx context.Context, in reportRequest) ([]*domain.Eligibility, error) {
			fns := make([]func(context.Context) (*domain.Eligibility, error), len(in.codes))
			for i, code := range in.codes {
				fns[i] = func(ctx context.Context) (*domain.Eligibility, error) {
					return s.CheckEligibility(ctx, in.productID, code)
				}
			}

			return ParallelLimit(ctx, s.maxConcurrency, fns...)
		},
		Verify: func(_ context.Context, in reportRequest, results []*domain.Eligibility) error {
			if len(results) != len(in.codes) {
				return fmt.Errorf("got %d answers for %d codes", len(results), len(in.codes))
			}

			for i, r := range results {
				if r == nil {
					return fmt.Errorf("no answer for code %s", in.codes[i])
				}
			}

			return nil
		},
		Respond: func(_ context.Context, in reportRequest, results []*domain.Eligibility) (*domain.EligibilityReport, error) {
			report := &domain.EligibilityReport{
				ProductID:  in.productID,
				Results:    make([]domain.Eligibility, len(results)),
				Eligible:   []string{},
				Ineligible: []string{},
			}

			for i, r := range results {
				report.Results[i] = *r
				if r.Eligible {
					report.Eligible = append(report.Eligible, in.codes[i])
				} else {
					report.Ineligible = append(report.Ineligible, in.codes[i])
				}
			}

			slices.Sort(report.Eligible)
			slices.Sort(report.Ineligible)

			return report, nil
		},
	}

	return Execute(ctx, s.exec, op, reportRequest{productID: strings.TrimSpace(productID), codes: dedupe(codes)})
}

func (s *ClassificationService) validateReport(_ context.Context, in reportRequest) error {
	if in.productID == "" {
		return domain.NewValidationError("productId", "is required")
	}

	if len(in.codes) == 0 {
		return domain.NewValidationError("codes", "at least one is required")
	}

	if len(in.codes) > s.maxCodes {
		return domain.NewValidationError("codes", fmt.Sprintf("at most %d allowed, got %d", s.maxCodes, len(in.codes)))
	}

	return nil
}

// ProductsEligibleForCode lists products covering code.
func (s *ClassificationService) ProductsEligibleForCode(ctx context.Context, code string, opts ports.EligibleOptions) (*domain.ProductPage, error) {
	if strings.TrimSpace(code) == "" {
		return nil, domain.NewValidationError("code", "is required")
	}

	return s.client.ProductsEligibleForCode(ctx, code, opts)
}

// GetCompany returns a company by id.
func (s *ClassificationService) GetCompany(ctx context.Context, id string) (*domain.Company, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewValidationError("id", "is required")
	}

	return s.client.GetCompany(ctx, id)
}

// ListCompanies pages the company directory.
func (s *ClassificationService) ListCompanies(ctx context.Context, opts ports.CompanyListOptions) (*domain.CompanyPage, error) {
	return s.client.ListCompanies(ctx, opts)
}

// EntityTypes returns the business entity type reference list.
func (s *ClassificationService) EntityTypes(ctx context.Context) (map[string]string, error) {
	return memo.GetOrFetch(ctx, memo.FromContext(ctx), "ref:entity-types", s.client.BusinessEntityTypes)
}

// dedupe trims values and drops blanks and repeats, keeping first-seen order.
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))

	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}

		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}
		out = append(out, v)
	}

	return out
}
