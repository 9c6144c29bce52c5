package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/askkodiak-gateway/internal/app/memo"
	"github.com/jsamuelsen/askkodiak-gateway/internal/domain"
	"github.com/jsamuelsen/askkodiak-gateway/internal/mocks"
	"github.com/jsamuelsen/askkodiak-gateway/internal/ports"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(t *testing.T, cfg ClassificationServiceConfig) (*ClassificationService, *mocks.MockClassificationClient) {
	t.Helper()

	client := mocks.NewMockClassificationClient(t)
	cfg.Client = client
	cfg.Logger = discardLogger()

	return NewClassificationService(cfg), client
}

// memoCtx returns a context carrying a fresh request memo.
func memoCtx() context.Context {
	return memo.WithContext(context.Background(), memo.New())
}

func TestNewClassificationService_PanicsWithoutClient(t *testing.T) {
	assert.Panics(t, func() {
		NewClassificationService(ClassificationServiceConfig{})
	})
}

func TestNewClassificationService_Defaults(t *testing.T) {
	svc := NewClassificationService(ClassificationServiceConfig{Client: mocks.NewMockClassificationClient(t)})

	assert.Equal(t, defaultMaxConcurrency, svc.maxConcurrency)
	assert.Equal(t, defaultMaxCodes, svc.maxCodes)
	assert.NotNil(t, svc.logger)
}

func TestClassificationService_GetNaicsCode(t *testing.T) {
	tests := []struct {
		name     string
		hash     string
		setup    func(*mocks.MockClassificationClient)
		want     *domain.NaicsCode
		errCheck func(error) bool
	}{
		{
			name: "found",
			hash: "f8b3",
			setup: func(m *mocks.MockClassificationClient) {
				m.EXPECT().GetNaicsCode(mock.Anything, "f8b3").
					Return(&domain.NaicsCode{Hash: "f8b3", Code: "311811", Description: "Retail Bakeries"}, nil)
			},
			want: &domain.NaicsCode{Hash: "f8b3", Code: "311811", Description: "Retail Bakeries"},
		},
		{
			name: "not found passes through",
			hash: "nope",
			setup: func(m *mocks.MockClassificationClient) {
				m.EXPECT().GetNaicsCode(mock.Anything, "nope").
					Return(nil, domain.NewNotFoundError("naics code", "nope"))
			},
			errCheck: domain.IsNotFound,
		},
		{
			name:     "blank hash is rejected without a call",
			hash:     "  ",
			setup:    func(*mocks.MockClassificationClient) {},
			errCheck: domain.IsValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, client := newService(t, ClassificationServiceConfig{})
			tt.setup(client)

			got, err := svc.GetNaicsCode(memoCtx(), tt.hash)

			if tt.errCheck != nil {
				require.Error(t, err)
				assert.True(t, tt.errCheck(err), "unexpected error: %v", err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassificationService_GetNaicsCode_MemoizedPerRequest(t *testing.T) {
	svc, client := newService(t, ClassificationServiceConfig{})
	client.EXPECT().GetNaicsCode(mock.Anything, "f8b3").
		Return(&domain.NaicsCode{Hash: "f8b3", Code: "311811"}, nil).
		Once()

	ctx := memoCtx()
	for range 3 {
		_, err := svc.GetNaicsCode(ctx, "f8b3")
		require.NoError(t, err)
	}
}

func TestClassificationService_Suggest(t *testing.T) {
	svc, client := newService(t, ClassificationServiceConfig{})
	opts := ports.SuggestOptions{HitsPerPage: 5}

	client.EXPECT().SuggestNaicsCodes(mock.Anything, "bakery", opts).
		Return(&domain.SuggestionPage[domain.NaicsCodeSuggestion]{
			Query: "bakery",
			Hits:  []domain.NaicsCodeSuggestion{{Hash: "f8b3", Code: "311811"}},
		}, nil)
	client.EXPECT().SuggestNaicsGroups(mock.Anything, "bakery", opts).
		Return(&domain.SuggestionPage[domain.NaicsGroupSuggestion]{
			Query: "bakery",
			Hits:  []domain.NaicsGroupSuggestion{{Code: "3118", Title: "Bakeries and Tortilla Manufacturing"}},
		}, nil)

	got, err := svc.Suggest(context.Background(), "  bakery ", opts)

	require.NoError(t, err)
	assert.Equal(t, "bakery", got.Term)
	require.Len(t, got.Codes.Hits, 1)
	require.Len(t, got.Groups.Hits, 1)
	assert.Equal(t, "311811", got.Codes.Hits[0].Code)
	assert.Equal(t, "3118", got.Groups.Hits[0].Code)
}

func TestClassificationService_Suggest_OneSideFails(t *testing.T) {
	svc, client := newService(t, ClassificationServiceConfig{})

	client.EXPECT().SuggestNaicsCodes(mock.Anything, "bakery", mock.Anything).
		Return(nil, domain.NewUnavailableError("askkodiak", "429 RATE_LIMIT"))
	client.EXPECT().SuggestNaicsGroups(mock.Anything, "bakery", mock.Anything).
		Return(&domain.SuggestionPage[domain.NaicsGroupSuggestion]{}, nil).
		Maybe()

	got, err := svc.Suggest(context.Background(), "bakery", ports.SuggestOptions{})

	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
	assert.Nil(t, got)
}

func TestClassificationService_Suggest_RequiresTerm(t *testing.T) {
	svc, _ := newService(t, ClassificationServiceConfig{})

	_, err := svc.Suggest(context.Background(), "", ports.SuggestOptions{})

	assert.True(t, domain.IsValidation(err))
}

func TestClassificationService_SearchCodes(t *testing.T) {
	svc, client := newService(t, ClassificationServiceConfig{})
	client.EXPECT().ListNaicsCodes(mock.Anything).
		Return(map[string]domain.NaicsCode{
			"a1": {Hash: "a1", Code: "311811", Description: "Retail Bakeries"},
			"b2": {Hash: "b2", Code: "311812", Description: "Commercial Bakeries"},
			"c3": {Hash: "c3", Code: "212111", Description: "Bituminous Coal and Lignite Surface Mining"},
		}, nil).
		Once()

	ctx := memoCtx()

	got, err := svc.SearchCodes(ctx, "Bakeries", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	codes := []string{got[0].Code, got[1].Code}
	assert.ElementsMatch(t, []string{"311811", "311812"}, codes)
	assert.GreaterOrEqual(t, got[0].Score, got[1].Score)

	// The code list is fetched once per request.
	limited, err := svc.SearchCodes(ctx, "bakeries", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestClassificationService_CodeNamedAllDoesNotShareTheListEntry(t *testing.T) {
	svc, client := newService(t, ClassificationServiceConfig{})
	client.EXPECT().GetNaicsCode(mock.Anything, "all").
		Return(&domain.NaicsCode{Hash: "all", Code: "999999", Description: "Unclassified"}, nil).
		Once()
	client.EXPECT().ListNaicsCodes(mock.Anything).
		Return(map[string]domain.NaicsCode{"a1": {Hash: "a1", Code: "311811", Description: "Retail Bakeries"}}, nil).
		Once()

	ctx := memoCtx()

	code, err := svc.GetNaicsCode(ctx, "all")
	require.NoError(t, err)
	assert.Equal(t, "999999", code.Code)

	matches, err := svc.SearchCodes(ctx, "bakeries", 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "311811", matches[0].Code)

	again, err := svc.GetNaicsCode(ctx, "all")
	require.NoError(t, err)
	assert.Same(t, code, again)
}

func TestClassificationService_SearchCodes_NoMatch(t *testing.T) {
	svc, client := newService(t, ClassificationServiceConfig{})
	client.EXPECT().ListNaicsCodes(mock.Anything).
		Return(map[string]domain.NaicsCode{"a1": {Hash: "a1", Code: "311811", Description: "Retail Bakeries"}}, nil)

	got, err := svc.SearchCodes(context.Background(), "zzzz", 5)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClassificationService_ResolveCodes(t *testing.T) {
	svc, client := newService(t, ClassificationServiceConfig{MaxConcurrency: 2})

	client.EXPECT().GetNaicsCode(mock.Anything, "a1").Return(&domain.NaicsCode{Hash: "a1", Code: "311811"}, nil).Once()
	client.EXPECT().GetNaicsCode(mock.Anything, "b2").Return(&domain.NaicsCode{Hash: "b2", Code: "311812"}, nil).Once()
	client.EXPECT().GetNaicsCode(mock.Anything, "zz").Return(nil, domain.NewNotFoundError("naics code", "zz")).Once()

	got, err := svc.ResolveCodes(memoCtx(), []string{"a1", "zz", "b2", "a1", " "})

	require.NoError(t, err)
	require.Len(t, got.Codes, 2)
	assert.Equal(t, "a1", got.Codes[0].Hash)
	assert.Equal(t, "b2", got.Codes[1].Hash)
	assert.Equal(t, []string{"zz"}, got.Missing)
}

func TestClassificationService_ResolveCodes_UpstreamFailure(t *testing.T) {
	svc, client := newService(t, ClassificationServiceConfig{})
	outage := domain.NewUnavailableError("askkodiak", "circuit breaker open")

	client.EXPECT().GetNaicsCode(mock.Anything, "a1").Return(nil, outage)

	_, err := svc.ResolveCodes(context.Background(), []string{"a1"})

	require.ErrorIs(t, err, outage)
}

func TestClassificationService_ResolveCodes_Empty(t *testing.T) {
	svc, _ := newService(t, ClassificationServiceConfig{})

	_, err := svc.ResolveCodes(context.Background(), []string{"", "  "})

	assert.True(t, domain.IsValidation(err))
}

func TestClassificationService_CheckEligibility_Validation(t *testing.T) {
	svc, _ := newService(t, ClassificationServiceConfig{})

	_, err := svc.CheckEligibility(context.Background(), "", "311811")
	assert.True(t, domain.IsValidation(err))

	_, err = svc.CheckEligibility(context.Background(), "p1", "")
	assert.True(t, domain.IsValidation(err))
}

func TestClassificationService_EligibilityReport(t *testing.T) {
	svc, client := newService(t, ClassificationServiceConfig{})

	client.EXPECT().CheckEligibility(mock.Anything, "p1", "722513").
		Return(&domain.Eligibility{ProductID: "p1", Code: "722513", Eligible: true}, nil).Once()
	client.EXPECT().CheckEligibility(mock.Anything, "p1", "311811").
		Return(&domain.Eligibility{ProductID: "p1", Code: "311811", Eligible: true}, nil).Once()
	client.EXPECT().CheckEligibility(mock.Anything, "p1", "212111").
		Return(&domain.Eligibility{ProductID: "p1", Code: "212111", Eligible: false}, nil).Once()

	got, err := svc.EligibilityReport(memoCtx(), " p1 ", []string{"722513", "212111", "311811", "722513"})

	require.NoError(t, err)
	assert.Equal(t, "p1", got.ProductID)
	assert.Len(t, got.Results, 3)
	assert.Equal(t, []string{"311811", "722513"}, got.Eligible)
	assert.Equal(t, []string{"212111"}, got.Ineligible)
}

func TestClassificationService_EligibilityReport_Validation(t *testing.T) {
	tests := []struct {
		name      string
		productID string
		codes     []string
	}{
		{name: "missing product", productID: "", codes: []string{"311811"}},
		{name: "no codes", productID: "p1", codes: []string{" "}},
		{name: "too many codes", productID: "p1", codes: []string{"1", "2", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(t, ClassificationServiceConfig{MaxCodes: 2})

			_, err := svc.EligibilityReport(context.Background(), tt.productID, tt.codes)

			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))

			stage, ok := FailedStage(err)
			require.True(t, ok)
			assert.Equal(t, StageValidate, stage)
		})
	}
}

func TestClassificationService_EligibilityReport_PerformFailure(t *testing.T) {
	svc, client := newService(t, ClassificationServiceConfig{MaxConcurrency: 1})
	boom := domain.NewUnavailableError("askkodiak", "503 Service Unavailable")

	client.EXPECT().CheckEligibility(mock.Anything, "p1", "311811").Return(nil, boom)
	client.EXPECT().CheckEligibility(mock.Anything, "p1", "722513").
		Return(&domain.Eligibility{Eligible: true}, nil).Maybe()

	_, err := svc.EligibilityReport(context.Background(), "p1", []string{"311811", "722513"})

	require.ErrorIs(t, err, boom)

	stage, ok := FailedStage(err)
	require.True(t, ok)
	assert.Equal(t, StagePerform, stage)
}

func TestClassificationService_PassThroughs(t *testing.T) {
	svc, client := newService(t, ClassificationServiceConfig{})
	ctx := memoCtx()

	client.EXPECT().GetProduct(mock.Anything, "p1", ports.ProductOptions{IncludeEligibility: true}).
		Return(&domain.Product{ID: "p1"}, nil)
	client.EXPECT().ProductsEligibleForCode(mock.Anything, "722513", ports.EligibleOptions{Owners: []string{"ABC123"}}).
		Return(&domain.ProductPage{Code: "722513", Count: 1}, nil)
	client.EXPECT().GetCompany(mock.Anything, "c1").
		Return(&domain.Company{ID: "c1"}, nil)
	client.EXPECT().ListCompanies(mock.Anything, ports.CompanyListOptions{Page: 2}).
		Return(&domain.CompanyPage{Page: 2}, nil)
	client.EXPECT().BusinessEntityTypes(mock.Anything).
		Return(map[string]string{"llc": "Limited Liability Company"}, nil).Once()

	product, err := svc.GetProduct(ctx, "p1", ports.ProductOptions{IncludeEligibility: true})
	require.NoError(t, err)
	assert.Equal(t, "p1", product.ID)

	page, err := svc.ProductsEligibleForCode(ctx, "722513", ports.EligibleOptions{Owners: []string{"ABC123"}})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Count)

	company, err := svc.GetCompany(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", company.ID)

	companies, err := svc.ListCompanies(ctx, ports.CompanyListOptions{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, companies.Page)

	for range 2 {
		types, err := svc.EntityTypes(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Limited Liability Company", types["llc"])
	}
}

func TestClassificationService_RequiredIdentifiers(t *testing.T) {
	svc, _ := newService(t, ClassificationServiceConfig{})
	ctx := context.Background()

	checks := map[string]error{}
	_, checks["product"] = svc.GetProduct(ctx, "", ports.ProductOptions{})
	_, checks["eligible"] = svc.ProductsEligibleForCode(ctx, "", ports.EligibleOptions{})
	_, checks["company"] = svc.GetCompany(ctx, " ")
	_, checks["group"] = svc.GetNaicsGroup(ctx, "")
	_, checks["search"] = svc.SearchCodes(ctx, "", 1)

	for name, err := range checks {
		assert.True(t, domain.IsValidation(err), name)
	}
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, dedupe([]string{" a", "b", "a ", "", "b"}))
	assert.Empty(t, dedupe(nil))
}

func TestClassificationService_GetNaicsGroup(t *testing.T) {
	svc, client := newService(t, ClassificationServiceConfig{})
	client.EXPECT().GetNaicsGroup(mock.Anything, "31-33").
		Return(&domain.NaicsGroup{Code: "31-33", Title: "Manufacturing", Descendants: []string{"311"}}, nil)

	got, err := svc.GetNaicsGroup(context.Background(), "31-33")

	require.NoError(t, err)
	assert.False(t, got.IsLeaf())
}

var errSentinel = errors.New("sentinel")

func TestClassificationService_ErrorsAreNotMemoized(t *testing.T) {
	svc, client := newService(t, ClassificationServiceConfig{})
	client.EXPECT().GetNaicsCode(mock.Anything, "a1").Return(nil, errSentinel).Once()
	client.EXPECT().GetNaicsCode(mock.Anything, "a1").Return(&domain.NaicsCode{Hash: "a1"}, nil).Once()

	ctx := memoCtx()

	_, err := svc.GetNaicsCode(ctx, "a1")
	require.ErrorIs(t, err, errSentinel)

	got, err := svc.GetNaicsCode(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "a1", got.Hash)
}
