package acl

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/clients"
	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/clients/pipeline"
	"github.com/jsamuelsen/askkodiak-gateway/internal/domain"
	"github.com/jsamuelsen/askkodiak-gateway/internal/platform/config"
	"github.com/jsamuelsen/askkodiak-gateway/internal/ports"
)

// setupKodiakClient points a KodiakClient with edition 2022 and basic auth at handler.
func setupKodiakClient(t *testing.T, handler http.HandlerFunc) *KodiakClient {
	t.Helper()

	return setupKodiakClientWith(t, handler, pipeline.Config{
		Edition: "2022",
		Auth:    pipeline.BasicAuth("group-1", "secret"),
	})
}

func setupKodiakClientWith(t *testing.T, handler http.HandlerFunc, pcfg pipeline.Config) *KodiakClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := clients.New(&clients.Config{
		ServiceName: ServiceName,
		BaseURL:     server.URL,
		Timeout:     5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     1,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     100 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   10,
			Timeout:       30 * time.Second,
			HalfOpenLimit: 3,
		},
		Pipeline: pipeline.New(pcfg),
	})
	require.NoError(t, err)

	return NewKodiakClient(KodiakClientConfig{
		Client: client,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestNewKodiakClient_PanicsWithoutClient(t *testing.T) {
	assert.Panics(t, func() {
		NewKodiakClient(KodiakClientConfig{})
	})
}

func TestKodiakClient_GetNaicsCode(t *testing.T) {
	var gotPath, gotQuery, gotUser, gotPass string
	client := setupKodiakClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUser, gotPass, _ = r.BasicAuth()
		writeJSON(w, http.StatusOK, `{"hash":"212111","code":"212111","description":"Bituminous Coal"}`)
	})

	code, err := client.GetNaicsCode(context.Background(), "212111")

	require.NoError(t, err)
	assert.Equal(t, &domain.NaicsCode{Hash: "212111", Code: "212111", Description: "Bituminous Coal"}, code)
	assert.Equal(t, "/v2/naics/code/212111", gotPath)
	assert.Equal(t, "naicsEdition=2022", gotQuery)
	assert.Equal(t, "group-1", gotUser)
	assert.Equal(t, "secret", gotPass)
}

func TestKodiakClient_GetNaicsCode_NotFound(t *testing.T) {
	client := setupKodiakClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"message":"Not found"}`)
	})

	_, err := client.GetNaicsCode(context.Background(), "000000")

	require.Error(t, err)
	var ne *NormalizedError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, http.StatusNotFound, ne.Status)
	assert.Equal(t, "Not found", ne.Message)
	assert.True(t, domain.IsNotFound(err))
}

func TestKodiakClient_RequiredParameterNotSent(t *testing.T) {
	var calls atomic.Int32
	client := setupKodiakClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	_, err := client.GetNaicsCode(context.Background(), "")

	assert.True(t, domain.IsValidation(err))
	assert.Zero(t, calls.Load())
}

func TestKodiakClient_ListNaicsCodes(t *testing.T) {
	client := setupKodiakClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/naics/codes", r.URL.Path)
		assert.Equal(t, "2022", r.URL.Query().Get(pipeline.ParamNaicsEdition))
		writeJSON(w, http.StatusOK, `{
			"a1":{"hash":"a1","code":"311811","description":"Retail Bakeries"},
			"b2":{"code":"722513","description":"Limited-Service Restaurants"}
		}`)
	})

	codes, err := client.ListNaicsCodes(context.Background())

	require.NoError(t, err)
	require.Len(t, codes, 2)
	assert.Equal(t, "Retail Bakeries", codes["a1"].Description)
	assert.Equal(t, "b2", codes["b2"].Hash)
}

func TestKodiakClient_GetNaicsGroup(t *testing.T) {
	client := setupKodiakClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/naics/group/31-33", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"code":"31-33","title":"Manufacturing","type":"sector","decendants":["311","312"]}`)
	})

	group, err := client.GetNaicsGroup(context.Background(), "31-33")

	require.NoError(t, err)
	assert.Equal(t, "Manufacturing", group.Title)
	assert.Equal(t, []string{"311", "312"}, group.Descendants)
	assert.False(t, group.IsLeaf())
}

func TestKodiakClient_GetNaicsGroup_MissingCode(t *testing.T) {
	client := setupKodiakClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"title":"Manufacturing","type":"sector"}`)
	})

	group, err := client.GetNaicsGroup(context.Background(), "31-33")

	assert.Nil(t, group)
	assert.True(t, domain.IsValidation(err))
	assert.ErrorContains(t, err, "missing from naics group")
}

func TestKodiakClient_NaicsDescription(t *testing.T) {
	client := setupKodiakClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/naics/description/3118", r.URL.Path)
		assert.Equal(t, "2022", r.URL.Query().Get(pipeline.ParamNaicsEdition))
		writeJSON(w, http.StatusOK, `{"code":"3118","description":"This industry group comprises bakeries."}`)
	})

	desc, err := client.NaicsDescription(context.Background(), "3118")

	require.NoError(t, err)
	assert.Equal(t, &domain.NaicsDescription{Group: "3118", Text: "This industry group comprises bakeries."}, desc)
}

func TestKodiakClient_NaicsDescription_Unavailable(t *testing.T) {
	client := setupKodiakClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"message":"No description for group 31-33"}`)
	})

	_, err := client.NaicsDescription(context.Background(), "31-33")

	assert.True(t, domain.IsNotFound(err))
	assert.ErrorContains(t, err, "No description for group 31-33")
}

func TestKodiakClient_EligibilityByNaicsType(t *testing.T) {
	client := setupKodiakClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/product/p1/eligibility-by-naics-type/industry-group", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery, "product paths carry no edition")
		writeJSON(w, http.StatusOK, `{
			"3118":{"isEligible":true,"percentOfCodesEligible":100},
			"7225":{"isEligible":true,"percentOfCodesEligible":40.5}
		}`)
	})

	got, err := client.EligibilityByNaicsType(context.Background(), "p1", "industry-group")

	require.NoError(t, err)
	assert.Equal(t, map[string]domain.Eligibility{
		"3118": {ProductID: "p1", Code: "3118", Eligible: true, PercentOfCodesEligible: 100},
		"7225": {ProductID: "p1", Code: "7225", Eligible: true, PercentOfCodesEligible: 40.5},
	}, got)
}

func TestKodiakClient_EligibilityByNaicsType_InvalidTypeSendsNothing(t *testing.T) {
	var calls atomic.Int32
	client := setupKodiakClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	_, err := client.EligibilityByNaicsType(context.Background(), "p1", "industry")

	assert.True(t, domain.IsValidation(err))
	assert.ErrorContains(t, err, "industry-group")
	assert.Zero(t, calls.Load())
}

func TestKodiakClient_SuggestNaicsCodes_InjectsEdition(t *testing.T) {
	client := setupKodiakClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/suggest/naics-codes/bakery", r.URL.Path)
		assert.Equal(t, "hitsPerPage=5&naicsEdition=2022", r.URL.RawQuery)
		writeJSON(w, http.StatusOK, `{"query":"bakery","nbHits":1,"page":0,"nbPages":1,"hitsPerPage":5,
			"hits":[{"objectID":"o1","hash":"h1","code":"311811","description":"Retail Bakeries","sectorTitle":"Manufacturing"}]}`)
	})

	page, err := client.SuggestNaicsCodes(context.Background(), "bakery", ports.SuggestOptions{HitsPerPage: 5})

	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalHits)
	require.Len(t, page.Hits, 1)
	assert.Equal(t, "311811", page.Hits[0].Code)
	assert.Equal(t, "Manufacturing", page.Hits[0].Sector)
}

func TestKodiakClient_SuggestNaicsGroups_NoEdition(t *testing.T) {
	client := setupKodiakClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/suggest/naics-groups/bakery", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		writeJSON(w, http.StatusOK, `{"query":"bakery","nbHits":1,"hits":[{"code":"3118","title":"Bakeries"}]}`)
	})

	page, err := client.SuggestNaicsGroups(context.Background(), "bakery", ports.SuggestOptions{})

	require.NoError(t, err)
	assert.Equal(t, "Bakeries", page.Hits[0].Title)
}

func TestKodiakClient_ProductsEligibleForCode_PreservesDelimiter(t *testing.T) {
	var requestURI string
	client := setupKodiakClient(t, func(w http.ResponseWriter, r *http.Request) {
		requestURI = r.RequestURI
		writeJSON(w, http.StatusOK, `{"code":"722513","count":1,"page":1,"pages":1,
			"products":[{"id":"p1","name":"BOP","ownerId":"ABC123","geos":{"US-MN":true,"US-HI":true,"US-CA":false},"_eligible":true}]}`)
	})

	page, err := client.ProductsEligibleForCode(context.Background(), "722513", ports.EligibleOptions{
		Owners: []string{"ABC123", "DEF456"},
		Geos:   []string{"US-MN", "US-HI"},
	})

	require.NoError(t, err)
	assert.Equal(t, "/v2/products/class-code/naics/722513?geos=US-MN+US-HI&owners=ABC123+DEF456", requestURI)
	require.Len(t, page.Products, 1)
	assert.Equal(t, []string{"US-HI", "US-MN"}, page.Products[0].Geos)
	require.NotNil(t, page.Products[0].Eligible)
	assert.True(t, *page.Products[0].Eligible)
}

func TestKodiakClient_ProductsForUser_Classifications(t *testing.T) {
	var rawQuery string
	client := setupKodiakClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, `{"products":[]}`)
	})

	_, err := client.ProductsForUser(context.Background(), UserQuery{
		Classifications: []Classification{{TaxonomyID: "t1", CodeID: "c1"}, {TaxonomyID: "t2", CodeID: "c2"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "classifications=t1%3Ac1+t2%3Ac2", rawQuery)
}

func TestKodiakClient_CheckEligibility(t *testing.T) {
	client := setupKodiakClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/product/p1/is-eligible-for/311811", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"isEligible":true,"pid":"p1","code":"311811"}`)
	})

	e, err := client.CheckEligibility(context.Background(), "p1", "311811")

	require.NoError(t, err)
	assert.Equal(t, &domain.Eligibility{ProductID: "p1", Code: "311811", Eligible: true}, e)
}

func TestKodiakClient_GetCompany(t *testing.T) {
	client := setupKodiakClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/company/ABC123", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"id":"ABC123","name":"Acme Mutual","isCarrier":true,"joined":1546300800000}`)
	})

	company, err := client.GetCompany(context.Background(), "ABC123")

	require.NoError(t, err)
	assert.Equal(t, "Acme Mutual", company.Name)
	assert.True(t, company.IsCarrier)
	assert.Equal(t, time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), company.Joined)
}

func TestKodiakClient_ListCompanies_RateLimited(t *testing.T) {
	client := setupKodiakClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "companiesPerPage=10&companyType=carrier&page=2", r.URL.RawQuery)
		writeJSON(w, http.StatusTooManyRequests, `{"code":"RATE_LIMIT"}`)
	})

	_, err := client.ListCompanies(context.Background(), ports.CompanyListOptions{CompanyType: "carrier", Page: 2, PerPage: 10})

	var ne *NormalizedError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, &NormalizedError{Status: http.StatusTooManyRequests, Message: "RATE_LIMIT"}, ne)
	assert.True(t, domain.IsUnavailable(err))
}

func TestKodiakClient_ServerErrorIsNormalized(t *testing.T) {
	client := setupKodiakClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.BusinessEntityTypes(context.Background())

	var ne *NormalizedError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, "Internal Server Error", ne.Message)
}

func TestKodiakClient_InvalidJSONIsUnavailable(t *testing.T) {
	client := setupKodiakClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{not json`)
	})

	_, err := client.GetCompany(context.Background(), "ABC123")

	assert.True(t, domain.IsUnavailable(err))
}

func TestKodiakClient_MissingCredentialsSendsNothing(t *testing.T) {
	var calls atomic.Int32
	client := setupKodiakClientWith(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}, pipeline.Config{Auth: pipeline.BasicAuth("", "")})

	_, err := client.BusinessEntityTypes(context.Background())

	require.Error(t, err)
	assert.True(t, pipeline.IsConstructionError(err))
	assert.ErrorIs(t, err, pipeline.ErrMissingCredentials)
	assert.Zero(t, calls.Load())
}

func TestKodiakClient_HealthCheck(t *testing.T) {
	healthy := true
	client := setupKodiakClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/ref-data/business-entity-types", r.URL.Path)
		if !healthy {
			writeJSON(w, http.StatusUnauthorized, `{"message":"bad api key"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"llc":"Limited Liability Company"}`)
	})

	assert.Equal(t, ServiceName, client.Name())
	require.NoError(t, client.Check(context.Background()))

	healthy = false
	err := client.Check(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsForbidden(err))
	assert.Contains(t, err.Error(), "bad api key")
}

func TestDecodeResponse_NilBody(t *testing.T) {
	_, err := DecodeResponse[naicsCodeDTO](nil)
	require.Error(t, err)
}

func TestTranslateSlice_StopsAtFirstFailure(t *testing.T) {
	_, err := TranslateSlice([]productDTO{{ID: "p1"}, {}}, translateProduct)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "translating item 1")
	assert.True(t, domain.IsValidation(err))
}
