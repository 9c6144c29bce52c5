package acl

import (
	"slices"
	"time"

	"github.com/jsamuelsen/askkodiak-gateway/internal/domain"
)

// External Ask Kodiak payloads. Never exposed outside this package.

type naicsCodeDTO struct {
	Hash        string `json:"hash"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

type naicsGroupDTO struct {
	Code       string   `json:"code"`
	Title      string   `json:"title"`
	Type       string   `json:"type"`
	Parent     string   `json:"parent"`
	Seq        string   `json:"seq"`
	Codes      []string `json:"codes"`
	Decendants []string `json:"decendants"` // sic
}

type naicsDescriptionDTO struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// suggestionsDTO is the search-hit envelope shared by the suggest endpoints.
type suggestionsDTO[T any] struct {
	Query       string `json:"query"`
	NbHits      int    `json:"nbHits"`
	Page        int    `json:"page"`
	NbPages     int    `json:"nbPages"`
	HitsPerPage int    `json:"hitsPerPage"`
	Hits        []T    `json:"hits"`
}

type naicsCodeSuggestionDTO struct {
	ObjectID       string   `json:"objectID"`
	Hash           string   `json:"hash"`
	Code           string   `json:"code"`
	Description    string   `json:"description"`
	SIC            string   `json:"sic"`
	Path           []string `json:"path"`
	SectorTitle    string   `json:"sectorTitle"`
	SubsectorTitle string   `json:"subsectorTitle"`
	ReplacedBy     []string `json:"replacedBy"`
	Replaces       []string `json:"replaces"`
}

type naicsGroupSuggestionDTO struct {
	ObjectID   string   `json:"objectID"`
	Code       string   `json:"code"`
	Title      string   `json:"title"`
	Seq        string   `json:"seq"`
	Decendants []string `json:"decendants"`
}

type productDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	OwnerID      string          `json:"ownerId"`
	OwnerType    string          `json:"ownerType"`
	Admitted     *bool           `json:"admitted"`
	CoverageType []string        `json:"coverageType"`
	Highlights   []string        `json:"highlights"`
	Geos         map[string]bool `json:"geos"`
	Eligible     *bool           `json:"_eligible"`
	Score        int             `json:"_score"`
}

type productsDTO struct {
	Hash            string       `json:"hash"`
	Code            string       `json:"code"`
	Description     string       `json:"description"`
	Type            string       `json:"type"`
	Count           int          `json:"count"`
	ProductsPerPage int          `json:"productsPerPage"`
	Page            int          `json:"page"`
	Pages           int          `json:"pages"`
	Products        []productDTO `json:"products"`
}

type eligibilityDTO struct {
	IsEligible             bool    `json:"isEligible"`
	PercentOfCodesEligible float64 `json:"percentOfCodesEligible"`
	PID                    string  `json:"pid"`
	Code                   string  `json:"code"`
}

type companyDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Shortname   string   `json:"shortname"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Phone       string   `json:"phone"`
	Website     string   `json:"website"`
	Logo        string   `json:"logo"`
	Naic        string   `json:"naic"`
	IsCarrier   bool     `json:"isCarrier"`
	Joined      int64    `json:"joined"` // epoch milliseconds
	Products    []string `json:"products"`
}

type companiesDTO struct {
	Count            int          `json:"count"`
	CompaniesPerPage int          `json:"companiesPerPage"`
	Page             int          `json:"page"`
	Pages            int          `json:"pages"`
	Companies        []companyDTO `json:"companies"`
}

func translateNaicsCode(ext *naicsCodeDTO) (domain.NaicsCode, error) {
	if ext.Hash == "" {
		return domain.NaicsCode{}, domain.NewValidationError("hash", "missing from naics code")
	}

	return domain.NaicsCode{Hash: ext.Hash, Code: ext.Code, Description: ext.Description}, nil
}

func translateNaicsGroup(ext *naicsGroupDTO) (domain.NaicsGroup, error) {
	if ext.Code == "" {
		return domain.NaicsGroup{}, domain.NewValidationError("code", "missing from naics group")
	}

	return domain.NaicsGroup{
		Code:        ext.Code,
		Title:       ext.Title,
		Type:        ext.Type,
		Parent:      ext.Parent,
		Seq:         ext.Seq,
		Codes:       ext.Codes,
		Descendants: ext.Decendants,
	}, nil
}

func translateCodeSuggestion(ext *naicsCodeSuggestionDTO) (domain.NaicsCodeSuggestion, error) {
	return domain.NaicsCodeSuggestion{
		ObjectID:    ext.ObjectID,
		Hash:        ext.Hash,
		Code:        ext.Code,
		Description: ext.Description,
		SIC:         ext.SIC,
		Path:        ext.Path,
		Sector:      ext.SectorTitle,
		Subsector:   ext.SubsectorTitle,
		ReplacedBy:  ext.ReplacedBy,
		Replaces:    ext.Replaces,
	}, nil
}

func translateGroupSuggestion(ext *naicsGroupSuggestionDTO) (domain.NaicsGroupSuggestion, error) {
	return domain.NaicsGroupSuggestion{
		ObjectID:    ext.ObjectID,
		Code:        ext.Code,
		Title:       ext.Title,
		Seq:         ext.Seq,
		Descendants: ext.Decendants,
	}, nil
}

func translateSuggestions[E any, D any](ext *suggestionsDTO[E], translate Translator[E, D]) (*domain.SuggestionPage[D], error) {
	hits, err := TranslateSlice(ext.Hits, translate)
	if err != nil {
		return nil, err
	}

	return &domain.SuggestionPage[D]{
		Query:       ext.Query,
		Hits:        hits,
		TotalHits:   ext.NbHits,
		Page:        ext.Page,
		Pages:       ext.NbPages,
		HitsPerPage: ext.HitsPerPage,
	}, nil
}

func translateProduct(ext *productDTO) (domain.Product, error) {
	if ext.ID == "" {
		return domain.Product{}, domain.NewValidationError("id", "missing from product")
	}

	// geos is a set keyed by ISO 3166-2 code.
	geos := make([]string, 0, len(ext.Geos))
	for geo, offered := range ext.Geos {
		if offered {
			geos = append(geos, geo)
		}
	}
	slices.Sort(geos)

	return domain.Product{
		ID:           ext.ID,
		Name:         ext.Name,
		Description:  ext.Description,
		OwnerID:      ext.OwnerID,
		OwnerType:    ext.OwnerType,
		Admitted:     ext.Admitted,
		CoverageType: ext.CoverageType,
		Highlights:   ext.Highlights,
		Geos:         geos,
		Eligible:     ext.Eligible,
		Score:        ext.Score,
	}, nil
}

func translateProducts(ext *productsDTO) (*domain.ProductPage, error) {
	products, err := TranslateSlice(ext.Products, translateProduct)
	if err != nil {
		return nil, err
	}

	return &domain.ProductPage{
		Hash:        ext.Hash,
		Code:        ext.Code,
		Description: ext.Description,
		Type:        ext.Type,
		Count:       ext.Count,
		Page:        ext.Page,
		Pages:       ext.Pages,
		PerPage:     ext.ProductsPerPage,
		Products:    products,
	}, nil
}

func translateEligibility(ext *eligibilityDTO) domain.Eligibility {
	return domain.Eligibility{
		ProductID:              ext.PID,
		Code:                   ext.Code,
		Eligible:               ext.IsEligible,
		PercentOfCodesEligible: ext.PercentOfCodesEligible,
	}
}

// translateGroupEligibility keys each entry by its group; the payload may
// omit code and pid inside the values.
func translateGroupEligibility(productID string, ext map[string]eligibilityDTO) map[string]domain.Eligibility {
	out := make(map[string]domain.Eligibility, len(ext))

	for group, dto := range ext {
		e := translateEligibility(&dto)
		e.Code = group
		if e.ProductID == "" {
			e.ProductID = productID
		}

		out[group] = e
	}

	return out
}

func translateCompany(ext *companyDTO) (domain.Company, error) {
	if ext.ID == "" {
		return domain.Company{}, domain.NewValidationError("id", "missing from company")
	}

	c := domain.Company{
		ID:          ext.ID,
		Name:        ext.Name,
		ShortName:   ext.Shortname,
		Description: ext.Description,
		Location:    ext.Location,
		Phone:       ext.Phone,
		Website:     ext.Website,
		Logo:        ext.Logo,
		NAIC:        ext.Naic,
		IsCarrier:   ext.IsCarrier,
		Products:    ext.Products,
	}
	if ext.Joined > 0 {
		c.Joined = time.UnixMilli(ext.Joined).UTC()
	}

	return c, nil
}

func translateCompanies(ext *companiesDTO) (*domain.CompanyPage, error) {
	companies, err := TranslateSlice(ext.Companies, translateCompany)
	if err != nil {
		return nil, err
	}

	return &domain.CompanyPage{
		Count:     ext.Count,
		Page:      ext.Page,
		Pages:     ext.Pages,
		PerPage:   ext.CompaniesPerPage,
		Companies: companies,
	}, nil
}
