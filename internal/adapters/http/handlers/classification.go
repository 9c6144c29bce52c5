package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/http/dto"
	"github.com/jsamuelsen/askkodiak-gateway/internal/app"
)

// ClassificationHandler serves NAICS, product, company and reference data
// lookups backed by Ask Kodiak.
type ClassificationHandler struct {
	service *app.ClassificationService
}

// NewClassificationHandler creates a new classification handler.
func NewClassificationHandler(service *app.ClassificationService) *ClassificationHandler {
	return &ClassificationHandler{service: service}
}

// RegisterRoutes registers the API routes on rg:
//
//	GET  /naics/codes?hashes=         resolve many hashes
//	GET  /naics/codes/:hash           one code
//	GET  /naics/groups/:group         one hierarchy node
//	GET  /naics/suggest?q=            code and group suggestions
//	GET  /naics/search?q=&limit=      fuzzy search over every code
//	GET  /products/:id
//	GET  /products/:id/eligibility/:code
//	POST /products/:id/eligibility    report over many codes
//	GET  /products/eligible/:code
//	GET  /companies
//	GET  /companies/:id
//	GET  /ref-data/entity-types
func (h *ClassificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	naics := rg.Group("/naics")
	naics.GET("/codes", h.ResolveCodes)
	naics.GET("/codes/:hash", h.GetNaicsCode)
	naics.GET("/groups/:group", h.GetNaicsGroup)
	naics.GET("/suggest", h.Suggest)
	naics.GET("/search", h.SearchCodes)

	products := rg.Group("/products")
	products.GET("/eligible/:code", h.ProductsEligibleForCode)
	products.GET("/:id", h.GetProduct)
	products.GET("/:id/eligibility/:code", h.CheckEligibility)
	products.POST("/:id/eligibility", h.EligibilityReport)

	companies := rg.Group("/companies")
	companies.GET("", h.ListCompanies)
	companies.GET("/:id", h.GetCompany)

	rg.GET("/ref-data/entity-types", h.EntityTypes)
}

// pathParam returns a trimmed path parameter, writing a 400 when blank.
func pathParam(c *gin.Context, name string) (string, bool) {
	v := strings.TrimSpace(c.Param(name))
	if v == "" {
		dto.RespondWithCode(c, dto.ErrorCodeBadRequest, name+" is required")
		return "", false
	}

	return v, true
}

// GetCompany handles GET /api/v1/companies/:id.
func (h *ClassificationHandler) GetCompany(c *gin.Context) {
	id, ok := pathParam(c, "id")
	if !ok {
		return
	}

	company, err := h.service.GetCompany(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCompanyResponse(*company))
}

// ListCompanies handles GET /api/v1/companies.
func (h *ClassificationHandler) ListCompanies(c *gin.Context) {
	var req dto.CompanyListRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	page, err := h.service.ListCompanies(c.Request.Context(), req.Options())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCompanyPageResponse(page))
}

// EntityTypes handles GET /api/v1/ref-data/entity-types.
func (h *ClassificationHandler) EntityTypes(c *gin.Context) {
	types, err := h.service.EntityTypes(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, types)
}
