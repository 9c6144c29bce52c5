package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/http/dto"
)

// GetProduct handles GET /api/v1/products/:id.
func (h *ClassificationHandler) GetProduct(c *gin.Context) {
	id, ok := pathParam(c, "id")
	if !ok {
		return
	}

	var req dto.ProductRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	product, err := h.service.GetProduct(c.Request.Context(), id, req.Options())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProductResponse(*product))
}

// CheckEligibility handles GET /api/v1/products/:id/eligibility/:code.
func (h *ClassificationHandler) CheckEligibility(c *gin.Context) {
	id, ok := pathParam(c, "id")
	if !ok {
		return
	}

	code, ok := pathParam(c, "code")
	if !ok {
		return
	}

	e, err := h.service.CheckEligibility(c.Request.Context(), id, code)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewEligibilityResponse(*e))
}

// EligibilityReport handles POST /api/v1/products/:id/eligibility with a
// body of {"codes": [...]}.
func (h *ClassificationHandler) EligibilityReport(c *gin.Context) {
	id, ok := pathParam(c, "id")
	if !ok {
		return
	}

	var req dto.EligibilityReportRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	report, err := h.service.EligibilityReport(c.Request.Context(), id, req.Codes)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewEligibilityReportResponse(report))
}

// ProductsEligibleForCode handles GET /api/v1/products/eligible/:code.
func (h *ClassificationHandler) ProductsEligibleForCode(c *gin.Context) {
	code, ok := pathParam(c, "code")
	if !ok {
		return
	}

	var req dto.EligibleProductsRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	page, err := h.service.ProductsEligibleForCode(c.Request.Context(), code, req.Options())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewEligibleProductsResponse(page))
}
