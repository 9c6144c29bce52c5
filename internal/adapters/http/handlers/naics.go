package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/http/dto"
)

// GetNaicsCode handles GET /api/v1/naics/codes/:hash.
func (h *ClassificationHandler) GetNaicsCode(c *gin.Context) {
	hash, ok := pathParam(c, "hash")
	if !ok {
		return
	}

	code, err := h.service.GetNaicsCode(c.Request.Context(), hash)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewNaicsCodeResponse(*code))
}

// ResolveCodes handles GET /api/v1/naics/codes?hashes=a,b. Unknown hashes
// are listed under "missing" rather than failing the request.
func (h *ClassificationHandler) ResolveCodes(c *gin.Context) {
	var req dto.ResolveRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		dto.RespondWithCode(c, dto.ErrorCodeBadRequest, err.Error())
		return
	}

	req.Normalize()

	if err := dto.Validate(req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	res, err := h.service.ResolveCodes(c.Request.Context(), req.Hashes)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResolutionResponse(res))
}

// GetNaicsGroup handles GET /api/v1/naics/groups/:group.
func (h *ClassificationHandler) GetNaicsGroup(c *gin.Context) {
	group, ok := pathParam(c, "group")
	if !ok {
		return
	}

	g, err := h.service.GetNaicsGroup(c.Request.Context(), group)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewNaicsGroupResponse(g))
}

// Suggest handles GET /api/v1/naics/suggest?q=. Code and group suggestions
// are fetched concurrently and either failure fails the request.
func (h *ClassificationHandler) Suggest(c *gin.Context) {
	var req dto.SuggestRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	s, err := h.service.Suggest(c.Request.Context(), req.Q, req.Options())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuggestionsResponse(s))
}

// SearchCodes handles GET /api/v1/naics/search?q=&limit=.
func (h *ClassificationHandler) SearchCodes(c *gin.Context) {
	var req dto.SearchRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	matches, err := h.service.SearchCodes(c.Request.Context(), req.Q, req.Limit)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"query": req.Q, "matches": dto.NewCodeMatchResponses(matches)})
}
