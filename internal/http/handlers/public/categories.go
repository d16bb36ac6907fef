package public

import (
	"strconv"

	handlershared "github.com/gemstone-shop/gemstone/internal/http/handlers/shared"
	"github.com/gemstone-shop/gemstone/internal/http/response"
	"github.com/gemstone-shop/gemstone/internal/repository"
	"github.com/gemstone-shop/gemstone/internal/service"

	"github.com/gin-gonic/gin"
)

// ListCategories lists categories with search and ordering.
func (h *Handler) ListCategories(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	filter := repository.CategoryListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
		OrderBy:  c.Query("ordering"),
	}
	categories, total, err := h.CategoryService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "category list failed", err)
		return
	}
	response.SuccessWithPage(c, categories, response.NewPagination(page, pageSize, total))
}

// GetCategory returns one category.
func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	category, err := h.CategoryService.Get(id)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "category fetch failed")
		return
	}
	response.Success(c, category)
}

// CategoryRequest carries the writable category fields.
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// CreateCategory creates a category.
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	category, err := h.CategoryService.Create(service.CategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "category create failed", err)
		return
	}
	response.SuccessWithMsg(c, "created", category)
}

// UpdateCategory updates a category.
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	category, err := h.CategoryService.Update(id, service.CategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "category update failed")
		return
	}
	response.Success(c, category)
}

// DeleteCategory removes a category.
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(id); err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "category delete failed")
		return
	}
	response.SuccessWithMsg(c, "deleted", nil)
}

func parseIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid id", nil)
		return 0, false
	}
	return uint(id), true
}

func parseQueryUint(c *gin.Context, key string) (uint, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}
