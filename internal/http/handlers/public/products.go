package public

import (
	"strconv"

	handlershared "github.com/gemstone-shop/gemstone/internal/http/handlers/shared"
	"github.com/gemstone-shop/gemstone/internal/http/response"
	"github.com/gemstone-shop/gemstone/internal/models"
	"github.com/gemstone-shop/gemstone/internal/repository"
	"github.com/gemstone-shop/gemstone/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ListProducts lists products with filters and ordering.
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	filter := repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     c.Query("search"),
		OrderBy:    c.Query("ordering"),
		WithImages: true,
	}
	if raw := c.Query("category"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.CategoryID = uint(id)
		}
	}
	if raw := c.Query("available"); raw != "" {
		if b, err := strconv.ParseBool(raw); err == nil {
			filter.Available = &b
		}
	}
	if raw := c.Query("featured"); raw != "" {
		if b, err := strconv.ParseBool(raw); err == nil {
			filter.Featured = &b
		}
	}
	if raw := c.Query("min_price"); raw != "" {
		if d, err := decimal.NewFromString(raw); err == nil {
			filter.MinPrice = &d
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if d, err := decimal.NewFromString(raw); err == nil {
			filter.MaxPrice = &d
		}
	}

	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "product list failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProduct returns one product and counts the view.
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	product, err := h.ProductService.Get(id)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "product fetch failed")
		return
	}
	response.Success(c, product)
}

// ProductRequest carries the writable product fields.
type ProductRequest struct {
	CategoryID    uint          `json:"category_id" binding:"required"`
	Name          string        `json:"name" binding:"required"`
	Slug          string        `json:"slug"`
	Description   string        `json:"description"`
	Price         models.Money  `json:"price"`
	PriceDiscount *models.Money `json:"price_discount"`
	Stock         int           `json:"stock"`
	Available     *bool         `json:"available"`
	Featured      *bool         `json:"featured"`
}

// CreateProduct creates a product.
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	product, err := h.ProductService.Create(service.ProductInput{
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Slug:          req.Slug,
		Description:   req.Description,
		Price:         req.Price,
		PriceDiscount: req.PriceDiscount,
		Stock:         req.Stock,
		Available:     req.Available,
		Featured:      req.Featured,
	})
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "product create failed")
		return
	}
	response.SuccessWithMsg(c, "created", product)
}

// UpdateProduct updates a product.
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	product, err := h.ProductService.Update(id, service.ProductInput{
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Slug:          req.Slug,
		Description:   req.Description,
		Price:         req.Price,
		PriceDiscount: req.PriceDiscount,
		Stock:         req.Stock,
		Available:     req.Available,
		Featured:      req.Featured,
	})
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "product update failed")
		return
	}
	response.Success(c, product)
}

// DeleteProduct removes a product.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "product delete failed")
		return
	}
	response.SuccessWithMsg(c, "deleted", nil)
}

// ListProductImages lists the images of one product.
func (h *Handler) ListProductImages(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	images, err := h.ProductService.ListImages(id)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "image list failed")
		return
	}
	response.Success(c, images)
}

// UploadProductImage stores a multipart image upload for a product.
func (h *Handler) UploadProductImage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, response.CodeBadRequest, "image file missing", err)
		return
	}
	isMain, _ := strconv.ParseBool(c.DefaultPostForm("is_main", "false"))
	image, err := h.ProductService.UploadImage(id, file, c.PostForm("alt_text"), isMain)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "image upload failed")
		return
	}
	response.SuccessWithMsg(c, "uploaded", image)
}
