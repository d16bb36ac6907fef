package public

import (
	"github.com/gemstone-shop/gemstone/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetWishlist returns the user's wishlist, creating it on first touch.
func (h *Handler) GetWishlist(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	wishlist, err := h.WishlistService.Get(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "wishlist fetch failed", err)
		return
	}
	response.Success(c, wishlist)
}

// WishlistItemRequest names the product to add or remove.
type WishlistItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// AddWishlistItem saves a product onto the wishlist. Duplicates are rejected.
func (h *Handler) AddWishlistItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req WishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	wishlist, err := h.WishlistService.AddItem(userID, req.ProductID)
	if err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, response.CodeInternal, "wishlist update failed")
		return
	}
	response.Success(c, wishlist)
}

// RemoveWishlistItem drops a product from the wishlist.
func (h *Handler) RemoveWishlistItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req WishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	wishlist, err := h.WishlistService.RemoveItem(userID, req.ProductID)
	if err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, response.CodeInternal, "wishlist update failed")
		return
	}
	response.Success(c, wishlist)
}
