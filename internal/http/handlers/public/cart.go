package public

import (
	"github.com/gemstone-shop/gemstone/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCart returns the user's cart with computed totals.
func (h *Handler) GetCart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	cart, err := h.CartService.Get(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "cart fetch failed", err)
		return
	}
	response.Success(c, cart)
}

// AddCartItemRequest adds quantity of a product to the cart. Quantity is
// a pointer so an omitted field defaults to 1 while an explicit zero is
// still rejected as invalid.
type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  *int `json:"quantity"`
}

// AddCartItem merges a product into the cart.
func (h *Handler) AddCartItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	cart, err := h.CartService.AddItem(userID, req.ProductID, quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart update failed")
		return
	}
	response.Success(c, cart)
}

// UpdateCartItemRequest overwrites a cart line quantity.
type UpdateCartItemRequest struct {
	ItemID   uint `json:"item_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required"`
}

// UpdateCartItem sets the quantity of one cart line.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	cart, err := h.CartService.UpdateItem(userID, req.ItemID, req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart update failed")
		return
	}
	response.Success(c, cart)
}

// RemoveCartItemRequest drops one cart line.
type RemoveCartItemRequest struct {
	ItemID uint `json:"item_id" binding:"required"`
}

// RemoveCartItem deletes one cart line.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req RemoveCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	cart, err := h.CartService.RemoveItem(userID, req.ItemID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart update failed")
		return
	}
	response.Success(c, cart)
}

// ClearCart empties the cart. Idempotent.
func (h *Handler) ClearCart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(userID); err != nil {
		respondError(c, response.CodeInternal, "cart clear failed", err)
		return
	}
	response.SuccessWithMsg(c, "cleared", nil)
}
