package public

import (
	"github.com/gemstone-shop/gemstone/internal/http/handlers/shared"
	"github.com/gemstone-shop/gemstone/internal/http/response"
	"github.com/gemstone-shop/gemstone/internal/models"
	"github.com/gemstone-shop/gemstone/internal/repository"
	"github.com/gemstone-shop/gemstone/internal/service"

	"github.com/gin-gonic/gin"
)

// ListOrders returns the caller's orders. Staff see every order.
func (h *Handler) ListOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := shared.QueryPagination(c)
	filter := repository.OrderListFilter{
		Page:          page,
		PageSize:      pageSize,
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
		OrderBy:       c.Query("ordering"),
	}
	orders, total, err := h.OrderService.List(userID, isStaff(c), filter)
	if err != nil {
		respondError(c, response.CodeInternal, "order list failed", err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// CreateOrderRequest is the checkout payload: a shipping snapshot plus
// the chosen payment method.
type CreateOrderRequest struct {
	ShippingAddr    string      `json:"shipping_addr" binding:"required"`
	ShippingCity    string      `json:"shipping_city"`
	ShippingState   string      `json:"shipping_state"`
	ShippingCountry string      `json:"shipping_country"`
	ShippingPostal  string      `json:"shipping_postal"`
	ShippingPhone   string      `json:"shipping_phone"`
	PaymentMethod   string      `json:"payment_method"`
	PaymentDetails  models.JSON `json:"payment_details"`
}

// CreateOrder checks out the caller's cart.
func (h *Handler) CreateOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	order, err := h.OrderService.Checkout(service.CheckoutInput{
		UserID:          userID,
		ShippingAddr:    req.ShippingAddr,
		ShippingCity:    req.ShippingCity,
		ShippingState:   req.ShippingState,
		ShippingCountry: req.ShippingCountry,
		ShippingPostal:  req.ShippingPostal,
		ShippingPhone:   req.ShippingPhone,
		PaymentMethod:   req.PaymentMethod,
		PaymentDetails:  req.PaymentDetails,
	})
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "checkout failed")
		return
	}
	response.SuccessWithMsg(c, "order created", order)
}

// GetOrder returns one order. Orders owned by other users read as missing.
func (h *Handler) GetOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	order, err := h.OrderService.Get(id, userID, isStaff(c))
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "order fetch failed")
		return
	}
	response.Success(c, order)
}
