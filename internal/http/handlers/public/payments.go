package public

import (
	"github.com/gemstone-shop/gemstone/internal/http/handlers/shared"
	"github.com/gemstone-shop/gemstone/internal/http/response"
	"github.com/gemstone-shop/gemstone/internal/models"
	"github.com/gemstone-shop/gemstone/internal/repository"
	"github.com/gemstone-shop/gemstone/internal/service"

	"github.com/gin-gonic/gin"
)

// ListPayments returns the caller's payments. Staff see every payment.
func (h *Handler) ListPayments(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := shared.QueryPagination(c)
	filter := repository.PaymentListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
	}
	if orderID, ok := parseQueryUint(c, "order_id"); ok {
		filter.OrderID = orderID
	}
	payments, total, err := h.PaymentService.List(userID, isStaff(c), filter)
	if err != nil {
		respondError(c, response.CodeInternal, "payment list failed", err)
		return
	}
	response.SuccessWithPage(c, payments, response.NewPagination(page, pageSize, total))
}

// CreatePaymentRequest records a payment against an order.
type CreatePaymentRequest struct {
	OrderID        uint         `json:"order_id" binding:"required"`
	PaymentID      string       `json:"payment_id"`
	Amount         models.Money `json:"amount"`
	Status         string       `json:"status"`
	PaymentMethod  string       `json:"payment_method"`
	PaymentDetails models.JSON  `json:"payment_details"`
}

// CreatePayment attaches a payment to one of the caller's orders.
func (h *Handler) CreatePayment(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	payment, err := h.PaymentService.Create(service.CreatePaymentInput{
		UserID:         userID,
		OrderID:        req.OrderID,
		PaymentID:      req.PaymentID,
		Amount:         req.Amount,
		Status:         req.Status,
		PaymentMethod:  req.PaymentMethod,
		PaymentDetails: req.PaymentDetails,
	})
	if err != nil {
		respondWithMappedError(c, err, paymentErrorRules, response.CodeInternal, "payment create failed")
		return
	}
	response.SuccessWithMsg(c, "payment recorded", payment)
}

// GetPayment returns one payment, scoped like orders.
func (h *Handler) GetPayment(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	payment, err := h.PaymentService.Get(id, userID, isStaff(c))
	if err != nil {
		respondWithMappedError(c, err, paymentErrorRules, response.CodeInternal, "payment fetch failed")
		return
	}
	response.Success(c, payment)
}
