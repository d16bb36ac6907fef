package service

import (
	"strings"

	"github.com/gemstone-shop/gemstone/internal/constants"
	"github.com/gemstone-shop/gemstone/internal/models"
	"github.com/gemstone-shop/gemstone/internal/repository"

	"gorm.io/gorm"
)

// PaymentService records payments against orders.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
}

// NewPaymentService creates a payment service.
func NewPaymentService(paymentRepo repository.PaymentRepository, orderRepo repository.OrderRepository) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
	}
}

// CreatePaymentInput carries a payment record as reported by the client.
type CreatePaymentInput struct {
	UserID         uint
	OrderID        uint
	PaymentID      string
	Amount         models.Money
	Status         string
	PaymentMethod  string
	PaymentDetails models.JSON
}

// Create attaches a payment to an order the caller owns. An order can
// carry at most one payment. A paid status is mirrored onto the order.
func (s *PaymentService) Create(input CreatePaymentInput) (*models.Payment, error) {
	order, err := s.orderRepo.GetByID(input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != input.UserID {
		return nil, ErrOrderNotFound
	}

	existing, err := s.paymentRepo.GetByOrderID(input.OrderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPaymentExists
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = constants.PaymentStatusPending
	}

	payment := &models.Payment{
		OrderID:        input.OrderID,
		UserID:         input.UserID,
		PaymentID:      strings.TrimSpace(input.PaymentID),
		Amount:         input.Amount,
		Status:         status,
		PaymentMethod:  strings.TrimSpace(input.PaymentMethod),
		PaymentDetails: input.PaymentDetails,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.paymentRepo.WithTx(tx).Create(payment); err != nil {
			return err
		}
		if payment.Status == constants.PaymentStatusPaid {
			order.PaymentStatus = constants.PaymentStatusPaid
			return s.orderRepo.WithTx(tx).Update(order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// List returns payments. Non-staff callers only see their own.
func (s *PaymentService) List(userID uint, isStaff bool, filter repository.PaymentListFilter) ([]models.Payment, int64, error) {
	if !isStaff {
		filter.UserID = userID
	}
	return s.paymentRepo.List(filter)
}

// Get loads one payment, scoped like orders.
func (s *PaymentService) Get(id, userID uint, isStaff bool) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if !isStaff && payment.UserID != userID {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}
