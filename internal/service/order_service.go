package service

import (
	"strings"

	"github.com/gemstone-shop/gemstone/internal/constants"
	"github.com/gemstone-shop/gemstone/internal/models"
	"github.com/gemstone-shop/gemstone/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService handles checkout and order queries.
type OrderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewOrderService creates an order service.
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, productRepo repository.ProductRepository) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// CheckoutInput carries the shipping snapshot plus the payment method.
type CheckoutInput struct {
	UserID          uint
	ShippingAddr    string
	ShippingCity    string
	ShippingState   string
	ShippingCountry string
	ShippingPostal  string
	ShippingPhone   string
	PaymentMethod   string
	PaymentDetails  models.JSON
}

// Checkout turns the user's cart into an order in one transaction: the
// total is computed from live prices, each line freezes the price it was
// sold at, sales counters are bumped and the cart is emptied. An empty
// cart aborts with no mutation.
func (s *OrderService) Checkout(input CheckoutInput) (*models.Order, error) {
	var created *models.Order

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		cart, err := cartRepo.GetByUserID(input.UserID)
		if err != nil {
			return err
		}
		if cart == nil {
			return ErrCartEmpty
		}
		items, err := cartRepo.ListItems(cart.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrCartEmpty
		}

		total := decimal.Zero
		for _, item := range items {
			total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		order := &models.Order{
			UserID:          input.UserID,
			Status:          constants.OrderStatusPending,
			PaymentStatus:   constants.PaymentStatusPending,
			TotalPrice:      models.NewMoneyFromDecimal(total),
			ShippingAddr:    strings.TrimSpace(input.ShippingAddr),
			ShippingCity:    strings.TrimSpace(input.ShippingCity),
			ShippingState:   strings.TrimSpace(input.ShippingState),
			ShippingCountry: strings.TrimSpace(input.ShippingCountry),
			ShippingPostal:  strings.TrimSpace(input.ShippingPostal),
			ShippingPhone:   strings.TrimSpace(input.ShippingPhone),
			PaymentMethod:   strings.TrimSpace(input.PaymentMethod),
			PaymentDetails:  input.PaymentDetails,
		}
		if err := orderRepo.Create(order); err != nil {
			return err
		}

		orderItems := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			orderItems = append(orderItems, models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Product.Price,
			})
		}
		if err := orderRepo.CreateItems(orderItems); err != nil {
			return err
		}

		for _, item := range items {
			if err := productRepo.IncrementSalesCount(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if err := cartRepo.ClearItems(cart.ID); err != nil {
			return err
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.orderRepo.GetByID(created.ID)
}

// List returns orders. Non-staff callers only see their own.
func (s *OrderService) List(userID uint, isStaff bool, filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if !isStaff {
		filter.UserID = userID
	}
	return s.orderRepo.List(filter)
}

// Get loads one order with its lines. A non-staff caller asking for
// another user's order gets not-found, never forbidden.
func (s *OrderService) Get(id, userID uint, isStaff bool) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !isStaff && order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
