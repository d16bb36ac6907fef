package service

import (
	"github.com/gemstone-shop/gemstone/internal/models"
	"github.com/gemstone-shop/gemstone/internal/repository"

	"github.com/shopspring/decimal"
)

// CartDetail is a cart with its lines and derived totals.
type CartDetail struct {
	ID         uint              `json:"id"`
	UserID     uint              `json:"user_id"`
	Items      []models.CartItem `json:"items"`
	TotalPrice models.Money      `json:"total_price"`
	TotalItems int               `json:"total_items"`
}

// CartService manages per-user shopping carts.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Get returns the user's cart with live product details and totals
// computed from the lines.
func (s *CartService) Get(userID uint) (*CartDetail, error) {
	cart, err := s.getCart(userID)
	if err != nil {
		return nil, err
	}
	items, err := s.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	count := 0
	for _, item := range items {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		count += item.Quantity
	}

	return &CartDetail{
		ID:         cart.ID,
		UserID:     cart.UserID,
		Items:      items,
		TotalPrice: models.NewMoneyFromDecimal(total),
		TotalItems: count,
	}, nil
}

// AddItem adds quantity of a product, merging into an existing line.
func (s *CartService) AddItem(userID, productID uint, quantity int) (*CartDetail, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	cart, err := s.getCart(userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.cartRepo.GetItem(cart.ID, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := s.cartRepo.UpdateItemQuantity(existing.ID, existing.Quantity+quantity); err != nil {
			return nil, err
		}
	} else {
		item := &models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := s.cartRepo.CreateItem(item); err != nil {
			return nil, err
		}
	}

	return s.Get(userID)
}

// UpdateItem overwrites the quantity of one of the user's cart lines.
func (s *CartService) UpdateItem(userID, itemID uint, quantity int) (*CartDetail, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	cart, err := s.getCart(userID)
	if err != nil {
		return nil, err
	}
	item, err := s.cartRepo.GetItemByID(cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	if err := s.cartRepo.UpdateItemQuantity(item.ID, quantity); err != nil {
		return nil, err
	}
	return s.Get(userID)
}

// RemoveItem deletes one of the user's cart lines.
func (s *CartService) RemoveItem(userID, itemID uint) (*CartDetail, error) {
	cart, err := s.getCart(userID)
	if err != nil {
		return nil, err
	}
	item, err := s.cartRepo.GetItemByID(cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	if err := s.cartRepo.DeleteItem(item.ID); err != nil {
		return nil, err
	}
	return s.Get(userID)
}

// Clear removes every line from the user's cart. Idempotent.
func (s *CartService) Clear(userID uint) error {
	cart, err := s.getCart(userID)
	if err != nil {
		return err
	}
	return s.cartRepo.ClearItems(cart.ID)
}

// getCart loads the user's cart, creating it for accounts that predate
// eager cart creation.
func (s *CartService) getCart(userID uint) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID}
		if err := s.cartRepo.Create(cart); err != nil {
			return nil, err
		}
	}
	return cart, nil
}
