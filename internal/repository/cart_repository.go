package repository

import (
	"errors"

	"github.com/gemstone-shop/gemstone/internal/models"

	"gorm.io/gorm"
)

// CartRepository is the cart data access interface. Carts are created
// with the account; only the item rows churn.
type CartRepository interface {
	GetByUserID(userID uint) (*models.Cart, error)
	Create(cart *models.Cart) error
	ListItems(cartID uint) ([]models.CartItem, error)
	GetItem(cartID, productID uint) (*models.CartItem, error)
	GetItemByID(cartID, itemID uint) (*models.CartItem, error)
	CreateItem(item *models.CartItem) error
	UpdateItemQuantity(itemID uint, quantity int) error
	DeleteItem(itemID uint) error
	DeleteItemsByProduct(productID uint) error
	ClearItems(cartID uint) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository is the GORM implementation.
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a cart repository.
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetByUserID loads a user's cart without items. Returns nil when absent.
func (r *GormCartRepository) GetByUserID(userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// Create inserts a cart.
func (r *GormCartRepository) Create(cart *models.Cart) error {
	return r.db.Create(cart).Error
}

// ListItems loads the lines of a cart with their products.
func (r *GormCartRepository) ListItems(cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.Preload("Product").Where("cart_id = ?", cartID).
		Order("created_at asc").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem looks a line up by cart and product. Returns nil when absent.
func (r *GormCartRepository) GetItem(cartID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetItemByID looks a line up by ID within a cart. Returns nil when absent.
func (r *GormCartRepository) GetItemByID(cartID, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("id = ? AND cart_id = ?", itemID, cartID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// CreateItem inserts a cart line.
func (r *GormCartRepository) CreateItem(item *models.CartItem) error {
	return r.db.Create(item).Error
}

// UpdateItemQuantity overwrites a line's quantity.
func (r *GormCartRepository) UpdateItemQuantity(itemID uint, quantity int) error {
	return r.db.Model(&models.CartItem{}).Where("id = ?", itemID).
		Update("quantity", quantity).Error
}

// DeleteItem removes one cart line.
func (r *GormCartRepository) DeleteItem(itemID uint) error {
	return r.db.Delete(&models.CartItem{}, itemID).Error
}

// DeleteItemsByProduct removes every line referencing the product.
func (r *GormCartRepository) DeleteItemsByProduct(productID uint) error {
	return r.db.Where("product_id = ?", productID).Delete(&models.CartItem{}).Error
}

// ClearItems removes all lines of a cart.
func (r *GormCartRepository) ClearItems(cartID uint) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
