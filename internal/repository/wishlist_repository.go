package repository

import (
	"errors"

	"github.com/gemstone-shop/gemstone/internal/models"

	"gorm.io/gorm"
)

// WishlistRepository is the wishlist data access interface.
type WishlistRepository interface {
	GetByUserID(userID uint) (*models.Wishlist, error)
	Create(wishlist *models.Wishlist) error
	ListItems(wishlistID uint) ([]models.WishlistItem, error)
	GetItem(wishlistID, productID uint) (*models.WishlistItem, error)
	CreateItem(item *models.WishlistItem) error
	DeleteItem(itemID uint) error
	DeleteItemsByProduct(productID uint) error
	WithTx(tx *gorm.DB) WishlistRepository
}

// GormWishlistRepository is the GORM implementation.
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository creates a wishlist repository.
func NewWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// WithTx returns a repository bound to the transaction.
func (r *GormWishlistRepository) WithTx(tx *gorm.DB) WishlistRepository {
	return &GormWishlistRepository{db: tx}
}

// GetByUserID loads a user's wishlist without items. Returns nil when absent.
func (r *GormWishlistRepository) GetByUserID(userID uint) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	if err := r.db.Where("user_id = ?", userID).First(&wishlist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &wishlist, nil
}

// Create inserts a wishlist.
func (r *GormWishlistRepository) Create(wishlist *models.Wishlist) error {
	return r.db.Create(wishlist).Error
}

// ListItems loads the entries of a wishlist with their products.
func (r *GormWishlistRepository) ListItems(wishlistID uint) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.db.Preload("Product").Where("wishlist_id = ?", wishlistID).
		Order("created_at desc").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem looks an entry up by wishlist and product. Returns nil when absent.
func (r *GormWishlistRepository) GetItem(wishlistID, productID uint) (*models.WishlistItem, error) {
	var item models.WishlistItem
	err := r.db.Where("wishlist_id = ? AND product_id = ?", wishlistID, productID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// CreateItem inserts a wishlist entry.
func (r *GormWishlistRepository) CreateItem(item *models.WishlistItem) error {
	return r.db.Create(item).Error
}

// DeleteItem removes a wishlist entry.
func (r *GormWishlistRepository) DeleteItem(itemID uint) error {
	return r.db.Delete(&models.WishlistItem{}, itemID).Error
}

// DeleteItemsByProduct removes every entry referencing the product.
func (r *GormWishlistRepository) DeleteItemsByProduct(productID uint) error {
	return r.db.Where("product_id = ?", productID).Delete(&models.WishlistItem{}).Error
}
