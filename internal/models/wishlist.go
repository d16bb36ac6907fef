package models

import (
	"time"
)

// Wishlist is a per-user saved-products list, created lazily on first
// access.
type Wishlist struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []WishlistItem `gorm:"foreignKey:WishlistID" json:"items,omitempty"`
}

// TableName sets the table name.
func (Wishlist) TableName() string {
	return "wishlists"
}

// WishlistItem links a wishlist to a product, at most once per pair.
type WishlistItem struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	WishlistID uint      `gorm:"not null;index;uniqueIndex:idx_wishlist_product" json:"wishlist_id"`
	ProductID  uint      `gorm:"not null;uniqueIndex:idx_wishlist_product" json:"product_id"`
	CreatedAt  time.Time `json:"created_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName sets the table name.
func (WishlistItem) TableName() string {
	return "wishlist_items"
}
