package models

import (
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Product is a catalog item with a live price and sales counters.
type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	CategoryID    uint           `gorm:"not null;index" json:"category_id"`
	Name          string         `gorm:"type:varchar(200);not null" json:"name"`
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description   string         `gorm:"type:text" json:"description"`
	Price         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	PriceDiscount *Money         `gorm:"type:decimal(20,2)" json:"price_discount"`
	Stock         int            `gorm:"not null;default:0" json:"stock"`
	Available     bool           `gorm:"default:true;index" json:"available"`
	Featured      bool           `gorm:"default:false;index" json:"featured"`
	SalesCount    int            `gorm:"not null;default:0" json:"sales_count"`
	ViewCount     int            `gorm:"not null;default:0" json:"view_count"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Category Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Images   []ProductImage `gorm:"foreignKey:ProductID" json:"images,omitempty"`
}

// TableName sets the table name.
func (Product) TableName() string {
	return "products"
}

// ProductImage is an uploaded image attached to a product.
type ProductImage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Image     string    `gorm:"type:varchar(500);not null" json:"image"`
	AltText   string    `gorm:"type:varchar(200);default:''" json:"alt_text"`
	IsMain    bool      `gorm:"default:false" json:"is_main"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name.
func (ProductImage) TableName() string {
	return "product_images"
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases a name and collapses non-alphanumeric runs to hyphens.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugStrip.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
