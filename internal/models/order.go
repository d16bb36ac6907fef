package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is a placed checkout with a frozen total and a shipping snapshot.
type Order struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	Status         string         `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentStatus  string         `gorm:"type:varchar(20);not null;default:'pending';index" json:"payment_status"`
	TotalPrice     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`
	ShippingAddr   string         `gorm:"type:varchar(255);not null" json:"shipping_address"`
	ShippingCity   string         `gorm:"type:varchar(100);default:''" json:"shipping_city"`
	ShippingState  string         `gorm:"type:varchar(100);default:''" json:"shipping_state"`
	ShippingCountry string        `gorm:"type:varchar(100);default:''" json:"shipping_country"`
	ShippingPostal string         `gorm:"type:varchar(20);default:''" json:"shipping_postal_code"`
	ShippingPhone  string         `gorm:"type:varchar(32);default:''" json:"shipping_phone"`
	PaymentMethod  string         `gorm:"type:varchar(50);default:''" json:"payment_method"`
	PaymentDetails JSON           `gorm:"type:json" json:"payment_details"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	User  User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order. Price is copied from the product
// at checkout and never updated afterwards.
type OrderItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     Money     `gorm:"type:decimal(20,2);not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName sets the table name.
func (OrderItem) TableName() string {
	return "order_items"
}
