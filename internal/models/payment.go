package models

import (
	"time"
)

// Payment records the payment attached to an order. At most one per
// order, enforced by the unique index on OrderID.
type Payment struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	OrderID        uint      `gorm:"uniqueIndex;not null" json:"order_id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	PaymentID      string    `gorm:"type:varchar(100);default:''" json:"payment_id"`
	Amount         Money     `gorm:"type:decimal(20,2);not null;default:0" json:"amount"`
	Status         string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentMethod  string    `gorm:"type:varchar(50);default:''" json:"payment_method"`
	PaymentDetails JSON      `gorm:"type:json" json:"payment_details"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Order Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`
}

// TableName sets the table name.
func (Payment) TableName() string {
	return "payments"
}
