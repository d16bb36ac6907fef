package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a customer account. Username mirrors Email.
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	Username     string         `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string         `gorm:"not null" json:"-"`
	FirstName    string         `gorm:"default:''" json:"first_name"`
	LastName     string         `gorm:"default:''" json:"last_name"`
	IsStaff      bool           `gorm:"default:false" json:"is_staff"`
	LastLoginAt  *time.Time     `json:"last_login_at"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Profile *Profile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}

// Profile carries the optional contact details of a user.
type Profile struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UserID      uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	PhoneNumber string    `gorm:"type:varchar(32);default:''" json:"phone_number"`
	Address     string    `gorm:"type:varchar(255);default:''" json:"address"`
	City        string    `gorm:"type:varchar(100);default:''" json:"city"`
	State       string    `gorm:"type:varchar(100);default:''" json:"state"`
	Country     string    `gorm:"type:varchar(100);default:''" json:"country"`
	PostalCode  string    `gorm:"type:varchar(20);default:''" json:"postal_code"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName sets the table name.
func (Profile) TableName() string {
	return "profiles"
}
