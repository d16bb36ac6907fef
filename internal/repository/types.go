package repository

import "github.com/shopspring/decimal"

// CategoryListFilter holds category list query parameters.
type CategoryListFilter struct {
	Page     int
	PageSize int
	Search   string
	OrderBy  string
}

// ProductListFilter holds product list query parameters.
type ProductListFilter struct {
	Page       int
	PageSize   int
	CategoryID uint
	Available  *bool
	Featured   *bool
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Search     string
	OrderBy    string
	WithImages bool
}

// OrderListFilter holds order list query parameters. UserID zero means
// no owner scoping (staff view).
type OrderListFilter struct {
	Page          int
	PageSize      int
	UserID        uint
	Status        string
	PaymentStatus string
	OrderBy       string
}

// PaymentListFilter holds payment list query parameters.
type PaymentListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	OrderID  uint
	Status   string
}
