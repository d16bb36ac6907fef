package service

import "errors"

// Sentinel errors returned by the service layer. Handlers map these to
// response codes with errors.Is rule tables.
var (
	ErrNotFound             = errors.New("resource not found")
	ErrCartEmpty            = errors.New("cart is empty")
	ErrCartItemNotFound     = errors.New("cart item not found")
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
	ErrProductNotFound      = errors.New("product not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrPaymentExists        = errors.New("payment already exists for order")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrWishlistDuplicate    = errors.New("product already in wishlist")
	ErrWishlistItemNotFound = errors.New("wishlist item not found")
	ErrEmailExists          = errors.New("email already registered")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrWeakPassword         = errors.New("password too weak")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidToken         = errors.New("invalid token")
	ErrEmailDisabled        = errors.New("email sending disabled")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrInvalidUpload        = errors.New("invalid upload")
)
