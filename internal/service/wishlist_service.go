package service

import (
	"github.com/gemstone-shop/gemstone/internal/models"
	"github.com/gemstone-shop/gemstone/internal/repository"
)

// WishlistDetail is a wishlist with its entries.
type WishlistDetail struct {
	ID     uint                  `json:"id"`
	UserID uint                  `json:"user_id"`
	Items  []models.WishlistItem `json:"items"`
}

// WishlistService manages per-user wishlists, created lazily on first
// access.
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService creates a wishlist service.
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// Get returns the user's wishlist with product details.
func (s *WishlistService) Get(userID uint) (*WishlistDetail, error) {
	wishlist, err := s.getWishlist(userID)
	if err != nil {
		return nil, err
	}
	items, err := s.wishlistRepo.ListItems(wishlist.ID)
	if err != nil {
		return nil, err
	}
	return &WishlistDetail{
		ID:     wishlist.ID,
		UserID: wishlist.UserID,
		Items:  items,
	}, nil
}

// AddItem saves a product to the wishlist. A product can appear once.
func (s *WishlistService) AddItem(userID, productID uint) (*WishlistDetail, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	wishlist, err := s.getWishlist(userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.wishlistRepo.GetItem(wishlist.ID, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrWishlistDuplicate
	}

	item := &models.WishlistItem{
		WishlistID: wishlist.ID,
		ProductID:  productID,
	}
	if err := s.wishlistRepo.CreateItem(item); err != nil {
		return nil, err
	}
	return s.Get(userID)
}

// RemoveItem drops a product from the wishlist.
func (s *WishlistService) RemoveItem(userID, productID uint) (*WishlistDetail, error) {
	wishlist, err := s.getWishlist(userID)
	if err != nil {
		return nil, err
	}
	item, err := s.wishlistRepo.GetItem(wishlist.ID, productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrWishlistItemNotFound
	}
	if err := s.wishlistRepo.DeleteItem(item.ID); err != nil {
		return nil, err
	}
	return s.Get(userID)
}

func (s *WishlistService) getWishlist(userID uint) (*models.Wishlist, error) {
	wishlist, err := s.wishlistRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if wishlist == nil {
		wishlist = &models.Wishlist{UserID: userID}
		if err := s.wishlistRepo.Create(wishlist); err != nil {
			return nil, err
		}
	}
	return wishlist, nil
}
