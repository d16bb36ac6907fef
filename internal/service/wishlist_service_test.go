package service

import (
	"errors"
	"testing"

	"github.com/gemstone-shop/gemstone/internal/models"
	"github.com/gemstone-shop/gemstone/internal/repository"

	"gorm.io/gorm"
)

func newWishlistServiceForTest(db *gorm.DB) *WishlistService {
	return NewWishlistService(repository.NewWishlistRepository(db), repository.NewProductRepository(db))
}

func TestWishlistLazyCreation(t *testing.T) {
	db := setupTestDB(t, "wishlist_lazy")
	user := createTestUser(t, db, "wish@example.com")
	svc := newWishlistServiceForTest(db)

	var count int64
	if err := db.Model(&models.Wishlist{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatal("wishlist created before first access")
	}

	detail, err := svc.Get(user.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if detail.UserID != user.ID {
		t.Fatalf("user want %d got %d", user.ID, detail.UserID)
	}
	if err := db.Model(&models.Wishlist{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("wishlists want 1 got %d", count)
	}
}

func TestWishlistDuplicateRejected(t *testing.T) {
	db := setupTestDB(t, "wishlist_dup")
	user := createTestUser(t, db, "dup@example.com")
	product := createTestProduct(t, db, "Gold Locket", "450.00", 8)
	svc := newWishlistServiceForTest(db)

	detail, err := svc.AddItem(user.ID, product.ID)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if len(detail.Items) != 1 {
		t.Fatalf("items want 1 got %d", len(detail.Items))
	}

	if _, err := svc.AddItem(user.ID, product.ID); !errors.Is(err, ErrWishlistDuplicate) {
		t.Fatalf("want ErrWishlistDuplicate got %v", err)
	}
	if _, err := svc.AddItem(user.ID, 9999); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound got %v", err)
	}
}

func TestWishlistRemoveItem(t *testing.T) {
	db := setupTestDB(t, "wishlist_remove")
	user := createTestUser(t, db, "remove-wish@example.com")
	product := createTestProduct(t, db, "Silver Pendant", "120.00", 12)
	svc := newWishlistServiceForTest(db)

	if _, err := svc.AddItem(user.ID, product.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	detail, err := svc.RemoveItem(user.ID, product.ID)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(detail.Items) != 0 {
		t.Fatalf("items want 0 got %d", len(detail.Items))
	}

	if _, err := svc.RemoveItem(user.ID, product.ID); !errors.Is(err, ErrWishlistItemNotFound) {
		t.Fatalf("want ErrWishlistItemNotFound got %v", err)
	}
}
