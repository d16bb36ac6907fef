package service

import (
	"errors"
	"testing"

	"github.com/gemstone-shop/gemstone/internal/config"
	"github.com/gemstone-shop/gemstone/internal/models"
	"github.com/gemstone-shop/gemstone/internal/repository"

	"gorm.io/gorm"
)

func newProductServiceForTest(t *testing.T, db *gorm.DB) *ProductService {
	t.Helper()
	cfg := &config.Config{}
	cfg.Upload.Dir = t.TempDir()
	cfg.Upload.MaxSize = 1 << 20
	cfg.Upload.AllowedExtensions = []string{".jpg", ".png"}
	return NewProductService(cfg, repository.NewProductRepository(db), repository.NewCategoryRepository(db),
		repository.NewCartRepository(db), repository.NewWishlistRepository(db))
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Slug: models.Slugify(name)}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return category
}

func TestProductCreateRequiresCategory(t *testing.T) {
	db := setupTestDB(t, "product_category")
	svc := newProductServiceForTest(t, db)

	price, _ := models.NewMoneyFromString("1950.00")
	_, err := svc.Create(ProductInput{CategoryID: 99, Name: "1 oz Gold Bar", Price: price})
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("want ErrCategoryNotFound got %v", err)
	}
}

func TestProductSlugUniqued(t *testing.T) {
	db := setupTestDB(t, "product_slug")
	svc := newProductServiceForTest(t, db)
	category := createTestCategory(t, db, "Gold Bullion")

	price, _ := models.NewMoneyFromString("1950.00")
	first, err := svc.Create(ProductInput{CategoryID: category.ID, Name: "1 oz Gold Bar", Price: price})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if first.Slug != "1-oz-gold-bar" {
		t.Fatalf("slug want 1-oz-gold-bar got %s", first.Slug)
	}

	second, err := svc.Create(ProductInput{CategoryID: category.ID, Name: "1 oz Gold Bar", Price: price})
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if second.Slug != "1-oz-gold-bar-2" {
		t.Fatalf("slug want 1-oz-gold-bar-2 got %s", second.Slug)
	}
}

func TestProductGetBumpsViewCount(t *testing.T) {
	db := setupTestDB(t, "product_views")
	svc := newProductServiceForTest(t, db)
	category := createTestCategory(t, db, "Silver Products")

	price, _ := models.NewMoneyFromString("28.50")
	product, err := svc.Create(ProductInput{CategoryID: category.ID, Name: "Silver Maple Leaf", Price: price})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := svc.Get(product.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ViewCount != 1 {
		t.Fatalf("view count want 1 got %d", got.ViewCount)
	}
	if _, err := svc.Get(product.ID); err != nil {
		t.Fatalf("second get failed: %v", err)
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.ViewCount != 2 {
		t.Fatalf("stored view count want 2 got %d", reloaded.ViewCount)
	}
}

func TestProductGetMissing(t *testing.T) {
	db := setupTestDB(t, "product_missing")
	svc := newProductServiceForTest(t, db)

	if _, err := svc.Get(404); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound got %v", err)
	}
	if err := svc.Delete(404); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound got %v", err)
	}
}

func TestIsAllowedExtension(t *testing.T) {
	allowed := []string{".jpg", "png", " .WEBP "}

	tests := []struct {
		ext  string
		want bool
	}{
		{".jpg", true},
		{".png", true},  // bare extension in config gains a dot
		{".webp", true}, // whitespace and case handled
		{".exe", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isAllowedExtension(tt.ext, allowed); got != tt.want {
			t.Errorf("isAllowedExtension(%q) = %v, want %v", tt.ext, got, tt.want)
		}
	}

	// an empty allow list accepts anything with an extension
	if !isAllowedExtension(".bin", nil) {
		t.Error("empty allow list should accept .bin")
	}
	if isAllowedExtension("", nil) {
		t.Error("empty allow list should still reject missing extension")
	}
}

func TestDeleteProductRemovesCartAndWishlistLines(t *testing.T) {
	db := setupTestDB(t, "product_delete_cascade")
	user := createTestUser(t, db, "cascade@example.com")
	doomed := createTestProduct(t, db, "Retired Silver Bar", "31.50", 5)
	kept := createTestProduct(t, db, "10 oz Silver Bar", "315.00", 5)

	cartSvc := newCartServiceForTest(db)
	if _, err := cartSvc.AddItem(user.ID, doomed.ID, 1); err != nil {
		t.Fatalf("add doomed to cart failed: %v", err)
	}
	if _, err := cartSvc.AddItem(user.ID, kept.ID, 2); err != nil {
		t.Fatalf("add kept to cart failed: %v", err)
	}

	wishlistSvc := NewWishlistService(repository.NewWishlistRepository(db), repository.NewProductRepository(db))
	if _, err := wishlistSvc.AddItem(user.ID, doomed.ID); err != nil {
		t.Fatalf("add doomed to wishlist failed: %v", err)
	}
	if _, err := wishlistSvc.AddItem(user.ID, kept.ID); err != nil {
		t.Fatalf("add kept to wishlist failed: %v", err)
	}

	svc := newProductServiceForTest(t, db)
	if err := svc.Delete(doomed.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var cartLines int64
	if err := db.Model(&models.CartItem{}).Where("product_id = ?", doomed.ID).Count(&cartLines).Error; err != nil {
		t.Fatalf("count cart lines failed: %v", err)
	}
	if cartLines != 0 {
		t.Fatalf("doomed cart lines want 0 got %d", cartLines)
	}
	var wishlistLines int64
	if err := db.Model(&models.WishlistItem{}).Where("product_id = ?", doomed.ID).Count(&wishlistLines).Error; err != nil {
		t.Fatalf("count wishlist lines failed: %v", err)
	}
	if wishlistLines != 0 {
		t.Fatalf("doomed wishlist lines want 0 got %d", wishlistLines)
	}

	// lines for other products stay put
	if err := db.Model(&models.CartItem{}).Where("product_id = ?", kept.ID).Count(&cartLines).Error; err != nil {
		t.Fatalf("count kept cart lines failed: %v", err)
	}
	if err := db.Model(&models.WishlistItem{}).Where("product_id = ?", kept.ID).Count(&wishlistLines).Error; err != nil {
		t.Fatalf("count kept wishlist lines failed: %v", err)
	}
	if cartLines != 1 || wishlistLines != 1 {
		t.Fatalf("kept lines want 1/1 got cart=%d wishlist=%d", cartLines, wishlistLines)
	}
}
