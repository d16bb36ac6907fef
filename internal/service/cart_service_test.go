package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gemstone-shop/gemstone/internal/models"
	"github.com/gemstone-shop/gemstone/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// setupTestDB opens a named in-memory database shared by the service
// tests and points the package-level connection at it.
func setupTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Profile{},
		&models.Category{}, &models.Product{}, &models.ProductImage{},
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{},
		&models.Payment{},
		&models.Wishlist{}, &models.WishlistItem{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	models.DB = db
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Username: email, PasswordHash: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if err := db.Create(&models.Cart{UserID: user.ID}).Error; err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	return user
}

func createTestProduct(t *testing.T, db *gorm.DB, name, price string, stock int) *models.Product {
	t.Helper()
	amount, err := models.NewMoneyFromString(price)
	if err != nil {
		t.Fatalf("bad price %q: %v", price, err)
	}
	category := &models.Category{Name: name + " category", Slug: models.Slugify(name + " category")}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := &models.Product{
		CategoryID: category.ID,
		Name:       name,
		Slug:       models.Slugify(name),
		Price:      amount,
		Stock:      stock,
		Available:  true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func newCartServiceForTest(db *gorm.DB) *CartService {
	return NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
}

func TestCartAddItemMergesQuantity(t *testing.T) {
	db := setupTestDB(t, "cart_merge")
	user := createTestUser(t, db, "merge@example.com")
	product := createTestProduct(t, db, "1 oz Gold Bar", "1950.00", 50)
	svc := newCartServiceForTest(db)

	if _, err := svc.AddItem(user.ID, product.ID, 2); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	detail, err := svc.AddItem(user.ID, product.ID, 3)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	if len(detail.Items) != 1 {
		t.Fatalf("items want 1 got %d", len(detail.Items))
	}
	if detail.Items[0].Quantity != 5 {
		t.Fatalf("quantity want 5 got %d", detail.Items[0].Quantity)
	}
}

func TestCartTotalsComputedFromLivePrices(t *testing.T) {
	db := setupTestDB(t, "cart_totals")
	user := createTestUser(t, db, "totals@example.com")
	gold := createTestProduct(t, db, "Gold Coin", "2050.00", 100)
	silver := createTestProduct(t, db, "Silver Coin", "28.50", 500)
	svc := newCartServiceForTest(db)

	if _, err := svc.AddItem(user.ID, gold.ID, 2); err != nil {
		t.Fatalf("add gold failed: %v", err)
	}
	if _, err := svc.AddItem(user.ID, silver.ID, 4); err != nil {
		t.Fatalf("add silver failed: %v", err)
	}

	detail, err := svc.Get(user.ID)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	want := decimal.RequireFromString("4214.00") // 2*2050 + 4*28.50
	if !detail.TotalPrice.Decimal.Equal(want) {
		t.Fatalf("total want %s got %s", want, detail.TotalPrice.Decimal)
	}
	if detail.TotalItems != 6 {
		t.Fatalf("total items want 6 got %d", detail.TotalItems)
	}
}

func TestCartAddItemRejectsInvalidQuantity(t *testing.T) {
	db := setupTestDB(t, "cart_invalid_qty")
	user := createTestUser(t, db, "qty@example.com")
	product := createTestProduct(t, db, "Platinum Bar", "950.00", 25)
	svc := newCartServiceForTest(db)

	if _, err := svc.AddItem(user.ID, product.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("want ErrInvalidQuantity got %v", err)
	}
	if _, err := svc.AddItem(user.ID, product.ID, -2); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("want ErrInvalidQuantity got %v", err)
	}
}

func TestCartAddItemUnknownProduct(t *testing.T) {
	db := setupTestDB(t, "cart_unknown_product")
	user := createTestUser(t, db, "unknown@example.com")
	svc := newCartServiceForTest(db)

	if _, err := svc.AddItem(user.ID, 9999, 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound got %v", err)
	}
}

func TestCartUpdateItemOverwritesQuantity(t *testing.T) {
	db := setupTestDB(t, "cart_update")
	user := createTestUser(t, db, "update@example.com")
	product := createTestProduct(t, db, "Palladium Coin", "1050.00", 15)
	svc := newCartServiceForTest(db)

	detail, err := svc.AddItem(user.ID, product.ID, 2)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	itemID := detail.Items[0].ID

	detail, err = svc.UpdateItem(user.ID, itemID, 7)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if detail.Items[0].Quantity != 7 {
		t.Fatalf("quantity want 7 got %d", detail.Items[0].Quantity)
	}

	if _, err := svc.UpdateItem(user.ID, itemID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("want ErrInvalidQuantity got %v", err)
	}
	if _, err := svc.UpdateItem(user.ID, 9999, 1); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("want ErrCartItemNotFound got %v", err)
	}
}

func TestCartRemoveAndClear(t *testing.T) {
	db := setupTestDB(t, "cart_remove_clear")
	user := createTestUser(t, db, "remove@example.com")
	gold := createTestProduct(t, db, "Gold Chain", "3200.00", 5)
	silver := createTestProduct(t, db, "Silver Bar", "2700.00", 30)
	svc := newCartServiceForTest(db)

	detail, err := svc.AddItem(user.ID, gold.ID, 1)
	if err != nil {
		t.Fatalf("add gold failed: %v", err)
	}
	if _, err := svc.AddItem(user.ID, silver.ID, 1); err != nil {
		t.Fatalf("add silver failed: %v", err)
	}

	detail, err = svc.RemoveItem(user.ID, detail.Items[0].ID)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(detail.Items) != 1 {
		t.Fatalf("items want 1 got %d", len(detail.Items))
	}
	if _, err := svc.RemoveItem(user.ID, 9999); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("want ErrCartItemNotFound got %v", err)
	}

	if err := svc.Clear(user.ID); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	detail, err = svc.Get(user.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(detail.Items) != 0 {
		t.Fatalf("items want 0 got %d", len(detail.Items))
	}
	// clearing an already empty cart is a no-op
	if err := svc.Clear(user.ID); err != nil {
		t.Fatalf("second clear failed: %v", err)
	}
}

func TestCartLazyCreatedForLegacyUser(t *testing.T) {
	db := setupTestDB(t, "cart_lazy")
	user := &models.User{Email: "legacy@example.com", Username: "legacy@example.com", PasswordHash: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	svc := newCartServiceForTest(db)

	detail, err := svc.Get(user.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if detail.UserID != user.ID {
		t.Fatalf("user id want %d got %d", user.ID, detail.UserID)
	}
	if len(detail.Items) != 0 {
		t.Fatalf("items want 0 got %d", len(detail.Items))
	}
}
