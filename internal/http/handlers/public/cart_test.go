package public

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gemstone-shop/gemstone/internal/http/response"
	"github.com/gemstone-shop/gemstone/internal/models"
	"github.com/gemstone-shop/gemstone/internal/provider"
	"github.com/gemstone-shop/gemstone/internal/repository"
	"github.com/gemstone-shop/gemstone/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// setupCartHandlerTest wires a real cart service onto an in-memory
// database and mounts the add_item route behind a stub identity.
func setupCartHandlerTest(t *testing.T, name string) (*gin.Engine, *gorm.DB, *models.Product) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Product{}, &models.ProductImage{},
		&models.Cart{}, &models.CartItem{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	models.DB = db

	user := &models.User{Email: "cart@example.com", Username: "cart@example.com", PasswordHash: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if err := db.Create(&models.Cart{UserID: user.ID}).Error; err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	category := &models.Category{Name: "Gold", Slug: "gold"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	price, err := models.NewMoneyFromString("1950.00")
	if err != nil {
		t.Fatalf("parse price failed: %v", err)
	}
	product := &models.Product{
		Name:       "1 oz Gold Bar",
		Slug:       "1-oz-gold-bar",
		Price:      price,
		Stock:      10,
		Available:  true,
		CategoryID: category.ID,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	handler := &Handler{Container: &provider.Container{
		CartService: service.NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db)),
	}}
	r := gin.New()
	r.POST("/orders/carts/add_item", func(c *gin.Context) {
		c.Set("user_id", user.ID)
		c.Next()
	}, handler.AddCartItem)
	return r, db, product
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) response.Response {
	t.Helper()
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("http status want 200 got %d", recorder.Code)
	}
	var envelope response.Response
	if err := json.Unmarshal(recorder.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal envelope failed: %v", err)
	}
	return envelope
}

func TestAddCartItemOmittedQuantityDefaultsToOne(t *testing.T) {
	r, db, product := setupCartHandlerTest(t, "cart_handler_default_qty")

	envelope := postJSON(t, r, "/orders/carts/add_item", fmt.Sprintf(`{"product_id": %d}`, product.ID))
	if envelope.StatusCode != response.CodeOK {
		t.Fatalf("status_code want %d got %d (%s)", response.CodeOK, envelope.StatusCode, envelope.Msg)
	}

	var item models.CartItem
	if err := db.Where("product_id = ?", product.ID).First(&item).Error; err != nil {
		t.Fatalf("load cart line failed: %v", err)
	}
	if item.Quantity != 1 {
		t.Fatalf("quantity want 1 got %d", item.Quantity)
	}
}

func TestAddCartItemExplicitZeroQuantityRejected(t *testing.T) {
	r, db, product := setupCartHandlerTest(t, "cart_handler_zero_qty")

	envelope := postJSON(t, r, "/orders/carts/add_item", fmt.Sprintf(`{"product_id": %d, "quantity": 0}`, product.ID))
	if envelope.StatusCode != response.CodeBadRequest {
		t.Fatalf("status_code want %d got %d (%s)", response.CodeBadRequest, envelope.StatusCode, envelope.Msg)
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Count(&count).Error; err != nil {
		t.Fatalf("count cart lines failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("cart line count want 0 got %d", count)
	}
}
