package repository

import (
	"fmt"
	"testing"

	"github.com/gemstone-shop/gemstone/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T, name string) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.ProductImage{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewProductRepository(db), db
}

func createCatalogProduct(t *testing.T, repo *GormProductRepository, categoryID uint, name, price string, available, featured bool) *models.Product {
	t.Helper()
	amount, err := models.NewMoneyFromString(price)
	if err != nil {
		t.Fatalf("bad price %q: %v", price, err)
	}
	product := &models.Product{
		CategoryID: categoryID,
		Name:       name,
		Slug:       models.Slugify(name),
		Price:      amount,
		Available:  available,
		Featured:   featured,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func seedCatalog(t *testing.T, repo *GormProductRepository, db *gorm.DB) (gold, silver models.Category) {
	t.Helper()
	gold = models.Category{Name: "Gold Bullion", Slug: "gold-bullion"}
	silver = models.Category{Name: "Silver Products", Slug: "silver-products"}
	if err := db.Create(&gold).Error; err != nil {
		t.Fatalf("create gold category failed: %v", err)
	}
	if err := db.Create(&silver).Error; err != nil {
		t.Fatalf("create silver category failed: %v", err)
	}
	createCatalogProduct(t, repo, gold.ID, "1 oz Gold Bar", "1950.00", true, true)
	createCatalogProduct(t, repo, gold.ID, "1 kg Gold Bar", "62500.00", true, false)
	createCatalogProduct(t, repo, gold.ID, "Retired Gold Coin", "500.00", false, false)
	createCatalogProduct(t, repo, silver.ID, "Silver Maple Leaf", "28.50", true, true)
	return gold, silver
}

func TestProductListFilters(t *testing.T) {
	repo, db := setupProductRepositoryTest(t, "product_filters")
	gold, _ := seedCatalog(t, repo, db)

	products, total, err := repo.List(ProductListFilter{Page: 1, PageSize: 20, CategoryID: gold.ID})
	if err != nil {
		t.Fatalf("list by category failed: %v", err)
	}
	if total != 3 || len(products) != 3 {
		t.Fatalf("category filter want 3 got total=%d len=%d", total, len(products))
	}

	available := true
	products, total, err = repo.List(ProductListFilter{Page: 1, PageSize: 20, Available: &available})
	if err != nil {
		t.Fatalf("list by availability failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("available filter want 3 got %d", total)
	}

	featured := true
	_, total, err = repo.List(ProductListFilter{Page: 1, PageSize: 20, Featured: &featured})
	if err != nil {
		t.Fatalf("list by featured failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("featured filter want 2 got %d", total)
	}

	minPrice := decimal.RequireFromString("1000")
	maxPrice := decimal.RequireFromString("3000")
	products, total, err = repo.List(ProductListFilter{Page: 1, PageSize: 20, MinPrice: &minPrice, MaxPrice: &maxPrice})
	if err != nil {
		t.Fatalf("list by price range failed: %v", err)
	}
	if total != 1 || products[0].Name != "1 oz Gold Bar" {
		t.Fatalf("price range want [1 oz Gold Bar] got total=%d %+v", total, products)
	}

	_, total, err = repo.List(ProductListFilter{Page: 1, PageSize: 20, Search: "maple"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("search want 1 got %d", total)
	}
}

func TestProductListOrderingAndPagination(t *testing.T) {
	repo, db := setupProductRepositoryTest(t, "product_ordering")
	seedCatalog(t, repo, db)

	products, _, err := repo.List(ProductListFilter{Page: 1, PageSize: 20, OrderBy: "price"})
	if err != nil {
		t.Fatalf("list ordered failed: %v", err)
	}
	if products[0].Name != "Silver Maple Leaf" {
		t.Fatalf("cheapest first want Silver Maple Leaf got %s", products[0].Name)
	}

	products, _, err = repo.List(ProductListFilter{Page: 1, PageSize: 20, OrderBy: "-price"})
	if err != nil {
		t.Fatalf("list reverse ordered failed: %v", err)
	}
	if products[0].Name != "1 kg Gold Bar" {
		t.Fatalf("dearest first want 1 kg Gold Bar got %s", products[0].Name)
	}

	products, total, err := repo.List(ProductListFilter{Page: 2, PageSize: 3})
	if err != nil {
		t.Fatalf("list page 2 failed: %v", err)
	}
	if total != 4 || len(products) != 1 {
		t.Fatalf("pagination want total=4 len=1 got total=%d len=%d", total, len(products))
	}
}

func TestProductCounters(t *testing.T) {
	repo, db := setupProductRepositoryTest(t, "product_counters")
	gold := models.Category{Name: "Gold Bullion", Slug: "gold-bullion"}
	if err := db.Create(&gold).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := createCatalogProduct(t, repo, gold.ID, "Gold Sovereign", "550.00", true, false)

	if err := repo.IncrementViewCount(product.ID); err != nil {
		t.Fatalf("view increment failed: %v", err)
	}
	if err := repo.IncrementSalesCount(product.ID, 3); err != nil {
		t.Fatalf("sales increment failed: %v", err)
	}

	reloaded, err := repo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.ViewCount != 1 || reloaded.SalesCount != 3 {
		t.Fatalf("counters want views=1 sales=3 got views=%d sales=%d", reloaded.ViewCount, reloaded.SalesCount)
	}
}

func TestProductGetByIDReturnsNilWhenAbsent(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t, "product_absent")

	product, err := repo.GetByID(1234)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if product != nil {
		t.Fatalf("want nil got %+v", product)
	}
}

func TestProductCountBySlugExcludesID(t *testing.T) {
	repo, db := setupProductRepositoryTest(t, "product_count_slug")
	gold := models.Category{Name: "Gold Bullion", Slug: "gold-bullion"}
	if err := db.Create(&gold).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := createCatalogProduct(t, repo, gold.ID, "Gold Locket", "450.00", true, false)

	count, err := repo.CountBySlug("gold-locket", 0)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("count want 1 got %d", count)
	}

	count, err = repo.CountBySlug("gold-locket", product.ID)
	if err != nil {
		t.Fatalf("count with exclude failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("count with exclude want 0 got %d", count)
	}
}
