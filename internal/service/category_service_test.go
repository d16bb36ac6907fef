package service

import (
	"errors"
	"testing"

	"github.com/gemstone-shop/gemstone/internal/repository"

	"gorm.io/gorm"
)

func newCategoryServiceForTest(db *gorm.DB) *CategoryService {
	return NewCategoryService(repository.NewCategoryRepository(db))
}

func TestCategorySlugDerivedAndUniqued(t *testing.T) {
	db := setupTestDB(t, "category_slug")
	svc := newCategoryServiceForTest(db)

	first, err := svc.Create(CategoryInput{Name: "Gold Bullion"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if first.Slug != "gold-bullion" {
		t.Fatalf("slug want gold-bullion got %s", first.Slug)
	}

	second, err := svc.Create(CategoryInput{Name: "Gold Bullion"})
	if err != nil {
		t.Fatalf("create with same name failed: %v", err)
	}
	if second.Slug != "gold-bullion-2" {
		t.Fatalf("slug want gold-bullion-2 got %s", second.Slug)
	}

	third, err := svc.Create(CategoryInput{Name: "Gold Bullion"})
	if err != nil {
		t.Fatalf("third create failed: %v", err)
	}
	if third.Slug != "gold-bullion-3" {
		t.Fatalf("slug want gold-bullion-3 got %s", third.Slug)
	}
}

func TestCategoryExplicitSlugWins(t *testing.T) {
	db := setupTestDB(t, "category_explicit_slug")
	svc := newCategoryServiceForTest(db)

	category, err := svc.Create(CategoryInput{Name: "Platinum & Palladium", Slug: "PGM Metals"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if category.Slug != "pgm-metals" {
		t.Fatalf("slug want pgm-metals got %s", category.Slug)
	}
}

func TestCategoryUpdateKeepsSlugWhenUnchanged(t *testing.T) {
	db := setupTestDB(t, "category_update")
	svc := newCategoryServiceForTest(db)

	category, err := svc.Create(CategoryInput{Name: "Jewelry"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(category.ID, CategoryInput{Name: "Fine Jewelry"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Slug != "jewelry" {
		t.Fatalf("slug want jewelry got %s", updated.Slug)
	}
	if updated.Name != "Fine Jewelry" {
		t.Fatalf("name want Fine Jewelry got %s", updated.Name)
	}
}

func TestCategoryGetAndDeleteMissing(t *testing.T) {
	db := setupTestDB(t, "category_missing")
	svc := newCategoryServiceForTest(db)

	if _, err := svc.Get(42); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("want ErrCategoryNotFound got %v", err)
	}
	if err := svc.Delete(42); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("want ErrCategoryNotFound got %v", err)
	}
}
