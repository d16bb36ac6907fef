package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gemstone-shop/gemstone/internal/cache"
	"github.com/gemstone-shop/gemstone/internal/logger"
	"github.com/gemstone-shop/gemstone/internal/models"
	"github.com/gemstone-shop/gemstone/internal/repository"
)

const categoryCacheTTL = 10 * time.Minute

func categoryCacheKey(id uint) string {
	return fmt.Sprintf("category:%d", id)
}

// CategoryService manages the catalog category tree.
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService creates a category service.
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// List returns categories matching the filter.
func (s *CategoryService) List(filter repository.CategoryListFilter) ([]models.Category, int64, error) {
	return s.repo.List(filter)
}

// Get loads one category, reading through the redis cache when available.
func (s *CategoryService) Get(id uint) (*models.Category, error) {
	ctx := context.Background()
	var cached models.Category
	hit, err := cache.GetJSON(ctx, categoryCacheKey(id), &cached)
	if err != nil {
		logger.Warnw("category_cache_read_failed", "category_id", id, "error", err)
	}
	if hit {
		return &cached, nil
	}
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	if err := cache.SetJSON(ctx, categoryCacheKey(id), category, categoryCacheTTL); err != nil {
		logger.Warnw("category_cache_write_failed", "category_id", id, "error", err)
	}
	return category, nil
}

// CategoryInput carries the writable category fields.
type CategoryInput struct {
	Name        string
	Slug        string
	Description string
}

// Create inserts a category, deriving a unique slug when none is given.
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	slug, err := s.resolveSlug(input.Slug, input.Name, 0)
	if err != nil {
		return nil, err
	}
	category := &models.Category{
		Name:        strings.TrimSpace(input.Name),
		Slug:        slug,
		Description: input.Description,
	}
	if err := s.repo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update saves the writable fields of a category.
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	category.Name = strings.TrimSpace(input.Name)
	category.Description = input.Description
	if input.Slug != "" && input.Slug != category.Slug {
		slug, err := s.resolveSlug(input.Slug, input.Name, id)
		if err != nil {
			return nil, err
		}
		category.Slug = slug
	}
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	if err := cache.Del(context.Background(), categoryCacheKey(id)); err != nil {
		logger.Warnw("category_cache_invalidate_failed", "category_id", id, "error", err)
	}
	return category, nil
}

// Delete removes a category.
func (s *CategoryService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	if err := cache.Del(context.Background(), categoryCacheKey(id)); err != nil {
		logger.Warnw("category_cache_invalidate_failed", "category_id", id, "error", err)
	}
	return nil
}

// resolveSlug slugifies and appends a numeric suffix until unique.
func (s *CategoryService) resolveSlug(slug, name string, excludeID uint) (string, error) {
	base := models.Slugify(slug)
	if base == "" {
		base = models.Slugify(name)
	}
	if base == "" {
		base = "category"
	}
	candidate := base
	for i := 2; ; i++ {
		count, err := s.repo.CountBySlug(candidate, excludeID)
		if err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
