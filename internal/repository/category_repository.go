package repository

import (
	"errors"

	"github.com/gemstone-shop/gemstone/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository is the category data access interface.
type CategoryRepository interface {
	List(filter CategoryListFilter) ([]models.Category, int64, error)
	GetByID(id uint) (*models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID uint) (int64, error)
	CountByName(name string) (int64, error)
}

// GormCategoryRepository is the GORM implementation.
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a category repository.
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// List returns categories matching the filter plus the total count.
func (r *GormCategoryRepository) List(filter CategoryListFilter) ([]models.Category, int64, error) {
	query := r.db.Model(&models.Category{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "name asc"
	switch filter.OrderBy {
	case "name", "created_at":
		order = filter.OrderBy + " asc"
	case "-name", "-created_at":
		order = filter.OrderBy[1:] + " desc"
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var categories []models.Category
	if err := query.Order(order).Find(&categories).Error; err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

// GetByID looks a category up by ID. Returns nil when absent.
func (r *GormCategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// GetBySlug looks a category up by slug. Returns nil when absent.
func (r *GormCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// Create inserts a category.
func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// Update saves a category.
func (r *GormCategoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// Delete soft-deletes a category.
func (r *GormCategoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}

// CountBySlug counts categories with the slug, excluding one ID.
func (r *GormCategoryRepository) CountBySlug(slug string, excludeID uint) (int64, error) {
	query := r.db.Model(&models.Category{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByName counts categories carrying the exact name.
func (r *GormCategoryRepository) CountByName(name string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
