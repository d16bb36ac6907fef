package repository

import (
	"errors"

	"github.com/gemstone-shop/gemstone/internal/models"

	"gorm.io/gorm"
)

// ProductRepository is the product data access interface.
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	ListByIDs(ids []uint) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID uint) (int64, error)
	IncrementViewCount(id uint) error
	IncrementSalesCount(id uint, quantity int) error
	ListImages(productID uint) ([]models.ProductImage, error)
	CreateImage(image *models.ProductImage) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository is the GORM implementation.
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a product repository.
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// List returns products matching the filter plus the total count.
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})

	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Available != nil {
		query = query.Where("available = ?", *filter.Available)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at desc"
	switch filter.OrderBy {
	case "name", "price", "created_at":
		order = filter.OrderBy + " asc"
	case "-name", "-price", "-created_at":
		order = filter.OrderBy[1:] + " desc"
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	query = query.Preload("Category")
	if filter.WithImages {
		query = query.Preload("Images")
	}

	var products []models.Product
	if err := query.Order(order).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetByID loads a product with its category and images. Returns nil when absent.
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Category").Preload("Images").First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetBySlug looks a product up by slug. Returns nil when absent.
func (r *GormProductRepository) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Category").Where("slug = ?", slug).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ListByIDs loads products in bulk.
func (r *GormProductRepository) ListByIDs(ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create inserts a product.
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update saves a product.
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete soft-deletes a product.
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// CountBySlug counts products with the slug, excluding one ID.
func (r *GormProductRepository) CountBySlug(slug string, excludeID uint) (int64, error) {
	query := r.db.Model(&models.Product{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// IncrementViewCount bumps the product view counter.
func (r *GormProductRepository) IncrementViewCount(id uint) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// IncrementSalesCount bumps the product sales counter.
func (r *GormProductRepository) IncrementSalesCount(id uint, quantity int) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).
		UpdateColumn("sales_count", gorm.Expr("sales_count + ?", quantity)).Error
}

// ListImages lists the images of a product.
func (r *GormProductRepository) ListImages(productID uint) ([]models.ProductImage, error) {
	var images []models.ProductImage
	if err := r.db.Where("product_id = ?", productID).Order("id asc").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// CreateImage inserts a product image.
func (r *GormProductRepository) CreateImage(image *models.ProductImage) error {
	return r.db.Create(image).Error
}
