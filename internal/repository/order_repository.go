package repository

import (
	"errors"

	"github.com/gemstone-shop/gemstone/internal/models"

	"gorm.io/gorm"
)

// OrderRepository is the order data access interface.
type OrderRepository interface {
	Create(order *models.Order) error
	CreateItems(items []models.OrderItem) error
	List(filter OrderListFilter) ([]models.Order, int64, error)
	GetByID(id uint) (*models.Order, error)
	Update(order *models.Order) error
	WithTx(tx *gorm.DB) OrderRepository
}

// GormOrderRepository is the GORM implementation.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates an order repository.
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Create inserts an order.
func (r *GormOrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// CreateItems inserts order lines in bulk.
func (r *GormOrderRepository) CreateItems(items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.Create(&items).Error
}

// List returns orders matching the filter plus the total count. Line
// items are not loaded in list view.
func (r *GormOrderRepository) List(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{})

	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at desc"
	switch filter.OrderBy {
	case "created_at", "total_price":
		order = filter.OrderBy + " asc"
	case "-created_at", "-total_price":
		order = filter.OrderBy[1:] + " desc"
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var orders []models.Order
	if err := query.Order(order).Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// GetByID loads an order with its lines and their products. Returns nil
// when absent.
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Preload("Items.Product").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// Update saves an order.
func (r *GormOrderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}
