package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gemstone-shop/gemstone/internal/config"
	"github.com/gemstone-shop/gemstone/internal/logger"
	"github.com/gemstone-shop/gemstone/internal/models"
	"github.com/gemstone-shop/gemstone/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductService manages catalog products and their images.
type ProductService struct {
	cfg          *config.Config
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cartRepo     repository.CartRepository
	wishlistRepo repository.WishlistRepository
}

// NewProductService creates a product service.
func NewProductService(cfg *config.Config, repo repository.ProductRepository, categoryRepo repository.CategoryRepository, cartRepo repository.CartRepository, wishlistRepo repository.WishlistRepository) *ProductService {
	return &ProductService{
		cfg:          cfg,
		repo:         repo,
		categoryRepo: categoryRepo,
		cartRepo:     cartRepo,
		wishlistRepo: wishlistRepo,
	}
}

// List returns products matching the filter.
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.repo.List(filter)
}

// Get loads one product and bumps its view counter.
func (s *ProductService) Get(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := s.repo.IncrementViewCount(id); err != nil {
		logger.Warnw("view_count_increment_failed", "product_id", id, "error", err)
	} else {
		product.ViewCount++
	}
	return product, nil
}

// ProductInput carries the writable product fields.
type ProductInput struct {
	CategoryID    uint
	Name          string
	Slug          string
	Description   string
	Price         models.Money
	PriceDiscount *models.Money
	Stock         int
	Available     *bool
	Featured      *bool
}

// Create inserts a product, deriving a unique slug when none is given.
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	slug, err := s.resolveSlug(input.Slug, input.Name, 0)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		CategoryID:    input.CategoryID,
		Name:          strings.TrimSpace(input.Name),
		Slug:          slug,
		Description:   input.Description,
		Price:         input.Price,
		PriceDiscount: input.PriceDiscount,
		Stock:         input.Stock,
		Available:     true,
	}
	if input.Available != nil {
		product.Available = *input.Available
	}
	if input.Featured != nil {
		product.Featured = *input.Featured
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update saves the writable fields of a product.
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if input.CategoryID != 0 && input.CategoryID != product.CategoryID {
		category, err := s.categoryRepo.GetByID(input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
		product.CategoryID = input.CategoryID
	}
	product.Name = strings.TrimSpace(input.Name)
	product.Description = input.Description
	product.Price = input.Price
	product.PriceDiscount = input.PriceDiscount
	product.Stock = input.Stock
	if input.Available != nil {
		product.Available = *input.Available
	}
	if input.Featured != nil {
		product.Featured = *input.Featured
	}
	if input.Slug != "" && input.Slug != product.Slug {
		slug, err := s.resolveSlug(input.Slug, input.Name, id)
		if err != nil {
			return nil, err
		}
		product.Slug = slug
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product together with the cart and wishlist lines
// that reference it, so no cart can check out a removed product.
func (s *ProductService) Delete(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.cartRepo.WithTx(tx).DeleteItemsByProduct(id); err != nil {
			return err
		}
		if err := s.wishlistRepo.WithTx(tx).DeleteItemsByProduct(id); err != nil {
			return err
		}
		return s.repo.WithTx(tx).Delete(id)
	})
}

// ListImages lists the images of a product.
func (s *ProductService) ListImages(productID uint) ([]models.ProductImage, error) {
	product, err := s.repo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return s.repo.ListImages(productID)
}

// UploadImage stores an uploaded file under the upload dir with a
// generated name and attaches it to the product.
func (s *ProductService) UploadImage(productID uint, file *multipart.FileHeader, altText string, isMain bool) (*models.ProductImage, error) {
	product, err := s.repo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if file == nil || file.Size == 0 {
		return nil, ErrInvalidUpload
	}
	if s.cfg.Upload.MaxSize > 0 && file.Size > s.cfg.Upload.MaxSize {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidUpload, s.cfg.Upload.MaxSize)
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !isAllowedExtension(ext, s.cfg.Upload.AllowedExtensions) {
		return nil, fmt.Errorf("%w: extension %q not allowed", ErrInvalidUpload, ext)
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	now := time.Now()
	filename := fmt.Sprintf("%s%s", newUploadName(), ext)
	relPath := filepath.Join("products", now.Format("2006"), now.Format("01"), filename)
	savePath := filepath.Join(s.cfg.Upload.Dir, relPath)

	if err := os.MkdirAll(filepath.Dir(savePath), 0755); err != nil {
		return nil, err
	}
	dst, err := os.Create(savePath)
	if err != nil {
		return nil, err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return nil, err
	}

	image := &models.ProductImage{
		ProductID: productID,
		Image:     "/" + filepath.ToSlash(relPath),
		AltText:   strings.TrimSpace(altText),
		IsMain:    isMain,
	}
	if err := s.repo.CreateImage(image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *ProductService) resolveSlug(slug, name string, excludeID uint) (string, error) {
	base := models.Slugify(slug)
	if base == "" {
		base = models.Slugify(name)
	}
	if base == "" {
		base = "product"
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

func newUploadName() string {
	return uuid.New().String()
}

func isAllowedExtension(ext string, allowed []string) bool {
	if len(allowed) == 0 {
		return ext != ""
	}
	for _, allowedExt := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(allowedExt))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if strings.EqualFold(ext, normalized) {
			return true
		}
	}
	return false
}
