package provider

import (
	"github.com/gemstone-shop/gemstone/internal/cache"
	"github.com/gemstone-shop/gemstone/internal/config"
	"github.com/gemstone-shop/gemstone/internal/logger"
	"github.com/gemstone-shop/gemstone/internal/models"
	"github.com/gemstone-shop/gemstone/internal/queue"
	"github.com/gemstone-shop/gemstone/internal/repository"
	"github.com/gemstone-shop/gemstone/internal/service"
)

// Container wires repositories and services together.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo     repository.UserRepository
	CategoryRepo repository.CategoryRepository
	ProductRepo  repository.ProductRepository
	CartRepo     repository.CartRepository
	OrderRepo    repository.OrderRepository
	PaymentRepo  repository.PaymentRepository
	WishlistRepo repository.WishlistRepository

	// Services
	AuthService     *service.AuthService
	EmailService    *service.EmailService
	CategoryService *service.CategoryService
	ProductService  *service.ProductService
	CartService     *service.CartService
	OrderService    *service.OrderService
	PaymentService  *service.PaymentService
	WishlistService *service.WishlistService
}

// NewContainer builds the dependency container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.PaymentRepo = repository.NewPaymentRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email)

	var enqueuer service.WelcomeEmailEnqueuer
	if c.QueueClient != nil && c.QueueClient.Enabled() {
		enqueuer = c.QueueClient
	}
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo, c.CartRepo, enqueuer)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ProductService = service.NewProductService(c.Config, c.ProductRepo, c.CategoryRepo, c.CartRepo, c.WishlistRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartRepo, c.ProductRepo)
	c.PaymentService = service.NewPaymentService(c.PaymentRepo, c.OrderRepo)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductRepo)
}
