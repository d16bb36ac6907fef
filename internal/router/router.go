package router

import (
	"fmt"
	"strings"

	"github.com/gemstone-shop/gemstone/internal/cache"
	"github.com/gemstone-shop/gemstone/internal/config"
	publichandlers "github.com/gemstone-shop/gemstone/internal/http/handlers/public"
	"github.com/gemstone-shop/gemstone/internal/logger"
	"github.com/gemstone-shop/gemstone/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires middleware and routes onto a fresh engine.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "gem"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// Uploaded product images are served straight off disk.
	r.Static("/uploads", cfg.Upload.Dir)

	authRequired := JWTAuthMiddleware(c.AuthService, c.UserRepo)

	accounts := r.Group("/accounts")
	{
		accounts.POST("/register", publicHandler.Register)
		accounts.POST("/token", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Token)
		accounts.POST("/token/refresh", publicHandler.RefreshToken)

		me := accounts.Group("")
		me.Use(authRequired)
		{
			me.GET("/me", publicHandler.GetMe)
			me.PUT("/me", publicHandler.UpdateMe)
			me.PATCH("/me", publicHandler.UpdateMe)
			me.GET("/me/profile", publicHandler.GetProfile)
			me.PUT("/me/profile", publicHandler.UpdateProfile)
			me.PATCH("/me/profile", publicHandler.UpdateProfile)
		}
	}

	products := r.Group("/products")
	{
		products.GET("/categories", publicHandler.ListCategories)
		products.GET("/categories/:id", publicHandler.GetCategory)
		products.GET("/products", publicHandler.ListProducts)
		products.GET("/products/:id", publicHandler.GetProduct)
		products.GET("/products/:id/images", publicHandler.ListProductImages)

		catalog := products.Group("")
		catalog.Use(authRequired)
		{
			catalog.POST("/categories", publicHandler.CreateCategory)
			catalog.PUT("/categories/:id", publicHandler.UpdateCategory)
			catalog.DELETE("/categories/:id", publicHandler.DeleteCategory)
			catalog.POST("/products", publicHandler.CreateProduct)
			catalog.PUT("/products/:id", publicHandler.UpdateProduct)
			catalog.DELETE("/products/:id", publicHandler.DeleteProduct)
			catalog.POST("/products/:id/upload_image", publicHandler.UploadProductImage)
		}
	}

	orders := r.Group("/orders")
	orders.Use(authRequired)
	{
		orders.GET("/carts", publicHandler.GetCart)
		orders.POST("/carts/add_item", publicHandler.AddCartItem)
		orders.POST("/carts/update_item", publicHandler.UpdateCartItem)
		orders.POST("/carts/remove_item", publicHandler.RemoveCartItem)
		orders.POST("/carts/clear", publicHandler.ClearCart)

		orders.GET("/orders", publicHandler.ListOrders)
		orders.POST("/orders", publicHandler.CreateOrder)
		orders.GET("/orders/:id", publicHandler.GetOrder)

		orders.GET("/payments", publicHandler.ListPayments)
		orders.POST("/payments", publicHandler.CreatePayment)
		orders.GET("/payments/:id", publicHandler.GetPayment)

		orders.GET("/wishlist", publicHandler.GetWishlist)
		orders.POST("/wishlist/add_item", publicHandler.AddWishlistItem)
		orders.POST("/wishlist/remove_item", publicHandler.RemoveWishlistItem)
	}

	r.GET("/core/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
