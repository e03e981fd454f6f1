package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/DhanunjayTheDev/ecombazaar/internal/auth"
	"github.com/DhanunjayTheDev/ecombazaar/internal/handler"
	"github.com/DhanunjayTheDev/ecombazaar/internal/infrastructure"
	"github.com/DhanunjayTheDev/ecombazaar/internal/jobs"
	"github.com/DhanunjayTheDev/ecombazaar/internal/middleware"
	"github.com/DhanunjayTheDev/ecombazaar/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := infrastructure.Load()
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database connection
	db, err := infrastructure.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := infrastructure.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Initialize services
	tokenService := auth.NewService(cfg.JWTSecret)
	userService := service.NewUserService(db)
	productService := service.NewProductService(db)
	categoryService := service.NewCategoryService(db)
	cartService := service.NewCartService(db)
	couponService := service.NewCouponService(db)
	orderService := service.NewOrderService(db, couponService, service.DefaultPricing())
	paymentService := service.NewPaymentService(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	authzService, err := service.NewAuthorizationService()
	if err != nil {
		log.Fatalf("Failed to initialize authorization service: %v", err)
	}
	uploadService, err := service.NewUploadService(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	// Seed sample data on a fresh database
	if err := infrastructure.NewSeeder(db).SeedAll(ctx); err != nil {
		log.Fatalf("Failed to setup seed data: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userService, productService, cartService, tokenService, cfg)
	productHandler := handler.NewProductHandler(productService, uploadService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(orderService)
	userHandler := handler.NewUserHandler(userService, orderService)
	couponHandler := handler.NewCouponHandler(couponService)
	paymentHandler := handler.NewPaymentHandler(paymentService, orderService)
	uploadHandler := handler.NewUploadHandler(uploadService)

	metrics := middleware.NewServerMetrics()

	// Setup Gin router
	r := gin.Default()
	r.Use(corsMiddleware(cfg.AllowedOrigins()))
	r.Use(metrics.Middleware())
	r.Use(middleware.RateLimit(redisClient, 100, time.Minute))

	r.Static("/uploads", cfg.UploadDir)
	r.GET("/metrics", middleware.MetricsHandler())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/products", productHandler.List)
	api.GET("/products/categories", productHandler.Categories)
	api.GET("/products/:id", productHandler.Get)
	api.GET("/categories", categoryHandler.List)
	api.GET("/categories/:id", categoryHandler.Get)

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(tokenService, userService))

	authed.GET("/auth/profile", authHandler.Profile)
	authed.PUT("/auth/profile", authHandler.UpdateProfile)
	authed.POST("/auth/addresses", authHandler.AddAddress)
	authed.PUT("/auth/addresses/:id", authHandler.UpdateAddress)
	authed.DELETE("/auth/addresses/:id", authHandler.DeleteAddress)
	authed.POST("/auth/cards", authHandler.AddCard)
	authed.DELETE("/auth/cards/:id", authHandler.DeleteCard)
	authed.POST("/auth/wishlist/:productId", authHandler.ToggleWishlist)

	authed.GET("/cart", cartHandler.Get)
	authed.POST("/cart", cartHandler.Add)
	authed.PUT("/cart/:productId", cartHandler.Update)
	authed.DELETE("/cart/:productId", cartHandler.Remove)
	authed.DELETE("/cart", cartHandler.Clear)

	authed.POST("/products/:id/reviews", productHandler.AddReview)

	authed.POST("/orders", orderHandler.Place)
	authed.GET("/orders/my", orderHandler.MyOrders)
	authed.GET("/orders/:id", orderHandler.Get)

	authed.POST("/coupons/apply", couponHandler.Apply)

	authed.POST("/payment/create-order", paymentHandler.CreateOrder)
	authed.POST("/payment/verify", paymentHandler.Verify)
	authed.POST("/payment/create-order-after-payment", paymentHandler.PlaceAfterPayment)

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(tokenService, userService))

	admin.GET("/products",
		middleware.RequirePermission(authzService, "products", "manage"),
		productHandler.ListAdmin)
	admin.POST("/products",
		middleware.RequirePermission(authzService, "products", "manage"),
		productHandler.Create)
	admin.PUT("/products/:id",
		middleware.RequirePermission(authzService, "products", "manage"),
		productHandler.Update)
	admin.DELETE("/products/:id",
		middleware.RequirePermission(authzService, "products", "manage"),
		productHandler.Delete)

	admin.POST("/categories",
		middleware.RequirePermission(authzService, "categories", "manage"),
		categoryHandler.Create)
	admin.PUT("/categories/:id",
		middleware.RequirePermission(authzService, "categories", "manage"),
		categoryHandler.Update)
	admin.DELETE("/categories/:id",
		middleware.RequirePermission(authzService, "categories", "manage"),
		categoryHandler.Delete)

	admin.GET("/orders",
		middleware.RequirePermission(authzService, "orders", "manage"),
		orderHandler.List)
	admin.PUT("/orders/:id/status",
		middleware.RequirePermission(authzService, "orders", "manage"),
		orderHandler.UpdateStatus)
	admin.GET("/stats",
		middleware.RequirePermission(authzService, "stats", "read"),
		orderHandler.Stats)

	admin.GET("/users",
		middleware.RequirePermission(authzService, "users", "manage"),
		userHandler.List)
	admin.PUT("/users/:id/block",
		middleware.RequirePermission(authzService, "users", "manage"),
		userHandler.ToggleBlock)
	admin.DELETE("/users/:id",
		middleware.RequirePermission(authzService, "users", "manage"),
		userHandler.Delete)
	admin.GET("/users/:id/orders",
		middleware.RequirePermission(authzService, "users", "manage"),
		userHandler.Orders)

	admin.GET("/coupons",
		middleware.RequirePermission(authzService, "coupons", "manage"),
		couponHandler.List)
	admin.POST("/coupons",
		middleware.RequirePermission(authzService, "coupons", "manage"),
		couponHandler.Create)
	admin.PUT("/coupons/:id",
		middleware.RequirePermission(authzService, "coupons", "manage"),
		couponHandler.Update)
	admin.DELETE("/coupons/:id",
		middleware.RequirePermission(authzService, "coupons", "manage"),
		couponHandler.Delete)

	admin.POST("/upload",
		middleware.RequirePermission(authzService, "uploads", "manage"),
		uploadHandler.Upload)

	// Nightly pending order reminders
	scheduler := jobs.StartScheduler(orderService)
	defer scheduler.Stop()

	log.Printf("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// corsMiddleware allows the two known frontend origins with
// credentials, since the session rides on a cookie.
func corsMiddleware(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowed[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
