// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires all API v1 routes
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	setupAuthRoutes(rg, db, cfg)
	setupUserRoutes(rg, db, cfg)
	setupCatalogRoutes(rg, db, redisClient, cfg)
	setupCartRoutes(rg, db, redisClient, cfg)
	setupOrderRoutes(rg, db, redisClient, cfg)
	setupSeoRoutes(rg, db, cfg)
	setupSellerRoutes(rg, db, redisClient, cfg)
	setupAdminRoutes(rg, db, redisClient, cfg)
	setupContactRoutes(rg, cfg)
}

func setupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
	}
}

func setupUserRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	profileHandler := handlers.NewUserProfileHandler(db, cfg)
	addressHandler := handlers.NewUserAddressHandler(db, cfg)

	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware(cfg))
	{
		users.GET("/profile", profileHandler.GetProfile)
		users.PUT("/profile", profileHandler.UpdateProfile)
		users.PUT("/password", profileHandler.ChangePassword)

		users.GET("/addresses", addressHandler.ListAddresses)
		users.POST("/addresses", addressHandler.CreateAddress)
		users.GET("/addresses/:id", addressHandler.GetAddress)
		users.PUT("/addresses/:id", addressHandler.UpdateAddress)
		users.DELETE("/addresses/:id", addressHandler.DeleteAddress)
	}
}

func setupCatalogRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, redisClient, cfg)
	categoryHandler := handlers.NewCategoryHandler(db, cfg)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.ListProducts)
		products.GET("/:id", productHandler.GetProduct)
	}

	categories := rg.Group("/categories")
	{
		categories.GET("", categoryHandler.ListCategories)
		categories.GET("/:name", categoryHandler.GetCategory)
	}
}

func setupCartRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(db, redisClient, cfg)

	// Cart works for guests and signed-in users alike. The Session
	// middleware resolves the device-scoped session id; optional auth
	// attaches the account when a token is present, which is what lets
	// the guest cart merge into the account cart on sign-in.
	cart := rg.Group("/cart")
	cart.Use(middleware.Session())
	cart.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		cart.GET("", cartHandler.GetCart)
		cart.PUT("", cartHandler.ReplaceCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.GET("/count", cartHandler.GetCartCount)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
	}
}

func setupOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(db, redisClient, cfg)
	invoiceHandler := handlers.NewInvoiceHandler(db, redisClient, cfg)

	orders := rg.Group("/orders")
	orders.Use(middleware.Session())
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.POST("/:id/cancel", orderHandler.CancelOrder)
		orders.GET("/:id/invoice", invoiceHandler.DownloadInvoice)
	}
}

func setupSeoRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	seoHandler := handlers.NewSeoHandler(db, cfg)

	seo := rg.Group("/seo")
	{
		seo.GET("/products/:slug", seoHandler.GetProductSeoBySlug)
		seo.GET("/categories/:slug", seoHandler.GetCategorySeoBySlug)
	}
}

func setupSellerRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, redisClient, cfg)
	orderHandler := handlers.NewOrderHandler(db, redisClient, cfg)
	seoHandler := handlers.NewSeoHandler(db, cfg)

	seller := rg.Group("/seller")
	seller.Use(middleware.AuthMiddleware(cfg))
	seller.Use(middleware.StaffMiddleware())
	{
		seller.GET("/products", productHandler.ListMyProducts)
		seller.POST("/products", productHandler.CreateProduct)
		seller.PUT("/products/:id", productHandler.UpdateProduct)
		seller.DELETE("/products/:id", productHandler.DeleteProduct)
		seller.PUT("/products/:id/seo", seoHandler.UpsertProductSeo)
		seller.DELETE("/products/:id/seo", seoHandler.DeleteProductSeo)

		seller.GET("/orders", orderHandler.ListAllOrders)
		seller.PUT("/orders/:id/status", orderHandler.UpdateOrderStatus)
		seller.PUT("/orders/:id/payment", orderHandler.UpdateOrderPayment)
	}
}

func setupAdminRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	categoryHandler := handlers.NewCategoryHandler(db, cfg)
	orderHandler := handlers.NewOrderHandler(db, redisClient, cfg)
	userAdminHandler := handlers.NewUserAdminHandler(db, cfg)
	seoHandler := handlers.NewSeoHandler(db, cfg)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.AdminMiddleware())
	{
		admin.POST("/categories", categoryHandler.CreateCategory)
		admin.PUT("/categories/:id", categoryHandler.UpdateCategory)
		admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)
		admin.PUT("/categories/:id/seo", seoHandler.UpsertCategorySeo)
		admin.DELETE("/categories/:id/seo", seoHandler.DeleteCategorySeo)

		admin.GET("/users", userAdminHandler.ListUsers)
		admin.GET("/users/:id", userAdminHandler.GetUser)
		admin.PUT("/users/:id/role", userAdminHandler.UpdateUserRole)
		admin.PUT("/users/:id/status", userAdminHandler.UpdateUserStatus)

		admin.DELETE("/orders/:id", orderHandler.DeleteOrder)
	}
}

func setupContactRoutes(rg *gin.RouterGroup, cfg *config.Config) {
	contactHandler := handlers.NewContactHandler(cfg)
	rg.POST("/contact", contactHandler.SubmitContact)
}
