package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wekesa/tillpoint-api/internal/config"
	domainRepo "github.com/wekesa/tillpoint-api/internal/domain/repository"
	"github.com/wekesa/tillpoint-api/internal/presentation/http/handler"
	"github.com/wekesa/tillpoint-api/internal/presentation/http/middleware"
	"github.com/wekesa/tillpoint-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Receipt  *handler.ReceiptHandler
	Customer *handler.CustomerHandler
	Sales    *handler.SalesHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-till rate limiter
		rateLimiter := middleware.NewTillRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/auth/me", h.Auth.Me)

	registerProductRoutes(protected, h)
	registerCartRoutes(protected, h)
	registerCheckoutRoutes(protected, h, deps)
	registerReceiptRoutes(protected, h)
	registerCustomerRoutes(protected, h)
	registerSalesRoutes(protected, h)
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		// The POS screen sells from the sellable subset; management sees all
		products.GET("/sellable", h.Product.ListSellable)
		products.GET("", h.Product.List)
		products.POST("", middleware.RequirePermission("pos.manage-products"), h.Product.Create)
		products.GET("/:id", h.Product.Get)
	}
}

func registerCartRoutes(protected *gin.RouterGroup, h *Handlers) {
	cart := protected.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.POST("/items", h.Cart.AddItem)
		cart.PATCH("/items", h.Cart.UpdateQuantity)
		cart.DELETE("/items/:product_id", h.Cart.RemoveItem)
		cart.DELETE("", h.Cart.Clear)
		cart.POST("/new-sale", h.Cart.NewSale)
	}
}

func registerCheckoutRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Checkout uses idempotency middleware so a double-tapped "Complete
	// Payment" cannot create two sale documents
	protected.POST("/checkout", middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	}), h.Checkout.Checkout)
}

func registerReceiptRoutes(protected *gin.RouterGroup, h *Handlers) {
	receipts := protected.Group("/receipts")
	{
		receipts.GET("/printer/status", h.Receipt.GetStatus)
		receipts.POST("/printer/test", h.Receipt.TestPrint)
		receipts.POST("/:document_no/print", h.Receipt.Print)
		receipts.POST("/:document_no/email", h.Receipt.Email)
		receipts.GET("/:document_no/share", h.Receipt.Share)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
	}
}

func registerSalesRoutes(protected *gin.RouterGroup, h *Handlers) {
	sales := protected.Group("/sales")
	{
		sales.GET("/documents", h.Sales.ListDocuments)
		sales.GET("/documents/:id", h.Sales.GetDocument)
		sales.GET("/transactions", h.Sales.ListTransactions)
	}
}
