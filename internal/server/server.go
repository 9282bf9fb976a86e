// Package server assembles the HTTP router from its services.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"tokenvest/internal/handlers"
	"tokenvest/internal/idempotency"
	"tokenvest/internal/middleware"
	"tokenvest/internal/models"
	"tokenvest/internal/repository"
	"tokenvest/internal/services"

	_ "tokenvest/internal/docs" // Import swagger docs
)

// Options tunes the router. Zero values are usable.
type Options struct {
	CORSOrigin     string
	RequestTimeout time.Duration
}

// Services bundles everything the handlers depend on.
type Services struct {
	Users         services.UserServicer
	Audit         services.AuditServicer
	Ledger        services.InventoryLedger
	Purchases     services.PurchaseServicer
	Portfolio     services.PortfolioServicer
	Distributions services.DistributionServicer
}

// NewServices wires the services over db. keys backs purchase idempotency.
func NewServices(db *gorm.DB, keys idempotency.Store) *Services {
	store := repository.NewGormStore(db)
	ledger := services.NewInventoryLedger(store)
	return &Services{
		Users:         services.NewUserService(db),
		Audit:         services.NewAuditService(db),
		Ledger:        ledger,
		Purchases:     services.NewPurchaseService(ledger, keys),
		Portfolio:     services.NewPortfolioService(store),
		Distributions: services.NewDistributionService(store),
	}
}

// NewRouter builds the gin engine with every route of the API.
func NewRouter(svc *Services, opts Options) *gin.Engine {
	authHandler := handlers.NewAuthHandler(svc.Users, svc.Audit)
	investmentHandler := handlers.NewInvestmentHandler(svc.Ledger, svc.Distributions, svc.Audit)
	purchaseHandler := handlers.NewPurchaseHandler(svc.Purchases, svc.Audit)
	portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolio)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(opts.CORSOrigin))
	router.Use(middleware.Timeout(opts.RequestTimeout))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.GET("/investments", investmentHandler.ListInvestments)
	api.GET("/investments/:id", investmentHandler.GetInvestment)
	api.GET("/investments/:id/distributions", investmentHandler.ListDistributions)

	// Authenticated routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	protected.GET("/user", authHandler.GetUser)
	protected.GET("/portfolio", portfolioHandler.GetPortfolio)
	protected.GET("/portfolio/summary", portfolioHandler.GetSummary)
	protected.POST("/tokens/purchase", purchaseHandler.Purchase)

	// Admin routes
	admin := protected.Group("")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	admin.POST("/investments", investmentHandler.CreateInvestment)
	admin.PUT("/investments/:id", investmentHandler.UpdateInvestment)
	admin.DELETE("/investments/:id", investmentHandler.DeleteInvestment)
	admin.POST("/investments/:id/distributions", investmentHandler.RecordDistribution)

	return router
}
