package routes

import (
	"net/http"
	"time"

	"storefront-api/handlers"
	"storefront-api/middleware"
	"storefront-api/repository"
	"storefront-api/services"
	"storefront-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Options carries the settings the route table needs beyond the database.
type Options struct {
	SeedCommand string
	SeedTimeout time.Duration
	// GuestOrderLimit is the number of requests per minute and client IP
	// allowed on the unauthenticated endpoints.
	GuestOrderLimit int
	// Now overrides the catalog clock. Nil means time.Now.
	Now func() time.Time
}

// SetupRoutes registers every route on r. The returned func stops the rate
// limiters' background loops and must be called once the server is done.
func SetupRoutes(r *gin.Engine, db *gorm.DB, opts Options) (stop func()) {
	utils.UseJSONFieldNames()

	r.Use(middleware.Logger(), middleware.Recovery(), middleware.ErrorHandler())

	// Initialize handlers
	store := repository.NewStore(db)
	cartHandler := &handlers.CartHandler{Carts: services.NewCartService(store)}
	orderHandler := &handlers.OrderHandler{Orders: services.NewOrderService(store)}
	productHandler := &handlers.ProductHandler{Catalog: services.NewCatalogService(store, opts.Now)}
	utilsHandler := &handlers.UtilsHandler{Seeder: services.NewSeeder(opts.SeedCommand, opts.SeedTimeout)}

	limit := opts.GuestOrderLimit
	if limit <= 0 {
		limit = 10
	}
	guestLimiter := middleware.NewRateLimiter(limit, time.Minute)
	seedLimiter := middleware.NewRateLimiter(1, time.Minute)

	// Public routes
	r.GET("/health", handlers.Health)
	r.GET("/products", productHandler.GetProducts)
	r.POST("/orders/guest", guestLimiter.Middleware(), orderHandler.PlaceGuestOrder)
	r.GET("/utils/seed", seedLimiter.Middleware(), utilsHandler.Seed)

	// Protected routes (require authentication)
	protected := r.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/cart", cartHandler.GetCart)
		protected.POST("/cart/:id", cartHandler.AddProduct)
		protected.DELETE("/cart/:id", cartHandler.RemoveProduct)

		protected.POST("/orders", orderHandler.PlaceOrder)
		protected.GET("/orders", orderHandler.GetOrders)
		protected.GET("/orders/:id", orderHandler.GetOrder)
	}

	r.NoRoute(func(c *gin.Context) {
		utils.RespondError(c, http.StatusNotFound, "Route not found")
	})

	return func() {
		guestLimiter.Stop()
		seedLimiter.Stop()
	}
}
