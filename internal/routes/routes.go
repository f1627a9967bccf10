package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"gorm.io/gorm"

	"github.com/example/vendora/internal/config"
	"github.com/example/vendora/internal/handlers"
	"github.com/example/vendora/internal/metrics"
	"github.com/example/vendora/internal/middleware"
	"github.com/example/vendora/internal/models"
	"github.com/example/vendora/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	pricing := services.Pricing{
		TaxRate:               cfg.TaxRate,
		ShippingFlatFee:       cfg.ShippingFlatFee,
		FreeShippingThreshold: cfg.FreeShippingThreshold,
	}

	notifyService := services.NewNotifyService(cfg.TelegramBotToken, cfg.TelegramAdminChat)
	cartService := services.NewCartService(db, pricing)
	checkoutService := services.NewCheckoutService(db, pricing)
	couponService := services.NewCouponService(db)
	orderService := services.NewOrderService(db)
	paymentService := services.NewPaymentService(db, cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayBaseURL)

	authHandler := handlers.NewAuthHandler(db, cfg)
	catalogHandler := handlers.NewCatalogHandler(db)
	productHandler := handlers.NewProductHandler(db)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(checkoutService, orderService, notifyService)
	couponHandler := handlers.NewCouponHandler(couponService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, orderService, cfg.Currency)
	vendorHandler := handlers.NewVendorHandler(db, orderService)
	wishlistHandler := handlers.NewWishlistHandler(db)
	addressHandler := handlers.NewAddressHandler(db)
	adminHandler := handlers.NewAdminHandler(db, orderService)

	authRequired := middleware.AuthMiddleware(cfg, db)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	vendorOrAdmin := middleware.RequireRoles(models.RoleVendor, models.RoleAdmin)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := app.Group("/api")

	// Auth
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", authRequired, authHandler.Me)
	auth.Put("/me", authRequired, authHandler.UpdateMe)
	auth.Post("/change-password", authRequired, authHandler.ChangePassword)
	auth.Get("/me/stats", authRequired, authHandler.Stats)

	// Categories: public reads, admin writes
	categories := api.Group("/categories")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Get("/slug/:slug", catalogHandler.GetCategoryBySlug)
	categories.Get("/:id", catalogHandler.GetCategory)
	categories.Post("/", authRequired, adminOnly, catalogHandler.CreateCategory)
	categories.Put("/:id", authRequired, adminOnly, catalogHandler.UpdateCategory)
	categories.Delete("/:id", authRequired, adminOnly, catalogHandler.DeleteCategory)

	// Products: public reads, vendor/admin writes
	products := api.Group("/products")
	products.Get("/", productHandler.ListProducts)
	products.Get("/search", productHandler.SearchProducts)
	products.Get("/featured", productHandler.FeaturedProducts)
	products.Get("/slug/:slug", productHandler.GetProductBySlug)
	products.Get("/:id", productHandler.GetProduct)
	products.Post("/", authRequired, vendorOrAdmin, productHandler.CreateProduct)
	products.Put("/:id", authRequired, vendorOrAdmin, productHandler.UpdateProduct)
	products.Delete("/:id", authRequired, vendorOrAdmin, productHandler.DeleteProduct)
	products.Get("/:id/reviews", productHandler.ListReviews)
	products.Post("/:id/reviews", authRequired, productHandler.CreateReview)

	// Authenticated cart
	cart := api.Group("/cart", authRequired)
	cart.Get("/", cartHandler.GetCart)
	cart.Post("/items", cartHandler.AddItem)
	cart.Put("/items/:id", cartHandler.UpdateItem)
	cart.Delete("/items/:id", cartHandler.RemoveItem)
	cart.Delete("/", cartHandler.ClearCart)

	// Guest cart, keyed by client session id
	sessionCart := api.Group("/session/:sessionId/cart")
	sessionCart.Get("/", cartHandler.GetSessionCart)
	sessionCart.Post("/items", cartHandler.AddSessionItem)
	sessionCart.Put("/items/:productId", cartHandler.UpdateSessionItem)
	sessionCart.Delete("/items/:productId", cartHandler.RemoveSessionItem)
	sessionCart.Delete("/", cartHandler.ClearSessionCart)

	// Orders
	orders := api.Group("/orders", authRequired)
	orders.Post("/checkout", orderHandler.Checkout)
	orders.Get("/", orderHandler.ListOrders)
	orders.Get("/number/:number", orderHandler.GetOrderByNumber)
	orders.Get("/:id", orderHandler.GetOrder)
	orders.Post("/:id/cancel", orderHandler.CancelOrder)

	// Guest checkout and order history
	api.Post("/session/:sessionId/checkout", orderHandler.SessionCheckout)
	api.Get("/session/:sessionId/orders", orderHandler.ListSessionOrders)

	// Coupons
	api.Post("/coupons/validate", couponHandler.ValidateCoupon)

	// Payments
	payments := api.Group("/payments", authRequired)
	payments.Post("/order", paymentHandler.CreateGatewayOrder)
	payments.Post("/verify", paymentHandler.VerifyPayment)
	payments.Post("/refund", adminOnly, paymentHandler.RefundPayment)

	// Wishlist
	wishlist := api.Group("/wishlist", authRequired)
	wishlist.Get("/", wishlistHandler.ListWishlist)
	wishlist.Post("/:productId", wishlistHandler.AddToWishlist)
	wishlist.Delete("/:productId", wishlistHandler.RemoveFromWishlist)
	wishlist.Post("/:productId/toggle", wishlistHandler.ToggleWishlist)
	wishlist.Get("/:productId/check", wishlistHandler.CheckWishlist)

	// Addresses
	addresses := api.Group("/addresses", authRequired)
	addresses.Get("/", addressHandler.ListAddresses)
	addresses.Post("/", addressHandler.CreateAddress)
	addresses.Get("/:id", addressHandler.GetAddress)
	addresses.Put("/:id", addressHandler.UpdateAddress)
	addresses.Delete("/:id", addressHandler.DeleteAddress)
	addresses.Post("/:id/default", addressHandler.SetDefaultAddress)

	// Vendors: public directory plus the vendor's own console
	vendors := api.Group("/vendors")
	vendors.Get("/", vendorHandler.ListVendors)
	vendors.Post("/register", authRequired, vendorHandler.RegisterVendor)
	vendors.Get("/me", authRequired, vendorOrAdmin, vendorHandler.MyVendorProfile)
	vendors.Put("/me", authRequired, vendorOrAdmin, vendorHandler.UpdateMyVendorProfile)
	vendors.Get("/me/products", authRequired, vendorOrAdmin, vendorHandler.MyProducts)
	vendors.Get("/me/orders", authRequired, vendorOrAdmin, vendorHandler.MyOrders)
	vendors.Put("/me/orders/:id/status", authRequired, vendorOrAdmin, vendorHandler.UpdateOrderStatus)
	vendors.Get("/:id", vendorHandler.GetVendor)

	// Admin console
	admin := api.Group("/admin", authRequired, adminOnly)
	admin.Get("/dashboard", adminHandler.Dashboard)
	admin.Get("/orders", adminHandler.ListOrders)
	admin.Put("/orders/:id/status", adminHandler.UpdateOrderStatus)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Put("/users/:id/active", adminHandler.SetUserActive)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
	admin.Get("/vendors", adminHandler.ListAllVendors)
	admin.Post("/vendors", adminHandler.CreateVendor)
	admin.Put("/vendors/:id/verify", adminHandler.VerifyVendor)
	admin.Put("/vendors/:id", adminHandler.UpdateVendor)
	admin.Delete("/vendors/:id", adminHandler.DeleteVendor)
	admin.Put("/products/:id/status", adminHandler.SetProductStatus)
	admin.Get("/coupons", adminHandler.ListCoupons)
	admin.Post("/coupons", adminHandler.CreateCoupon)
	admin.Put("/coupons/:id", adminHandler.UpdateCoupon)
	admin.Delete("/coupons/:id", adminHandler.DeleteCoupon)
	admin.Get("/reports/sales", adminHandler.SalesReport)
	admin.Get("/reports/inventory", adminHandler.InventoryReport)
	admin.Get("/settings", adminHandler.GetSettings)
	admin.Put("/settings", adminHandler.UpdateSettings)
}
