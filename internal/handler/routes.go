package handler

import (
	"go-supermarket-inventory/internal/middleware"
	"go-supermarket-inventory/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
)

type Handlers struct {
	Auth     *AuthHandler
	User     *UserHandler
	Product  *ProductHandler
	Category *CategoryHandler
	Supplier *SupplierHandler
	Health   *HealthHandler

	// UploadsDir is served under /uploads when set.
	UploadsDir string
}

// RegisterRoutes mounts the API under /api, the uploads directory under
// /uploads, and answers everything else with a 404 envelope.
func RegisterRoutes(app *fiber.App, h Handlers, tokens middleware.TokenVerifier) {
	requireAuth := middleware.RequireAuth(tokens)
	adminOnly := middleware.RequireRoles(model.RoleAdmin)
	staff := middleware.RequireRoles(model.RoleAdmin, model.RoleManager)

	// Security headers; no Content-Security-Policy is sent.
	app.Use(helmet.New())

	api := app.Group("/api")
	api.Get("/health", h.Health.Health)

	// ============ AUTH ============
	auth := api.Group("/auth")
	auth.Post("/login", h.Auth.Login)
	auth.Get("/roles", h.Auth.Roles)
	auth.Get("/profile", requireAuth, h.Auth.Profile)
	auth.Post("/logout", requireAuth, h.Auth.Logout)
	auth.Post("/change-password", requireAuth, h.Auth.ChangePassword)
	auth.Post("/users", requireAuth, adminOnly, h.User.CreateUser)

	// ============ PRODUCTS ============
	products := api.Group("/products", requireAuth)
	products.Get("/", h.Product.GetProducts)
	products.Get("/stats", h.Product.GetStats)
	products.Get("/low-stock", h.Product.GetLowStock)
	products.Get("/expiring", h.Product.GetExpiring)
	products.Get("/:id", h.Product.GetProduct)
	products.Post("/", staff, h.Product.CreateProduct)
	products.Put("/:id", staff, h.Product.UpdateProduct)
	products.Delete("/:id", staff, h.Product.DeleteProduct)
	products.Patch("/:id/stock", staff, h.Product.UpdateStock)
	products.Post("/:id/restore", adminOnly, h.Product.RestoreProduct)

	// ============ CATEGORIES ============
	categories := api.Group("/categories", requireAuth)
	categories.Get("/", h.Category.GetCategories)
	categories.Get("/:id", h.Category.GetCategory)
	categories.Post("/", staff, h.Category.CreateCategory)
	categories.Put("/:id", staff, h.Category.UpdateCategory)
	categories.Delete("/:id", staff, h.Category.DeleteCategory)
	categories.Post("/:id/restore", adminOnly, h.Category.RestoreCategory)

	// ============ SUPPLIERS ============
	suppliers := api.Group("/suppliers", requireAuth)
	suppliers.Get("/", h.Supplier.GetSuppliers)
	suppliers.Get("/:id", h.Supplier.GetSupplier)
	suppliers.Post("/", staff, h.Supplier.CreateSupplier)
	suppliers.Put("/:id", staff, h.Supplier.UpdateSupplier)
	suppliers.Delete("/:id", staff, h.Supplier.DeleteSupplier)
	suppliers.Post("/:id/restore", adminOnly, h.Supplier.RestoreSupplier)

	if h.UploadsDir != "" {
		app.Static("/uploads", h.UploadsDir)
	}

	app.Use(NotFound)
}
