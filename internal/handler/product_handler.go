package handler

import (
	"strconv"

	"go-supermarket-inventory/internal/apperror"
	"go-supermarket-inventory/internal/middleware"
	"go-supermarket-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

// GetProducts lists products with filters and pagination
// GET /api/products
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	q := service.ProductQuery{
		Page:            c.QueryInt("page", service.DefaultPage),
		Limit:           c.QueryInt("limit", service.DefaultLimit),
		Search:          c.Query("search"),
		IncludeInactive: c.QueryBool("include_inactive", false),
		LowStock:        c.QueryBool("low_stock", false),
		Expiring:        c.QueryBool("expiring", false),
	}

	var err error
	if q.CategoryID, err = optionalUUID(c, "category_id"); err != nil {
		return err
	}
	if q.SupplierID, err = optionalUUID(c, "supplier_id"); err != nil {
		return err
	}
	if raw := c.Query("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return apperror.Validation("Invalid is_active")
		}
		q.IsActive = &active
	}

	page, err := h.service.List(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"data":       page.Products,
		"pagination": page.Pagination,
	})
}

// GET /api/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "product")
	if err != nil {
		return err
	}
	view, err := h.service.Get(c.UserContext(), id, c.QueryBool("include_inactive", false))
	if err != nil {
		return err
	}
	return ok(c, view)
}

// POST /api/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	view, err := h.service.Create(c.UserContext(), &req, middleware.Actor(c))
	if err != nil {
		return err
	}
	return created(c, view, "Product created successfully")
}

// PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "product")
	if err != nil {
		return err
	}
	var req service.UpdateProductRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	view, err := h.service.Update(c.UserContext(), id, &req, middleware.Actor(c))
	if err != nil {
		return err
	}
	return c.JSON(Response{Success: true, Data: view, Message: "Product updated successfully"})
}

// DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "product")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id, middleware.Actor(c)); err != nil {
		return err
	}
	return message(c, "Product deleted successfully")
}

// POST /api/products/:id/restore
func (h *ProductHandler) RestoreProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "product")
	if err != nil {
		return err
	}
	if err := h.service.Restore(c.UserContext(), id, middleware.Actor(c)); err != nil {
		return err
	}
	return message(c, "Product restored successfully")
}

// GET /api/products/low-stock
func (h *ProductHandler) GetLowStock(c *fiber.Ctx) error {
	views, err := h.service.LowStock(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, views)
}

// GET /api/products/expiring
func (h *ProductHandler) GetExpiring(c *fiber.Ctx) error {
	views, err := h.service.Expiring(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, views)
}

// PATCH /api/products/:id/stock
func (h *ProductHandler) UpdateStock(c *fiber.Ctx) error {
	id, err := parseID(c, "product")
	if err != nil {
		return err
	}
	var req service.StockUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	result, err := h.service.UpdateStock(c.UserContext(), id, &req, middleware.Actor(c))
	if err != nil {
		return err
	}
	return c.JSON(Response{Success: true, Data: result, Message: "Stock updated successfully"})
}

// GET /api/products/stats
func (h *ProductHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, stats)
}
