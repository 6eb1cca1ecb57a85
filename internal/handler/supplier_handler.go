package handler

import (
	"go-supermarket-inventory/internal/middleware"
	"go-supermarket-inventory/internal/model"
	"go-supermarket-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SupplierHandler struct {
	service service.SupplierService
}

func NewSupplierHandler(s service.SupplierService) *SupplierHandler {
	return &SupplierHandler{service: s}
}

// GET /api/suppliers?include_inactive=true
func (h *SupplierHandler) GetSuppliers(c *fiber.Ctx) error {
	rows, err := h.service.List(c.UserContext(), c.QueryBool("include_inactive", false))
	if err != nil {
		return err
	}
	if rows == nil {
		rows = []model.SupplierWithCount{}
	}
	return ok(c, rows)
}

func (h *SupplierHandler) GetSupplier(c *fiber.Ctx) error {
	id, err := parseID(c, "supplier")
	if err != nil {
		return err
	}
	supplier, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, supplier)
}

func (h *SupplierHandler) CreateSupplier(c *fiber.Ctx) error {
	var req service.CreateSupplierRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	supplier, err := h.service.Create(c.UserContext(), &req, middleware.Actor(c))
	if err != nil {
		return err
	}
	return created(c, supplier, "Supplier created successfully")
}

func (h *SupplierHandler) UpdateSupplier(c *fiber.Ctx) error {
	id, err := parseID(c, "supplier")
	if err != nil {
		return err
	}
	var req service.UpdateSupplierRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	supplier, err := h.service.Update(c.UserContext(), id, &req, middleware.Actor(c))
	if err != nil {
		return err
	}
	return c.JSON(Response{Success: true, Data: supplier, Message: "Supplier updated successfully"})
}

func (h *SupplierHandler) DeleteSupplier(c *fiber.Ctx) error {
	id, err := parseID(c, "supplier")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id, middleware.Actor(c)); err != nil {
		return err
	}
	return message(c, "Supplier deleted successfully")
}

func (h *SupplierHandler) RestoreSupplier(c *fiber.Ctx) error {
	id, err := parseID(c, "supplier")
	if err != nil {
		return err
	}
	if err := h.service.Restore(c.UserContext(), id, middleware.Actor(c)); err != nil {
		return err
	}
	return message(c, "Supplier restored successfully")
}
