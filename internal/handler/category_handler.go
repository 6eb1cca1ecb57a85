package handler

import (
	"go-supermarket-inventory/internal/middleware"
	"go-supermarket-inventory/internal/model"
	"go-supermarket-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	service service.CategoryService
}

func NewCategoryHandler(s service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: s}
}

// GET /api/categories?include_inactive=true
func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	rows, err := h.service.List(c.UserContext(), c.QueryBool("include_inactive", false))
	if err != nil {
		return err
	}
	if rows == nil {
		rows = []model.CategoryWithCount{}
	}
	return ok(c, rows)
}

func (h *CategoryHandler) GetCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "category")
	if err != nil {
		return err
	}
	category, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, category)
}

func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req service.CreateCategoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	category, err := h.service.Create(c.UserContext(), &req, middleware.Actor(c))
	if err != nil {
		return err
	}
	return created(c, category, "Category created successfully")
}

func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "category")
	if err != nil {
		return err
	}
	var req service.UpdateCategoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	category, err := h.service.Update(c.UserContext(), id, &req, middleware.Actor(c))
	if err != nil {
		return err
	}
	return c.JSON(Response{Success: true, Data: category, Message: "Category updated successfully"})
}

func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "category")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id, middleware.Actor(c)); err != nil {
		return err
	}
	return message(c, "Category deleted successfully")
}

func (h *CategoryHandler) RestoreCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "category")
	if err != nil {
		return err
	}
	if err := h.service.Restore(c.UserContext(), id, middleware.Actor(c)); err != nil {
		return err
	}
	return message(c, "Category restored successfully")
}
