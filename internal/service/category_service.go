package service

import (
	"context"
	"fmt"
	"strings"

	"go-supermarket-inventory/internal/apperror"
	"go-supermarket-inventory/internal/model"
	"go-supermarket-inventory/internal/repository"

	"github.com/google/uuid"
)

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=500"`
	IsActive    *bool  `json:"is_active"`
}

// UpdateCategoryRequest carries no is_active: deactivation goes through Delete
// so the active-product guard always applies.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type CategoryService interface {
	List(ctx context.Context, includeInactive bool) ([]model.CategoryWithCount, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Category, error)
	Create(ctx context.Context, req *CreateCategoryRequest, actor string) (*model.Category, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateCategoryRequest, actor string) (*model.Category, error)
	Delete(ctx context.Context, id uuid.UUID, actor string) error
	Restore(ctx context.Context, id uuid.UUID, actor string) error
}

type categoryService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

func NewCategoryService(categories repository.CategoryRepository, products repository.ProductRepository) CategoryService {
	return &categoryService{categories: categories, products: products}
}

func (s *categoryService) List(ctx context.Context, includeInactive bool) (rows []model.CategoryWithCount, err error) {
	ctx, span := startSpan(ctx, "CategoryService.List")
	defer func() { endSpan(span, err) }()

	rows, err = s.categories.FindAll(ctx, includeInactive)
	return rows, wrapInternal("fetch categories", err)
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (category *model.Category, err error) {
	ctx, span := startSpan(ctx, "CategoryService.Get")
	defer func() { endSpan(span, err) }()

	category, err = s.categories.FindByID(ctx, id, false)
	return category, wrapInternal("fetch category", err)
}

func (s *categoryService) Create(ctx context.Context, req *CreateCategoryRequest, actor string) (category *model.Category, err error) {
	ctx, span := startSpan(ctx, "CategoryService.Create")
	defer func() { endSpan(span, err) }()

	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if err := validateFirst(req); err != nil {
		return nil, err
	}

	category = &model.Category{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	category.CreatedBy = actor
	category.UpdatedBy = actor

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, wrapInternal("create category", err)
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req *UpdateCategoryRequest, actor string) (category *model.Category, err error) {
	ctx, span := startSpan(ctx, "CategoryService.Update")
	defer func() { endSpan(span, err) }()

	category, err = s.categories.FindByID(ctx, id, false)
	if err != nil {
		return nil, wrapInternal("fetch category", err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if err := validateFirst(req); err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = strings.TrimSpace(*req.Description)
	}
	category.UpdatedBy = actor

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, wrapInternal("update category", err)
	}
	return category, nil
}

// Delete refuses while any active product still points at the category.
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID, actor string) (err error) {
	ctx, span := startSpan(ctx, "CategoryService.Delete")
	defer func() { endSpan(span, err) }()

	if _, err := s.categories.FindByID(ctx, id, false); err != nil {
		return wrapInternal("fetch category", err)
	}

	count, err := s.products.CountActiveByCategory(ctx, id)
	if err != nil {
		return wrapInternal("count category products", err)
	}
	if count > 0 {
		return apperror.Validation(fmt.Sprintf("Cannot delete category. It has %d active products associated.", count))
	}

	return wrapInternal("delete category", s.categories.SetActive(ctx, id, false, actor))
}

func (s *categoryService) Restore(ctx context.Context, id uuid.UUID, actor string) (err error) {
	ctx, span := startSpan(ctx, "CategoryService.Restore")
	defer func() { endSpan(span, err) }()

	if _, err := s.categories.FindByID(ctx, id, true); err != nil {
		return wrapInternal("fetch category", err)
	}
	return wrapInternal("restore category", s.categories.SetActive(ctx, id, true, actor))
}
