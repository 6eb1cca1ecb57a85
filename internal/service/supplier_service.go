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

type CreateSupplierRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=100"`
	ContactPerson string `json:"contact_person" validate:"max=100"`
	Email         string `json:"email" validate:"omitempty,email,max=100"`
	Phone         string `json:"phone" validate:"max=20"`
	Address       string `json:"address"`
	TaxID         string `json:"tax_id" validate:"max=20"`
	IsActive      *bool  `json:"is_active"`
}

func (r *CreateSupplierRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.ContactPerson = strings.TrimSpace(r.ContactPerson)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.TaxID = strings.TrimSpace(r.TaxID)
}

type UpdateSupplierRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=2,max=100"`
	ContactPerson *string `json:"contact_person" validate:"omitempty,max=100"`
	Email         *string `json:"email" validate:"omitempty,email,max=100"`
	Phone         *string `json:"phone" validate:"omitempty,max=20"`
	Address       *string `json:"address"`
	TaxID         *string `json:"tax_id" validate:"omitempty,max=20"`
}

// Normalize trims the fields that are present so length checks see the
// stored value.
func (r *UpdateSupplierRequest) Normalize() {
	trim := func(v *string) {
		if v != nil {
			*v = strings.TrimSpace(*v)
		}
	}
	trim(r.Name)
	trim(r.ContactPerson)
	trim(r.Phone)
	trim(r.TaxID)
	if r.Email != nil {
		*r.Email = strings.ToLower(strings.TrimSpace(*r.Email))
	}
}

func (r *UpdateSupplierRequest) applyTo(s *model.Supplier) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.ContactPerson != nil {
		s.ContactPerson = *r.ContactPerson
	}
	if r.Email != nil {
		s.Email = *r.Email
	}
	if r.Phone != nil {
		s.Phone = *r.Phone
	}
	if r.Address != nil {
		s.Address = *r.Address
	}
	if r.TaxID != nil {
		s.TaxID = *r.TaxID
	}
}

type SupplierService interface {
	List(ctx context.Context, includeInactive bool) ([]model.SupplierWithCount, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Supplier, error)
	Create(ctx context.Context, req *CreateSupplierRequest, actor string) (*model.Supplier, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateSupplierRequest, actor string) (*model.Supplier, error)
	Delete(ctx context.Context, id uuid.UUID, actor string) error
	Restore(ctx context.Context, id uuid.UUID, actor string) error
}

type supplierService struct {
	suppliers repository.SupplierRepository
	products  repository.ProductRepository
}

func NewSupplierService(suppliers repository.SupplierRepository, products repository.ProductRepository) SupplierService {
	return &supplierService{suppliers: suppliers, products: products}
}

func (s *supplierService) List(ctx context.Context, includeInactive bool) (rows []model.SupplierWithCount, err error) {
	ctx, span := startSpan(ctx, "SupplierService.List")
	defer func() { endSpan(span, err) }()

	rows, err = s.suppliers.FindAll(ctx, includeInactive)
	return rows, wrapInternal("fetch suppliers", err)
}

func (s *supplierService) Get(ctx context.Context, id uuid.UUID) (supplier *model.Supplier, err error) {
	ctx, span := startSpan(ctx, "SupplierService.Get")
	defer func() { endSpan(span, err) }()

	supplier, err = s.suppliers.FindByID(ctx, id, false)
	return supplier, wrapInternal("fetch supplier", err)
}

func (s *supplierService) Create(ctx context.Context, req *CreateSupplierRequest, actor string) (supplier *model.Supplier, err error) {
	ctx, span := startSpan(ctx, "SupplierService.Create")
	defer func() { endSpan(span, err) }()

	req.Normalize()
	if err := validateFirst(req); err != nil {
		return nil, err
	}

	supplier = &model.Supplier{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		TaxID:         req.TaxID,
		IsActive:      true,
	}
	if req.IsActive != nil {
		supplier.IsActive = *req.IsActive
	}
	supplier.CreatedBy = actor
	supplier.UpdatedBy = actor

	if err := s.suppliers.Create(ctx, supplier); err != nil {
		return nil, wrapInternal("create supplier", err)
	}
	return supplier, nil
}

func (s *supplierService) Update(ctx context.Context, id uuid.UUID, req *UpdateSupplierRequest, actor string) (supplier *model.Supplier, err error) {
	ctx, span := startSpan(ctx, "SupplierService.Update")
	defer func() { endSpan(span, err) }()

	supplier, err = s.suppliers.FindByID(ctx, id, false)
	if err != nil {
		return nil, wrapInternal("fetch supplier", err)
	}
	req.Normalize()
	if err := validateFirst(req); err != nil {
		return nil, err
	}

	req.applyTo(supplier)
	supplier.UpdatedBy = actor

	if err := s.suppliers.Update(ctx, supplier); err != nil {
		return nil, wrapInternal("update supplier", err)
	}
	return supplier, nil
}

// Delete refuses while any active product still points at the supplier.
func (s *supplierService) Delete(ctx context.Context, id uuid.UUID, actor string) (err error) {
	ctx, span := startSpan(ctx, "SupplierService.Delete")
	defer func() { endSpan(span, err) }()

	if _, err := s.suppliers.FindByID(ctx, id, false); err != nil {
		return wrapInternal("fetch supplier", err)
	}

	count, err := s.products.CountActiveBySupplier(ctx, id)
	if err != nil {
		return wrapInternal("count supplier products", err)
	}
	if count > 0 {
		return apperror.Validation(fmt.Sprintf("Cannot delete supplier. It has %d active products associated.", count))
	}

	return wrapInternal("delete supplier", s.suppliers.SetActive(ctx, id, false, actor))
}

func (s *supplierService) Restore(ctx context.Context, id uuid.UUID, actor string) (err error) {
	ctx, span := startSpan(ctx, "SupplierService.Restore")
	defer func() { endSpan(span, err) }()

	if _, err := s.suppliers.FindByID(ctx, id, true); err != nil {
		return wrapInternal("fetch supplier", err)
	}
	return wrapInternal("restore supplier", s.suppliers.SetActive(ctx, id, true, actor))
}
