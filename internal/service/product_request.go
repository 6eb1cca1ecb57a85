package service

import (
	"strings"
	"time"

	"go-supermarket-inventory/internal/apperror"
	"go-supermarket-inventory/internal/model"
	"go-supermarket-inventory/internal/rules"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	Barcode        *string          `json:"barcode" validate:"omitempty,max=50"`
	Name           string           `json:"name" validate:"required,min=2,max=200"`
	Description    string           `json:"description"`
	CategoryID     *uuid.UUID       `json:"category_id"`
	SupplierID     *uuid.UUID       `json:"supplier_id"`
	CostPrice      *decimal.Decimal `json:"cost_price" validate:"required,min=0"`
	SellingPrice   *decimal.Decimal `json:"selling_price" validate:"required,min=0"`
	StockQuantity  *int             `json:"stock_quantity" validate:"omitempty,min=0"`
	MinStockLevel  *int             `json:"min_stock_level" validate:"omitempty,min=0"`
	MaxStockLevel  *int             `json:"max_stock_level" validate:"omitempty,min=0"`
	UnitOfMeasure  string           `json:"unit_of_measure" validate:"omitempty,oneof=UNIT KG LB LITER ML PACK BOX"`
	ExpirationDate *string          `json:"expiration_date" validate:"omitempty,datetime=2006-01-02"`
	IsPerishable   *bool            `json:"is_perishable"`
	ImageURL       string           `json:"image_url" validate:"omitempty,url,max=255"`
	Notes          string           `json:"notes"`
	IsActive       *bool            `json:"is_active"`
}

// Normalize trims text, upper-cases the unit and turns an empty barcode into
// "no barcode".
func (r *CreateProductRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
	r.UnitOfMeasure = strings.ToUpper(strings.TrimSpace(r.UnitOfMeasure))
	r.Barcode = blankToNil(r.Barcode)
	r.ExpirationDate = blankToNil(r.ExpirationDate)
}

// toProduct applies defaults for omitted fields. Call after validation.
func (r *CreateProductRequest) toProduct() (*model.Product, error) {
	expiration, err := parseDate(r.ExpirationDate)
	if err != nil {
		return nil, err
	}

	p := &model.Product{
		Barcode:        r.Barcode,
		Name:           r.Name,
		Description:    r.Description,
		CategoryID:     r.CategoryID,
		SupplierID:     r.SupplierID,
		CostPrice:      *r.CostPrice,
		SellingPrice:   *r.SellingPrice,
		MaxStockLevel:  r.MaxStockLevel,
		UnitOfMeasure:  model.UnitUnit,
		ExpirationDate: expiration,
		ImageURL:       r.ImageURL,
		Notes:          r.Notes,
		IsActive:       true,
	}
	if r.StockQuantity != nil {
		p.StockQuantity = *r.StockQuantity
	}
	if r.MinStockLevel != nil {
		p.MinStockLevel = *r.MinStockLevel
	}
	if r.UnitOfMeasure != "" {
		p.UnitOfMeasure = r.UnitOfMeasure
	}
	if r.IsPerishable != nil {
		p.IsPerishable = *r.IsPerishable
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
	return p, nil
}

// UpdateProductRequest is a partial update. Absent keys keep the stored value;
// Nullable fields may also be cleared with an explicit null.
type UpdateProductRequest struct {
	Barcode        model.Nullable[string]    `json:"barcode" validate:"omitempty,max=50"`
	Name           *string                   `json:"name" validate:"omitempty,min=2,max=200"`
	Description    *string                   `json:"description"`
	CategoryID     model.Nullable[uuid.UUID] `json:"category_id"`
	SupplierID     model.Nullable[uuid.UUID] `json:"supplier_id"`
	CostPrice      *decimal.Decimal          `json:"cost_price" validate:"omitempty,min=0"`
	SellingPrice   *decimal.Decimal          `json:"selling_price" validate:"omitempty,min=0"`
	StockQuantity  *int                      `json:"stock_quantity" validate:"omitempty,min=0"`
	MinStockLevel  *int                      `json:"min_stock_level" validate:"omitempty,min=0"`
	MaxStockLevel  model.Nullable[int]       `json:"max_stock_level" validate:"omitempty,min=0"`
	UnitOfMeasure  *string                   `json:"unit_of_measure" validate:"omitempty,oneof=UNIT KG LB LITER ML PACK BOX"`
	ExpirationDate model.Nullable[string]    `json:"expiration_date" validate:"omitempty,datetime=2006-01-02"`
	IsPerishable   *bool                     `json:"is_perishable"`
	ImageURL       *string                   `json:"image_url" validate:"omitempty,url,max=255"`
	Notes          *string                   `json:"notes"`
	IsActive       *bool                     `json:"is_active"`
}

func (r *UpdateProductRequest) Normalize() {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
	if r.UnitOfMeasure != nil {
		unit := strings.ToUpper(strings.TrimSpace(*r.UnitOfMeasure))
		r.UnitOfMeasure = &unit
	}
	if r.Barcode.Set {
		r.Barcode.Value = blankToNil(r.Barcode.Value)
	}
	if r.ExpirationDate.Set {
		r.ExpirationDate.Value = blankToNil(r.ExpirationDate.Value)
	}
}

// ApplyTo overlays the patch on p. p must be a copy the caller may discard if
// the merged product later fails validation.
func (r *UpdateProductRequest) ApplyTo(p *model.Product) error {
	if r.Barcode.Set {
		p.Barcode = r.Barcode.Value
	}
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.CategoryID.Set {
		p.CategoryID = r.CategoryID.Value
		p.Category = nil
	}
	if r.SupplierID.Set {
		p.SupplierID = r.SupplierID.Value
		p.Supplier = nil
	}
	if r.CostPrice != nil {
		p.CostPrice = *r.CostPrice
	}
	if r.SellingPrice != nil {
		p.SellingPrice = *r.SellingPrice
	}
	if r.StockQuantity != nil {
		p.StockQuantity = *r.StockQuantity
	}
	if r.MinStockLevel != nil {
		p.MinStockLevel = *r.MinStockLevel
	}
	if r.MaxStockLevel.Set {
		p.MaxStockLevel = r.MaxStockLevel.Value
	}
	if r.UnitOfMeasure != nil {
		p.UnitOfMeasure = *r.UnitOfMeasure
	}
	if r.ExpirationDate.Set {
		expiration, err := parseDate(r.ExpirationDate.Value)
		if err != nil {
			return err
		}
		p.ExpirationDate = expiration
	}
	if r.IsPerishable != nil {
		p.IsPerishable = *r.IsPerishable
	}
	if r.ImageURL != nil {
		p.ImageURL = *r.ImageURL
	}
	if r.Notes != nil {
		p.Notes = *r.Notes
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
	return nil
}

type StockUpdateRequest struct {
	Quantity  *int   `json:"quantity" validate:"required,min=0"`
	Operation string `json:"operation" validate:"omitempty,oneof=SET ADD SUBTRACT"`
}

const (
	StockSet      = "SET"
	StockAdd      = "ADD"
	StockSubtract = "SUBTRACT"
)

func (r *StockUpdateRequest) Normalize() {
	r.Operation = strings.ToUpper(strings.TrimSpace(r.Operation))
	if r.Operation == "" {
		r.Operation = StockSet
	}
}

// applyStock computes the new quantity; SUBTRACT never goes below zero.
func applyStock(operation string, current, quantity int) int {
	switch operation {
	case StockAdd:
		return current + quantity
	case StockSubtract:
		if quantity >= current {
			return 0
		}
		return current - quantity
	default:
		return quantity
	}
}

func factsOf(p *model.Product) rules.ProductFacts {
	return rules.ProductFacts{
		CostPrice:      p.CostPrice,
		SellingPrice:   p.SellingPrice,
		MinStockLevel:  p.MinStockLevel,
		MaxStockLevel:  p.MaxStockLevel,
		IsPerishable:   p.IsPerishable,
		ExpirationDate: p.ExpirationDate,
	}
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(model.DateLayout, *s)
	if err != nil {
		return nil, apperror.Validation(validationFailed, "expiration_date must be a valid date (YYYY-MM-DD)")
	}
	return &t, nil
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
