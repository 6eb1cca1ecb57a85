package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CategorySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type SupplierSummary struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person"`
}

// ProductView is the read model of a product: stored fields plus values
// derived at read time.
type ProductView struct {
	ID             uuid.UUID        `json:"id"`
	Barcode        *string          `json:"barcode"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	CategoryID     *uuid.UUID       `json:"category_id"`
	SupplierID     *uuid.UUID       `json:"supplier_id"`
	CostPrice      decimal.Decimal  `json:"cost_price"`
	SellingPrice   decimal.Decimal  `json:"selling_price"`
	StockQuantity  int              `json:"stock_quantity"`
	MinStockLevel  int              `json:"min_stock_level"`
	MaxStockLevel  *int             `json:"max_stock_level"`
	UnitOfMeasure  string           `json:"unit_of_measure"`
	ExpirationDate *string          `json:"expiration_date"`
	IsPerishable   bool             `json:"is_perishable"`
	ImageURL       string           `json:"image_url"`
	Notes          string           `json:"notes"`
	IsActive       bool             `json:"is_active"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	Category       *CategorySummary `json:"category"`
	Supplier       *SupplierSummary `json:"supplier"`

	IsLowStock     bool            `json:"is_low_stock"`
	IsExpiringSoon bool            `json:"is_expiring_soon"`
	IsExpired      bool            `json:"is_expired"`
	ProfitMargin   decimal.Decimal `json:"profit_margin"`
}

// ToView computes the derived fields relative to now.
func (p *Product) ToView(now time.Time) ProductView {
	view := ProductView{
		ID:             p.ID,
		Barcode:        p.Barcode,
		Name:           p.Name,
		Description:    p.Description,
		CategoryID:     p.CategoryID,
		SupplierID:     p.SupplierID,
		CostPrice:      p.CostPrice,
		SellingPrice:   p.SellingPrice,
		StockQuantity:  p.StockQuantity,
		MinStockLevel:  p.MinStockLevel,
		MaxStockLevel:  p.MaxStockLevel,
		UnitOfMeasure:  p.UnitOfMeasure,
		IsPerishable:   p.IsPerishable,
		ImageURL:       p.ImageURL,
		Notes:          p.Notes,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		IsLowStock:     p.IsLowStock(),
		IsExpiringSoon: p.IsExpiringSoon(now),
		IsExpired:      p.IsExpired(now),
		ProfitMargin:   p.ProfitMargin(),
	}

	if p.ExpirationDate != nil {
		s := p.ExpirationDate.Format(DateLayout)
		view.ExpirationDate = &s
	}
	if p.Category != nil {
		view.Category = &CategorySummary{ID: p.Category.ID, Name: p.Category.Name}
	}
	if p.Supplier != nil {
		view.Supplier = &SupplierSummary{
			ID:            p.Supplier.ID,
			Name:          p.Supplier.Name,
			ContactPerson: p.Supplier.ContactPerson,
		}
	}
	return view
}

// ToViews maps a slice of products to views.
func ToViews(products []Product, now time.Time) []ProductView {
	views := make([]ProductView, len(products))
	for i := range products {
		views[i] = products[i].ToView(now)
	}
	return views
}

// Pagination describes one page of a listing.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// NewPagination computes pages = ceil(total/limit).
func NewPagination(total int64, page, limit int) Pagination {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{Total: total, Page: page, Limit: limit, Pages: pages}
}

type ProductPage struct {
	Products   []ProductView `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

type ProductStats struct {
	TotalProducts    int64 `json:"total_products"`
	ActiveProducts   int64 `json:"active_products"`
	InactiveProducts int64 `json:"inactive_products"`
	LowStockProducts int64 `json:"low_stock_products"`
	ExpiringProducts int64 `json:"expiring_products"`
}

type StockUpdateResult struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	Operation     string    `json:"operation"`
}
