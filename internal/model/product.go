package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	UnitUnit  = "UNIT"
	UnitKG    = "KG"
	UnitLB    = "LB"
	UnitLiter = "LITER"
	UnitML    = "ML"
	UnitPack  = "PACK"
	UnitBox   = "BOX"
)

// ExpiringWindowDays is how many days ahead counts as "expiring soon".
const ExpiringWindowDays = 3

const DateLayout = "2006-01-02"

type Product struct {
	BaseModel
	Barcode     *string    `gorm:"type:varchar(50);uniqueIndex" json:"barcode"`
	Name        string     `gorm:"type:varchar(200);not null;index" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	Category    *Category  `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"category,omitempty"`
	SupplierID  *uuid.UUID `gorm:"type:uuid;index" json:"supplier_id"`
	Supplier    *Supplier  `gorm:"foreignKey:SupplierID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"supplier,omitempty"`

	CostPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cost_price"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"selling_price"`

	StockQuantity int    `gorm:"not null;index" json:"stock_quantity"`
	MinStockLevel int    `gorm:"not null" json:"min_stock_level"`
	MaxStockLevel *int   `json:"max_stock_level"`
	UnitOfMeasure string `gorm:"type:varchar(10);not null" json:"unit_of_measure"`

	ExpirationDate *time.Time `gorm:"type:date;index" json:"expiration_date"`
	IsPerishable   bool       `gorm:"not null" json:"is_perishable"`

	ImageURL string `gorm:"type:varchar(255)" json:"image_url"`
	Notes    string `gorm:"type:text" json:"notes"`
	IsActive bool   `gorm:"not null;index" json:"is_active"`
}

// IsLowStock reports stock at or below the minimum level.
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.MinStockLevel
}

// DaysUntilExpiration counts whole calendar days from now's date to the
// expiration date; ok is false when the product has no expiration date.
func (p *Product) DaysUntilExpiration(now time.Time) (days int, ok bool) {
	if p.ExpirationDate == nil {
		return 0, false
	}
	exp := DateOf(*p.ExpirationDate)
	today := DateOf(now)
	return int(exp.Sub(today).Hours() / 24), true
}

func (p *Product) IsExpiringSoon(now time.Time) bool {
	days, ok := p.DaysUntilExpiration(now)
	return ok && days >= 0 && days <= ExpiringWindowDays
}

func (p *Product) IsExpired(now time.Time) bool {
	days, ok := p.DaysUntilExpiration(now)
	return ok && days < 0
}

// ProfitMargin is (selling - cost) / cost * 100, or zero for a zero cost.
func (p *Product) ProfitMargin() decimal.Decimal {
	if p.CostPrice.IsZero() {
		return decimal.Zero
	}
	return p.SellingPrice.Sub(p.CostPrice).
		Div(p.CostPrice).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

// DateOf truncates t to midnight UTC of its own calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
