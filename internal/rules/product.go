// Package rules holds the cross-field product invariants that single-field
// validation tags cannot express.
package rules

import (
	"time"

	"go-supermarket-inventory/internal/apperror"

	"github.com/shopspring/decimal"
)

const (
	SellingBelowCost        = "Selling price must be greater than or equal to cost price"
	MaxStockNotAboveMin     = "Max stock level must be greater than min stock level"
	PerishableNoExpiration  = "Perishable products must have an expiration date"
	productValidationFailed = "Product validation failed"
)

// ProductFacts is the merged state a product will have once written.
type ProductFacts struct {
	CostPrice      decimal.Decimal
	SellingPrice   decimal.Decimal
	MinStockLevel  int
	MaxStockLevel  *int
	IsPerishable   bool
	ExpirationDate *time.Time
}

// CheckProduct evaluates every rule and reports all violations at once.
func CheckProduct(f ProductFacts) error {
	var violations []string

	if f.SellingPrice.LessThan(f.CostPrice) {
		violations = append(violations, SellingBelowCost)
	}
	if f.MaxStockLevel != nil && *f.MaxStockLevel <= f.MinStockLevel {
		violations = append(violations, MaxStockNotAboveMin)
	}
	if f.IsPerishable && f.ExpirationDate == nil {
		violations = append(violations, PerishableNoExpiration)
	}

	if len(violations) == 0 {
		return nil
	}
	if len(violations) == 1 {
		return apperror.Validation(violations[0], violations...)
	}
	return apperror.Validation(productValidationFailed, violations...)
}
