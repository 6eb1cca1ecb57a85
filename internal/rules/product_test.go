package rules

import (
	"errors"
	"testing"
	"time"

	"go-supermarket-inventory/internal/apperror"

	"github.com/shopspring/decimal"
)

func intPtr(v int) *int { return &v }

func validFacts() ProductFacts {
	exp := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return ProductFacts{
		CostPrice:      decimal.NewFromInt(10),
		SellingPrice:   decimal.NewFromInt(12),
		MinStockLevel:  5,
		MaxStockLevel:  intPtr(50),
		IsPerishable:   true,
		ExpirationDate: &exp,
	}
}

func TestCheckProduct(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*ProductFacts)
		want   []string
	}{
		{"valid", func(f *ProductFacts) {}, nil},
		{"equal prices allowed", func(f *ProductFacts) { f.SellingPrice = f.CostPrice }, nil},
		{"selling below cost", func(f *ProductFacts) { f.SellingPrice = decimal.RequireFromString("9.99") }, []string{SellingBelowCost}},
		{"max equal to min", func(f *ProductFacts) { f.MaxStockLevel = intPtr(5) }, []string{MaxStockNotAboveMin}},
		{"no max skips stock rule", func(f *ProductFacts) { f.MaxStockLevel = nil; f.MinStockLevel = 1000 }, nil},
		{"perishable without date", func(f *ProductFacts) { f.ExpirationDate = nil }, []string{PerishableNoExpiration}},
		{"non perishable without date", func(f *ProductFacts) { f.IsPerishable = false; f.ExpirationDate = nil }, nil},
		{"all rules", func(f *ProductFacts) {
			f.SellingPrice = decimal.Zero
			f.MaxStockLevel = intPtr(0)
			f.ExpirationDate = nil
		}, []string{SellingBelowCost, MaxStockNotAboveMin, PerishableNoExpiration}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFacts()
			tt.modify(&f)
			err := CheckProduct(f)

			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var appErr *apperror.Error
			if !errors.As(err, &appErr) || appErr.Kind != apperror.KindValidation {
				t.Fatalf("want validation error, got %v", err)
			}
			if len(appErr.Details) != len(tt.want) {
				t.Fatalf("details = %v, want %v", appErr.Details, tt.want)
			}
			for i := range tt.want {
				if appErr.Details[i] != tt.want[i] {
					t.Errorf("details[%d] = %q, want %q", i, appErr.Details[i], tt.want[i])
				}
			}
		})
	}
}
