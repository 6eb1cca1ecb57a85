package validator

import (
	"testing"

	"github.com/shopspring/decimal"
)

type sample struct {
	Name     string           `json:"name" validate:"required,min=2"`
	Username string           `json:"username" validate:"omitempty,username"`
	First    string           `json:"first_name" validate:"omitempty,person_name"`
	Price    *decimal.Decimal `json:"price" validate:"required,min=0"`
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestValidateStructCollectsAllErrors(t *testing.T) {
	errs := ValidateStruct(&sample{Name: "x", Username: "bad!name", First: "J0hn", Price: price("-1")})
	if len(errs) != 4 {
		t.Fatalf("got %d errors, want 4: %v", len(errs), Messages(errs))
	}

	wantFields := []string{"name", "username", "first_name", "price"}
	for i, f := range wantFields {
		if errs[i].Field != f {
			t.Errorf("errs[%d].Field = %q, want %q", i, errs[i].Field, f)
		}
		if errs[i].Message == "" {
			t.Errorf("errs[%d] has empty message", i)
		}
	}
	if errs[1].Message != "username can only contain letters, numbers, spaces, dots, hyphens and underscores" {
		t.Errorf("unexpected username message %q", errs[1].Message)
	}
}

func TestValidateStructZeroPriceIsPresent(t *testing.T) {
	if errs := ValidateStruct(&sample{Name: "ok", Price: price("0")}); len(errs) != 0 {
		t.Errorf("unexpected errors: %v", Messages(errs))
	}
}

func TestValidateStructMissingPrice(t *testing.T) {
	errs := ValidateStruct(&sample{Name: "ok"})
	if len(errs) != 1 || errs[0].Tag != "required" || errs[0].Field != "price" {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	if errs[0].Message != "price is a required field" {
		t.Errorf("message = %q", errs[0].Message)
	}
}

func TestAccentedPersonName(t *testing.T) {
	if errs := ValidateStruct(&sample{Name: "ok", First: "José María", Price: price("1")}); len(errs) != 0 {
		t.Errorf("unexpected errors: %v", Messages(errs))
	}
}
