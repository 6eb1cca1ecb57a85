package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{Reference("Category not found"), http.StatusBadRequest},
		{NotFound("Product not found"), http.StatusNotFound},
		{Duplicate("Barcode already exists"), http.StatusConflict},
		{Unauthorized("Invalid credentials"), http.StatusUnauthorized},
		{Forbidden("nope"), http.StatusForbidden},
		{Internal("boom", errors.New("db down")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Kind.String(), func(t *testing.T) {
			if got := tt.err.StatusCode(); got != tt.want {
				t.Errorf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("creating product: %w", Duplicate("Barcode already exists"))
	if KindOf(err) != KindDuplicate {
		t.Errorf("KindOf = %v, want duplicate", KindOf(err))
	}
	if !Is(err, KindDuplicate) || Is(err, KindNotFound) {
		t.Error("Is reports the wrong kind")
	}
	if KindOf(errors.New("plain")) != KindInternal {
		t.Error("foreign errors should be internal")
	}
}

func TestInternalUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("", cause)
	if !errors.Is(err, cause) {
		t.Error("Internal should unwrap to its cause")
	}
	if err.Error() != "connection refused" {
		t.Errorf("Error() = %q", err.Error())
	}
}
