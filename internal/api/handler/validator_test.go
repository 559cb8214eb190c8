package handler

import (
	"errors"
	"testing"

	"github.com/storepulse/store-rating/internal/core/domain"
)

func TestValidator_UsesJSONNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&updateRatingRequest{})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %T", err)
	}
	if len(ve.Problems) != 2 || ve.Problems[0] != "ratingId is required" || ve.Problems[1] != "value is required" {
		t.Fatalf("unexpected problems: %v", ve.Problems)
	}
}

func TestValidator_PresentZeroPasses(t *testing.T) {
	v := NewValidator()
	zero := flexInt(0)

	if err := v.Validate(&createRatingRequest{StoreID: &zero, Value: &zero}); err != nil {
		t.Fatalf("present zero values belong to the range check, got %v", err)
	}
}
