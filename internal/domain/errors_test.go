package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestValidationError_Unwrap(t *testing.T) {
	err := NewValidation("query", "must be at least 3 characters")

	if !errors.Is(err, ErrValidation) {
		t.Error("expected errors.Is(err, ErrValidation)")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatal("expected *ValidationError")
	}
	if ve.Field != "query" {
		t.Errorf("expected field %q, got %q", "query", ve.Field)
	}
	if !strings.Contains(err.Error(), "query") {
		t.Errorf("error message should name the field: %q", err.Error())
	}
}

func TestValidationError_WrappedStillMatches(t *testing.T) {
	err := fmt.Errorf("search: %w", NewValidation("top_k", "out of range"))

	if !errors.Is(err, ErrValidation) {
		t.Error("expected errors.Is through wrapping")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "top_k" {
		t.Errorf("expected *ValidationError with field top_k, got %v", err)
	}
}

func TestUpsertError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewUpsertError(3, cause)

	if !errors.Is(err, ErrUpsert) {
		t.Error("expected errors.Is(err, ErrUpsert)")
	}

	var ue *UpsertError
	if !errors.As(err, &ue) {
		t.Fatal("expected *UpsertError")
	}
	if ue.Batch != 3 {
		t.Errorf("expected batch 3, got %d", ue.Batch)
	}
	if !strings.Contains(err.Error(), "batch 3") {
		t.Errorf("error message should name the batch: %q", err.Error())
	}
}
