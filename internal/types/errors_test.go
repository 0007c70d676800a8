package types

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodedErrorFormatting(t *testing.T) {
	err := NotFound("modal %q", "kycModal")
	if got, want := err.Error(), `NOT_FOUND: modal "kycModal"`; got != want {
		t.Fatalf("Error() = %q; want %q", got, want)
	}

	cause := errors.New("dial tcp: refused")
	err = NewError(CodeConfirmFailed, "webhook post failed", cause)
	if got, want := err.Error(), "CONFIRM_FAILED: webhook post failed: dial tcp: refused"; got != want {
		t.Fatalf("Error() = %q; want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is(err, cause) = false; want true")
	}
}

func TestHasCodeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("open page: %w", Validation("category is required"))
	if !HasCode(err, CodeValidation) {
		t.Fatalf("HasCode(%v, %q) = false; want true", err, CodeValidation)
	}
	if HasCode(err, CodeNotFound) {
		t.Fatalf("HasCode(%v, %q) = true; want false", err, CodeNotFound)
	}
	if HasCode(errors.New("plain"), CodeNotFound) {
		t.Fatalf("HasCode(plain) = true; want false")
	}
}
