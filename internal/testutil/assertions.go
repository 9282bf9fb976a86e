package testutil

import (
	"errors"
	"testing"

	apperrors "tokenvest/internal/errors"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertErrorKind checks that err is an *AppError of the given purchase kind.
func AssertErrorKind(t *testing.T, err error, expectedKind string) {
	t.Helper()

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError of kind %q, got %T: %v", expectedKind, err, err)
	}
	if appErr.Kind != expectedKind {
		t.Errorf("expected error kind %q, got %q (code: %s)", expectedKind, appErr.Kind, appErr.Code)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
