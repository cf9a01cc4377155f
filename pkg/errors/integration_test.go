package errors_test

import (
	"errors"
	"fmt"
	"os"
	"testing"

	kcalErrors "github.com/ezoic/caloriedash/pkg/errors"
)

// TestErrorWrappingCompatibility checks that typed errors survive fmt.Errorf wrapping.
func TestErrorWrappingCompatibility(t *testing.T) {
	originalErr := kcalErrors.NewNotFittedError("LinearRegression", "Predict")
	wrappedErr := fmt.Errorf("prediction failed: %w", originalErr)

	if !errors.Is(wrappedErr, originalErr) {
		t.Errorf("errors.Is failed to identify wrapped error")
	}
	if !errors.Is(wrappedErr, kcalErrors.ErrNotFitted) {
		t.Errorf("errors.Is failed to match ErrNotFitted")
	}

	var notFittedErr *kcalErrors.NotFittedError
	if !errors.As(wrappedErr, &notFittedErr) {
		t.Fatalf("errors.As failed to extract NotFittedError")
	}
	if notFittedErr.ModelName != "LinearRegression" {
		t.Errorf("expected ModelName 'LinearRegression', got '%s'", notFittedErr.ModelName)
	}
}

func TestDimensionErrorMatchesSentinel(t *testing.T) {
	err := kcalErrors.NewDimensionError("Adapter.Predict", 10, 9, 1)

	if !kcalErrors.Is(err, kcalErrors.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}

	var dimErr *kcalErrors.DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("errors.As failed to extract DimensionError")
	}
	if dimErr.Expected != 10 || dimErr.Got != 9 {
		t.Errorf("unexpected dimensions: %+v", dimErr)
	}
}

func TestModelErrorUnwrap(t *testing.T) {
	stdErr := fmt.Errorf("standard error")
	customErr := kcalErrors.NewModelError("TestOp", "test failure", stdErr)
	wrappedErr := fmt.Errorf("operation context: %w", customErr)

	if !errors.Is(wrappedErr, stdErr) {
		t.Errorf("failed to find standard error in chain")
	}

	var modelErr *kcalErrors.ModelError
	if !errors.As(wrappedErr, &modelErr) {
		t.Fatalf("failed to extract ModelError")
	}
	if modelErr.Unwrap() != stdErr {
		t.Errorf("ModelError.Unwrap() didn't return expected error")
	}
}

func TestUnavailableMarks(t *testing.T) {
	_, statErr := os.Stat("does/not/exist.csv")

	tests := []struct {
		name   string
		err    error
		marked error
		other  error
	}{
		{
			name:   "data with cause",
			err:    kcalErrors.DataUnavailable(statErr, "load dataset %q", "does/not/exist.csv"),
			marked: kcalErrors.ErrDataUnavailable,
			other:  kcalErrors.ErrModelUnavailable,
		},
		{
			name:   "model without cause",
			err:    kcalErrors.ModelUnavailable(nil, "unsupported format version %q", "2.0"),
			marked: kcalErrors.ErrModelUnavailable,
			other:  kcalErrors.ErrDataUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("startup: %w", tt.err)
			if !kcalErrors.Is(wrapped, tt.marked) {
				t.Errorf("expected %v to be marked %v", wrapped, tt.marked)
			}
			if kcalErrors.Is(wrapped, tt.other) {
				t.Errorf("did not expect %v to be marked %v", wrapped, tt.other)
			}
		})
	}

	if err := kcalErrors.DataUnavailable(statErr, "load"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected cause to stay reachable, got %v", err)
	}
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer kcalErrors.Recover(&err, "Adapter.Predict")
		panic("mat: dimension mismatch")
	}

	err := run()
	if err == nil {
		t.Fatal("expected recovered error")
	}
	if got := err.Error(); got != "Adapter.Predict: recovered from panic: mat: dimension mismatch" {
		t.Errorf("unexpected message %q", got)
	}
}
