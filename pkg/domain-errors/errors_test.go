package domainerrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestHasCode(t *testing.T) {
	t.Run("matches direct error", func(t *testing.T) {
		err := New(CodeUnknownDeadlineType, "no such deadline type")
		if !HasCode(err, CodeUnknownDeadlineType) {
			t.Fatalf("expected code %s on %v", CodeUnknownDeadlineType, err)
		}
		if HasCode(err, CodeDataUnavailable) {
			t.Fatalf("unexpected code match on %v", err)
		}
	})

	t.Run("matches through fmt wrapping", func(t *testing.T) {
		inner := New(CodeDataUnavailable, "holiday store timeout")
		wrapped := fmt.Errorf("compute deadline: %w", inner)
		if !HasCode(wrapped, CodeDataUnavailable) {
			t.Fatalf("expected code to survive wrapping: %v", wrapped)
		}
	})

	t.Run("false for plain errors", func(t *testing.T) {
		if HasCode(errors.New("boom"), CodeInternal) {
			t.Fatal("plain error should not carry a code")
		}
	})
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeDataUnavailable, "list holidays", cause)

	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable, got %v", err)
	}
	if CodeOf(err) != CodeDataUnavailable {
		t.Fatalf("expected code %s, got %s", CodeDataUnavailable, CodeOf(err))
	}
}

func TestCodeOfFallsBackToInternal(t *testing.T) {
	if CodeOf(errors.New("boom")) != CodeInternal {
		t.Fatal("plain errors should map to internal_error")
	}
}
