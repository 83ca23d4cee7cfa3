package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("empty name"), KindValidation},
		{"conflict", Conflict("duplicate player %q", "Alice"), KindConflict},
		{"state", State("session already closed"), KindState},
		{"persistence", Persistence(errors.New("disk full"), "failed to save"), KindPersistence},
		{"untyped", errors.New("plain"), KindUnknown},
		{"nil", nil, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("add participation: %w", Conflict("player already in session"))
	if !IsConflict(err) {
		t.Errorf("expected wrapped error to still classify as conflict, got %v", KindOf(err))
	}
}

func TestPersistenceUnwrapsToCause(t *testing.T) {
	cause := errors.New("database is locked")
	err := Persistence(cause, "failed to persist session")

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the underlying cause")
	}
	want := "failed to persist session: database is locked"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
