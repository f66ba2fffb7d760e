package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	err := New(Conflict, "already settled")
	if KindOf(err) != Conflict {
		t.Fatalf("expected Conflict, got %v", KindOf(err))
	}
	if KindOf(errors.New("plain")) != Internal {
		t.Fatal("plain errors default to Internal")
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := New(NotFound, "no such request")
	wrapped := fmt.Errorf("handling request: %w", inner)

	if !IsKind(wrapped, NotFound) {
		t.Fatal("kind should survive fmt.Errorf wrapping")
	}
	if IsKind(wrapped, Conflict) {
		t.Fatal("wrong kind matched")
	}
}

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(Upstream, "create checkout session", cause)

	if got := err.Error(); got != "create checkout session: connection refused" {
		t.Fatalf("unexpected message %q", got)
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause should unwrap")
	}
}
