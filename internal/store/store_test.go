package store

import (
	"testing"

	"github.com/tonightlabs/tonight/internal/genai"
	"github.com/tonightlabs/tonight/internal/session"
)

func TestRegistry_AddGetRemove(t *testing.T) {
	r := NewRegistry()
	s := session.New(genai.NewStatic())

	r.Add(s)
	if r.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", r.Len())
	}

	got, ok := r.Get(s.ID())
	if !ok || got != s {
		t.Errorf("expected to retrieve the registered session")
	}

	r.Remove(s.ID())
	if _, ok := r.Get(s.ID()); ok {
		t.Error("expected session removed")
	}
}

func TestRegistry_GetMissing(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Get("nope"); ok {
		t.Error("expected miss for unknown id")
	}
}
