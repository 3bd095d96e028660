package vibe

import (
	"testing"

	"github.com/tonightlabs/tonight/internal/models"
)

func TestApplyDelta_ClampsBothEnds(t *testing.T) {
	v := models.VibeState{Playful: 95, Flirty: 3, Deep: 50, Comfortable: 100}
	got := ApplyDelta(v, models.VibeDelta{Playful: 20, Flirty: -10, Deep: 5, Comfortable: 1})

	if got.Playful != 100 {
		t.Errorf("expected playful clamped to 100, got %d", got.Playful)
	}
	if got.Flirty != 0 {
		t.Errorf("expected flirty clamped to 0, got %d", got.Flirty)
	}
	if got.Deep != 55 {
		t.Errorf("expected deep 55, got %d", got.Deep)
	}
	if got.Comfortable != 100 {
		t.Errorf("expected comfortable clamped to 100, got %d", got.Comfortable)
	}
}

func TestApplyDelta_ZeroDeltaIsNoOp(t *testing.T) {
	v := Initial()
	got := ApplyDelta(v, models.VibeDelta{})
	if got != v {
		t.Errorf("expected unchanged vibe, got %+v", got)
	}
}

func TestApplyDelta_DoesNotMutateInput(t *testing.T) {
	v := Initial()
	before := v
	ApplyDelta(v, models.VibeDelta{Playful: 10})
	if v != before {
		t.Errorf("input vibe mutated: %+v", v)
	}
}

func TestChemistry_WeightedRounding(t *testing.T) {
	// 45*0.6 + 38*0.4 = 42.2, rounds to 42
	got := Chemistry(models.VibeState{Flirty: 45, Comfortable: 38})
	if got != 42 {
		t.Errorf("expected chemistry 42, got %d", got)
	}
}

func TestChemistry_Bounds(t *testing.T) {
	if got := Chemistry(models.VibeState{}); got != 0 {
		t.Errorf("expected 0 for empty vibe, got %d", got)
	}
	if got := Chemistry(models.VibeState{Flirty: 100, Comfortable: 100}); got != 100 {
		t.Errorf("expected 100 for maxed vibe, got %d", got)
	}
}

func TestApplyDelta_ScenarioFromInitial(t *testing.T) {
	got := ApplyDelta(Initial(), models.VibeDelta{Flirty: 10, Comfortable: 5})
	want := models.VibeState{Playful: 50, Flirty: 40, Deep: 20, Comfortable: 45}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if chem := Chemistry(got); chem != 42 {
		t.Errorf("expected chemistry 42, got %d", chem)
	}
}

func TestInitial_Values(t *testing.T) {
	v := Initial()
	want := models.VibeState{Playful: 50, Flirty: 30, Deep: 20, Comfortable: 40}
	if v != want {
		t.Errorf("expected %+v, got %+v", want, v)
	}
}
