// Package vibe implements the shared mood model: clamped delta application
// and the derived chemistry score.
package vibe

import (
	"math"

	"github.com/tonightlabs/tonight/internal/models"
)

// Axis bounds for every vibe value.
const (
	AxisMin = 0
	AxisMax = 100
)

// Chemistry weights. Chemistry is derived from the shared vibe and is
// recomputed after every vibe mutation; it is never set directly.
const (
	chemistryFlirtyWeight      = 0.6
	chemistryComfortableWeight = 0.4
)

// Initial returns the vibe every session starts from.
func Initial() models.VibeState {
	return models.VibeState{
		Playful:     50,
		Flirty:      30,
		Deep:        20,
		Comfortable: 40,
	}
}

// ApplyDelta returns the vibe after applying d, with every axis clamped to
// [AxisMin, AxisMax]. A zero delta is a no-op.
func ApplyDelta(v models.VibeState, d models.VibeDelta) models.VibeState {
	return models.VibeState{
		Playful:     clampAxis(v.Playful + d.Playful),
		Flirty:      clampAxis(v.Flirty + d.Flirty),
		Deep:        clampAxis(v.Deep + d.Deep),
		Comfortable: clampAxis(v.Comfortable + d.Comfortable),
	}
}

// Chemistry computes the derived compatibility score,
// round(flirty*0.6 + comfortable*0.4).
func Chemistry(v models.VibeState) int {
	return int(math.Round(float64(v.Flirty)*chemistryFlirtyWeight +
		float64(v.Comfortable)*chemistryComfortableWeight))
}

func clampAxis(x int) int {
	if x < AxisMin {
		return AxisMin
	}
	if x > AxisMax {
		return AxisMax
	}
	return x
}
