package genai

import (
	"context"
	"fmt"
	"time"

	"github.com/tonightlabs/tonight/internal/models"
)

// Static is a deterministic offline Provider. It backs the demo binary when
// no API key is configured and gives tests known content to assert against.
type Static struct{}

// NewStatic returns the offline provider.
func NewStatic() *Static {
	return &Static{}
}

// GenerateScene returns a fixed scene with three known choices, one of them
// a drink.
func (s *Static) GenerateScene(ctx context.Context, vibe models.VibeState, round int, persona models.PersonaState, activityID string) (models.Scene, error) {
	return models.Scene{
		ID:        fmt.Sprintf("static_%s_%d", activityID, round),
		Kind:      "conversation",
		Narrative: "The signal flickers. She pours another glass, waiting.",
		Choices: []models.Choice{
			{
				ID:        "c1",
				Text:      "Lean into the silence",
				Symbol:    "✨",
				VibeDelta: models.VibeDelta{Deep: 8, Comfortable: 4},
			},
			{
				ID:        "c2",
				Text:      "A sharp, flirty remark",
				Symbol:    "🎭",
				VibeDelta: models.VibeDelta{Flirty: 10, Playful: 5},
			},
			{
				ID:        "c3",
				Text:      "Raise the glass instead",
				Symbol:    models.DrinkSymbol,
				VibeDelta: models.VibeDelta{Comfortable: 5},
			},
		},
		Round: round,
	}, nil
}

// GenerateReport returns the fixed fallback briefing with the rating kept.
func (s *Static) GenerateReport(ctx context.Context, vibe models.VibeState, persona models.PersonaState, rating int) (models.Report, error) {
	return FallbackReport(rating, time.Now()), nil
}

// GeneratePortrait returns the fixed placeholder handle.
func (s *Static) GeneratePortrait(ctx context.Context, traits []string, revealProgress int) (string, error) {
	return FallbackPortraitRef, nil
}

// AnalyzeCapture returns the neutral caption.
func (s *Static) AnalyzeCapture(ctx context.Context, imageBase64 string, kind models.CaptureKind) (models.Capture, error) {
	return NeutralCapture(), nil
}
