// Package genai provides the content-provider boundary of the session
// engine: scene, report, portrait, and capture-analysis generation.
//
// The engine depends only on the Provider interface. Failures are always
// absorbed by the caller with a deterministic fallback; no retries anywhere.
package genai

import (
	"context"

	"github.com/tonightlabs/tonight/internal/models"
)

// Provider generates all session content.
type Provider interface {
	// GenerateScene produces a short narrative beat with exactly three
	// choices for the given activity. Transport or parse failure wraps
	// models.ErrProvider; the session falls back to the hub.
	GenerateScene(ctx context.Context, vibe models.VibeState, round int, persona models.PersonaState, activityID string) (models.Scene, error)

	// GenerateReport produces the end-of-session briefing. Unparseable
	// replies degrade to the fixed fallback report rather than an error.
	GenerateReport(ctx context.Context, vibe models.VibeState, persona models.PersonaState, rating int) (models.Report, error)

	// GeneratePortrait produces an opaque image handle for the persona.
	// Callers substitute FallbackPortraitRef on failure; errors never
	// reach the UI.
	GeneratePortrait(ctx context.Context, traits []string, revealProgress int) (string, error)

	// AnalyzeCapture captions a captured image and may return a vibe
	// adjustment and an unlocked secret. Failure degrades to
	// NeutralCapture.
	AnalyzeCapture(ctx context.Context, imageBase64 string, kind models.CaptureKind) (models.Capture, error)
}
