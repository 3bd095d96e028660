package genai

import (
	"time"

	"github.com/tonightlabs/tonight/internal/models"
)

// FallbackPortraitRef is the fixed placeholder used whenever portrait
// generation fails, so the persona is never left without an image.
const FallbackPortraitRef = "https://images.unsplash.com/photo-1550684848-fac1c5b4e853?q=80&w=1000&auto=format&fit=crop"

// FallbackReport is the fixed briefing used when the provider reply cannot
// be parsed. The submitted rating is preserved.
func FallbackReport(rating int, now time.Time) models.Report {
	return models.Report{
		Headline:       "The Silent Campaign",
		Lede:           "Records remain incomplete as the connection fades into the digital ether.",
		Summary:        "An evening of unspoken truths and strategic silences.",
		VibeAnalysis:   "The brand of this connection is high-stakes and elusive.",
		ClosingThought: "Some stories are better left in the draft folder.",
		Rating:         rating,
		Date:           now.Format("2006-01-02"),
	}
}

// NeutralCapture is the fixed caption result used when capture analysis
// fails: a shrug and no vibe movement.
func NeutralCapture() models.Capture {
	return models.Capture{Caption: "Passable."}
}
