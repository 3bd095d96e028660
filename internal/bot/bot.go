// Package bot implements the decision policy of the simulated participant:
// whether to refuse or answer a pending question, and which answer to pick.
//
// The policy is a probability draw gated by a hard chemistry threshold. It is
// pure; the session owns the deliberation delay and its cancellation.
package bot

import (
	"log/slog"
	"time"

	"github.com/tonightlabs/tonight/internal/models"
	"github.com/tonightlabs/tonight/internal/util"
)

// Policy constants.
const (
	// RefusalProbIntimate is the refusal draw for the most sensitive tier.
	RefusalProbIntimate = 0.35
	// RefusalProbDefault is the refusal draw for every other category.
	RefusalProbDefault = 0.15
	// ChemistryRefusalCeiling gates refusal: at or above it the partner
	// always answers, whatever the draw.
	ChemistryRefusalCeiling = 50

	// DefaultDeliberation is how long the partner "thinks" before
	// resolving, presence status showing as choosing throughout.
	DefaultDeliberation = 2500 * time.Millisecond

	// DeflectionMessage is flashed when the partner refuses.
	DeflectionMessage = "Berina: Too direct. 🍷"
)

// Resolution is the outcome of a deliberation.
type Resolution struct {
	Refused bool
	// Option is the chosen answer text when not refused.
	Option string
}

// RefusalProbability returns the draw threshold for a question category.
func RefusalProbability(category models.QuestionCategory) float64 {
	if category == models.CategoryIntimate {
		return RefusalProbIntimate
	}
	return RefusalProbDefault
}

// Decide resolves a pending question on behalf of the simulated participant.
// Refusal requires both a successful probability draw and chemistry below
// ChemistryRefusalCeiling; otherwise an answer option is picked uniformly.
func Decide(q models.Question, chemistry int, rng util.Rand) Resolution {
	p := RefusalProbability(q.Category)
	draw := rng.Float64()
	if draw < p && chemistry < ChemistryRefusalCeiling {
		slog.Debug("bot refused question", "question", q.ID, "category", q.Category, "chemistry", chemistry, "p", p)
		return Resolution{Refused: true}
	}

	option := q.Options[rng.IntN(len(q.Options))]
	slog.Debug("bot answered question", "question", q.ID, "option", option, "chemistry", chemistry)
	return Resolution{Option: option}
}
