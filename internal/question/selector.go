package question

import (
	"log/slog"

	"github.com/tonightlabs/tonight/internal/models"
	"github.com/tonightlabs/tonight/internal/util"
)

// MaxOffered is how many candidate questions a category selection surfaces.
const MaxOffered = 3

// Select filters the catalog to the requested category, excludes questions
// whose id is in asked, shuffles uniformly, and returns up to MaxOffered
// candidates. An empty result is valid; the caller must handle an exhausted
// category.
func Select(cat []models.Question, category models.QuestionCategory, asked map[string]bool, rng util.Rand) []models.Question {
	candidates := make([]models.Question, 0, len(cat))
	for _, q := range cat {
		if q.Category != category || asked[q.ID] {
			continue
		}
		candidates = append(candidates, q)
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if len(candidates) > MaxOffered {
		candidates = candidates[:MaxOffered]
	}

	slog.Debug("question selection", "category", category, "offered", len(candidates), "asked_total", len(asked))
	return candidates
}
