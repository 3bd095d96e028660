package session

import "github.com/tonightlabs/tonight/internal/models"

// activities is the fixed hub catalog. The id doubles as the mode hint
// passed to the scene provider.
var activities = []models.Activity{
	{
		ID:          "Standard",
		Title:       "Late Night Talk",
		Description: "Exchange words in the quiet of the night.",
		Icon:        "🌙",
	},
	{
		ID:          "truth",
		Title:       "Truth or Drink",
		Description: "Raw investigative roots vs sophisticated spin.",
		Icon:        "🥃",
	},
	{
		ID:          "narrative",
		Title:       "Noir Narration",
		Description: "Co-write the story of this encounter.",
		Icon:        "🖋️",
	},
}

// Activities returns the hub activity catalog.
func Activities() []models.Activity {
	out := make([]models.Activity, len(activities))
	copy(out, activities)
	return out
}

func activityByID(id string) (models.Activity, bool) {
	for _, a := range activities {
		if a.ID == id {
			return a, true
		}
	}
	return models.Activity{}, false
}
