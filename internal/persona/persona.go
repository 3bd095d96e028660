// Package persona implements the per-participant profile model: reveal
// progress, traits, memories, and the bounded intoxication counter, with the
// deterministic update rules applied on answers, refusals, and toasts.
package persona

import (
	"strings"

	"github.com/tonightlabs/tonight/internal/models"
	"github.com/tonightlabs/tonight/internal/vibe"
)

// Caps and update constants.
const (
	// MaxTraits bounds the trait list; duplicates are collapsed and the
	// most recent occurrence wins.
	MaxTraits = 6
	// MaxMemories bounds the memory log; the oldest entry is evicted first.
	MaxMemories = 10
	// MaxIntoxication is the hard ceiling of the drink counter. It never
	// decreases within a session.
	MaxIntoxication = 5

	// RevealDeltaAnswer is the reveal gain for a substantive answer.
	RevealDeltaAnswer = 12
	// RevealDeltaDrink is the reduced reveal gain when the answer was a
	// drink deflection.
	RevealDeltaDrink = 5

	// RefusalMemory is the fixed memory recorded when a question is refused.
	RefusalMemory = "Chose silence and wine"
)

// drinkKeywords are matched case-insensitively as substrings of a chosen
// answer option to detect drink-flavored choices.
var drinkKeywords = []string{"sip", "wine", "drink", models.DrinkSymbol}

// IsDrinkChoice reports whether the chosen option text reads as a drink
// deflection rather than a substantive answer.
func IsDrinkChoice(option string) bool {
	lower := strings.ToLower(option)
	for _, kw := range drinkKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// NewUserPersona returns the blank persona the user-controlled participant
// starts with.
func NewUserPersona() *models.PersonaState {
	return &models.PersonaState{
		Traits:         []string{},
		Memories:       []string{},
		Secrets:        []string{},
		RevealProgress: 5,
		Chemistry:      20,
	}
}

// NewPartnerPersona returns the simulated participant's starting persona,
// seeded with its baseline traits.
func NewPartnerPersona() *models.PersonaState {
	p := NewUserPersona()
	p.Traits = []string{"Sophisticated", "Observational", "Escapist"}
	return p
}

// AnswerResult reports the side effects an answer asks the session to carry
// out beyond the persona mutation itself.
type AnswerResult struct {
	// DrinkTriggered is true when the option matched the drink lexicon;
	// the session routes it through the drink/toast effect.
	DrinkTriggered bool
	// WantsPortrait is true when the regeneration policy asks for a fresh
	// portrait: every even round, or as soon as possible when none exists.
	WantsPortrait bool
}

// RecordAnswer applies an answered question to p: reveal progress, a trait
// token derived from the option, a templated memory, and an intoxication
// bump when the option was a drink.
func RecordAnswer(p *models.PersonaState, q models.Question, option string, round int) AnswerResult {
	drink := IsDrinkChoice(option)

	delta := RevealDeltaAnswer
	if drink {
		delta = RevealDeltaDrink
	}
	p.RevealProgress = capAt(p.RevealProgress+delta, 100)

	if token := traitToken(option); token != "" {
		p.Traits = appendTrait(p.Traits, token)
	}
	p.Memories = appendMemory(p.Memories, q.FillMemory(option))

	if drink {
		BumpIntoxication(p)
	}

	return AnswerResult{
		DrinkTriggered: drink,
		WantsPortrait:  round%2 == 0 || p.PortraitRef == "",
	}
}

// RecordRefusal applies a refused question: one intoxication bump and the
// fixed refusal memory. Reveal progress and traits are untouched.
func RecordRefusal(p *models.PersonaState) {
	BumpIntoxication(p)
	p.Memories = appendMemory(p.Memories, RefusalMemory)
}

// RecordDrinkToast applies a toast: intoxication only. Used by the
// clink/toast interaction, independent of any question.
func RecordDrinkToast(p *models.PersonaState) {
	BumpIntoxication(p)
}

// BumpIntoxication increments the drink counter up to MaxIntoxication.
func BumpIntoxication(p *models.PersonaState) {
	p.Intoxication = capAt(p.Intoxication+1, MaxIntoxication)
}

// DeriveChemistry recomputes the derived chemistry score from the shared
// vibe. Called synchronously after every vibe mutation.
func DeriveChemistry(p *models.PersonaState, v models.VibeState) {
	p.Chemistry = vibe.Chemistry(v)
}

// AddSecret appends a secret unlocked by a capture analysis.
func AddSecret(p *models.PersonaState, secret string) {
	if secret == "" {
		return
	}
	p.Secrets = append(p.Secrets, secret)
}

// traitToken derives a trait from the last whitespace-delimited word of the
// chosen option.
func traitToken(option string) string {
	fields := strings.Fields(option)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// appendTrait appends token keeping the list de-duplicated (most recent
// occurrence kept) and capped at MaxTraits.
func appendTrait(traits []string, token string) []string {
	out := make([]string, 0, len(traits)+1)
	for _, t := range traits {
		if t != token {
			out = append(out, t)
		}
	}
	out = append(out, token)
	if len(out) > MaxTraits {
		out = out[len(out)-MaxTraits:]
	}
	return out
}

// appendMemory appends entry with FIFO eviction once MaxMemories is exceeded.
func appendMemory(memories []string, entry string) []string {
	out := append(memories, entry)
	if len(out) > MaxMemories {
		out = out[len(out)-MaxMemories:]
	}
	return out
}

func capAt(x, max int) int {
	if x > max {
		return max
	}
	return x
}
