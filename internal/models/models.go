// Package models defines the core data structures for the Tonight session
// engine.
//
// It includes the shared vibe vector, per-participant persona state, the
// question catalog types, and the content-provider payloads exchanged at the
// session boundary.
package models

import (
	"errors"
	"strings"
	"time"
)

// ViewState identifies the interaction mode the session is currently in.
type ViewState string

const (
	// ViewSetup is the initial state before a participant role is chosen.
	ViewSetup ViewState = "setup"
	// ViewHub is the activity hub all flows return to.
	ViewHub ViewState = "hub"
	// ViewActivity shows a generated scene with selectable choices.
	ViewActivity ViewState = "activity"
	// ViewQuestion is the category/question/answer flow.
	ViewQuestion ViewState = "question"
	// ViewLoading is transient while a content request is in flight.
	ViewLoading ViewState = "loading"
	// ViewRating collects the 1..10 connection rating before a report.
	ViewRating ViewState = "rating"
)

// PresenceStatus describes what a participant is currently doing.
type PresenceStatus string

const (
	PresenceOnline   PresenceStatus = "online"
	PresenceChoosing PresenceStatus = "choosing"
	PresenceWaiting  PresenceStatus = "waiting"
)

// Participant is one of the exactly two people in a session. Which one is
// user-controlled is fixed at session start.
type Participant struct {
	ID          string         `json:"id"`
	DisplayName string         `json:"display_name"`
	IsUser      bool           `json:"is_user"`
	Status      PresenceStatus `json:"status"`
}

// VibeState is the shared four-axis mood vector. Every axis is clamped to
// [0,100] on mutation.
type VibeState struct {
	Playful     int `json:"playful"`
	Flirty      int `json:"flirty"`
	Deep        int `json:"deep"`
	Comfortable int `json:"comfortable"`
}

// VibeDelta is a signed per-axis adjustment sourced from a scene choice or a
// capture analysis. Zero-valued axes leave the axis untouched.
type VibeDelta struct {
	Playful     int `json:"playful,omitempty"`
	Flirty      int `json:"flirty,omitempty"`
	Deep        int `json:"deep,omitempty"`
	Comfortable int `json:"comfortable,omitempty"`
}

// IsZero reports whether the delta would not change any axis.
func (d VibeDelta) IsZero() bool {
	return d == VibeDelta{}
}

// PersonaState is the evolving profile of one participant.
//
// Chemistry for the non-user participant is derived from the shared vibe and
// is never set independently. Intoxication and RevealProgress only ever move
// up within a session.
type PersonaState struct {
	Traits         []string `json:"traits"`
	Memories       []string `json:"memories"`
	Secrets        []string `json:"secrets"`
	PortraitRef    string   `json:"portrait_ref,omitempty"`
	RevealProgress int      `json:"reveal_progress"`
	Chemistry      int      `json:"chemistry"`
	Intoxication   int      `json:"intoxication"`

	// ImageGenerationInFlight is true while a portrait request is pending.
	ImageGenerationInFlight bool `json:"-"`
}

// QuestionCategory tags catalog questions. Intimate is the most sensitive
// tier and carries a higher refusal probability in the decision policy.
type QuestionCategory string

const (
	CategoryStyle       QuestionCategory = "Style"
	CategoryEscape      QuestionCategory = "Escape"
	CategoryPreferences QuestionCategory = "Preferences"
	CategoryDeep        QuestionCategory = "Deep"
	CategoryParenting   QuestionCategory = "Parenting"
	CategoryIntimate    QuestionCategory = "Intimate"
)

// AllCategories lists the categories in hub display order.
var AllCategories = []QuestionCategory{
	CategoryStyle,
	CategoryEscape,
	CategoryPreferences,
	CategoryDeep,
	CategoryParenting,
	CategoryIntimate,
}

// Question is an immutable catalog entry. MemoryTemplate carries a single
// "{option}" substitution slot.
type Question struct {
	ID             string           `json:"id"`
	Category       QuestionCategory `json:"category"`
	Text           string           `json:"text"`
	Options        []string         `json:"options"`
	MemoryTemplate string           `json:"memory_template"`
}

// FillMemory renders the memory template with the chosen option.
func (q Question) FillMemory(option string) string {
	if q.MemoryTemplate == "" {
		return option
	}
	return strings.ReplaceAll(q.MemoryTemplate, "{option}", option)
}

// HasOption reports whether option is one of the question's answer options.
func (q Question) HasOption(option string) bool {
	for _, o := range q.Options {
		if o == option {
			return true
		}
	}
	return false
}

// DrinkSymbol marks a scene choice that doubles as a drink event.
const DrinkSymbol = "🥃"

// Choice is one selectable branch of a generated scene.
type Choice struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Symbol    string    `json:"symbol,omitempty"`
	VibeDelta VibeDelta `json:"vibe_effect"`
}

// SceneChoiceCount is the number of choices every scene must carry.
const SceneChoiceCount = 3

// Scene is a short generated narrative beat with exactly three choices.
type Scene struct {
	ID        string   `json:"id"`
	Kind      string   `json:"type"`
	Narrative string   `json:"narrative"`
	Choices   []Choice `json:"choices"`
	Round     int      `json:"round"`
}

// FindChoice returns the choice with the given id, if present.
func (s Scene) FindChoice(id string) (Choice, bool) {
	for _, c := range s.Choices {
		if c.ID == id {
			return c, true
		}
	}
	return Choice{}, false
}

// Report is the end-of-session briefing produced by the content provider.
type Report struct {
	Headline       string `json:"headline"`
	Lede           string `json:"lede"`
	Summary        string `json:"summary"`
	VibeAnalysis   string `json:"vibe_analysis"`
	ClosingThought string `json:"closing_thought"`
	Rating         int    `json:"rating,omitempty"`
	Date           string `json:"date"`
}

// CaptureKind distinguishes what the camera was pointed at.
type CaptureKind string

const (
	CaptureDrink  CaptureKind = "drink"
	CaptureSelfie CaptureKind = "selfie"
)

// Capture is the provider's read of a captured image: a short caption, an
// optional vibe adjustment, and an optionally unlocked secret.
type Capture struct {
	Caption        string    `json:"caption"`
	VibeDelta      VibeDelta `json:"vibe_update"`
	UnlockedSecret string    `json:"secret_unlocked,omitempty"`
}

// Activity is a hub entry the user can launch a scene from.
type Activity struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Notification is a short-lived user-facing status message. A new one
// supersedes whatever is currently displayed.
type Notification struct {
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Rating bounds for SubmitRating.
const (
	MinRating = 1
	MaxRating = 10
)

// Error variables for better error handling and testability.
var (
	// ErrInvalidTransition marks a trigger whose guard is not satisfied.
	// These are programming-contract violations, not recoverable states.
	ErrInvalidTransition = errors.New("invalid session transition")
	// ErrProvider marks a content-provider transport or parse failure.
	// It is always absorbed locally with a deterministic fallback.
	ErrProvider = errors.New("content provider failure")

	ErrUnknownChoice      = errors.New("choice not in current scene")
	ErrUnknownQuestion    = errors.New("question not among offered candidates")
	ErrUnknownOption      = errors.New("option not among the question's answers")
	ErrUnknownActivity    = errors.New("unknown activity")
	ErrUnknownParticipant = errors.New("unknown participant")
	ErrInvalidRating      = errors.New("rating must be between 1 and 10")
)
