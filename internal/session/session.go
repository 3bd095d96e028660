// Package session implements the authoritative session state machine: the
// finite set of views, the legal transitions between them, and the side
// effects each transition applies to the shared vibe and persona models.
//
// A Session is one logical actor: a mutex serializes every trigger and timer
// callback, so each transition runs to completion before the next is
// accepted. Deferred work (the partner's deliberation timer, fire-and-forget
// portrait requests) carries a token checked before its result is applied,
// so navigating away never lets a stale completion mutate current state.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tonightlabs/tonight/internal/bot"
	"github.com/tonightlabs/tonight/internal/flash"
	"github.com/tonightlabs/tonight/internal/genai"
	"github.com/tonightlabs/tonight/internal/models"
	"github.com/tonightlabs/tonight/internal/persona"
	"github.com/tonightlabs/tonight/internal/question"
	"github.com/tonightlabs/tonight/internal/util"
	"github.com/tonightlabs/tonight/internal/vibe"
)

// Fixed participant ids. DefaultUserID is the role the experience assumes
// the user takes; the other participant is simulated.
const (
	DefaultUserID = "haris"
	PartnerID     = "berina"
)

// Clink timing: a second drink landing within ClinkWindow of the first
// fires the celebratory clink for ClinkDuration. A coincidence detector,
// not a cooldown: rapid drinking is rewarded, never blocked.
const (
	ClinkWindow   = 5 * time.Second
	ClinkDuration = 1 * time.Second
)

// Session owns all mutable state of one companion-chat session. All state is
// in memory only and discarded by Reset; nothing survives the process.
type Session struct {
	mu sync.Mutex

	id       string
	provider genai.Provider
	notices  *flash.Queue
	rng      util.Rand
	nowFunc  func() time.Time

	deliberation time.Duration

	view    models.ViewState
	user    *models.Participant
	partner *models.Participant

	vibe           models.VibeState
	userPersona    *models.PersonaState
	partnerPersona *models.PersonaState

	round   int
	scene   *models.Scene
	history []models.Scene

	catalog  []models.Question
	asked    map[string]bool
	category models.QuestionCategory
	offered  []models.Question

	pending        *models.Question
	pendingOwnerID string
	pendingSeq     uint64
	botTimer       *time.Timer

	report *models.Report
	draft  string

	lastDrinkAt time.Time
	clinkUntil  time.Time

	// resetGen invalidates fire-and-forget portrait completions issued
	// before a Reset.
	resetGen uint64
}

// Option configures a Session.
type Option func(*Session)

// WithRand injects a deterministic randomness source.
func WithRand(rng util.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithClock injects a time source for the drink/clink detector.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.nowFunc = now }
}

// WithDeliberation overrides the partner's deliberation delay.
func WithDeliberation(d time.Duration) Option {
	return func(s *Session) { s.deliberation = d }
}

// WithCatalog overrides the question catalog.
func WithCatalog(catalog []models.Question) Option {
	return func(s *Session) { s.catalog = catalog }
}

// New creates a session in the setup view with the initial vibe and blank
// personas.
func New(provider genai.Provider, opts ...Option) *Session {
	s := &Session{
		id:           uuid.NewString(),
		provider:     provider,
		notices:      flash.New(),
		rng:          util.NewRand(),
		nowFunc:      time.Now,
		deliberation: bot.DefaultDeliberation,
		catalog:      question.Catalog(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.initLocked()
	slog.Info("session created", "session_id", s.id)
	return s
}

// initLocked (re)establishes the initial state. Callers hold the lock except
// during construction.
func (s *Session) initLocked() {
	s.view = models.ViewSetup
	s.user = &models.Participant{ID: DefaultUserID, DisplayName: "Haris", Status: models.PresenceOnline}
	s.partner = &models.Participant{ID: PartnerID, DisplayName: "Berina", Status: models.PresenceOnline}
	s.vibe = vibe.Initial()
	s.userPersona = persona.NewUserPersona()
	s.partnerPersona = persona.NewPartnerPersona()
	s.round = 0
	s.scene = nil
	s.history = nil
	s.asked = make(map[string]bool)
	s.category = ""
	s.offered = nil
	s.pending = nil
	s.pendingOwnerID = ""
	s.report = nil
	s.draft = ""
	s.lastDrinkAt = time.Time{}
	s.clinkUntil = time.Time{}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Reset discards every piece of in-memory state, equivalent to a full
// restart. Pending timers are cancelled and in-flight completions discarded.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetGen++
	s.pendingSeq++
	s.stopBotTimerLocked()
	s.notices.Clear()
	s.initLocked()
	slog.Info("session reset", "session_id", s.id)
}

// Flash returns the currently visible notification message, if any.
func (s *Session) Flash() string {
	return s.notices.Current()
}

// SetDraft updates the session-scoped shared scratchpad.
func (s *Session) SetDraft(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = text
}

// Draft returns the shared scratchpad contents.
func (s *Session) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// applyVibeLocked mutates the shared vibe and synchronously rederives the
// partner's chemistry, preserving the derived-field invariant.
func (s *Session) applyVibeLocked(d models.VibeDelta) {
	s.vibe = vibe.ApplyDelta(s.vibe, d)
	persona.DeriveChemistry(s.partnerPersona, s.vibe)
}

// drinkEventLocked handles one drink: intoxication bump plus the clink
// coincidence check against the previous drink.
func (s *Session) drinkEventLocked() {
	now := s.nowFunc()
	if !s.lastDrinkAt.IsZero() && now.Sub(s.lastDrinkAt) < ClinkWindow {
		s.clinkUntil = now.Add(ClinkDuration)
		s.notices.Post("VIRTUAL CLINK 🥃", 3*time.Second)
		slog.Debug("clink fired", "session_id", s.id)
	}
	s.lastDrinkAt = now
	persona.RecordDrinkToast(s.partnerPersona)
}

// requestPortraitLocked issues a fire-and-forget portrait regeneration for
// the partner persona. The completion only ever sets the portrait ref and
// clears the in-flight flag; on failure a fixed placeholder is substituted
// so the field is never left empty. Completions from before a Reset are
// discarded.
func (s *Session) requestPortraitLocked(traits []string, revealProgress int) {
	if s.partnerPersona.ImageGenerationInFlight {
		return
	}
	s.partnerPersona.ImageGenerationInFlight = true

	gen := s.resetGen
	target := s.partnerPersona
	traitsCopy := append([]string(nil), traits...)

	go func() {
		ref, err := s.provider.GeneratePortrait(context.Background(), traitsCopy, revealProgress)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.resetGen != gen {
			return
		}
		if err != nil {
			slog.Warn("portrait generation failed, using placeholder", "session_id", s.id, "error", err)
			if target.PortraitRef == "" {
				target.PortraitRef = genai.FallbackPortraitRef
			}
		} else {
			target.PortraitRef = ref
		}
		target.ImageGenerationInFlight = false
	}()
}

func (s *Session) stopBotTimerLocked() {
	if s.botTimer != nil {
		s.botTimer.Stop()
		s.botTimer = nil
	}
}

// clearPendingLocked drops the question flow state so re-entering the hub
// always starts clean.
func (s *Session) clearPendingLocked() {
	s.pending = nil
	s.pendingOwnerID = ""
	s.category = ""
	s.offered = nil
	s.pendingSeq++
	s.partner.Status = models.PresenceOnline
	s.stopBotTimerLocked()
}
