package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tonightlabs/tonight/internal/bot"
	"github.com/tonightlabs/tonight/internal/genai"
	"github.com/tonightlabs/tonight/internal/models"
	"github.com/tonightlabs/tonight/internal/persona"
	"github.com/tonightlabs/tonight/internal/question"
)

// Seed used for the very first partner portrait, before any answers have
// revealed real traits.
var initialPortraitTraits = []string{"Blonde", "Sophisticated"}

const initialPortraitReveal = 15

// ChoosePersona completes setup: the chosen participant becomes
// user-controlled, the other one is simulated. Taking the default role also
// kicks off the first partner portrait.
func (s *Session) ChoosePersona(participantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != models.ViewSetup {
		return fmt.Errorf("%w: choose persona in view %q", models.ErrInvalidTransition, s.view)
	}
	if participantID != s.user.ID && participantID != s.partner.ID {
		return fmt.Errorf("%w: %q", models.ErrUnknownParticipant, participantID)
	}

	if participantID == s.partner.ID {
		s.user, s.partner = s.partner, s.user
	}
	s.user.IsUser = true
	s.partner.IsUser = false
	s.user.Status = models.PresenceOnline
	s.partner.Status = models.PresenceOnline

	if participantID == DefaultUserID {
		s.requestPortraitLocked(initialPortraitTraits, initialPortraitReveal)
	}

	s.view = models.ViewHub
	slog.Debug("persona chosen", "session_id", s.id, "participant_id", participantID)
	return nil
}

// SelectActivity launches a scene for the given activity. The session sits
// in the loading view for the duration of the provider call; a provider
// failure falls back to the hub without surfacing an error.
func (s *Session) SelectActivity(ctx context.Context, activityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != models.ViewHub {
		return fmt.Errorf("%w: select activity in view %q", models.ErrInvalidTransition, s.view)
	}
	if _, ok := activityByID(activityID); !ok {
		return fmt.Errorf("%w: %q", models.ErrUnknownActivity, activityID)
	}

	s.view = models.ViewLoading
	scene, err := s.provider.GenerateScene(ctx, s.vibe, s.round+1, *s.partnerPersona, activityID)
	if err != nil {
		slog.Warn("scene generation failed, returning to hub", "session_id", s.id, "activity_id", activityID, "error", err)
		s.view = models.ViewHub
		return nil
	}

	s.round++
	s.scene = &scene
	s.history = append(s.history, scene)
	s.view = models.ViewActivity
	slog.Debug("scene started", "session_id", s.id, "scene_id", scene.ID, "round", s.round)
	return nil
}

// ChooseSceneOption resolves the active scene with one of its choices,
// applying the choice's vibe delta and the drink effect when the choice
// carries the drink symbol.
func (s *Session) ChooseSceneOption(choiceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != models.ViewActivity || s.scene == nil {
		return fmt.Errorf("%w: choose scene option in view %q", models.ErrInvalidTransition, s.view)
	}
	choice, ok := s.scene.FindChoice(choiceID)
	if !ok {
		return fmt.Errorf("%w: %q", models.ErrUnknownChoice, choiceID)
	}

	s.applyVibeLocked(choice.VibeDelta)
	if choice.Symbol == models.DrinkSymbol {
		s.drinkEventLocked()
	}

	s.scene = nil
	s.view = models.ViewHub
	slog.Debug("scene resolved", "session_id", s.id, "choice_id", choiceID)
	return nil
}

// OpenQuestions moves from the hub into the question flow.
func (s *Session) OpenQuestions() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != models.ViewHub {
		return fmt.Errorf("%w: open questions in view %q", models.ErrInvalidTransition, s.view)
	}
	s.view = models.ViewQuestion
	return nil
}

// SelectCategory narrows the question flow to one category and draws up to
// three not-yet-asked questions from it.
func (s *Session) SelectCategory(category models.QuestionCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != models.ViewQuestion || s.pending != nil {
		return fmt.Errorf("%w: select category in view %q", models.ErrInvalidTransition, s.view)
	}
	if !validCategory(category) {
		return fmt.Errorf("%w: unknown category %q", models.ErrInvalidTransition, category)
	}

	s.category = category
	s.offered = question.Select(s.catalog, category, s.asked, s.rng)
	s.notices.Post(fmt.Sprintf("Focus: %s", category), 1*time.Second)
	return nil
}

// ClearCategory steps back from the question list to the category picker.
func (s *Session) ClearCategory() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != models.ViewQuestion || s.pending != nil {
		return fmt.Errorf("%w: clear category in view %q", models.ErrInvalidTransition, s.view)
	}
	s.category = ""
	s.offered = nil
	return nil
}

// ChooseQuestion asks one of the offered questions. The question is marked
// asked permanently, the asker recorded as owner, and the partner's
// deliberation timer armed.
func (s *Session) ChooseQuestion(questionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != models.ViewQuestion || s.category == "" || s.pending != nil {
		return fmt.Errorf("%w: choose question in view %q", models.ErrInvalidTransition, s.view)
	}

	var chosen *models.Question
	for i := range s.offered {
		if s.offered[i].ID == questionID {
			chosen = &s.offered[i]
			break
		}
	}
	if chosen == nil {
		return fmt.Errorf("%w: %q", models.ErrUnknownQuestion, questionID)
	}

	q := *chosen
	s.asked[q.ID] = true
	s.pending = &q
	s.pendingOwnerID = s.user.ID
	s.notices.Post("Requesting Disclosure", 1200*time.Millisecond)

	s.pendingSeq++
	seq := s.pendingSeq
	s.partner.Status = models.PresenceChoosing
	s.botTimer = time.AfterFunc(s.deliberation, func() {
		s.resolvePartner(seq)
	})
	slog.Debug("question asked", "session_id", s.id, "question_id", q.ID)
	return nil
}

// resolvePartner is the deliberation timer callback. A stale sequence means
// the question was answered, refused, or abandoned in the meantime; the
// callback then does nothing.
func (s *Session) resolvePartner(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil || s.pendingSeq != seq {
		slog.Debug("stale deliberation timer discarded", "session_id", s.id)
		return
	}

	s.partner.Status = models.PresenceOnline
	decision := bot.Decide(*s.pending, s.partnerPersona.Chemistry, s.rng)
	if decision.Refused {
		s.notices.Post(bot.DeflectionMessage, 3*time.Second)
		s.refuseLocked()
		return
	}
	s.answerLocked(decision.Option)
}

// AnswerQuestion resolves the pending question with one of its options on
// behalf of the responder.
func (s *Session) AnswerQuestion(option string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return fmt.Errorf("%w: no pending question", models.ErrInvalidTransition)
	}
	if !s.pending.HasOption(option) {
		return fmt.Errorf("%w: %q", models.ErrUnknownOption, option)
	}
	s.answerLocked(option)
	return nil
}

// RefuseQuestion resolves the pending question with a refusal.
func (s *Session) RefuseQuestion() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return fmt.Errorf("%w: no pending question", models.ErrInvalidTransition)
	}
	s.refuseLocked()
	return nil
}

func (s *Session) answerLocked(option string) {
	res := persona.RecordAnswer(s.partnerPersona, *s.pending, option, s.round)
	if res.DrinkTriggered {
		s.drinkEventLocked()
	}
	if res.WantsPortrait {
		s.requestPortraitLocked(s.partnerPersona.Traits, s.partnerPersona.RevealProgress)
	}
	slog.Debug("question answered", "session_id", s.id, "question_id", s.pending.ID, "drink", res.DrinkTriggered)
	s.clearPendingLocked()
	s.view = models.ViewHub
}

func (s *Session) refuseLocked() {
	persona.RecordRefusal(s.partnerPersona)
	slog.Debug("question refused", "session_id", s.id, "question_id", s.pending.ID)
	s.clearPendingLocked()
	s.view = models.ViewHub
	s.notices.Post("🥃 Respecting the boundary.", 2*time.Second)
}

// ReturnToHub abandons the current activity, question flow, or rating
// prompt. Any pending question and its deliberation timer are dropped.
func (s *Session) ReturnToHub() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.view {
	case models.ViewActivity, models.ViewQuestion, models.ViewRating:
	default:
		return fmt.Errorf("%w: return to hub from view %q", models.ErrInvalidTransition, s.view)
	}

	s.clearPendingLocked()
	s.scene = nil
	s.view = models.ViewHub
	return nil
}

// RequestReport opens the rating prompt that precedes report generation.
func (s *Session) RequestReport() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != models.ViewHub {
		return fmt.Errorf("%w: request report in view %q", models.ErrInvalidTransition, s.view)
	}
	s.view = models.ViewRating
	s.notices.Post("Requesting Partner Appraisal...", 0)
	return nil
}

// SubmitRating finalizes the rating and generates the session report. A
// provider failure is absorbed: the session lands back in the hub with the
// previous report, if any, untouched.
func (s *Session) SubmitRating(ctx context.Context, rating int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != models.ViewRating {
		return fmt.Errorf("%w: submit rating in view %q", models.ErrInvalidTransition, s.view)
	}
	if rating < models.MinRating || rating > models.MaxRating {
		return fmt.Errorf("%w: %d", models.ErrInvalidRating, rating)
	}

	s.view = models.ViewLoading
	report, err := s.provider.GenerateReport(ctx, s.vibe, *s.partnerPersona, rating)
	if err != nil {
		slog.Warn("report generation failed", "session_id", s.id, "error", err)
	} else {
		s.report = &report
	}
	s.view = models.ViewHub
	return nil
}

// Toast records a drink outside of any question or scene, feeding the clink
// detector.
func (s *Session) Toast() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view == models.ViewSetup {
		return fmt.Errorf("%w: toast during setup", models.ErrInvalidTransition)
	}
	s.drinkEventLocked()
	return nil
}

// Capture runs a camera capture through the provider's image analysis and
// applies the resulting caption, vibe delta, and unlocked secret. Analysis
// failures degrade to a neutral caption with no vibe movement.
func (s *Session) Capture(ctx context.Context, imageBase64 string, kind models.CaptureKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view == models.ViewSetup {
		return fmt.Errorf("%w: capture during setup", models.ErrInvalidTransition)
	}

	s.notices.Post("Analyzing Image...", 0)
	capture, err := s.provider.AnalyzeCapture(ctx, imageBase64, kind)
	if err != nil {
		slog.Warn("capture analysis failed, using neutral result", "session_id", s.id, "error", err)
		capture = genai.NeutralCapture()
	}

	s.notices.Post(capture.Caption, 0)
	if !capture.VibeDelta.IsZero() {
		s.applyVibeLocked(capture.VibeDelta)
	}
	persona.AddSecret(s.partnerPersona, capture.UnlockedSecret)
	return nil
}

func validCategory(category models.QuestionCategory) bool {
	for _, c := range models.AllCategories {
		if c == category {
			return true
		}
	}
	return false
}
