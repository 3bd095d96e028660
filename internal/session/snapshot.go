package session

import "github.com/tonightlabs/tonight/internal/models"

// Snapshot is a point-in-time copy of everything a presentation layer needs
// to render the session. Slices are copied, so a snapshot is safe to keep
// across further transitions.
type Snapshot struct {
	ID   string
	View models.ViewState

	User    models.Participant
	Partner models.Participant

	Vibe           models.VibeState
	UserPersona    models.PersonaState
	PartnerPersona models.PersonaState

	Round   int
	Scene   *models.Scene
	History []models.Scene

	Category models.QuestionCategory
	Offered  []models.Question
	Pending  *models.Question
	OwnerID  string

	Report *models.Report
	Draft  string

	ClinkActive bool
	Flash       string
}

// Snapshot returns a consistent copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:             s.id,
		View:           s.view,
		User:           *s.user,
		Partner:        *s.partner,
		Vibe:           s.vibe,
		UserPersona:    clonePersona(s.userPersona),
		PartnerPersona: clonePersona(s.partnerPersona),
		Round:          s.round,
		Category:       s.category,
		OwnerID:        s.pendingOwnerID,
		Draft:          s.draft,
		ClinkActive:    s.nowFunc().Before(s.clinkUntil),
		Flash:          s.notices.Current(),
	}

	if s.scene != nil {
		scene := *s.scene
		scene.Choices = append([]models.Choice(nil), s.scene.Choices...)
		snap.Scene = &scene
	}
	if len(s.history) > 0 {
		snap.History = append([]models.Scene(nil), s.history...)
	}
	if len(s.offered) > 0 {
		snap.Offered = append([]models.Question(nil), s.offered...)
	}
	if s.pending != nil {
		q := *s.pending
		q.Options = append([]string(nil), s.pending.Options...)
		snap.Pending = &q
	}
	if s.report != nil {
		report := *s.report
		snap.Report = &report
	}
	return snap
}

func clonePersona(p *models.PersonaState) models.PersonaState {
	out := *p
	out.Traits = append([]string(nil), p.Traits...)
	out.Memories = append([]string(nil), p.Memories...)
	out.Secrets = append([]string(nil), p.Secrets...)
	return out
}
