package genai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tonightlabs/tonight/internal/models"
)

func TestCleanReply_StripsCodeFences(t *testing.T) {
	raw := "```json\n{\"a\":1}\n```"
	if got := cleanReply(raw); got != `{"a":1}` {
		t.Errorf("expected fence-stripped JSON, got %q", got)
	}
}

func TestCleanReply_UnwrapsQuotedText(t *testing.T) {
	if got := cleanReply(`"hello there"`); got != "hello there" {
		t.Errorf("expected unwrapped text, got %q", got)
	}
	// JSON objects must keep their quotes untouched.
	if got := cleanReply(`{"a":"b"}`); got != `{"a":"b"}` {
		t.Errorf("JSON object mangled: %q", got)
	}
}

func TestIsGarbageReply(t *testing.T) {
	cases := map[string]bool{
		"<HTML><body>error</body>":  true,
		"This action is not allowed": true,
		"ok":                        true,
		"a perfectly fine reply":    false,
	}
	for reply, want := range cases {
		if got := isGarbageReply(reply); got != want {
			t.Errorf("isGarbageReply(%q) = %v, want %v", reply, got, want)
		}
	}
}

func TestParseScene_Valid(t *testing.T) {
	raw := `{
		"id": "sc1",
		"type": "conversation",
		"narrative": "She raises an eyebrow.",
		"choices": [
			{"id": "a", "text": "One", "symbol": "✨", "vibe_effect": {"deep": 5}},
			{"id": "b", "text": "Two", "symbol": "🎭", "vibe_effect": {"flirty": 8}},
			{"id": "c", "text": "Three", "symbol": "🥃", "vibe_effect": {"comfortable": 3}}
		]
	}`
	scene, err := parseScene(raw, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scene.ID != "sc1" || scene.Round != 4 {
		t.Errorf("unexpected scene header: %+v", scene)
	}
	if len(scene.Choices) != models.SceneChoiceCount {
		t.Fatalf("expected %d choices, got %d", models.SceneChoiceCount, len(scene.Choices))
	}
	if scene.Choices[2].VibeDelta.Comfortable != 3 {
		t.Errorf("vibe delta not decoded: %+v", scene.Choices[2])
	}
}

func TestParseScene_RejectsWrongChoiceCount(t *testing.T) {
	raw := `{"narrative": "x", "choices": [{"text": "only one"}]}`
	if _, err := parseScene(raw, 1); !errors.Is(err, models.ErrProvider) {
		t.Errorf("expected ErrProvider for wrong choice count, got %v", err)
	}
}

func TestParseScene_RejectsEmptyNarrative(t *testing.T) {
	raw := `{"choices": [{}, {}, {}]}`
	if _, err := parseScene(raw, 1); !errors.Is(err, models.ErrProvider) {
		t.Errorf("expected ErrProvider for empty narrative, got %v", err)
	}
}

func TestParseScene_FillsMissingIDs(t *testing.T) {
	raw := `{"narrative": "x", "choices": [{"text": "a"}, {"text": "b"}, {"text": "c"}]}`
	scene, err := parseScene(raw, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scene.ID == "" {
		t.Error("expected generated scene id")
	}
	for i, c := range scene.Choices {
		if c.ID == "" {
			t.Errorf("choice %d missing generated id", i)
		}
	}
}

func TestParseReport_RequiresHeadline(t *testing.T) {
	if _, err := parseReport(`{"lede": "x"}`); !errors.Is(err, models.ErrProvider) {
		t.Errorf("expected ErrProvider, got %v", err)
	}
}

func TestParseReport_DefaultsDate(t *testing.T) {
	report, err := parseReport(`{"headline": "The Long Pour"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Date == "" {
		t.Error("expected defaulted date")
	}
}

func TestParseCapture_RequiresCaption(t *testing.T) {
	if _, err := parseCapture(`{"vibe_update": {"playful": 2}}`); !errors.Is(err, models.ErrProvider) {
		t.Errorf("expected ErrProvider, got %v", err)
	}
}

func TestFallbackReport_KeepsRating(t *testing.T) {
	now := time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC)
	report := FallbackReport(8, now)
	if report.Rating != 8 {
		t.Errorf("expected rating preserved, got %d", report.Rating)
	}
	if report.Headline == "" || report.Date != "2026-03-14" {
		t.Errorf("unexpected fallback report: %+v", report)
	}
}

func TestNeutralCapture(t *testing.T) {
	c := NeutralCapture()
	if c.Caption == "" {
		t.Error("expected a caption")
	}
	if !c.VibeDelta.IsZero() {
		t.Errorf("expected no vibe movement, got %+v", c.VibeDelta)
	}
	if c.UnlockedSecret != "" {
		t.Errorf("expected no secret, got %q", c.UnlockedSecret)
	}
}

func TestStatic_SceneShape(t *testing.T) {
	p := NewStatic()
	scene, err := p.GenerateScene(context.Background(), models.VibeState{}, 2, models.PersonaState{}, "truth")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scene.Round != 2 {
		t.Errorf("expected round carried through, got %d", scene.Round)
	}
	if len(scene.Choices) != models.SceneChoiceCount {
		t.Fatalf("expected %d choices, got %d", models.SceneChoiceCount, len(scene.Choices))
	}
	drink := false
	for _, c := range scene.Choices {
		if c.Symbol == models.DrinkSymbol {
			drink = true
		}
	}
	if !drink {
		t.Error("expected one drink choice")
	}
	if !strings.Contains(scene.ID, "truth") {
		t.Errorf("expected activity id in scene id, got %q", scene.ID)
	}
}

func TestNewClient_RequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := NewClient(); err == nil {
		t.Error("expected error without api key")
	}
	if _, err := NewClient(WithAPIKey("sk-test")); err != nil {
		t.Errorf("unexpected error with explicit key: %v", err)
	}
}
