package persona

import (
	"fmt"
	"testing"

	"github.com/tonightlabs/tonight/internal/models"
)

func testQuestion() models.Question {
	return models.Question{
		ID:             "q1",
		Category:       models.CategoryStyle,
		Text:           "A question",
		Options:        []string{"Evening Silk Noir", "Just a quiet sip"},
		MemoryTemplate: "Style mood: {option}",
	}
}

func TestRecordAnswer_RevealTraitAndMemory(t *testing.T) {
	p := NewPartnerPersona()
	res := RecordAnswer(p, testQuestion(), "Evening Silk Noir", 1)

	if res.DrinkTriggered {
		t.Error("expected non-drink answer")
	}
	if p.RevealProgress != 5+RevealDeltaAnswer {
		t.Errorf("expected reveal %d, got %d", 5+RevealDeltaAnswer, p.RevealProgress)
	}
	if p.Traits[len(p.Traits)-1] != "Noir" {
		t.Errorf("expected trait token 'Noir', got %v", p.Traits)
	}
	if p.Memories[len(p.Memories)-1] != "Style mood: Evening Silk Noir" {
		t.Errorf("unexpected memory: %v", p.Memories)
	}
	if p.Intoxication != 0 {
		t.Errorf("expected no intoxication bump, got %d", p.Intoxication)
	}
}

func TestRecordAnswer_DrinkOptionReducedRevealAndBump(t *testing.T) {
	p := NewUserPersona()
	res := RecordAnswer(p, testQuestion(), "Just a quiet sip", 1)

	if !res.DrinkTriggered {
		t.Error("expected drink answer to be detected")
	}
	if p.RevealProgress != 5+RevealDeltaDrink {
		t.Errorf("expected reveal %d, got %d", 5+RevealDeltaDrink, p.RevealProgress)
	}
	if p.Intoxication != 1 {
		t.Errorf("expected one intoxication bump, got %d", p.Intoxication)
	}
}

func TestRecordAnswer_PortraitPolicy(t *testing.T) {
	p := NewUserPersona()
	p.PortraitRef = "ref"
	if res := RecordAnswer(p, testQuestion(), "opt", 3); res.WantsPortrait {
		t.Error("odd round with existing portrait should not want a portrait")
	}
	if res := RecordAnswer(p, testQuestion(), "opt", 4); !res.WantsPortrait {
		t.Error("even round should want a portrait")
	}

	blank := NewUserPersona()
	if res := RecordAnswer(blank, testQuestion(), "opt", 3); !res.WantsPortrait {
		t.Error("missing portrait should always want a portrait")
	}
}

func TestRecordAnswer_RevealNeverExceeds100(t *testing.T) {
	p := NewUserPersona()
	for i := 0; i < 20; i++ {
		RecordAnswer(p, testQuestion(), "opt", 1)
	}
	if p.RevealProgress != 100 {
		t.Errorf("expected reveal capped at 100, got %d", p.RevealProgress)
	}
}

func TestRecordRefusal_BumpAndFixedMemory(t *testing.T) {
	p := NewUserPersona()
	reveal := p.RevealProgress
	RecordRefusal(p)

	if p.Intoxication != 1 {
		t.Errorf("expected intoxication 1, got %d", p.Intoxication)
	}
	if p.RevealProgress != reveal {
		t.Errorf("refusal must not change reveal progress, got %d", p.RevealProgress)
	}
	if p.Memories[len(p.Memories)-1] != RefusalMemory {
		t.Errorf("expected refusal memory, got %v", p.Memories)
	}
	if len(p.Traits) != 0 {
		t.Errorf("refusal must not add traits, got %v", p.Traits)
	}
}

func TestBumpIntoxication_Capped(t *testing.T) {
	p := NewUserPersona()
	for i := 0; i < 10; i++ {
		BumpIntoxication(p)
	}
	if p.Intoxication != MaxIntoxication {
		t.Errorf("expected intoxication capped at %d, got %d", MaxIntoxication, p.Intoxication)
	}
}

func TestAppendMemory_FIFOEviction(t *testing.T) {
	p := NewUserPersona()
	for i := 0; i < MaxMemories+3; i++ {
		p.Memories = appendMemory(p.Memories, fmt.Sprintf("m%d", i))
	}
	if len(p.Memories) != MaxMemories {
		t.Fatalf("expected %d memories, got %d", MaxMemories, len(p.Memories))
	}
	if p.Memories[0] != "m3" {
		t.Errorf("expected oldest surviving memory m3, got %q", p.Memories[0])
	}
	if p.Memories[len(p.Memories)-1] != fmt.Sprintf("m%d", MaxMemories+2) {
		t.Errorf("expected newest memory last, got %q", p.Memories[len(p.Memories)-1])
	}
}

func TestAppendTrait_DedupKeepsMostRecent(t *testing.T) {
	traits := []string{"Noir", "Silk"}
	traits = appendTrait(traits, "Noir")

	if len(traits) != 2 {
		t.Fatalf("expected 2 traits, got %v", traits)
	}
	if traits[0] != "Silk" || traits[1] != "Noir" {
		t.Errorf("expected [Silk Noir], got %v", traits)
	}
}

func TestAppendTrait_CapKeepsNewest(t *testing.T) {
	var traits []string
	for i := 0; i < MaxTraits+2; i++ {
		traits = appendTrait(traits, fmt.Sprintf("t%d", i))
	}
	if len(traits) != MaxTraits {
		t.Fatalf("expected %d traits, got %d", MaxTraits, len(traits))
	}
	if traits[0] != "t2" {
		t.Errorf("expected oldest surviving trait t2, got %q", traits[0])
	}
}

func TestIsDrinkChoice_Lexicon(t *testing.T) {
	cases := map[string]bool{
		"Just take a Sip":     true,
		"More wine, please":   true,
		"Raise the glass 🥃":   true,
		"Evening Silk Noir":   false,
		"A thoughtful answer": false,
	}
	for option, want := range cases {
		if got := IsDrinkChoice(option); got != want {
			t.Errorf("IsDrinkChoice(%q) = %v, want %v", option, got, want)
		}
	}
}

func TestDeriveChemistry(t *testing.T) {
	p := NewUserPersona()
	DeriveChemistry(p, models.VibeState{Flirty: 45, Comfortable: 38})
	if p.Chemistry != 42 {
		t.Errorf("expected chemistry 42, got %d", p.Chemistry)
	}
}

func TestAddSecret_IgnoresEmpty(t *testing.T) {
	p := NewUserPersona()
	AddSecret(p, "")
	AddSecret(p, "keeps a second phone")
	if len(p.Secrets) != 1 || p.Secrets[0] != "keeps a second phone" {
		t.Errorf("unexpected secrets: %v", p.Secrets)
	}
}
