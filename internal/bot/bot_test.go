package bot

import (
	"testing"

	"github.com/tonightlabs/tonight/internal/models"
	"github.com/tonightlabs/tonight/internal/util"
)

func testQuestion(category models.QuestionCategory) models.Question {
	return models.Question{
		ID:       "q1",
		Category: category,
		Text:     "A question",
		Options:  []string{"a", "b", "c"},
	}
}

func TestRefusalProbability_Tiers(t *testing.T) {
	if p := RefusalProbability(models.CategoryIntimate); p != RefusalProbIntimate {
		t.Errorf("expected intimate tier %v, got %v", RefusalProbIntimate, p)
	}
	if p := RefusalProbability(models.CategoryStyle); p != RefusalProbDefault {
		t.Errorf("expected default tier %v, got %v", RefusalProbDefault, p)
	}
}

// fixedRand pins the probability draw while keeping option picks valid.
type fixedRand struct {
	draw float64
}

func (f fixedRand) Float64() float64               { return f.draw }
func (f fixedRand) IntN(n int) int                 { return 0 }
func (f fixedRand) Shuffle(n int, fn func(i, j int)) {}

func TestDecide_LowChemistryCanRefuse(t *testing.T) {
	res := Decide(testQuestion(models.CategoryIntimate), 30, fixedRand{draw: 0.0})
	if !res.Refused {
		t.Error("expected refusal with winning draw and low chemistry")
	}
	if res.Option != "" {
		t.Errorf("refusal must not carry an option, got %q", res.Option)
	}
}

func TestDecide_HighChemistryNeverRefuses(t *testing.T) {
	// Even a guaranteed-winning draw cannot refuse at or above the ceiling.
	for chem := ChemistryRefusalCeiling; chem <= 100; chem += 10 {
		res := Decide(testQuestion(models.CategoryIntimate), chem, fixedRand{draw: 0.0})
		if res.Refused {
			t.Fatalf("refused at chemistry %d", chem)
		}
		if res.Option == "" {
			t.Fatalf("expected an option at chemistry %d", chem)
		}
	}
}

func TestDecide_LosingDrawAnswers(t *testing.T) {
	res := Decide(testQuestion(models.CategoryIntimate), 0, fixedRand{draw: 0.99})
	if res.Refused {
		t.Error("expected answer on losing draw")
	}
}

func TestDecide_OptionFromQuestion(t *testing.T) {
	q := testQuestion(models.CategoryDeep)
	rng := util.NewSeededRand(7)
	for i := 0; i < 50; i++ {
		res := Decide(q, 100, rng)
		if res.Refused {
			t.Fatal("refusal impossible at chemistry 100")
		}
		if !q.HasOption(res.Option) {
			t.Fatalf("picked option %q not in question", res.Option)
		}
	}
}

func TestDecide_RefusalReachableOverManyDraws(t *testing.T) {
	q := testQuestion(models.CategoryIntimate)
	rng := util.NewSeededRand(11)
	refused := false
	for i := 0; i < 200; i++ {
		if Decide(q, 30, rng).Refused {
			refused = true
			break
		}
	}
	if !refused {
		t.Error("expected at least one refusal in 200 draws at p=0.35")
	}
}
