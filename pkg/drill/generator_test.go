package drill

import (
	"fmt"
	"strconv"
	"strings"
	"testing"
)

// parseFact splits "a op b = ?" back into its parts.
func parseFact(t *testing.T, text string) (a int, op string, b int) {
	t.Helper()
	parts := strings.Fields(text)
	if len(parts) != 5 {
		t.Fatalf("unexpected fact format: %q", text)
	}
	a, err := strconv.Atoi(parts[0])
	if err != nil {
		t.Fatalf("bad left operand in %q: %v", text, err)
	}
	b, err = strconv.Atoi(parts[2])
	if err != nil {
		t.Fatalf("bad right operand in %q: %v", text, err)
	}
	return a, parts[1], b
}

func TestGenerateFactsRecompute(t *testing.T) {
	g := NewSeededGenerator(42)

	for tier := 1; tier <= 5; tier++ {
		t.Run(fmt.Sprintf("tier_%d", tier), func(t *testing.T) {
			for _, p := range g.Generate(tier, 50) {
				a, op, b := parseFact(t, p.Text)

				var want int
				switch op {
				case OpAdd:
					want = a + b
				case OpSub:
					want = a - b
				case OpMul:
					want = a * b
				case OpDiv:
					// Division facts must back out exactly: a = b × quotient.
					q, err := strconv.Atoi(p.Answer)
					if err != nil {
						t.Fatalf("non-integer division answer %q", p.Answer)
					}
					if b*q != a {
						t.Errorf("%q: dividend %d != %d × %d", p.Text, a, b, q)
					}
					want = q
				default:
					t.Fatalf("unknown operation %q in %q", op, p.Text)
				}

				if p.Answer != strconv.Itoa(want) {
					t.Errorf("%q: stored answer %q, recomputed %d", p.Text, p.Answer, want)
				}
				if p.Tier != tier {
					t.Errorf("%q: tier %d, want %d", p.Text, p.Tier, tier)
				}
				if p.AnswerType != AnswerTypeNumber {
					t.Errorf("%q: answer type %q", p.Text, p.AnswerType)
				}
			}
		})
	}
}

func TestGenerateSubtractionNonNegative(t *testing.T) {
	g := NewSeededGenerator(7)
	for _, p := range g.Generate(2, 100) {
		a, op, b := parseFact(t, p.Text)
		if op == OpSub && a < b {
			t.Errorf("%q: negative result", p.Text)
		}
	}
}

func TestGenerateClampsTierAndCount(t *testing.T) {
	g := NewSeededGenerator(1)

	if got := g.Generate(0, 3); len(got) != 3 || got[0].Tier != 1 {
		t.Errorf("tier 0 should clamp to 1, got tier %d len %d", got[0].Tier, len(got))
	}
	if got := g.Generate(9, 3); got[0].Tier != 5 {
		t.Errorf("tier 9 should clamp to 5, got %d", got[0].Tier)
	}
	if got := g.Generate(1, 0); len(got) != 5 {
		t.Errorf("count 0 should default to 5, got %d", len(got))
	}
}

func TestGenerateAttachesHintsAndSteps(t *testing.T) {
	g := NewSeededGenerator(3)
	for _, p := range g.Generate(5, 20) {
		if len(p.Hints) != MaxAttempts {
			t.Errorf("%q: %d hints, want %d", p.Text, len(p.Hints), MaxAttempts)
		}
		if len(p.SolutionSteps) == 0 {
			t.Errorf("%q: no solution steps", p.Text)
		}
	}
}

func TestFromProblems(t *testing.T) {
	g := NewSeededGenerator(11)
	stored := g.Generate(3, 10)

	review := g.FromProblems(stored, 4)
	if len(review) != 4 {
		t.Fatalf("got %d review problems, want 4", len(review))
	}

	storedIds := make(map[string]bool, len(stored))
	storedText := make(map[string]bool, len(stored))
	for _, p := range stored {
		storedIds[p.Id] = true
		storedText[p.Text] = true
	}

	for _, p := range review {
		if storedIds[p.Id] {
			t.Errorf("review problem reused stored id %s", p.Id)
		}
		if !storedText[p.Text] {
			t.Errorf("review problem %q not drawn from stored set", p.Text)
		}
	}

	// Count beyond the source size returns everything once.
	if got := g.FromProblems(stored, 99); len(got) != len(stored) {
		t.Errorf("oversized count: got %d, want %d", len(got), len(stored))
	}
	if got := g.FromProblems(nil, 5); got != nil {
		t.Errorf("empty source should return nil, got %v", got)
	}
}
