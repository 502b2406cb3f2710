package drill

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// tierParams selects operand ranges and allowed operations per difficulty tier (1-5).
type tierParams struct {
	ops     []string
	maxAdd  int // operands for + and -
	maxMul  int // factors for ×
	maxDiv  int // divisor and quotient for ÷
}

var tiers = map[int]tierParams{
	1: {ops: []string{OpAdd, OpSub}, maxAdd: 10},
	2: {ops: []string{OpAdd, OpSub}, maxAdd: 20},
	3: {ops: []string{OpAdd, OpSub, OpMul}, maxAdd: 100, maxMul: 10},
	4: {ops: []string{OpMul, OpDiv}, maxMul: 12, maxDiv: 12},
	5: {ops: []string{OpAdd, OpSub, OpMul, OpDiv}, maxAdd: 500, maxMul: 25, maxDiv: 20},
}

type Generator struct {
	rng *rand.Rand
}

func NewGenerator() *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewSeededGenerator makes generation reproducible. Used by tests.
func NewSeededGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Generate produces count random arithmetic facts for the given tier.
// Tiers outside 1-5 clamp to the nearest valid tier.
func (g *Generator) Generate(tier, count int) []Problem {
	if tier < 1 {
		tier = 1
	}
	if tier > 5 {
		tier = 5
	}
	if count <= 0 {
		count = 5
	}

	params := tiers[tier]
	problems := make([]Problem, 0, count)
	for i := 0; i < count; i++ {
		op := params.ops[g.rng.Intn(len(params.ops))]
		problems = append(problems, g.generateFact(tier, op, params))
	}
	return problems
}

// FromProblems rebuilds ephemeral review problems from previously stored ones:
// a shuffled subset with fresh ids. Source problems are never mutated.
func (g *Generator) FromProblems(stored []Problem, count int) []Problem {
	if len(stored) == 0 {
		return nil
	}
	if count <= 0 || count > len(stored) {
		count = len(stored)
	}

	idx := g.rng.Perm(len(stored))
	review := make([]Problem, 0, count)
	for _, i := range idx[:count] {
		p := stored[i]
		p.Id = uuid.New().String()
		review = append(review, p)
	}
	return review
}

func (g *Generator) generateFact(tier int, op string, params tierParams) Problem {
	var a, b, answer int

	switch op {
	case OpAdd:
		a = g.rng.Intn(params.maxAdd) + 1
		b = g.rng.Intn(params.maxAdd) + 1
		answer = a + b
	case OpSub:
		// Keep results non-negative: larger operand first.
		a = g.rng.Intn(params.maxAdd) + 1
		b = g.rng.Intn(params.maxAdd) + 1
		if b > a {
			a, b = b, a
		}
		answer = a - b
	case OpMul:
		a = g.rng.Intn(params.maxMul) + 1
		b = g.rng.Intn(params.maxMul) + 1
		answer = a * b
	case OpDiv:
		// Pick divisor and quotient, multiply to back out a clean dividend.
		b = g.rng.Intn(params.maxDiv-1) + 2 // divisor >= 2
		answer = g.rng.Intn(params.maxDiv) + 1
		a = b * answer
	}

	return Problem{
		Id:            uuid.New().String(),
		Tier:          tier,
		Text:          fmt.Sprintf("%d %s %d = ?", a, op, b),
		Answer:        fmt.Sprintf("%d", answer),
		AnswerType:    AnswerTypeNumber,
		Hints:         hintsFor(op, a, b),
		SolutionSteps: stepsFor(op, a, b, answer),
	}
}

func hintsFor(op string, a, b int) []string {
	switch op {
	case OpAdd:
		return []string{
			fmt.Sprintf("Start at %d and count up %d more.", a, b),
			fmt.Sprintf("Try breaking %d into smaller pieces that are easier to add.", b),
			fmt.Sprintf("Use a number line: jump from %d in steps until you have added %d.", a, b),
		}
	case OpSub:
		return []string{
			fmt.Sprintf("Start at %d and count back %d.", a, b),
			fmt.Sprintf("Think: what do you add to %d to reach %d?", b, a),
			fmt.Sprintf("Break %d apart to subtract it in easier steps.", b),
		}
	case OpMul:
		return []string{
			fmt.Sprintf("Think of %d groups of %d.", a, b),
			fmt.Sprintf("Try skip counting by %d, %d times.", b, a),
			fmt.Sprintf("If you know a nearby fact like %d × %d, adjust from there.", a, b-1),
		}
	default: // OpDiv
		return []string{
			fmt.Sprintf("How many groups of %d fit into %d?", b, a),
			fmt.Sprintf("Think of the related multiplication: %d × ? = %d.", b, a),
			fmt.Sprintf("Skip count by %d until you reach %d, counting your jumps.", b, a),
		}
	}
}

func stepsFor(op string, a, b, answer int) []string {
	switch op {
	case OpAdd:
		return []string{
			fmt.Sprintf("We need to add %d and %d.", a, b),
			fmt.Sprintf("Counting up %d from %d gives %d.", b, a, answer),
			fmt.Sprintf("So %d + %d = %d.", a, b, answer),
		}
	case OpSub:
		return []string{
			fmt.Sprintf("We need to take %d away from %d.", b, a),
			fmt.Sprintf("Counting back %d from %d gives %d.", b, a, answer),
			fmt.Sprintf("So %d - %d = %d.", a, b, answer),
		}
	case OpMul:
		return []string{
			fmt.Sprintf("%d × %d means %d groups of %d.", a, b, a, b),
			fmt.Sprintf("Adding %d together %d times gives %d.", b, a, answer),
			fmt.Sprintf("So %d × %d = %d.", a, b, answer),
		}
	default: // OpDiv
		return []string{
			fmt.Sprintf("%d ÷ %d asks how many %ds fit into %d.", a, b, b, a),
			fmt.Sprintf("Since %d × %d = %d, exactly %d groups fit.", b, answer, a, answer),
			fmt.Sprintf("So %d ÷ %d = %d.", a, b, answer),
		}
	}
}
