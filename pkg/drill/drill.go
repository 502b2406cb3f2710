package drill

// Problem is a single generated practice fact. Immutable once generated.
type Problem struct {
	Id            string   `json:"id"`
	Tier          int      `json:"tier"`
	Text          string   `json:"text"`
	Answer        string   `json:"answer"`
	AnswerType    string   `json:"answer_type"` // "number" | "text"
	Hints         []string `json:"hints"`
	SolutionSteps []string `json:"solution_steps"`
}

const (
	AnswerTypeNumber = "number"
	AnswerTypeText   = "text"

	// MaxAttempts is how many tries a student gets before the
	// problem is abandoned and the cursor advances.
	MaxAttempts = 3
)

const (
	OpAdd = "+"
	OpSub = "-"
	OpMul = "×"
	OpDiv = "÷"
)
