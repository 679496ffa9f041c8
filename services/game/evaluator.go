package game

import (
	game_constants "Veinticuatro/constants/game"
	"fmt"
	"math"
)

// Operation is one binary step of a submitted solution. Left and Right are
// the operand values the client claims to have combined, Result is the value
// the client claims the step produced. The server recomputes everything.
type Operation struct {
	Operator string  `json:"operator"`
	Left     float64 `json:"left"`
	Right    float64 `json:"right"`
	Result   float64 `json:"result"`
}

// Solution is a full submission: which center cards were used and the three
// operations combining them.
type Solution struct {
	Cards      []Card      `json:"cards"`
	Operations []Operation `json:"operations"`
	Result     float64     `json:"result"`
}

// EvalResult is the verdict on a submitted operation chain.
type EvalResult struct {
	Valid  bool
	Result float64
	Error  string
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= game_constants.FloatTolerance
}

// takeValue consumes one occurrence of v from the availability pool,
// comparing within tolerance. Returns false if v is not available.
func takeValue(pool []float64, v float64) ([]float64, bool) {
	for i, p := range pool {
		if approxEqual(p, v) {
			return append(pool[:i:i], pool[i+1:]...), true
		}
	}
	return pool, false
}

// Evaluate checks that ops is a legal chain over exactly the given card
// values and that it produces the target value.
//
// The chain is treated as building a binary expression tree over a multiset
// of four leaves: every operation must pop two currently-available values
// (an unused card or the result of an earlier operation) and pushes its own
// result. After three operations exactly one value remains, and it must be
// 24 within tolerance. This is what stops a client from reusing a card or
// fabricating an operand that was never dealt.
func Evaluate(values []float64, ops []Operation) EvalResult {
	if len(values) != 4 {
		return EvalResult{Error: fmt.Sprintf("expected 4 card values, got %d", len(values))}
	}
	if len(ops) != game_constants.OperationsPerSolution {
		return EvalResult{Error: fmt.Sprintf("expected %d operations, got %d",
			game_constants.OperationsPerSolution, len(ops))}
	}

	pool := make([]float64, len(values))
	copy(pool, values)

	var last float64
	for i, op := range ops {
		var ok bool
		pool, ok = takeValue(pool, op.Left)
		if !ok {
			return EvalResult{Error: fmt.Sprintf("operation %d: left operand %v is not available", i+1, op.Left)}
		}
		pool, ok = takeValue(pool, op.Right)
		if !ok {
			return EvalResult{Error: fmt.Sprintf("operation %d: right operand %v is not available", i+1, op.Right)}
		}

		var result float64
		switch op.Operator {
		case "+":
			result = op.Left + op.Right
		case "-":
			result = op.Left - op.Right
		case "*":
			result = op.Left * op.Right
		case "/":
			if approxEqual(op.Right, 0) {
				return EvalResult{Error: fmt.Sprintf("operation %d: division by zero", i+1)}
			}
			result = op.Left / op.Right
		default:
			return EvalResult{Error: fmt.Sprintf("operation %d: unknown operator %q", i+1, op.Operator)}
		}

		if !approxEqual(result, op.Result) {
			return EvalResult{Error: fmt.Sprintf("operation %d: %v %s %v = %v, not %v",
				i+1, op.Left, op.Operator, op.Right, result, op.Result)}
		}

		// The recomputed result becomes available for later operations
		pool = append(pool, result)
		last = result
	}

	if !approxEqual(last, game_constants.TargetValue) {
		return EvalResult{Result: last, Error: fmt.Sprintf("final result is %v, not %d", last, game_constants.TargetValue)}
	}

	return EvalResult{Valid: true, Result: last}
}

// VerifySolution validates a submitted solution against the center cards of
// a round. The card values the chain consumes must be exactly the dealt
// center values, the solution's own Cards field is only checked for shape
// (clients echo the cards back for the replay animation, they are never
// trusted for verification).
func VerifySolution(centerCards []Card, solution *Solution) EvalResult {
	if solution == nil {
		return EvalResult{Error: "no solution submitted"}
	}
	if len(solution.Cards) != 4 {
		return EvalResult{Error: fmt.Sprintf("solution must reference exactly 4 cards, got %d", len(solution.Cards))}
	}

	// The 4 cards the solution names must be a sub-multiset of the dealt
	// center cards (super mode deals 8 but a solution still combines 4).
	pool := make([]float64, 0, len(centerCards))
	for _, c := range centerCards {
		pool = append(pool, float64(c.Value))
	}
	values := make([]float64, 0, 4)
	for _, c := range solution.Cards {
		var ok bool
		pool, ok = takeValue(pool, float64(c.Value))
		if !ok {
			return EvalResult{Error: fmt.Sprintf("card value %d was not dealt this round", c.Value)}
		}
		values = append(values, float64(c.Value))
	}

	return Evaluate(values, solution.Operations)
}
