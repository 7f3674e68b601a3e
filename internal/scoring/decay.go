package scoring

import (
	"math"
)

const (
	// MaxSolves is the number of teams that can score on a single map
	// question before it closes. Awards decay linearly over these slots.
	MaxSolves = 3

	// WrongAnswerPenaltyFraction is the share of a question's max score
	// deducted from a team's total on an incorrect submission.
	WrongAnswerPenaltyFraction = 0.1
)

// ScoreForNthSolve returns the points earned by the solver at the given
// zero-based rank. The first solver earns the full max score, later solvers
// earn linearly less, and any rank at or past MaxSolves earns nothing.
// Rounding is half-away-from-zero.
func ScoreForNthSolve(maxScore, solveIndex int) int {
	if solveIndex >= MaxSolves {
		return 0
	}
	return int(math.Round(float64(maxScore) * float64(MaxSolves-solveIndex) / MaxSolves))
}

// NextSolveScore returns the value a question currently displays: the award
// the next solver would earn given how many teams have solved it already.
func NextSolveScore(maxScore, solveCount int) int {
	return ScoreForNthSolve(maxScore, solveCount)
}

// IsFullySolved reports whether a question has exhausted its solve slots.
func IsFullySolved(solveCount int) bool {
	return solveCount >= MaxSolves
}

// WrongAnswerPenalty returns the points deducted for a wrong submission.
func WrongAnswerPenalty(maxScore int) int {
	return int(math.Round(float64(maxScore) * WrongAnswerPenaltyFraction))
}
