package emotion

import (
	"math"

	"github.com/turtacn/CineMood/pkg/errors"
)

// Scores maps an expression name to its detector confidence.
type Scores map[string]float64

// ErrEmptyInput is returned when no usable expression score is supplied.
var ErrEmptyInput = errors.New(errors.ErrCodeNoExpression, "No expressions detected")

// SelectDominant returns the expression with the highest score. NaN scores are
// skipped. Equal maxima resolve to the lexicographically smallest name so the
// outcome does not depend on map iteration order.
func SelectDominant(scores Scores) (string, error) {
	name, _, err := dominant(scores)
	return name, err
}

func dominant(scores Scores) (string, float64, error) {
	var (
		best      string
		bestScore float64
		found     bool
	)
	for name, score := range scores {
		if math.IsNaN(score) {
			continue
		}
		if !found || score > bestScore || (score == bestScore && name < best) {
			best, bestScore, found = name, score, true
		}
	}
	if !found {
		return "", 0, ErrEmptyInput
	}
	return best, bestScore, nil
}

// Detection is the outcome of Detect.
type Detection struct {
	Expression string  `json:"expression"`
	Score      float64 `json:"score"`
	Emotion    Emotion `json:"emotion"`
}

// Detect selects the dominant expression and normalizes it. A positive
// minConfidence rejects inputs whose dominant score falls below it.
func Detect(scores Scores, minConfidence float64) (Detection, error) {
	name, score, err := dominant(scores)
	if err != nil {
		return Detection{}, err
	}
	if minConfidence > 0 && score < minConfidence {
		return Detection{}, ErrEmptyInput.WithDetail("dominant score below confidence threshold")
	}
	return Detection{Expression: name, Score: score, Emotion: Normalize(name)}, nil
}

//Personal.AI order the ending
