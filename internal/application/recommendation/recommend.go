// Package recommendation turns a detected emotion into a bounded list of
// movie titles drawn from the active movie table.
package recommendation

import (
	"fmt"
	"strings"

	"github.com/turtacn/CineMood/internal/domain/emotion"
	"github.com/turtacn/CineMood/internal/domain/movie"
)

// DefaultLimit is the maximum number of titles returned when no positive
// limit is configured.
const DefaultLimit = 20

// Condition classifies the outcome of a recommendation.
type Condition string

const (
	ConditionOK             Condition = "ok"
	ConditionDatasetMissing Condition = "dataset_missing"
	ConditionSchemaMismatch Condition = "schema_mismatch"
	ConditionNoMatch        Condition = "no_match"
	ConditionColumnMismatch Condition = "column_mismatch"
)

// Result is the outcome of Recommend.  Titles is only meaningful when
// Condition is ConditionOK.
type Result struct {
	Emotion   emotion.Emotion `json:"emotion"`
	Titles    []string        `json:"titles"`
	Condition Condition       `json:"condition"`
}

// OK reports whether the result carries titles.
func (r Result) OK() bool { return r.Condition == ConditionOK }

// Message returns the human-readable placeholder for a degraded result, or
// the empty string for ConditionOK.
func (r Result) Message() string {
	switch r.Condition {
	case ConditionOK:
		return ""
	case ConditionDatasetMissing:
		return "Dataset missing"
	case ConditionSchemaMismatch:
		return "Invalid dataset format: 'emotion' column missing"
	case ConditionNoMatch:
		return fmt.Sprintf("No matching movies found for %s", r.Emotion)
	case ConditionColumnMismatch:
		return "Column name mismatch in dataset"
	default:
		return string(r.Condition)
	}
}

// Recommendations renders the result as a flat list: the titles when OK,
// otherwise a single placeholder message.
func (r Result) Recommendations() []string {
	if r.OK() {
		if r.Titles == nil {
			return []string{}
		}
		return r.Titles
	}
	return []string{r.Message()}
}

// Response is the wire shape returned to expression-detection clients.
type Response struct {
	DetectedEmotion string   `json:"detected_emotion"`
	Recommendations []string `json:"recommendations"`
}

// Response converts the result to its wire shape.
func (r Result) Response() Response {
	return Response{DetectedEmotion: r.Emotion.String(), Recommendations: r.Recommendations()}
}

// NormalizeLimit maps non-positive limits to DefaultLimit.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

// Recommend selects up to limit distinct titles from table whose emotion
// matches target, ignoring case and surrounding whitespace.  Records are
// visited in table order and the first occurrence of a title wins.  Data
// problems are reported through the result's Condition, never as an error.
func Recommend(target emotion.Emotion, table *movie.Table, limit int) Result {
	limit = NormalizeLimit(limit)
	res := Result{Emotion: target}

	if table.Len() == 0 {
		res.Condition = ConditionDatasetMissing
		return res
	}
	cols := table.Columns()
	if !cols.Emotion {
		res.Condition = ConditionSchemaMismatch
		return res
	}

	want := strings.ToLower(target.String())
	capacity := min(limit, table.Len())
	matched := make([]int, 0, capacity)
	for i := 0; i < table.Len(); i++ {
		if table.At(i).NormalizedEmotion() == want {
			matched = append(matched, i)
		}
	}
	if len(matched) == 0 {
		res.Condition = ConditionNoMatch
		return res
	}

	var display func(movie.Record) *string
	switch {
	case cols.Title:
		display = func(r movie.Record) *string { return r.Title }
	case cols.Movie:
		display = func(r movie.Record) *string { return r.Movie }
	default:
		res.Condition = ConditionColumnMismatch
		return res
	}

	seen := make(map[string]struct{}, capacity)
	titles := make([]string, 0, capacity)
	for _, i := range matched {
		name := display(table.At(i))
		if name == nil {
			continue
		}
		if _, dup := seen[*name]; dup {
			continue
		}
		seen[*name] = struct{}{}
		titles = append(titles, *name)
		if len(titles) >= limit {
			break
		}
	}

	res.Titles = titles
	res.Condition = ConditionOK
	return res
}

//Personal.AI order the ending
