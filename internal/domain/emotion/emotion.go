// Package emotion classifies movies and facial expressions into a small,
// closed vocabulary of canonical emotions.
package emotion

import "strings"

// Emotion is an emotion label. Canonical values are the constants below;
// labels produced by Normalize may fall outside that set.
type Emotion string

const (
	Happy    Emotion = "happy"
	Sad      Emotion = "sad"
	Fear     Emotion = "fear"
	Surprise Emotion = "surprise"
	Neutral  Emotion = "neutral"
)

// All lists the canonical emotions in a stable order.
var All = []Emotion{Happy, Sad, Fear, Surprise, Neutral}

// IsCanonical reports whether e is one of the canonical emotions.
func (e Emotion) IsCanonical() bool {
	switch e {
	case Happy, Sad, Fear, Surprise, Neutral:
		return true
	default:
		return false
	}
}

// String returns the string representation of the emotion.
func (e Emotion) String() string {
	return string(e)
}

// genreRule pairs a genre keyword with the emotion it implies.
type genreRule struct {
	keyword string
	emotion Emotion
}

// genreRules is evaluated top to bottom; the first keyword found wins, so the
// order here is part of the classification contract.
var genreRules = []genreRule{
	{"Comedy", Happy},
	{"Horror", Fear},
	{"Drama", Sad},
	{"Action", Surprise},
	{"Romance", Happy},
	{"Thriller", Fear},
	{"Adventure", Surprise},
}

// GenreKeywords returns the genre keywords in evaluation order.
func GenreKeywords() []string {
	out := make([]string, len(genreRules))
	for i, r := range genreRules {
		out[i] = r.keyword
	}
	return out
}

// DeriveEmotion maps free-form genre text to a canonical emotion. Matching is
// a case-sensitive substring test. Text without any known keyword yields
// Neutral.
func DeriveEmotion(genres string) Emotion {
	if genres == "" {
		return Neutral
	}
	for _, r := range genreRules {
		if strings.Contains(genres, r.keyword) {
			return r.emotion
		}
	}
	return Neutral
}

// DeriveEmotionFrom is DeriveEmotion for an optional genres value.
func DeriveEmotionFrom(genres *string) Emotion {
	if genres == nil {
		return Neutral
	}
	return DeriveEmotion(*genres)
}

// expressionAliases translates expression-detector labels into the canonical
// vocabulary.
var expressionAliases = map[string]Emotion{
	"fearful":   Fear,
	"surprised": Surprise,
	"disgusted": Neutral,
	"angry":     Neutral,
	"happy":     Happy,
	"sad":       Sad,
	"neutral":   Neutral,
}

// Normalize lower-cases and trims label, then maps it through the expression
// alias table. Unknown labels are returned lower-cased rather than coerced.
func Normalize(label string) Emotion {
	key := strings.ToLower(strings.TrimSpace(label))
	if e, ok := expressionAliases[key]; ok {
		return e
	}
	return Emotion(key)
}

//Personal.AI order the ending
