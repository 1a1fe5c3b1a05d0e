// Package movie models the in-memory movie table that recommendations are
// drawn from.
package movie

import "strings"

// Column names recognised in a movie dataset.
const (
	ColumnTitle   = "title"
	ColumnMovie   = "movie"
	ColumnGenres  = "genres"
	ColumnEmotion = "emotion"
)

// Record is one row of the movie dataset. Nil pointers are null cells.
type Record struct {
	Title   *string
	Movie   *string
	Genres  *string
	Emotion string
}

// NormalizedEmotion returns the record's emotion trimmed and lower-cased.
func (r Record) NormalizedEmotion() string {
	return strings.ToLower(strings.TrimSpace(r.Emotion))
}

// Text returns a pointer to s. It is a convenience for building records.
func Text(s string) *string {
	return &s
}

// ColumnSet records which columns the source exposed. A missing column is
// different from a column whose cells are empty.
type ColumnSet struct {
	Title   bool `json:"title"`
	Movie   bool `json:"movie"`
	Genres  bool `json:"genres"`
	Emotion bool `json:"emotion"`
}

// Names lists the present columns in canonical order.
func (c ColumnSet) Names() []string {
	names := make([]string, 0, 4)
	if c.Title {
		names = append(names, ColumnTitle)
	}
	if c.Movie {
		names = append(names, ColumnMovie)
	}
	if c.Genres {
		names = append(names, ColumnGenres)
	}
	if c.Emotion {
		names = append(names, ColumnEmotion)
	}
	return names
}

// AllColumns is a ColumnSet with every column present.
func AllColumns() ColumnSet {
	return ColumnSet{Title: true, Movie: true, Genres: true, Emotion: true}
}

//Personal.AI order the ending
