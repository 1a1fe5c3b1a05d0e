package movie

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/CineMood/internal/domain/emotion"
)

// Table is an immutable snapshot of the movie dataset. A Table is never
// modified after construction; reloading a dataset produces a new Table with
// a new version.
type Table struct {
	version  string
	loadedAt time.Time
	columns  ColumnSet
	records  []Record
}

// NewTable builds a table from records exactly as given. Records are copied.
func NewTable(columns ColumnSet, records []Record) *Table {
	recs := make([]Record, len(records))
	copy(recs, records)
	return &Table{
		version:  uuid.NewString(),
		loadedAt: time.Now().UTC(),
		columns:  columns,
		records:  recs,
	}
}

// BuildTable classifies every record lacking an emotion from its genres and
// returns the resulting table, which always exposes an emotion column.
func BuildTable(columns ColumnSet, records []Record) *Table {
	recs := make([]Record, len(records))
	for i, r := range records {
		if r.NormalizedEmotion() == "" {
			var genres *string
			if columns.Genres {
				genres = r.Genres
			}
			r.Emotion = emotion.DeriveEmotionFrom(genres).String()
		}
		recs[i] = r
	}
	columns.Emotion = true
	t := NewTable(columns, nil)
	t.records = recs
	return t
}

// Empty returns a table with no records and no columns.
func Empty() *Table {
	return NewTable(ColumnSet{}, nil)
}

// Version identifies this snapshot.
func (t *Table) Version() string { return t.version }

// LoadedAt is the construction time of the snapshot.
func (t *Table) LoadedAt() time.Time { return t.loadedAt }

// Columns returns the columns present in the source.
func (t *Table) Columns() ColumnSet { return t.columns }

// Len returns the number of records. A nil table has none.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// At returns the i-th record by value.
func (t *Table) At(i int) Record { return t.records[i] }

// Distribution counts records per normalized emotion label.
func (t *Table) Distribution() map[string]int {
	dist := make(map[string]int)
	if t == nil {
		return dist
	}
	for _, r := range t.records {
		dist[r.NormalizedEmotion()]++
	}
	return dist
}

// Stats summarises a table for diagnostics.
type Stats struct {
	Version      string         `json:"version"`
	LoadedAt     time.Time      `json:"loaded_at"`
	Records      int            `json:"records"`
	Columns      []string       `json:"columns"`
	Distribution map[string]int `json:"distribution"`
}

// Stats returns a summary of the table.
func (t *Table) Stats() Stats {
	if t == nil {
		return Stats{Columns: []string{}, Distribution: map[string]int{}}
	}
	return Stats{
		Version:      t.version,
		LoadedAt:     t.loadedAt,
		Records:      len(t.records),
		Columns:      t.columns.Names(),
		Distribution: t.Distribution(),
	}
}

// SortedEmotions returns the distribution's labels ordered by descending
// count, then by name.
func (s Stats) SortedEmotions() []string {
	labels := make([]string, 0, len(s.Distribution))
	for k := range s.Distribution {
		labels = append(labels, k)
	}
	sort.Slice(labels, func(i, j int) bool {
		ci, cj := s.Distribution[labels[i]], s.Distribution[labels[j]]
		if ci != cj {
			return ci > cj
		}
		return labels[i] < labels[j]
	})
	return labels
}
