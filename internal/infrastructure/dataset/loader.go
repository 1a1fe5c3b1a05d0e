// Package dataset loads the movie table from CSV and keeps the current
// snapshot available to request handlers.
package dataset

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/turtacn/CineMood/internal/domain/movie"
	"github.com/turtacn/CineMood/pkg/errors"
)

// ErrEmptyDataset is returned for input without a header row.
var ErrEmptyDataset = errors.New(errors.ErrCodeDatasetParseFailed, "dataset has no header row")

// Parse reads a CSV document with a header row into a movie table. Header
// names are matched case-insensitively and unknown columns are ignored.
// Empty cells become null and every other cell is kept byte for byte.
// Records without an emotion are classified from their genres before the
// table is returned.
func Parse(r io.Reader) (*movie.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyDataset
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatasetParseFailed, "failed to read csv header")
	}

	idx := indexColumns(header)
	cols := movie.ColumnSet{
		Title:   idx[movie.ColumnTitle] >= 0,
		Movie:   idx[movie.ColumnMovie] >= 0,
		Genres:  idx[movie.ColumnGenres] >= 0,
		Emotion: idx[movie.ColumnEmotion] >= 0,
	}

	var records []movie.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatasetParseFailed, "failed to read csv row")
		}
		rec := movie.Record{
			Title:  cell(row, idx[movie.ColumnTitle]),
			Movie:  cell(row, idx[movie.ColumnMovie]),
			Genres: cell(row, idx[movie.ColumnGenres]),
		}
		if e := cell(row, idx[movie.ColumnEmotion]); e != nil {
			rec.Emotion = *e
		}
		records = append(records, rec)
	}

	return movie.BuildTable(cols, records), nil
}

// indexColumns maps each recognised column to its position, or -1 when the
// header lacks it. The first occurrence of a duplicated name wins.
func indexColumns(header []string) map[string]int {
	idx := map[string]int{
		movie.ColumnTitle:   -1,
		movie.ColumnMovie:   -1,
		movie.ColumnGenres:  -1,
		movie.ColumnEmotion: -1,
	}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if pos, ok := idx[name]; ok && pos < 0 {
			idx[name] = i
		}
	}
	return idx
}

// cell returns a copy of row[i], or nil when the column is absent, the row
// is short, or the cell is empty.
func cell(row []string, i int) *string {
	if i < 0 || i >= len(row) || row[i] == "" {
		return nil
	}
	v := strings.Clone(row[i])
	return &v
}

//Personal.AI order the ending
