package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/CineMood/internal/application/recommendation"
	"github.com/turtacn/CineMood/internal/domain/emotion"
	"github.com/turtacn/CineMood/internal/domain/movie"
	"github.com/turtacn/CineMood/pkg/errors"
)

func TestParse_AllColumns(t *testing.T) {
	in := "Title,Movie,Genres,Emotion\n" +
		"Up,,Animation|Comedy,happy\n" +
		"Heat,Heat (1995),Crime|Drama,\n"

	tbl, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, movie.AllColumns(), tbl.Columns())

	up := tbl.At(0)
	require.NotNil(t, up.Title)
	assert.Equal(t, "Up", *up.Title)
	assert.Nil(t, up.Movie)
	assert.Equal(t, "happy", up.Emotion)

	heat := tbl.At(1)
	require.NotNil(t, heat.Movie)
	assert.Equal(t, "Heat (1995)", *heat.Movie)
	assert.Equal(t, "sad", heat.Emotion, "empty emotion cell is derived from genres")
}

func TestParse_DerivesMissingEmotionColumn(t *testing.T) {
	in := "movie,genres\nAlien,Horror|Science Fiction\nUp,Comedy\nBlank,\n"

	tbl, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 3, tbl.Len())

	cols := tbl.Columns()
	assert.False(t, cols.Title)
	assert.True(t, cols.Movie)
	assert.True(t, cols.Emotion)

	assert.Equal(t, "fear", tbl.At(0).Emotion)
	assert.Equal(t, "happy", tbl.At(1).Emotion)
	assert.Equal(t, "neutral", tbl.At(2).Emotion)
	assert.Nil(t, tbl.At(2).Genres)
}

func TestParse_NoGenresColumn(t *testing.T) {
	tbl, err := Parse(strings.NewReader("title\nA\nB\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"neutral": 2}, tbl.Distribution())
}

func TestParse_HeaderOnly(t *testing.T) {
	tbl, err := Parse(strings.NewReader("title,genres\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
	assert.True(t, tbl.Columns().Title)
}

func TestParse_IgnoresUnknownColumnsAndShortRows(t *testing.T) {
	in := "\ufeffid,TITLE,vote_average,genres\n1,Up,8.0,Comedy\n2,Short\n"

	tbl, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "Up", *tbl.At(0).Title)
	assert.Equal(t, "Short", *tbl.At(1).Title)
	assert.Nil(t, tbl.At(1).Genres)
	assert.Equal(t, "neutral", tbl.At(1).Emotion)
}

func TestParse_QuotedFields(t *testing.T) {
	in := "title,genres\n\"Crouching Tiger, Hidden Dragon\",\"Action, Drama\"\n"

	tbl, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, "Crouching Tiger, Hidden Dragon", *tbl.At(0).Title)
	assert.Equal(t, "sad", tbl.At(0).Emotion, "rule order decides, not genre order")
}

func TestParse_KeepsCellWhitespace(t *testing.T) {
	in := "title,emotion\n A,fear\nA, fear\n  B  ,Fear \n"

	tbl, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 3, tbl.Len())
	assert.Equal(t, " A", *tbl.At(0).Title)
	assert.Equal(t, "A", *tbl.At(1).Title)
	assert.Equal(t, "  B  ", *tbl.At(2).Title)
	assert.Equal(t, " fear", tbl.At(1).Emotion)

	res := recommendation.Recommend(emotion.Fear, tbl, 20)
	assert.Equal(t, []string{" A", "A", "  B  "}, res.Titles, "distinct titles survive dedup")
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyDataset)

	_, err = Parse(strings.NewReader("title,genres\n\"unterminated,Drama\n"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDatasetParseFailed))
}

//Personal.AI order the ending
