package recommendation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/CineMood/internal/domain/emotion"
	"github.com/turtacn/CineMood/internal/domain/movie"
)

func titled(title, emo string) movie.Record {
	return movie.Record{Title: movie.Text(title), Emotion: emo}
}

func TestRecommend_TrimCaseAndDedup(t *testing.T) {
	table := movie.NewTable(movie.ColumnSet{Title: true, Emotion: true}, []movie.Record{
		titled("A", "Fear "),
		titled("B", "fear"),
		titled("A", "fear"),
	})

	res := Recommend(emotion.Fear, table, 20)

	assert.Equal(t, ConditionOK, res.Condition)
	assert.Equal(t, emotion.Fear, res.Emotion)
	assert.Equal(t, []string{"A", "B"}, res.Titles)
	assert.Equal(t, []string{"A", "B"}, res.Recommendations())
}

func TestRecommend_EmptyTable(t *testing.T) {
	for name, table := range map[string]*movie.Table{
		"nil":   nil,
		"empty": movie.NewTable(movie.AllColumns(), nil),
	} {
		t.Run(name, func(t *testing.T) {
			res := Recommend(emotion.Happy, table, 20)
			assert.Equal(t, ConditionDatasetMissing, res.Condition)
			assert.Equal(t, []string{"Dataset missing"}, res.Recommendations())
		})
	}
}

func TestRecommend_SchemaMismatch(t *testing.T) {
	table := movie.NewTable(movie.ColumnSet{Title: true, Genres: true}, []movie.Record{
		{Title: movie.Text("A"), Genres: movie.Text("Comedy")},
	})

	res := Recommend(emotion.Happy, table, 20)

	assert.Equal(t, ConditionSchemaMismatch, res.Condition)
	assert.Equal(t, []string{"Invalid dataset format: 'emotion' column missing"}, res.Recommendations())
}

func TestRecommend_NoMatch(t *testing.T) {
	table := movie.NewTable(movie.ColumnSet{Title: true, Emotion: true}, []movie.Record{titled("A", "happy")})

	res := Recommend(emotion.Sad, table, 20)

	assert.Equal(t, ConditionNoMatch, res.Condition)
	assert.Equal(t, []string{"No matching movies found for sad"}, res.Recommendations())
}

func TestRecommend_NonCanonicalTarget(t *testing.T) {
	table := movie.NewTable(movie.ColumnSet{Title: true, Emotion: true}, []movie.Record{
		titled("A", "Joyful"),
		titled("B", "happy"),
	})

	res := Recommend(emotion.Normalize("joyful"), table, 20)
	assert.Equal(t, []string{"A"}, res.Titles)
}

func TestRecommend_FallsBackToMovieColumn(t *testing.T) {
	table := movie.NewTable(movie.ColumnSet{Movie: true, Emotion: true}, []movie.Record{
		{Movie: movie.Text("Alien"), Emotion: "fear"},
		{Movie: movie.Text("Saw"), Emotion: "fear"},
	})

	res := Recommend(emotion.Fear, table, 20)
	assert.Equal(t, []string{"Alien", "Saw"}, res.Titles)
}

func TestRecommend_TitleColumnPreferred(t *testing.T) {
	table := movie.NewTable(movie.AllColumns(), []movie.Record{
		{Title: movie.Text("Title A"), Movie: movie.Text("Movie A"), Emotion: "fear"},
		{Movie: movie.Text("Movie B"), Emotion: "fear"},
	})

	res := Recommend(emotion.Fear, table, 20)
	assert.Equal(t, []string{"Title A"}, res.Titles, "null titles are skipped rather than falling back per record")
}

func TestRecommend_ColumnMismatch(t *testing.T) {
	table := movie.NewTable(movie.ColumnSet{Genres: true, Emotion: true}, []movie.Record{
		{Genres: movie.Text("Horror"), Emotion: "fear"},
	})

	res := Recommend(emotion.Fear, table, 20)

	assert.Equal(t, ConditionColumnMismatch, res.Condition)
	assert.Equal(t, []string{"Column name mismatch in dataset"}, res.Recommendations())
}

func TestRecommend_AllTitlesNull(t *testing.T) {
	table := movie.NewTable(movie.ColumnSet{Title: true, Emotion: true}, []movie.Record{
		{Emotion: "fear"},
	})

	res := Recommend(emotion.Fear, table, 20)

	assert.Equal(t, ConditionOK, res.Condition)
	assert.Empty(t, res.Titles)
	assert.NotNil(t, res.Recommendations())
}

func TestRecommend_LimitBound(t *testing.T) {
	recs := make([]movie.Record, 0, 100)
	for i := 0; i < 100; i++ {
		recs = append(recs, titled(fmt.Sprintf("Movie %03d", i), "happy"))
	}
	table := movie.NewTable(movie.ColumnSet{Title: true, Emotion: true}, recs)

	for _, limit := range []int{1, 5, 20, 99, 100, 150} {
		res := Recommend(emotion.Happy, table, limit)
		assert.LessOrEqual(t, len(res.Titles), limit)
		assert.Equal(t, "Movie 000", res.Titles[0])
	}

	res := Recommend(emotion.Happy, table, 0)
	assert.Len(t, res.Titles, DefaultLimit)
	res = Recommend(emotion.Happy, table, -3)
	assert.Len(t, res.Titles, DefaultLimit)
}

func TestRecommend_DuplicatesDoNotConsumeLimit(t *testing.T) {
	table := movie.NewTable(movie.ColumnSet{Title: true, Emotion: true}, []movie.Record{
		titled("A", "sad"), titled("A", "sad"), titled("A", "sad"), titled("B", "sad"),
	})

	res := Recommend(emotion.Sad, table, 2)
	assert.Equal(t, []string{"A", "B"}, res.Titles)
}

func TestRecommend_RoundTrip(t *testing.T) {
	genres := []string{"Comedy", "Horror", "Drama", "Action", "Romance", "Thriller", "Adventure", "Documentary", ""}
	recs := make([]movie.Record, 0, len(genres))
	for i, g := range genres {
		recs = append(recs, movie.Record{Title: movie.Text(fmt.Sprintf("T%d", i)), Genres: movie.Text(g)})
	}
	table := movie.BuildTable(movie.ColumnSet{Title: true, Genres: true}, recs)

	for i := 0; i < table.Len(); i++ {
		rec := table.At(i)
		res := Recommend(emotion.Emotion(rec.Emotion), table, 100)
		require.True(t, res.OK())
		assert.Contains(t, res.Titles, *rec.Title)
	}
}

func TestResult_Response(t *testing.T) {
	r := Result{Emotion: emotion.Happy, Titles: []string{"Up"}, Condition: ConditionOK}
	assert.Equal(t, Response{DetectedEmotion: "happy", Recommendations: []string{"Up"}}, r.Response())

	r = Result{Emotion: emotion.Sad, Condition: ConditionNoMatch}
	assert.Equal(t, Response{DetectedEmotion: "sad", Recommendations: []string{"No matching movies found for sad"}}, r.Response())
	assert.Empty(t, Result{Condition: ConditionOK}.Message())
}

//Personal.AI order the ending
