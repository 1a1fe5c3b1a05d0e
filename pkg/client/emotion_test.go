package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectEmotion(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/detect_emotion", r.URL.Path)

		var req detectRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 0.8, req.Expressions["happy"])

		_, _ = w.Write([]byte(`{"detected_emotion":"happy","recommendations":["Up","Amélie"]}`))
	})

	res, err := c.DetectEmotion(context.Background(), map[string]float64{"happy": 0.8, "sad": 0.1})
	require.NoError(t, err)
	assert.Equal(t, "happy", res.DetectedEmotion)
	assert.Equal(t, []string{"Up", "Amélie"}, res.Recommendations)
}

func TestDetectEmotion_NoExpressions(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"EMO_001","message":"No expressions detected"}`))
	})

	res, err := c.DetectEmotion(context.Background(), nil)
	assert.Nil(t, res)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNoExpression())
}

func TestClassify(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/classify", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"genres": "Horror, Mystery"}, body)
		_, _ = w.Write([]byte(`{"emotion":"fear","canonical":true}`))
	})

	res, err := c.Classify(context.Background(), "Horror, Mystery")
	require.NoError(t, err)
	assert.Equal(t, &ClassifyResult{Emotion: "fear", Canonical: true}, res)
}

func TestNormalizeLabel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"label": "Fearful"}, body)
		_, _ = w.Write([]byte(`{"emotion":"fear","canonical":true}`))
	})

	res, err := c.NormalizeLabel(context.Background(), "Fearful")
	require.NoError(t, err)
	assert.Equal(t, "fear", res.Emotion)
}

func TestRecommend_EscapesEmotion(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/recommendations/very%20sad", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"detected_emotion":"very sad","recommendations":["No matching movies found for very sad"]}`))
	})

	res, err := c.Recommend(context.Background(), "very sad")
	require.NoError(t, err)
	assert.Len(t, res.Recommendations, 1)
}

func TestDatasetStats(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/dataset/stats", r.URL.Path)
		_, _ = w.Write([]byte(`{"version":"v1","loaded_at":"2024-01-02T03:04:05Z","records":3,` +
			`"columns":["title","genres","emotion"],"distribution":{"happy":2,"sad":1}}`))
	})

	stats, err := c.DatasetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1", stats.Version)
	assert.Equal(t, 3, stats.Records)
	assert.Equal(t, 2, stats.Distribution["happy"])
	assert.Equal(t, 2024, stats.LoadedAt.Year())
}

//Personal.AI order the ending
