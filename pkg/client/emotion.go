package client

import (
	"context"
	"net/url"
	"time"
)

// DetectResult is the server's answer to an expression-score submission.
// When the dataset cannot satisfy the request Recommendations holds a single
// placeholder message instead of titles.
type DetectResult struct {
	DetectedEmotion string   `json:"detected_emotion"`
	Recommendations []string `json:"recommendations"`
}

// ClassifyResult is the outcome of a genre or label classification.
type ClassifyResult struct {
	Emotion   string `json:"emotion"`
	Canonical bool   `json:"canonical"`
}

// DatasetStats describes the dataset currently served.
type DatasetStats struct {
	Version      string         `json:"version"`
	LoadedAt     time.Time      `json:"loaded_at"`
	Records      int            `json:"records"`
	Columns      []string       `json:"columns"`
	Distribution map[string]int `json:"distribution"`
}

type detectRequest struct {
	Expressions map[string]float64 `json:"expressions"`
}

type classifyRequest struct {
	Genres *string `json:"genres,omitempty"`
	Label  *string `json:"label,omitempty"`
}

// DetectEmotion submits expression scores and returns the dominant emotion
// with its recommendations.
func (c *Client) DetectEmotion(ctx context.Context, scores map[string]float64) (*DetectResult, error) {
	var out DetectResult
	if err := c.post(ctx, "/api/v1/detect_emotion", detectRequest{Expressions: scores}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Classify derives the emotion for a genre string.
func (c *Client) Classify(ctx context.Context, genres string) (*ClassifyResult, error) {
	return c.classify(ctx, classifyRequest{Genres: &genres})
}

// NormalizeLabel maps an expression label to the emotion used for matching.
func (c *Client) NormalizeLabel(ctx context.Context, label string) (*ClassifyResult, error) {
	return c.classify(ctx, classifyRequest{Label: &label})
}

func (c *Client) classify(ctx context.Context, req classifyRequest) (*ClassifyResult, error) {
	var out ClassifyResult
	if err := c.post(ctx, "/api/v1/classify", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Recommend lists titles for an emotion without submitting scores.
func (c *Client) Recommend(ctx context.Context, emotion string) (*DetectResult, error) {
	var out DetectResult
	if err := c.get(ctx, "/api/v1/recommendations/"+url.PathEscape(emotion), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DatasetStats returns a summary of the active dataset.
func (c *Client) DatasetStats(ctx context.Context) (*DatasetStats, error) {
	var out DatasetStats
	if err := c.get(ctx, "/api/v1/dataset/stats", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

//Personal.AI order the ending
