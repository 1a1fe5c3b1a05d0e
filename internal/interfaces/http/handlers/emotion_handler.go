package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/CineMood/internal/application/recommendation"
	"github.com/turtacn/CineMood/internal/domain/emotion"
	"github.com/turtacn/CineMood/internal/domain/movie"
	"github.com/turtacn/CineMood/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/CineMood/pkg/errors"
)

// RecommendationService is the subset of *recommendation.Service used here.
type RecommendationService interface {
	Detect(ctx context.Context, scores emotion.Scores) (recommendation.Result, error)
	RecommendFor(ctx context.Context, e emotion.Emotion) recommendation.Result
}

// TableSource exposes the current movie table.
type TableSource interface {
	Current() *movie.Table
}

// EmotionHandler serves expression detection, classification and dataset
// statistics.
type EmotionHandler struct {
	service     RecommendationService
	tables      TableSource
	logger      logging.Logger
	maxBodySize int64
}

// NewEmotionHandler creates a new EmotionHandler.  A non-positive maxBodySize
// selects DefaultMaxBodySize.
func NewEmotionHandler(service RecommendationService, tables TableSource, logger logging.Logger, maxBodySize int64) *EmotionHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}
	return &EmotionHandler{
		service:     service,
		tables:      tables,
		logger:      logger,
		maxBodySize: maxBodySize,
	}
}

// DetectRequest carries face-expression confidences keyed by expression name.
type DetectRequest struct {
	Expressions map[string]float64 `json:"expressions" validate:"dive,keys,required,endkeys,gte=0"`
}

// DetectEmotion handles POST /detect_emotion/.
func (h *EmotionHandler) DetectEmotion(w http.ResponseWriter, r *http.Request) {
	var req DetectRequest
	if err := decodeJSON(w, r, h.maxBodySize, &req); err != nil && err != errEmptyBody {
		h.logger.Warn("Rejected detect request", logging.Err(err))
		writeError(w, err)
		return
	}
	if len(req.Expressions) == 0 {
		writeError(w, emotion.ErrEmptyInput)
		return
	}
	if err := validateStruct(&req); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.service.Detect(r.Context(), emotion.Scores(req.Expressions))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Response())
}

// Recommend handles GET /api/v1/recommendations/{emotion}.
func (h *EmotionHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	label := chi.URLParam(r, "emotion")
	res := h.service.RecommendFor(r.Context(), emotion.Normalize(label))
	writeJSON(w, http.StatusOK, res.Response())
}

// ClassifyRequest asks for the emotion of a genre string or the normalized
// form of an expression label.  Exactly one field must be set.
type ClassifyRequest struct {
	Genres *string `json:"genres" validate:"required_without=Label,excluded_with=Label"`
	Label  *string `json:"label" validate:"required_without=Genres"`
}

// ClassifyResponse is the result of a classification.
type ClassifyResponse struct {
	Emotion   string `json:"emotion"`
	Canonical bool   `json:"canonical"`
}

// Classify handles POST /api/v1/classify.
func (h *EmotionHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := decodeJSON(w, r, h.maxBodySize, &req); err != nil {
		if err == errEmptyBody {
			err = errors.InvalidParam("request body is required")
		}
		writeError(w, err)
		return
	}
	if err := validateStruct(&req); err != nil {
		writeError(w, err)
		return
	}

	var e emotion.Emotion
	if req.Genres != nil {
		e = emotion.DeriveEmotion(*req.Genres)
	} else {
		e = emotion.Normalize(*req.Label)
	}
	writeJSON(w, http.StatusOK, ClassifyResponse{Emotion: e.String(), Canonical: e.IsCanonical()})
}

// DatasetStats handles GET /api/v1/dataset/stats.
func (h *EmotionHandler) DatasetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.tables.Current().Stats())
}

//Personal.AI order the ending
