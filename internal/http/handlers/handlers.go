package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/socialbot-ai/backend/internal/ai"
	"github.com/socialbot-ai/backend/internal/models"
	"github.com/socialbot-ai/backend/internal/quality"
	"github.com/socialbot-ai/backend/internal/respond"
	"github.com/socialbot-ai/backend/internal/training"
)

// Store is the persistence surface the handlers need. *db.Store implements
// it; tests substitute in-memory fakes.
type Store interface {
	Ping(ctx context.Context) error
	GetBrandVoice(ctx context.Context, businessID string) (models.BrandVoiceRecord, error)
	InsertResponse(ctx context.Context, r models.StoredResponse) error
	ListResponses(ctx context.Context, businessID string, limit int) ([]models.StoredResponse, error)
}

type Handler struct {
	Store    Store
	Engine   *respond.Engine
	Trainer  *training.Trainer
	Monitor  *quality.Monitor
	Logger   zerolog.Logger
	AdminKey string
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type RespondRequest struct {
	BusinessID  string             `json:"business_id" binding:"required"`
	Interaction models.Interaction `json:"interaction" binding:"required"`
	BrandVoice  *models.BrandVoice `json:"brand_voice,omitempty"`
}

// @Summary Generate a reply for one customer interaction
// @Description Runs the analyze/generate/assess pipeline and returns the best candidate
// @Tags respond
// @Accept json
// @Produce json
// @Param body body RespondRequest true "interaction plus brand voice (or stored voice by business id)"
// @Success 200 {object} models.GenerationResult
// @Failure 400 {object} map[string]any
// @Failure 502 {object} map[string]any
// @Router /api/respond [post]
func (h *Handler) Respond(c *gin.Context) {
	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	voice := req.BrandVoice
	if voice == nil {
		rec, err := h.Store.GetBrandVoice(c.Request.Context(), req.BusinessID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				writeError(c, http.StatusNotFound, "NOT_FOUND", "No brand voice stored for business", nil)
				return
			}
			writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load brand voice", err.Error())
			return
		}
		voice = &rec.Voice
	}

	result, err := h.Engine.Respond(c.Request.Context(), req.Interaction, *voice)
	if err != nil {
		h.writeGenerationError(c, err)
		return
	}

	responseID := uuid.NewString()
	h.persistResult(c.Request.Context(), responseID, req.BusinessID, req.Interaction, result)

	c.JSON(http.StatusOK, result)
}

// persistResult stores the generated reply and appends a quality metric.
// Both writes are best-effort: a storage failure must not throw away a
// reply the model already produced.
func (h *Handler) persistResult(ctx context.Context, responseID, businessID string, interaction models.Interaction, result models.GenerationResult) {
	stored := models.StoredResponse{
		ID:                  responseID,
		BusinessID:          businessID,
		InteractionID:       interaction.ID,
		Platform:            interaction.Platform,
		Type:                interaction.Type,
		Response:            result.Response,
		OverallScore:        result.Quality.OverallScore,
		Model:               result.Model,
		RequiresHumanReview: result.RequiresHumanReview,
		CreatedAt:           time.Now().UTC(),
	}
	if err := h.Store.InsertResponse(ctx, stored); err != nil {
		h.Logger.Warn().Err(err).Str("response_id", responseID).Msg("failed to store response")
	}

	approval := 1.0
	if result.RequiresHumanReview {
		approval = 0.0
	}
	metric := models.QualityMetric{
		ID:                uuid.NewString(),
		ResponseID:        responseID,
		BusinessID:        businessID,
		QualityScore:      result.Quality.OverallScore,
		HumanApprovalRate: approval,
		Model:             result.Model,
		ProcessingTime:    result.ProcessingTime,
		CreatedAt:         time.Now().UTC(),
	}
	if err := h.Monitor.Track(ctx, metric); err != nil {
		h.Logger.Warn().Err(err).Str("response_id", responseID).Msg("failed to track quality metric")
	}
}

func (h *Handler) writeGenerationError(c *gin.Context, err error) {
	var rle ai.RateLimitError
	var modelErr *ai.ModelError
	switch {
	case errors.Is(err, respond.ErrInvalidInput):
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid interaction or brand voice", err.Error())
	case errors.As(err, &rle):
		writeError(c, http.StatusTooManyRequests, "RATE_LIMITED", "Model rate limited", rle.Error())
	case errors.As(err, &modelErr):
		writeError(c, http.StatusBadGateway, "MODEL_ERROR", "Hosted model call failed", modelErr.Error())
	default:
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate response", err.Error())
	}
}

// @Summary Get the stored brand voice
// @Tags brand-voice
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {object} models.BrandVoiceRecord
// @Failure 404 {object} map[string]any
// @Router /api/businesses/{id}/brand-voice [get]
func (h *Handler) BrandVoiceGet(c *gin.Context) {
	rec, err := h.Store.GetBrandVoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "No brand voice stored for business", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load brand voice", err.Error())
		return
	}
	c.JSON(http.StatusOK, rec)
}

// @Summary Train a brand voice profile
// @Tags brand-voice
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param body body models.TrainingData true "training data"
// @Success 200 {object} models.BrandVoiceRecord
// @Failure 400 {object} map[string]any
// @Router /api/businesses/{id}/brand-voice/train [post]
func (h *Handler) BrandVoiceTrain(c *gin.Context) {
	var data models.TrainingData
	if err := c.ShouldBindJSON(&data); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	rec, err := h.Trainer.Train(c.Request.Context(), c.Param("id"), data)
	if err != nil {
		h.writeGenerationError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

type UpdateVoiceRequest struct {
	ApprovedResponses []string `json:"approved_responses"`
}

// @Summary Merge newly approved responses into the stored brand voice
// @Tags brand-voice
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param body body UpdateVoiceRequest true "newly approved responses"
// @Success 200 {object} models.BrandVoiceRecord
// @Failure 404 {object} map[string]any
// @Router /api/businesses/{id}/brand-voice/update [post]
func (h *Handler) BrandVoiceUpdate(c *gin.Context) {
	var req UpdateVoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	rec, err := h.Trainer.Update(c.Request.Context(), c.Param("id"), req.ApprovedResponses)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "No brand voice stored for business", nil)
			return
		}
		h.writeGenerationError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// @Summary Quality report for one business
// @Tags quality
// @Produce json
// @Param id path string true "Business ID"
// @Param timeframe query string false "day, week or month" default(week)
// @Success 200 {object} quality.Report
// @Failure 400 {object} map[string]any
// @Router /api/businesses/{id}/quality/report [get]
func (h *Handler) QualityReport(c *gin.Context) {
	timeframe := c.DefaultQuery("timeframe", "week")
	report, err := h.Monitor.GetReport(c.Request.Context(), c.Param("id"), timeframe)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Failed to build quality report", err.Error())
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary Recent generated responses for one business
// @Tags responses
// @Produce json
// @Param id path string true "Business ID"
// @Param limit query int false "max rows" default(50)
// @Success 200 {object} map[string]any
// @Router /api/businesses/{id}/responses [get]
func (h *Handler) ResponsesList(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := h.Store.ListResponses(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list responses", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "limit": limit})
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
