package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jselabs/leaserisk/internal/features"
	"github.com/jselabs/leaserisk/internal/models"
	"github.com/jselabs/leaserisk/internal/scoring"
	"github.com/jselabs/leaserisk/internal/services"
)

// PredictionHandler handles the prediction endpoint
type PredictionHandler struct {
	predictionSvc *services.PredictionService
}

// NewPredictionHandler creates a new PredictionHandler
func NewPredictionHandler(predictionSvc *services.PredictionService) *PredictionHandler {
	return &PredictionHandler{
		predictionSvc: predictionSvc,
	}
}

// PredictAndExplain handles POST /predict_and_explain
func (h *PredictionHandler) PredictAndExplain(c *gin.Context) {
	var req models.ContractInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	result, err := h.predictionSvc.PredictAndExplain(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrModelUnavailable):
			c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
				Error:   "service_unavailable",
				Message: err.Error(),
			})
		case errors.Is(err, features.ErrInvalidMonth), errors.Is(err, scoring.ErrMissingFeature):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "bad_request",
				Message: err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "internal_error",
				Message: err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
