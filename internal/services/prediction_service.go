package services

import (
	"context"
	"errors"
	"math"

	"github.com/jselabs/leaserisk/internal/features"
	"github.com/jselabs/leaserisk/internal/models"
	"github.com/jselabs/leaserisk/internal/narrative"
	"github.com/jselabs/leaserisk/internal/refdata"
	"github.com/jselabs/leaserisk/internal/scoring"
	log "github.com/sirupsen/logrus"
)

// ErrModelUnavailable is returned when the classifier failed to load at
// startup. The process still serves health checks but rejects predictions.
var ErrModelUnavailable = errors.New("risk model is not loaded")

// PredictionService runs the scoring pipeline for one contract:
// derive features, score, explain, then enrich with a narrative.
type PredictionService struct {
	store    *refdata.Store
	model    *scoring.Model
	narrator *narrative.Client
}

// NewPredictionService creates a new PredictionService. A nil model marks
// the service unavailable for predictions.
func NewPredictionService(store *refdata.Store, model *scoring.Model, narrator *narrative.Client) *PredictionService {
	return &PredictionService{
		store:    store,
		model:    model,
		narrator: narrator,
	}
}

// PredictAndExplain scores a contract and returns the prediction with its
// ranked explanation and narrative text. Derivation and scoring errors are
// terminal; narrative failures degrade to a fallback string inside the result.
func (s *PredictionService) PredictAndExplain(ctx context.Context, in models.ContractInput) (*models.FinalResult, error) {
	if s.model == nil {
		return nil, ErrModelUnavailable
	}

	vec, err := features.Derive(in, s.store)
	if err != nil {
		return nil, err
	}

	probability, level, err := s.model.Score(vec)
	if err != nil {
		return nil, err
	}

	explanation, err := s.model.Explain(vec)
	if err != nil {
		return nil, err
	}

	prediction := models.PredictionResult{
		RiskScore:     math.Round(probability*1e4) / 1e4,
		RiskLevel:     level,
		Explanation:   explanation,
		OriginalInput: in,
	}

	text := s.narrator.Narrate(ctx, prediction)
	log.WithFields(log.Fields{
		"risk_score": prediction.RiskScore,
		"risk_level": prediction.RiskLevel,
	}).Debug("contract scored")

	return &models.FinalResult{
		PredictionResult: prediction,
		AIExplanation:    text,
	}, nil
}
