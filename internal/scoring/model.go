package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/jselabs/leaserisk/internal/features"
	"github.com/jselabs/leaserisk/internal/models"
)

// ErrMissingFeature marks a model column absent from the derived vector
var ErrMissingFeature = errors.New("feature required by the model was not derived")

// Fixed tier thresholds on the positive-class probability
const (
	veryHighThreshold = 0.75
	highThreshold     = 0.5
)

// artifact is the serialized classifier: the trained feature-name list in
// column order (names may still carry the "(%)" marker), one weight and one
// baseline value per feature, and the intercept. The model scores as a
// logistic over the weighted margin.
type artifact struct {
	Features  []string  `json:"features"`
	Weights   []float64 `json:"weights"`
	Baseline  []float64 `json:"baseline"`
	Intercept float64   `json:"intercept"`
}

// Model is the pretrained binary classifier, loaded once at startup and
// read-only afterwards
type Model struct {
	features  []string
	weights   []float64
	baseline  []float64
	intercept float64
}

// LoadModel reads the classifier artifact and validates its trained column
// list against the declared feature schema, so schema drift surfaces at
// startup rather than on the first request.
func LoadModel(path string) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}

	var a artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact: %w", err)
	}
	if len(a.Features) == 0 {
		return nil, fmt.Errorf("model artifact declares no features")
	}
	if len(a.Weights) != len(a.Features) || len(a.Baseline) != len(a.Features) {
		return nil, fmt.Errorf("model artifact is inconsistent: %d features, %d weights, %d baseline values",
			len(a.Features), len(a.Weights), len(a.Baseline))
	}

	known := make(map[string]struct{})
	for _, name := range features.Schema() {
		known[name] = struct{}{}
	}

	m := &Model{
		features:  make([]string, len(a.Features)),
		weights:   a.Weights,
		baseline:  a.Baseline,
		intercept: a.Intercept,
	}
	for i, name := range a.Features {
		normalized := features.NormalizeName(name)
		if _, ok := known[normalized]; !ok {
			return nil, fmt.Errorf("model expects feature %q which the derivation schema does not produce", normalized)
		}
		m.features[i] = normalized
	}

	return m, nil
}

// Features returns the trained column names in scoring order
func (m *Model) Features() []string {
	out := make([]string, len(m.features))
	copy(out, m.features)
	return out
}

// Score selects the vector's features in trained column order and returns the
// positive-class probability with its risk tier. A feature the vector lacks
// is an input-schema error naming the column.
func (m *Model) Score(vec *features.Vector) (float64, models.RiskLevel, error) {
	margin := m.intercept
	for i, name := range m.features {
		value, ok := vec.Get(name)
		if !ok {
			return 0, "", fmt.Errorf("%w: %s", ErrMissingFeature, name)
		}
		margin += m.weights[i] * value
	}

	probability := 1 / (1 + math.Exp(-margin))
	return probability, tierFor(probability), nil
}

func tierFor(probability float64) models.RiskLevel {
	switch {
	case probability > veryHighThreshold:
		return models.RiskLevelVeryHigh
	case probability > highThreshold:
		return models.RiskLevelHigh
	default:
		return models.RiskLevelNormal
	}
}
