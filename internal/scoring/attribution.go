package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/jselabs/leaserisk/internal/features"
	"github.com/jselabs/leaserisk/internal/models"
)

const maxContributions = 3

const (
	increasesRisk = "increases risk"
	decreasesRisk = "decreases risk"
)

// Explain decomposes the score into per-feature contributions and returns the
// top entries by absolute contribution. For a linear margin the decomposition
// is exact: w_i * (x_i - baseline_i) sums to the margin's deviation from the
// baseline expectation. Ties keep trained column order.
func (m *Model) Explain(vec *features.Vector) ([]models.FeatureContribution, error) {
	type contribution struct {
		name   string
		value  float64
		signed float64
	}

	all := make([]contribution, len(m.features))
	for i, name := range m.features {
		value, ok := vec.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingFeature, name)
		}
		all[i] = contribution{
			name:   name,
			value:  value,
			signed: m.weights[i] * (value - m.baseline[i]),
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return math.Abs(all[i].signed) > math.Abs(all[j].signed)
	})

	top := maxContributions
	if len(all) < top {
		top = len(all)
	}

	explanation := make([]models.FeatureContribution, 0, top)
	for _, c := range all[:top] {
		description := decreasesRisk
		if c.signed > 0 {
			description = increasesRisk
		}
		explanation = append(explanation, models.FeatureContribution{
			Feature:      c.name,
			Value:        c.value,
			Contribution: round4(c.signed),
			Description:  description,
		})
	}

	return explanation, nil
}

func round4(x float64) float64 {
	return math.Round(x*1e4) / 1e4
}
