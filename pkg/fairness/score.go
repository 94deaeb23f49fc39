package fairness

// Bias level labels returned by InterpretBias.
const (
	BiasLevelLow      = "Low Bias"
	BiasLevelModerate = "Moderate Bias"
	BiasLevelHigh     = "High Bias"
)

// Score aggregates the core bias metrics into a single 0-100 score
// (higher is fairer), rounded to 2 decimals. The inequality indices
// and equalized_odds are reported separately rather than scored, to
// avoid double-penalizing correlated signals.
func Score(m MetricSet) float64 {
	penalties := []float64{
		clamp(m.Value(MetricDPDiff), 0, 1),
		clamp(1-m.ValueOr(MetricDPRatio, 1), 0, 1),
		clamp(m.Value(MetricEODiff), 0, 1),
		clamp(m.Value(MetricFPRDiff), 0, 1),
		clamp(m.Value(MetricPPDiff), 0, 1),
	}

	var sum float64
	for _, p := range penalties {
		sum += p
	}
	score := (1 - sum/float64(len(penalties))) * 100

	return roundTo(clamp(score, 0, 100), 2)
}

// InterpretBias maps a fairness score to its bias level label.
// Bucket lower bounds are inclusive.
func InterpretBias(score float64) string {
	switch {
	case score >= 85:
		return BiasLevelLow
	case score >= 65:
		return BiasLevelModerate
	default:
		return BiasLevelHigh
	}
}
