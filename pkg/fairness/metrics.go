package fairness

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Metric names as they appear in reports. The set is fixed; consumers
// asking for anything else get 0 (absent signal, never fatal).
const (
	MetricDPDiff        = "dp_diff"
	MetricDPRatio       = "dp_ratio"
	MetricEODiff        = "eo_diff"
	MetricFPRDiff       = "fpr_diff"
	MetricEqualizedOdds = "equalized_odds"
	MetricPPDiff        = "pp_diff"
	MetricTheilIndex    = "theil_index"
	MetricAtkinsonIndex = "atkinson_index"
)

// DefaultAtkinsonEpsilon is the inequality-aversion parameter used by
// the audit.
const DefaultAtkinsonEpsilon = 0.5

// logGuard keeps the geometric-mean path of the Atkinson index away
// from log(0).
const logGuard = 1e-9

// MetricSet maps metric names to full-precision values. Only the
// final report rounds for display.
type MetricSet map[string]float64

// Value returns the named metric, or 0 when absent.
func (m MetricSet) Value(name string) float64 {
	return m.ValueOr(name, 0)
}

// ValueOr returns the named metric, or def when absent.
func (m MetricSet) ValueOr(name string, def float64) float64 {
	if v, ok := m[name]; ok {
		return v
	}
	return def
}

// Rounded returns a display copy with every value rounded to the
// given number of decimals.
func (m MetricSet) Rounded(decimals int) MetricSet {
	out := make(MetricSet, len(m))
	for k, v := range m {
		out[k] = roundTo(v, decimals)
	}
	return out
}

// ComputeMetrics derives the full metric set from per-group stats and
// the raw prediction vector (the inequality indices work on raw
// predictions, everything else on group rates).
func ComputeMetrics(stats []GroupStats, yPred []float64) MetricSet {
	return MetricSet{
		MetricDPDiff:        DemographicParityDifference(stats),
		MetricDPRatio:       DemographicParityRatio(stats),
		MetricEODiff:        EqualOpportunityDifference(stats),
		MetricFPRDiff:       FalsePositiveRateDifference(stats),
		MetricEqualizedOdds: EqualizedOddsDifference(stats),
		MetricPPDiff:        PredictiveParityDifference(stats),
		MetricTheilIndex:    TheilIndex(yPred),
		MetricAtkinsonIndex: AtkinsonIndex(yPred, DefaultAtkinsonEpsilon),
	}
}

func rateRange(stats []GroupStats, rate func(GroupStats) float64) (min, max float64) {
	if len(stats) == 0 {
		return 0, 0
	}
	min, max = rate(stats[0]), rate(stats[0])
	for _, s := range stats[1:] {
		v := rate(s)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// DemographicParityDifference is the spread of positive-prediction
// rates across groups: max - min.
func DemographicParityDifference(stats []GroupStats) float64 {
	min, max := rateRange(stats, func(s GroupStats) float64 { return s.PositiveRate })
	return max - min
}

// DemographicParityRatio is min/max of positive-prediction rates,
// 0 when the max is 0 (the 80% rule compares against this ratio).
func DemographicParityRatio(stats []GroupStats) float64 {
	min, max := rateRange(stats, func(s GroupStats) float64 { return s.PositiveRate })
	return safeDiv(min, max)
}

// EqualOpportunityDifference is the TPR spread across groups.
func EqualOpportunityDifference(stats []GroupStats) float64 {
	min, max := rateRange(stats, func(s GroupStats) float64 { return s.TPR })
	return max - min
}

// FalsePositiveRateDifference is the FPR spread across groups.
func FalsePositiveRateDifference(stats []GroupStats) float64 {
	min, max := rateRange(stats, func(s GroupStats) float64 { return s.FPR })
	return max - min
}

// EqualizedOddsDifference is the worse of the TPR and FPR spreads.
func EqualizedOddsDifference(stats []GroupStats) float64 {
	return math.Max(EqualOpportunityDifference(stats), FalsePositiveRateDifference(stats))
}

// PredictiveParityDifference is the precision spread across groups.
// Groups without predicted-positive rows carry precision 0.
func PredictiveParityDifference(stats []GroupStats) float64 {
	min, max := rateRange(stats, func(s GroupStats) float64 { return s.Precision })
	return max - min
}

// TheilIndex is the entropy-based inequality of the prediction vector,
// normalized by ln(n) and clamped to [0, 1]. Zero or negative ratios
// contribute nothing to the entropy sum, which keeps log out of 0.
func TheilIndex(yPred []float64) float64 {
	n := len(yPred)
	if n == 0 {
		return 0
	}
	mu := stat.Mean(yPred, nil)
	if mu <= 0 {
		return 0
	}

	var sum float64
	var kept int
	for _, y := range yPred {
		r := y / mu
		if r <= 0 {
			continue
		}
		sum += r * math.Log(r)
		kept++
	}
	if kept == 0 {
		return 0
	}

	norm := 1.0
	if n > 1 {
		norm = math.Log(float64(n))
	}
	return clamp(sum/float64(kept)/norm, 0, 1)
}

// AtkinsonIndex is the welfare-loss inequality of the prediction
// vector for a given inequality aversion epsilon, clamped to [0, 1].
func AtkinsonIndex(yPred []float64, epsilon float64) float64 {
	if len(yPred) == 0 {
		return 0
	}
	mu := stat.Mean(yPred, nil)
	if mu <= 0 {
		return 0
	}

	if epsilon == 1 {
		// Geometric-mean form.
		var sumLog float64
		for _, y := range yPred {
			sumLog += math.Log(y + logGuard)
		}
		gm := math.Exp(sumLog / float64(len(yPred)))
		return clamp(1-gm/mu, 0, 1)
	}

	var sum float64
	for _, y := range yPred {
		sum += math.Pow(y, 1-epsilon)
	}
	term := sum / float64(len(yPred))
	if term <= 0 {
		return 0
	}
	return clamp(1-math.Pow(term, 1/(1-epsilon))/mu, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
