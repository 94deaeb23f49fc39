package fairness

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// KSResult is one pairwise two-sample Kolmogorov-Smirnov comparison,
// rounded to 4 decimals for display.
type KSResult struct {
	Stat   float64 `json:"ks_stat"`
	PValue float64 `json:"p_value"`
}

// KSBiasTest compares the prediction-score distribution of every
// unordered pair of groups. Keys are "A vs B" with A and B in the
// order the groups first appear in the dataset.
func KSBiasTest(groups []string, yPred []float64) map[string]KSResult {
	byGroup := make(map[string][]float64, 4)
	order := make([]string, 0, 4)
	for i, g := range groups {
		if _, ok := byGroup[g]; !ok {
			order = append(order, g)
		}
		byGroup[g] = append(byGroup[g], yPred[i])
	}

	results := make(map[string]KSResult, len(order)*(len(order)-1)/2)
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			d, p := ksTwoSample(byGroup[order[i]], byGroup[order[j]])
			key := fmt.Sprintf("%s vs %s", order[i], order[j])
			results[key] = KSResult{
				Stat:   roundTo(d, 4),
				PValue: roundTo(p, 4),
			}
		}
	}
	return results
}

func ksTwoSample(a, b []float64) (d, p float64) {
	x := append([]float64(nil), a...)
	y := append([]float64(nil), b...)
	sort.Float64s(x)
	sort.Float64s(y)

	d = stat.KolmogorovSmirnov(x, nil, y, nil)
	return d, ksPValue(d, len(x), len(y))
}

// ksPValue is the asymptotic two-sided significance of a two-sample
// KS statistic, using the Kolmogorov distribution series with the
// Numerical Recipes effective-sample-size correction.
func ksPValue(d float64, n1, n2 int) float64 {
	if n1 == 0 || n2 == 0 {
		return 1
	}
	en := math.Sqrt(float64(n1) * float64(n2) / float64(n1+n2))
	lambda := (en + 0.12 + 0.11/en) * d
	if lambda <= 0 {
		return 1
	}

	var sum float64
	sign := 1.0
	for j := 1; j <= 100; j++ {
		term := sign * 2 * math.Exp(-2*float64(j)*float64(j)*lambda*lambda)
		sum += term
		if math.Abs(term) < 1e-10 {
			break
		}
		sign = -sign
	}
	return clamp(sum, 0, 1)
}
