package fairness

// GroupStats holds the per-group rates an audit is computed from.
// Rates over an empty filtered subset are 0, not NaN: every group
// present in the dataset gets an entry, so a group with no
// ground-truth-positive rows still reports TPR = 0 instead of
// silently dropping out of the max-min range.
type GroupStats struct {
	Group        string  `json:"group"`
	Count        int     `json:"count"`
	PositiveRate float64 `json:"positive_rate"`
	TPR          float64 `json:"tpr"`
	FPR          float64 `json:"fpr"`
	Precision    float64 `json:"precision"`
}

type groupAccum struct {
	n           int
	sumPred     float64
	posN        int
	posSumPred  float64
	negN        int
	negSumPred  float64
	predPosN    int
	predPosTrue int
}

// Aggregate computes GroupStats for every distinct value of the
// sensitive column, in first-seen order. Inputs are parallel slices:
// one sensitive-group label, ground-truth label, and prediction per
// row.
func Aggregate(groups []string, yTrue, yPred []float64) []GroupStats {
	accums := make(map[string]*groupAccum, 4)
	order := make([]string, 0, 4)

	for i, g := range groups {
		a, ok := accums[g]
		if !ok {
			a = &groupAccum{}
			accums[g] = a
			order = append(order, g)
		}

		a.n++
		a.sumPred += yPred[i]

		if yTrue[i] == 1 {
			a.posN++
			a.posSumPred += yPred[i]
		}
		if yTrue[i] == 0 {
			a.negN++
			a.negSumPred += yPred[i]
		}
		if yPred[i] == 1 {
			a.predPosN++
			if yTrue[i] == 1 {
				a.predPosTrue++
			}
		}
	}

	stats := make([]GroupStats, 0, len(order))
	for _, g := range order {
		a := accums[g]
		stats = append(stats, GroupStats{
			Group:        g,
			Count:        a.n,
			PositiveRate: safeDiv(a.sumPred, float64(a.n)),
			TPR:          safeDiv(a.posSumPred, float64(a.posN)),
			FPR:          safeDiv(a.negSumPred, float64(a.negN)),
			Precision:    safeDiv(float64(a.predPosTrue), float64(a.predPosN)),
		})
	}
	return stats
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
