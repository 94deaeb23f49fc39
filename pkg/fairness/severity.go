package fairness

// Severity is the ordinal bucket a bias check result falls into.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// biasCheck maps one metric to a severity via an ascending threshold
// ladder: value < Ladder[0] is none, < Ladder[1] minor, < Ladder[2]
// moderate, else severe. Thresholds are fixed constants, independent
// of dataset size.
type biasCheck struct {
	ID           string
	Metric       string
	Ladder       [3]float64
	Descriptions map[Severity]string
}

// Checks are evaluated in declaration order.
var biasChecks = []biasCheck{
	{
		ID:     "systematic_bias",
		Metric: MetricDPDiff,
		Ladder: [3]float64{0.05, 0.15, 0.25},
		Descriptions: map[Severity]string{
			SeverityNone:     "No systematic bias detected",
			SeverityMinor:    "Minor systematic bias (<10% difference)",
			SeverityModerate: "Moderate bias (10-25% difference)",
			SeveritySevere:   "Severe systematic bias (>25% difference)",
		},
	},
	{
		ID:     "opportunity_bias",
		Metric: MetricEODiff,
		Ladder: [3]float64{0.10, 0.15, 0.30},
		Descriptions: map[Severity]string{
			SeverityNone:     "Equal opportunity for qualified individuals",
			SeverityMinor:    "Slight opportunity disparity (<15%)",
			SeverityModerate: "Moderate opportunity gap (15-30%)",
			SeveritySevere:   "Severe opportunity disparity (>30%)",
		},
	},
	{
		ID:     "error_bias",
		Metric: MetricFPRDiff,
		Ladder: [3]float64{0.10, 0.15, 0.30},
		Descriptions: map[Severity]string{
			SeverityNone:     "Error rates balanced across groups",
			SeverityMinor:    "Minor error disparity (<15%)",
			SeverityModerate: "Moderate error gap (15-30%)",
			SeveritySevere:   "Severe error disparity (>30%)",
		},
	},
	{
		ID:     "outcome_quality_bias",
		Metric: MetricPPDiff,
		Ladder: [3]float64{0.10, 0.15, 0.30},
		Descriptions: map[Severity]string{
			SeverityNone:     "Predictions equally reliable",
			SeverityMinor:    "Minor precision disparity (<15%)",
			SeverityModerate: "Moderate precision gap (15-30%)",
			SeveritySevere:   "Severe precision disparity (>30%)",
		},
	},
	{
		ID:     "inequality_bias",
		Metric: MetricTheilIndex,
		Ladder: [3]float64{0.10, 0.15, 0.25},
		Descriptions: map[Severity]string{
			SeverityNone:     "Low outcome inequality",
			SeverityMinor:    "Minor inequality detected",
			SeverityModerate: "Moderate outcome inequality",
			SeveritySevere:   "Severe outcome inequality",
		},
	},
}

// CheckResult is the outcome of one severity check.
type CheckResult struct {
	Check       string   `json:"check"`
	Result      float64  `json:"result"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// EvaluateBiasChecks runs every severity check against the metric
// set, in declaration order.
func EvaluateBiasChecks(m MetricSet) []CheckResult {
	results := make([]CheckResult, 0, len(biasChecks))
	for _, c := range biasChecks {
		v := m.Value(c.Metric)
		sev := c.classify(v)
		results = append(results, CheckResult{
			Check:       c.ID,
			Result:      v,
			Severity:    sev,
			Description: c.Descriptions[sev],
		})
	}
	return results
}

func (c biasCheck) classify(v float64) Severity {
	switch {
	case v < c.Ladder[0]:
		return SeverityNone
	case v < c.Ladder[1]:
		return SeverityMinor
	case v < c.Ladder[2]:
		return SeverityModerate
	default:
		return SeveritySevere
	}
}

// Legal compliance statuses.
const (
	CompliancePass = "PASS"
	ComplianceFail = "FAIL"
)

// legalRatioFloor is the 80% rule: the lowest group selection rate
// must be at least 80% of the highest.
const legalRatioFloor = 0.8

// ComplianceResult is the 80%-rule check outcome.
type ComplianceResult struct {
	Check       string  `json:"check"`
	Result      float64 `json:"result"`
	Status      string  `json:"status"`
	Description string  `json:"description"`
}

// LegalCompliance evaluates the 80% rule against dp_ratio.
func LegalCompliance(m MetricSet) ComplianceResult {
	ratio := m.Value(MetricDPRatio)
	res := ComplianceResult{
		Check:  "legal_compliance",
		Result: ratio,
	}
	if ratio >= legalRatioFloor {
		res.Status = CompliancePass
		res.Description = "Model meets 80% rule requirement"
	} else {
		res.Status = ComplianceFail
		res.Description = "Model violates 80% rule"
	}
	return res
}

// Recommendation severity labels.
const (
	RecommendationLow      = "Low"
	RecommendationMedium   = "Medium"
	RecommendationHigh     = "High"
	RecommendationCritical = "Critical"
)

// Recommendation is one actionable mitigation suggestion.
type Recommendation struct {
	Issue      string `json:"issue"`
	Severity   string `json:"severity"`
	Suggestion string `json:"suggestion"`
}

type mitigationRule struct {
	metric    string
	threshold float64
	below     bool // trigger on value < threshold instead of >
	rec       Recommendation
}

// Rules are evaluated, and recommendations emitted, in declaration
// order regardless of severity.
var mitigationRules = []mitigationRule{
	{
		metric:    MetricDPDiff,
		threshold: 0.15,
		rec: Recommendation{
			Issue:      "Demographic Parity Disparity",
			Severity:   RecommendationHigh,
			Suggestion: "Review decision-making process. Consider re-weighting training data or adjusting thresholds per group.",
		},
	},
	{
		metric:    MetricEODiff,
		threshold: 0.20,
		rec: Recommendation{
			Issue:      "Equal Opportunity Gap",
			Severity:   RecommendationHigh,
			Suggestion: "Qualified individuals from some groups have lower approval rates. Consider fairness-aware retraining.",
		},
	},
	{
		metric:    MetricFPRDiff,
		threshold: 0.20,
		rec: Recommendation{
			Issue:      "Error Rate Disparity",
			Severity:   RecommendationMedium,
			Suggestion: "False positive rates differ significantly. Tune decision thresholds separately per group.",
		},
	},
	{
		metric:    MetricDPRatio,
		threshold: legalRatioFloor,
		below:     true,
		rec: Recommendation{
			Issue:      "Legal Compliance (80% Rule)",
			Severity:   RecommendationCritical,
			Suggestion: "Model may violate employment discrimination laws. Immediate remediation required.",
		},
	},
	{
		metric:    MetricTheilIndex,
		threshold: 0.25,
		rec: Recommendation{
			Issue:      "High Outcome Inequality",
			Severity:   RecommendationMedium,
			Suggestion: "Outcomes are concentrated in specific groups. Consider stratified fairness constraints.",
		},
	},
}

// RecommendMitigation emits one recommendation per triggered rule,
// or a single no-issues entry when nothing triggers.
func RecommendMitigation(m MetricSet) []Recommendation {
	recs := make([]Recommendation, 0, len(mitigationRules))
	for _, r := range mitigationRules {
		v := m.Value(r.metric)
		triggered := v > r.threshold
		if r.below {
			triggered = v < r.threshold
		}
		if triggered {
			recs = append(recs, r.rec)
		}
	}

	if len(recs) == 0 {
		recs = append(recs, Recommendation{
			Issue:      "No Major Issues",
			Severity:   RecommendationLow,
			Suggestion: "Model appears fair across measured metrics. Continue monitoring during deployment.",
		})
	}
	return recs
}
