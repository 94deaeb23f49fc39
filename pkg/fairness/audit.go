package fairness

import (
	"fmt"

	"github.com/fairlens/fairlens/pkg/dataset"
)

// Columns names the three dataset columns an audit runs over.
type Columns struct {
	Sensitive string
	YTrue     string
	YPred     string
}

// AuditResult is the complete report for one audit invocation. It is
// a value computed top-down from the input dataset; nothing about it
// is retained between calls.
type AuditResult struct {
	DatasetSize         int                 `json:"dataset_size"`
	GroupDistribution   map[string]int      `json:"group_distribution"`
	PositiveRateByGroup map[string]float64  `json:"positive_rate_by_group"`
	Metrics             MetricSet           `json:"metrics"`
	DistributionShift   map[string]KSResult `json:"distribution_shift"`
	FairnessScore       float64             `json:"fairness_score"`
	BiasLevel           string              `json:"bias_level"`
	BiasChecks          []CheckResult       `json:"bias_checks"`
	LegalCompliance     ComplianceResult    `json:"legal_compliance"`
	Mitigation          []Recommendation    `json:"mitigation"`
}

// Audit is the single entry point: it validates the columns, derives
// per-group stats, computes the full metric set, scores it, and
// assembles the report. Everything downstream of validation is pure
// arithmetic over the in-memory dataset, so a single pass always
// suffices.
func Audit(ds *dataset.Dataset, cols Columns) (*AuditResult, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset is required")
	}
	if err := ds.ValidateColumns(cols.Sensitive, cols.YTrue, cols.YPred); err != nil {
		return nil, err
	}

	groups := ds.Strings(cols.Sensitive)
	yTrue, err := ds.Floats(cols.YTrue)
	if err != nil {
		return nil, fmt.Errorf("parsing ground-truth column: %w", err)
	}
	yPred, err := ds.Floats(cols.YPred)
	if err != nil {
		return nil, fmt.Errorf("parsing prediction column: %w", err)
	}

	stats := Aggregate(groups, yTrue, yPred)
	metrics := ComputeMetrics(stats, yPred)

	// Score and severities use full-precision metrics; only the
	// reported copy is rounded.
	score := Score(metrics)

	distribution := make(map[string]int, len(stats))
	positiveRates := make(map[string]float64, len(stats))
	for _, s := range stats {
		distribution[s.Group] = s.Count
		positiveRates[s.Group] = s.PositiveRate
	}

	return &AuditResult{
		DatasetSize:         ds.Size(),
		GroupDistribution:   distribution,
		PositiveRateByGroup: positiveRates,
		Metrics:             metrics.Rounded(4),
		DistributionShift:   KSBiasTest(groups, yPred),
		FairnessScore:       score,
		BiasLevel:           InterpretBias(score),
		BiasChecks:          EvaluateBiasChecks(metrics),
		LegalCompliance:     LegalCompliance(metrics),
		Mitigation:          RecommendMitigation(metrics),
	}, nil
}
