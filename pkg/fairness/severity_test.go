package fairness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateBiasChecks_Order(t *testing.T) {
	results := EvaluateBiasChecks(MetricSet{})
	require.Len(t, results, 5)

	assert.Equal(t, "systematic_bias", results[0].Check)
	assert.Equal(t, "opportunity_bias", results[1].Check)
	assert.Equal(t, "error_bias", results[2].Check)
	assert.Equal(t, "outcome_quality_bias", results[3].Check)
	assert.Equal(t, "inequality_bias", results[4].Check)

	for _, r := range results {
		assert.Equal(t, SeverityNone, r.Severity)
		assert.NotEmpty(t, r.Description)
	}
}

func TestEvaluateBiasChecks_SystematicLadder(t *testing.T) {
	cases := []struct {
		dpDiff float64
		want   Severity
	}{
		{0.0, SeverityNone},
		{0.049, SeverityNone},
		{0.05, SeverityMinor},
		{0.149, SeverityMinor},
		{0.15, SeverityModerate},
		{0.249, SeverityModerate},
		{0.25, SeveritySevere},
		{0.9, SeveritySevere},
	}

	for _, c := range cases {
		results := EvaluateBiasChecks(MetricSet{MetricDPDiff: c.dpDiff})
		assert.Equal(t, c.want, results[0].Severity, "dp_diff=%v", c.dpDiff)
		assert.InDelta(t, c.dpDiff, results[0].Result, 1e-12)
	}
}

func TestEvaluateBiasChecks_InequalityUsesTheil(t *testing.T) {
	results := EvaluateBiasChecks(MetricSet{MetricTheilIndex: 0.3})
	assert.Equal(t, SeveritySevere, results[4].Severity)

	results = EvaluateBiasChecks(MetricSet{MetricTheilIndex: 0.12})
	assert.Equal(t, SeverityMinor, results[4].Severity)
}

func TestLegalCompliance(t *testing.T) {
	r := LegalCompliance(MetricSet{MetricDPRatio: 0.85})
	assert.Equal(t, CompliancePass, r.Status)
	assert.InDelta(t, 0.85, r.Result, 1e-12)

	r = LegalCompliance(MetricSet{MetricDPRatio: 0.75})
	assert.Equal(t, ComplianceFail, r.Status)

	// The floor itself passes.
	r = LegalCompliance(MetricSet{MetricDPRatio: 0.8})
	assert.Equal(t, CompliancePass, r.Status)
}

func TestRecommendMitigation_NoIssues(t *testing.T) {
	recs := RecommendMitigation(MetricSet{
		MetricDPDiff:     0.05,
		MetricDPRatio:    0.95,
		MetricEODiff:     0.1,
		MetricFPRDiff:    0.1,
		MetricTheilIndex: 0.1,
	})
	require.Len(t, recs, 1)
	assert.Equal(t, "No Major Issues", recs[0].Issue)
	assert.Equal(t, RecommendationLow, recs[0].Severity)
}

func TestRecommendMitigation_AllRulesInDeclarationOrder(t *testing.T) {
	recs := RecommendMitigation(MetricSet{
		MetricDPDiff:     0.3,
		MetricDPRatio:    0.5,
		MetricEODiff:     0.3,
		MetricFPRDiff:    0.3,
		MetricTheilIndex: 0.5,
	})
	require.Len(t, recs, 5)

	assert.Equal(t, "Demographic Parity Disparity", recs[0].Issue)
	assert.Equal(t, "Equal Opportunity Gap", recs[1].Issue)
	assert.Equal(t, "Error Rate Disparity", recs[2].Issue)
	assert.Equal(t, "Legal Compliance (80% Rule)", recs[3].Issue)
	assert.Equal(t, "High Outcome Inequality", recs[4].Issue)

	assert.Equal(t, RecommendationCritical, recs[3].Severity)
}

func TestRecommendMitigation_ThresholdsExclusive(t *testing.T) {
	// Values exactly at the threshold do not trigger.
	recs := RecommendMitigation(MetricSet{
		MetricDPDiff:     0.15,
		MetricDPRatio:    0.8,
		MetricEODiff:     0.20,
		MetricFPRDiff:    0.20,
		MetricTheilIndex: 0.25,
	})
	require.Len(t, recs, 1)
	assert.Equal(t, "No Major Issues", recs[0].Issue)
}

func TestRecommendMitigation_MissingRatioReadsAsZero(t *testing.T) {
	// An absent dp_ratio is an absent signal (0), which fails the
	// 80% rule rather than being fatal.
	recs := RecommendMitigation(MetricSet{})
	require.Len(t, recs, 1)
	assert.Equal(t, "Legal Compliance (80% Rule)", recs[0].Issue)
}
