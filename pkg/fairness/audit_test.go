package fairness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairlens/fairlens/pkg/dataset"
)

var auditColumns = Columns{Sensitive: "gender", YTrue: "label", YPred: "prediction"}

func balancedDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(
		[]string{"gender", "label", "prediction"},
		[][]string{
			{"M", "1", "1"},
			{"M", "0", "0"},
			{"F", "1", "1"},
			{"F", "0", "0"},
		})
	require.NoError(t, err)
	return ds
}

func TestAudit_BalancedDataset(t *testing.T) {
	res, err := Audit(balancedDataset(t), auditColumns)
	require.NoError(t, err)

	assert.Equal(t, 4, res.DatasetSize)
	assert.Equal(t, map[string]int{"M": 2, "F": 2}, res.GroupDistribution)
	assert.InDelta(t, 0.5, res.PositiveRateByGroup["M"], 1e-12)
	assert.InDelta(t, 0.5, res.PositiveRateByGroup["F"], 1e-12)

	assert.Zero(t, res.Metrics[MetricDPDiff])
	assert.InDelta(t, 1.0, res.Metrics[MetricDPRatio], 1e-12)
	assert.Zero(t, res.Metrics[MetricEODiff])
	assert.Zero(t, res.Metrics[MetricFPRDiff])
	assert.Zero(t, res.Metrics[MetricPPDiff])

	assert.InDelta(t, 100.0, res.FairnessScore, 1e-12)
	assert.Equal(t, BiasLevelLow, res.BiasLevel)
	assert.Equal(t, CompliancePass, res.LegalCompliance.Status)

	require.Len(t, res.BiasChecks, 5)
	// Group-parity checks are clean; the inequality check sees the
	// 0/1 prediction spread.
	for _, c := range res.BiasChecks[:4] {
		assert.Equal(t, SeverityNone, c.Severity, c.Check)
	}

	ks, ok := res.DistributionShift["M vs F"]
	require.True(t, ok)
	assert.Zero(t, ks.Stat)
	assert.InDelta(t, 1.0, ks.PValue, 1e-12)
}

func TestAudit_BiasedDataset(t *testing.T) {
	// Group "a" is always approved, group "b" never.
	ds, err := dataset.New(
		[]string{"grp", "label", "pred"},
		[][]string{
			{"a", "1", "1"},
			{"a", "0", "1"},
			{"a", "1", "1"},
			{"b", "1", "0"},
			{"b", "0", "0"},
			{"b", "1", "0"},
		})
	require.NoError(t, err)

	res, err := Audit(ds, Columns{Sensitive: "grp", YTrue: "label", YPred: "pred"})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, res.Metrics[MetricDPDiff], 1e-12)
	assert.Zero(t, res.Metrics[MetricDPRatio])
	assert.Equal(t, BiasLevelHigh, res.BiasLevel)
	assert.Equal(t, ComplianceFail, res.LegalCompliance.Status)

	require.NotEmpty(t, res.Mitigation)
	assert.Equal(t, "Demographic Parity Disparity", res.Mitigation[0].Issue)
}

func TestAudit_MissingColumnsFatal(t *testing.T) {
	ds, err := dataset.New(
		[]string{"gender", "label"},
		[][]string{{"M", "1"}})
	require.NoError(t, err)

	_, err = Audit(ds, auditColumns)
	require.Error(t, err)

	var schemaErr *dataset.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"prediction"}, schemaErr.Missing)
}

func TestAudit_NonNumericLabelFatal(t *testing.T) {
	ds, err := dataset.New(
		[]string{"gender", "label", "prediction"},
		[][]string{{"M", "yes", "1"}})
	require.NoError(t, err)

	_, err = Audit(ds, auditColumns)
	assert.Error(t, err)
}

func TestAudit_NilDataset(t *testing.T) {
	_, err := Audit(nil, auditColumns)
	assert.Error(t, err)
}

func TestAudit_SingleGroup(t *testing.T) {
	ds, err := dataset.New(
		[]string{"gender", "label", "prediction"},
		[][]string{
			{"M", "1", "1"},
			{"M", "0", "0"},
		})
	require.NoError(t, err)

	res, err := Audit(ds, auditColumns)
	require.NoError(t, err)

	// One group: every difference degrades to 0, no KS pairs.
	assert.Zero(t, res.Metrics[MetricDPDiff])
	assert.InDelta(t, 1.0, res.Metrics[MetricDPRatio], 1e-12)
	assert.Empty(t, res.DistributionShift)
	assert.InDelta(t, 100.0, res.FairnessScore, 1e-12)
}

func TestAudit_Idempotent(t *testing.T) {
	ds, err := dataset.New(
		[]string{"gender", "label", "prediction"},
		[][]string{
			{"M", "1", "1"},
			{"M", "1", "0"},
			{"F", "1", "1"},
			{"F", "0", "1"},
			{"F", "0", "0"},
		})
	require.NoError(t, err)

	first, err := Audit(ds, auditColumns)
	require.NoError(t, err)
	second, err := Audit(ds, auditColumns)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
