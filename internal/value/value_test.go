package value

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"valuepm/internal/model"
)

func fp(v float64) *float64 { return &v }

func TestProgressPercent_NoMeasurement(t *testing.T) {
	assert.Equal(t, 0.0, ProgressPercent(10, 100, nil))
}

func TestProgressPercent_DegenerateRange(t *testing.T) {
	// target == baseline would divide by zero; progress is defined as 0.
	assert.Equal(t, 0.0, ProgressPercent(50, 50, fp(75)))
}

func TestProgressPercent_Nominal(t *testing.T) {
	// System availability: 95% baseline toward 99.9% target, currently 99.5%.
	got := ProgressPercent(95.0, 99.9, fp(99.5))
	assert.InDelta(t, 91.84, got, 0.01)
}

func TestProgressPercent_ClampsBelowZero(t *testing.T) {
	// Cost metric regressing past baseline: raw ratio is negative.
	assert.Equal(t, 0.0, ProgressPercent(10000, 8000, fp(12000)))
}

func TestProgressPercent_ClampsAboveHundred(t *testing.T) {
	assert.Equal(t, 100.0, ProgressPercent(30, 50, fp(80)))
}

func TestProgressPercent_Bounds(t *testing.T) {
	cases := []struct {
		baseline, target, current float64
	}{
		{0, 100, 50},
		{100, 0, 50},
		{-10, 10, 0},
		{5, 5.0001, 1e9},
		{5, 5.0001, -1e9},
	}
	for _, c := range cases {
		got := ProgressPercent(c.baseline, c.target, fp(c.current))
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 100.0)
	}
}

func TestROIContribution_CurrencyPassthrough(t *testing.T) {
	c, ok := ROIContribution(model.MetricTypeCurrency, 10000, fp(9000))
	assert.True(t, ok)
	assert.Equal(t, 9000.0, c)
}

func TestROIContribution_PercentageImprovement(t *testing.T) {
	c, ok := ROIContribution(model.MetricTypePercentage, 50, fp(75))
	assert.True(t, ok)
	assert.InDelta(t, 0.5, c, 1e-9)
}

func TestROIContribution_PercentageZeroBaseline(t *testing.T) {
	_, ok := ROIContribution(model.MetricTypePercentage, 0, fp(80))
	assert.False(t, ok)
}

func TestROIContribution_NoMeasurement(t *testing.T) {
	_, ok := ROIContribution(model.MetricTypeCurrency, 0, nil)
	assert.False(t, ok)
}

func TestROIContribution_NonDollarizedTypes(t *testing.T) {
	for _, mt := range []model.MetricType{model.MetricTypeTime, model.MetricTypeCount, model.MetricTypeScore} {
		_, ok := ROIContribution(mt, 10, fp(20))
		assert.False(t, ok, "type %s should not contribute", mt)
	}
}

func TestPortfolioROI(t *testing.T) {
	readings := []MetricReading{
		{MetricType: model.MetricTypeCurrency, Baseline: 10000, Current: fp(9000)},
		{MetricType: model.MetricTypePercentage, Baseline: 50, Current: fp(75)},
		{MetricType: model.MetricTypeTime, Baseline: 500, Current: fp(200)},
		{MetricType: model.MetricTypeCurrency, Baseline: 0, Current: nil},
	}
	assert.InDelta(t, 9000.5, PortfolioROI(readings), 1e-9)
}

func TestPortfolioROI_Empty(t *testing.T) {
	assert.Equal(t, 0.0, PortfolioROI(nil))
}

func TestDeliverableStatusCounts(t *testing.T) {
	ds := []model.Deliverable{
		{Status: model.DeliverableStatusPlanned},
		{Status: model.DeliverableStatusPlanned},
		{Status: model.DeliverableStatusCompleted},
	}
	counts := DeliverableStatusCounts(ds)
	assert.Equal(t, map[string]int{"planned": 2, "completed": 1}, counts)
}

func TestDeliverableStatusCounts_Empty(t *testing.T) {
	assert.Empty(t, DeliverableStatusCounts(nil))
}

func TestRecentMeasurements(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var ms []model.MeasurementWithMetric
	for i := 0; i < 8; i++ {
		ms = append(ms, model.MeasurementWithMetric{
			Measurement: model.Measurement{
				ID:         string(rune('a' + i)),
				Value:      float64(i),
				MeasuredAt: base.Add(time.Duration(i) * time.Hour),
			},
		})
	}

	recent := RecentMeasurements(ms, 5)
	assert.Len(t, recent, 5)
	for i := 1; i < len(recent); i++ {
		assert.False(t, recent[i].MeasuredAt.After(recent[i-1].MeasuredAt),
			"measurements must be ordered by descending timestamp")
	}
	assert.Equal(t, 7.0, recent[0].Value)
}

func TestRecentMeasurements_FewerThanWindow(t *testing.T) {
	ms := []model.MeasurementWithMetric{
		{Measurement: model.Measurement{MeasuredAt: time.Now()}},
		{Measurement: model.Measurement{MeasuredAt: time.Now().Add(-time.Hour)}},
	}
	assert.Len(t, RecentMeasurements(ms, 5), 2)
}

func TestRecentMeasurements_DoesNotMutateInput(t *testing.T) {
	now := time.Now()
	ms := []model.MeasurementWithMetric{
		{Measurement: model.Measurement{ID: "old", MeasuredAt: now.Add(-time.Hour)}},
		{Measurement: model.Measurement{ID: "new", MeasuredAt: now}},
	}
	_ = RecentMeasurements(ms, 1)
	assert.Equal(t, "old", ms[0].ID)
}
