// Package value computes dashboard figures for a project: normalized metric
// progress, ROI contributions, deliverable status tallies and the recent
// measurement window. Everything here is a pure function over data the
// repositories have already loaded; nothing degrades to an error, degenerate
// inputs resolve to zero or absent.
package value

import (
	"sort"

	"valuepm/internal/model"
)

// ProgressPercent reports how far current has moved from baseline toward
// target, as a percentage clamped to [0,100]. A metric with no measurement
// yet, or with target == baseline, reports 0.
func ProgressPercent(baseline, target float64, current *float64) float64 {
	if current == nil {
		return 0
	}
	if target == baseline {
		return 0
	}
	progress := (*current - baseline) / (target - baseline) * 100
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// ContributionFunc turns a metric's baseline and current value into an ROI
// contribution. The second return is false when the metric type contributes
// nothing.
type ContributionFunc func(baseline, current float64) (float64, bool)

// roiRules maps each metric type to its contribution rule. Currency metrics
// contribute their raw current value (an absolute figure, not a delta);
// percentage metrics contribute relative improvement over a positive
// baseline; time, count and score metrics are not dollarized.
var roiRules = map[model.MetricType]ContributionFunc{
	model.MetricTypeCurrency: func(_, current float64) (float64, bool) {
		return current, true
	},
	model.MetricTypePercentage: func(baseline, current float64) (float64, bool) {
		if baseline <= 0 {
			return 0, false
		}
		return (current - baseline) / baseline, true
	},
}

// ROIContribution returns the metric's contribution to portfolio ROI, or
// false when the metric has no measurement or its type carries no ROI rule.
func ROIContribution(metricType model.MetricType, baseline float64, current *float64) (float64, bool) {
	if current == nil {
		return 0, false
	}
	rule, ok := roiRules[metricType]
	if !ok {
		return 0, false
	}
	return rule(baseline, *current)
}

// MetricReading is the slice of a metric the portfolio computation needs.
type MetricReading struct {
	MetricType model.MetricType
	Baseline   float64
	Current    *float64
}

// PortfolioROI sums ROI contributions over the given readings.
func PortfolioROI(readings []MetricReading) float64 {
	total := 0.0
	for _, r := range readings {
		if c, ok := ROIContribution(r.MetricType, r.Baseline, r.Current); ok {
			total += c
		}
	}
	return total
}

// DeliverableStatusCounts tallies deliverables by status.
func DeliverableStatusCounts(deliverables []model.Deliverable) map[string]int {
	counts := make(map[string]int)
	for _, d := range deliverables {
		counts[string(d.Status)]++
	}
	return counts
}

// RecentMeasurements returns at most n measurements ordered by descending
// MeasuredAt. The sort is stable so equal timestamps keep their input order.
func RecentMeasurements(measurements []model.MeasurementWithMetric, n int) []model.MeasurementWithMetric {
	if n <= 0 {
		return nil
	}
	sorted := make([]model.MeasurementWithMetric, len(measurements))
	copy(sorted, measurements)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MeasuredAt.After(sorted[j].MeasuredAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
