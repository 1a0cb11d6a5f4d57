package service

import (
	"valuepm/internal/model"
)

// MetricTemplate is a starter metric seeded into new projects.
type MetricTemplate struct {
	Name                 string
	Description          string
	Category             model.ValueCategory
	MetricType           model.MetricType
	TargetValue          float64
	BaselineValue        float64
	MeasurementFrequency model.MeasurementFrequency
}

// TemplateService provides per-project-type starter metrics.
type TemplateService struct{}

func NewTemplateService() *TemplateService {
	return &TemplateService{}
}

func (s *TemplateService) TemplateMetrics(projectType model.ProjectType) []MetricTemplate {
	switch projectType {
	case model.ProjectTypeInfrastructure:
		return infrastructureMetrics()
	case model.ProjectTypeSoftwareDevelopment:
		return softwareDevelopmentMetrics()
	case model.ProjectTypeDigitalTransformation:
		return digitalTransformationMetrics()
	default:
		return nil
	}
}

func infrastructureMetrics() []MetricTemplate {
	return []MetricTemplate{
		{
			Name:                 "System Availability",
			Description:          "Uptime percentage",
			Category:             model.ValueCategoryQualityImprovement,
			MetricType:           model.MetricTypePercentage,
			TargetValue:          99.9,
			BaselineValue:        95.0,
			MeasurementFrequency: model.FrequencyWeekly,
		},
		{
			Name:                 "Response Time",
			Description:          "Average response time in milliseconds",
			Category:             model.ValueCategoryEfficiencyGain,
			MetricType:           model.MetricTypeTime,
			TargetValue:          200,
			BaselineValue:        500,
			MeasurementFrequency: model.FrequencyDaily,
		},
		{
			Name:                 "Infrastructure Cost",
			Description:          "Monthly infrastructure costs",
			Category:             model.ValueCategoryCostReduction,
			MetricType:           model.MetricTypeCurrency,
			TargetValue:          8000,
			BaselineValue:        10000,
			MeasurementFrequency: model.FrequencyMonthly,
		},
	}
}

func softwareDevelopmentMetrics() []MetricTemplate {
	return []MetricTemplate{
		{
			Name:                 "User Adoption Rate",
			Description:          "Percentage of target users actively using the software",
			Category:             model.ValueCategoryUserSatisfaction,
			MetricType:           model.MetricTypePercentage,
			TargetValue:          80.0,
			BaselineValue:        0.0,
			MeasurementFrequency: model.FrequencyWeekly,
		},
		{
			Name:                 "Development Velocity",
			Description:          "Story points completed per sprint",
			Category:             model.ValueCategoryEfficiencyGain,
			MetricType:           model.MetricTypeCount,
			TargetValue:          50,
			BaselineValue:        30,
			MeasurementFrequency: model.FrequencyWeekly,
		},
		{
			Name:                 "Bug Resolution Time",
			Description:          "Average time to resolve bugs in hours",
			Category:             model.ValueCategoryQualityImprovement,
			MetricType:           model.MetricTypeTime,
			TargetValue:          24,
			BaselineValue:        72,
			MeasurementFrequency: model.FrequencyDaily,
		},
	}
}

func digitalTransformationMetrics() []MetricTemplate {
	return []MetricTemplate{
		{
			Name:                 "Process Automation Rate",
			Description:          "Percentage of manual processes automated",
			Category:             model.ValueCategoryEfficiencyGain,
			MetricType:           model.MetricTypePercentage,
			TargetValue:          70.0,
			BaselineValue:        10.0,
			MeasurementFrequency: model.FrequencyMonthly,
		},
		{
			Name:                 "Employee Productivity",
			Description:          "Tasks completed per day per employee",
			Category:             model.ValueCategoryEfficiencyGain,
			MetricType:           model.MetricTypeCount,
			TargetValue:          15,
			BaselineValue:        10,
			MeasurementFrequency: model.FrequencyWeekly,
		},
		{
			Name:                 "Data Quality Score",
			Description:          "Data quality index (0-100)",
			Category:             model.ValueCategoryQualityImprovement,
			MetricType:           model.MetricTypeScore,
			TargetValue:          90,
			BaselineValue:        60,
			MeasurementFrequency: model.FrequencyMonthly,
		},
	}
}
