package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valuepm/internal/model"
)

func TestTemplateMetrics_Infrastructure(t *testing.T) {
	svc := NewTemplateService()
	tpls := svc.TemplateMetrics(model.ProjectTypeInfrastructure)
	require.Len(t, tpls, 3)

	byName := make(map[string]MetricTemplate)
	for _, tpl := range tpls {
		byName[tpl.Name] = tpl
	}

	avail, ok := byName["System Availability"]
	require.True(t, ok)
	assert.Equal(t, model.MetricTypePercentage, avail.MetricType)
	assert.Equal(t, 95.0, avail.BaselineValue)
	assert.Equal(t, 99.9, avail.TargetValue)

	cost, ok := byName["Infrastructure Cost"]
	require.True(t, ok)
	assert.Equal(t, model.MetricTypeCurrency, cost.MetricType)
	assert.Equal(t, model.ValueCategoryCostReduction, cost.Category)
}

func TestTemplateMetrics_AllTypesCovered(t *testing.T) {
	svc := NewTemplateService()
	for _, pt := range []model.ProjectType{
		model.ProjectTypeInfrastructure,
		model.ProjectTypeSoftwareDevelopment,
		model.ProjectTypeDigitalTransformation,
	} {
		assert.Len(t, svc.TemplateMetrics(pt), 3, "project type %s", pt)
	}
}

func TestTemplateMetrics_UnknownType(t *testing.T) {
	svc := NewTemplateService()
	assert.Empty(t, svc.TemplateMetrics(model.ProjectType("research")))
}
