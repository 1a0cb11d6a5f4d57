package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"valuepm/internal/model"
	"valuepm/internal/service"
)

type MetricHandler struct {
	metricService *service.MetricService
}

func NewMetricHandler(metricService *service.MetricService) *MetricHandler {
	return &MetricHandler{
		metricService: metricService,
	}
}

// Create handles POST /projects/:id/metrics
func (h *MetricHandler) Create(c *gin.Context) {
	var req struct {
		Name                 string  `json:"name" binding:"required"`
		Description          *string `json:"description"`
		Category             string  `json:"category" binding:"required,oneof=cost_reduction revenue_increase efficiency_gain quality_improvement risk_mitigation user_satisfaction"`
		MetricType           string  `json:"metric_type" binding:"required,oneof=currency percentage time count score"`
		TargetValue          float64 `json:"target_value"`
		BaselineValue        float64 `json:"baseline_value"`
		MeasurementFrequency string  `json:"measurement_frequency" binding:"omitempty,oneof=daily weekly monthly quarterly yearly"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	m, err := h.metricService.Create(c.Request.Context(), service.CreateMetricInput{
		ProjectID:            c.Param("id"),
		Name:                 req.Name,
		Description:          req.Description,
		Category:             model.ValueCategory(req.Category),
		MetricType:           model.MetricType(req.MetricType),
		TargetValue:          req.TargetValue,
		BaselineValue:        req.BaselineValue,
		MeasurementFrequency: model.MeasurementFrequency(req.MeasurementFrequency),
	}, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create metric"})
		return
	}

	c.JSON(http.StatusCreated, toMetricResponse(m))
}

// ListByProject handles GET /projects/:id/metrics
func (h *MetricHandler) ListByProject(c *gin.Context) {
	activeOnly := c.DefaultQuery("active_only", "true") == "true"

	list, err := h.metricService.ListByProject(c.Request.Context(), c.Param("id"), activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list metrics"})
		return
	}

	resp := make([]metricResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toMetricResponse(&list[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /metrics/:id
func (h *MetricHandler) Get(c *gin.Context) {
	m, err := h.metricService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "metric not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load metric"})
		return
	}

	c.JSON(http.StatusOK, toMetricResponse(m))
}

// Update handles PUT /metrics/:id
func (h *MetricHandler) Update(c *gin.Context) {
	var req struct {
		Name                 *string  `json:"name"`
		Description          *string  `json:"description"`
		Category             *string  `json:"category" binding:"omitempty,oneof=cost_reduction revenue_increase efficiency_gain quality_improvement risk_mitigation user_satisfaction"`
		MetricType           *string  `json:"metric_type" binding:"omitempty,oneof=currency percentage time count score"`
		TargetValue          *float64 `json:"target_value"`
		BaselineValue        *float64 `json:"baseline_value"`
		MeasurementFrequency *string  `json:"measurement_frequency" binding:"omitempty,oneof=daily weekly monthly quarterly yearly"`
		IsActive             *bool    `json:"is_active"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	in := service.UpdateMetricInput{
		Name:          req.Name,
		Description:   req.Description,
		TargetValue:   req.TargetValue,
		BaselineValue: req.BaselineValue,
		IsActive:      req.IsActive,
	}
	if req.Category != nil {
		v := model.ValueCategory(*req.Category)
		in.Category = &v
	}
	if req.MetricType != nil {
		v := model.MetricType(*req.MetricType)
		in.MetricType = &v
	}
	if req.MeasurementFrequency != nil {
		v := model.MeasurementFrequency(*req.MeasurementFrequency)
		in.MeasurementFrequency = &v
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	m, err := h.metricService.Update(c.Request.Context(), c.Param("id"), in, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "metric not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update metric"})
		return
	}

	c.JSON(http.StatusOK, toMetricResponse(m))
}

// Delete handles DELETE /metrics/:id
func (h *MetricHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	deleted, err := h.metricService.Delete(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to deactivate metric"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "metric not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "metric deactivated"})
}
