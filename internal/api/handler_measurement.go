package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"valuepm/internal/service"
)

func parseTimeQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return nil, false
	}
	return &t, true
}

type MeasurementHandler struct {
	measurementService *service.MeasurementService
}

func NewMeasurementHandler(measurementService *service.MeasurementService) *MeasurementHandler {
	return &MeasurementHandler{
		measurementService: measurementService,
	}
}

// Create handles POST /measurements
func (h *MeasurementHandler) Create(c *gin.Context) {
	var req struct {
		MetricID        string     `json:"metric_id" binding:"required"`
		Value           float64    `json:"value"`
		MeasuredAt      *time.Time `json:"measured_at"`
		Notes           *string    `json:"notes"`
		ConfidenceLevel *float64   `json:"confidence_level" binding:"omitempty,gte=0,lte=1"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	m, err := h.measurementService.Create(c.Request.Context(), service.CreateMeasurementInput{
		MetricID:        req.MetricID,
		Value:           req.Value,
		MeasuredAt:      req.MeasuredAt,
		Notes:           req.Notes,
		ConfidenceLevel: req.ConfidenceLevel,
	}, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "metric not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record measurement"})
		return
	}

	c.JSON(http.StatusCreated, toMeasurementResponse(m))
}

// Get handles GET /measurements/:id
func (h *MeasurementHandler) Get(c *gin.Context) {
	m, err := h.measurementService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "measurement not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load measurement"})
		return
	}

	c.JSON(http.StatusOK, toMeasurementWithMetricResponse(m))
}

// ListByMetric handles GET /metrics/:id/measurements
func (h *MeasurementHandler) ListByMetric(c *gin.Context) {
	from, ok := parseTimeQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseTimeQuery(c, "to")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	list, err := h.measurementService.ListByMetric(c.Request.Context(), c.Param("id"), from, to, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list measurements"})
		return
	}

	resp := make([]measurementResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toMeasurementResponse(&list[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// ListByProject handles GET /projects/:id/measurements
func (h *MeasurementHandler) ListByProject(c *gin.Context) {
	from, ok := parseTimeQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseTimeQuery(c, "to")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	list, err := h.measurementService.ListByProject(c.Request.Context(), c.Param("id"), from, to, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list measurements"})
		return
	}

	resp := make([]measurementResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toMeasurementWithMetricResponse(&list[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /measurements/:id
func (h *MeasurementHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	deleted, err := h.measurementService.Delete(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "measurement not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete measurement"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "measurement not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "measurement deleted"})
}
