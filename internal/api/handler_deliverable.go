package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"valuepm/internal/model"
	"valuepm/internal/service"
)

type DeliverableHandler struct {
	deliverableService *service.DeliverableService
}

func NewDeliverableHandler(deliverableService *service.DeliverableService) *DeliverableHandler {
	return &DeliverableHandler{
		deliverableService: deliverableService,
	}
}

// Create handles POST /projects/:id/deliverables
func (h *DeliverableHandler) Create(c *gin.Context) {
	var req struct {
		Name               string  `json:"name" binding:"required"`
		Description        *string `json:"description"`
		ExpectedCompletion string  `json:"expected_completion" binding:"required"`
		Status             string  `json:"status" binding:"omitempty,oneof=planned in_progress completed cancelled"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	expected, err := parseDate(req.ExpectedCompletion)
	if err != nil || expected == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expected_completion"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	d, err := h.deliverableService.Create(c.Request.Context(), service.CreateDeliverableInput{
		ProjectID:          c.Param("id"),
		Name:               req.Name,
		Description:        req.Description,
		ExpectedCompletion: *expected,
		Status:             model.DeliverableStatus(req.Status),
	}, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create deliverable"})
		return
	}

	c.JSON(http.StatusCreated, toDeliverableResponse(d))
}

// ListByProject handles GET /projects/:id/deliverables
func (h *DeliverableHandler) ListByProject(c *gin.Context) {
	list, err := h.deliverableService.ListByProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list deliverables"})
		return
	}

	resp := make([]deliverableResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toDeliverableResponse(&list[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /deliverables/:id
func (h *DeliverableHandler) Get(c *gin.Context) {
	d, err := h.deliverableService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "deliverable not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load deliverable"})
		return
	}

	c.JSON(http.StatusOK, toDeliverableResponse(d))
}

// Update handles PUT /deliverables/:id
func (h *DeliverableHandler) Update(c *gin.Context) {
	var req struct {
		Name               *string `json:"name"`
		Description        *string `json:"description"`
		ExpectedCompletion *string `json:"expected_completion"`
		ActualCompletion   *string `json:"actual_completion"`
		Status             *string `json:"status" binding:"omitempty,oneof=planned in_progress completed cancelled"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	in := service.UpdateDeliverableInput{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.ExpectedCompletion != nil {
		d, err := parseDate(*req.ExpectedCompletion)
		if err != nil || d == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expected_completion"})
			return
		}
		in.ExpectedCompletion = d
	}
	if req.ActualCompletion != nil {
		d, err := parseDate(*req.ActualCompletion)
		if err != nil || d == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid actual_completion"})
			return
		}
		in.ActualCompletion = d
	}
	if req.Status != nil {
		s := model.DeliverableStatus(*req.Status)
		in.Status = &s
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	d, err := h.deliverableService.Update(c.Request.Context(), c.Param("id"), in, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "deliverable not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update deliverable"})
		return
	}

	c.JSON(http.StatusOK, toDeliverableResponse(d))
}

// Delete handles DELETE /deliverables/:id
func (h *DeliverableHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	deleted, err := h.deliverableService.Delete(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete deliverable"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "deliverable not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deliverable deleted"})
}
