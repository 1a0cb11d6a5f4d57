package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"valuepm/internal/model"
	"valuepm/internal/service"
)

type StakeholderHandler struct {
	stakeholderService *service.StakeholderService
}

func NewStakeholderHandler(stakeholderService *service.StakeholderService) *StakeholderHandler {
	return &StakeholderHandler{
		stakeholderService: stakeholderService,
	}
}

func toValueCategories(raw []string) []model.ValueCategory {
	out := make([]model.ValueCategory, 0, len(raw))
	for _, v := range raw {
		out = append(out, model.ValueCategory(v))
	}
	return out
}

// Create handles POST /stakeholders
func (h *StakeholderHandler) Create(c *gin.Context) {
	var req struct {
		Name                  string   `json:"name" binding:"required"`
		Email                 *string  `json:"email" binding:"omitempty,email"`
		Role                  *string  `json:"role"`
		Department            *string  `json:"department"`
		PrimaryValueInterests []string `json:"primary_value_interests" binding:"dive,oneof=cost_reduction revenue_increase efficiency_gain quality_improvement risk_mitigation user_satisfaction"`
		InfluenceLevel        int      `json:"influence_level" binding:"omitempty,gte=1,lte=5"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	st, err := h.stakeholderService.Create(c.Request.Context(), service.CreateStakeholderInput{
		Name:                  req.Name,
		Email:                 req.Email,
		Role:                  req.Role,
		Department:            req.Department,
		PrimaryValueInterests: toValueCategories(req.PrimaryValueInterests),
		InfluenceLevel:        req.InfluenceLevel,
	}, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create stakeholder"})
		return
	}

	c.JSON(http.StatusCreated, toStakeholderResponse(st))
}

// List handles GET /stakeholders
func (h *StakeholderHandler) List(c *gin.Context) {
	skip, limit := paginationParams(c)

	list, err := h.stakeholderService.List(c.Request.Context(), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list stakeholders"})
		return
	}

	resp := make([]stakeholderResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toStakeholderResponse(&list[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /stakeholders/:id
func (h *StakeholderHandler) Get(c *gin.Context) {
	st, err := h.stakeholderService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "stakeholder not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stakeholder"})
		return
	}

	c.JSON(http.StatusOK, toStakeholderResponse(st))
}

// Update handles PUT /stakeholders/:id
func (h *StakeholderHandler) Update(c *gin.Context) {
	var req struct {
		Name                  *string  `json:"name"`
		Email                 *string  `json:"email" binding:"omitempty,email"`
		Role                  *string  `json:"role"`
		Department            *string  `json:"department"`
		PrimaryValueInterests []string `json:"primary_value_interests" binding:"omitempty,dive,oneof=cost_reduction revenue_increase efficiency_gain quality_improvement risk_mitigation user_satisfaction"`
		InfluenceLevel        *int     `json:"influence_level" binding:"omitempty,gte=1,lte=5"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	in := service.UpdateStakeholderInput{
		Name:           req.Name,
		Email:          req.Email,
		Role:           req.Role,
		Department:     req.Department,
		InfluenceLevel: req.InfluenceLevel,
	}
	if req.PrimaryValueInterests != nil {
		in.PrimaryValueInterests = toValueCategories(req.PrimaryValueInterests)
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	st, err := h.stakeholderService.Update(c.Request.Context(), c.Param("id"), in, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "stakeholder not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update stakeholder"})
		return
	}

	c.JSON(http.StatusOK, toStakeholderResponse(st))
}

// Delete handles DELETE /stakeholders/:id
func (h *StakeholderHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	deleted, err := h.stakeholderService.Delete(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete stakeholder"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "stakeholder not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "stakeholder deleted"})
}

// AssignToProject handles POST /stakeholders/:id/projects/:project_id
func (h *StakeholderHandler) AssignToProject(c *gin.Context) {
	assigned, err := h.stakeholderService.AssignToProject(c.Request.Context(), c.Param("id"), c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to assign stakeholder"})
		return
	}
	if !assigned {
		c.JSON(http.StatusNotFound, gin.H{"error": "stakeholder or project not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "stakeholder assigned"})
}

// RemoveFromProject handles DELETE /stakeholders/:id/projects/:project_id
func (h *StakeholderHandler) RemoveFromProject(c *gin.Context) {
	removed, err := h.stakeholderService.RemoveFromProject(c.Request.Context(), c.Param("id"), c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove stakeholder"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "stakeholder or project not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "stakeholder removed"})
}
