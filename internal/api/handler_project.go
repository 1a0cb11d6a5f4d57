package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"valuepm/internal/model"
	"valuepm/internal/service"
)

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func paginationParams(c *gin.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	return skip, limit
}

type ProjectHandler struct {
	projectService   *service.ProjectService
	dashboardService *service.DashboardService
}

func NewProjectHandler(projectService *service.ProjectService, dashboardService *service.DashboardService) *ProjectHandler {
	return &ProjectHandler{
		projectService:   projectService,
		dashboardService: dashboardService,
	}
}

// Create handles POST /projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req struct {
		Name                string  `json:"name" binding:"required"`
		ProjectType         string  `json:"project_type" binding:"required,oneof=infrastructure software_development digital_transformation"`
		Status              string  `json:"status" binding:"omitempty,oneof=planning active on_hold completed cancelled"`
		StartDate           string  `json:"start_date"`
		EndDate             string  `json:"end_date"`
		BusinessCase        *string `json:"business_case"`
		EstimatedTotalValue float64 `json:"estimated_total_value"`
		UseTemplate         bool    `json:"use_template"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	p, err := h.projectService.Create(c.Request.Context(), service.CreateProjectInput{
		Name:                req.Name,
		ProjectType:         model.ProjectType(req.ProjectType),
		Status:              model.ProjectStatus(req.Status),
		StartDate:           startDate,
		EndDate:             endDate,
		BusinessCase:        req.BusinessCase,
		EstimatedTotalValue: req.EstimatedTotalValue,
		UseTemplate:         req.UseTemplate,
	}, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, toProjectResponse(p))
}

// List handles GET /projects
func (h *ProjectHandler) List(c *gin.Context) {
	skip, limit := paginationParams(c)

	projects, err := h.projectService.List(c.Request.Context(), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list projects"})
		return
	}

	resp := make([]projectResponse, 0, len(projects))
	for i := range projects {
		resp = append(resp, toProjectResponse(&projects[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	detail, err := h.projectService.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load project"})
		return
	}

	c.JSON(http.StatusOK, toProjectDetailResponse(detail))
}

// Update handles PUT /projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	var req struct {
		Name                *string  `json:"name"`
		ProjectType         *string  `json:"project_type" binding:"omitempty,oneof=infrastructure software_development digital_transformation"`
		Status              *string  `json:"status" binding:"omitempty,oneof=planning active on_hold completed cancelled"`
		StartDate           *string  `json:"start_date"`
		EndDate             *string  `json:"end_date"`
		BusinessCase        *string  `json:"business_case"`
		EstimatedTotalValue *float64 `json:"estimated_total_value"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	in := service.UpdateProjectInput{
		Name:                req.Name,
		BusinessCase:        req.BusinessCase,
		EstimatedTotalValue: req.EstimatedTotalValue,
	}
	if req.ProjectType != nil {
		t := model.ProjectType(*req.ProjectType)
		in.ProjectType = &t
	}
	if req.Status != nil {
		s := model.ProjectStatus(*req.Status)
		in.Status = &s
	}
	if req.StartDate != nil {
		d, err := parseDate(*req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
			return
		}
		in.StartDate = d
	}
	if req.EndDate != nil {
		d, err := parseDate(*req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
			return
		}
		in.EndDate = d
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	p, err := h.projectService.Update(c.Request.Context(), c.Param("id"), in, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update project"})
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(p))
}

// Delete handles DELETE /projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	deleted, err := h.projectService.Delete(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete project"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}

// Dashboard handles GET /projects/:id/dashboard
func (h *ProjectHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// PortfolioOverview handles GET /portfolio/overview
func (h *ProjectHandler) PortfolioOverview(c *gin.Context) {
	overview, err := h.dashboardService.GetPortfolioOverview(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build portfolio overview"})
		return
	}

	c.JSON(http.StatusOK, overview)
}
