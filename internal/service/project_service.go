package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"valuepm/internal/model"
	"valuepm/internal/repository"
)

type ProjectService struct {
	projects     *repository.ProjectRepository
	metrics      *repository.MetricRepository
	stakeholders *repository.StakeholderRepository
	deliverables *repository.DeliverableRepository
	templates    *TemplateService
	producer     EventPublisher
	logger       *zap.Logger
}

func NewProjectService(
	projects *repository.ProjectRepository,
	metrics *repository.MetricRepository,
	stakeholders *repository.StakeholderRepository,
	deliverables *repository.DeliverableRepository,
	templates *TemplateService,
	producer EventPublisher,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projects:     projects,
		metrics:      metrics,
		stakeholders: stakeholders,
		deliverables: deliverables,
		templates:    templates,
		producer:     producer,
		logger:       logger,
	}
}

type CreateProjectInput struct {
	Name                string
	ProjectType         model.ProjectType
	Status              model.ProjectStatus
	StartDate           *time.Time
	EndDate             *time.Time
	BusinessCase        *string
	EstimatedTotalValue float64
	UseTemplate         bool
}

// Create stores a new project, optionally seeding starter metrics for its
// project type.
func (s *ProjectService) Create(ctx context.Context, in CreateProjectInput, userID string) (*model.Project, error) {
	now := time.Now().UTC()
	status := in.Status
	if status == "" {
		status = model.ProjectStatusPlanning
	}

	p := &model.Project{
		ID:                  uuid.NewString(),
		Name:                in.Name,
		ProjectType:         in.ProjectType,
		Status:              status,
		StartDate:           in.StartDate,
		EndDate:             in.EndDate,
		BusinessCase:        in.BusinessCase,
		EstimatedTotalValue: in.EstimatedTotalValue,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}

	if in.UseTemplate {
		for _, tpl := range s.templates.TemplateMetrics(in.ProjectType) {
			desc := tpl.Description
			m := &model.Metric{
				ID:                   uuid.NewString(),
				ProjectID:            p.ID,
				Name:                 tpl.Name,
				Description:          &desc,
				Category:             tpl.Category,
				MetricType:           tpl.MetricType,
				TargetValue:          tpl.TargetValue,
				BaselineValue:        tpl.BaselineValue,
				MeasurementFrequency: tpl.MeasurementFrequency,
				IsActive:             true,
				CreatedAt:            now,
				UpdatedAt:            now,
			}
			if err := s.metrics.Create(ctx, m); err != nil {
				return nil, err
			}
		}
	}

	s.logger.Info("Project created",
		zap.String("project_id", p.ID),
		zap.String("project_type", string(p.ProjectType)),
		zap.Bool("use_template", in.UseTemplate),
	)
	publishAudit(s.producer, s.logger, &userID, "create", "project", p.ID, nil)

	return p, nil
}

func (s *ProjectService) List(ctx context.Context, skip, limit int) ([]model.Project, error) {
	return s.projects.List(ctx, skip, limit)
}

// GetDetail loads the project with its metrics, stakeholders and deliverables.
func (s *ProjectService) GetDetail(ctx context.Context, id string) (*model.ProjectDetail, error) {
	p, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	metrics, err := s.metrics.ListByProject(ctx, id, false)
	if err != nil {
		return nil, err
	}
	stakeholders, err := s.stakeholders.ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	deliverables, err := s.deliverables.ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.ProjectDetail{
		Project:      *p,
		Metrics:      metrics,
		Stakeholders: stakeholders,
		Deliverables: deliverables,
	}, nil
}

type UpdateProjectInput struct {
	Name                *string
	ProjectType         *model.ProjectType
	Status              *model.ProjectStatus
	StartDate           *time.Time
	EndDate             *time.Time
	BusinessCase        *string
	EstimatedTotalValue *float64
}

// Update applies the fields set in the input and leaves the rest alone.
func (s *ProjectService) Update(ctx context.Context, id string, in UpdateProjectInput, userID string) (*model.Project, error) {
	p, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.ProjectType != nil {
		p.ProjectType = *in.ProjectType
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.StartDate != nil {
		p.StartDate = in.StartDate
	}
	if in.EndDate != nil {
		p.EndDate = in.EndDate
	}
	if in.BusinessCase != nil {
		p.BusinessCase = in.BusinessCase
	}
	if in.EstimatedTotalValue != nil {
		p.EstimatedTotalValue = *in.EstimatedTotalValue
	}

	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}

	publishAudit(s.producer, s.logger, &userID, "update", "project", p.ID, in)
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string, userID string) (bool, error) {
	deleted, err := s.projects.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	s.logger.Info("Project deleted", zap.String("project_id", id))
	publishAudit(s.producer, s.logger, &userID, "delete", "project", id, nil)
	return true, nil
}
