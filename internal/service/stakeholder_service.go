package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"valuepm/internal/model"
	"valuepm/internal/repository"
)

type StakeholderService struct {
	stakeholders *repository.StakeholderRepository
	projects     *repository.ProjectRepository
	producer     EventPublisher
	logger       *zap.Logger
}

func NewStakeholderService(
	stakeholders *repository.StakeholderRepository,
	projects *repository.ProjectRepository,
	producer EventPublisher,
	logger *zap.Logger,
) *StakeholderService {
	return &StakeholderService{
		stakeholders: stakeholders,
		projects:     projects,
		producer:     producer,
		logger:       logger,
	}
}

type CreateStakeholderInput struct {
	Name                  string
	Email                 *string
	Role                  *string
	Department            *string
	PrimaryValueInterests []model.ValueCategory
	InfluenceLevel        int
}

func (s *StakeholderService) Create(ctx context.Context, in CreateStakeholderInput, userID string) (*model.Stakeholder, error) {
	now := time.Now().UTC()
	influence := in.InfluenceLevel
	if influence == 0 {
		influence = 1
	}

	st := &model.Stakeholder{
		ID:                    uuid.NewString(),
		Name:                  in.Name,
		Email:                 in.Email,
		Role:                  in.Role,
		Department:            in.Department,
		PrimaryValueInterests: in.PrimaryValueInterests,
		InfluenceLevel:        influence,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.stakeholders.Create(ctx, st); err != nil {
		return nil, err
	}

	publishAudit(s.producer, s.logger, &userID, "create", "stakeholder", st.ID, nil)
	return st, nil
}

func (s *StakeholderService) Get(ctx context.Context, id string) (*model.Stakeholder, error) {
	return s.stakeholders.FindByID(ctx, id)
}

func (s *StakeholderService) List(ctx context.Context, skip, limit int) ([]model.Stakeholder, error) {
	return s.stakeholders.List(ctx, skip, limit)
}

type UpdateStakeholderInput struct {
	Name                  *string
	Email                 *string
	Role                  *string
	Department            *string
	PrimaryValueInterests []model.ValueCategory
	InfluenceLevel        *int
}

func (s *StakeholderService) Update(ctx context.Context, id string, in UpdateStakeholderInput, userID string) (*model.Stakeholder, error) {
	st, err := s.stakeholders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		st.Name = *in.Name
	}
	if in.Email != nil {
		st.Email = in.Email
	}
	if in.Role != nil {
		st.Role = in.Role
	}
	if in.Department != nil {
		st.Department = in.Department
	}
	if in.PrimaryValueInterests != nil {
		st.PrimaryValueInterests = in.PrimaryValueInterests
	}
	if in.InfluenceLevel != nil {
		st.InfluenceLevel = *in.InfluenceLevel
	}

	if err := s.stakeholders.Update(ctx, st); err != nil {
		return nil, err
	}

	publishAudit(s.producer, s.logger, &userID, "update", "stakeholder", st.ID, in)
	return st, nil
}

func (s *StakeholderService) Delete(ctx context.Context, id string, userID string) (bool, error) {
	deleted, err := s.stakeholders.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	publishAudit(s.producer, s.logger, &userID, "delete", "stakeholder", id, nil)
	return true, nil
}

// AssignToProject links the stakeholder to the project after checking both exist.
func (s *StakeholderService) AssignToProject(ctx context.Context, stakeholderID, projectID string) (bool, error) {
	if _, err := s.stakeholders.FindByID(ctx, stakeholderID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	if err := s.stakeholders.AssignToProject(ctx, stakeholderID, projectID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *StakeholderService) RemoveFromProject(ctx context.Context, stakeholderID, projectID string) (bool, error) {
	if _, err := s.stakeholders.FindByID(ctx, stakeholderID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	if err := s.stakeholders.RemoveFromProject(ctx, stakeholderID, projectID); err != nil {
		return false, err
	}
	return true, nil
}
