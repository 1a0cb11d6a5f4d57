package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"valuepm/internal/model"
	"valuepm/internal/repository"
)

type DeliverableService struct {
	deliverables *repository.DeliverableRepository
	producer     EventPublisher
	logger       *zap.Logger
}

func NewDeliverableService(deliverables *repository.DeliverableRepository, producer EventPublisher, logger *zap.Logger) *DeliverableService {
	return &DeliverableService{
		deliverables: deliverables,
		producer:     producer,
		logger:       logger,
	}
}

type CreateDeliverableInput struct {
	ProjectID          string
	Name               string
	Description        *string
	ExpectedCompletion time.Time
	Status             model.DeliverableStatus
}

func (s *DeliverableService) Create(ctx context.Context, in CreateDeliverableInput, userID string) (*model.Deliverable, error) {
	now := time.Now().UTC()
	status := in.Status
	if status == "" {
		status = model.DeliverableStatusPlanned
	}

	d := &model.Deliverable{
		ID:                 uuid.NewString(),
		ProjectID:          in.ProjectID,
		Name:               in.Name,
		Description:        in.Description,
		ExpectedCompletion: in.ExpectedCompletion,
		Status:             status,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.deliverables.Create(ctx, d); err != nil {
		return nil, err
	}

	publishAudit(s.producer, s.logger, &userID, "create", "deliverable", d.ID, nil)
	return d, nil
}

func (s *DeliverableService) Get(ctx context.Context, id string) (*model.Deliverable, error) {
	return s.deliverables.FindByID(ctx, id)
}

func (s *DeliverableService) ListByProject(ctx context.Context, projectID string) ([]model.Deliverable, error) {
	return s.deliverables.ListByProject(ctx, projectID)
}

type UpdateDeliverableInput struct {
	Name               *string
	Description        *string
	ExpectedCompletion *time.Time
	ActualCompletion   *time.Time
	Status             *model.DeliverableStatus
}

func (s *DeliverableService) Update(ctx context.Context, id string, in UpdateDeliverableInput, userID string) (*model.Deliverable, error) {
	d, err := s.deliverables.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		d.Name = *in.Name
	}
	if in.Description != nil {
		d.Description = in.Description
	}
	if in.ExpectedCompletion != nil {
		d.ExpectedCompletion = *in.ExpectedCompletion
	}
	if in.ActualCompletion != nil {
		d.ActualCompletion = in.ActualCompletion
	}
	if in.Status != nil {
		d.Status = *in.Status
	}

	if err := s.deliverables.Update(ctx, d); err != nil {
		return nil, err
	}

	publishAudit(s.producer, s.logger, &userID, "update", "deliverable", d.ID, in)
	return d, nil
}

func (s *DeliverableService) Delete(ctx context.Context, id string, userID string) (bool, error) {
	deleted, err := s.deliverables.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	publishAudit(s.producer, s.logger, &userID, "delete", "deliverable", id, nil)
	return true, nil
}
