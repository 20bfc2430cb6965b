package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/midwaife/backend/internal/model"
	"github.com/midwaife/backend/internal/repository"
	"github.com/midwaife/backend/internal/validation"
)

const (
	FirstWeek = 1
	LastWeek  = 42
)

type MilestoneService struct {
	milestoneRepository repository.MilestoneRepository
}

func NewMilestoneService(milestoneRepository repository.MilestoneRepository) *MilestoneService {
	return &MilestoneService{milestoneRepository: milestoneRepository}
}

func (s *MilestoneService) Milestones(ctx context.Context) ([]*model.Milestone, error) {
	milestones, err := s.milestoneRepository.Milestones(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	return milestones, nil
}

func (s *MilestoneService) ByWeek(ctx context.Context, week int) (*model.Milestone, error) {
	if week < FirstWeek || week > LastWeek {
		return nil, &validation.Error{Field: "week", Message: fmt.Sprintf("must be between %d and %d", FirstWeek, LastWeek)}
	}
	return s.milestoneRepository.ByWeek(ctx, week)
}

func (s *MilestoneService) Save(ctx context.Context, m *model.Milestone) error {
	if m.WeekNumber < FirstWeek || m.WeekNumber > LastWeek {
		return &validation.Error{Field: "week_number", Message: fmt.Sprintf("must be between %d and %d", FirstWeek, LastWeek)}
	}
	err := validation.ValidateRequired("development_milestone", m.DevelopmentMilestone)
	if err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}

	err = s.milestoneRepository.Upsert(ctx, m)
	if err != nil {
		return fmt.Errorf("failed to save milestone: %w", err)
	}
	return nil
}
