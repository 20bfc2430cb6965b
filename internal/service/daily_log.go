package service

import (
	"context"
	"fmt"

	"github.com/midwaife/backend/internal/model"
	"github.com/midwaife/backend/internal/repository"
	"github.com/midwaife/backend/internal/validation"
)

type DailyLogService struct {
	dailyLogRepository repository.DailyLogRepository
}

func NewDailyLogService(dailyLogRepository repository.DailyLogRepository) *DailyLogService {
	return &DailyLogService{dailyLogRepository: dailyLogRepository}
}

func (s *DailyLogService) Log(ctx context.Context, userID, date string) (*model.DailyLog, error) {
	err := validation.ValidateRequired("user_id", userID)
	if err != nil {
		return nil, err
	}
	_, err = validation.ParseDate("date", date)
	if err != nil {
		return nil, err
	}
	return s.dailyLogRepository.Log(ctx, userID, date)
}

func (s *DailyLogService) Logs(ctx context.Context, userID, startDate, endDate string) ([]*model.DailyLog, error) {
	err := validation.ValidateRequired("user_id", userID)
	if err != nil {
		return nil, err
	}
	err = validation.ValidateDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	logs, err := s.dailyLogRepository.Logs(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily logs: %w", err)
	}
	return logs, nil
}

func (s *DailyLogService) Save(ctx context.Context, in *model.DailyLogUpsert) (*model.DailyLog, error) {
	err := validation.ValidateDailyLog(in)
	if err != nil {
		return nil, err
	}

	log, err := s.dailyLogRepository.Upsert(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to save daily log: %w", err)
	}
	return log, nil
}

func (s *DailyLogService) Delete(ctx context.Context, userID, date string) error {
	err := validation.ValidateRequired("user_id", userID)
	if err != nil {
		return err
	}
	_, err = validation.ParseDate("date", date)
	if err != nil {
		return err
	}
	return s.dailyLogRepository.Delete(ctx, userID, date)
}
