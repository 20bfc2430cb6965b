package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/midwaife/backend/internal/model"
	"github.com/midwaife/backend/internal/repository"
	"github.com/midwaife/backend/internal/validation"
)

type UserService struct {
	userRepository repository.UserRepository
}

func NewUserService(userRepository repository.UserRepository) *UserService {
	return &UserService{userRepository: userRepository}
}

func (s *UserService) ByID(ctx context.Context, id string) (*model.User, error) {
	err := validation.ValidateRequired("id", id)
	if err != nil {
		return nil, err
	}
	return s.userRepository.ByID(ctx, id)
}

// Create registers a profile. A blank ID is assigned a new UUID.
func (s *UserService) Create(ctx context.Context, user *model.User) (*model.User, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	err := validation.ValidateEmail(user.Email)
	if err != nil {
		return nil, err
	}
	err = validation.ValidateName("first_name", user.FirstName)
	if err != nil {
		return nil, err
	}
	for field, date := range map[string]*string{"due_date": user.DueDate, "last_period_date": user.LastPeriodDate} {
		if date != nil {
			_, err = validation.ParseDate(field, *date)
			if err != nil {
				return nil, err
			}
		}
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.PreferredUnit == "" {
		user.PreferredUnit = model.UnitMetric
	}
	if user.DailyCaffeineLimit == 0 {
		user.DailyCaffeineLimit = 200
	}
	user.CreatedAt = time.Now()

	err = s.userRepository.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user created", "user_id", user.ID)
	return user, nil
}
