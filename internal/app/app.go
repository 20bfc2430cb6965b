package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/midwaife/backend/internal/config"
	"github.com/midwaife/backend/internal/db"
	"github.com/midwaife/backend/internal/repository"
	"github.com/midwaife/backend/internal/service"
	"github.com/midwaife/backend/internal/storage"
)

type App struct {
	Cfg              *config.Config
	DB               *sqlx.DB
	AuthService      *service.AuthService
	MealService      *service.MealService
	MilestoneService *service.MilestoneService
	UserService      *service.UserService
	DailyLogService  *service.DailyLogService
}

// New opens the database and wires the services. Storage is optional.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection, db.Options{
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.DBAutoMigrate {
		err = db.RunMigrations(database.DB, cfg.DBDriver)
		if err != nil {
			db.Close(database)
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	} else {
		slog.Info("automatic migrations disabled")
	}

	exportStorage, err := storage.New(ctx, cfg)
	if err != nil {
		db.Close(database)
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return NewWithDB(cfg, database, exportStorage), nil
}

// NewWithDB wires repositories and services over an existing handle.
func NewWithDB(cfg *config.Config, database *sqlx.DB, exportStorage storage.Storage) *App {
	// Repositories
	foodRepository := repository.NewFoodRepository(database)
	mealRepository := repository.NewMealRepository(database)
	milestoneRepository := repository.NewMilestoneRepository(database)
	userRepository := repository.NewUserRepository(database)
	dailyLogRepository := repository.NewDailyLogRepository(database)

	// Services
	return &App{
		Cfg:              cfg,
		DB:               database,
		AuthService:      service.NewAuthService(cfg.JWTSecret, cfg.JWTExpiry),
		MealService:      service.NewMealService(foodRepository, mealRepository, exportStorage),
		MilestoneService: service.NewMilestoneService(milestoneRepository),
		UserService:      service.NewUserService(userRepository),
		DailyLogService:  service.NewDailyLogService(dailyLogRepository),
	}
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
