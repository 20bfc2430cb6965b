package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/midwaife/backend/internal/model"
)

var (
	ErrDailyLogNotFound = errors.New("daily log not found")
)

type DailyLogRepository interface {
	Log(ctx context.Context, userID, date string) (*model.DailyLog, error)
	Logs(ctx context.Context, userID, startDate, endDate string) ([]*model.DailyLog, error)
	Upsert(ctx context.Context, in *model.DailyLogUpsert) (*model.DailyLog, error)
	Delete(ctx context.Context, userID, date string) error
}

type dailyLogRepository struct {
	db *sqlx.DB
}

func NewDailyLogRepository(db *sqlx.DB) DailyLogRepository {
	return &dailyLogRepository{db: db}
}

func (r *dailyLogRepository) Log(ctx context.Context, userID, date string) (*model.DailyLog, error) {
	log := &model.DailyLog{}
	query := `SELECT * FROM daily_logs WHERE user_id = $1 AND log_date = $2`

	err := r.db.GetContext(ctx, log, query, userID, date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDailyLogNotFound
	}
	if err != nil {
		return nil, err
	}

	return log, nil
}

// Logs returns the user's logs in an inclusive range, newest first.
func (r *dailyLogRepository) Logs(ctx context.Context, userID, startDate, endDate string) ([]*model.DailyLog, error) {
	logs := []*model.DailyLog{}
	query := `SELECT * FROM daily_logs
	          WHERE user_id = $1 AND log_date >= $2 AND log_date <= $3
	          ORDER BY log_date DESC`

	err := r.db.SelectContext(ctx, &logs, query, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	return logs, nil
}

func (r *dailyLogRepository) Upsert(ctx context.Context, in *model.DailyLogUpsert) (*model.DailyLog, error) {
	now := time.Now()
	query := `INSERT INTO daily_logs (id, user_id, log_date, sleep_hours, sleep_quality, sleep_notes,
	                                  symptoms, symptom_severity, symptom_notes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          ON CONFLICT (user_id, log_date) DO UPDATE SET
	              sleep_hours = EXCLUDED.sleep_hours,
	              sleep_quality = EXCLUDED.sleep_quality,
	              sleep_notes = EXCLUDED.sleep_notes,
	              symptoms = EXCLUDED.symptoms,
	              symptom_severity = EXCLUDED.symptom_severity,
	              symptom_notes = EXCLUDED.symptom_notes,
	              updated_at = $11
	          RETURNING *`

	log := &model.DailyLog{}
	err := r.db.GetContext(ctx, log, query,
		uuid.New().String(),
		in.UserID,
		in.LogDate,
		in.SleepHours,
		in.SleepQuality,
		in.SleepNotes,
		in.Symptoms,
		in.SymptomSeverity,
		in.SymptomNotes,
		now,
		now,
	)
	if err != nil {
		return nil, err
	}

	return log, nil
}

func (r *dailyLogRepository) Delete(ctx context.Context, userID, date string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM daily_logs WHERE user_id = $1 AND log_date = $2`, userID, date)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrDailyLogNotFound
	}

	return nil
}
