package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/midwaife/backend/internal/model"
)

var (
	ErrMilestoneNotFound = errors.New("milestone not found")
)

type MilestoneRepository interface {
	ByWeek(ctx context.Context, week int) (*model.Milestone, error)
	Milestones(ctx context.Context) ([]*model.Milestone, error)
	Upsert(ctx context.Context, milestone *model.Milestone) error
}

type milestoneRepository struct {
	db *sqlx.DB
}

func NewMilestoneRepository(db *sqlx.DB) MilestoneRepository {
	return &milestoneRepository{db: db}
}

func (r *milestoneRepository) ByWeek(ctx context.Context, week int) (*model.Milestone, error) {
	milestone := &model.Milestone{}
	query := `SELECT * FROM weekly_milestones WHERE week_number = $1`

	err := r.db.GetContext(ctx, milestone, query, week)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMilestoneNotFound
	}
	if err != nil {
		return nil, err
	}

	return milestone, nil
}

func (r *milestoneRepository) Milestones(ctx context.Context) ([]*model.Milestone, error) {
	milestones := []*model.Milestone{}
	query := `SELECT * FROM weekly_milestones ORDER BY week_number`

	err := r.db.SelectContext(ctx, &milestones, query)
	if err != nil {
		return nil, err
	}

	return milestones, nil
}

// Upsert writes a milestone keyed on its week number.
func (r *milestoneRepository) Upsert(ctx context.Context, m *model.Milestone) error {
	query := `INSERT INTO weekly_milestones (id, week_number, nhs_size_comparison, development_milestone,
	                                         nutritional_focus_color, key_nutrient, action_tip, source_url)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          ON CONFLICT (week_number) DO UPDATE SET
	              nhs_size_comparison = EXCLUDED.nhs_size_comparison,
	              development_milestone = EXCLUDED.development_milestone,
	              nutritional_focus_color = EXCLUDED.nutritional_focus_color,
	              key_nutrient = EXCLUDED.key_nutrient,
	              action_tip = EXCLUDED.action_tip,
	              source_url = EXCLUDED.source_url`

	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.WeekNumber,
		m.NHSSizeComparison,
		m.DevelopmentMilestone,
		m.NutritionalFocusColor,
		m.KeyNutrient,
		m.ActionTip,
		m.SourceURL,
	)

	return err
}
