package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/midwaife/backend/internal/model"
)

const SearchLimit = 20

var (
	ErrFoodNotFound = errors.New("food not found")
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const foodColumns = `id, name, portion, macro_category, rainbow_color, phytonutrient_focus,
	is_safe_pregnancy, warning_message, warning_type, tags, description, created_at`

type FoodRepository interface {
	Foods(ctx context.Context) ([]*model.FoodRecord, error)
	Search(ctx context.Context, query string) ([]*model.FoodRecord, error)
	ByID(ctx context.Context, id string) (*model.FoodRecord, error)
	Create(ctx context.Context, food *model.FoodRecord, nutrients []string) error
	NutrientNames(ctx context.Context, foodIDs []string) (map[string][]string, error)
	MissingIDs(ctx context.Context, foodIDs []string) ([]string, error)
}

type foodRepository struct {
	db *sqlx.DB
}

func NewFoodRepository(db *sqlx.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) Foods(ctx context.Context) ([]*model.FoodRecord, error) {
	foods := []*model.FoodRecord{}
	query := `SELECT ` + foodColumns + ` FROM foods ORDER BY name`

	err := r.db.SelectContext(ctx, &foods, query)
	if err != nil {
		return nil, err
	}

	return foods, nil
}

// Search matches a case-insensitive substring of the name, capped at SearchLimit rows.
func (r *foodRepository) Search(ctx context.Context, query string) ([]*model.FoodRecord, error) {
	sqlStr, args, err := psql.Select(foodColumns).
		From("foods").
		Where(sq.Like{"LOWER(name)": "%" + strings.ToLower(query) + "%"}).
		OrderBy("name").
		Limit(SearchLimit).
		ToSql()
	if err != nil {
		return nil, err
	}

	foods := []*model.FoodRecord{}
	err = r.db.SelectContext(ctx, &foods, sqlStr, args...)
	if err != nil {
		return nil, err
	}

	return foods, nil
}

func (r *foodRepository) ByID(ctx context.Context, id string) (*model.FoodRecord, error) {
	food := &model.FoodRecord{}
	query := `SELECT ` + foodColumns + ` FROM foods WHERE id = $1`

	err := r.db.GetContext(ctx, food, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFoodNotFound
	}
	if err != nil {
		return nil, err
	}

	return food, nil
}

// Create inserts the food and its nutrient links in one transaction.
func (r *foodRepository) Create(ctx context.Context, food *model.FoodRecord, nutrients []string) error {
	if food.ID == "" {
		food.ID = uuid.New().String()
	}
	if food.CreatedAt.IsZero() {
		food.CreatedAt = time.Now()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO foods (id, name, portion, macro_category, rainbow_color, phytonutrient_focus,
		                   is_safe_pregnancy, warning_message, warning_type, tags, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		food.ID,
		food.Name,
		food.Portion,
		food.MacroCategory,
		food.RainbowColor,
		food.PhytonutrientFocus,
		food.IsSafePregnancy,
		food.WarningMessage,
		food.WarningType,
		food.Tags,
		food.Description,
		food.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert food: %w", err)
	}

	if len(nutrients) > 0 {
		sqlStr, args, err := psql.Insert("food_nutrients").
			Columns("food_id", "nutrient_id", "is_present").
			Select(psql.Select().
				Column("? AS food_id", food.ID).
				Column("id").
				Column("TRUE").
				From("nutrients").
				Where(sq.Eq{"name": nutrients})).
			ToSql()
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, sqlStr, args...)
		if err != nil {
			return fmt.Errorf("failed to link nutrients: %w", err)
		}
	}

	return tx.Commit()
}

// NutrientNames loads present nutrient names for many foods with a single query.
func (r *foodRepository) NutrientNames(ctx context.Context, foodIDs []string) (map[string][]string, error) {
	out := make(map[string][]string, len(foodIDs))
	if len(foodIDs) == 0 {
		return out, nil
	}

	sqlStr, args, err := psql.Select("fn.food_id", "n.name").
		From("food_nutrients fn").
		Join("nutrients n ON fn.nutrient_id = n.id").
		Where(sq.Eq{"fn.food_id": foodIDs}).
		Where("fn.is_present = TRUE").
		OrderBy("fn.food_id", "n.id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []struct {
		FoodID string `db:"food_id"`
		Name   string `db:"name"`
	}
	err = r.db.SelectContext(ctx, &rows, sqlStr, args...)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[row.FoodID] = append(out[row.FoodID], row.Name)
	}

	return out, nil
}

// MissingIDs returns the ids from foodIDs that have no foods row, in input order.
func (r *foodRepository) MissingIDs(ctx context.Context, foodIDs []string) ([]string, error) {
	if len(foodIDs) == 0 {
		return nil, nil
	}

	sqlStr, args, err := psql.Select("id").
		From("foods").
		Where(sq.Eq{"id": foodIDs}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var found []string
	err = r.db.SelectContext(ctx, &found, sqlStr, args...)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(found))
	for _, id := range found {
		seen[id] = true
	}

	var missing []string
	for _, id := range foodIDs {
		if !seen[id] {
			missing = append(missing, id)
			seen[id] = true
		}
	}

	return missing, nil
}
