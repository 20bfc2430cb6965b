package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/midwaife/backend/internal/model"
)

var (
	ErrMealNotFound     = errors.New("meal not found")
	ErrMealItemNotFound = errors.New("meal item not found")
)

// MealSlotKey identifies a meal header: one per (user, date, meal type).
type MealSlotKey struct {
	UserID    string
	Date      string
	DayOfWeek string
	MealType  model.MealType
}

type MealRepository interface {
	RangeRows(ctx context.Context, userID, startDate, endDate string) ([]*model.MealRow, error)
	Owner(ctx context.Context, mealID string) (string, error)
	ReplaceItems(ctx context.Context, key MealSlotKey, foodIDs []string) (string, error)
	AppendItem(ctx context.Context, key MealSlotKey, foodID string) (*model.MealItem, error)
	RemoveItem(ctx context.Context, mealID, foodID string) error
	Delete(ctx context.Context, mealID string) error
}

type mealRepository struct {
	db *sqlx.DB
}

func NewMealRepository(db *sqlx.DB) MealRepository {
	return &mealRepository{db: db}
}

// RangeRows returns the flat meal/item/food join for an inclusive date range,
// ordered by date, meal type and item order. Meals without items yield one row
// with nil item and food columns.
func (r *mealRepository) RangeRows(ctx context.Context, userID, startDate, endDate string) ([]*model.MealRow, error) {
	sqlStr, args, err := psql.Select(
		"m.id AS meal_id",
		"m.log_date AS meal_date",
		"m.day_of_week",
		"m.meal_type",
		"m.notes AS meal_notes",
		"mi.id AS meal_item_id",
		"mi.sort_order",
		"f.id AS food_id",
		"f.name",
		"f.portion",
		"f.macro_category",
		"f.rainbow_color",
		"f.phytonutrient_focus",
		"f.is_safe_pregnancy",
		"f.warning_message",
		"f.warning_type",
		"f.tags",
		"f.description",
	).
		From("meals m").
		LeftJoin("meal_items mi ON m.id = mi.meal_id").
		LeftJoin("foods f ON mi.food_id = f.id").
		Where(sq.Eq{"m.user_id": userID}).
		Where(sq.GtOrEq{"m.log_date": startDate}).
		Where(sq.LtOrEq{"m.log_date": endDate}).
		OrderBy("m.log_date", "m.meal_type", "mi.sort_order").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows := []*model.MealRow{}
	err = r.db.SelectContext(ctx, &rows, sqlStr, args...)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// upsertHeader creates the meal header or touches its day_of_week, returning the
// id of the row that owns the (user, date, meal type) slot.
func upsertHeader(ctx context.Context, tx *sqlx.Tx, key MealSlotKey) (string, error) {
	now := time.Now()
	query := `INSERT INTO meals (id, user_id, log_date, day_of_week, meal_type, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          ON CONFLICT (user_id, log_date, meal_type)
	          DO UPDATE SET day_of_week = EXCLUDED.day_of_week, updated_at = EXCLUDED.updated_at
	          RETURNING id`

	var mealID string
	err := tx.GetContext(ctx, &mealID, query,
		uuid.New().String(),
		key.UserID,
		key.Date,
		key.DayOfWeek,
		string(key.MealType),
		now,
		now,
	)
	if err != nil {
		return "", fmt.Errorf("failed to upsert meal: %w", err)
	}

	return mealID, nil
}

// ReplaceItems makes foodIDs the slot's complete item list, in order. The header
// upsert, the delete and the inserts share one transaction.
func (r *mealRepository) ReplaceItems(ctx context.Context, key MealSlotKey, foodIDs []string) (string, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	mealID, err := upsertHeader(ctx, tx, key)
	if err != nil {
		return "", err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM meal_items WHERE meal_id = $1`, mealID)
	if err != nil {
		return "", fmt.Errorf("failed to clear meal items: %w", err)
	}

	if len(foodIDs) > 0 {
		now := time.Now()
		insert := psql.Insert("meal_items").Columns("id", "meal_id", "food_id", "sort_order", "created_at")
		for idx, foodID := range foodIDs {
			insert = insert.Values(uuid.New().String(), mealID, foodID, idx, now)
		}

		sqlStr, args, err := insert.ToSql()
		if err != nil {
			return "", err
		}

		_, err = tx.ExecContext(ctx, sqlStr, args...)
		if err != nil {
			return "", fmt.Errorf("failed to insert meal items: %w", err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return "", err
	}

	return mealID, nil
}

// AppendItem adds one food after the current last item of the slot.
func (r *mealRepository) AppendItem(ctx context.Context, key MealSlotKey, foodID string) (*model.MealItem, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	mealID, err := upsertHeader(ctx, tx, key)
	if err != nil {
		return nil, err
	}

	var next int
	err = tx.GetContext(ctx, &next,
		`SELECT COALESCE(MAX(sort_order), -1) + 1 FROM meal_items WHERE meal_id = $1`, mealID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute next sort order: %w", err)
	}

	item := &model.MealItem{
		ID:        uuid.New().String(),
		MealID:    mealID,
		FoodID:    foodID,
		SortOrder: next,
		CreatedAt: time.Now(),
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO meal_items (id, meal_id, food_id, sort_order, created_at) VALUES ($1, $2, $3, $4, $5)`,
		item.ID, item.MealID, item.FoodID, item.SortOrder, item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert meal item: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}

	return item, nil
}

// Owner returns the user id a meal belongs to.
func (r *mealRepository) Owner(ctx context.Context, mealID string) (string, error) {
	var userID string
	err := r.db.GetContext(ctx, &userID, `SELECT user_id FROM meals WHERE id = $1`, mealID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrMealNotFound
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

// RemoveItem deletes the slot's rows for foodID. Remaining sort orders are left as-is.
func (r *mealRepository) RemoveItem(ctx context.Context, mealID, foodID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM meal_items WHERE meal_id = $1 AND food_id = $2`, mealID, foodID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrMealItemNotFound
	}

	return nil
}

// Delete removes the meal header and its items.
func (r *mealRepository) Delete(ctx context.Context, mealID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM meal_items WHERE meal_id = $1`, mealID)
	if err != nil {
		return fmt.Errorf("failed to delete meal items: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM meals WHERE id = $1`, mealID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrMealNotFound
	}

	return tx.Commit()
}
