package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/midwaife/backend/internal/db"
	"github.com/midwaife/backend/internal/model"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	database, err := db.Init("sqlite", path+"?_pragma=foreign_keys(1)", db.Options{MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(database) })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))
	return database
}

func createFood(t *testing.T, repo FoodRepository, name string, nutrients ...string) *model.FoodRecord {
	t.Helper()

	food := &model.FoodRecord{Name: name, IsSafePregnancy: true}
	require.NoError(t, repo.Create(context.Background(), food, nutrients))
	return food
}

// mealItems reads a slot's rows in display order straight from the table.
func mealItems(t *testing.T, repo MealRepository, mealID string) []*model.MealItem {
	t.Helper()

	items := []*model.MealItem{}
	err := repo.(*mealRepository).db.SelectContext(context.Background(), &items,
		`SELECT id, meal_id, food_id, sort_order, created_at FROM meal_items WHERE meal_id = $1 ORDER BY sort_order ASC`, mealID)
	require.NoError(t, err)
	return items
}

func itemFoodIDs(t *testing.T, repo MealRepository, mealID string) []string {
	t.Helper()

	items := mealItems(t, repo, mealID)

	ids := []string{}
	for _, item := range items {
		ids = append(ids, item.FoodID)
	}
	return ids
}
