package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/midwaife/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMealRepositoryOrdering(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)
	foods := NewFoodRepository(database)
	repo := NewMealRepository(database)

	a := createFood(t, foods, "A", "iron")
	b := createFood(t, foods, "B", "calcium")
	c := createFood(t, foods, "C")

	key := MealSlotKey{UserID: "u1", Date: "2024-01-05", DayOfWeek: "Friday", MealType: model.MealTypeSnack1}

	t.Run("append to a new slot starts at zero", func(t *testing.T) {
		item, err := repo.AppendItem(ctx, key, a.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, item.SortOrder)

		items := mealItems(t, repo, item.MealID)
		require.Len(t, items, 1)
		assert.Equal(t, a.ID, items[0].FoodID)
	})

	t.Run("add then add keeps order, remove leaves a gap", func(t *testing.T) {
		item, err := repo.AppendItem(ctx, key, b.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, item.SortOrder)
		assert.Equal(t, []string{a.ID, b.ID}, itemFoodIDs(t, repo, item.MealID))

		require.NoError(t, repo.RemoveItem(ctx, item.MealID, a.ID))

		next, err := repo.AppendItem(ctx, key, c.ID)
		require.NoError(t, err)
		assert.Equal(t, item.MealID, next.MealID)
		assert.Equal(t, 2, next.SortOrder)
		assert.Equal(t, []string{b.ID, c.ID}, itemFoodIDs(t, repo, item.MealID))
	})

	t.Run("remove missing item", func(t *testing.T) {
		item, err := repo.AppendItem(ctx, key, a.ID)
		require.NoError(t, err)
		require.NoError(t, repo.RemoveItem(ctx, item.MealID, a.ID))

		err = repo.RemoveItem(ctx, item.MealID, a.ID)
		assert.ErrorIs(t, err, ErrMealItemNotFound)
	})
}

func TestMealRepositoryReplace(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)
	foods := NewFoodRepository(database)
	repo := NewMealRepository(database)

	a := createFood(t, foods, "A")
	b := createFood(t, foods, "B")
	c := createFood(t, foods, "C")

	key := MealSlotKey{UserID: "u1", Date: "2024-01-06", DayOfWeek: "Saturday", MealType: model.MealTypeLunch}

	mealID, err := repo.ReplaceItems(ctx, key, []string{c.ID, a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{c.ID, a.ID, b.ID}, itemFoodIDs(t, repo, mealID))

	t.Run("idempotent", func(t *testing.T) {
		again, err := repo.ReplaceItems(ctx, key, []string{c.ID, a.ID, b.ID})
		require.NoError(t, err)
		assert.Equal(t, mealID, again)
		assert.Equal(t, []string{c.ID, a.ID, b.ID}, itemFoodIDs(t, repo, mealID))
	})

	t.Run("day of week may change, identity does not", func(t *testing.T) {
		changed := key
		changed.DayOfWeek = "Sat"
		again, err := repo.ReplaceItems(ctx, changed, []string{b.ID})
		require.NoError(t, err)
		assert.Equal(t, mealID, again)

		rows, err := repo.RangeRows(ctx, "u1", "2024-01-06", "2024-01-06")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Sat", rows[0].DayOfWeek)
	})

	t.Run("empty list keeps an empty slot", func(t *testing.T) {
		again, err := repo.ReplaceItems(ctx, key, nil)
		require.NoError(t, err)
		assert.Equal(t, mealID, again)
		assert.Empty(t, itemFoodIDs(t, repo, mealID))

		rows, err := repo.RangeRows(ctx, "u1", "2024-01-06", "2024-01-06")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Nil(t, rows[0].MealItemID)
		assert.Nil(t, rows[0].Food())
	})

	t.Run("delete removes header and items", func(t *testing.T) {
		_, err := repo.ReplaceItems(ctx, key, []string{a.ID})
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, mealID))
		assert.Empty(t, itemFoodIDs(t, repo, mealID))

		rows, err := repo.RangeRows(ctx, "u1", "2024-01-01", "2024-01-31")
		require.NoError(t, err)
		assert.Empty(t, rows)

		assert.ErrorIs(t, repo.Delete(ctx, mealID), ErrMealNotFound)
	})
}

func TestMealRepositoryRangeRows(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)
	foods := NewFoodRepository(database)
	repo := NewMealRepository(database)

	oats := createFood(t, foods, "Oatmeal", "iron")
	salad := createFood(t, foods, "Spinach Salad", "iron", "calcium")

	_, err := repo.ReplaceItems(ctx, MealSlotKey{"u1", "2024-01-05", "Friday", model.MealTypeLunch}, []string{salad.ID, oats.ID})
	require.NoError(t, err)
	_, err = repo.ReplaceItems(ctx, MealSlotKey{"u1", "2024-01-05", "Friday", model.MealTypeBreakfast}, []string{oats.ID})
	require.NoError(t, err)
	_, err = repo.ReplaceItems(ctx, MealSlotKey{"u1", "2024-01-04", "Thursday", model.MealTypeDinner}, []string{salad.ID})
	require.NoError(t, err)
	_, err = repo.ReplaceItems(ctx, MealSlotKey{"u2", "2024-01-05", "Friday", model.MealTypeDinner}, []string{salad.ID})
	require.NoError(t, err)

	rows, err := repo.RangeRows(ctx, "u1", "2024-01-04", "2024-01-05")
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "2024-01-04", rows[0].MealDate)
	assert.Equal(t, "Dinner", rows[0].MealType)

	assert.Equal(t, "2024-01-05", rows[1].MealDate)
	assert.Equal(t, "Breakfast", rows[1].MealType)

	assert.Equal(t, "Lunch", rows[2].MealType)
	require.NotNil(t, rows[2].FoodID)
	assert.Equal(t, salad.ID, *rows[2].FoodID)
	assert.Equal(t, oats.ID, *rows[3].FoodID)
	assert.Equal(t, "Oatmeal", rows[3].Food().Name)
	assert.True(t, rows[3].Food().IsSafePregnancy)

	none, err := repo.RangeRows(ctx, "u1", "2023-01-01", "2023-12-31")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReplaceItemsRollsBack(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewMealRepository(sqlx.NewDb(mockDB, "sqlmock"))
	key := MealSlotKey{UserID: "u1", Date: "2024-01-05", DayOfWeek: "Friday", MealType: model.MealTypeDinner}

	t.Run("insert failure", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO meals .* ON CONFLICT \(user_id, log_date, meal_type\)`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("meal-1"))
		mock.ExpectExec(`DELETE FROM meal_items WHERE meal_id = \$1`).
			WithArgs("meal-1").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`INSERT INTO meal_items \(id,meal_id,food_id,sort_order,created_at\) VALUES`).
			WillReturnError(errors.New("foreign key violation"))
		mock.ExpectRollback()

		_, err := repo.ReplaceItems(context.Background(), key, []string{"f1", "f2"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "foreign key violation")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("header failure", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO meals`).WillReturnError(errors.New("pool exhausted"))
		mock.ExpectRollback()

		_, err := repo.ReplaceItems(context.Background(), key, []string{"f1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pool exhausted")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAppendItemComputesNextOrder(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewMealRepository(sqlx.NewDb(mockDB, "sqlmock"))
	key := MealSlotKey{UserID: "u1", Date: "2024-01-05", DayOfWeek: "Friday", MealType: model.MealTypeSnack2}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO meals`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("meal-1"))
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(sort_order\), -1\) \+ 1 FROM meal_items WHERE meal_id = \$1`).
		WithArgs("meal-1").
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(7))
	mock.ExpectExec(`INSERT INTO meal_items`).
		WithArgs(sqlmock.AnyArg(), "meal-1", "food-9", 7, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	item, err := repo.AppendItem(context.Background(), key, "food-9")
	require.NoError(t, err)
	assert.Equal(t, 7, item.SortOrder)
	assert.Equal(t, "meal-1", item.MealID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMealRepositoryOwner(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)
	repo := NewMealRepository(database)

	mealID, err := repo.ReplaceItems(ctx, MealSlotKey{UserID: "u9", Date: "2024-06-01", DayOfWeek: "Saturday", MealType: model.MealTypeDinner}, nil)
	require.NoError(t, err)

	owner, err := repo.Owner(ctx, mealID)
	require.NoError(t, err)
	assert.Equal(t, "u9", owner)

	_, err = repo.Owner(ctx, "missing")
	assert.ErrorIs(t, err, ErrMealNotFound)
}
