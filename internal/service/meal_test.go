package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/midwaife/backend/internal/model"
	"github.com/midwaife/backend/internal/repository"
	"github.com/midwaife/backend/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMealServiceCatalog(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMealService(t, nil)

	created, err := svc.CreateFood(ctx, &model.FoodCreate{
		Name:                   "  Greek Yogurt ",
		RainbowColor:           ptr(model.RainbowWhiteBrown),
		ContainsMicronutrients: model.Micronutrients{Calcium: true, Protein: true, VitaminD: model.PresencePresent},
	})
	require.NoError(t, err)
	assert.Equal(t, "Greek Yogurt", created.Name)
	assert.True(t, created.ContainsMicronutrients.Calcium)
	assert.Equal(t, model.PresencePresent, created.ContainsMicronutrients.VitaminD)
	assert.Equal(t, model.PresenceAbsent, created.ContainsMicronutrients.Fiber)

	found, err := svc.FoodByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ContainsMicronutrients, found.ContainsMicronutrients)

	results, err := svc.SearchFoods(ctx, "yog")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].ContainsMicronutrients.Protein)

	_, err = svc.CreateFood(ctx, &model.FoodCreate{Name: " "})
	assert.ErrorIs(t, err, validation.ErrInvalid)

	_, err = svc.FoodByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrFoodNotFound)
}

func TestMealServiceDayRange(t *testing.T) {
	ctx := context.Background()
	svc, foods := newMealService(t, nil)

	oatmeal := createFood(t, foods, "Oatmeal", model.NutrientIron)
	spinach := createFood(t, foods, "Spinach Salad", model.NutrientIron, model.NutrientCalcium)

	_, err := svc.UpsertMeal(ctx, &model.MealUpsert{
		UserID: "u1", Date: "2024-01-01", DayOfWeek: "Monday",
		MealType: model.MealTypeBreakfast, FoodItemIDs: []string{oatmeal.ID},
	})
	require.NoError(t, err)
	_, err = svc.UpsertMeal(ctx, &model.MealUpsert{
		UserID: "u1", Date: "2024-01-01", DayOfWeek: "Monday",
		MealType: model.MealTypeLunch, FoodItemIDs: []string{spinach.ID},
	})
	require.NoError(t, err)

	days, err := svc.DayRange(ctx, "u1", "2024-01-01", "2024-01-07")
	require.NoError(t, err)
	require.Len(t, days, 1)

	summary := days[0].DailySummary
	assert.Equal(t, model.CoverageGood, summary.Iron.Status)
	assert.Equal(t, []string{"breakfast", "lunch"}, summary.Iron.MealsCovered)
	assert.Equal(t, model.CoverageModerate, summary.Calcium.Status)
	assert.Equal(t, []string{"lunch"}, summary.Calcium.MealsCovered)
	assert.Equal(t, []string{"Folic Acid", "Protein"}, summary.MissingNutrients)
	assert.False(t, summary.HasWarnings)

	week, err := svc.Week(ctx, "u1", "2023-12-26")
	require.NoError(t, err)
	assert.Len(t, week, 1)

	other, err := svc.DayRange(ctx, "u2", "2024-01-01", "2024-01-07")
	require.NoError(t, err)
	assert.Empty(t, other)

	_, err = svc.DayRange(ctx, "u1", "2024-01-07", "2024-01-01")
	assert.ErrorIs(t, err, validation.ErrInvalid)
}

func TestMealServiceItems(t *testing.T) {
	ctx := context.Background()
	svc, foods := newMealService(t, nil)

	a := createFood(t, foods, "A")
	b := createFood(t, foods, "B")

	add := &model.MealItemAdd{UserID: "u1", Date: "2024-02-01", DayOfWeek: "Thursday", MealType: model.MealTypeSnack1}

	add.FoodItemID = a.ID
	first, err := svc.AddMealItem(ctx, add)
	require.NoError(t, err)

	add.FoodItemID = b.ID
	second, err := svc.AddMealItem(ctx, add)
	require.NoError(t, err)
	assert.Equal(t, first.MealID, second.MealID)
	assert.Greater(t, second.SortOrder, first.SortOrder)

	add.FoodItemID = "nope"
	_, err = svc.AddMealItem(ctx, add)
	assert.ErrorIs(t, err, validation.ErrInvalid)

	require.NoError(t, svc.RemoveMealItem(ctx, first.MealID, a.ID))
	assert.ErrorIs(t, svc.RemoveMealItem(ctx, first.MealID, a.ID), repository.ErrMealItemNotFound)

	days, err := svc.DayRange(ctx, "u1", "2024-02-01", "2024-02-01")
	require.NoError(t, err)
	require.Len(t, days, 1)
	snack := days[0].Meals.Get(model.SlotSnack1)
	require.NotNil(t, snack)
	require.Len(t, snack.Items, 1)
	assert.Equal(t, b.ID, snack.Items[0].ID)

	require.NoError(t, svc.DeleteMeal(ctx, first.MealID))
	assert.ErrorIs(t, svc.DeleteMeal(ctx, first.MealID), repository.ErrMealNotFound)

	_, err = svc.UpsertMeal(ctx, &model.MealUpsert{
		UserID: "u1", Date: "2024-02-01", DayOfWeek: "Thursday", MealType: "Brunch",
	})
	assert.ErrorIs(t, err, validation.ErrInvalid)
}

func TestMealServiceExport(t *testing.T) {
	ctx := context.Background()

	t.Run("inline without storage", func(t *testing.T) {
		svc, foods := newMealService(t, nil)
		food := createFood(t, foods, "Lentils", model.NutrientFolate, model.NutrientIron)

		_, err := svc.UpsertMeal(ctx, &model.MealUpsert{
			UserID: "u1", Date: "2024-03-01", DayOfWeek: "Friday",
			MealType: model.MealTypeDinner, FoodItemIDs: []string{food.ID},
		})
		require.NoError(t, err)

		export, err := svc.ExportRange(ctx, "u1", "2024-03-01", "2024-03-31")
		require.NoError(t, err)
		assert.Empty(t, export.URL)
		assert.Equal(t, "coverage-2024-03-01-2024-03-31.json", export.Filename)

		var days []model.DayData
		require.NoError(t, json.Unmarshal(export.Data, &days))
		require.Len(t, days, 1)
		assert.True(t, days[0].DailySummary.FolicAcid.Covered)
	})

	t.Run("uploaded with storage", func(t *testing.T) {
		store := newMemoryStorage()
		svc, _ := newMealService(t, store)

		export, err := svc.ExportRange(ctx, "u1", "2024-03-01", "2024-03-31")
		require.NoError(t, err)
		require.Len(t, store.objects, 1)
		assert.Contains(t, export.URL, "https://exports.test/exports/u1/")

		for _, data := range store.objects {
			assert.JSONEq(t, "[]", string(data))
		}
	})
}
