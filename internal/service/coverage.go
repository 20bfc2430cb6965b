package service

import (
	"fmt"

	"github.com/midwaife/backend/internal/model"
	"github.com/midwaife/backend/internal/nutrition"
)

// buildDays groups the range join into one DayData per distinct date, in row
// order. Rows arrive sorted by date, so the output is ascending. Per-meal
// aggregates and the daily summary are computed after grouping.
func buildDays(rows []*model.MealRow, nutrients map[string][]string) ([]model.DayData, error) {
	days := []model.DayData{}
	index := make(map[string]int)

	for _, row := range rows {
		pos, ok := index[row.MealDate]
		if !ok {
			days = append(days, model.DayData{
				ID:           row.MealDate,
				Date:         row.MealDate,
				DayOfWeek:    row.DayOfWeek,
				DailySummary: nutrition.EmptySummary(),
			})
			pos = len(days) - 1
			index[row.MealDate] = pos
		}
		day := &days[pos]

		slot, err := model.MealType(row.MealType).Slot()
		if err != nil {
			return nil, fmt.Errorf("meal %s on %s: %w", row.MealID, row.MealDate, err)
		}

		meal := day.Meals[slot]
		if meal == nil {
			meal = &model.Meal{
				ID:    row.MealID,
				Type:  model.MealType(row.MealType),
				Items: []model.Food{},
				Notes: row.MealNotes,
			}
			day.Meals[slot] = meal
		}

		rec := row.Food()
		if rec != nil {
			meal.Items = append(meal.Items, nutrition.MapFood(rec, nutrients[rec.ID]))
		}
	}

	for i := range days {
		for _, meal := range days[i].Meals {
			if meal != nil {
				meal.ContainsMicronutrients = nutrition.AggregateMeal(meal.Items)
			}
		}
		days[i].DailySummary = nutrition.Summarize(days[i].Meals)
	}

	return days, nil
}

// foodIDs returns the distinct food ids referenced by the rows.
func foodIDs(rows []*model.MealRow) []string {
	seen := make(map[string]bool)
	ids := []string{}
	for _, row := range rows {
		if row.FoodID == nil || seen[*row.FoodID] {
			continue
		}
		seen[*row.FoodID] = true
		ids = append(ids, *row.FoodID)
	}
	return ids
}
