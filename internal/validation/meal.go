package validation

import (
	"slices"
	"strings"
	"time"

	"github.com/midwaife/backend/internal/model"
)

const DateLayout = "2006-01-02"

// MaxRangeDays bounds a single coverage read.
const MaxRangeDays = 366

// ParseDate validates a YYYY-MM-DD date.
func ParseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, invalid(field, "is required")
	}
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, invalid(field, "must be a YYYY-MM-DD date")
	}
	return d, nil
}

// ValidateDateRange checks an inclusive start/end pair.
func ValidateDateRange(start, end string) error {
	s, err := ParseDate("start_date", start)
	if err != nil {
		return err
	}
	e, err := ParseDate("end_date", end)
	if err != nil {
		return err
	}
	if e.Before(s) {
		return invalid("end_date", "must not be before start_date")
	}
	if e.Sub(s) >= MaxRangeDays*24*time.Hour {
		return invalid("end_date", "range must not exceed %d days", MaxRangeDays)
	}
	return nil
}

// ValidateMealType rejects labels outside the five known slots.
func ValidateMealType(t model.MealType) (model.MealSlot, error) {
	slot, err := t.Slot()
	if err != nil {
		return 0, invalid("mealType", "must be one of Breakfast, Snack 1, Lunch, Snack 2, Dinner")
	}
	return slot, nil
}

func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid(field, "is required")
	}
	return nil
}

func ValidateRainbowColor(color *string) error {
	if color == nil || *color == "" {
		return nil
	}
	if !slices.Contains(model.RainbowColors, *color) {
		return invalid("rainbowColor", "must be one of %s", strings.Join(model.RainbowColors, ", "))
	}
	return nil
}

func ValidateFoodCreate(in *model.FoodCreate) error {
	err := ValidateName("name", in.Name)
	if err != nil {
		return err
	}
	return ValidateRainbowColor(in.RainbowColor)
}

func ValidateMealUpsert(in *model.MealUpsert) error {
	err := ValidateRequired("userId", in.UserID)
	if err != nil {
		return err
	}
	_, err = ParseDate("date", in.Date)
	if err != nil {
		return err
	}
	err = ValidateRequired("dayOfWeek", in.DayOfWeek)
	if err != nil {
		return err
	}
	_, err = ValidateMealType(in.MealType)
	if err != nil {
		return err
	}
	for _, id := range in.FoodItemIDs {
		if strings.TrimSpace(id) == "" {
			return invalid("foodItemIds", "must not contain empty ids")
		}
	}
	return nil
}

func ValidateMealItemAdd(in *model.MealItemAdd) error {
	err := ValidateRequired("userId", in.UserID)
	if err != nil {
		return err
	}
	_, err = ParseDate("date", in.Date)
	if err != nil {
		return err
	}
	err = ValidateRequired("dayOfWeek", in.DayOfWeek)
	if err != nil {
		return err
	}
	_, err = ValidateMealType(in.MealType)
	if err != nil {
		return err
	}
	return ValidateRequired("foodItemId", in.FoodItemID)
}
