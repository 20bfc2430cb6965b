package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrUnknownMealType = errors.New("unknown meal type")

// MealType is the stored slot label, e.g. "Snack 1".
type MealType string

const (
	MealTypeBreakfast MealType = "Breakfast"
	MealTypeSnack1    MealType = "Snack 1"
	MealTypeLunch     MealType = "Lunch"
	MealTypeSnack2    MealType = "Snack 2"
	MealTypeDinner    MealType = "Dinner"
)

// MealSlot is the canonical position of a meal within a day.
type MealSlot int

const (
	SlotBreakfast MealSlot = iota
	SlotSnack1
	SlotLunch
	SlotSnack2
	SlotDinner

	SlotCount = 5
)

// Slots lists every slot in canonical day order.
var Slots = [SlotCount]MealSlot{SlotBreakfast, SlotSnack1, SlotLunch, SlotSnack2, SlotDinner}

var slotKeys = [SlotCount]string{"breakfast", "snack1", "lunch", "snack2", "dinner"}

var slotTypes = [SlotCount]MealType{MealTypeBreakfast, MealTypeSnack1, MealTypeLunch, MealTypeSnack2, MealTypeDinner}

// Key returns the JSON key of the slot ("snack1").
func (s MealSlot) Key() string {
	return slotKeys[s]
}

// Type returns the stored label of the slot ("Snack 1").
func (s MealSlot) Type() MealType {
	return slotTypes[s]
}

// Slot maps a stored label to its slot. Matching is exact: case and spacing matter.
func (t MealType) Slot() (MealSlot, error) {
	switch t {
	case MealTypeBreakfast:
		return SlotBreakfast, nil
	case MealTypeSnack1:
		return SlotSnack1, nil
	case MealTypeLunch:
		return SlotLunch, nil
	case MealTypeSnack2:
		return SlotSnack2, nil
	case MealTypeDinner:
		return SlotDinner, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMealType, string(t))
}

type Meal struct {
	ID                     string         `json:"id"`
	Type                   MealType       `json:"type"`
	Items                  []Food         `json:"items"`
	ContainsMicronutrients Micronutrients `json:"containsMicronutrients"`
	Notes                  *string        `json:"notes"`
}

// DayMeals holds up to one meal per slot. Absent slots are nil.
type DayMeals [SlotCount]*Meal

func (d DayMeals) Get(slot MealSlot) *Meal {
	return d[slot]
}

func (d DayMeals) MarshalJSON() ([]byte, error) {
	out := make(map[string]*Meal, SlotCount)
	for _, slot := range Slots {
		out[slot.Key()] = d[slot]
	}
	return json.Marshal(out)
}

func (d *DayMeals) UnmarshalJSON(data []byte) error {
	var in map[string]*Meal
	err := json.Unmarshal(data, &in)
	if err != nil {
		return err
	}
	for _, slot := range Slots {
		d[slot] = in[slot.Key()]
	}
	return nil
}

const (
	CoverageMissing  = "missing"
	CoverageModerate = "moderate"
	CoverageGood     = "good"
)

type NutrientStatus struct {
	Covered      bool     `json:"covered"`
	MealsCovered []string `json:"mealsCovered"`
	Status       string   `json:"status"`
}

type DailySummary struct {
	Calcium          NutrientStatus `json:"calcium"`
	Iron             NutrientStatus `json:"iron"`
	FolicAcid        NutrientStatus `json:"folicAcid"`
	Protein          NutrientStatus `json:"protein"`
	HasWarnings      bool           `json:"hasWarnings"`
	MissingNutrients []string       `json:"missingNutrients"`
}

// DayData is the per-day coverage view. It is rebuilt on every read.
type DayData struct {
	ID           string       `json:"id"`
	Date         string       `json:"date"`
	DayOfWeek    string       `json:"dayOfWeek"`
	Meals        DayMeals     `json:"meals"`
	DailySummary DailySummary `json:"dailySummary"`
}

// MealRow is one row of the meal/meal_item/food range join. Item and food
// columns are nil for meals without items.
type MealRow struct {
	MealID     string  `db:"meal_id"`
	MealDate   string  `db:"meal_date"`
	DayOfWeek  string  `db:"day_of_week"`
	MealType   string  `db:"meal_type"`
	MealNotes  *string `db:"meal_notes"`
	MealItemID *string `db:"meal_item_id"`
	SortOrder  *int    `db:"sort_order"`

	FoodID             *string    `db:"food_id"`
	Name               *string    `db:"name"`
	Portion            *string    `db:"portion"`
	MacroCategory      *string    `db:"macro_category"`
	RainbowColor       *string    `db:"rainbow_color"`
	PhytonutrientFocus *string    `db:"phytonutrient_focus"`
	IsSafePregnancy    *bool      `db:"is_safe_pregnancy"`
	WarningMessage     *string    `db:"warning_message"`
	WarningType        *string    `db:"warning_type"`
	Tags               StringList `db:"tags"`
	Description        *string    `db:"description"`
}

// Food returns the joined food record, or nil when the row has no item.
func (r *MealRow) Food() *FoodRecord {
	if r.FoodID == nil {
		return nil
	}
	rec := &FoodRecord{
		ID:                 *r.FoodID,
		Portion:            r.Portion,
		MacroCategory:      r.MacroCategory,
		RainbowColor:       r.RainbowColor,
		PhytonutrientFocus: r.PhytonutrientFocus,
		IsSafePregnancy:    true,
		WarningMessage:     r.WarningMessage,
		WarningType:        r.WarningType,
		Tags:               r.Tags,
		Description:        r.Description,
	}
	if r.Name != nil {
		rec.Name = *r.Name
	}
	if r.IsSafePregnancy != nil {
		rec.IsSafePregnancy = *r.IsSafePregnancy
	}
	return rec
}

type MealUpsert struct {
	UserID      string   `json:"userId"`
	Date        string   `json:"date"`
	DayOfWeek   string   `json:"dayOfWeek"`
	MealType    MealType `json:"mealType"`
	FoodItemIDs []string `json:"foodItemIds"`
}

type MealItemAdd struct {
	UserID     string   `json:"userId"`
	Date       string   `json:"date"`
	DayOfWeek  string   `json:"dayOfWeek"`
	MealType   MealType `json:"mealType"`
	FoodItemID string   `json:"foodItemId"`
}

// MealItem is one ordered food reference inside a meal slot.
type MealItem struct {
	ID        string    `db:"id" json:"id"`
	MealID    string    `db:"meal_id" json:"mealId"`
	FoodID    string    `db:"food_id" json:"foodId"`
	SortOrder int       `db:"sort_order" json:"sortOrder"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
