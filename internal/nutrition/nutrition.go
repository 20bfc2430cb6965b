// Package nutrition derives micronutrient presence for foods, meals and days.
// All functions are pure; they never touch storage.
package nutrition

import (
	"slices"

	"github.com/midwaife/backend/internal/model"
)

// Display names of the core nutrients, in summary order.
const (
	NameCalcium   = "Calcium"
	NameIron      = "Iron"
	NameFolicAcid = "Folic Acid"
	NameProtein   = "Protein"
)

// FromNames builds a food's flags from the names found in food_nutrients.
// An empty list means nothing was looked up, so the tri-state nutrients stay unknown.
func FromNames(names []string) model.Micronutrients {
	m := model.Micronutrients{
		Calcium:   slices.Contains(names, model.NutrientCalcium),
		Iron:      slices.Contains(names, model.NutrientIron),
		FolicAcid: slices.Contains(names, model.NutrientFolate),
		Protein:   slices.Contains(names, model.NutrientProtein),
	}
	if len(names) > 0 {
		m.VitaminD = model.PresenceOf(slices.Contains(names, model.NutrientVitaminD))
		m.Omega3 = model.PresenceOf(slices.Contains(names, model.NutrientDHA))
		m.Fiber = model.PresenceOf(slices.Contains(names, model.NutrientFiber))
	}
	return m
}

// Names is the inverse of FromNames: the canonical names to link for a new food.
// Unknown and absent tri-state values both produce no link.
func Names(m model.Micronutrients) []string {
	var names []string
	if m.Calcium {
		names = append(names, model.NutrientCalcium)
	}
	if m.Iron {
		names = append(names, model.NutrientIron)
	}
	if m.FolicAcid {
		names = append(names, model.NutrientFolate)
	}
	if m.Protein {
		names = append(names, model.NutrientProtein)
	}
	if m.VitaminD.IsPresent() {
		names = append(names, model.NutrientVitaminD)
	}
	if m.Omega3.IsPresent() {
		names = append(names, model.NutrientDHA)
	}
	if m.Fiber.IsPresent() {
		names = append(names, model.NutrientFiber)
	}
	return names
}

// MapFood converts a stored food record plus its nutrient names into a Food.
func MapFood(rec *model.FoodRecord, names []string) model.Food {
	return model.Food{
		ID:                     rec.ID,
		Name:                   rec.Name,
		Portion:                rec.Portion,
		MacroCategory:          rec.MacroCategory,
		RainbowColor:           rec.RainbowColor,
		PhytonutrientFocus:     rec.PhytonutrientFocus,
		ContainsMicronutrients: FromNames(names),
		HasWarnings:            rec.HasWarnings(),
		WarningMessage:         rec.WarningMessage,
		WarningType:            rec.WarningType,
		Tags:                   rec.Tags,
		Description:            rec.Description,
	}
}
