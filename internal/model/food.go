package model

import "time"

// Canonical nutrient names as stored in the nutrients table.
// Folic acid is stored as "folate" and omega-3 as "dha".
const (
	NutrientCalcium  = "calcium"
	NutrientIron     = "iron"
	NutrientFolate   = "folate"
	NutrientProtein  = "protein"
	NutrientVitaminD = "vitamin_d"
	NutrientDHA      = "dha"
	NutrientFiber    = "fiber"
)

// Rainbow color groups used for variety tracking.
const (
	RainbowRed          = "red"
	RainbowOrangeYellow = "orange-yellow"
	RainbowGreen        = "green"
	RainbowBluePurple   = "blue-purple"
	RainbowWhiteBrown   = "white-brown"
)

var RainbowColors = []string{
	RainbowRed,
	RainbowOrangeYellow,
	RainbowGreen,
	RainbowBluePurple,
	RainbowWhiteBrown,
}

// Micronutrients holds presence flags for a food or an aggregated meal.
// The four core nutrients are always definite; the last three may be unknown.
type Micronutrients struct {
	Calcium   bool     `json:"calcium"`
	Iron      bool     `json:"iron"`
	FolicAcid bool     `json:"folicAcid"`
	Protein   bool     `json:"protein"`
	VitaminD  Presence `json:"vitaminD"`
	Omega3    Presence `json:"omega3"`
	Fiber     Presence `json:"fiber"`
}

type Food struct {
	ID                     string         `json:"id"`
	Name                   string         `json:"name"`
	Portion                *string        `json:"portion"`
	MacroCategory          *string        `json:"macroCategory"`
	RainbowColor           *string        `json:"rainbowColor"`
	PhytonutrientFocus     *string        `json:"phytonutrientFocus"`
	ContainsMicronutrients Micronutrients `json:"containsMicronutrients"`
	HasWarnings            bool           `json:"hasWarnings"`
	WarningMessage         *string        `json:"warningMessage"`
	WarningType            *string        `json:"warningType"`
	Tags                   StringList     `json:"tags"`
	Description            *string        `json:"description"`
}

// FoodRecord is the stored shape of a food row. Micronutrient presence is
// never stored here; it lives in food_nutrients.
type FoodRecord struct {
	ID                 string     `db:"id"`
	Name               string     `db:"name"`
	Portion            *string    `db:"portion"`
	MacroCategory      *string    `db:"macro_category"`
	RainbowColor       *string    `db:"rainbow_color"`
	PhytonutrientFocus *string    `db:"phytonutrient_focus"`
	IsSafePregnancy    bool       `db:"is_safe_pregnancy"`
	WarningMessage     *string    `db:"warning_message"`
	WarningType        *string    `db:"warning_type"`
	Tags               StringList `db:"tags"`
	Description        *string    `db:"description"`
	CreatedAt          time.Time  `db:"created_at"`
}

// HasWarnings reports whether the food carries a safety warning.
func (f *FoodRecord) HasWarnings() bool {
	return !f.IsSafePregnancy || (f.WarningMessage != nil && *f.WarningMessage != "")
}

type FoodCreate struct {
	Name                   string         `json:"name"`
	Portion                *string        `json:"portion"`
	MacroCategory          *string        `json:"macroCategory"`
	RainbowColor           *string        `json:"rainbowColor"`
	PhytonutrientFocus     *string        `json:"phytonutrientFocus"`
	ContainsMicronutrients Micronutrients `json:"containsMicronutrients"`
	HasWarnings            bool           `json:"hasWarnings"`
	WarningMessage         *string        `json:"warningMessage"`
	WarningType            *string        `json:"warningType"`
	Tags                   StringList     `json:"tags"`
	Description            *string        `json:"description"`
}
