package model

type Milestone struct {
	ID                    string  `db:"id" json:"id"`
	WeekNumber            int     `db:"week_number" json:"weekNumber"`
	NHSSizeComparison     *string `db:"nhs_size_comparison" json:"nhsSizeComparison"`
	DevelopmentMilestone  string  `db:"development_milestone" json:"developmentMilestone"`
	NutritionalFocusColor *string `db:"nutritional_focus_color" json:"nutritionalFocusColor"`
	KeyNutrient           *string `db:"key_nutrient" json:"keyNutrient"`
	ActionTip             *string `db:"action_tip" json:"actionTip"`
	SourceURL             *string `db:"source_url" json:"sourceUrl"`
}
