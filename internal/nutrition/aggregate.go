package nutrition

import (
	"github.com/midwaife/backend/internal/model"
)

// AggregateMeal ORs the flags of every item. For tri-state nutrients unknown
// items are skipped, and an OR over no definite values is Absent, never Unknown.
func AggregateMeal(items []model.Food) model.Micronutrients {
	out := model.Micronutrients{
		VitaminD: model.PresenceAbsent,
		Omega3:   model.PresenceAbsent,
		Fiber:    model.PresenceAbsent,
	}
	for _, item := range items {
		m := item.ContainsMicronutrients
		out.Calcium = out.Calcium || m.Calcium
		out.Iron = out.Iron || m.Iron
		out.FolicAcid = out.FolicAcid || m.FolicAcid
		out.Protein = out.Protein || m.Protein
		out.VitaminD = orKnown(out.VitaminD, m.VitaminD)
		out.Omega3 = orKnown(out.Omega3, m.Omega3)
		out.Fiber = orKnown(out.Fiber, m.Fiber)
	}
	return out
}

func orKnown(acc, v model.Presence) model.Presence {
	if v.IsPresent() {
		return model.PresencePresent
	}
	return acc
}

// Status classifies coverage by the number of distinct slots supplying a nutrient.
func Status(slots int) string {
	switch {
	case slots >= 2:
		return model.CoverageGood
	case slots == 1:
		return model.CoverageModerate
	default:
		return model.CoverageMissing
	}
}

type coreNutrient struct {
	name string
	has  func(model.Micronutrients) bool
	into func(*model.DailySummary) *model.NutrientStatus
}

var coreNutrients = []coreNutrient{
	{
		name: NameCalcium,
		has:  func(m model.Micronutrients) bool { return m.Calcium },
		into: func(s *model.DailySummary) *model.NutrientStatus { return &s.Calcium },
	},
	{
		name: NameIron,
		has:  func(m model.Micronutrients) bool { return m.Iron },
		into: func(s *model.DailySummary) *model.NutrientStatus { return &s.Iron },
	},
	{
		name: NameFolicAcid,
		has:  func(m model.Micronutrients) bool { return m.FolicAcid },
		into: func(s *model.DailySummary) *model.NutrientStatus { return &s.FolicAcid },
	},
	{
		name: NameProtein,
		has:  func(m model.Micronutrients) bool { return m.Protein },
		into: func(s *model.DailySummary) *model.NutrientStatus { return &s.Protein },
	},
}

// EmptySummary is the summary of a day with no meals.
func EmptySummary() model.DailySummary {
	return Summarize(model.DayMeals{})
}

// Summarize computes the daily summary from meals whose aggregate flags are
// already set. Slots are visited in canonical order.
func Summarize(meals model.DayMeals) model.DailySummary {
	var summary model.DailySummary

	for _, n := range coreNutrients {
		covered := []string{}
		for _, slot := range model.Slots {
			meal := meals[slot]
			if meal != nil && n.has(meal.ContainsMicronutrients) {
				covered = append(covered, slot.Key())
			}
		}

		status := n.into(&summary)
		status.Covered = len(covered) > 0
		status.MealsCovered = covered
		status.Status = Status(len(covered))
	}

	summary.MissingNutrients = []string{}
	for _, n := range coreNutrients {
		if !n.into(&summary).Covered {
			summary.MissingNutrients = append(summary.MissingNutrients, n.name)
		}
	}

	for _, meal := range meals {
		if meal == nil {
			continue
		}
		for _, item := range meal.Items {
			if item.HasWarnings {
				summary.HasWarnings = true
			}
		}
	}

	return summary
}
