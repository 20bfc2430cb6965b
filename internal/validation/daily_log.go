package validation

import (
	"slices"

	"github.com/midwaife/backend/internal/model"
)

var sleepQualities = []string{model.SleepPoor, model.SleepFair, model.SleepGood, model.SleepExcellent}

var symptomSeverities = []string{model.SeverityMild, model.SeverityModerate, model.SeveritySevere}

func ValidateDailyLog(in *model.DailyLogUpsert) error {
	err := ValidateRequired("user_id", in.UserID)
	if err != nil {
		return err
	}
	_, err = ParseDate("log_date", in.LogDate)
	if err != nil {
		return err
	}
	if in.SleepHours != nil && (*in.SleepHours < 0 || *in.SleepHours > 24) {
		return invalid("sleep_hours", "must be between 0 and 24")
	}
	if in.SleepQuality != nil && !slices.Contains(sleepQualities, *in.SleepQuality) {
		return invalid("sleep_quality", "must be one of poor, fair, good, excellent")
	}
	if in.SymptomSeverity != nil && !slices.Contains(symptomSeverities, *in.SymptomSeverity) {
		return invalid("symptom_severity", "must be one of mild, moderate, severe")
	}
	return nil
}
