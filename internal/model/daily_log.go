package model

import (
	"time"
)

const (
	SleepPoor      = "poor"
	SleepFair      = "fair"
	SleepGood      = "good"
	SleepExcellent = "excellent"

	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

type DailyLog struct {
	ID              string     `db:"id" json:"id"`
	UserID          string     `db:"user_id" json:"user_id"`
	LogDate         string     `db:"log_date" json:"log_date"`
	SleepHours      *float64   `db:"sleep_hours" json:"sleep_hours"`
	SleepQuality    *string    `db:"sleep_quality" json:"sleep_quality"`
	SleepNotes      *string    `db:"sleep_notes" json:"sleep_notes"`
	Symptoms        StringList `db:"symptoms" json:"symptoms"`
	SymptomSeverity *string    `db:"symptom_severity" json:"symptom_severity"`
	SymptomNotes    *string    `db:"symptom_notes" json:"symptom_notes"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       *time.Time `db:"updated_at" json:"updated_at"`
}

type DailyLogUpsert struct {
	UserID          string     `json:"user_id"`
	LogDate         string     `json:"log_date"`
	SleepHours      *float64   `json:"sleep_hours"`
	SleepQuality    *string    `json:"sleep_quality"`
	SleepNotes      *string    `json:"sleep_notes"`
	Symptoms        StringList `json:"symptoms"`
	SymptomSeverity *string    `json:"symptom_severity"`
	SymptomNotes    *string    `json:"symptom_notes"`
}
