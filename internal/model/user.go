package model

import (
	"time"
)

const (
	UnitMetric   = "metric"
	UnitImperial = "imperial"
)

type User struct {
	ID                  string     `db:"id" json:"id"`
	Email               string     `db:"email" json:"email"`
	FirstName           string     `db:"first_name" json:"firstName"`
	DueDate             *string    `db:"due_date" json:"dueDate"`
	LastPeriodDate      *string    `db:"last_period_date" json:"lastPeriodDate"`
	DietaryRestrictions StringList `db:"dietary_restrictions" json:"dietaryRestrictions"`
	PreferredUnit       string     `db:"preferred_unit" json:"preferredUnit"`
	DailyCaffeineLimit  int        `db:"daily_caffeine_limit" json:"dailyCaffeineLimit"`
	NotificationOptIn   bool       `db:"notification_opt_in" json:"notificationOptIn"`
	CreatedAt           time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt           *time.Time `db:"updated_at" json:"updatedAt"`
}
