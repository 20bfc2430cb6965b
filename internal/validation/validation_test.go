package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/midwaife/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestValidateDateRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		wantErr    bool
	}{
		{"same day", "2024-01-05", "2024-01-05", false},
		{"week", "2024-01-01", "2024-01-07", false},
		{"reversed", "2024-01-07", "2024-01-01", true},
		{"bad start", "01/05/2024", "2024-01-05", true},
		{"missing end", "2024-01-05", "", true},
		{"too long", "2023-01-01", "2024-06-01", true},
		{"366 days inclusive", "2024-01-01", "2024-12-31", false},
		{"367 days inclusive", "2024-01-01", "2025-01-01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDateRange(tt.start, tt.end)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalid))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateMealType(t *testing.T) {
	slot, err := ValidateMealType("Snack 2")
	require.NoError(t, err)
	assert.Equal(t, model.SlotSnack2, slot)

	_, err = ValidateMealType("Supper")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "mealType", verr.Field)
}

func TestValidateMealUpsert(t *testing.T) {
	valid := model.MealUpsert{UserID: "u1", Date: "2024-01-05", DayOfWeek: "Friday", MealType: "Lunch", FoodItemIDs: []string{}}
	assert.NoError(t, ValidateMealUpsert(&valid))

	noUser := valid
	noUser.UserID = " "
	assert.Error(t, ValidateMealUpsert(&noUser))

	blankID := valid
	blankID.FoodItemIDs = []string{"a", ""}
	assert.Error(t, ValidateMealUpsert(&blankID))

	badType := valid
	badType.MealType = "lunch"
	assert.Error(t, ValidateMealUpsert(&badType))
}

func TestValidateMealItemAdd(t *testing.T) {
	in := model.MealItemAdd{UserID: "u1", Date: "2024-01-05", DayOfWeek: "Friday", MealType: "Snack 1", FoodItemID: "f1"}
	assert.NoError(t, ValidateMealItemAdd(&in))

	in.FoodItemID = ""
	assert.Error(t, ValidateMealItemAdd(&in))
}

func TestValidateFoodCreate(t *testing.T) {
	assert.NoError(t, ValidateFoodCreate(&model.FoodCreate{Name: "Kale", RainbowColor: ptr("green")}))
	assert.NoError(t, ValidateFoodCreate(&model.FoodCreate{Name: "Kale"}))
	assert.Error(t, ValidateFoodCreate(&model.FoodCreate{Name: ""}))
	assert.Error(t, ValidateFoodCreate(&model.FoodCreate{Name: strings.Repeat("x", 101)}))
	assert.Error(t, ValidateFoodCreate(&model.FoodCreate{Name: "Kale", RainbowColor: ptr("teal")}))
}

func TestValidateDailyLog(t *testing.T) {
	in := model.DailyLogUpsert{UserID: "u1", LogDate: "2024-01-05", SleepHours: ptr(7.5), SleepQuality: ptr("good")}
	assert.NoError(t, ValidateDailyLog(&in))

	in.SleepHours = ptr(25.0)
	assert.Error(t, ValidateDailyLog(&in))

	in.SleepHours = nil
	in.SymptomSeverity = ptr("extreme")
	assert.Error(t, ValidateDailyLog(&in))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("mum@example.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
}
