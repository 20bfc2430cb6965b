package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/midwaife/backend/internal/model"
	"github.com/midwaife/backend/internal/nutrition"
	"github.com/midwaife/backend/internal/repository"
	"github.com/midwaife/backend/internal/storage"
	"github.com/midwaife/backend/internal/validation"
)

type MealService struct {
	foodRepo repository.FoodRepository
	mealRepo repository.MealRepository
	storage  storage.Storage
}

// NewMealService wires the catalog and meal repositories. storage may be nil,
// in which case exports are returned inline only.
func NewMealService(foodRepo repository.FoodRepository, mealRepo repository.MealRepository, storage storage.Storage) *MealService {
	return &MealService{
		foodRepo: foodRepo,
		mealRepo: mealRepo,
		storage:  storage,
	}
}

// ============================================================================
// FOOD CATALOG
// ============================================================================

func (s *MealService) Foods(ctx context.Context) ([]model.Food, error) {
	records, err := s.foodRepo.Foods(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}
	return s.mapFoods(ctx, records)
}

func (s *MealService) SearchFoods(ctx context.Context, query string) ([]model.Food, error) {
	records, err := s.foodRepo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search foods: %w", err)
	}
	return s.mapFoods(ctx, records)
}

func (s *MealService) FoodByID(ctx context.Context, id string) (*model.Food, error) {
	record, err := s.foodRepo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	names, err := s.foodRepo.NutrientNames(ctx, []string{record.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to load nutrients: %w", err)
	}

	food := nutrition.MapFood(record, names[record.ID])
	return &food, nil
}

func (s *MealService) CreateFood(ctx context.Context, in *model.FoodCreate) (*model.Food, error) {
	err := validation.ValidateFoodCreate(in)
	if err != nil {
		return nil, err
	}

	record := &model.FoodRecord{
		ID:                 uuid.New().String(),
		Name:               strings.TrimSpace(in.Name),
		Portion:            in.Portion,
		MacroCategory:      in.MacroCategory,
		RainbowColor:       in.RainbowColor,
		PhytonutrientFocus: in.PhytonutrientFocus,
		IsSafePregnancy:    !in.HasWarnings,
		WarningMessage:     in.WarningMessage,
		WarningType:        in.WarningType,
		Tags:               in.Tags,
		Description:        in.Description,
		CreatedAt:          time.Now(),
	}
	names := nutrition.Names(in.ContainsMicronutrients)

	err = s.foodRepo.Create(ctx, record, names)
	if err != nil {
		return nil, fmt.Errorf("failed to create food: %w", err)
	}

	slog.Info("food created", "food_id", record.ID, "name", record.Name, "nutrients", names)

	food := nutrition.MapFood(record, names)
	return &food, nil
}

// mapFoods resolves nutrients for all records with one batched lookup.
func (s *MealService) mapFoods(ctx context.Context, records []*model.FoodRecord) ([]model.Food, error) {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}

	names, err := s.foodRepo.NutrientNames(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load nutrients: %w", err)
	}

	foods := make([]model.Food, 0, len(records))
	for _, r := range records {
		foods = append(foods, nutrition.MapFood(r, names[r.ID]))
	}
	return foods, nil
}

// ============================================================================
// DAY COVERAGE
// ============================================================================

// DayRange rebuilds one coverage record per date that has at least one meal in
// [startDate, endDate]. Dates without meals are not synthesized.
func (s *MealService) DayRange(ctx context.Context, userID, startDate, endDate string) ([]model.DayData, error) {
	err := validation.ValidateRequired("user_id", userID)
	if err != nil {
		return nil, err
	}
	err = validation.ValidateDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	rows, err := s.mealRepo.RangeRows(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load meals: %w", err)
	}

	names, err := s.foodRepo.NutrientNames(ctx, foodIDs(rows))
	if err != nil {
		return nil, fmt.Errorf("failed to load nutrients: %w", err)
	}

	return buildDays(rows, names)
}

// Week is DayRange over the seven days starting at startDate.
func (s *MealService) Week(ctx context.Context, userID, startDate string) ([]model.DayData, error) {
	start, err := validation.ParseDate("start_date", startDate)
	if err != nil {
		return nil, err
	}
	end := start.AddDate(0, 0, 6).Format(validation.DateLayout)
	return s.DayRange(ctx, userID, startDate, end)
}

// ============================================================================
// MEAL ITEMS
// ============================================================================

// UpsertMeal replaces the slot's items with in.FoodItemIDs in the given order.
// An empty list leaves an empty slot.
func (s *MealService) UpsertMeal(ctx context.Context, in *model.MealUpsert) (string, error) {
	err := validation.ValidateMealUpsert(in)
	if err != nil {
		return "", err
	}

	err = s.ensureFoods(ctx, in.FoodItemIDs)
	if err != nil {
		return "", err
	}

	mealID, err := s.mealRepo.ReplaceItems(ctx, slotKey(in.UserID, in.Date, in.DayOfWeek, in.MealType), in.FoodItemIDs)
	if err != nil {
		return "", fmt.Errorf("failed to upsert meal: %w", err)
	}

	slog.Debug("meal upserted", "meal_id", mealID, "user_id", in.UserID, "date", in.Date, "meal_type", in.MealType, "items", len(in.FoodItemIDs))
	return mealID, nil
}

// AddMealItem appends one food to the slot, creating the slot if needed.
func (s *MealService) AddMealItem(ctx context.Context, in *model.MealItemAdd) (*model.MealItem, error) {
	err := validation.ValidateMealItemAdd(in)
	if err != nil {
		return nil, err
	}

	err = s.ensureFoods(ctx, []string{in.FoodItemID})
	if err != nil {
		return nil, err
	}

	item, err := s.mealRepo.AppendItem(ctx, slotKey(in.UserID, in.Date, in.DayOfWeek, in.MealType), in.FoodItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to add meal item: %w", err)
	}

	slog.Debug("meal item added", "meal_id", item.MealID, "food_id", item.FoodID, "sort_order", item.SortOrder)
	return item, nil
}

func (s *MealService) RemoveMealItem(ctx context.Context, mealID, foodID string) error {
	err := validation.ValidateRequired("meal_id", mealID)
	if err != nil {
		return err
	}
	err = validation.ValidateRequired("food_item_id", foodID)
	if err != nil {
		return err
	}

	return s.mealRepo.RemoveItem(ctx, mealID, foodID)
}

// MealOwner returns the user a meal belongs to.
func (s *MealService) MealOwner(ctx context.Context, mealID string) (string, error) {
	err := validation.ValidateRequired("meal_id", mealID)
	if err != nil {
		return "", err
	}
	return s.mealRepo.Owner(ctx, mealID)
}

func (s *MealService) DeleteMeal(ctx context.Context, mealID string) error {
	err := validation.ValidateRequired("meal_id", mealID)
	if err != nil {
		return err
	}

	return s.mealRepo.Delete(ctx, mealID)
}

func (s *MealService) ensureFoods(ctx context.Context, ids []string) error {
	missing, err := s.foodRepo.MissingIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to check foods: %w", err)
	}
	if len(missing) > 0 {
		return &validation.Error{Field: "foodItemIds", Message: "unknown foods: " + strings.Join(missing, ", ")}
	}
	return nil
}

func slotKey(userID, date, dayOfWeek string, mealType model.MealType) repository.MealSlotKey {
	return repository.MealSlotKey{
		UserID:    userID,
		Date:      date,
		DayOfWeek: dayOfWeek,
		MealType:  mealType,
	}
}

// ============================================================================
// EXPORT
// ============================================================================

type Export struct {
	Filename string
	Data     []byte
	URL      string // Set when the export was uploaded to object storage
}

// ExportRange serializes the coverage view for a range. With object storage
// configured the file is uploaded and a presigned URL returned.
func (s *MealService) ExportRange(ctx context.Context, userID, startDate, endDate string) (*Export, error) {
	days, err := s.DayRange(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(days, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}

	export := &Export{
		Filename: fmt.Sprintf("coverage-%s-%s.json", startDate, endDate),
		Data:     data,
	}

	if s.storage == nil {
		return export, nil
	}

	key := fmt.Sprintf("exports/%s/%s.json", userID, uuid.New().String())
	err = s.storage.Save(ctx, key, bytes.NewReader(data), "application/json")
	if err != nil {
		return nil, fmt.Errorf("failed to store export: %w", err)
	}

	export.URL, err = s.storage.PresignedURL(ctx, key)
	if err != nil {
		delErr := s.storage.Delete(ctx, key)
		if delErr != nil {
			slog.Error("failed to delete export during cleanup", "error", delErr, "key", key)
		}
		return nil, fmt.Errorf("failed to presign export: %w", err)
	}

	slog.Info("coverage export stored", "user_id", userID, "key", key, "days", len(days))
	return export, nil
}
