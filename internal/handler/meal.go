package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/midwaife/backend/internal/ctxkeys"
	"github.com/midwaife/backend/internal/model"
	"github.com/midwaife/backend/internal/service"
)

type MealHandler struct {
	mealService *service.MealService
}

func NewMealHandler(mealService *service.MealService) *MealHandler {
	return &MealHandler{
		mealService: mealService,
	}
}

// ============================================================================
// FOODS
// ============================================================================

func (h *MealHandler) Foods(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	var foods []model.Food
	var err error
	if q != "" {
		foods, err = h.mealService.SearchFoods(r.Context(), q)
	} else {
		foods, err = h.mealService.Foods(r.Context())
	}
	if err != nil {
		writeError(w, r, err, "failed to fetch foods")
		return
	}

	writeJSON(w, http.StatusOK, foods)
}

func (h *MealHandler) Food(w http.ResponseWriter, r *http.Request) {
	food, err := h.mealService.FoodByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err, "failed to fetch food")
		return
	}

	writeJSON(w, http.StatusOK, food)
}

func (h *MealHandler) CreateFood(w http.ResponseWriter, r *http.Request) {
	var in model.FoodCreate
	if !decodeJSON(w, r, &in) {
		return
	}

	food, err := h.mealService.CreateFood(r.Context(), &in)
	if err != nil {
		writeError(w, r, err, "failed to create food")
		return
	}

	writeJSON(w, http.StatusCreated, food)
}

// ============================================================================
// MEALS
// ============================================================================

func (h *MealHandler) Week(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if !authorize(w, r, userID) {
		return
	}

	days, err := h.mealService.Week(r.Context(), userID, r.URL.Query().Get("start_date"))
	if err != nil {
		writeError(w, r, err, "failed to fetch week meals")
		return
	}

	writeJSON(w, http.StatusOK, days)
}

func (h *MealHandler) Range(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID := q.Get("user_id")
	if !authorize(w, r, userID) {
		return
	}

	days, err := h.mealService.DayRange(r.Context(), userID, q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		writeError(w, r, err, "failed to fetch meals")
		return
	}

	writeJSON(w, http.StatusOK, days)
}

func (h *MealHandler) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID := q.Get("user_id")
	if !authorize(w, r, userID) {
		return
	}

	export, err := h.mealService.ExportRange(r.Context(), userID, q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		writeError(w, r, err, "failed to export meals")
		return
	}

	if export.URL != "" {
		writeJSON(w, http.StatusOK, map[string]string{
			"filename": export.Filename,
			"url":      export.URL,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(export.Data)
}

func (h *MealHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var in model.MealUpsert
	if !decodeJSON(w, r, &in) {
		return
	}
	if !authorize(w, r, in.UserID) {
		return
	}

	mealID, err := h.mealService.UpsertMeal(r.Context(), &in)
	if err != nil {
		writeError(w, r, err, "failed to upsert meal")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "Meal updated successfully",
		"mealId":  mealID,
	})
}

func (h *MealHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var in model.MealItemAdd
	if !decodeJSON(w, r, &in) {
		return
	}
	if !authorize(w, r, in.UserID) {
		return
	}

	item, err := h.mealService.AddMealItem(r.Context(), &in)
	if err != nil {
		writeError(w, r, err, "failed to add food item")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Food item added successfully",
		"item":    item,
	})
}

// authorizeMeal resolves the meal's owner when a caller is authenticated.
func (h *MealHandler) authorizeMeal(w http.ResponseWriter, r *http.Request, mealID string) bool {
	if ctxkeys.UserID(r.Context()) == "" {
		return true
	}

	owner, err := h.mealService.MealOwner(r.Context(), mealID)
	if err != nil {
		writeError(w, r, err, "failed to load meal")
		return false
	}
	return authorize(w, r, owner)
}

func (h *MealHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mealID := q.Get("meal_id")
	if !h.authorizeMeal(w, r, mealID) {
		return
	}

	err := h.mealService.RemoveMealItem(r.Context(), mealID, q.Get("food_item_id"))
	if err != nil {
		writeError(w, r, err, "failed to remove food item")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Food item removed successfully"})
}

func (h *MealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	mealID := r.PathValue("meal_id")
	if !h.authorizeMeal(w, r, mealID) {
		return
	}

	err := h.mealService.DeleteMeal(r.Context(), mealID)
	if err != nil {
		writeError(w, r, err, "failed to delete meal")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Meal deleted successfully"})
}
