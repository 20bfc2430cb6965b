package handler

import (
	"net/http"

	"github.com/midwaife/backend/internal/model"
	"github.com/midwaife/backend/internal/service"
)

type DailyLogHandler struct {
	dailyLogService *service.DailyLogService
}

func NewDailyLogHandler(dailyLogService *service.DailyLogService) *DailyLogHandler {
	return &DailyLogHandler{
		dailyLogService: dailyLogService,
	}
}

func (h *DailyLogHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	if !authorize(w, r, userID) {
		return
	}

	log, err := h.dailyLogService.Log(r.Context(), userID, r.PathValue("date"))
	if err != nil {
		writeError(w, r, err, "failed to fetch daily log")
		return
	}

	writeJSON(w, http.StatusOK, log)
}

func (h *DailyLogHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	if !authorize(w, r, userID) {
		return
	}

	q := r.URL.Query()
	logs, err := h.dailyLogService.Logs(r.Context(), userID, q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		writeError(w, r, err, "failed to fetch daily logs")
		return
	}

	writeJSON(w, http.StatusOK, logs)
}

func (h *DailyLogHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var in model.DailyLogUpsert
	if !decodeJSON(w, r, &in) {
		return
	}
	if !authorize(w, r, in.UserID) {
		return
	}

	log, err := h.dailyLogService.Save(r.Context(), &in)
	if err != nil {
		writeError(w, r, err, "failed to save daily log")
		return
	}

	writeJSON(w, http.StatusOK, log)
}

func (h *DailyLogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	if !authorize(w, r, userID) {
		return
	}

	err := h.dailyLogService.Delete(r.Context(), userID, r.PathValue("date"))
	if err != nil {
		writeError(w, r, err, "failed to delete daily log")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Daily log deleted successfully"})
}
