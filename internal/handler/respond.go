package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/midwaife/backend/internal/ctxkeys"
	"github.com/midwaife/backend/internal/middleware"
	"github.com/midwaife/backend/internal/repository"
	"github.com/midwaife/backend/internal/validation"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

var notFoundErrors = []error{
	repository.ErrFoodNotFound,
	repository.ErrMealNotFound,
	repository.ErrMealItemNotFound,
	repository.ErrMilestoneNotFound,
	repository.ErrUserNotFound,
	repository.ErrDailyLogNotFound,
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError maps service errors onto HTTP statuses. Anything unrecognized is
// logged and reported as a 500 without leaking details.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Message, Field: verr.Field})
		return
	}
	if errors.Is(err, validation.ErrInvalid) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: target.Error()})
			return
		}
	}

	if errors.Is(err, repository.ErrDuplicateEmail) {
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
		return
	}

	slog.Error(msg, "error", err, "method", r.Method, "path", r.URL.Path, "request_id", ctxkeys.RequestID(r.Context()))
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(v)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
		return false
	}
	return true
}

// authorize writes a 403 when the caller's token belongs to another user.
func authorize(w http.ResponseWriter, r *http.Request, userID string) bool {
	if middleware.Authorized(r, userID) {
		return true
	}
	slog.Warn("forbidden cross-user access", "caller", ctxkeys.UserID(r.Context()), "user_id", userID, "path", r.URL.Path)
	writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
	return false
}
