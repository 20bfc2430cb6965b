package handler

import (
	"net/http"

	"github.com/midwaife/backend/internal/model"
	"github.com/midwaife/backend/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !authorize(w, r, id) {
		return
	}

	user, err := h.userService.ByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "failed to fetch user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.User
	if !decodeJSON(w, r, &in) {
		return
	}
	if in.ID != "" && !authorize(w, r, in.ID) {
		return
	}

	user, err := h.userService.Create(r.Context(), &in)
	if err != nil {
		writeError(w, r, err, "failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, user)
}
