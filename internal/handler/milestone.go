package handler

import (
	"net/http"
	"strconv"

	"github.com/midwaife/backend/internal/service"
)

type MilestoneHandler struct {
	milestoneService *service.MilestoneService
}

func NewMilestoneHandler(milestoneService *service.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{
		milestoneService: milestoneService,
	}
}

func (h *MilestoneHandler) List(w http.ResponseWriter, r *http.Request) {
	milestones, err := h.milestoneService.Milestones(r.Context())
	if err != nil {
		writeError(w, r, err, "failed to fetch milestones")
		return
	}

	writeJSON(w, http.StatusOK, milestones)
}

func (h *MilestoneHandler) ByWeek(w http.ResponseWriter, r *http.Request) {
	week, err := strconv.Atoi(r.PathValue("week"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "week must be a number", Field: "week"})
		return
	}

	milestone, err := h.milestoneService.ByWeek(r.Context(), week)
	if err != nil {
		writeError(w, r, err, "failed to fetch milestone")
		return
	}

	writeJSON(w, http.StatusOK, milestone)
}
