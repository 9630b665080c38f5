package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/srgjo27/shutterbook/internal/adapter/handler/response"
	"github.com/srgjo27/shutterbook/internal/core/services"
)

type AdminHandler struct {
	stats *services.StatsService
}

func NewAdminHandler(stats *services.StatsService) *AdminHandler {
	return &AdminHandler{stats: stats}
}

func (h *AdminHandler) PlatformStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	stats, err := h.stats.PlatformStats(r.Context(), user)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, stats)
}
