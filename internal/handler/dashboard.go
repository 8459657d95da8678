package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/riqqqq/Human-Resource-Management/internal/repository"
)

type DashboardHandler struct {
	Repo repository.DashboardRepository
}

func (h DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard/stats", h.stats)
}

func (h DashboardHandler) stats(w http.ResponseWriter, r *http.Request) {
	s, err := h.Repo.Stats(r.Context())
	if err != nil {
		writeInternal(w, "failed to fetch dashboard statistics", err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{
		"totalEmployees": s.TotalEmployees,
		"presentToday":   s.PresentToday,
		"absentToday":    s.AbsentToday,
	})
}
