package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/riqqqq/Human-Resource-Management/internal/domain"
	"github.com/riqqqq/Human-Resource-Management/internal/repository"
	"github.com/riqqqq/Human-Resource-Management/internal/service"
)

// UserHandler exposes the admin account-management surface.
type UserHandler struct {
	Repo     repository.UserRepository
	Accounts service.AccountService
}

func (h UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/users", h.list)
	r.Get("/users/pending", h.listPending)
	r.Put("/users/{id}/approve", h.approve)
	r.Put("/users/{id}/reject", h.reject)
	r.Delete("/users/{id}", h.delete)
}

func (h UserHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		writeInternal(w, "failed to fetch users", err)
		return
	}
	writeData(w, http.StatusOK, userListJSON(items))
}

func (h UserHandler) listPending(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.ListPending(r.Context())
	if err != nil {
		writeInternal(w, "failed to fetch pending users", err)
		return
	}
	writeData(w, http.StatusOK, userListJSON(items))
}

func (h UserHandler) approve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Accounts.Approve(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeInternal(w, "failed to approve user", err)
		return
	}
	writeMessage(w, http.StatusOK, "User approved successfully")
}

func (h UserHandler) reject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Accounts.Reject(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeInternal(w, "failed to reject user", err)
		return
	}
	writeMessage(w, http.StatusOK, "User rejected")
}

func (h UserHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Accounts.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeInternal(w, "failed to delete user", err)
		return
	}
	writeMessage(w, http.StatusOK, "User and linked employee data deleted successfully")
}

func userListJSON(items []domain.User) []map[string]any {
	resp := make([]map[string]any, 0, len(items))
	for _, u := range items {
		resp = append(resp, map[string]any{
			"id":            u.ID,
			"username":      u.Username,
			"role":          u.Role,
			"employee_id":   u.EmployeeID,
			"is_active":     u.IsActive,
			"employee_name": u.EmployeeName,
			"nik":           u.EmployeeNIK,
			"created_at":    u.CreatedAt,
		})
	}
	return resp
}
