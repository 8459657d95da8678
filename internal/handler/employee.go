package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/riqqqq/Human-Resource-Management/internal/domain"
	"github.com/riqqqq/Human-Resource-Management/internal/repository"
)

type EmployeeHandler struct {
	Repo repository.EmployeeRepository
}

func (h EmployeeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/employees", h.list)
	r.Get("/employees/{id}", h.get)
}

func (h EmployeeHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/employees", h.create)
	r.Put("/employees/{id}", h.update)
	r.Delete("/employees/{id}", h.delete)
}

type employeeRequest struct {
	NIK      string `json:"nik"`
	Name     string `json:"name"`
	Position string `json:"position"`
	JoinDate string `json:"join_date"`
	Salary   *int64 `json:"salary"`
	Status   string `json:"status"`
}

func (h EmployeeHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		writeInternal(w, "failed to fetch employees", err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, e := range items {
		resp = append(resp, employeeJSON(e))
	}
	writeData(w, http.StatusOK, resp)
}

func (h EmployeeHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	e, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "employee not found")
			return
		}
		writeInternal(w, "failed to fetch employee", err)
		return
	}
	writeData(w, http.StatusOK, employeeJSON(*e))
}

func (h EmployeeHandler) create(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.NIK == "" || req.Name == "" || req.Position == "" || req.JoinDate == "" {
		writeError(w, http.StatusBadRequest, "nik, name, position, and join_date are required")
		return
	}
	joinDate, err := time.Parse(dateLayout, req.JoinDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid join_date format")
		return
	}
	if _, err := h.Repo.GetByNIK(r.Context(), req.NIK); err == nil {
		writeError(w, http.StatusConflict, "employee with this NIK already exists")
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		writeInternal(w, "failed to create employee", err)
		return
	}

	e := domain.Employee{
		NIK:      req.NIK,
		Name:     req.Name,
		Position: req.Position,
		JoinDate: joinDate,
		Status:   domain.EmployeeActive,
	}
	if req.Salary != nil {
		e.Salary = *req.Salary
	}
	if req.Status != "" {
		e.Status = domain.EmployeeStatus(req.Status)
	}
	saved, err := h.Repo.Create(r.Context(), e)
	if err != nil {
		if repository.IsDuplicate(err) {
			writeError(w, http.StatusConflict, "employee with this NIK already exists")
			return
		}
		writeInternal(w, "failed to create employee", err)
		return
	}
	writeDataMessage(w, http.StatusCreated, "Employee created successfully", employeeJSON(*saved))
}

func (h EmployeeHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.NIK == "" || req.Name == "" || req.Position == "" || req.JoinDate == "" {
		writeError(w, http.StatusBadRequest, "nik, name, position, and join_date are required")
		return
	}
	joinDate, err := time.Parse(dateLayout, req.JoinDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid join_date format")
		return
	}

	existing, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "employee not found")
			return
		}
		writeInternal(w, "failed to update employee", err)
		return
	}
	if req.NIK != existing.NIK {
		if _, err := h.Repo.GetByNIK(r.Context(), req.NIK); err == nil {
			writeError(w, http.StatusConflict, "another employee with this NIK already exists")
			return
		} else if !errors.Is(err, repository.ErrNotFound) {
			writeInternal(w, "failed to update employee", err)
			return
		}
	}

	e := domain.Employee{
		ID:       id,
		NIK:      req.NIK,
		Name:     req.Name,
		Position: req.Position,
		JoinDate: joinDate,
		Salary:   existing.Salary,
		Status:   existing.Status,
	}
	if req.Salary != nil {
		e.Salary = *req.Salary
	}
	if req.Status != "" {
		e.Status = domain.EmployeeStatus(req.Status)
	}
	saved, err := h.Repo.Update(r.Context(), e)
	if err != nil {
		if repository.IsDuplicate(err) {
			writeError(w, http.StatusConflict, "another employee with this NIK already exists")
			return
		}
		writeInternal(w, "failed to update employee", err)
		return
	}
	writeDataMessage(w, http.StatusOK, "Employee updated successfully", employeeJSON(*saved))
}

func (h EmployeeHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "employee not found")
			return
		}
		writeInternal(w, "failed to delete employee", err)
		return
	}
	writeMessage(w, http.StatusOK, "Employee deleted successfully")
}

func employeeJSON(e domain.Employee) map[string]any {
	return map[string]any{
		"id":        e.ID,
		"nik":       e.NIK,
		"name":      e.Name,
		"position":  e.Position,
		"join_date": e.JoinDate.Format(dateLayout),
		"salary":    e.Salary,
		"status":    e.Status,
	}
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
