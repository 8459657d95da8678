package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/riqqqq/Human-Resource-Management/internal/domain"
	"github.com/riqqqq/Human-Resource-Management/internal/repository"
	"github.com/riqqqq/Human-Resource-Management/internal/server/authctx"
	"github.com/riqqqq/Human-Resource-Management/internal/service"
)

type AttendanceHandler struct {
	Service service.AttendanceService
	Repo    repository.AttendanceRepository
	Photos  PhotoStore
}

func (h AttendanceHandler) RegisterRoutes(r chi.Router) {
	r.Get("/attendance", h.listByDate)
	r.Post("/attendance", h.submit)
	r.Get("/attendance/today", h.today)
	r.Get("/attendance/employee/{id}", h.byEmployee)
}

func (h AttendanceHandler) RegisterAdminRoutes(r chi.Router) {
	r.Put("/attendance/{id}/status", h.setStatus)
	r.Get("/attendance/export", h.export)
}

func (h AttendanceHandler) submit(w http.ResponseWriter, r *http.Request) {
	var (
		employeeIDStr, dateStr string
		timeInStr, timeOutStr  string
		photoPath              *string
	)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(h.Photos.MaxBytes + 1<<20); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart payload")
			return
		}
		employeeIDStr = r.FormValue("employee_id")
		dateStr = r.FormValue("date")
		timeInStr = r.FormValue("time_in")
		timeOutStr = r.FormValue("time_out")
		saved, err := h.Photos.Save(r)
		if err != nil {
			if errors.Is(err, errUploadTooLarge) || errors.Is(err, errUploadNotImage) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeInternal(w, "failed to store photo", err)
			return
		}
		photoPath = saved
	} else {
		var req struct {
			EmployeeID int64  `json:"employee_id"`
			Date       string `json:"date"`
			TimeIn     string `json:"time_in"`
			TimeOut    string `json:"time_out"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid payload")
			return
		}
		employeeIDStr = strconv.FormatInt(req.EmployeeID, 10)
		dateStr = req.Date
		timeInStr = req.TimeIn
		timeOutStr = req.TimeOut
	}

	employeeID, err := strconv.ParseInt(employeeIDStr, 10, 64)
	if err != nil || employeeID == 0 {
		writeError(w, http.StatusBadRequest, "employee_id is required")
		return
	}
	date := time.Now()
	if dateStr != "" {
		date, err = time.Parse(dateLayout, dateStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date format")
			return
		}
	}
	timeIn, err := parseClock(timeInStr, date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid time_in format")
		return
	}
	timeOut, err := parseClock(timeOutStr, date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid time_out format")
		return
	}

	rec, created, err := h.Service.Submit(r.Context(), service.SubmitInput{
		EmployeeID: employeeID,
		Date:       date,
		TimeIn:     timeIn,
		TimeOut:    timeOut,
		ImagePath:  photoPath,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "employee not found")
		case errors.Is(err, service.ErrNothingSubmitted), errors.Is(err, service.ErrClockOutNotAllowed):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeInternal(w, "failed to record attendance", err)
		}
		return
	}

	status := http.StatusOK
	message := "Attendance updated"
	if created {
		status = http.StatusCreated
		message = "Attendance recorded"
	}
	data := attendanceJSON(*rec)
	data["created"] = created
	writeDataMessage(w, status, message, data)
}

func (h AttendanceHandler) listByDate(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateQuery(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format")
		return
	}
	target := time.Now()
	if date != nil {
		target = *date
	}
	items, err := h.Repo.ListByDate(r.Context(), target)
	if err != nil {
		writeInternal(w, "failed to fetch attendance", err)
		return
	}
	writeData(w, http.StatusOK, attendanceListJSON(items))
}

func (h AttendanceHandler) byEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	items, err := h.Repo.ListByEmployee(r.Context(), id)
	if err != nil {
		writeInternal(w, "failed to fetch employee attendance", err)
		return
	}
	writeData(w, http.StatusOK, attendanceListJSON(items))
}

func (h AttendanceHandler) today(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if user.EmployeeID == nil {
		writeError(w, http.StatusBadRequest, "no employee record linked to this account")
		return
	}
	rec, canIn, canOut, err := h.Service.Today(r.Context(), *user.EmployeeID)
	if err != nil {
		writeInternal(w, "failed to fetch today's attendance", err)
		return
	}
	var recJSON map[string]any
	if rec != nil {
		recJSON = attendanceJSON(*rec)
	}
	writeData(w, http.StatusOK, map[string]any{
		"record":        recJSON,
		"can_clock_in":  canIn,
		"can_clock_out": canOut,
	})
}

func (h AttendanceHandler) setStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.Service.SetStatus(r.Context(), id, domain.AttendanceStatus(req.Status)); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "attendance record not found")
		default:
			writeInternal(w, "failed to update status", err)
		}
		return
	}
	writeMessage(w, http.StatusOK, fmt.Sprintf("Attendance %s", req.Status))
}

func attendanceJSON(a domain.Attendance) map[string]any {
	m := map[string]any{
		"id":          a.ID,
		"employee_id": a.EmployeeID,
		"date":        a.Date.Format(dateLayout),
		"time_in":     clockOrNil(a.TimeIn),
		"time_out":    clockOrNil(a.TimeOut),
		"image_path":  a.ImagePath,
		"status":      a.Status,
	}
	if a.EmployeeName != "" {
		m["employee_name"] = a.EmployeeName
		m["nik"] = a.EmployeeNIK
		m["position"] = a.Position
	}
	return m
}

func attendanceListJSON(items []domain.Attendance) []map[string]any {
	resp := make([]map[string]any, 0, len(items))
	for _, a := range items {
		resp = append(resp, attendanceJSON(a))
	}
	return resp
}
