package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/riqqqq/Human-Resource-Management/internal/service"
)

type AuthHandler struct {
	Service *service.AuthService
}

func (h AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.login)
	r.Post("/register", h.register)
}

func (h AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}
	res, err := h.Service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrAccountPending):
			writeError(w, http.StatusForbidden, "account is pending approval, please contact admin")
		default:
			writeInternal(w, "login failed", err)
		}
		return
	}
	writeDataMessage(w, http.StatusOK, "Login successful", map[string]any{
		"token":      res.Token,
		"expires_at": res.ExpiresAt,
		"user": map[string]any{
			"id":          res.User.ID,
			"username":    res.User.Username,
			"role":        res.User.Role,
			"employee_id": res.User.EmployeeID,
		},
	})
}

func (h AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Name     string `json:"name"`
		NIK      string `json:"nik"`
		Position string `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Username == "" || req.Password == "" || req.Name == "" || req.NIK == "" || req.Position == "" {
		writeError(w, http.StatusBadRequest, "all fields are required: username, password, name, nik, position")
		return
	}
	res, err := h.Service.Register(r.Context(), service.RegisterInput{
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
		Name:     req.Name,
		NIK:      strings.TrimSpace(req.NIK),
		Position: req.Position,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken), errors.Is(err, service.ErrNIKTaken):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeInternal(w, "registration failed", err)
		}
		return
	}
	writeDataMessage(w, http.StatusCreated, "Registration successful. Please wait for admin approval.", map[string]any{
		"user_id":     res.User.ID,
		"username":    res.User.Username,
		"employee_id": res.Employee.ID,
	})
}
