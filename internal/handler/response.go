package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// verboseErrors echoes internal error detail to clients. Enabled only
// in development mode.
var verboseErrors bool

func SetVerboseErrors(v bool) { verboseErrors = v }

type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeRawJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeRawJSON(w, status, apiResponse{Success: true, Data: data})
}

func writeDataMessage(w http.ResponseWriter, status int, message string, data any) {
	writeRawJSON(w, status, apiResponse{Success: true, Message: message, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeRawJSON(w, status, apiResponse{Success: true, Message: message})
}

func writeError(w http.ResponseWriter, status int, message string) {
	if status < 400 {
		status = http.StatusInternalServerError
	}
	writeRawJSON(w, status, apiResponse{Success: false, Message: message})
}

func writeInternal(w http.ResponseWriter, message string, err error) {
	slog.Error(message, "err", err)
	resp := apiResponse{Success: false, Message: message}
	if verboseErrors && err != nil {
		resp.Error = err.Error()
	}
	writeRawJSON(w, http.StatusInternalServerError, resp)
}
