package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lovey25/hobeom-portal-sub001/internal/daily"
)

// envelope is the uniform response shape: a success flag and message on
// every response, data only on success.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Message: "ok", Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Message: msg})
}

// writeDailyError maps domain errors to statuses; storage failures stay
// generic and are never retried here.
func writeDailyError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, daily.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, daily.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "server error")
	}
}
