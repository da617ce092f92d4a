// internal/app/features/errors/errors.go
package errors

import (
	"encoding/json"
	"net/http"
)

// Body is the JSON shape of every error response.
type Body struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Step    string `json:"step,omitempty"`
	Fields  any    `json:"fields,omitempty"`
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Render writes an error body with the given status and machine-readable code.
func Render(w http.ResponseWriter, status int, code, msg string) {
	WriteJSON(w, status, Body{Error: code, Message: msg})
}

// RenderBadRequest answers 400.
func RenderBadRequest(w http.ResponseWriter, r *http.Request, code, msg string) {
	Render(w, http.StatusBadRequest, code, msg)
}

// RenderNotFound answers 404 with code "not_found".
func RenderNotFound(w http.ResponseWriter, r *http.Request, msg string) {
	Render(w, http.StatusNotFound, "not_found", msg)
}

// RenderConflict answers 409.
func RenderConflict(w http.ResponseWriter, r *http.Request, code, msg string) {
	Render(w, http.StatusConflict, code, msg)
}

// RenderServerError answers 500 with a generic message. Details stay in the log.
func RenderServerError(w http.ResponseWriter, r *http.Request, msg string) {
	if msg == "" {
		msg = "An internal error occurred."
	}
	Render(w, http.StatusInternalServerError, "server_error", msg)
}
