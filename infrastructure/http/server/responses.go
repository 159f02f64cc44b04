package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"support-chat/errors"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type sendResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	MessageID string `json:"messageId"`
}

type connectedResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Users   any  `json:"users"`
}

type existsResponse struct {
	Success bool   `json:"success"`
	UserKey string `json:"userKey"`
	Exists  bool   `json:"exists"`
}

type emailResponse struct {
	Success bool   `json:"success"`
	Email   string `json:"email"`
	UserKey string `json:"userKey"`
	IsValid bool   `json:"isValid"`
}

type loginResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	RedirectURL string `json:"redirectUrl"`
	Token       string `json:"token"`
}

type authCheckResponse struct {
	Authenticated bool   `json:"authenticated"`
	Message       string `json:"message"`
	Username      string `json:"username,omitempty"`
}

type notFoundResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Path    string `json:"path"`
	Method  string `json:"method"`
	Message string `json:"message"`
}

type panicResponse struct {
	Success   bool      `json:"success"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps err to its status code. Server-side failures never leak
// their cause to the client, fallback is used instead.
func writeError(w http.ResponseWriter, log *slog.Logger, err error, fallback string) {
	status := errors.MapToHTTPStatus(err)
	message := err.Error()
	if status >= http.StatusInternalServerError && status != http.StatusNotImplemented {
		log.Error(fallback, "error", err)
		message = fallback
	}
	writeJSON(w, status, errorResponse{Success: false, Error: message})
}

func decodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
