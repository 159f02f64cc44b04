package server

import (
	"net/http"
	"runtime"
	"time"

	"support-chat/domain"
	"support-chat/observability"

	"github.com/samber/lo"
)

type serverStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime"`
	GoVersion string    `json:"goVersion"`
	Platform  string    `json:"platform"`
}

type connectionStatus struct {
	Total int                    `json:"total"`
	Users []domain.ConnectedUser `json:"users"`
}

type statistics struct {
	TotalUsers       int `json:"totalUsers"`
	TotalMessages    int `json:"totalMessages"`
	MessagesLastHour int `json:"messagesLastHour"`
}

type statusResponse struct {
	Server      serverStatus               `json:"server"`
	Connections connectionStatus           `json:"connections"`
	Statistics  statistics                 `json:"statistics"`
	Health      observability.ProcessStats `json:"health"`
}

type healthResponse struct {
	Status    string                     `json:"status"`
	Timestamp time.Time                  `json:"timestamp"`
	Uptime    float64                    `json:"uptime"`
	Memory    observability.ProcessStats `json:"memory"`
	Version   string                     `json:"version"`
}

type apiInfo struct {
	Name        string              `json:"name"`
	Version     string              `json:"version"`
	Description string              `json:"description"`
	Endpoints   map[string][]string `json:"endpoints"`
}

func (h *handlers) status(w http.ResponseWriter, r *http.Request) {
	users, err := h.deps.Users.GetUsers(r.Context())
	if err != nil {
		writeError(w, h.log, err, "Failed to get server status")
		return
	}
	messages, err := h.deps.Messages.GetAllMessages(r.Context())
	if err != nil {
		writeError(w, h.log, err, "Failed to get server status")
		return
	}
	connected := h.deps.Relay.ConnectedUsers()
	now := time.Now().UTC()
	hourAgo := now.Add(-time.Hour)

	writeJSON(w, http.StatusOK, statusResponse{
		Server: serverStatus{
			Status:    "running",
			Timestamp: now,
			Uptime:    h.deps.Monitor.Uptime().Seconds(),
			GoVersion: runtime.Version(),
			Platform:  runtime.GOOS,
		},
		Connections: connectionStatus{Total: len(connected), Users: connected},
		Statistics: statistics{
			TotalUsers:    len(users),
			TotalMessages: len(messages),
			MessagesLastHour: lo.CountBy(messages, func(m domain.Message) bool {
				return m.Timestamp.After(hourAgo)
			}),
		},
		Health: h.deps.Monitor.Latest(),
	})
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Uptime:    h.deps.Monitor.Uptime().Seconds(),
		Memory:    h.deps.Monitor.Latest(),
		Version:   Version,
	})
}

func (h *handlers) apiInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, apiInfo{
		Name:        "Support Chat API",
		Version:     Version,
		Description: "Real-time support chat with an admin panel",
		Endpoints: map[string][]string{
			"auth": {
				"POST /login - Admin login",
				"POST /auth/logout - Logout",
				"GET /auth/check - Check authentication status",
			},
			"messages": {
				"POST /send - Send a message",
				"GET /messages - Get all messages",
				"GET /messages/{userKey} - Get messages for a user",
				"GET /messages/{userKey}/summary - Get conversation summary",
				"DELETE /messages/{messageId} - Delete a message (not implemented)",
			},
			"users": {
				"GET /users - Get all user keys",
				"GET /users/conversations - Get users with conversation info",
				"GET /users/connected - Get currently connected users",
				"POST /validate-email - Validate and convert an email",
				"GET /users/{userKey}/info - Get user information",
				"GET /users/{userKey}/exists - Check if a user exists",
			},
			"system": {
				"GET /status - Server status",
				"GET /health - Health check",
				"GET /api - API information",
				"GET /metrics - Prometheus metrics",
				"GET /socket - Realtime WebSocket",
			},
		},
	})
}

func (h *handlers) notFound(w http.ResponseWriter, r *http.Request) {
	h.log.Warn("Route not found", "path", r.URL.Path, "method", r.Method)
	writeJSON(w, http.StatusNotFound, notFoundResponse{
		Success: false,
		Error:   "Route not found",
		Path:    r.URL.Path,
		Method:  r.Method,
		Message: "The requested resource was not found on this server",
	})
}
