package server

import (
	"net/http"

	"support-chat/domain"

	"github.com/gorilla/mux"
	"github.com/samber/lo"
)

type emailRequest struct {
	Email string `json:"email"`
}

// getUsers answers a bare list of user keys.
func (h *handlers) getUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.deps.Users.GetUsers(r.Context())
	if err != nil {
		writeError(w, h.log, err, "Failed to fetch users")
		return
	}
	writeJSON(w, http.StatusOK, lo.Map(users, func(u domain.User, _ int) string { return u.UserKey }))
}

func (h *handlers) getUsersWithConversationInfo(w http.ResponseWriter, r *http.Request) {
	rows, err := h.deps.Users.GetUsersWithConversationInfo(r.Context())
	if err != nil {
		writeError(w, h.log, err, "Failed to fetch users with conversation info")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *handlers) getConnectedUsers(w http.ResponseWriter, _ *http.Request) {
	users := h.deps.Relay.ConnectedUsers()
	writeJSON(w, http.StatusOK, connectedResponse{Success: true, Count: len(users), Users: users})
}

func (h *handlers) validateEmail(w http.ResponseWriter, r *http.Request) {
	var request emailRequest
	if err := decodeJSON(r, &request); err != nil {
		h.writeDecodeError(w, err)
		return
	}
	validation, err := h.deps.Users.ValidateEmail(request.Email)
	if err != nil {
		writeError(w, h.log, err, "Failed to validate email")
		return
	}
	writeJSON(w, http.StatusOK, emailResponse{
		Success: true,
		Email:   validation.Email,
		UserKey: validation.UserKey,
		IsValid: validation.IsValid,
	})
}

func (h *handlers) getUserInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.deps.Users.GetUserInfo(r.Context(), mux.Vars(r)["userKey"])
	if err != nil {
		writeError(w, h.log, err, "Failed to get user info")
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (h *handlers) userExists(w http.ResponseWriter, r *http.Request) {
	userKey := mux.Vars(r)["userKey"]
	writeJSON(w, http.StatusOK, existsResponse{
		Success: true,
		UserKey: userKey,
		Exists:  h.deps.Users.UserExists(r.Context(), userKey),
	})
}
