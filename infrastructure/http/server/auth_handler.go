package server

import (
	goerrors "errors"
	"mime"
	"net/http"

	"support-chat/auth"
	"support-chat/errors"
	"support-chat/services"
)

const (
	adminPage   = "/admin"
	userPage    = "/user"
	landingPage = "/"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// login answers JSON callers with a token and redirects browser form posts.
// A form post with wrong credentials lands on the user page rather than an error.
func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	if !isJSON(r) {
		h.formLogin(w, r)
		return
	}

	var request loginRequest
	if err := decodeJSON(r, &request); err != nil {
		h.writeDecodeError(w, err)
		return
	}
	token, err := h.deps.Auth.Login(request.Username, request.Password)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, loginResponse{
			Success:     true,
			Message:     "Login successful",
			RedirectURL: adminPage,
			Token:       token.String(),
		})
	case goerrors.Is(err, errors.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Success: false, Error: "Invalid credentials"})
	default:
		writeError(w, h.log, err, "Login failed")
	}
}

func (h *handlers) formLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.writeDecodeError(w, err)
		return
	}
	token, err := h.deps.Auth.Login(r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		http.Redirect(w, r, userPage, http.StatusSeeOther)
		return
	}
	h.setTokenCookie(w, r, token)
	http.Redirect(w, r, adminPage, http.StatusSeeOther)
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	h.log.Info("Admin logged out")
	http.Redirect(w, r, landingPage, http.StatusSeeOther)
}

func (h *handlers) checkAuth(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok || !claims.HasRole(auth.RoleAdmin) {
		writeJSON(w, http.StatusOK, authCheckResponse{Authenticated: false, Message: "Not authenticated"})
		return
	}
	writeJSON(w, http.StatusOK, authCheckResponse{
		Authenticated: true,
		Message:       "Authenticated",
		Username:      claims.Username,
	})
}

func (h *handlers) setTokenCookie(w http.ResponseWriter, r *http.Request, token services.Token) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token.String(),
		Path:     "/",
		MaxAge:   int(h.options.TokenDuration.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}
