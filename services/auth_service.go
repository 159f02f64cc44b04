//go:generate go run go.uber.org/mock/mockgen -source=auth_service.go -destination=../mocks/mock_auth_service.go -package=mocks
package services

import (
	"crypto/subtle"
	"fmt"
	"log/slog"

	"support-chat/auth"
	"support-chat/errors"
)

type IAuthService interface {
	Login(username, password string) (Token, error)
}

type Token string

func (t Token) String() string {
	return string(t)
}

// AuthService checks the single configured admin credential.
type AuthService struct {
	credential auth.Credential
	issuer     auth.TokenIssuer
	log        *slog.Logger
}

func NewAuthService(credential auth.Credential, issuer auth.TokenIssuer, log *slog.Logger) *AuthService {
	return &AuthService{credential: credential, issuer: issuer, log: log}
}

func (s *AuthService) Login(username, password string) (Token, error) {
	if err := auth.ValidateLogin(auth.LoginRequest{Username: username, Password: password}); err != nil {
		return "", fmt.Errorf("%w: username and password are required", errors.ErrInvalidInput)
	}

	// Hash even on a username mismatch.
	sameUser := subtle.ConstantTimeCompare([]byte(username), []byte(s.credential.Username)) == 1
	match, err := auth.ComparePassword(password, s.credential.PasswordHash)
	if err != nil {
		s.log.Error("Admin password hash is unusable", "error", err)
		return "", errors.ErrInvalidCredentials
	}
	if !sameUser || !match {
		s.log.Warn("Failed login attempt", "username", username)
		return "", errors.ErrInvalidCredentials
	}

	token, err := s.issuer.Generate(username, []string{auth.RoleAdmin})
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrTokenGeneration, err)
	}
	s.log.Info("Admin login successful", "username", username)
	return Token(token), nil
}
