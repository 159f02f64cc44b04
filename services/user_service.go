//go:generate go run go.uber.org/mock/mockgen -source=user_service.go -destination=../mocks/mock_user_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"

	"support-chat/auth"
	"support-chat/domain"
	"support-chat/errors"
	"support-chat/repositories"

	"github.com/samber/lo"
)

type IUserService interface {
	GetUsers(ctx context.Context) ([]domain.User, error)
	GetUsersWithConversationInfo(ctx context.Context) ([]domain.UserConversation, error)
	ValidateEmail(email string) (domain.EmailValidation, error)
	GetUserInfo(ctx context.Context, userKey string) (domain.UserInfo, error)
	UserExists(ctx context.Context, userKey string) bool
}

type UserService struct {
	repository repositories.IMessageRepository
	log        *slog.Logger
}

func NewUserService(repository repositories.IMessageRepository, log *slog.Logger) *UserService {
	return &UserService{repository: repository, log: log}
}

// GetUsers lists every user key that owns at least one message.
func (s *UserService) GetUsers(ctx context.Context) ([]domain.User, error) {
	keys, err := s.repository.ListUserKeys(ctx)
	if err != nil {
		s.log.Error("Failed to get users", "error", err)
		return nil, err
	}
	return lo.Map(keys, func(key string, _ int) domain.User { return domain.NewUser(key) }), nil
}

// GetUsersWithConversationInfo builds the admin sidebar, most recent activity first.
func (s *UserService) GetUsersWithConversationInfo(ctx context.Context) ([]domain.UserConversation, error) {
	messages, err := s.repository.ListAll(ctx)
	if err != nil {
		s.log.Error("Failed to get users with conversation info", "error", err)
		return nil, err
	}
	rows := lo.MapToSlice(domain.GroupByUserKey(messages), func(_ string, c domain.Conversation) domain.UserConversation {
		return c.Overview()
	})
	domain.SortByMostRecentActivity(rows)
	return rows, nil
}

func (s *UserService) ValidateEmail(email string) (domain.EmailValidation, error) {
	normalized := domain.NormalizeEmail(email)
	if normalized == "" {
		return domain.EmailValidation{}, fmt.Errorf("%w: email is required", errors.ErrInvalidEmail)
	}
	if err := auth.ValidateEmail(normalized); err != nil {
		return domain.EmailValidation{}, fmt.Errorf("%w: invalid email format", errors.ErrInvalidEmail)
	}
	userKey, err := domain.ToKey(normalized)
	if err != nil {
		return domain.EmailValidation{}, fmt.Errorf("%w: %v", errors.ErrInvalidEmail, err)
	}
	s.log.Debug("Email validated", "email", normalized, "user_key", userKey)
	return domain.EmailValidation{Email: normalized, UserKey: userKey, IsValid: true}, nil
}

func (s *UserService) GetUserInfo(ctx context.Context, userKey string) (domain.UserInfo, error) {
	if err := domain.ValidateUserKey(userKey); err != nil {
		return domain.UserInfo{}, err
	}
	messages, err := s.repository.ListByUser(ctx, userKey)
	if err != nil {
		s.log.Error("Failed to get user info", "user_key", userKey, "error", err)
		return domain.UserInfo{}, err
	}
	return domain.NewConversation(userKey, messages).Info(), nil
}

// UserExists reports false on any store error.
func (s *UserService) UserExists(ctx context.Context, userKey string) bool {
	if domain.ValidateUserKey(userKey) != nil {
		return false
	}
	messages, err := s.repository.ListByUser(ctx, userKey)
	if err != nil {
		s.log.Error("Failed to check user existence", "user_key", userKey, "error", err)
		return false
	}
	return len(messages) > 0
}
