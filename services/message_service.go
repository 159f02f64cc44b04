//go:generate go run go.uber.org/mock/mockgen -source=message_service.go -destination=../mocks/mock_message_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"support-chat/contract"
	"support-chat/domain"
	"support-chat/domain/mimetypes"
	"support-chat/errors"
	"support-chat/moderation"
	"support-chat/observability"
	"support-chat/repositories"
)

type IMessageService interface {
	contract.IMessageSender
	GetMessages(ctx context.Context, userKey string) ([]domain.Message, error)
	GetAllMessages(ctx context.Context) ([]domain.Message, error)
	GetConversationSummary(ctx context.Context, userKey string) (domain.ConversationSummary, error)
	DeleteMessage(ctx context.Context, messageID string) error
}

type MessageService struct {
	repository    repositories.IMessageRepository
	log           *slog.Logger
	maxImageBytes int
	moderator     *moderation.Moderator
}

func NewMessageService(repository repositories.IMessageRepository, log *slog.Logger, maxImageBytes int) *MessageService {
	return &MessageService{repository: repository, log: log, maxImageBytes: maxImageBytes}
}

// WithModerator masks banned words in message text before it is stored.
func (s *MessageService) WithModerator(moderator *moderation.Moderator) *MessageService {
	s.moderator = moderator
	return s
}

// Send validates, sanitizes and persists a message. Delivery to live
// connections is left to the caller.
func (s *MessageService) Send(ctx context.Context, cmd domain.SendMessageCommand) (domain.Message, error) {
	message, err := s.prepare(cmd)
	if err != nil {
		s.log.Warn("Message rejected", "user_key", cmd.UserKey, "sender", cmd.Sender, "error", err)
		observability.MessagesRejectedTotal.WithLabelValues("validation").Inc()
		return domain.Message{}, err
	}

	stored, err := s.repository.Append(ctx, cmd.UserKey, message)
	if err != nil {
		s.log.Error("Failed to send message", "user_key", cmd.UserKey, "sender", message.Sender, "error", err)
		observability.MessagesRejectedTotal.WithLabelValues("store").Inc()
		return domain.Message{}, err
	}

	s.log.Info("Message sent",
		"user_key", stored.UserKey,
		"sender", stored.Sender,
		"message_id", stored.ID,
		"has_text", stored.Text != "",
		"has_image", stored.ImageBase64 != "")
	observability.MessagesSentTotal.WithLabelValues(string(stored.Sender)).Inc()
	return stored, nil
}

func (s *MessageService) prepare(cmd domain.SendMessageCommand) (domain.Message, error) {
	if err := domain.ValidateUserKey(cmd.UserKey); err != nil {
		return domain.Message{}, err
	}
	if cmd.Text == "" && cmd.ImageBase64 == "" {
		return domain.Message{}, fmt.Errorf("%w: message cannot be empty", errors.ErrInvalidMessage)
	}
	if utf8.RuneCountInString(cmd.Text) > domain.MaxTextLength {
		return domain.Message{}, fmt.Errorf("%w: message too long (max %d characters)", errors.ErrInvalidMessage, domain.MaxTextLength)
	}

	sender := cmd.Sender
	if sender == "" {
		sender = domain.SenderUser
	}
	if !sender.IsValid() {
		return domain.Message{}, fmt.Errorf("%w: unknown sender %q", errors.ErrInvalidMessage, sender)
	}

	if cmd.ImageBase64 != "" {
		if _, err := mimetypes.DetectImage(cmd.ImageBase64, s.maxImageBytes); err != nil {
			return domain.Message{}, fmt.Errorf("%w: %v", errors.ErrInvalidMessage, err)
		}
	}

	text, censored := s.moderator.Censor(moderation.StripScripts(cmd.Text))
	if len(censored) > 0 {
		s.log.Info("Message censored", "user_key", cmd.UserKey, "words", len(censored))
	}

	message := domain.Message{
		Text:        text,
		ImageBase64: cmd.ImageBase64,
		Sender:      sender,
		Timestamp:   domain.Now(),
	}
	if !message.HasContent() {
		return domain.Message{}, fmt.Errorf("%w: message is empty once sanitized", errors.ErrInvalidMessage)
	}
	return message, nil
}

func (s *MessageService) GetMessages(ctx context.Context, userKey string) ([]domain.Message, error) {
	if err := domain.ValidateUserKey(userKey); err != nil {
		return nil, err
	}
	messages, err := s.repository.ListByUser(ctx, userKey)
	if err != nil {
		s.log.Error("Failed to get messages", "user_key", userKey, "error", err)
		return nil, err
	}
	return messages, nil
}

func (s *MessageService) GetAllMessages(ctx context.Context) ([]domain.Message, error) {
	messages, err := s.repository.ListAll(ctx)
	if err != nil {
		s.log.Error("Failed to get all messages", "error", err)
		return nil, err
	}
	return messages, nil
}

func (s *MessageService) GetConversationSummary(ctx context.Context, userKey string) (domain.ConversationSummary, error) {
	messages, err := s.GetMessages(ctx, userKey)
	if err != nil {
		return domain.ConversationSummary{}, err
	}
	return domain.NewConversation(userKey, messages).Summary(), nil
}

func (s *MessageService) DeleteMessage(_ context.Context, messageID string) error {
	s.log.Info("Delete message request", "message_id", messageID)
	return fmt.Errorf("%w: message deletion not implemented yet", errors.ErrNotImplemented)
}
