//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"context"
	"log/slog"

	"support-chat/contract"
	"support-chat/domain"
)

type IChatService interface {
	SendMessage(ctx context.Context, cmd domain.SendMessageCommand) (domain.Message, error)
}

// ChatService is the HTTP send path: persist first, then fan out.
type ChatService struct {
	sender      contract.IMessageSender
	broadcaster contract.IBroadcaster
	log         *slog.Logger
}

func NewChatService(sender contract.IMessageSender, broadcaster contract.IBroadcaster, log *slog.Logger) *ChatService {
	return &ChatService{sender: sender, broadcaster: broadcaster, log: log}
}

func (s *ChatService) SendMessage(ctx context.Context, cmd domain.SendMessageCommand) (domain.Message, error) {
	stored, err := s.sender.Send(ctx, cmd)
	if err != nil {
		return domain.Message{}, err
	}
	s.broadcaster.Broadcast(ctx, stored.UserKey, stored)
	return stored, nil
}
