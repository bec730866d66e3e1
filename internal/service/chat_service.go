package service

import (
	"context"
	"strings"
	"time"

	"github.com/jobora/chat-service/internal/domain"
)

type MessageRepo interface {
	Insert(ctx context.Context, senderID, receiverID, body string) (*domain.ChatMessage, error)
	Between(ctx context.Context, a, b string, page, limit int) ([]domain.ChatMessage, error)
	CountBetween(ctx context.Context, a, b string) (int, error)
	MarkRead(ctx context.Context, ids []string) (matched, modified int64, err error)
	UnreadSenders(ctx context.Context, userID string, start, end *time.Time) ([]domain.UnreadSender, error)
}

type ChatService struct {
	messages MessageRepo
	maxLen   int
}

func NewChatService(messages MessageRepo, maxLen int) *ChatService {
	if maxLen <= 0 {
		maxLen = 4000
	}
	return &ChatService{messages: messages, maxLen: maxLen}
}

// Save валидирует и сохраняет сообщение. Доставка — забота транспорта,
// и только после успешного сохранения.
func (s *ChatService) Save(ctx context.Context, senderID, receiverID, body string) (*domain.ChatMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, domain.ErrEmptyMessage
	}
	if len(body) > s.maxLen {
		return nil, domain.ErrMessageTooLong
	}

	return s.messages.Insert(ctx, senderID, receiverID, body)
}

func (s *ChatService) History(ctx context.Context, userID, peerID string, page, limit int) ([]domain.ChatMessage, int, error) {
	items, err := s.messages.Between(ctx, userID, peerID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.messages.CountBetween(ctx, userID, peerID)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (s *ChatService) MarkRead(ctx context.Context, ids []string) (matched, modified int64, err error) {
	return s.messages.MarkRead(ctx, ids)
}

func (s *ChatService) UnreadSummary(ctx context.Context, userID string, start, end *time.Time) ([]domain.UnreadSender, error) {
	return s.messages.UnreadSenders(ctx, userID, start, end)
}
