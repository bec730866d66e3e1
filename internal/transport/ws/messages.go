package ws

import (
	"time"

	"github.com/jobora/chat-service/internal/domain"
)

// Типы событий, которые ходят по WS
const (
	TypeSetActiveConversation = "setActiveConversation" // стать активным в диалоге
	TypeConnectToConversation = "connectToConversation" // ack/ошибка подключения к диалогу
	TypeSendChatMessage       = "sendChatMessage"       // отправка сообщения
	TypeReceivedChatMessage   = "receivedChatMessage"   // доставка сохранённого сообщения
	TypeSendMessageError      = "sendMessageError"      // ошибка отправки
)

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type SetActiveConversationPayload struct {
	ChatToken  string `json:"chatToken"`
	ReceiverID string `json:"receiverId"`
}

type SendChatMessagePayload struct {
	ChatToken  string `json:"chatToken"`
	ReceiverID string `json:"receiverId"`
	Message    string `json:"message"`
}

// ConnectPayload — единый конверт ответа на setActiveConversation:
// success + statusCode, receiver при успехе, message при ошибке.
type ConnectPayload struct {
	Success    bool          `json:"success"`
	StatusCode int           `json:"statusCode"`
	Receiver   *ReceiverItem `json:"receiver,omitempty"`
	Message    string        `json:"message,omitempty"`
}

type ReceiverItem struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Headline    string `json:"headline,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

type ErrorPayload struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

type ChatMessageItem struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Message    string    `json:"message"`
	SentAt     time.Time `json:"sentAt"`
	IsRead     bool      `json:"isRead"`
}

func receiverItem(u *domain.User) *ReceiverItem {
	return &ReceiverItem{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Headline:    u.Headline,
		AvatarURL:   u.AvatarURL,
	}
}

func chatMessageItem(m *domain.ChatMessage) ChatMessageItem {
	return ChatMessageItem{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Message:    m.Body,
		SentAt:     m.SentAt,
		IsRead:     m.IsRead,
	}
}
