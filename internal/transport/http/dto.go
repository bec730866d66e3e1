package http

import "time"

type ChatTokenResponse struct {
	ChatToken string `json:"chatToken"`
	ExpiresIn int64  `json:"expiresIn"` // seconds
}

type ChatMessageItem struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Message    string    `json:"message"`
	SentAt     time.Time `json:"sentAt"`
	IsRead     bool      `json:"isRead"`
}

type HistoryResponse struct {
	Items []ChatMessageItem `json:"items"`
	Total int               `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type MarkReadRequest struct {
	IDs []string `json:"ids"`
}

type MarkReadResponse struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type UnreadSenderItem struct {
	SenderID      string    `json:"senderId"`
	UnreadCount   int       `json:"unreadCount"`
	LatestMessage string    `json:"latestMessage"`
	LatestSentAt  time.Time `json:"latestSentAt"`
}

type UnreadResponse struct {
	Items []UnreadSenderItem `json:"items"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
