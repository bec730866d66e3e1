package domain

import "time"

type ChatMessage struct {
	ID         string    `db:"id"`
	SenderID   string    `db:"sender_id"`
	ReceiverID string    `db:"receiver_id"`
	Body       string    `db:"body"`
	SentAt     time.Time `db:"sent_at"`
	IsRead     bool      `db:"is_read"`
}

// UnreadSender — агрегат непрочитанных сообщений по одному отправителю.
type UnreadSender struct {
	SenderID      string
	UnreadCount   int
	LatestMessage string
	LatestSentAt  time.Time
}
