package postgres

import (
	"context"
	"time"

	"github.com/jobora/chat-service/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type MessageRepository struct {
	db *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Insert(ctx context.Context, senderID, receiverID, body string) (*domain.ChatMessage, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO chat_messages (sender_id, receiver_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, sender_id, receiver_id, body, sent_at, is_read
	`, senderID, receiverID, body)

	var m domain.ChatMessage
	if err := row.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Body, &m.SentAt, &m.IsRead); err != nil {
		return nil, err
	}
	return &m, nil
}

// Between возвращает страницу переписки пары (в обе стороны), новые сверху.
func (r *MessageRepository) Between(ctx context.Context, a, b string, page, limit int) ([]domain.ChatMessage, error) {
	offset, lim := clampPage(page, limit)

	rows, err := r.db.Query(ctx, `
		SELECT id, sender_id, receiver_id, body, sent_at, is_read
		FROM chat_messages
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY sent_at DESC, id DESC
		OFFSET $3 LIMIT $4
	`, a, b, offset, lim)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Body, &m.SentAt, &m.IsRead); err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, rows.Err()
}

func (r *MessageRepository) CountBetween(ctx context.Context, a, b string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM chat_messages
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
	`, a, b).Scan(&count)

	return count, err
}

// MarkRead проставляет is_read по списку id.
// matched — сколько id нашлось, modified — сколько реально перевёрнуто.
func (r *MessageRepository) MarkRead(ctx context.Context, ids []string) (matched, modified int64, err error) {
	if len(ids) == 0 {
		return 0, 0, nil
	}

	if err = r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM chat_messages WHERE id = ANY($1)`,
		ids).Scan(&matched); err != nil {
		return 0, 0, err
	}

	ct, err := r.db.Exec(ctx,
		`UPDATE chat_messages SET is_read = TRUE WHERE id = ANY($1) AND is_read = FALSE`,
		ids)
	if err != nil {
		return 0, 0, err
	}

	return matched, ct.RowsAffected(), nil
}

// UnreadSenders — по каждому отправителю: количество непрочитанных и
// последнее сообщение. start/end опциональны.
func (r *MessageRepository) UnreadSenders(ctx context.Context, userID string, start, end *time.Time) ([]domain.UnreadSender, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT ON (sender_id)
		       sender_id,
		       COUNT(*) OVER (PARTITION BY sender_id) AS unread_count,
		       body,
		       sent_at
		FROM chat_messages
		WHERE receiver_id = $1
		  AND is_read = FALSE
		  AND ($2::timestamptz IS NULL OR sent_at >= $2)
		  AND ($3::timestamptz IS NULL OR sent_at <= $3)
		ORDER BY sender_id, sent_at DESC, id DESC
	`, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.UnreadSender
	for rows.Next() {
		var s domain.UnreadSender
		if err := rows.Scan(&s.SenderID, &s.UnreadCount, &s.LatestMessage, &s.LatestSentAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	return out, rows.Err()
}
