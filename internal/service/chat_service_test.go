package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jobora/chat-service/internal/domain"

	"github.com/stretchr/testify/require"
)

type fakeMessageRepo struct {
	inserted  []domain.ChatMessage
	insertErr error
	markedIDs []string
}

func (f *fakeMessageRepo) Insert(_ context.Context, senderID, receiverID, body string) (*domain.ChatMessage, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	m := domain.ChatMessage{
		ID:         "msg-1",
		SenderID:   senderID,
		ReceiverID: receiverID,
		Body:       body,
		SentAt:     time.Now(),
	}
	f.inserted = append(f.inserted, m)
	return &m, nil
}

func (f *fakeMessageRepo) Between(context.Context, string, string, int, int) ([]domain.ChatMessage, error) {
	return nil, nil
}

func (f *fakeMessageRepo) CountBetween(context.Context, string, string) (int, error) {
	return 0, nil
}

func (f *fakeMessageRepo) MarkRead(_ context.Context, ids []string) (int64, int64, error) {
	f.markedIDs = ids
	return int64(len(ids)), int64(len(ids)), nil
}

func (f *fakeMessageRepo) UnreadSenders(context.Context, string, *time.Time, *time.Time) ([]domain.UnreadSender, error) {
	return nil, nil
}

func TestChatService_Save_Trims(t *testing.T) {
	req := require.New(t)
	repo := &fakeMessageRepo{}
	svc := NewChatService(repo, 0)

	m, err := svc.Save(context.Background(), "a", "b", "  hello  ")
	req.NoError(err)
	req.Equal("hello", m.Body)
}

func TestChatService_Save_RejectsEmpty(t *testing.T) {
	req := require.New(t)
	repo := &fakeMessageRepo{}
	svc := NewChatService(repo, 0)

	_, err := svc.Save(context.Background(), "a", "b", "   ")
	req.ErrorIs(err, domain.ErrEmptyMessage)
	req.Empty(repo.inserted)
}

func TestChatService_Save_RejectsTooLong(t *testing.T) {
	req := require.New(t)
	repo := &fakeMessageRepo{}
	svc := NewChatService(repo, 8)

	_, err := svc.Save(context.Background(), "a", "b", "way too long for eight")
	req.ErrorIs(err, domain.ErrMessageTooLong)
	req.Empty(repo.inserted)
}

func TestChatService_MarkRead_Delegates(t *testing.T) {
	req := require.New(t)
	repo := &fakeMessageRepo{}
	svc := NewChatService(repo, 0)

	matched, modified, err := svc.MarkRead(context.Background(), []string{"m1", "m2"})
	req.NoError(err)
	req.EqualValues(2, matched)
	req.EqualValues(2, modified)
	req.Equal([]string{"m1", "m2"}, repo.markedIDs)
}

func TestChatService_Save_PropagatesStoreError(t *testing.T) {
	req := require.New(t)
	storeErr := errors.New("insert failed")
	svc := NewChatService(&fakeMessageRepo{insertErr: storeErr}, 0)

	_, err := svc.Save(context.Background(), "a", "b", "hi")
	req.ErrorIs(err, storeErr)
}
