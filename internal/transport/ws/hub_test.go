package ws

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeConn записывает отправленные события; используется всеми ws-тестами.
type fakeConn struct {
	mu     sync.Mutex
	userID string
	sent   []Message
}

func (f *fakeConn) Send(msg Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeConn) Close() error   { return nil }
func (f *fakeConn) UserID() string { return f.userID }

func (f *fakeConn) messages() []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Message, len(f.sent))
	copy(out, f.sent)
	return out
}

func (f *fakeConn) lastMessage(t *testing.T) Message {
	t.Helper()
	msgs := f.messages()
	require.NotEmpty(t, msgs, "no messages sent")
	return msgs[len(msgs)-1]
}

func TestHub_JoinBroadcast(t *testing.T) {
	req := require.New(t)
	h := NewHub()
	c1 := &fakeConn{}
	c2 := &fakeConn{}
	c3 := &fakeConn{}

	h.Join("a_b", c1)
	h.Join("a_b", c2)
	h.Join("c_d", c3)

	h.Broadcast("a_b", Message{Type: TypeReceivedChatMessage})

	req.Len(c1.messages(), 1)
	req.Len(c2.messages(), 1)
	req.Empty(c3.messages())
}

func TestHub_LeaveStopsDelivery(t *testing.T) {
	req := require.New(t)
	h := NewHub()
	c := &fakeConn{}

	h.Join("a_b", c)
	h.Leave("a_b", c)

	h.Broadcast("a_b", Message{Type: TypeReceivedChatMessage})
	req.Empty(c.messages())
}

func TestHub_BroadcastUnknownConversation(t *testing.T) {
	h := NewHub()
	// не должно паниковать
	h.Broadcast("nobody_here", Message{Type: TypeReceivedChatMessage})
}
