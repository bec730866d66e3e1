package ws

import (
	"sync"
)

type Conn interface {
	Send(msg Message) error
	Close() error
	UserID() string
}

// Hub — broadcast-группы по каноничному conversation id.
type Hub struct {
	mu            sync.RWMutex
	conversations map[string]map[Conn]struct{} // conversationID -> set of connections
}

func NewHub() *Hub {
	return &Hub{conversations: make(map[string]map[Conn]struct{})}
}

func (h *Hub) Join(conversationID string, c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cs, ok := h.conversations[conversationID]
	if !ok {
		cs = make(map[Conn]struct{})
		h.conversations[conversationID] = cs
	}
	cs[c] = struct{}{}
}

func (h *Hub) Leave(conversationID string, c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if cs, ok := h.conversations[conversationID]; ok {
		delete(cs, c)
		if len(cs) == 0 {
			delete(h.conversations, conversationID)
		}
	}
}

func (h *Hub) Broadcast(conversationID string, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if cs, ok := h.conversations[conversationID]; ok {
		for c := range cs {
			_ = c.Send(msg) // best-effort
		}
	}
}
