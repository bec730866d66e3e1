package ws

import (
	"sync"
)

type Entry struct {
	Conn           Conn
	ConversationID string
}

// Directory — кто в каком диалоге сейчас активен: userID -> {conn, conversationID}.
// Set перезаписывает целиком, без merge.
type Directory struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewDirectory() *Directory {
	return &Directory{entries: make(map[string]Entry)}
}

func (d *Directory) Set(userID string, c Conn, conversationID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.entries[userID] = Entry{Conn: c, ConversationID: conversationID}
}

func (d *Directory) Get(userID string) (Entry, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	e, ok := d.entries[userID]
	return e, ok
}

func (d *Directory) Clear(userID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.entries, userID)
}

// ClearConn удаляет запись, только если она всё ещё указывает на это
// соединение: закрытие старого сокета не должно выбить свежий.
func (d *Directory) ClearConn(userID string, c Conn) (Entry, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.entries[userID]
	if !ok || e.Conn != c {
		return Entry{}, false
	}
	delete(d.entries, userID)

	return e, true
}
