package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jobora/chat-service/internal/domain"

	"github.com/gorilla/websocket"
)

type UserSvc interface {
	GetProfile(ctx context.Context, id string) (*domain.User, error)
}

type ChatSvc interface {
	Save(ctx context.Context, senderID, receiverID, body string) (*domain.ChatMessage, error)
}

type TokenValidator interface {
	Validate(token string) (senderID string, err error)
}

type Server struct {
	upgrader  websocket.Upgrader
	hub       *Hub
	directory *Directory
	tokens    TokenValidator
	userSvc   UserSvc
	chatSvc   ChatSvc

	pingEvery time.Duration
}

func NewServer(hub *Hub, directory *Directory, tokens TokenValidator, user UserSvc, chat ChatSvc) *Server {
	return &Server{
		hub:       hub,
		directory: directory,
		tokens:    tokens,
		userSvc:   user,
		chatSvc:   chat,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingEvery: 15 * time.Second,
	}
}

// WS endpoint: GET /ws/chat
// Апгрейд без авторизации: каждое событие несёт свой chatToken и
// валидируется отдельно.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "err", err)
		http.Error(w, "upgrade failed", http.StatusBadRequest)
		return
	}

	c := newWsConn(conn)

	go s.writeLoop(r.Context(), c)
	s.readLoop(r.Context(), c)

	s.cleanup(c)

	if err := c.Close(); err != nil {
		slog.Debug("ws close failed", "user", c.UserID(), "err", err)
	}
}

// cleanup вызывается при закрытии сокета: снимает соединение с его
// активного диалога и чистит запись в Directory.
func (s *Server) cleanup(c *wsConn) {
	uid := c.UserID()
	if uid == "" {
		return
	}
	if e, ok := s.directory.ClearConn(uid, c); ok {
		s.hub.Leave(e.ConversationID, c)
	}
}

func (s *Server) readLoop(ctx context.Context, c *wsConn) {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(1 << 20)
	c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		// События одного сокета обрабатываются последовательно:
		// это и есть гарантия порядка для одного отправителя.
		if senderID := s.dispatch(ctx, c, msg); senderID != "" {
			c.bindUser(senderID)
		}
	}
}

// dispatch возвращает senderID успешно аутентифицированного события
// (пустая строка, если токен не прошёл или событие неизвестно).
// Паника обработчика не валит сокет, а превращается в 500-событие.
func (s *Server) dispatch(ctx context.Context, c Conn, msg Message) (senderID string) {
	failEvent := TypeSendMessageError
	if msg.Type == TypeSetActiveConversation {
		failEvent = TypeConnectToConversation
	}
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("ws handler panic", "event", msg.Type, "panic", rec)
			_ = c.Send(Message{Type: failEvent, Payload: ErrorPayload{
				StatusCode: http.StatusInternalServerError,
				Message:    "internal error",
			}})
		}
	}()

	switch msg.Type {
	case TypeSetActiveConversation:
		var p SetActiveConversationPayload
		if decode(msg.Payload, &p) != nil {
			return ""
		}
		return s.handleSetActiveConversation(ctx, c, p)
	case TypeSendChatMessage:
		var p SendChatMessagePayload
		if decode(msg.Payload, &p) != nil {
			return ""
		}
		return s.handleSendChatMessage(ctx, c, p)
	default:
		// ignore
		return ""
	}
}

func (s *Server) handleSetActiveConversation(ctx context.Context, c Conn, p SetActiveConversationPayload) string {
	senderID, err := s.tokens.Validate(p.ChatToken)
	if err != nil {
		status, text := tokenError(err)
		_ = c.Send(Message{Type: TypeConnectToConversation, Payload: ConnectPayload{
			StatusCode: status,
			Message:    text,
		}})
		return ""
	}

	peerID := strings.TrimSpace(p.ReceiverID)
	peer, err := s.lookupUser(ctx, peerID)
	if err != nil {
		status, text := lookupError(err)
		_ = c.Send(Message{Type: TypeConnectToConversation, Payload: ConnectPayload{
			StatusCode: status,
			Message:    text,
		}})
		return senderID
	}

	conversationID := domain.ConversationID(senderID, peerID)

	// Покидаем предыдущий канал, если он был (или тот же канал,
	// но с другого сокета).
	if prev, ok := s.directory.Get(senderID); ok && (prev.ConversationID != conversationID || prev.Conn != c) {
		s.hub.Leave(prev.ConversationID, prev.Conn)
	}

	s.hub.Join(conversationID, c)
	s.directory.Set(senderID, c, conversationID)

	_ = c.Send(Message{Type: TypeConnectToConversation, Payload: ConnectPayload{
		Success:    true,
		StatusCode: http.StatusOK,
		Receiver:   receiverItem(peer),
	}})

	return senderID
}

func (s *Server) handleSendChatMessage(ctx context.Context, c Conn, p SendChatMessagePayload) string {
	senderID, err := s.tokens.Validate(p.ChatToken)
	if err != nil {
		status, text := tokenError(err)
		s.sendError(c, status, text)
		return ""
	}

	receiverID := strings.TrimSpace(p.ReceiverID)
	if _, err := s.lookupUser(ctx, receiverID); err != nil {
		status, text := lookupError(err)
		s.sendError(c, status, text)
		return senderID
	}

	// Сначала сохраняем; без успешной записи доставки нет.
	msg, err := s.chatSvc.Save(ctx, senderID, receiverID, p.Message)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyMessage), errors.Is(err, domain.ErrMessageTooLong):
			s.sendError(c, http.StatusBadRequest, err.Error())
		default:
			slog.Error("ws chat save failed", "sender", senderID, "receiver", receiverID, "err", err)
			s.sendError(c, http.StatusInternalServerError, "failed to save message")
		}
		return senderID
	}

	// Канал доставки: активный диалог отправителя, а если его нет —
	// каноничный канал пары. Запись в Directory может смениться
	// конкурентным setActiveConversation — читаем один раз и доставляем
	// туда, куда она указывала в этот момент.
	conversationID := domain.ConversationID(senderID, receiverID)
	if e, ok := s.directory.Get(senderID); ok {
		conversationID = e.ConversationID
	}

	s.hub.Broadcast(conversationID, Message{Type: TypeReceivedChatMessage, Payload: chatMessageItem(msg)})

	return senderID
}

func (s *Server) lookupUser(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, domain.ErrUserNotFound
	}
	return s.userSvc.GetProfile(ctx, id)
}

func (s *Server) sendError(c Conn, status int, text string) {
	_ = c.Send(Message{Type: TypeSendMessageError, Payload: ErrorPayload{
		StatusCode: status,
		Message:    text,
	}})
}

func tokenError(err error) (int, string) {
	if errors.Is(err, domain.ErrTokenExpired) {
		return http.StatusUnauthorized, "Token expired"
	}
	return http.StatusBadRequest, "Token malformed"
}

func lookupError(err error) (int, string) {
	if errors.Is(err, domain.ErrUserNotFound) {
		return http.StatusBadRequest, "Receiver does not exists"
	}
	slog.Error("ws receiver lookup failed", "err", err)
	return http.StatusInternalServerError, "failed to look up receiver"
}

func (s *Server) writeLoop(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		}
	}
}

// --- helpers ---

func decode(payload interface{}, dst interface{}) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return json.Unmarshal(b, dst)
}

type wsConn struct {
	conn   *websocket.Conn
	sendMu chan struct{}
	closed chan struct{}

	mu     sync.Mutex
	userID string // привязывается после первого валидного токена
}

func newWsConn(c *websocket.Conn) *wsConn {
	return &wsConn{
		conn:   c,
		sendMu: make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
}

func (c *wsConn) Send(msg Message) error {
	c.sendMu <- struct{}{}
	defer func() { <-c.sendMu }()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))

	return c.conn.WriteJSON(msg)
}

func (c *wsConn) Close() error {
	select {
	case <-c.closed:
		return nil
	default:
		close(c.closed)
	}

	return c.conn.Close()
}

func (c *wsConn) bindUser(id string) {
	c.mu.Lock()
	if c.userID == "" {
		c.userID = id
	}
	c.mu.Unlock()
}

func (c *wsConn) UserID() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.userID
}
