package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jobora/chat-service/internal/security"
	"github.com/jobora/chat-service/internal/service"
	httpmw "github.com/jobora/chat-service/internal/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	chatSvc *service.ChatService
	tokens  *security.ChatTokenSigner
}

func NewHandler(chat *service.ChatService, tokens *security.ChatTokenSigner) *Handler {
	return &Handler{
		chatSvc: chat,
		tokens:  tokens,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// POST /chat/token — короткоживущий токен для WS-событий.
func (h *Handler) MintChatToken(w http.ResponseWriter, r *http.Request) {
	userID := httpmw.UserIDFromCtx(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "missing user id"})
		return
	}

	token, err := h.tokens.Sign(userID, time.Now())
	if err != nil {
		slog.Error("handler.MintChatToken:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to sign token"})
		return
	}

	writeJSON(w, http.StatusOK, ChatTokenResponse{
		ChatToken: token,
		ExpiresIn: int64(h.tokens.TTL().Seconds()),
	})
}

// GET /conversations/{peerId}/messages?page=&limit=
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := httpmw.UserIDFromCtx(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "missing user id"})
		return
	}
	peerID := chi.URLParam(r, "peerId")

	page, limit := 1, 20
	if s := r.URL.Query().Get("page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			page = n
		}
	}
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}

	items, total, err := h.chatSvc.History(r.Context(), userID, peerID, page, limit)
	if err != nil {
		slog.Error("handler.GetHistory:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	resp := HistoryResponse{Items: make([]ChatMessageItem, 0, len(items)), Total: total, Page: page, Limit: limit}
	for _, m := range items {
		resp.Items = append(resp.Items, ChatMessageItem{
			ID:         m.ID,
			SenderID:   m.SenderID,
			ReceiverID: m.ReceiverID,
			Message:    m.Body,
			SentAt:     m.SentAt.Truncate(time.Millisecond),
			IsRead:     m.IsRead,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// POST /messages/read
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	var req MarkReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}
	if len(req.IDs) == 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "ids is required"})
		return
	}

	matched, modified, err := h.chatSvc.MarkRead(r.Context(), req.IDs)
	if err != nil {
		slog.Error("handler.MarkRead:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, MarkReadResponse{MatchedCount: matched, ModifiedCount: modified})
}

// GET /messages/unread?start=&end= (RFC3339, опционально)
func (h *Handler) GetUnreadSummary(w http.ResponseWriter, r *http.Request) {
	userID := httpmw.UserIDFromCtx(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "missing user id"})
		return
	}

	var start, end *time.Time
	if s := r.URL.Query().Get("start"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid start"})
			return
		}
		start = &t
	}
	if s := r.URL.Query().Get("end"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid end"})
			return
		}
		end = &t
	}

	items, err := h.chatSvc.UnreadSummary(r.Context(), userID, start, end)
	if err != nil {
		slog.Error("handler.GetUnreadSummary:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	resp := UnreadResponse{Items: make([]UnreadSenderItem, 0, len(items))}
	for _, it := range items {
		resp.Items = append(resp.Items, UnreadSenderItem{
			SenderID:      it.SenderID,
			UnreadCount:   it.UnreadCount,
			LatestMessage: it.LatestMessage,
			LatestSentAt:  it.LatestSentAt,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
