package http

import (
	"net/http"
	"time"

	httpmw "github.com/jobora/chat-service/internal/transport/http/middleware"
	"github.com/jobora/chat-service/internal/transport/ws"
	"github.com/jobora/chat-service/pkg/httputil"

	"github.com/go-chi/chi/v5"
	middlewareChi "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(h *Handler, wsServer *ws.Server, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewareChi.RealIP)
	r.Use(middlewareChi.Recoverer)
	r.Use(middlewareChi.Compress(5))
	r.Use(httputil.MiddlewareRequestID)
	r.Use(httputil.MiddlewareLogging)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-User-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// WS endpoint: токен ходит в самих событиях
	r.Get("/ws/chat", wsServer.HandleWS)

	// REST поверх Message Store; личность даёт gateway
	r.Group(func(pr chi.Router) {
		pr.Use(httpmw.AuthMiddleware)
		pr.Use(middlewareChi.Timeout(30 * time.Second))

		pr.Post("/chat/token", h.MintChatToken)
		pr.Get("/conversations/{peerId}/messages", h.GetHistory)
		pr.Post("/messages/read", h.MarkRead)
		pr.Get("/messages/unread", h.GetUnreadSummary)
	})

	// health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httputil.OK(w, map[string]string{"status": "ok"})
	})

	return r
}
