package event_stream

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/events"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgAdminOnly     = "поток всех событий доступен только администратору"

	bufferSize   = 64
	writeTimeout = 10 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = pongTimeout * 9 / 10
)

type Handler struct {
	subscriber Subscriber
	upgrader   websocket.Upgrader
	logger     Logger
}

func NewHandler(subscriber Subscriber, logger Logger) *Handler {
	return &Handler{
		subscriber: subscriber,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Токен проверен middleware Auth, origin не ограничиваем
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Handle GET /api/v1/events
// Query params: all (опционально, только администратор)
// Отправляет события бронирований и уведомлений пользователя в WebSocket.
// Медленный клиент теряет события, публикация при этом не блокируется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("GET /events - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	all := false
	if raw := handlers.QueryString(r, "all"); raw != nil {
		all, _ = strconv.ParseBool(*raw)
	}
	if all && !principal.IsAdmin() {
		h.logger.Warn("GET /events - Non-admin requested all events: user_id=%s", principal.UserID)
		handlers.RespondForbidden(w, msgAdminOnly)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам пишет ответ с ошибкой
		h.logger.Warn("GET /events - Failed to upgrade: user_id=%s, error=%v", principal.UserID, err)
		return
	}
	defer conn.Close()

	queue := make(chan events.Event, bufferSize)
	push := func(e events.Event) {
		select {
		case queue <- e:
		default:
			h.logger.Warn("GET /events - Client is slow, dropping %s for user_id=%s", e.Type, principal.UserID)
		}
	}

	var unsubscribe func()
	if all {
		unsubscribe = h.subscriber.SubscribeAll(push)
	} else {
		unsubscribe = h.subscriber.Subscribe(principal.UserID, push)
	}
	defer unsubscribe()

	h.logger.Info("GET /events - Client connected: user_id=%s, all=%t", principal.UserID, all)

	done := make(chan struct{})
	go h.readLoop(conn, done)

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			h.logger.Info("GET /events - Client disconnected: user_id=%s", principal.UserID)
			return

		case e := <-queue:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(e); err != nil {
				h.logger.Warn("GET /events - Failed to write event: user_id=%s, error=%v", principal.UserID, err)
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readLoop нужен только для обработки pong и закрытия соединения клиентом
func (h *Handler) readLoop(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	_ = conn.SetReadDeadline(time.Now().Add(pongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("GET /events - Unexpected close: %v", err)
			}
			return
		}
	}
}
