package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/okembo/profilehub/internal/identity"
	"github.com/okembo/profilehub/internal/services"
)

// WSHandler streams the owner's profile events (saves, session changes)
// to the browser so open views can refresh.
type WSHandler struct {
	identity identity.Client
	redis    *redis.Client
	log      *logrus.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(idc identity.Client, rdb *redis.Client, log *logrus.Logger) *WSHandler {
	return &WSHandler{
		identity: idc,
		redis:    rdb,
		log:      log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type wsEvent struct {
	Type   string `json:"type"`
	UserID string `json:"user_id,omitempty"`
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeText(b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteMessage(websocket.TextMessage, b)
}

func (h *WSHandler) ProfileWS(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// Redis profile events -> WS
	pubsub := h.redis.Subscribe(ctx, services.ProfileEventsChannel(userID))
	defer pubsub.Close()

	// identity session changes -> WS; unsubscribed when the socket closes
	unsubscribe := h.identity.OnSessionChange(func(s *identity.Session) {
		ev := wsEvent{Type: "session_changed"}
		if s != nil {
			if s.UserID != userID {
				return
			}
			ev.UserID = s.UserID
		}
		b, _ := json.Marshal(ev)
		_ = wc.writeText(b)
	})
	defer unsubscribe()

	// reader: the client sends nothing meaningful; drain until close
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			return nil
		})
		for {
			if _, _, rerr := conn.ReadMessage(); rerr != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(30 * time.Second)
	defer ping.Stop()

	ch := pubsub.Channel()
	for {
		select {
		case <-readDone:
			return
		case <-ctx.Done():
			return
		case msg, open := <-ch:
			if !open {
				return
			}
			if err := wc.writeText([]byte(msg.Payload)); err != nil {
				return
			}
		case <-ping.C:
			wc.mu.Lock()
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			perr := conn.WriteMessage(websocket.PingMessage, nil)
			wc.mu.Unlock()
			if perr != nil {
				return
			}
		}
	}
}
