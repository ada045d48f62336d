package realtime

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/inmobo/inmobo-api/internal/domain/entity"
)

const (
	writeDeadline = 5 * time.Second
	pingInterval  = 15 * time.Second
	readDeadline  = 60 * time.Second
	readLimit     = 4096
)

type EventType string

const (
	ListingCreated EventType = "listing_created"
	ListingUpdated EventType = "listing_updated"
	ListingDeleted EventType = "listing_deleted"
)

// Event is the frame pushed to every subscribed client when a listing changes.
type Event struct {
	Type       EventType        `json:"type"`
	PropertyID string           `json:"propertyId"`
	Property   *entity.Property `json:"property,omitempty"`
}

// Hub fans listing events out to websocket subscribers. All access to the
// client set happens on the Run goroutine; handlers only touch the channels.
type Hub struct {
	clients    map[*websocket.Conn]struct{}
	broadcast  chan Event
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	logger     *logrus.Logger
	upgrader   websocket.Upgrader
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]struct{}),
		broadcast:  make(chan Event, 64),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Run owns the client set. Writes (events and pings) happen only here so a
// connection never sees concurrent writers.
func (h *Hub) Run() {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case conn := <-h.register:
			h.clients[conn] = struct{}{}

		case conn := <-h.unregister:
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				_ = conn.Close()
			}

		case ev := <-h.broadcast:
			for conn := range h.clients {
				_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteJSON(ev); err != nil {
					h.logger.WithError(err).Warn("realtime broadcast failed, dropping client")
					delete(h.clients, conn)
					_ = conn.Close()
				}
			}

		case <-ping.C:
			for conn := range h.clients {
				_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					delete(h.clients, conn)
					_ = conn.Close()
				}
			}
		}
	}
}

// Publish queues an event for broadcast. Never blocks the caller; if the
// queue is full the event is dropped (clients re-sync via the list endpoint).
func (h *Hub) Publish(ev Event) {
	select {
	case h.broadcast <- ev:
	default:
		h.logger.WithField("type", ev.Type).Warn("realtime queue full, event dropped")
	}
}

// Serve upgrades the request and keeps the connection registered until the
// client goes away. The read loop only services control frames.
func (h *Hub) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Warn("websocket upgrade failed")
		return
	}
	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readDeadline))
	})

	h.register <- conn

	go func() {
		defer func() { h.unregister <- conn }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
