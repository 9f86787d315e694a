package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	apparatus "leverbox/internal/apparatus/domain"
	"leverbox/internal/infra/async"
	"leverbox/internal/infra/httpserver"
	"leverbox/internal/session/httpapi/internal"
	"leverbox/internal/session/usecases"

	"github.com/gorilla/websocket"
)

const (
	_writeWait    = 10 * time.Second
	_pongWait     = 60 * time.Second
	_pingInterval = 54 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// the stream is read only and served on the lab network
		return true
	},
}

// EventStreamController pushes every engine event to websocket clients.
// Slow clients miss frames instead of holding up the others.
type EventStreamController struct {
	broker       async.InternalBroker
	subscription async.Subscription
	clients      map[*websocket.Conn]chan internal.LiveEvent
	clientsMux   sync.RWMutex
	ctx          context.Context
	cancel       context.CancelFunc
	stopped      chan struct{}
}

func NewEventStreamController(broker async.InternalBroker) (*EventStreamController, error) {
	subscription, err := broker.Subscribe(usecases.BoxEventsTopic)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &EventStreamController{
		broker:       broker,
		subscription: subscription,
		clients:      make(map[*websocket.Conn]chan internal.LiveEvent),
		ctx:          ctx,
		cancel:       cancel,
		stopped:      make(chan struct{}),
	}

	go c.run()

	return c, nil
}

var _ httpserver.Controller = (*EventStreamController)(nil)

func (c *EventStreamController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /ws/events", c.handleWebSocket())
}

func (c *EventStreamController) handleWebSocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("websocket upgrade failed", slog.String("error", err.Error()))
			return
		}

		slog.Info("new websocket connection established", slog.String("remote_addr", r.RemoteAddr))

		outbox := make(chan internal.LiveEvent, 64)
		c.clientsMux.Lock()
		c.clients[conn] = outbox
		total := len(c.clients)
		c.clientsMux.Unlock()
		slog.Info("websocket client registered", slog.Int("total_clients", total))

		go c.writeLoop(conn, outbox)
		go c.readLoop(conn)
	}
}

// readLoop only serves pongs and notices the client going away.
func (c *EventStreamController) readLoop(conn *websocket.Conn) {
	defer c.unregister(conn)

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(_pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(_pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("websocket read error", slog.String("error", err.Error()))
			} else {
				slog.Debug("websocket connection closed", slog.String("error", err.Error()))
			}
			return
		}
	}
}

func (c *EventStreamController) writeLoop(conn *websocket.Conn, outbox chan internal.LiveEvent) {
	ticker := time.NewTicker(_pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case event, ok := <-outbox:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(_writeWait))
			if err := conn.WriteJSON(event); err != nil {
				slog.Warn("failed to write event to websocket client", slog.String("error", err.Error()))
				c.unregister(conn)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(_writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.unregister(conn)
				return
			}
		}
	}
}

func (c *EventStreamController) unregister(conn *websocket.Conn) {
	c.clientsMux.Lock()
	outbox, ok := c.clients[conn]
	if ok {
		delete(c.clients, conn)
		close(outbox)
	}
	total := len(c.clients)
	c.clientsMux.Unlock()

	if ok {
		conn.Close()
		slog.Info("websocket client unregistered", slog.Int("total_clients", total))
	}
}

func (c *EventStreamController) run() {
	defer close(c.stopped)

	for {
		select {
		case <-c.ctx.Done():
			return
		case msg, ok := <-c.subscription.Receiver:
			if !ok {
				return
			}
			event, ok := msg.Value.(apparatus.Event)
			if !ok {
				continue
			}
			c.broadcast(internal.ToLiveEvent(event))
		}
	}
}

func (c *EventStreamController) broadcast(event internal.LiveEvent) {
	c.clientsMux.RLock()
	defer c.clientsMux.RUnlock()

	for _, outbox := range c.clients {
		select {
		case outbox <- event:
		default:
			slog.Warn("websocket client too slow, dropping event", slog.String("kind", event.Kind))
		}
	}
}

// Clients is the number of connected websocket clients.
func (c *EventStreamController) Clients() int {
	c.clientsMux.RLock()
	defer c.clientsMux.RUnlock()
	return len(c.clients)
}

func (c *EventStreamController) Shutdown() {
	slog.Info("shutting down event stream controller")
	c.cancel()
	<-c.stopped

	if err := c.broker.Unsubscribe(usecases.BoxEventsTopic, c.subscription); err != nil {
		slog.Error("failed to unsubscribe event stream", slog.Any("error", err))
	}

	c.clientsMux.Lock()
	conns := make([]*websocket.Conn, 0, len(c.clients))
	for conn, outbox := range c.clients {
		close(outbox)
		conns = append(conns, conn)
	}
	c.clients = make(map[*websocket.Conn]chan internal.LiveEvent)
	c.clientsMux.Unlock()

	for _, conn := range conns {
		conn.Close()
	}
}
