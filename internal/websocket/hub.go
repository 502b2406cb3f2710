package websocket

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"

	"mathclicks-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// redisChannel carries classroom fan-out between instances.
const redisChannel = "classroom_events"

type Hub struct {
	// Registered monitors map: class code -> open connections. A class can
	// have several monitors open at once (teacher desk, projector).
	clients map[string][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ClassCode] = append(h.clients[client.ClassCode], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Monitor connected", map[string]interface{}{"class_code": client.ClassCode})

		case client := <-h.unregister:
			// Sole owner of close(client.Send). A client already removed
			// (duplicate unregister) is skipped, so the channel closes once.
			h.mu.Lock()
			if clients, ok := h.clients[client.ClassCode]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.ClassCode] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.ClassCode]) == 0 {
					delete(h.clients, client.ClassCode)
					h.logger.Info("Hub", "Last monitor disconnected", map[string]interface{}{"class_code": client.ClassCode})
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToClass pushes a payload to every monitor watching the class, on
// this instance and, via Redis, on the others.
func (h *Hub) BroadcastToClass(classCode string, payload interface{}) {
	classCode = strings.ToUpper(strings.TrimSpace(classCode))

	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Warn("Hub", "Dropping unserializable broadcast", map[string]interface{}{"class_code": classCode})
		return
	}

	h.sendLocal(classCode, data)

	if h.rdb != nil {
		envelope, _ := json.Marshal(map[string]interface{}{
			"class_code": classCode,
			"message":    json.RawMessage(data),
		})
		h.rdb.Publish(context.Background(), redisChannel, envelope)
	}
}

// sendLocal delivers to this instance's monitors. Sends happen under the read
// lock so they cannot interleave with Run closing a channel; a stalled client
// is only queued for unregister, never closed here.
func (h *Hub) sendLocal(classCode string, data []byte) {
	var stalled []*Client

	h.mu.RLock()
	for _, client := range h.clients[classCode] {
		select {
		case client.Send <- data:
		default:
			stalled = append(stalled, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stalled {
		h.logger.Warn("Hub", "Monitor send buffer full, dropping connection", map[string]interface{}{"class_code": classCode})
		h.unregister <- client
	}
}

func (h *Hub) subscribeToRedis() {
	// Every instance subscribes to the same channel and forwards to the
	// classes it has monitors for. Messages for other classes are ignored.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, redisChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var envelope struct {
			ClassCode string          `json:"class_code"`
			Message   json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		h.mu.RLock()
		_, watched := h.clients[envelope.ClassCode]
		h.mu.RUnlock()
		if watched {
			h.sendLocal(envelope.ClassCode, envelope.Message)
		}
	}
}
