package stream

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Hub fans traffic snapshots out to websocket subscribers, keyed by city.
// With a redis client it also bridges snapshots across instances.
type Hub struct {
	redis   *redis.Client
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	City string
	Send chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:   redisClient,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register(city string) *Client {
	client := &Client{
		City: city,
		Send: make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[city] == nil {
		h.clients[city] = map[*Client]struct{}{}
	}
	h.clients[city][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if cityClients, ok := h.clients[client.City]; ok {
		delete(cityClients, client)
		if len(cityClients) == 0 {
			delete(h.clients, client.City)
		}
	}
	close(client.Send)
}

// Broadcast sends a snapshot to every subscriber for the city. When redis
// is configured the payload goes through pub/sub so that all instances see
// it exactly once; local delivery happens in the subscription loop.
func (h *Hub) Broadcast(city string, payload []byte) {
	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(city), payload).Err()
		if err == nil {
			return
		}
		log.Printf("redis publish error: %v", err)
	}
	h.deliver(city, payload)
}

func (h *Hub) deliver(city string, payload []byte) {
	h.mu.RLock()
	clients := h.clients[city]
	h.mu.RUnlock()

	for client := range clients {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "traffic:*:updates")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		if city := cityFromChannel(msg.Channel); city != "" {
			h.deliver(city, []byte(msg.Payload))
		}
	}
}

func redisChannel(city string) string {
	return "traffic:" + city + ":updates"
}

func cityFromChannel(ch string) string {
	// traffic:{city}:updates
	const prefix = "traffic:"
	const suffix = ":updates"
	if !strings.HasPrefix(ch, prefix) || !strings.HasSuffix(ch, suffix) || len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
