package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/AhmedSalahALghzaly/lats-go/pkg/logger"
	"github.com/AhmedSalahALghzaly/lats-go/pkg/metrics"
)

// Broadcaster is the push surface other services depend on. The hub
// implements it; tests substitute fakes.
type Broadcaster interface {
	Broadcast(payload any)
	SendToUser(userID string, payload any)
}

// Hub tracks connected websocket clients. It is injected into the
// services that push events, never reached through package state.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	byUser  map[string]map[*Client]struct{}

	logg    *logger.Logger
	metrics *metrics.HTTP
}

func NewHub(logg *logger.Logger, m *metrics.HTTP) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		byUser:  make(map[string]map[*Client]struct{}),
		logg:    logg,
		metrics: m,
	}
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	if client.userID != "" {
		set, ok := h.byUser[client.userID]
		if !ok {
			set = make(map[*Client]struct{})
			h.byUser[client.userID] = set
		}
		set[client] = struct{}{}
	}
	total := len(h.clients)
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.WSConnections.Set(float64(total))
	}
	h.logg.Info(h.logg.WithField(context.Background(), "connections", total), "websocket client connected")
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client)
	if client.userID != "" {
		if set, ok := h.byUser[client.userID]; ok {
			delete(set, client)
			if len(set) == 0 {
				delete(h.byUser, client.userID)
			}
		}
	}
	total := len(h.clients)
	h.mu.Unlock()

	close(client.send)
	if h.metrics != nil {
		h.metrics.WSConnections.Set(float64(total))
	}
}

func encode(payload any) ([]byte, bool) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, false
	}
	return raw, true
}

// Broadcast sends the payload to every connected client. Clients with a
// full send buffer are dropped rather than allowed to stall the caller.
func (h *Hub) Broadcast(payload any) {
	raw, ok := encode(payload)
	if !ok {
		return
	}

	h.mu.RLock()
	stalled := h.fanOut(h.clients, raw)
	h.mu.RUnlock()

	for _, client := range stalled {
		h.unregister(client)
	}
}

// SendToUser delivers the payload to every connection of one user.
func (h *Hub) SendToUser(userID string, payload any) {
	raw, ok := encode(payload)
	if !ok {
		return
	}

	h.mu.RLock()
	stalled := h.fanOut(h.byUser[userID], raw)
	h.mu.RUnlock()

	for _, client := range stalled {
		h.unregister(client)
	}
}

func (h *Hub) fanOut(targets map[*Client]struct{}, raw []byte) []*Client {
	var stalled []*Client
	for client := range targets {
		select {
		case client.send <- raw:
		default:
			stalled = append(stalled, client)
		}
	}
	return stalled
}

// ConnectionCount reports currently open connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
