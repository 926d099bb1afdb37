package ws

import (
	"context"
	"encoding/json"
	"sync"

	"jobmarket_backend/internal/logger"
)

// Manager tracks live connections per user. A user may hold several
// connections (tabs, devices); each receives every event for that user.
type Manager struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run serves register/unregister until ctx is cancelled, then closes every
// connection.
func (m *Manager) Run(ctx context.Context) {
	defer m.closeAll()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-m.register:
			m.mu.Lock()
			set, ok := m.clients[client.UserID]
			if !ok {
				set = make(map[*Client]struct{})
				m.clients[client.UserID] = set
			}
			set[client] = struct{}{}
			m.mu.Unlock()
			logger.Debug("WebSocket client registered", "user_id", client.UserID, "connections", len(set))

		case client := <-m.unregister:
			m.mu.Lock()
			m.remove(client)
			m.mu.Unlock()
		}
	}
}

// remove must be called with mu held.
func (m *Manager) remove(client *Client) {
	set, ok := m.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(m.clients, client.UserID)
	}
	logger.Debug("WebSocket client unregistered", "user_id", client.UserID)
}

func (m *Manager) closeAll() {
	close(m.done)

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, set := range m.clients {
		for client := range set {
			m.remove(client)
		}
	}
}

// Register returns false once the manager has stopped.
func (m *Manager) Register(client *Client) bool {
	select {
	case m.register <- client:
		return true
	case <-m.done:
		return false
	}
}

func (m *Manager) Unregister(client *Client) {
	select {
	case m.unregister <- client:
	case <-m.done:
	}
}

// SendToUser delivers event as JSON to every connection of userID. A
// connection whose buffer is full is dropped.
func (m *Manager) SendToUser(userID string, event interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to encode websocket event", "error", err.Error(), "user_id", userID)
		return
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for client := range m.clients[userID] {
		select {
		case client.send <- payload:
		default:
			logger.Warn("WebSocket client too slow, disconnecting", "user_id", userID)
			go m.Unregister(client)
		}
	}
}

func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, set := range m.clients {
		n += len(set)
	}
	return n
}

func (m *Manager) IsConnected(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients[userID]) > 0
}
