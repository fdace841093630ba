package websocket

import (
	"sync"

	"github.com/gorilla/websocket"

	"homewatch/internal/logger"
)

// HubService fans the newest ingested frame out to connected dashboard
// viewers. It also retains the raw bytes of the last frame so the plain
// HTTP latest-frame endpoint can serve it without touching disk.
type HubService struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mutex      sync.RWMutex
	logger     *logger.Logger

	latestMu    sync.RWMutex
	latestFrame []byte
}

// NewHubService creates a viewer hub.
func NewHubService(logger *logger.Logger) *HubService {
	return &HubService{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, 8),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		logger:     logger,
	}
}

// Run processes register/unregister/broadcast events until the process exits.
func (h *HubService) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			h.logger.Info("Viewer connected. Total: %d", h.GetClientCount())

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			h.mutex.Unlock()
			h.logger.Info("Viewer disconnected. Total: %d", h.GetClientCount())

		case message := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				err := client.WriteMessage(websocket.TextMessage, message)
				if err != nil {
					h.logger.Error("Error sending message: %v", err)
					delete(h.clients, client)
					client.Close()
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Register adds a viewer connection to the hub.
func (h *HubService) Register(client *websocket.Conn) {
	h.register <- client
}

// Unregister removes a viewer connection from the hub.
func (h *HubService) Unregister(client *websocket.Conn) {
	h.unregister <- client
}

// Broadcast queues a message for all connected viewers. A full queue
// drops the message rather than blocking the ingest path.
func (h *HubService) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warning("Viewer broadcast queue full - dropping frame")
	}
}

// SetLatestFrame retains the raw bytes of the most recent ingested frame.
func (h *HubService) SetLatestFrame(data []byte) {
	h.latestMu.Lock()
	defer h.latestMu.Unlock()
	h.latestFrame = data
}

// LatestFrame returns the most recent ingested frame, or nil when no
// frame has arrived yet.
func (h *HubService) LatestFrame() []byte {
	h.latestMu.RLock()
	defer h.latestMu.RUnlock()
	return h.latestFrame
}

// GetClientCount returns the number of connected viewers.
func (h *HubService) GetClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
