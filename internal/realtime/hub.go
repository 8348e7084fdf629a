package realtime

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub tracks season rooms and fans mutation events out to their viewers.
// Delivery is at-most-once: a client whose send buffer is full or whose
// connection is gone is dropped, never retried. Reconnecting clients are
// expected to refetch instead of catching up.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uint64]map[*Client]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[uint64]map[*Client]struct{}),
	}
}

func (h *Hub) join(c *Client, seasonID uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[seasonID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[seasonID] = room
	}
	room[c] = struct{}{}
	c.rooms[seasonID] = struct{}{}
}

func (h *Hub) leave(c *Client, seasonID uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeFromRoom(c, seasonID)
}

// unregister drops the client from every room it joined.
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for seasonID := range c.rooms {
		h.removeFromRoom(c, seasonID)
	}
}

// removeFromRoom must be called with h.mu held.
func (h *Hub) removeFromRoom(c *Client, seasonID uint64) {
	if room, ok := h.rooms[seasonID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, seasonID)
		}
	}
	delete(c.rooms, seasonID)
}

// Broadcast sends a named event to every subscriber of the season's room.
// Fire and forget: slow clients miss the event rather than block the caller.
func (h *Hub) Broadcast(seasonID uint64, event string, data interface{}) {
	payload, err := json.Marshal(Envelope{
		Event:    event,
		SeasonID: seasonID,
		Data:     data,
	})
	if err != nil {
		log.Printf("realtime: failed to marshal %s event: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[seasonID] {
		select {
		case c.send <- payload:
		default:
			// Slow consumer; the event is dropped for this client.
		}
	}
}

// RoomSize reports how many clients are subscribed to a season's room.
func (h *Hub) RoomSize(seasonID uint64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[seasonID])
}
