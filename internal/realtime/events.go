package realtime

// Event names broadcast to season rooms. Events are "something changed, go
// refetch" signals carrying ids, not deltas; no ordering or replay is
// provided across emissions.
const (
	EventClubAssigned      = "club-assigned"
	EventClubRemoved       = "club-removed"
	EventPlayerAssigned    = "player-assigned"
	EventPlayerRemoved     = "player-removed"
	EventPlayerClubUpdated = "player-club-updated"
)

// Envelope is the wire format for season-room broadcasts.
type Envelope struct {
	Event    string      `json:"event"`
	SeasonID uint64      `json:"season_id"`
	Data     interface{} `json:"data,omitempty"`
}

// ControlMessage is what clients send to join or leave a season room.
type ControlMessage struct {
	Action   string `json:"action"`
	SeasonID uint64 `json:"season_id"`
}

const (
	ActionJoin  = "join"
	ActionLeave = "leave"
)
