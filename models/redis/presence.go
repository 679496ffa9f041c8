package redis

type PlayerStatus string

const (
	StatusOnline  PlayerStatus = "online"
	StatusOffline PlayerStatus = "offline"
	StatusPlaying PlayerStatus = "playing"
)

// PlayerPresence mirrors a connected player's liveness into Redis so the
// directory and other processes can read it. Gameplay truth never lives
// here, the room object is authoritative.
type PlayerPresence struct {
	Username string       `json:"username"`
	Status   PlayerStatus `json:"status"`
	RoomID   string       `json:"room_id,omitempty"`
	LastSeen int64        `json:"last_seen"` // Unix timestamp
	SocketID string       `json:"socket_id"`
}
