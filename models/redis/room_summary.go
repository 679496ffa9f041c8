package redis

// RoomSummary is the read-only projection of a live room published to the
// Redis directory for spectators and room discovery. Updated on every
// lifecycle change, deleted when the room dies.
type RoomSummary struct {
	ID             string   `json:"id"`
	RoomType       string   `json:"room_type"`
	State          string   `json:"state"`
	IsSoloPractice bool     `json:"is_solo_practice"`
	PlayerNames    []string `json:"player_names"`
	CurrentRound   int      `json:"current_round"`
	Spectators     int      `json:"spectators"`
	UpdatedAt      int64    `json:"updated_at"` // Unix timestamp
}
