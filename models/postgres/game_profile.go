package postgres

import (
	"gorm.io/datatypes"
)

/*
 * 'GameProfile' defines the structure for a user's game profile. It is
 * referenced in User and MatchRecord. UserStats holds the accumulated
 * win/loss/rating counters as jsonb.
 */
type GameProfile struct {
	Username  string         `gorm:"primaryKey;size:50;not null"`
	UserStats datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	UserIcon  int            `gorm:"default:0"`
	IsInAGame bool           `gorm:"default:false"`

	MatchesWon  []MatchRecord `gorm:"foreignKey:WinnerUsername"`
	MatchesLost []MatchRecord `gorm:"foreignKey:LoserUsername"`
}

// ProfileStats is the shape stored inside GameProfile.UserStats.
type ProfileStats struct {
	GamesPlayed      int `json:"games_played"`
	GamesWon         int `json:"games_won"`
	GamesLost        int `json:"games_lost"`
	Rating           int `json:"rating"`
	CorrectSolutions int `json:"correct_solutions"`
	FastestSolveMs   int `json:"fastest_solve_ms"`
}
