package postgres

import (
	"time"

	"gorm.io/datatypes"
)

/*
 * 'MatchRecord' stores the final outcome of one finished duel. Written once
 * at game over, never updated. WinningSolutions keeps the replayable solves
 * as jsonb.
 */
type MatchRecord struct {
	ID             string `gorm:"primaryKey;size:36"`
	RoomType       string `gorm:"size:20;not null"`
	WinnerUsername string `gorm:"size:50;index"`
	LoserUsername  string `gorm:"size:50;index"`
	Reason         string `gorm:"size:30;not null"`
	Rounds         int
	DurationMs     int64
	WinnerScore    int
	LoserScore     int

	WinningSolutions datatypes.JSON `gorm:"type:jsonb;default:'[]'"`

	PlayedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}
