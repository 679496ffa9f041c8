package sync

import (
	"Veinticuatro/config"
	game_constants "Veinticuatro/constants/game"
	models "Veinticuatro/models/postgres"
	"Veinticuatro/services/game"
	"encoding/json"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration test against a real PostgreSQL, skipped when none is
// configured.
func TestRecordGameOutcome(t *testing.T) {
	if os.Getenv("POSTGRES_HOST") == "" {
		t.Skip("POSTGRES_HOST not set, skipping sync integration test")
	}

	db, err := config.ConnectGORM()
	require.NoError(t, err)
	require.NoError(t, config.MigrateDatabase(db))

	winner := "sync_test_winner"
	loser := "sync_test_loser"

	// Fresh profiles for every run
	db.Where("winner_username = ? OR loser_username = ?", winner, loser).Delete(&models.MatchRecord{})
	db.Where("username IN ?", []string{winner, loser}).Delete(&models.GameProfile{})
	require.NoError(t, db.Create(&models.GameProfile{Username: winner}).Error)
	require.NoError(t, db.Create(&models.GameProfile{Username: loser}).Error)

	stats := game.NewGameStats()
	stats.AddPlayer(winner)
	stats.AddPlayer(loser)
	stats.RecordRoundWin(winner)
	stats.RecordRoundWin(winner)
	stats.RecordRoundWin(loser)
	stats.RecordCorrectSolution(winner, nil)
	stats.RecordRoundTime(winner, 9*time.Second)

	sm := NewSyncManager(db, nil)
	err = sm.RecordGameOutcome(&game.GameOutcome{
		RoomID:   "SYNCT1",
		RoomType: game_constants.RoomTypeClassic,
		WinnerID: winner,
		LoserID:  loser,
		Reason:   game.ReasonDeckEmpty,
		Rounds:   3,
		Duration: 4 * time.Minute,
		PlayerNames: map[string]string{
			winner: winner,
			loser:  loser,
		},
		Stats: stats,
	})
	require.NoError(t, err)

	var record models.MatchRecord
	require.NoError(t, db.Where("winner_username = ?", winner).First(&record).Error)
	assert.Equal(t, loser, record.LoserUsername)
	assert.Equal(t, game.ReasonDeckEmpty, record.Reason)
	assert.Equal(t, 2, record.WinnerScore)
	assert.Equal(t, 1, record.LoserScore)

	var winnerProfile, loserProfile models.GameProfile
	require.NoError(t, db.Where("username = ?", winner).First(&winnerProfile).Error)
	require.NoError(t, db.Where("username = ?", loser).First(&loserProfile).Error)

	var winnerStats, loserStats models.ProfileStats
	require.NoError(t, json.Unmarshal(winnerProfile.UserStats, &winnerStats))
	require.NoError(t, json.Unmarshal(loserProfile.UserStats, &loserStats))

	assert.Equal(t, 1, winnerStats.GamesPlayed)
	assert.Equal(t, 1, winnerStats.GamesWon)
	assert.Equal(t, game_constants.RatingDelta, winnerStats.Rating)
	assert.Equal(t, 9000, winnerStats.FastestSolveMs)
	assert.Equal(t, 1, loserStats.GamesLost)
	// Rating never drops below zero
	assert.Equal(t, 0, loserStats.Rating)
}

// Without Redis the badge channel is simply silent, never a panic.
func TestOnGameEndedWithoutRedis(t *testing.T) {
	sm := NewSyncManager(nil, nil)
	sm.OnGameEnded(&game.GameOutcome{RoomID: "TEST01", WinnerID: "a", LoserID: "b"})
}
