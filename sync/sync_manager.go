package sync

import (
	game_constants "Veinticuatro/constants/game"
	models "Veinticuatro/models/postgres"
	game "Veinticuatro/services/game"
	"Veinticuatro/services/redis"
	redis_utils "Veinticuatro/services/redis/utils"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SyncManager is the stats layer invoked once per finished duel: it writes
// the match record, folds the outcome into both players' profile stats and
// cleans the room's Redis footprint. It implements game.OutcomeRecorder.
type SyncManager struct {
	db          *gorm.DB
	redisClient *redis.RedisClient
}

// NewSyncManager creates a new instance of the synchronization manager
func NewSyncManager(db *gorm.DB, redisClient *redis.RedisClient) *SyncManager {
	return &SyncManager{
		db:          db,
		redisClient: redisClient,
	}
}

// RecordGameOutcome persists one finished match. Called off the room's
// goroutine, errors are reported but never reach the room.
func (sm *SyncManager) RecordGameOutcome(outcome *game.GameOutcome) error {
	solutions, err := json.Marshal(outcome.Stats.WinningSolutions)
	if err != nil {
		return fmt.Errorf("error marshaling winning solutions: %v", err)
	}

	// Player ids are the JWT usernames, the socket layer seats players
	// under their authenticated identity
	record := models.MatchRecord{
		ID:               uuid.NewString(),
		RoomType:         outcome.RoomType,
		WinnerUsername:   outcome.WinnerID,
		LoserUsername:    outcome.LoserID,
		Reason:           outcome.Reason,
		Rounds:           outcome.Rounds,
		DurationMs:       outcome.Duration.Milliseconds(),
		WinnerScore:      outcome.Stats.Scores[outcome.WinnerID],
		LoserScore:       outcome.Stats.Scores[outcome.LoserID],
		WinningSolutions: solutions,
	}

	err = sm.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("error creating match record: %v", err)
		}
		if record.WinnerUsername != "" {
			if err := sm.applyOutcomeToProfile(tx, record.WinnerUsername, outcome, true); err != nil {
				return err
			}
		}
		if record.LoserUsername != "" {
			if err := sm.applyOutcomeToProfile(tx, record.LoserUsername, outcome, false); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("[SYNC] Recorded outcome of room %s: %s beat %s (%s)",
		outcome.RoomID, record.WinnerUsername, record.LoserUsername, outcome.Reason)

	sm.CleanupRoomData(outcome.RoomID)
	return nil
}

// applyOutcomeToProfile folds one match into a profile's jsonb stats.
func (sm *SyncManager) applyOutcomeToProfile(tx *gorm.DB, username string, outcome *game.GameOutcome, won bool) error {
	var profile models.GameProfile
	if err := tx.Where("username = ?", username).First(&profile).Error; err != nil {
		return fmt.Errorf("error loading profile %s: %v", username, err)
	}

	var stats models.ProfileStats
	if len(profile.UserStats) > 0 {
		if err := json.Unmarshal(profile.UserStats, &stats); err != nil {
			return fmt.Errorf("error unmarshaling stats for %s: %v", username, err)
		}
	}

	stats.GamesPlayed++
	if won {
		stats.GamesWon++
		stats.Rating += game_constants.RatingDelta
	} else {
		stats.GamesLost++
		stats.Rating -= game_constants.RatingDelta
		if stats.Rating < 0 {
			stats.Rating = 0
		}
	}
	stats.CorrectSolutions += outcome.Stats.CorrectSolutions[username]
	for _, seconds := range outcome.Stats.RoundTimes[username] {
		ms := int(seconds * 1000)
		if stats.FastestSolveMs == 0 || ms < stats.FastestSolveMs {
			stats.FastestSolveMs = ms
		}
	}

	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("error marshaling stats for %s: %v", username, err)
	}

	return tx.Model(&models.GameProfile{}).Where("username = ?", username).
		Updates(map[string]interface{}{"user_stats": data, "is_in_a_game": false}).Error
}

// OnGameEnded forwards the finished game to the badge service over the
// "game_ended" Redis channel. The badge catalogue and its detection
// heuristics live in that service, this side only publishes the facts.
func (sm *SyncManager) OnGameEnded(outcome *game.GameOutcome) {
	if sm.redisClient == nil {
		return
	}
	if err := sm.redisClient.PublishGameEnded(outcome); err != nil {
		log.Printf("[SYNC-ERROR] Error publishing game ended event for room %s: %v", outcome.RoomID, err)
	}
}

// CleanupRoomData removes the finished room's Redis footprint.
func (sm *SyncManager) CleanupRoomData(roomID string) {
	if sm.redisClient == nil {
		return
	}
	keys := []string{redis_utils.FormatRoomSummaryKey(roomID)}
	if err := sm.redisClient.CleanupKeys(keys); err != nil {
		log.Printf("[SYNC-ERROR] Error cleaning Redis data for room %s: %v", roomID, err)
	}
}
