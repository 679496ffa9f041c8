package redis

import (
	redis_models "Veinticuatro/models/redis"
	"testing"
	"time"
)

func TestRedisOperations(t *testing.T) {
	rc, err := InitRedis("localhost:6379", 0)
	if err != nil {
		t.Skipf("Redis not available, skipping: %v", err)
	}
	defer CloseRedis(rc)

	// Helper function to clean Redis data
	cleanupRedis := func() {
		keys := []string{
			"presence:test_player",
			"room_summary:TEST42",
		}
		for _, key := range keys {
			if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
				t.Fatalf("Failed to cleanup Redis key %s: %v", key, err)
			}
		}
	}

	t.Run("Presence Operations", func(t *testing.T) {
		cleanupRedis()
		presence := &redis_models.PlayerPresence{
			Username: "test_player",
			Status:   redis_models.StatusPlaying,
			RoomID:   "TEST42",
			LastSeen: time.Now().Unix(),
			SocketID: "sock-1",
		}

		if err := rc.SavePlayerPresence(presence); err != nil {
			t.Errorf("Failed to save presence: %v", err)
		}

		retrieved, err := rc.GetPlayerPresence("test_player")
		if err != nil {
			t.Fatalf("Failed to get presence: %v", err)
		}
		if retrieved.Username != presence.Username ||
			retrieved.Status != presence.Status ||
			retrieved.RoomID != presence.RoomID {
			t.Errorf("Presence data mismatch.")
		}

		if err := rc.DeletePlayerPresence("test_player"); err != nil {
			t.Errorf("Failed to delete presence: %v", err)
		}
		if _, err := rc.GetPlayerPresence("test_player"); err == nil {
			t.Errorf("Expected error for deleted presence")
		}
	})

	t.Run("RoomSummary Operations", func(t *testing.T) {
		cleanupRedis()
		summary := &redis_models.RoomSummary{
			ID:           "TEST42",
			RoomType:     "classic",
			State:        "PLAYING",
			PlayerNames:  []string{"alice", "bob"},
			CurrentRound: 3,
			UpdatedAt:    time.Now().Unix(),
		}

		if err := rc.SaveRoomSummary(summary); err != nil {
			t.Errorf("Failed to save room summary: %v", err)
		}

		retrieved, err := rc.GetRoomSummary("TEST42")
		if err != nil {
			t.Fatalf("Failed to get room summary: %v", err)
		}
		if retrieved.ID != summary.ID || retrieved.CurrentRound != summary.CurrentRound {
			t.Errorf("Room summary mismatch.")
		}

		summaries, err := rc.ActiveRoomSummaries()
		if err != nil {
			t.Fatalf("Failed to scan room summaries: %v", err)
		}
		found := false
		for _, s := range summaries {
			if s.ID == "TEST42" {
				found = true
			}
		}
		if !found {
			t.Errorf("Scan did not return the saved room summary")
		}

		if err := rc.DeleteRoomSummary("TEST42"); err != nil {
			t.Errorf("Failed to delete room summary: %v", err)
		}
	})

	cleanupRedis()
}
