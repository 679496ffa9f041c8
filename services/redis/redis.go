package redis

import (
	redis_models "Veinticuatro/models/redis"
	redis_utils "Veinticuatro/services/redis/utils"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient handles Redis operations
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(Addr string, DB int) *RedisClient {
	var client *redis.Client
	if Addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}
}

// SavePlayerPresence stores a connected player's liveness record.
// Key format: "presence:{username}", TTL 24 hours.
func (rc *RedisClient) SavePlayerPresence(presence *redis_models.PlayerPresence) error {
	key := redis_utils.FormatPresenceKey(presence.Username)
	data, err := json.Marshal(presence)
	if err != nil {
		return fmt.Errorf("error marshaling presence data: %v", err)
	}
	return rc.client.Set(rc.ctx, key, data, 24*time.Hour).Err()
}

// GetPlayerPresence retrieves a player's presence record.
func (rc *RedisClient) GetPlayerPresence(username string) (*redis_models.PlayerPresence, error) {
	key := redis_utils.FormatPresenceKey(username)
	data, err := rc.client.Get(rc.ctx, key).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("presence not found for %s", username)
	} else if err != nil {
		return nil, fmt.Errorf("error getting presence: %v", err)
	}

	var presence redis_models.PlayerPresence
	if err := json.Unmarshal(data, &presence); err != nil {
		return nil, fmt.Errorf("error unmarshaling presence data: %v", err)
	}
	return &presence, nil
}

// DeletePlayerPresence removes a player's presence record.
func (rc *RedisClient) DeletePlayerPresence(username string) error {
	return rc.client.Del(rc.ctx, redis_utils.FormatPresenceKey(username)).Err()
}

// SaveRoomSummary publishes a room's directory projection.
// Key format: "room_summary:{roomID}", TTL 24 hours.
func (rc *RedisClient) SaveRoomSummary(summary *redis_models.RoomSummary) error {
	key := redis_utils.FormatRoomSummaryKey(summary.ID)
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("error marshaling room summary: %v", err)
	}
	return rc.client.Set(rc.ctx, key, data, 24*time.Hour).Err()
}

// GetRoomSummary retrieves one room's directory projection.
func (rc *RedisClient) GetRoomSummary(roomID string) (*redis_models.RoomSummary, error) {
	key := redis_utils.FormatRoomSummaryKey(roomID)
	data, err := rc.client.Get(rc.ctx, key).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("room summary not found for %s", roomID)
	} else if err != nil {
		return nil, fmt.Errorf("error getting room summary: %v", err)
	}

	var summary redis_models.RoomSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("error unmarshaling room summary: %v", err)
	}
	return &summary, nil
}

// DeleteRoomSummary drops a dead room from the directory.
func (rc *RedisClient) DeleteRoomSummary(roomID string) error {
	return rc.client.Del(rc.ctx, redis_utils.FormatRoomSummaryKey(roomID)).Err()
}

// ActiveRoomSummaries scans the directory for every live room.
func (rc *RedisClient) ActiveRoomSummaries() ([]redis_models.RoomSummary, error) {
	var summaries []redis_models.RoomSummary
	iter := rc.client.Scan(rc.ctx, 0, redis_utils.RoomSummaryPattern(), 100).Iterator()
	for iter.Next(rc.ctx) {
		data, err := rc.client.Get(rc.ctx, iter.Val()).Bytes()
		if err != nil {
			continue // expired between SCAN and GET
		}
		var summary redis_models.RoomSummary
		if err := json.Unmarshal(data, &summary); err != nil {
			log.Printf("[REDIS-ERROR] Corrupt room summary at %s: %v", iter.Val(), err)
			continue
		}
		summaries = append(summaries, summary)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("error scanning room summaries: %v", err)
	}
	return summaries, nil
}

// PublishGameEnded pushes a finished game's outcome onto the "game_ended"
// pub/sub channel for the badge service to consume.
func (rc *RedisClient) PublishGameEnded(payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshaling game ended payload: %v", err)
	}
	return rc.client.Publish(rc.ctx, "game_ended", data).Err()
}

// CleanupKeys removes the specified keys from Redis
func (rc *RedisClient) CleanupKeys(keys []string) error {
	for _, key := range keys {
		if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to cleanup Redis key %s: %v", key, err)
		}
	}
	return nil
}
