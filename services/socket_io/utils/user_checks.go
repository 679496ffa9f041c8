package socketio_utils

import (
	"Veinticuatro/middleware"
	redis_models "Veinticuatro/models/redis"
	"Veinticuatro/services/game"
	"Veinticuatro/services/redis"
	"Veinticuatro/utils"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// Function that verifies a socket.io client connection using JWT authentication.
// It extracts the email from the JWT token and retrieves the associated username from the database.
func VerifyUserConnection(client *socket.Socket, db *gorm.DB) (success bool, username, email string) {
	// Checks if we have auth data in the connection
	authData, ok := client.Handshake().Auth.(map[string]interface{})
	if !ok {
		fmt.Println("No auth data provided in handshake!")
		client.Emit("error", gin.H{"error": "Authentication failed: missing auth data"})
		return false, "", ""
	}

	// Check if authorization token exists
	if _, exists := authData["authorization"].(string); !exists {
		fmt.Println("No authorization token provided in handshake!")
		client.Emit("error", gin.H{"error": "Authentication failed: missing authorization token"})
		return false, "", ""
	}

	// Decode JWT to get the user's email
	email, err := middleware.Socketio_JWT_decoder(authData)
	if err != nil {
		fmt.Println("Error decoding JWT:", err)
		client.Emit("error", gin.H{
			"error": "Authentication failed: invalid JWT. Remember to set it on the 'Authorization' field and with the 'Bearer ' prefix.",
		})
		return false, "", ""
	}

	// Fetch username from database using the email
	user, err := utils.UserByEmail(db, email)
	if err != nil {
		fmt.Println("Error fetching user from database:", err)
		client.Emit("error", gin.H{"error": "Authentication failed: could not find user"})
		return false, "", email
	}

	username = user.ProfileUsername
	return true, username, email
}

// Helper that resolves a room id argument to a live room, emitting the
// protocol error to the client when it cannot.
func ResolveRoom(manager *game.RoomManager, client *socket.Socket, args ...interface{}) (*game.GameRoom, string, error) {
	if len(args) < 1 {
		client.Emit("error", gin.H{"error": "Room ID is required"})
		return nil, "", fmt.Errorf("missing room id")
	}
	roomID, ok := args[0].(string)
	if !ok {
		client.Emit("error", gin.H{"error": "Room ID must be a string"})
		return nil, "", fmt.Errorf("room id is not a string")
	}
	room, exists := manager.GetRoom(roomID)
	if !exists {
		client.Emit("error", gin.H{"error": "Room not found"})
		return nil, roomID, fmt.Errorf("room %s not found", roomID)
	}
	return room, roomID, nil
}

// PublishRoomSummary mirrors the room's public snapshot into the Redis
// directory. Best effort, gameplay never depends on it.
func PublishRoomSummary(redisClient *redis.RedisClient, view game.RoomView) {
	if redisClient == nil {
		return
	}
	names := make([]string, 0, len(view.Players))
	for _, p := range view.Players {
		names = append(names, p.Name)
	}
	summary := &redis_models.RoomSummary{
		ID:             view.ID,
		RoomType:       view.RoomType,
		State:          string(view.State),
		IsSoloPractice: view.IsSoloPractice,
		PlayerNames:    names,
		CurrentRound:   view.CurrentRound,
		UpdatedAt:      time.Now().Unix(),
	}
	if old, err := redisClient.GetRoomSummary(view.ID); err == nil {
		summary.Spectators = old.Spectators
	}
	if err := redisClient.SaveRoomSummary(summary); err != nil {
		log.Printf("[REDIS-ERROR] Error publishing summary for room %s: %v", view.ID, err)
	}
}

// BumpSpectators adjusts the spectator counter on a room's directory entry.
func BumpSpectators(redisClient *redis.RedisClient, roomID string, delta int) {
	if redisClient == nil {
		return
	}
	summary, err := redisClient.GetRoomSummary(roomID)
	if err != nil {
		return
	}
	summary.Spectators += delta
	if summary.Spectators < 0 {
		summary.Spectators = 0
	}
	summary.UpdatedAt = time.Now().Unix()
	if err := redisClient.SaveRoomSummary(summary); err != nil {
		log.Printf("[REDIS-ERROR] Error updating spectators for room %s: %v", roomID, err)
	}
}

// SetPresence updates a player's liveness entry in Redis.
func SetPresence(redisClient *redis.RedisClient, username, socketID, roomID string, status redis_models.PlayerStatus) {
	if redisClient == nil {
		return
	}
	presence := &redis_models.PlayerPresence{
		Username: username,
		Status:   status,
		RoomID:   roomID,
		LastSeen: time.Now().Unix(),
		SocketID: socketID,
	}
	if err := redisClient.SavePlayerPresence(presence); err != nil {
		log.Printf("[REDIS-ERROR] Error saving presence for %s: %v", username, err)
	}
}
