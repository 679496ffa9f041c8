package handlers

import (
	game_constants "Veinticuatro/constants/game"
	redis_models "Veinticuatro/models/redis"
	"Veinticuatro/services/game"
	"Veinticuatro/services/redis"
	socketio_utils "Veinticuatro/services/socket_io/utils"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleCreateRoom creates a room, seats the creator and joins their socket
// to the broadcast room. Optional args[0] is a map with "room_type"
// ("classic"/"super") and "solo_practice".
func HandleCreateRoom(redisClient *redis.RedisClient, client *socket.Socket,
	username string, manager *game.RoomManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		roomType := game_constants.RoomTypeClassic
		soloPractice := false
		// Display name defaults to the authenticated username; identity is
		// always the JWT username regardless of what the client sends
		displayName := username
		if len(args) >= 1 {
			if opts, ok := args[0].(map[string]interface{}); ok {
				if t, ok := opts["room_type"].(string); ok {
					roomType = t
				}
				if solo, ok := opts["solo_practice"].(bool); ok {
					soloPractice = solo
				}
				if n, ok := opts["player_name"].(string); ok && n != "" {
					displayName = n
				}
			}
		}

		room := manager.CreateRoom(roomType, soloPractice)
		if _, err := room.AddPlayer(username, string(client.Id()), displayName); err != nil {
			log.Printf("[CREATE-ERROR] User %s could not be seated in fresh room %s: %v",
				username, room.ID, err)
			client.Emit("error", gin.H{"error": err.Error()})
			manager.DestroyRoom(room.ID)
			return
		}

		client.Join(socket.Room(room.ID))

		view := room.Snapshot()
		socketio_utils.PublishRoomSummary(redisClient, view)
		socketio_utils.SetPresence(redisClient, username, string(client.Id()), room.ID, redis_models.StatusPlaying)

		log.Printf("[CREATE-SUCCESS] User %s created room %s (%s, solo=%v)",
			username, room.ID, room.RoomType, soloPractice)
		client.Emit("room-created", gin.H{
			"room":     view,
			"playerId": username,
		})
	}
}

// HandleJoinRoom seats a second player in a waiting room.
func HandleJoinRoom(redisClient *redis.RedisClient, client *socket.Socket,
	username string, manager *game.RoomManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		room, _, err := socketio_utils.ResolveRoom(manager, client, args...)
		if err != nil {
			return
		}

		displayName := username
		if len(args) >= 2 {
			if n, ok := args[1].(string); ok && n != "" {
				displayName = n
			}
		}

		if _, err := room.AddPlayer(username, string(client.Id()), displayName); err != nil {
			log.Printf("[JOIN-ERROR] User %s rejected from room %s: %v", username, room.ID, err)
			client.Emit("error", gin.H{"error": err.Error()})
			return
		}

		client.Join(socket.Room(room.ID))

		view := room.Snapshot()
		socketio_utils.PublishRoomSummary(redisClient, view)
		socketio_utils.SetPresence(redisClient, username, string(client.Id()), room.ID, redis_models.StatusPlaying)

		log.Printf("[JOIN-SUCCESS] User %s joined room %s", username, room.ID)
		client.Emit("game-state-updated", gin.H{"room": view})
	}
}

// HandleSpectateRoom joins the socket to the room's broadcast stream without
// seating it. Spectators see every public event, never deck contents.
func HandleSpectateRoom(redisClient *redis.RedisClient, client *socket.Socket,
	username string, manager *game.RoomManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		room, roomID, err := socketio_utils.ResolveRoom(manager, client, args...)
		if err != nil {
			return
		}

		client.Join(socket.Room(roomID))
		socketio_utils.BumpSpectators(redisClient, roomID, 1)

		log.Printf("[SPECTATE] User %s is watching room %s", username, roomID)
		client.Emit("game-state-updated", gin.H{"room": room.Snapshot()})
	}
}

// HandleLeaveRoom is the voluntary exit. In the lobby the seat is freed, in
// an active match the leaver enters the same grace window as a dropped
// connection and forfeits if they stay away.
func HandleLeaveRoom(redisClient *redis.RedisClient, client *socket.Socket,
	username string, manager *game.RoomManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		room, roomID, err := socketio_utils.ResolveRoom(manager, client, args...)
		if err != nil {
			return
		}

		client.Leave(socket.Room(roomID))

		seated := false
		for _, p := range room.Snapshot().Players {
			if p.ID == username {
				seated = true
			}
		}
		if !seated {
			// A spectator walking away
			socketio_utils.BumpSpectators(redisClient, roomID, -1)
			return
		}

		room.HandleDisconnect(username)
		log.Printf("[LEAVE] User %s left room %s", username, roomID)

		if _, alive := manager.GetRoom(roomID); alive {
			socketio_utils.PublishRoomSummary(redisClient, room.Snapshot())
		} else if redisClient != nil {
			if err := redisClient.DeleteRoomSummary(roomID); err != nil {
				log.Printf("[REDIS-ERROR] Error dropping summary for room %s: %v", roomID, err)
			}
		}
		socketio_utils.SetPresence(redisClient, username, string(client.Id()), "", redis_models.StatusOnline)
	}
}
