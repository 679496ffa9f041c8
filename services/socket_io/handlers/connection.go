package handlers

import (
	redis_models "Veinticuatro/models/redis"
	"Veinticuatro/services/game"
	"Veinticuatro/services/redis"
	socketio_types "Veinticuatro/services/socket_io/types"
	socketio_utils "Veinticuatro/services/socket_io/utils"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleReconnection rebinds a returning player to the room they were seated
// in, cancelling the pending forfeit. The client does not need to remember
// its room id, the server looks it up.
func HandleReconnection(redisClient *redis.RedisClient, client *socket.Socket,
	username string, manager *game.RoomManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		room, found := manager.FindRoomByPlayer(username)
		if !found {
			client.Emit("error", gin.H{"error": "No active game to reconnect to"})
			return
		}

		if err := room.HandleReconnect(username, string(client.Id())); err != nil {
			client.Emit("error", gin.H{"error": err.Error()})
			return
		}

		client.Join(socket.Room(room.ID))
		socketio_utils.SetPresence(redisClient, username, string(client.Id()), room.ID, redis_models.StatusPlaying)
		log.Printf("[RECONNECT] User %s rebound to room %s", username, room.ID)

		// Private snapshot so the returning client can redraw immediately
		client.Emit("game-state-updated", gin.H{"room": room.Snapshot()})
	}
}

// HandleDisconnecting runs while the socket is still joined to its rooms.
// An active match starts the forfeit grace window, a waiting lobby just
// frees the seat.
func HandleDisconnecting(redisClient *redis.RedisClient, client *socket.Socket,
	username string, manager *game.RoomManager, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		// An evicted socket fires this too; only the user's live session
		// gets to free the seat and the registry entry
		if current, ok := sio.GetConnection(username); !ok || current.Id() != client.Id() {
			log.Printf("[DISCONNECT] Stale socket for %s closed, session already replaced", username)
			return
		}

		log.Printf("[DISCONNECT] User %s disconnecting", username)

		if room, found := manager.FindRoomByPlayer(username); found {
			room.HandleDisconnect(username)
			if _, alive := manager.GetRoom(room.ID); alive {
				socketio_utils.PublishRoomSummary(redisClient, room.Snapshot())
			} else if redisClient != nil {
				if err := redisClient.DeleteRoomSummary(room.ID); err != nil {
					log.Printf("[REDIS-ERROR] Error dropping summary for room %s: %v", room.ID, err)
				}
			}
		}

		if redisClient != nil {
			if err := redisClient.DeletePlayerPresence(username); err != nil {
				log.Printf("[REDIS-ERROR] Error deleting presence for %s: %v", username, err)
			}
		}

		sio.RemoveConnection(username)
	}
}
