package handlers

import (
	"Veinticuatro/services/game"
	"Veinticuatro/services/redis"
	socketio_utils "Veinticuatro/services/socket_io/utils"
	"encoding/json"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleToggleReady flips the player's ready flag; the match starts on its
// own once every seat is ready.
func HandleToggleReady(redisClient *redis.RedisClient, client *socket.Socket,
	username string, manager *game.RoomManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		room, _, err := socketio_utils.ResolveRoom(manager, client, args...)
		if err != nil {
			return
		}
		if err := room.ToggleReady(username); err != nil {
			client.Emit("error", gin.H{"error": err.Error()})
			return
		}
		socketio_utils.PublishRoomSummary(redisClient, room.Snapshot())
	}
}

// HandleClaimSolution races the "I know it" buzz. Losing the race or buzzing
// out of turn comes back as claim-error, never as a broadcast.
func HandleClaimSolution(redisClient *redis.RedisClient, client *socket.Socket,
	username string, manager *game.RoomManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		room, _, err := socketio_utils.ResolveRoom(manager, client, args...)
		if err != nil {
			return
		}
		if err := room.TryClaim(username); err != nil {
			log.Printf("[CLAIM-REJECT] User %s in room %s: %v", username, room.ID, err)
			client.Emit("claim-error", gin.H{"error": err.Error()})
			return
		}
	}
}

// HandleSubmitSolution carries the claimant's worked solution. args[1] is the
// solution object; submissions by anyone but the claimant are rejected with
// submit-error. A malformed solution from the claimant still settles the
// round against them, the room takes care of that.
func HandleSubmitSolution(redisClient *redis.RedisClient, client *socket.Socket,
	username string, manager *game.RoomManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		room, _, err := socketio_utils.ResolveRoom(manager, client, args...)
		if err != nil {
			return
		}

		var solution *game.Solution
		if len(args) >= 2 && args[1] != nil {
			raw, err := json.Marshal(args[1])
			if err == nil {
				var s game.Solution
				if json.Unmarshal(raw, &s) == nil {
					solution = &s
				}
			}
		}

		result, err := room.SubmitSolution(username, solution)
		if err != nil {
			log.Printf("[SUBMIT-REJECT] User %s in room %s: %v", username, room.ID, err)
			client.Emit("submit-error", gin.H{"error": err.Error()})
			return
		}

		log.Printf("[SUBMIT] Room %s round %d settled: correct=%v reason=%s",
			room.ID, result.Round, result.Correct, result.Reason)
		socketio_utils.PublishRoomSummary(redisClient, room.Snapshot())
	}
}

// HandleSkipPuzzle discards the current center cards in a solo practice room.
func HandleSkipPuzzle(redisClient *redis.RedisClient, client *socket.Socket,
	username string, manager *game.RoomManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		room, _, err := socketio_utils.ResolveRoom(manager, client, args...)
		if err != nil {
			return
		}
		if err := room.SkipPuzzle(username); err != nil {
			client.Emit("error", gin.H{"error": err.Error()})
			return
		}
		socketio_utils.PublishRoomSummary(redisClient, room.Snapshot())
	}
}

// HandleResetGame rewinds a finished room back to the waiting lobby.
func HandleResetGame(redisClient *redis.RedisClient, client *socket.Socket,
	username string, manager *game.RoomManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		room, _, err := socketio_utils.ResolveRoom(manager, client, args...)
		if err != nil {
			return
		}
		if err := room.Reset(username); err != nil {
			client.Emit("error", gin.H{"error": err.Error()})
			return
		}
		log.Printf("[RESET] User %s reset room %s", username, room.ID)
		socketio_utils.PublishRoomSummary(redisClient, room.Snapshot())
	}
}
