package socket_io

import (
	"Veinticuatro/services/game"
	"Veinticuatro/services/redis"
	"Veinticuatro/services/socket_io/handlers"

	socketio_types "Veinticuatro/services/socket_io/types"
	socketio_utils "Veinticuatro/services/socket_io/utils"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
	redis_models "Veinticuatro/models/redis"

	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

func (sio *MySocketServer) Start(router *gin.Engine, db *gorm.DB,
	redisClient *redis.RedisClient, manager *game.RoomManager) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	if sio.UserConnections == nil {
		sio.UserConnections = make(map[string]*socket.Socket)
	}

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		// Check if the client is authenticated
		success, username, _ := socketio_utils.VerifyUserConnection(client, db)
		if !success {
			return
		}

		// One live session per user: kick the previous socket before
		// binding the new one so its disconnect cannot clobber this entry
		if old, exists := (*socketio_types.SocketServer)(sio).GetConnection(username); exists && old.Id() != client.Id() {
			old.Disconnect(true)
		}
		(*socketio_types.SocketServer)(sio).AddConnection(username, client)
		socketio_utils.SetPresence(redisClient, username, string(client.Id()), "", redis_models.StatusOnline)

		fmt.Println("An individual just connected!: ", username)

		// Create a duel (or solo practice) room and take the first seat
		client.On("create-room", handlers.HandleCreateRoom(redisClient, client, username, manager))

		// Take the second seat of a waiting room
		client.On("join-room", handlers.HandleJoinRoom(redisClient, client, username, manager))

		// Watch a room without taking a seat
		client.On("spectate-room", handlers.HandleSpectateRoom(redisClient, client, username, manager))

		// Flip the ready flag; the match deals itself once everyone is ready
		client.On("toggle-ready", handlers.HandleToggleReady(redisClient, client, username, manager))

		// Race for the right to submit a solution
		client.On("claim-solution", handlers.HandleClaimSolution(redisClient, client, username, manager))

		// Submit the worked solution for the claimed round
		client.On("submit-solution", handlers.HandleSubmitSolution(redisClient, client, username, manager))

		// Solo practice: throw the current puzzle away and deal a new one
		client.On("skip-puzzle", handlers.HandleSkipPuzzle(redisClient, client, username, manager))

		// Rewind a finished room back to the lobby for a rematch
		client.On("reset-game", handlers.HandleResetGame(redisClient, client, username, manager))

		// Voluntary exit
		client.On("leave-room", handlers.HandleLeaveRoom(redisClient, client, username, manager))

		// Rebind after a dropped connection, cancels the pending forfeit
		client.On("reconnection", handlers.HandleReconnection(redisClient, client, username, manager))

		// NOTE: will remove sio connection from map
		client.On("disconnecting", handlers.HandleDisconnecting(redisClient, client, username, manager, (*socketio_types.SocketServer)(sio)))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				sio.Sio_server.Close(nil)
				os.Exit(0)
			}
		}
	}()

	fmt.Println("Socket server started")
}
