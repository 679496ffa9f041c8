package socketio_utils

import (
	socketio_types "Veinticuatro/services/socket_io/types"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// RoomBroadcaster bridges game room broadcasts onto the socket.io rooms of
// the same id. Every player and spectator joined to socket.Room(roomID)
// receives the event.
type RoomBroadcaster struct {
	sio *socketio_types.SocketServer
}

func NewRoomBroadcaster(sio *socketio_types.SocketServer) *RoomBroadcaster {
	return &RoomBroadcaster{sio: sio}
}

func (b *RoomBroadcaster) EmitToRoom(roomID string, event string, payload gin.H) {
	// Sio_server is assigned during Start; rooms created before that (tests,
	// early setup) just drop the broadcast
	if b.sio == nil || b.sio.Sio_server == nil {
		return
	}
	b.sio.Sio_server.To(socket.Room(roomID)).Emit(event, payload)
}
