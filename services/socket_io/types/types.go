package socketio_types

import (
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// SocketServer pairs the socket.io server with a registry of live sockets
// keyed by username. A user holds at most one live socket at a time: a new
// login replaces the previous entry, and the old socket is evicted by the
// connection handler.
type SocketServer struct {
	Sio_server      *socket.Server
	UserConnections map[string]*socket.Socket
	mu              sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		UserConnections: make(map[string]*socket.Socket),
	}
}

// AddConnection binds username to client, displacing any previous socket.
func (s *SocketServer) AddConnection(username string, client *socket.Socket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UserConnections[username] = client
}

// RemoveConnection drops the registry entry for username, if any.
func (s *SocketServer) RemoveConnection(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.UserConnections, username)
}

// GetConnection returns the socket currently bound to username. Callers use
// it to tell whether a disconnecting socket is still the user's live session
// or a stale one that has already been replaced.
func (s *SocketServer) GetConnection(username string) (*socket.Socket, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	client, exists := s.UserConnections[username]
	return client, exists
}
