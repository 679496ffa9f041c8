package socketio_types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zishang520/socket.io/v2/socket"
)

func TestConnectionRegistry(t *testing.T) {
	s := NewSocketServer()

	_, exists := s.GetConnection("galois")
	assert.False(t, exists)

	var conn *socket.Socket
	s.AddConnection("galois", conn)

	got, exists := s.GetConnection("galois")
	assert.True(t, exists)
	assert.Equal(t, conn, got)

	s.RemoveConnection("galois")
	_, exists = s.GetConnection("galois")
	assert.False(t, exists)

	// Removing an unknown user is harmless
	s.RemoveConnection("ghost")
}
