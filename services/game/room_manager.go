package game

import (
	game_constants "Veinticuatro/constants/game"
	"log"
	"math/rand"
	"sync"
)

// RoomManager is the explicit registry of live rooms, injected into the
// socket layer instead of living as a process-wide global. Rooms are
// independent of each other, the manager's own lock only guards the map.
type RoomManager struct {
	mu    sync.RWMutex
	rooms map[string]*GameRoom

	emitter  Emitter
	recorder OutcomeRecorder
	badges   BadgeHook
}

func NewRoomManager(emitter Emitter) *RoomManager {
	return &RoomManager{
		rooms:   make(map[string]*GameRoom),
		emitter: emitter,
	}
}

// SetOutcomeRecorder installs the stats layer handed to every new room.
func (m *RoomManager) SetOutcomeRecorder(recorder OutcomeRecorder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorder = recorder
}

// SetBadgeHook installs the badge consumer handed to every new room.
func (m *RoomManager) SetBadgeHook(hook BadgeHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.badges = hook
}

const roomCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

func newRoomCode() string {
	code := make([]byte, game_constants.RoomCodeLength)
	for i := range code {
		code[i] = roomCodeAlphabet[rand.Intn(len(roomCodeAlphabet))]
	}
	return string(code)
}

// CreateRoom registers a new room under a fresh 6-char code.
func (m *RoomManager) CreateRoom(roomType string, isSoloPractice bool) *GameRoom {
	m.mu.Lock()
	defer m.mu.Unlock()

	code := newRoomCode()
	for _, taken := m.rooms[code]; taken; _, taken = m.rooms[code] {
		code = newRoomCode()
	}

	room := NewGameRoom(code, roomType, isSoloPractice, m.emitter)
	room.SetOutcomeRecorder(m.recorder)
	room.SetBadgeHook(m.badges)
	room.SetOnEmpty(m.DestroyRoom)
	m.rooms[code] = room

	log.Printf("[ROOM-MANAGER] Created %s room %s (solo=%v)", room.RoomType, code, isSoloPractice)
	return room
}

func (m *RoomManager) GetRoom(roomID string) (*GameRoom, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	room, ok := m.rooms[roomID]
	return room, ok
}

// DestroyRoom drops the room from the registry and cancels its timers.
func (m *RoomManager) DestroyRoom(roomID string) {
	m.mu.Lock()
	room, ok := m.rooms[roomID]
	delete(m.rooms, roomID)
	m.mu.Unlock()

	if ok {
		room.Destroy()
		log.Printf("[ROOM-MANAGER] Destroyed room %s", roomID)
	}
}

// ActiveRooms returns snapshots of every live room, for the spectator
// directory.
func (m *RoomManager) ActiveRooms() []RoomView {
	m.mu.RLock()
	rooms := make([]*GameRoom, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.mu.RUnlock()

	views := make([]RoomView, 0, len(rooms))
	for _, r := range rooms {
		views = append(views, r.Snapshot())
	}
	return views
}

// FindRoomByPlayer locates the room a player is currently seated in, used
// to route reconnections and disconnects.
func (m *RoomManager) FindRoomByPlayer(playerID string) (*GameRoom, bool) {
	m.mu.RLock()
	rooms := make([]*GameRoom, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.mu.RUnlock()

	for _, r := range rooms {
		for _, p := range r.Snapshot().Players {
			if p.ID == playerID {
				return r, true
			}
		}
	}
	return nil, false
}
