package game

import "errors"

// Protocol-level rejections. These are answered to the offending socket
// only and never mutate room state.
var (
	ErrRoomFull       = errors.New("room is full")
	ErrGameInProgress = errors.New("game already in progress")
	ErrUnknownPlayer  = errors.New("player is not in this room")
	ErrInvalidState   = errors.New("action not allowed in current game state")
	ErrAlreadyClaimed = errors.New("solution already claimed this round")
	ErrNotYourClaim   = errors.New("you have not claimed this round")
	ErrNotSoloRoom    = errors.New("only allowed in solo practice rooms")
	ErrRoomClosed     = errors.New("room no longer exists")
)
