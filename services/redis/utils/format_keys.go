package redis_utils

import "fmt"

func FormatPresenceKey(username string) string {
	return fmt.Sprintf("presence:%s", username)
}

func FormatRoomSummaryKey(roomID string) string {
	return fmt.Sprintf("room_summary:%s", roomID)
}

func RoomSummaryPattern() string {
	return "room_summary:*"
}
