package utils

import (
	"fmt"

	"StoryPals/models/postgres"

	"gorm.io/gorm"
)

// CheckRoomExists looks a room up by id
func CheckRoomExists(db *gorm.DB, roomID string) (*postgres.GameRoom, error) {
	var room postgres.GameRoom
	result := db.Where("id = ?", roomID).First(&room)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("room not found")
		}
		return nil, result.Error
	}
	return &room, nil
}

// CheckChildExists looks a child profile up by id
func CheckChildExists(db *gorm.DB, childID string) (*postgres.ChildProfile, error) {
	var child postgres.ChildProfile
	result := db.Where("id = ?", childID).First(&child)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("child profile not found")
		}
		return nil, result.Error
	}
	return &child, nil
}

// IsChildInRoom reports whether a child holds a participant row in a room
func IsChildInRoom(db *gorm.DB, roomID string, childID string) (bool, error) {
	var count int64
	err := db.Model(&postgres.RoomParticipant{}).
		Where("room_id = ? AND child_id = ?", roomID, childID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
