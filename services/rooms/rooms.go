package rooms

import (
	game_constants "StoryPals/constants/game"
	models "StoryPals/models/postgres"

	"gorm.io/gorm"
)

// CreateRoomParams carries the create_room dispatch fields. RoomName is
// accepted from clients for display purposes but not persisted, and
// FriendIDs only decides whether the AI backfill kicks in.
type CreateRoomParams struct {
	ChildID    string
	GameID     string
	Difficulty string
	RoomName   string
	FriendIDs  []string
}

// CreateRoom opens a new waiting room hosted by the given child. The child
// must not be in a room already. When the host pre-selected no friends, an
// AI companion is seated immediately so the lobby never has a single
// occupant.
func CreateRoom(db *gorm.DB, p CreateRoomParams) (*models.GameRoom, error) {
	var room *models.GameRoom
	err := db.Transaction(func(tx *gorm.DB) error {
		var child models.ChildProfile
		if err := tx.Where("id = ?", p.ChildID).First(&child).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrChildNotFound
			}
			return err
		}
		if child.RoomID != nil {
			return ErrAlreadyInRoom
		}

		newRoom := models.GameRoom{
			HostChildID:    child.ID,
			GameID:         p.GameID,
			Difficulty:     p.Difficulty,
			MaxPlayers:     game_constants.MaxPlayers,
			CurrentPlayers: 1,
			Status:         game_constants.RoomStatusWaiting,
		}
		if err := tx.Create(&newRoom).Error; err != nil {
			return err
		}

		host := models.RoomParticipant{
			RoomID:       newRoom.ID,
			ChildID:      &child.ID,
			PlayerName:   child.Name,
			PlayerAvatar: child.Avatar,
			IsAI:         false,
		}
		if err := tx.Create(&host).Error; err != nil {
			return err
		}

		if err := claimRoomSlot(tx, child.ID, newRoom.ID); err != nil {
			return err
		}

		// No friends pre-selected: seat an AI companion right away
		if len(p.FriendIDs) == 0 {
			ai := PickAIFriend()
			seat := models.RoomParticipant{
				RoomID:       newRoom.ID,
				PlayerName:   ai.Name,
				PlayerAvatar: ai.Avatar,
				IsAI:         true,
			}
			if err := tx.Create(&seat).Error; err != nil {
				return err
			}
			updates := map[string]interface{}{
				"current_players":  2,
				"has_ai_player":    true,
				"ai_player_name":   ai.Name,
				"ai_player_avatar": ai.Avatar,
			}
			if err := tx.Model(&models.GameRoom{}).Where("id = ?", newRoom.ID).
				Updates(updates).Error; err != nil {
				return err
			}
			newRoom.CurrentPlayers = 2
			newRoom.HasAIPlayer = true
			newRoom.AIPlayerName = ai.Name
			newRoom.AIPlayerAvatar = ai.Avatar
		}

		room = &newRoom
		return nil
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

// JoinRoom seats a child in a waiting room looked up by code.
func JoinRoom(db *gorm.DB, childID string, roomCode string) (*models.GameRoom, error) {
	var room models.GameRoom
	err := db.Transaction(func(tx *gorm.DB) error {
		var child models.ChildProfile
		if err := tx.Where("id = ?", childID).First(&child).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrChildNotFound
			}
			return err
		}
		if child.RoomID != nil {
			return ErrAlreadyInRoom
		}

		if err := tx.Where("room_code = ? AND status = ?", roomCode,
			game_constants.RoomStatusWaiting).First(&room).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrRoomNotAvailable
			}
			return err
		}
		if room.CurrentPlayers >= room.MaxPlayers {
			return ErrRoomFull
		}

		participant := models.RoomParticipant{
			RoomID:       room.ID,
			ChildID:      &child.ID,
			PlayerName:   child.Name,
			PlayerAvatar: child.Avatar,
			IsAI:         false,
		}
		if err := tx.Create(&participant).Error; err != nil {
			return err
		}
		if err := claimRoomSlot(tx, child.ID, room.ID); err != nil {
			return err
		}
		if err := incrementPlayers(tx, room.ID); err != nil {
			return err
		}
		room.CurrentPlayers++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// LeaveRoom removes a child from a room. The room is torn down completely
// when it would be left empty or when the leaver is the host; there is no
// host transfer.
func LeaveRoom(db *gorm.DB, childID string, roomID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ? AND child_id = ?", roomID, childID).
			Delete(&models.RoomParticipant{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.ChildProfile{}).Where("id = ?", childID).
			Update("room_id", nil).Error; err != nil {
			return err
		}

		var room models.GameRoom
		if err := tx.Where("id = ?", roomID).First(&room).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				// Room already gone, nothing left to bookkeep
				return nil
			}
			return err
		}

		newCount := room.CurrentPlayers - 1
		if newCount <= 0 || room.HostChildID == childID {
			return teardownRoom(tx, &room)
		}
		return decrementPlayers(tx, room.ID)
	})
}

// CloseRoom is the host-invoked hard teardown. Calling it twice is harmless,
// the second call finds nothing to delete.
func CloseRoom(db *gorm.DB, childID string, roomID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var room models.GameRoom
		if err := tx.Where("id = ?", roomID).First(&room).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return err
		}
		if room.HostChildID != childID {
			return ErrNotRoomHost
		}
		return teardownRoom(tx, &room)
	})
}

// GetRoomParticipants lists every seat in a room, humans and AI alike.
func GetRoomParticipants(db *gorm.DB, roomID string) ([]models.RoomParticipant, error) {
	var participants []models.RoomParticipant
	if err := db.Where("room_id = ?", roomID).Order("joined_at asc").
		Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

// claimRoomSlot points the child's room_id at the room, but only if they
// hold no room yet. The conditional write is what keeps two concurrent
// creates/joins from both seating the same child.
func claimRoomSlot(tx *gorm.DB, childID string, roomID string) error {
	res := tx.Model(&models.ChildProfile{}).
		Where("id = ? AND room_id IS NULL", childID).
		Update("room_id", roomID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyInRoom
	}
	return nil
}

// incrementPlayers bumps the occupancy counter, guarded by the capacity
// check in the same statement so concurrent joins cannot overfill the room.
func incrementPlayers(tx *gorm.DB, roomID string) error {
	res := tx.Model(&models.GameRoom{}).
		Where("id = ? AND current_players < max_players", roomID).
		UpdateColumn("current_players", gorm.Expr("current_players + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRoomFull
	}
	return nil
}

func decrementPlayers(tx *gorm.DB, roomID string) error {
	return tx.Model(&models.GameRoom{}).
		Where("id = ?", roomID).
		UpdateColumn("current_players", gorm.Expr("current_players - 1")).Error
}

// teardownRoom evicts every remaining member and deletes the room row.
func teardownRoom(tx *gorm.DB, room *models.GameRoom) error {
	var remaining []models.RoomParticipant
	if err := tx.Where("room_id = ? AND child_id IS NOT NULL", room.ID).
		Find(&remaining).Error; err != nil {
		return err
	}
	childIDs := make([]string, 0, len(remaining))
	for _, p := range remaining {
		childIDs = append(childIDs, *p.ChildID)
	}
	if len(childIDs) > 0 {
		if err := tx.Model(&models.ChildProfile{}).Where("id IN ?", childIDs).
			Update("room_id", nil).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("room_id = ?", room.ID).
		Delete(&models.RoomParticipant{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.GameRoom{}, "id = ?", room.ID).Error
}
