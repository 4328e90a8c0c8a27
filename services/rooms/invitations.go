package rooms

import (
	"errors"
	"log"

	game_constants "StoryPals/constants/game"
	models "StoryPals/models/postgres"
	redis_models "StoryPals/models/redis"

	"gorm.io/gorm"
)

// InvitationPublisher pushes join_requests inserts onto the realtime feed.
// The Redis-backed client implements it; tests plug in a recorder.
type InvitationPublisher interface {
	PublishJoinRequest(event *redis_models.InvitationEvent) error
}

// JoinDecision is the outcome of a host ruling on a join request. Seated is
// true only when approval actually granted a seat: an approval on a full
// room (or for a child already seated elsewhere) keeps the approved status
// but seats nobody.
type JoinDecision struct {
	Request     *models.JoinRequest
	Seated      bool
	Participant *models.RoomParticipant
	Room        *models.GameRoom
}

// AcceptResult is returned by AcceptInvitation once the guest holds a seat.
type AcceptResult struct {
	RoomID      string
	RoomCode    string
	Room        *models.GameRoom
	Participant *models.RoomParticipant
}

// InviteFriends creates one pending join request per valid friend id,
// snapshotting each friend's current name and avatar. Only the room's host
// may invite. Capacity is not checked here, it is re-checked when a request
// is approved or accepted.
func InviteFriends(db *gorm.DB, pub InvitationPublisher, hostID string, roomID string, friendIDs []string) ([]models.JoinRequest, error) {
	var created []models.JoinRequest
	err := db.Transaction(func(tx *gorm.DB) error {
		var room models.GameRoom
		if err := tx.Where("id = ?", roomID).First(&room).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrRoomNotFound
			}
			return err
		}
		if room.HostChildID != hostID {
			return ErrNotInviteHost
		}

		var friends []models.ChildProfile
		if err := tx.Where("id IN ?", friendIDs).Find(&friends).Error; err != nil {
			return err
		}
		if len(friends) == 0 {
			return ErrNoValidFriends
		}

		for _, friend := range friends {
			req := models.JoinRequest{
				RoomID:       &room.ID,
				RoomCode:     room.RoomCode,
				ChildID:      friend.ID,
				PlayerName:   friend.Name,
				PlayerAvatar: friend.Avatar,
				Status:       game_constants.RequestStatusPending,
			}
			if err := tx.Create(&req).Error; err != nil {
				return err
			}
			created = append(created, req)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	publishJoinRequests(pub, created...)
	return created, nil
}

// RequestToJoin files a guest-initiated pending request against a room
// looked up by code. Any room status is accepted here, a laxer check than
// JoinRoom; the host decides later.
func RequestToJoin(db *gorm.DB, pub InvitationPublisher, childID string, roomCode string) (*models.JoinRequest, error) {
	var req models.JoinRequest
	err := db.Transaction(func(tx *gorm.DB) error {
		var room models.GameRoom
		if err := tx.Where("room_code = ?", roomCode).First(&room).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrRoomNotFound
			}
			return err
		}

		var child models.ChildProfile
		if err := tx.Where("id = ?", childID).First(&child).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrChildNotFound
			}
			return err
		}

		// Guest requests travel by room code alone, room_id stays null
		req = models.JoinRequest{
			RoomCode:     roomCode,
			ChildID:      child.ID,
			PlayerName:   child.Name,
			PlayerAvatar: child.Avatar,
			Status:       game_constants.RequestStatusPending,
		}
		return tx.Create(&req).Error
	})
	if err != nil {
		return nil, err
	}
	publishJoinRequests(pub, req)
	return &req, nil
}

var errSeatUnavailable = errors.New("seat unavailable")

// HandleJoinRequest is the host-side decision primitive. The status update
// always lands; on approval the seat grant runs in its own transaction and
// is skipped silently when the room is gone, full, or the child is already
// seated elsewhere.
func HandleJoinRequest(db *gorm.DB, requestID string, approve bool) (*JoinDecision, error) {
	var req models.JoinRequest
	if err := db.Where("id = ?", requestID).First(&req).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	status := game_constants.RequestStatusDenied
	if approve {
		status = game_constants.RequestStatusApproved
	}
	if err := db.Model(&models.JoinRequest{}).Where("id = ?", req.ID).
		Update("status", status).Error; err != nil {
		return nil, err
	}
	req.Status = status

	decision := &JoinDecision{Request: &req}
	if !approve {
		return decision, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var room models.GameRoom
		if err := tx.Where("room_code = ?", req.RoomCode).First(&room).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errSeatUnavailable
			}
			return err
		}
		if room.CurrentPlayers >= room.MaxPlayers {
			return errSeatUnavailable
		}

		// Seat the child under their current profile name/avatar, not the
		// snapshot taken at invite time
		var child models.ChildProfile
		if err := tx.Where("id = ?", req.ChildID).First(&child).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errSeatUnavailable
			}
			return err
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
			if errors.Is(err, ErrAlreadyInRoom) {
				return errSeatUnavailable
			}
			return err
		}
		if err := incrementPlayers(tx, room.ID); err != nil {
			if errors.Is(err, ErrRoomFull) {
				return errSeatUnavailable
			}
			return err
		}
		room.CurrentPlayers++

		decision.Seated = true
		decision.Participant = &participant
		decision.Room = &room
		return nil
	})
	if err != nil {
		if errors.Is(err, errSeatUnavailable) {
			decision.Seated = false
			decision.Participant = nil
			decision.Room = nil
			return decision, nil
		}
		return nil, err
	}
	return decision, nil
}

// AcceptInvitation is the guest-side acceptance of a pending invitation.
// Accepting one invitation retires every other pending request the child
// has, keeping at most one acceptance actionable at a time.
func AcceptInvitation(db *gorm.DB, invitationID string, childID string) (*AcceptResult, error) {
	var result AcceptResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var inv models.JoinRequest
		if err := tx.Where("id = ? AND child_id = ?", invitationID, childID).
			First(&inv).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrInvitationNotFound
			}
			return err
		}
		if inv.Status != game_constants.RequestStatusPending {
			return ErrInvitationNotFound
		}

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

		// Invitations carry the room id, legacy guest requests only a code
		var room models.GameRoom
		query := tx.Where("room_code = ?", inv.RoomCode)
		if inv.RoomID != nil {
			query = tx.Where("id = ?", *inv.RoomID)
		}
		if err := query.First(&room).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrRoomFullOrUnavailable
			}
			return err
		}
		if room.CurrentPlayers >= room.MaxPlayers {
			return ErrRoomFullOrUnavailable
		}

		if err := tx.Model(&models.JoinRequest{}).Where("id = ?", inv.ID).
			Update("status", game_constants.RequestStatusApproved).Error; err != nil {
			return err
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
			if errors.Is(err, ErrRoomFull) {
				return ErrRoomFullOrUnavailable
			}
			return err
		}
		room.CurrentPlayers++

		// Fan-out denial of every other pending request for this child
		if err := tx.Model(&models.JoinRequest{}).
			Where("child_id = ? AND status = ? AND id <> ?",
				childID, game_constants.RequestStatusPending, inv.ID).
			Update("status", game_constants.RequestStatusDenied).Error; err != nil {
			return err
		}

		result = AcceptResult{
			RoomID:      room.ID,
			RoomCode:    room.RoomCode,
			Room:        &room,
			Participant: &participant,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DeclineInvitation marks one pending request denied, scoped to requests
// addressed to the declining child.
func DeclineInvitation(db *gorm.DB, invitationID string, childID string) error {
	res := db.Model(&models.JoinRequest{}).
		Where("id = ? AND child_id = ? AND status = ?",
			invitationID, childID, game_constants.RequestStatusPending).
		Update("status", game_constants.RequestStatusDenied)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvitationNotFound
	}
	return nil
}

// GetPendingInvitations lists a child's pending requests newest-first, with
// the room row attached when the request carries a room id.
func GetPendingInvitations(db *gorm.DB, childID string) ([]models.JoinRequest, error) {
	var invitations []models.JoinRequest
	if err := db.Preload("GameRoom").
		Where("child_id = ? AND status = ?", childID, game_constants.RequestStatusPending).
		Order("created_at DESC").
		Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

func publishJoinRequests(pub InvitationPublisher, reqs ...models.JoinRequest) {
	if pub == nil {
		return
	}
	for i := range reqs {
		event := toInvitationEvent(&reqs[i])
		if err := pub.PublishJoinRequest(event); err != nil {
			// Delivery is best-effort, the request row is already durable
			log.Printf("[REALTIME-ERROR] Error publishing join request %s: %v", reqs[i].ID, err)
		}
	}
}

func toInvitationEvent(req *models.JoinRequest) *redis_models.InvitationEvent {
	event := &redis_models.InvitationEvent{
		RequestID:    req.ID,
		RoomCode:     req.RoomCode,
		ChildID:      req.ChildID,
		PlayerName:   req.PlayerName,
		PlayerAvatar: req.PlayerAvatar,
		Status:       req.Status,
		CreatedAt:    req.CreatedAt,
	}
	if req.RoomID != nil {
		event.RoomID = *req.RoomID
	}
	return event
}
