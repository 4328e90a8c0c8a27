package rooms_test

import (
	"testing"

	game_constants "StoryPals/constants/game"
	"StoryPals/models/postgres"
	redis_models "StoryPals/models/redis"
	"StoryPals/services/rooms"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// recordingPublisher captures published events instead of hitting Redis.
type recordingPublisher struct {
	events []*redis_models.InvitationEvent
}

func (r *recordingPublisher) PublishJoinRequest(event *redis_models.InvitationEvent) error {
	r.events = append(r.events, event)
	return nil
}

func createTestRoom(t *testing.T, db *gorm.DB, host *postgres.ChildProfile) *postgres.GameRoom {
	room, err := rooms.CreateRoom(db, rooms.CreateRoomParams{
		ChildID:    host.ID,
		GameID:     "riddles",
		Difficulty: "easy",
	})
	if err != nil {
		t.Fatalf("Error creating test room: %v", err)
	}
	return room
}

func TestInviteFriends(t *testing.T) {
	db := setupTestDB(t)
	pub := &recordingPublisher{}
	host := createTestChild(t, db, "Mia", "🦊")
	room := createTestRoom(t, db, host)
	leo := createTestChild(t, db, "Leo", "🐯")
	ana := createTestChild(t, db, "Ana", "🐰")

	created, err := rooms.InviteFriends(db, pub, host.ID, room.ID, []string{leo.ID, ana.ID, "not-a-child"})
	assert.NoError(t, err)
	assert.Len(t, created, 2)

	for _, req := range created {
		assert.Equal(t, game_constants.RequestStatusPending, req.Status)
		assert.Equal(t, room.RoomCode, req.RoomCode)
		assert.NotNil(t, req.RoomID)
		assert.Equal(t, room.ID, *req.RoomID)
	}

	// The snapshot carries the invited friend's own name and avatar
	byChild := map[string]postgres.JoinRequest{}
	for _, req := range created {
		byChild[req.ChildID] = req
	}
	assert.Equal(t, "Leo", byChild[leo.ID].PlayerName)
	assert.Equal(t, "🐯", byChild[leo.ID].PlayerAvatar)
	assert.Equal(t, "Ana", byChild[ana.ID].PlayerName)

	// One realtime event per created request
	assert.Len(t, pub.events, 2)
	for _, event := range pub.events {
		assert.Equal(t, room.RoomCode, event.RoomCode)
		assert.Equal(t, game_constants.RequestStatusPending, event.Status)
	}
}

func TestInviteFriendsNoValidFriends(t *testing.T) {
	db := setupTestDB(t)
	host := createTestChild(t, db, "Mia", "🦊")
	room := createTestRoom(t, db, host)

	_, err := rooms.InviteFriends(db, nil, host.ID, room.ID, []string{"nobody"})
	assert.ErrorIs(t, err, rooms.ErrNoValidFriends)

	var count int64
	assert.NoError(t, db.Model(&postgres.JoinRequest{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestInviteFriendsNonHostRejected(t *testing.T) {
	db := setupTestDB(t)
	host := createTestChild(t, db, "Mia", "🦊")
	room := createTestRoom(t, db, host)
	leo := createTestChild(t, db, "Leo", "🐯")
	ana := createTestChild(t, db, "Ana", "🐰")

	_, err := rooms.InviteFriends(db, nil, leo.ID, room.ID, []string{ana.ID})
	assert.ErrorIs(t, err, rooms.ErrNotInviteHost)

	var count int64
	assert.NoError(t, db.Model(&postgres.JoinRequest{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestInviteFriendsRoomNotFound(t *testing.T) {
	db := setupTestDB(t)
	leo := createTestChild(t, db, "Leo", "🐯")

	_, err := rooms.InviteFriends(db, nil, leo.ID, "missing-room", []string{leo.ID})
	assert.ErrorIs(t, err, rooms.ErrRoomNotFound)
}

func TestRequestToJoin(t *testing.T) {
	db := setupTestDB(t)
	pub := &recordingPublisher{}
	host := createTestChild(t, db, "Mia", "🦊")
	room := createTestRoom(t, db, host)
	leo := createTestChild(t, db, "Leo", "🐯")

	req, err := rooms.RequestToJoin(db, pub, leo.ID, room.RoomCode)
	assert.NoError(t, err)
	assert.Equal(t, game_constants.RequestStatusPending, req.Status)
	assert.Equal(t, room.RoomCode, req.RoomCode)
	assert.Equal(t, "Leo", req.PlayerName)
	assert.Nil(t, req.RoomID)

	assert.Len(t, pub.events, 1)
	assert.Equal(t, req.ID, pub.events[0].RequestID)
	assert.Equal(t, leo.ID, pub.events[0].ChildID)
}

func TestRequestToJoinRoomNotFound(t *testing.T) {
	db := setupTestDB(t)
	leo := createTestChild(t, db, "Leo", "🐯")

	_, err := rooms.RequestToJoin(db, nil, leo.ID, "ZZZZZZ")
	assert.ErrorIs(t, err, rooms.ErrRoomNotFound)
}

func TestHandleJoinRequestApprove(t *testing.T) {
	db := setupTestDB(t)
	host := createTestChild(t, db, "Mia", "🦊")
	room := createTestRoom(t, db, host)
	leo := createTestChild(t, db, "Leo", "🐯")

	created, err := rooms.InviteFriends(db, nil, host.ID, room.ID, []string{leo.ID})
	assert.NoError(t, err)

	decision, err := rooms.HandleJoinRequest(db, created[0].ID, true)
	assert.NoError(t, err)
	assert.True(t, decision.Seated)
	assert.Equal(t, game_constants.RequestStatusApproved, decision.Request.Status)
	assert.NotNil(t, decision.Participant)
	assert.Equal(t, leo.ID, *decision.Participant.ChildID)
	assert.Equal(t, 3, decision.Room.CurrentPlayers)

	assert.Equal(t, room.ID, *reloadChild(t, db, leo.ID).RoomID)
	assertOccupancy(t, db, room.ID)
}

func TestHandleJoinRequestDeny(t *testing.T) {
	db := setupTestDB(t)
	host := createTestChild(t, db, "Mia", "🦊")
	room := createTestRoom(t, db, host)
	leo := createTestChild(t, db, "Leo", "🐯")

	created, err := rooms.InviteFriends(db, nil, host.ID, room.ID, []string{leo.ID})
	assert.NoError(t, err)

	decision, err := rooms.HandleJoinRequest(db, created[0].ID, false)
	assert.NoError(t, err)
	assert.False(t, decision.Seated)
	assert.Equal(t, game_constants.RequestStatusDenied, decision.Request.Status)

	assert.Nil(t, reloadChild(t, db, leo.ID).RoomID)
	var count int64
	assert.NoError(t, db.Model(&postgres.RoomParticipant{}).
		Where("room_id = ? AND child_id = ?", room.ID, leo.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestHandleJoinRequestFullRoom(t *testing.T) {
	db := setupTestDB(t)
	host := createTestChild(t, db, "Mia", "🦊")
	room := createTestRoom(t, db, host)
	late := createTestChild(t, db, "Tom", "🐸")

	created, err := rooms.InviteFriends(db, nil, host.ID, room.ID, []string{late.ID})
	assert.NoError(t, err)

	// Fill the remaining seats before the host rules on the request
	for _, name := range []string{"Leo", "Ana"} {
		guest := createTestChild(t, db, name, "🐰")
		_, err := rooms.JoinRoom(db, guest.ID, room.RoomCode)
		assert.NoError(t, err)
	}

	decision, err := rooms.HandleJoinRequest(db, created[0].ID, true)
	assert.NoError(t, err)
	assert.False(t, decision.Seated)
	assert.Nil(t, decision.Participant)

	// The approval is recorded even though no seat was granted
	var reloaded postgres.JoinRequest
	assert.NoError(t, db.Where("id = ?", created[0].ID).First(&reloaded).Error)
	assert.Equal(t, game_constants.RequestStatusApproved, reloaded.Status)

	assert.Nil(t, reloadChild(t, db, late.ID).RoomID)
	assertOccupancy(t, db, room.ID)
}

func TestHandleJoinRequestNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := rooms.HandleJoinRequest(db, "missing-request", true)
	assert.ErrorIs(t, err, rooms.ErrRequestNotFound)
}

func TestAcceptInvitationDeniesOtherPending(t *testing.T) {
	db := setupTestDB(t)
	hostA := createTestChild(t, db, "Mia", "🦊")
	hostB := createTestChild(t, db, "Ana", "🐰")
	roomA := createTestRoom(t, db, hostA)
	roomB := createTestRoom(t, db, hostB)
	leo := createTestChild(t, db, "Leo", "🐯")

	fromA, err := rooms.InviteFriends(db, nil, hostA.ID, roomA.ID, []string{leo.ID})
	assert.NoError(t, err)
	fromB, err := rooms.InviteFriends(db, nil, hostB.ID, roomB.ID, []string{leo.ID})
	assert.NoError(t, err)

	result, err := rooms.AcceptInvitation(db, fromA[0].ID, leo.ID)
	assert.NoError(t, err)
	assert.Equal(t, roomA.ID, result.RoomID)
	assert.Equal(t, roomA.RoomCode, result.RoomCode)
	assert.Equal(t, 3, result.Room.CurrentPlayers)
	assert.Equal(t, leo.ID, *result.Participant.ChildID)

	var accepted, other postgres.JoinRequest
	assert.NoError(t, db.Where("id = ?", fromA[0].ID).First(&accepted).Error)
	assert.NoError(t, db.Where("id = ?", fromB[0].ID).First(&other).Error)
	assert.Equal(t, game_constants.RequestStatusApproved, accepted.Status)
	assert.Equal(t, game_constants.RequestStatusDenied, other.Status)

	assert.Equal(t, roomA.ID, *reloadChild(t, db, leo.ID).RoomID)
	assertOccupancy(t, db, roomA.ID)
}

func TestAcceptInvitationAlreadyInRoom(t *testing.T) {
	db := setupTestDB(t)
	hostA := createTestChild(t, db, "Mia", "🦊")
	roomA := createTestRoom(t, db, hostA)
	leo := createTestChild(t, db, "Leo", "🐯")

	invs, err := rooms.InviteFriends(db, nil, hostA.ID, roomA.ID, []string{leo.ID})
	assert.NoError(t, err)

	// Leo hosts a room of their own before accepting
	_, err = rooms.CreateRoom(db, rooms.CreateRoomParams{
		ChildID: leo.ID, GameID: "riddles", Difficulty: "easy",
	})
	assert.NoError(t, err)

	_, err = rooms.AcceptInvitation(db, invs[0].ID, leo.ID)
	assert.ErrorIs(t, err, rooms.ErrAlreadyInRoom)
}

func TestAcceptInvitationAlreadyProcessed(t *testing.T) {
	db := setupTestDB(t)
	host := createTestChild(t, db, "Mia", "🦊")
	room := createTestRoom(t, db, host)
	leo := createTestChild(t, db, "Leo", "🐯")

	invs, err := rooms.InviteFriends(db, nil, host.ID, room.ID, []string{leo.ID})
	assert.NoError(t, err)
	assert.NoError(t, rooms.DeclineInvitation(db, invs[0].ID, leo.ID))

	_, err = rooms.AcceptInvitation(db, invs[0].ID, leo.ID)
	assert.ErrorIs(t, err, rooms.ErrInvitationNotFound)
}

func TestAcceptInvitationRoomFull(t *testing.T) {
	db := setupTestDB(t)
	host := createTestChild(t, db, "Mia", "🦊")
	room := createTestRoom(t, db, host)
	leo := createTestChild(t, db, "Leo", "🐯")

	invs, err := rooms.InviteFriends(db, nil, host.ID, room.ID, []string{leo.ID})
	assert.NoError(t, err)

	for _, name := range []string{"Ana", "Tom"} {
		guest := createTestChild(t, db, name, "🐰")
		_, err := rooms.JoinRoom(db, guest.ID, room.RoomCode)
		assert.NoError(t, err)
	}

	_, err = rooms.AcceptInvitation(db, invs[0].ID, leo.ID)
	assert.ErrorIs(t, err, rooms.ErrRoomFullOrUnavailable)

	// The invitation survives untouched for a later retry
	var reloaded postgres.JoinRequest
	assert.NoError(t, db.Where("id = ?", invs[0].ID).First(&reloaded).Error)
	assert.Equal(t, game_constants.RequestStatusPending, reloaded.Status)
	assert.Nil(t, reloadChild(t, db, leo.ID).RoomID)
}

func TestDeclineInvitation(t *testing.T) {
	db := setupTestDB(t)
	host := createTestChild(t, db, "Mia", "🦊")
	room := createTestRoom(t, db, host)
	leo := createTestChild(t, db, "Leo", "🐯")

	invs, err := rooms.InviteFriends(db, nil, host.ID, room.ID, []string{leo.ID})
	assert.NoError(t, err)

	// Declining somebody else's invitation is rejected
	assert.ErrorIs(t, rooms.DeclineInvitation(db, invs[0].ID, host.ID), rooms.ErrInvitationNotFound)

	assert.NoError(t, rooms.DeclineInvitation(db, invs[0].ID, leo.ID))

	var reloaded postgres.JoinRequest
	assert.NoError(t, db.Where("id = ?", invs[0].ID).First(&reloaded).Error)
	assert.Equal(t, game_constants.RequestStatusDenied, reloaded.Status)

	// Declining twice finds nothing pending
	assert.ErrorIs(t, rooms.DeclineInvitation(db, invs[0].ID, leo.ID), rooms.ErrInvitationNotFound)
}

func TestGetPendingInvitations(t *testing.T) {
	db := setupTestDB(t)
	host := createTestChild(t, db, "Mia", "🦊")
	room := createTestRoom(t, db, host)
	leo := createTestChild(t, db, "Leo", "🐯")

	invs, err := rooms.InviteFriends(db, nil, host.ID, room.ID, []string{leo.ID})
	assert.NoError(t, err)

	pending, err := rooms.GetPendingInvitations(db, leo.ID)
	assert.NoError(t, err)
	assert.Len(t, pending, 1)
	assert.Equal(t, invs[0].ID, pending[0].ID)
	assert.NotNil(t, pending[0].GameRoom)
	assert.Equal(t, room.RoomCode, pending[0].GameRoom.RoomCode)
	assert.Equal(t, game_constants.RoomStatusWaiting, pending[0].GameRoom.Status)

	_, err = rooms.AcceptInvitation(db, invs[0].ID, leo.ID)
	assert.NoError(t, err)

	pending, err = rooms.GetPendingInvitations(db, leo.ID)
	assert.NoError(t, err)
	assert.Len(t, pending, 0)
}
