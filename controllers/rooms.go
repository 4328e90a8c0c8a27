package controllers

import (
	"log"
	"net/http"

	"StoryPals/services/redis"
	"StoryPals/services/rooms"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// roomActionRequest is the dispatch envelope for the game rooms endpoint.
// One endpoint, one action field, JSON in and out.
type roomActionRequest struct {
	Action       string   `json:"action"`
	ChildID      string   `json:"child_id"`
	GameID       string   `json:"game_id"`
	Difficulty   string   `json:"difficulty"`
	RoomName     string   `json:"room_name"`
	RoomCode     string   `json:"room_code"`
	FriendIDs    []string `json:"friend_ids"`
	RoomID       string   `json:"room_id"`
	RequestID    string   `json:"request_id"`
	Approve      *bool    `json:"approve"`
	InvitationID string   `json:"invitation_id"`
}

// @Summary Game room coordination dispatch
// @Description Routes a room action (create_room, join_room, leave_room, close_room, invite_friends, request_to_join, handle_join_request, accept_invitation, decline_invitation, get_room_participants, get_pending_invitations) to the room service. Responses follow the {success, data?, error?} envelope.
// @Tags rooms
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param body body object{action=string} true "Action envelope"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /auth/rooms [post]
// @Security ApiKeyAuth
func ManageGameRooms(db *gorm.DB, redisClient *redis.RedisClient) gin.HandlerFunc {
	// Avoid a typed-nil interface when the server runs without Redis
	var pub rooms.InvitationPublisher
	if redisClient != nil {
		pub = redisClient
	}

	return func(c *gin.Context) {
		var req roomActionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			roomFailure(c, "Invalid request body")
			return
		}
		if req.Action == "" {
			roomFailure(c, "action is required")
			return
		}

		switch req.Action {
		case "create_room":
			if req.ChildID == "" || req.GameID == "" || req.Difficulty == "" {
				roomFailure(c, "child_id, game_id and difficulty are required")
				return
			}
			room, err := rooms.CreateRoom(db, rooms.CreateRoomParams{
				ChildID:    req.ChildID,
				GameID:     req.GameID,
				Difficulty: req.Difficulty,
				RoomName:   req.RoomName,
				FriendIDs:  req.FriendIDs,
			})
			if err != nil {
				roomError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "data": room})

		case "join_room":
			if req.ChildID == "" || req.RoomCode == "" {
				roomFailure(c, "child_id and room_code are required")
				return
			}
			room, err := rooms.JoinRoom(db, req.ChildID, req.RoomCode)
			if err != nil {
				roomError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "data": room})

		case "leave_room":
			if req.ChildID == "" || req.RoomID == "" {
				roomFailure(c, "child_id and room_id are required")
				return
			}
			if err := rooms.LeaveRoom(db, req.ChildID, req.RoomID); err != nil {
				roomError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true})

		case "close_room":
			if req.ChildID == "" || req.RoomID == "" {
				roomFailure(c, "child_id and room_id are required")
				return
			}
			if err := rooms.CloseRoom(db, req.ChildID, req.RoomID); err != nil {
				roomError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true})

		case "invite_friends":
			if req.ChildID == "" || req.RoomID == "" || len(req.FriendIDs) == 0 {
				roomFailure(c, "child_id, room_id and friend_ids are required")
				return
			}
			created, err := rooms.InviteFriends(db, pub, req.ChildID, req.RoomID, req.FriendIDs)
			if err != nil {
				roomError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"success":          true,
				"invitations_sent": len(created),
				"data":             created,
			})

		case "request_to_join":
			if req.ChildID == "" || req.RoomCode == "" {
				roomFailure(c, "child_id and room_code are required")
				return
			}
			request, err := rooms.RequestToJoin(db, pub, req.ChildID, req.RoomCode)
			if err != nil {
				roomError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "data": request})

		case "handle_join_request":
			if req.RequestID == "" || req.Approve == nil {
				roomFailure(c, "request_id and approve are required")
				return
			}
			decision, err := rooms.HandleJoinRequest(db, req.RequestID, *req.Approve)
			if err != nil {
				roomError(c, err)
				return
			}
			if decision.Seated {
				c.JSON(http.StatusOK, gin.H{
					"success": true,
					"player":  decision.Participant,
					"room":    decision.Room,
					"room_id": decision.Room.ID,
				})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true})

		case "accept_invitation":
			if req.InvitationID == "" || req.ChildID == "" {
				roomFailure(c, "invitation_id and child_id are required")
				return
			}
			result, err := rooms.AcceptInvitation(db, req.InvitationID, req.ChildID)
			if err != nil {
				roomError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"success":     true,
				"room":        result.Room,
				"room_id":     result.RoomID,
				"room_code":   result.RoomCode,
				"participant": result.Participant,
			})

		case "decline_invitation":
			if req.InvitationID == "" || req.ChildID == "" {
				roomFailure(c, "invitation_id and child_id are required")
				return
			}
			if err := rooms.DeclineInvitation(db, req.InvitationID, req.ChildID); err != nil {
				roomError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true})

		case "get_room_participants":
			if req.RoomID == "" {
				roomFailure(c, "room_id is required")
				return
			}
			participants, err := rooms.GetRoomParticipants(db, req.RoomID)
			if err != nil {
				roomError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "data": participants})

		case "get_pending_invitations":
			if req.ChildID == "" {
				roomFailure(c, "child_id is required")
				return
			}
			invitations, err := rooms.GetPendingInvitations(db, req.ChildID)
			if err != nil {
				roomError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "data": invitations})

		default:
			roomFailure(c, "Invalid action")
		}
	}
}

// roomError maps a service error into the response envelope. Precondition
// errors go back verbatim, store failures are logged and flattened into a
// generic message.
func roomError(c *gin.Context, err error) {
	if rooms.IsUserError(err) {
		roomFailure(c, err.Error())
		return
	}
	log.Printf("[ROOMS-ERROR] %v", err)
	roomFailure(c, "Error processing room action")
}

func roomFailure(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
}
