package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"StoryPals/controllers"
	"StoryPals/middleware"
	"StoryPals/models/postgres"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Error opening in-memory database: %v", err)
	}
	err = db.AutoMigrate(
		&postgres.User{},
		&postgres.ChildProfile{},
		&postgres.GameRoom{},
		&postgres.RoomParticipant{},
		&postgres.JoinRequest{},
		&postgres.Friend{})
	if err != nil {
		t.Fatalf("Error migrating test database: %v", err)
	}
	return db
}

func setupRoomsRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	authorized := router.Group("/auth")
	authorized.Use(middleware.AuthRequired)
	authorized.POST("/rooms", controllers.ManageGameRooms(db, nil))
	return router
}

func postRooms(router *gin.Engine, body gin.H, authorized bool) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/auth/rooms", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if authorized {
		req.Header.Set("Authorization", "Bearer test-token")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Error decoding response body: %v", err)
	}
	return body
}

func createTestChild(t *testing.T, db *gorm.DB, name string) *postgres.ChildProfile {
	child := postgres.ChildProfile{
		ParentEmail: "parent@example.com",
		Name:        name,
		Avatar:      "🦊",
		AgeGroup:    "6-8",
	}
	if err := db.Create(&child).Error; err != nil {
		t.Fatalf("Error creating test child: %v", err)
	}
	return &child
}

func TestManageGameRoomsRequiresToken(t *testing.T) {
	router := setupRoomsRouter(setupTestDB(t))

	w := postRooms(router, gin.H{"action": "create_room"}, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "No authorization token provided", decodeBody(t, w)["error"])
}

func TestManageGameRoomsMissingAction(t *testing.T) {
	router := setupRoomsRouter(setupTestDB(t))

	w := postRooms(router, gin.H{"child_id": "abc"}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "action is required", body["error"])
}

func TestManageGameRoomsInvalidAction(t *testing.T) {
	router := setupRoomsRouter(setupTestDB(t))

	w := postRooms(router, gin.H{"action": "start_warp_drive"}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid action", decodeBody(t, w)["error"])
}

func TestManageGameRoomsCreateRoomMissingFields(t *testing.T) {
	router := setupRoomsRouter(setupTestDB(t))

	w := postRooms(router, gin.H{"action": "create_room", "child_id": "abc"}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "child_id, game_id and difficulty are required", decodeBody(t, w)["error"])
}

func TestManageGameRoomsCreateAndList(t *testing.T) {
	db := setupTestDB(t)
	router := setupRoomsRouter(db)
	child := createTestChild(t, db, "Mia")

	w := postRooms(router, gin.H{
		"action":     "create_room",
		"child_id":   child.ID,
		"game_id":    "riddles",
		"difficulty": "easy",
	}, true)
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	data, ok := body["data"].(map[string]interface{})
	assert.True(t, ok)
	assert.Len(t, data["room_code"], 6)
	assert.Equal(t, float64(2), data["current_players"])
	assert.Equal(t, true, data["has_ai_player"])

	w = postRooms(router, gin.H{
		"action":  "get_room_participants",
		"room_id": data["id"],
	}, true)
	assert.Equal(t, http.StatusOK, w.Code)

	body = decodeBody(t, w)
	participants, ok := body["data"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, participants, 2)
}

func TestManageGameRoomsJoinUnknownRoom(t *testing.T) {
	db := setupTestDB(t)
	router := setupRoomsRouter(db)
	child := createTestChild(t, db, "Leo")

	w := postRooms(router, gin.H{
		"action":    "join_room",
		"child_id":  child.ID,
		"room_code": "ZZZZZZ",
	}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Room not found or not available", body["error"])
}

func TestManageGameRoomsHandleJoinRequestFlow(t *testing.T) {
	db := setupTestDB(t)
	router := setupRoomsRouter(db)
	host := createTestChild(t, db, "Mia")
	friend := createTestChild(t, db, "Leo")

	w := postRooms(router, gin.H{
		"action":     "create_room",
		"child_id":   host.ID,
		"game_id":    "riddles",
		"difficulty": "easy",
	}, true)
	assert.Equal(t, http.StatusOK, w.Code)
	roomData := decodeBody(t, w)["data"].(map[string]interface{})

	w = postRooms(router, gin.H{
		"action":     "invite_friends",
		"child_id":   host.ID,
		"room_id":    roomData["id"],
		"friend_ids": []string{friend.ID},
	}, true)
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["invitations_sent"])
	invitations := body["data"].([]interface{})
	requestID := invitations[0].(map[string]interface{})["id"]

	w = postRooms(router, gin.H{
		"action":     "handle_join_request",
		"request_id": requestID,
		"approve":    true,
	}, true)
	assert.Equal(t, http.StatusOK, w.Code)

	body = decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, roomData["id"], body["room_id"])
	player := body["player"].(map[string]interface{})
	assert.Equal(t, friend.ID, player["child_id"])
}

func TestManageGameRoomsInviteFriendsMissingChildID(t *testing.T) {
	router := setupRoomsRouter(setupTestDB(t))

	w := postRooms(router, gin.H{
		"action":     "invite_friends",
		"room_id":    "some-room",
		"friend_ids": []string{"some-friend"},
	}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "child_id, room_id and friend_ids are required", decodeBody(t, w)["error"])
}

func TestManageGameRoomsHandleJoinRequestMissingApprove(t *testing.T) {
	router := setupRoomsRouter(setupTestDB(t))

	w := postRooms(router, gin.H{
		"action":     "handle_join_request",
		"request_id": "some-request",
	}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "request_id and approve are required", decodeBody(t, w)["error"])
}
