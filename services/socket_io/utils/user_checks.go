package socketio_utils

import (
	"fmt"

	"StoryPals/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// VerifyChildConnection authenticates a socket.io client from its handshake
// auth data. Clients identify with the child id they play as; the profile
// must exist in the store.
func VerifyChildConnection(client *socket.Socket, db *gorm.DB) (success bool, childID string) {
	authData, ok := client.Handshake().Auth.(map[string]interface{})
	if !ok {
		fmt.Println("No auth data provided in handshake!")
		client.Emit("error", gin.H{"error": "Authentication failed: missing auth data"})
		return false, ""
	}

	childID, exists := authData["child_id"].(string)
	if !exists || childID == "" {
		fmt.Println("No child_id provided in handshake!")
		client.Emit("error", gin.H{"error": "Authentication failed: missing child_id"})
		return false, ""
	}

	child, err := utils.CheckChildExists(db, childID)
	if err != nil {
		fmt.Println("Error fetching child profile from database:", err)
		client.Emit("error", gin.H{"error": "Authentication failed: could not find child profile"})
		return false, ""
	}

	return true, child.ID
}

// FormatInvitationRoom returns the socket.io room name carrying a child's
// invitation events
func FormatInvitationRoom(childID string) string {
	return fmt.Sprintf("invitations:%s", childID)
}

// FormatGameRoomChannel returns the socket.io room name for a game room's
// participant updates
func FormatGameRoomChannel(roomID string) string {
	return fmt.Sprintf("room:%s", roomID)
}
