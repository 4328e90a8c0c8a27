package handlers

import (
	"log"

	"StoryPals/services/redis"
	socketio_types "StoryPals/services/socket_io/types"
	socketio_utils "StoryPals/services/socket_io/utils"
	"StoryPals/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// HandleSubscribeInvitations joins the client to the socket.io room that
// carries new-invitation events for the child it authenticated as.
func HandleSubscribeInvitations(client *socket.Socket, childID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		room := socketio_utils.FormatInvitationRoom(childID)
		client.Join(socket.Room(room))
		log.Printf("[REALTIME] Child %s subscribed to invitation events", childID)
		client.Emit("subscribed", gin.H{"channel": room})
	}
}

// HandleSubscribeRoom joins the client to a game room's update channel. The
// child must actually hold a seat in that room.
func HandleSubscribeRoom(client *socket.Socket, db *gorm.DB, childID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "room_id is required"})
			return
		}
		roomID, ok := args[0].(string)
		if !ok || roomID == "" {
			client.Emit("error", gin.H{"error": "room_id is required"})
			return
		}

		if _, err := utils.CheckRoomExists(db, roomID); err != nil {
			client.Emit("error", gin.H{"error": "Room not found"})
			return
		}

		inRoom, err := utils.IsChildInRoom(db, roomID, childID)
		if err != nil {
			log.Printf("[REALTIME-ERROR] Error checking room membership: %v", err)
			client.Emit("error", gin.H{"error": "Database error"})
			return
		}
		if !inRoom {
			client.Emit("error", gin.H{"error": "You must join the room before subscribing to it"})
			return
		}

		client.Join(socket.Room(socketio_utils.FormatGameRoomChannel(roomID)))
		client.Emit("subscribed", gin.H{"channel": socketio_utils.FormatGameRoomChannel(roomID)})
	}
}

// HandleDisconnecting clears the child's presence key and removes the
// connection from the map. Socket.io drops room memberships on its own.
func HandleDisconnecting(childID string, sio *socketio_types.SocketServer,
	redisClient *redis.RedisClient) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[DISCONNECT] Child disconnecting: %s", childID)

		if redisClient != nil {
			if err := redisClient.SetChildOffline(childID); err != nil {
				log.Printf("[DISCONNECT-ERROR] Error clearing presence for %s: %v", childID, err)
			}
		}

		sio.RemoveConnection(childID)
		log.Printf("[DISCONNECT-DONE] Child disconnected: %s", childID)
	}
}
