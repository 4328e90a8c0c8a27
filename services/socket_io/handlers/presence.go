package handlers

import (
	"log"

	"StoryPals/services/redis"
	socketio_types "StoryPals/services/socket_io/types"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleCheckOnline answers presence queries from the friends UI. A child is
// online when it holds a live socket on this node, or, failing that, when
// its presence key is set (covers sockets held by other nodes).
func HandleCheckOnline(client *socket.Socket, sio *socketio_types.SocketServer,
	redisClient *redis.RedisClient) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "child_id is required"})
			return
		}
		targetID, ok := args[0].(string)
		if !ok || targetID == "" {
			client.Emit("error", gin.H{"error": "child_id is required"})
			return
		}

		_, online := sio.GetConnection(targetID)
		if !online && redisClient != nil {
			var err error
			online, err = redisClient.IsChildOnline(targetID)
			if err != nil {
				log.Printf("[REALTIME-ERROR] Error checking presence for %s: %v", targetID, err)
				client.Emit("error", gin.H{"error": "Error checking presence"})
				return
			}
		}

		client.Emit("online_status", gin.H{"child_id": targetID, "online": online})
	}
}
