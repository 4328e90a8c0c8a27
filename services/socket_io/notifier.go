package socket_io

import (
	"encoding/json"
	"log"

	redis_models "StoryPals/models/redis"
	"StoryPals/services/redis"
	socketio_types "StoryPals/services/socket_io/types"
	socketio_utils "StoryPals/services/socket_io/utils"

	"github.com/zishang520/socket.io/v2/socket"
)

// StartInvitationNotifier is the realtime feed consumer: it subscribes to
// the join_requests insert channel on Redis and relays every event as a
// "new_invitation" to the addressed child's invitation room. It runs until
// the pub/sub connection is closed.
func StartInvitationNotifier(sio *socketio_types.SocketServer, redisClient *redis.RedisClient) {
	pubsub := redisClient.SubscribeJoinRequests()
	defer pubsub.Close()

	log.Println("Invitation notifier started")

	for msg := range pubsub.Channel() {
		var event redis_models.InvitationEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[REALTIME-ERROR] Error unmarshaling invitation event: %v", err)
			continue
		}

		room := socketio_utils.FormatInvitationRoom(event.ChildID)
		sio.Sio_server.To(socket.Room(room)).Emit("new_invitation", event)
		log.Printf("[REALTIME] Relayed invitation %s to child %s (room %s)",
			event.RequestID, event.ChildID, event.RoomCode)
	}

	log.Println("Invitation notifier stopped")
}
