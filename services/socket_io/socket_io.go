package socket_io

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"StoryPals/services/redis"
	redis_utils "StoryPals/services/redis/utils"
	"StoryPals/services/socket_io/handlers"
	socketio_types "StoryPals/services/socket_io/types"
	socketio_utils "StoryPals/services/socket_io/utils"

	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

func (sio *MySocketServer) Start(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and
	// 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		// Check if the client is authenticated
		success, childID := socketio_utils.VerifyChildConnection(client, db)
		if !success {
			return
		}

		(*socketio_types.SocketServer)(sio).AddConnection(childID, client)

		if redisClient != nil {
			if err := redisClient.SetChildOnline(childID); err != nil {
				fmt.Println("Error setting presence key:", err)
			}

			// Deliver invitations that arrived while the child was offline
			if events, err := redisClient.FetchInvitationInbox(childID); err != nil {
				fmt.Println("Error reading invitation inbox:", err)
			} else if len(events) > 0 {
				for _, event := range events {
					client.Emit("new_invitation", event)
				}
				inboxKey := redis_utils.FormatInvitationInboxKey(childID)
				if err := redisClient.CleanupKeys([]string{inboxKey}); err != nil {
					fmt.Println("Error clearing invitation inbox:", err)
				}
			}
		}

		fmt.Println("A child just connected!: ", childID)

		// Receive new-invitation events for this child
		client.On("subscribe_invitations", handlers.HandleSubscribeInvitations(client, childID))

		// Receive participant updates for a room the child sits in
		client.On("subscribe_room", handlers.HandleSubscribeRoom(client, db, childID))

		// Presence queries for the friends list
		client.On("check_online", handlers.HandleCheckOnline(client,
			(*socketio_types.SocketServer)(sio), redisClient))

		// NOTE: will remove sio connection from map
		client.On("disconnecting", handlers.HandleDisconnecting(childID,
			(*socketio_types.SocketServer)(sio), redisClient))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	// Bridge join_requests inserts from Redis onto connected sockets
	if redisClient != nil {
		go StartInvitationNotifier((*socketio_types.SocketServer)(sio), redisClient)
	}

	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				sio.Sio_server.Close(nil)
				os.Exit(0)
			}
		}
	}()

	fmt.Println("Socket server started")
}
