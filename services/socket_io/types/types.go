package socketio_types

import (
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// SocketServer is a struct that contains the socket.io server and a map of
// socket connections. It is used to handle socket.io connections.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track child id -> socket connections
	ChildConnections map[string]*socket.Socket
	mutex            sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		ChildConnections: make(map[string]*socket.Socket),
	}
}

// Add methods to manage connections
func (s *SocketServer) AddConnection(childID string, socket *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.ChildConnections[childID] = socket
}

func (s *SocketServer) RemoveConnection(childID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.ChildConnections, childID)
}

func (s *SocketServer) GetConnection(childID string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	socket, exists := s.ChildConnections[childID]
	return socket, exists
}
