package postgres

import (
	"math/rand"
	"time"

	game_constants "StoryPals/constants/game"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
 * 'GameRoom' is a single game session container. Rows are deleted outright
 * when the room empties or the host leaves/closes it, they never come back.
 * CurrentPlayers must equal the count of RoomParticipant rows for the room.
 */
type GameRoom struct {
	ID             string    `gorm:"primaryKey;size:36;not null" json:"id"`
	RoomCode       string    `gorm:"size:6;not null;uniqueIndex:idx_game_rooms_code" json:"room_code"`
	HostChildID    string    `gorm:"size:36;not null;index:idx_game_rooms_host" json:"host_child_id"`
	GameID         string    `gorm:"size:50;not null" json:"game_id"`
	Difficulty     string    `gorm:"size:20" json:"difficulty"`
	MaxPlayers     int       `gorm:"default:4" json:"max_players"`
	CurrentPlayers int       `gorm:"default:1" json:"current_players"`
	Status         string    `gorm:"size:20;default:'waiting';index:idx_game_rooms_status" json:"status"`
	HasAIPlayer    bool      `gorm:"column:has_ai_player;default:false" json:"has_ai_player"`
	AIPlayerName   string    `gorm:"column:ai_player_name;size:50" json:"ai_player_name"`
	AIPlayerAvatar string    `gorm:"column:ai_player_avatar;size:10" json:"ai_player_avatar"`
	CreatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relationships
	Host         ChildProfile       `gorm:"foreignKey:HostChildID" json:"-"`
	Participants []*RoomParticipant `gorm:"foreignKey:RoomID" json:"-"`
}

// Random room code generation
func generateRoomCode(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = game_constants.RoomCodeCharset[rand.Intn(len(game_constants.RoomCodeCharset))]
	}
	return string(b)
}

// Ensure the generated code is unique among live rooms. Finished rooms are
// deleted, so the code space only has to cover rooms currently open.
func (r *GameRoom) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.RoomCode != "" {
		return nil
	}
	for {
		code := generateRoomCode(game_constants.RoomCodeLength)
		var existing GameRoom
		if err := tx.Where("room_code = ?", code).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				r.RoomCode = code
				return nil
			}
			return err
		}
		// Collision, loop again with a fresh code
	}
}
