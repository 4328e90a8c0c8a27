package game_constants

// Room capacity is fixed: one host plus up to three guests (human or AI)
const MaxPlayers = 4

// Room codes: 6 uppercase alphanumeric characters, typed in by kids
const RoomCodeLength = 6
const RoomCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Room status values
const (
	RoomStatusWaiting  = "waiting"
	RoomStatusPlaying  = "playing"
	RoomStatusFinished = "finished"
)

// Join request / invitation status values
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusDenied   = "denied"
)

// AIFriend is one entry of the fixed AI companion roster. The personality
// tag is cosmetic for now, gameplay does not branch on it.
type AIFriend struct {
	Name        string
	Avatar      string
	Personality string
}

var AIFriends = []AIFriend{
	{Name: "Robo", Avatar: "🤖", Personality: "logical"},
	{Name: "Spark", Avatar: "⚡", Personality: "energetic"},
	{Name: "Luna", Avatar: "🌙", Personality: "calm"},
	{Name: "Dash", Avatar: "💨", Personality: "speedy"},
	{Name: "Pixel", Avatar: "📱", Personality: "techy"},
}

const DefaultAvatar = "👤"
