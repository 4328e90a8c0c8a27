package rooms

import (
	"math/rand"

	game_constants "StoryPals/constants/game"
)

// PickAIFriend selects one persona at random from the fixed AI roster. It is
// applied at room creation when the host invited nobody, so a lone child
// never waits in an empty lobby.
func PickAIFriend() game_constants.AIFriend {
	return game_constants.AIFriends[rand.Intn(len(game_constants.AIFriends))]
}
