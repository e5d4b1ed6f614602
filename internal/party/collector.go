package party

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// CollectNextMessage waits for the next message a specific user sends in a
// channel. It returns false if the window closes without an answer. Used for
// the role prompt after claiming a generic slot.
func CollectNextMessage(s *discordgo.Session, channelID, userID string, timeout time.Duration) (*discordgo.Message, bool) {
	ch := make(chan *discordgo.Message, 1)

	remove := s.AddHandler(func(_ *discordgo.Session, mc *discordgo.MessageCreate) {
		if mc.ChannelID != channelID || mc.Author == nil || mc.Author.ID != userID {
			return
		}
		select {
		case ch <- mc.Message:
		default:
		}
	})
	defer remove()

	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(timeout):
		return nil, false
	}
}
