package discord

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

// messageEvent is the part of a created message the bot acts on
type messageEvent struct {
	GuildID   string
	ChannelID string
	UserID    string
	IsBot     bool
	Content   string
}

func newMessageEvent(m *discordgo.MessageCreate) *messageEvent {
	event := &messageEvent{
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		Content:   m.Content,
	}
	if m.Author != nil {
		event.UserID = m.Author.ID
		event.IsBot = m.Author.Bot
	}
	return event
}

// messageReply answers a message in its channel, referencing it
type messageReply struct {
	session   *discordgo.Session
	channelID string
	reference *discordgo.MessageReference
}

func newMessageReply(s *discordgo.Session, m *discordgo.MessageCreate) *messageReply {
	return &messageReply{
		session:   s,
		channelID: m.ChannelID,
		reference: m.Reference(),
	}
}

// Reply sends text; delivery failures are logged
func (r *messageReply) Reply(text string) {
	if _, err := r.session.ChannelMessageSendReply(r.channelID, text, r.reference); err != nil {
		log.Printf("[Bot] Failed to reply in channel %s: %v", r.channelID, err)
	}
}
