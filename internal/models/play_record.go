package models

import (
	"time"
)

// PlayRecord is one entry in a guild's play history
type PlayRecord struct {
	// ID is the unique identifier for the record
	ID string

	// GuildID is the Discord server the media was played in
	GuildID string

	// UserID is the Discord user who issued the play command
	UserID string

	// Title is the display title of the media
	Title string

	// SourceURL is the URL the user supplied
	SourceURL string

	// MediaURL is the resolved stream URL
	MediaURL string

	// PlayedAt is when playback started
	PlayedAt time.Time
}
