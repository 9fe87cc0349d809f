package models

import (
	"time"
)

// Media is the result of resolving a user supplied URL into something playable
type Media struct {
	// SourceURL is the URL exactly as the user gave it
	SourceURL string

	// MediaURL is the direct URL of the audio stream
	MediaURL string

	// Title is the display title shown in replies
	Title string

	// ResolvedAt is when the resolution happened
	ResolvedAt time.Time
}
