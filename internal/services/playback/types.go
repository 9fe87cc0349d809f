package playback

import (
	"github.com/KirkDiggler/podplay/internal/common/clock"
	"github.com/KirkDiggler/podplay/internal/common/uuid"
	"github.com/KirkDiggler/podplay/internal/models"
	historyRepo "github.com/KirkDiggler/podplay/internal/repositories/history"
	"github.com/KirkDiggler/podplay/internal/services/fetcher"
	"github.com/KirkDiggler/podplay/internal/services/resolver"
	"github.com/KirkDiggler/podplay/internal/voice"
)

// Config holds configuration for the playback service
type Config struct {
	ResolverService resolver.Service
	FetcherService  fetcher.Service

	// HistoryRepo records every successful play; optional
	HistoryRepo historyRepo.Repository

	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// ScratchDir is where fetched media is written
	ScratchDir string
}

// State is the derived state of a session
type State string

const (
	StateIdle    State = "idle"
	StatePlaying State = "playing"
	StatePaused  State = "paused"
)

// Snapshot is a copy of a guild's session fields
type Snapshot struct {
	GuildID string
	State   State

	// VoiceChannelID is empty while idle
	VoiceChannelID string

	HasConnection bool
	HasDispatcher bool

	MediaTitle     string
	SourceURL      string
	MediaURL       string
	MediaLocalPath string

	// StartedPlayingAtSecond is the media position the current run started from
	StartedPlayingAtSecond int64
}

// PlayInput contains parameters for starting playback
type PlayInput struct {
	GuildID string

	// UserID is the user who issued the command
	UserID string

	// URL is the page or media address to play
	URL string

	// VoiceChannel is the user's current voice channel; nil if they are not in one
	VoiceChannel voice.Channel
}

// PlayOutput contains the media that started playing
type PlayOutput struct {
	Media *models.Media

	// Replaced indicates another run was active and has been superseded
	Replaced bool
}

// PauseInput contains parameters for pausing playback
type PauseInput struct {
	GuildID string
}

// PauseOutput contains the position playback was paused at
type PauseOutput struct {
	Title         string
	CurrentSecond int64
}

// ResumeInput contains parameters for resuming playback
type ResumeInput struct {
	GuildID string
}

// ResumeOutput contains the position playback resumed from
type ResumeOutput struct {
	Title         string
	CurrentSecond int64
}

// StopInput contains parameters for stopping playback
type StopInput struct {
	GuildID string
}

// StopOutput contains the media that was stopped
type StopOutput struct {
	Title string
}

// SeekInput contains parameters for seeking
type SeekInput struct {
	GuildID string

	// Target is an absolute position, or a delta when prefixed with + or -
	Target string
}

// SeekOutput contains the position playback restarted from
type SeekOutput struct {
	Title                  string
	StartedPlayingAtSecond int64
}

// StatusInput contains parameters for reporting status
type StatusInput struct {
	GuildID string
}

// StatusOutput contains the elapsed position of the active run
type StatusOutput struct {
	State    State
	Title    string
	MediaURL string

	// CurrentSecond is the logical position in the media
	CurrentSecond int64

	// PausedSeconds is how long the current pause has lasted; zero while playing
	PausedSeconds int64
}

// HistoryInput contains parameters for listing recent plays
type HistoryInput struct {
	GuildID string
	Limit   int
}

// HistoryOutput contains recent plays, newest first
type HistoryOutput struct {
	Records []*models.PlayRecord
}

// ClearHistoryInput contains parameters for forgetting a guild's plays
type ClearHistoryInput struct {
	GuildID string
}

// ClearHistoryOutput is returned once the history is gone
type ClearHistoryOutput struct{}

// SnapshotInput contains parameters for copying a session
type SnapshotInput struct {
	GuildID string
}
