// Package voice describes the voice transport the playback session drives.
//
// A Channel is a voice channel the bot can join. Joining yields a Connection,
// and playing a local file over a Connection yields a Dispatcher, the handle of
// one playback run. Starting a new run on a Connection replaces the run that
// was active on it, once the new stream has started.
package voice

//go:generate mockgen -package=mocks -destination=mocks/mock_voice.go github.com/KirkDiggler/podplay/internal/voice Channel,Connection,Dispatcher

import (
	"context"
	"time"
)

// PlayInput describes one playback run
type PlayInput struct {
	// Path is the local file to stream
	Path string

	// Offset is the position in the file playback starts from
	Offset time.Duration
}

// Channel is a voice channel endpoint
type Channel interface {
	// ID returns the channel identifier
	ID() string

	// Join connects the bot to the channel, moving it if it is connected elsewhere in the guild
	Join(ctx context.Context) (Connection, error)

	// Leave disconnects the bot and ends any active run
	Leave() error
}

// Connection is a live voice connection
type Connection interface {
	// ChannelID returns the channel the connection is attached to
	ChannelID() string

	// Play starts streaming a local file
	Play(ctx context.Context, input *PlayInput) (Dispatcher, error)
}

// Dispatcher is the handle of one playback run
type Dispatcher interface {
	Pause()
	Resume()

	// Destroy ends the run; calling it more than once is safe
	Destroy()

	Paused() bool

	// StreamTime is how much audio has been sent in this run, excluding pauses
	StreamTime() time.Duration

	// PausedTime is how long the current pause has lasted; zero while playing
	PausedTime() time.Duration

	// Done is closed once the run has ended, naturally or by Destroy
	Done() <-chan struct{}
}
