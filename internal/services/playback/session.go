package playback

import (
	"math"
	"time"

	"github.com/KirkDiggler/podplay/internal/voice"
)

// session is the mutable playback record of one guild; only its actor touches it
type session struct {
	guildID string

	voiceChannel voice.Channel
	connection   voice.Connection
	dispatcher   voice.Dispatcher

	mediaTitle     string
	sourceURL      string
	mediaURL       string
	mediaLocalPath string

	startedPlayingAtSecond int64
}

func (s *session) state() State {
	switch {
	case s.dispatcher == nil:
		return StateIdle
	case s.dispatcher.Paused():
		return StatePaused
	default:
		return StatePlaying
	}
}

// currentSecond is the logical media position of the active run
func (s *session) currentSecond() int64 {
	return s.startedPlayingAtSecond + roundSeconds(s.dispatcher.StreamTime())
}

func (s *session) clear() {
	s.voiceChannel = nil
	s.connection = nil
	s.dispatcher = nil
	s.mediaTitle = ""
	s.sourceURL = ""
	s.mediaURL = ""
	s.mediaLocalPath = ""
	s.startedPlayingAtSecond = 0
}

func (s *session) snapshot() *Snapshot {
	snap := &Snapshot{
		GuildID:                s.guildID,
		State:                  s.state(),
		HasConnection:          s.connection != nil,
		HasDispatcher:          s.dispatcher != nil,
		MediaTitle:             s.mediaTitle,
		SourceURL:              s.sourceURL,
		MediaURL:               s.mediaURL,
		MediaLocalPath:         s.mediaLocalPath,
		StartedPlayingAtSecond: s.startedPlayingAtSecond,
	}
	if s.voiceChannel != nil {
		snap.VoiceChannelID = s.voiceChannel.ID()
	}
	return snap
}

// roundSeconds rounds half away from zero
func roundSeconds(d time.Duration) int64 {
	return int64(math.Round(d.Seconds()))
}
