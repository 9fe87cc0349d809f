package messaging

import (
	"math/rand"

	"github.com/KirkDiggler/podplay/internal/models"
	"github.com/KirkDiggler/podplay/internal/services/playback"
)

// ServiceConfig contains configuration for the messaging service
type ServiceConfig struct {
	// Rand picks between message variants; optional
	Rand *rand.Rand

	// Prefix is the command prefix shown in help and hints
	Prefix string
}

// GetPlayMessageInput contains parameters for getting a play message
type GetPlayMessageInput struct {
	Title    string
	MediaURL string

	// Replaced indicates something else was playing before
	Replaced bool
}

// GetPlayMessageOutput contains the result of getting a play message
type GetPlayMessageOutput struct {
	Message string
}

// GetPauseMessageInput contains parameters for getting a pause message
type GetPauseMessageInput struct {
	Title         string
	CurrentSecond int64
}

// GetPauseMessageOutput contains the result of getting a pause message
type GetPauseMessageOutput struct {
	Message string
}

// GetResumeMessageInput contains parameters for getting a resume message
type GetResumeMessageInput struct {
	Title         string
	CurrentSecond int64
}

// GetResumeMessageOutput contains the result of getting a resume message
type GetResumeMessageOutput struct {
	Message string
}

// GetStopMessageInput contains parameters for getting a stop message
type GetStopMessageInput struct {
	Title string
}

// GetStopMessageOutput contains the result of getting a stop message
type GetStopMessageOutput struct {
	Message string
}

// GetSeekMessageInput contains parameters for getting a seek message
type GetSeekMessageInput struct {
	Title  string
	Second int64
}

// GetSeekMessageOutput contains the result of getting a seek message
type GetSeekMessageOutput struct {
	Message string
}

// GetStatusMessageInput contains parameters for getting a status message
type GetStatusMessageInput struct {
	State         playback.State
	Title         string
	CurrentSecond int64

	// PausedSeconds is only shown while paused
	PausedSeconds int64
}

// GetStatusMessageOutput contains the result of getting a status message
type GetStatusMessageOutput struct {
	Message string
}

// GetHelpMessageInput is the input for GetHelpMessage
type GetHelpMessageInput struct{}

// GetHelpMessageOutput is the output for GetHelpMessage
type GetHelpMessageOutput struct {
	Message string
}

// GetHistoryMessageInput contains parameters for getting a history message
type GetHistoryMessageInput struct {
	// Records are the recent plays, newest first
	Records []*models.PlayRecord
}

// GetHistoryMessageOutput contains the result of getting a history message
type GetHistoryMessageOutput struct {
	Message string
}

// GetHistoryClearedMessageInput contains parameters for getting a history cleared message
type GetHistoryClearedMessageInput struct{}

// GetHistoryClearedMessageOutput contains the result of getting a history cleared message
type GetHistoryClearedMessageOutput struct {
	Message string
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	// Err is the error returned by the playback service
	Err error
}

// GetErrorMessageOutput contains the result of getting an error message
type GetErrorMessageOutput struct {
	Message string
}
