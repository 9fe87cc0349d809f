package messaging

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetPlayMessage returns a message for when playback starts
	GetPlayMessage(ctx context.Context, input *GetPlayMessageInput) (*GetPlayMessageOutput, error)

	// GetPauseMessage returns a message for when playback is paused
	GetPauseMessage(ctx context.Context, input *GetPauseMessageInput) (*GetPauseMessageOutput, error)

	// GetResumeMessage returns a message for when playback is resumed
	GetResumeMessage(ctx context.Context, input *GetResumeMessageInput) (*GetResumeMessageOutput, error)

	// GetStopMessage returns a message for when playback is stopped
	GetStopMessage(ctx context.Context, input *GetStopMessageInput) (*GetStopMessageOutput, error)

	// GetSeekMessage returns a message for when playback jumps to a new position
	GetSeekMessage(ctx context.Context, input *GetSeekMessageInput) (*GetSeekMessageOutput, error)

	// GetStatusMessage returns the current position of playback
	GetStatusMessage(ctx context.Context, input *GetStatusMessageInput) (*GetStatusMessageOutput, error)

	// GetHelpMessage lists every command
	GetHelpMessage(ctx context.Context, input *GetHelpMessageInput) (*GetHelpMessageOutput, error)

	// GetHistoryMessage lists recent plays
	GetHistoryMessage(ctx context.Context, input *GetHistoryMessageInput) (*GetHistoryMessageOutput, error)

	// GetHistoryClearedMessage confirms the history was cleared
	GetHistoryClearedMessage(ctx context.Context, input *GetHistoryClearedMessageInput) (*GetHistoryClearedMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
