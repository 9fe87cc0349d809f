package playback

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/podplay/internal/services/playback Service

import "context"

// Service owns one playback session per guild and serializes every command against it
type Service interface {
	// Play resolves and fetches a URL, then streams it into the user's voice channel
	Play(ctx context.Context, input *PlayInput) (*PlayOutput, error)

	// Pause pauses the active run
	Pause(ctx context.Context, input *PauseInput) (*PauseOutput, error)

	// Resume resumes a paused run
	Resume(ctx context.Context, input *ResumeInput) (*ResumeOutput, error)

	// Stop ends the active run and leaves the voice channel
	Stop(ctx context.Context, input *StopInput) (*StopOutput, error)

	// Seek restarts the local file at an absolute or relative position
	Seek(ctx context.Context, input *SeekInput) (*SeekOutput, error)

	// Status reports the elapsed position of the active run
	Status(ctx context.Context, input *StatusInput) (*StatusOutput, error)

	// History lists the most recent plays in a guild
	History(ctx context.Context, input *HistoryInput) (*HistoryOutput, error)

	// ClearHistory forgets every recorded play in a guild
	ClearHistory(ctx context.Context, input *ClearHistoryInput) (*ClearHistoryOutput, error)

	// Snapshot copies the session fields of a guild
	Snapshot(ctx context.Context, input *SnapshotInput) (*Snapshot, error)

	// Close stops every session and its actor
	Close()
}
