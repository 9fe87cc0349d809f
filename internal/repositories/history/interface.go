package history

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/podplay/internal/repositories/history Repository

import (
	"context"
)

// Repository defines the interface for play history persistence
type Repository interface {
	// AddPlayRecord records that media started playing in a guild
	AddPlayRecord(ctx context.Context, input *AddPlayRecordInput) error

	// GetRecentPlays retrieves the most recent plays for a guild, newest first
	GetRecentPlays(ctx context.Context, input *GetRecentPlaysInput) (*GetRecentPlaysOutput, error)

	// ClearHistory removes every record for a guild
	ClearHistory(ctx context.Context, input *ClearHistoryInput) error
}
