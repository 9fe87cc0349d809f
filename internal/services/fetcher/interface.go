package fetcher

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/podplay/internal/services/fetcher Service

import "context"

// Service downloads media to local scratch storage
type Service interface {
	// Fetch streams the remote media to the destination path, replacing any existing file
	Fetch(ctx context.Context, input *FetchInput) (*FetchOutput, error)

	// Remove deletes a previously fetched file; a missing file is not an error
	Remove(ctx context.Context, input *RemoveInput) error
}
