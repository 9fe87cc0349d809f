package media

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/podplay/internal/repositories/media Repository

import (
	"context"

	"github.com/KirkDiggler/podplay/internal/models"
)

// Repository caches resolved media keyed by the URL the user supplied
type Repository interface {
	// SaveMedia stores a resolution result
	SaveMedia(ctx context.Context, input *SaveMediaInput) error

	// GetMedia retrieves a cached resolution by source URL
	GetMedia(ctx context.Context, input *GetMediaInput) (*models.Media, error)

	// DeleteMedia evicts a cached resolution
	DeleteMedia(ctx context.Context, input *DeleteMediaInput) error
}
