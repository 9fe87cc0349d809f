package resolver

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/podplay/internal/services/resolver Service

import "context"

// Service turns a user supplied URL into a directly streamable media URL and a title
type Service interface {
	// Resolve inspects the URL and returns the media behind it
	Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error)

	// Invalidate drops the cached resolution of a URL so the next Resolve goes to the network
	Invalidate(ctx context.Context, input *InvalidateInput) error
}
