package resolver

import (
	"net/http"
	"time"

	"github.com/KirkDiggler/podplay/internal/common/clock"
	"github.com/KirkDiggler/podplay/internal/models"
	mediaRepo "github.com/KirkDiggler/podplay/internal/repositories/media"
)

// Config holds configuration for the resolver service
type Config struct {
	// HTTPClient issues the HEAD and GET requests
	HTTPClient *http.Client

	// MediaRepo caches results; optional
	MediaRepo mediaRepo.Repository

	// CacheTTL is how long cached results live
	CacheTTL time.Duration

	// Timeout bounds a whole resolution; zero uses DefaultTimeout
	Timeout time.Duration

	// MaxPageBytes bounds how much of a landing page is read; zero uses DefaultMaxPageBytes
	MaxPageBytes int64

	// UserAgent is sent with every request
	UserAgent string

	Clock clock.Clock
}

// ResolveInput contains parameters for resolving a URL
type ResolveInput struct {
	// URL is the address the user supplied
	URL string
}

// ResolveOutput contains the resolved media
type ResolveOutput struct {
	Media *models.Media

	// Cached indicates the result came from the media repository
	Cached bool
}

// InvalidateInput contains parameters for evicting a cached resolution
type InvalidateInput struct {
	// URL is the address the user supplied
	URL string
}
