package media

import (
	"time"

	"github.com/KirkDiggler/podplay/internal/models"
)

type SaveMediaInput struct {
	Media *models.Media

	// TTL is how long the entry lives; zero means no expiration
	TTL time.Duration
}

type GetMediaInput struct {
	SourceURL string
}

type DeleteMediaInput struct {
	SourceURL string
}
