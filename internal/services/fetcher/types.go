package fetcher

import (
	"net/http"
	"time"
)

// Config holds configuration for the fetcher service
type Config struct {
	// HTTPClient downloads the media
	HTTPClient *http.Client

	// Timeout bounds a single download; zero uses DefaultTimeout
	Timeout time.Duration

	// MaxBytes rejects downloads larger than this; zero means unlimited
	MaxBytes int64

	// UserAgent is sent with every request
	UserAgent string
}

// FetchInput contains parameters for downloading media
type FetchInput struct {
	// URL is the resolved media URL
	URL string

	// Destination is the local path the media is written to
	Destination string
}

// FetchOutput contains the result of a download
type FetchOutput struct {
	// Path is where the media now lives
	Path string

	// Bytes is the size of the downloaded file
	Bytes int64

	// ContentType is the type reported by the server
	ContentType string
}

// RemoveInput contains parameters for removing a fetched file
type RemoveInput struct {
	Path string
}
