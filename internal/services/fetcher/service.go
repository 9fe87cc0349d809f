package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultTimeout bounds a download when Config.Timeout is zero
	DefaultTimeout = 10 * time.Minute

	partialSuffix    = ".part"
	defaultUserAgent = "Mozilla/5.0 (compatible; podplay/1.0)"
)

// service implements the Service interface
type service struct {
	client    *http.Client
	timeout   time.Duration
	maxBytes  int64
	userAgent string
}

// New creates a new fetcher service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.HTTPClient == nil {
		return nil, ErrNilHTTPClient
	}

	if cfg.MaxBytes < 0 {
		return nil, ErrNegativeMaxBytes
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &service{
		client:    cfg.HTTPClient,
		timeout:   timeout,
		maxBytes:  cfg.MaxBytes,
		userAgent: userAgent,
	}, nil
}

// Fetch downloads into a sibling ".part" file and renames it into place, so
// the destination only ever holds a complete download
func (s *service) Fetch(ctx context.Context, input *FetchInput) (*FetchOutput, error) {
	if input == nil || input.URL == "" {
		return nil, ErrEmptyURL
	}

	if input.Destination == "" {
		return nil, ErrEmptyDestination
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, input.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s failed: %w", input.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: GET %s returned %d", ErrUnexpectedStatus, input.URL, resp.StatusCode)
	}

	if s.maxBytes > 0 && resp.ContentLength > s.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, resp.ContentLength)
	}

	if err := os.MkdirAll(filepath.Dir(input.Destination), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}

	partial := input.Destination + partialSuffix
	written, err := s.writeBody(partial, resp.Body)
	if err != nil {
		_ = os.Remove(partial)
		return nil, err
	}

	if err := os.Rename(partial, input.Destination); err != nil {
		_ = os.Remove(partial)
		return nil, fmt.Errorf("failed to move download into place: %w", err)
	}

	log.Printf("[Fetcher] Downloaded %s -> %s (%d bytes)", input.URL, input.Destination, written)

	return &FetchOutput{
		Path:        input.Destination,
		Bytes:       written,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

func (s *service) writeBody(path string, body io.Reader) (int64, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}

	reader := body
	if s.maxBytes > 0 {
		// One extra byte tells an oversized body apart from one that fits exactly
		reader = io.LimitReader(body, s.maxBytes+1)
	}

	written, copyErr := io.Copy(file, reader)
	closeErr := file.Close()

	if copyErr != nil {
		return written, fmt.Errorf("failed to download media: %w", copyErr)
	}
	if closeErr != nil {
		return written, fmt.Errorf("failed to write %s: %w", path, closeErr)
	}
	if s.maxBytes > 0 && written > s.maxBytes {
		return written, ErrTooLarge
	}

	return written, nil
}

// Remove deletes a fetched file
func (s *service) Remove(ctx context.Context, input *RemoveInput) error {
	if input == nil || input.Path == "" {
		return ErrEmptyDestination
	}

	if err := os.Remove(input.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", input.Path, err)
	}

	return nil
}
