package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/KirkDiggler/podplay/internal/common/clock"
	"github.com/KirkDiggler/podplay/internal/models"
	mediaRepo "github.com/KirkDiggler/podplay/internal/repositories/media"
)

const (
	// DefaultTimeout bounds a resolution when Config.Timeout is zero
	DefaultTimeout = 15 * time.Second

	// DefaultMaxPageBytes bounds landing page reads when Config.MaxPageBytes is zero
	DefaultMaxPageBytes = 5 << 20

	defaultUserAgent = "Mozilla/5.0 (compatible; podplay/1.0)"
)

// service implements the Service interface
type service struct {
	client       *http.Client
	mediaRepo    mediaRepo.Repository
	clock        clock.Clock
	cacheTTL     time.Duration
	timeout      time.Duration
	maxPageBytes int64
	userAgent    string
}

// New creates a new resolver service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.HTTPClient == nil {
		return nil, ErrNilHTTPClient
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.CacheTTL < 0 {
		return nil, ErrNegativeCacheTTL
	}

	if cfg.MaxPageBytes < 0 {
		return nil, ErrInvalidPageLimit
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	maxPageBytes := cfg.MaxPageBytes
	if maxPageBytes == 0 {
		maxPageBytes = DefaultMaxPageBytes
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &service{
		client:       cfg.HTTPClient,
		mediaRepo:    cfg.MediaRepo,
		clock:        cfg.Clock,
		cacheTTL:     cfg.CacheTTL,
		timeout:      timeout,
		maxPageBytes: maxPageBytes,
		userAgent:    userAgent,
	}, nil
}

// Resolve turns the input URL into a media URL and title
func (s *service) Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error) {
	if input == nil {
		return nil, ErrInvalidURL
	}

	if err := validateURL(input.URL); err != nil {
		return nil, err
	}

	if cached := s.cachedMedia(ctx, input.URL); cached != nil {
		return &ResolveOutput{
			Media:  cached,
			Cached: true,
		}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	contentType, err := s.headContentType(ctx, input.URL)
	if err != nil {
		return nil, err
	}

	media := &models.Media{
		SourceURL:  input.URL,
		ResolvedAt: s.clock.Now(),
	}

	if isPageContentType(contentType) {
		title, mediaURL, err := s.resolvePage(ctx, input.URL)
		if err != nil {
			return nil, err
		}
		media.Title = title
		media.MediaURL = mediaURL
	} else {
		media.Title = fmt.Sprintf("Podcast at %s", input.URL)
		media.MediaURL = input.URL
	}

	log.Printf("[Resolver] Resolved %s -> %q (%s)", input.URL, media.Title, media.MediaURL)
	s.cacheMedia(ctx, media)

	return &ResolveOutput{
		Media: media,
	}, nil
}

// Invalidate evicts the cached resolution for the input URL
func (s *service) Invalidate(ctx context.Context, input *InvalidateInput) error {
	if input == nil || input.URL == "" {
		return ErrInvalidURL
	}

	if s.mediaRepo == nil {
		return nil
	}

	err := s.mediaRepo.DeleteMedia(ctx, &mediaRepo.DeleteMediaInput{SourceURL: input.URL})
	if err != nil {
		return fmt.Errorf("failed to evict cached media for %s: %w", input.URL, err)
	}

	log.Printf("[Resolver] Evicted cached media for %s", input.URL)
	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidURL
	}
	return nil
}

// headContentType issues a metadata-only request and returns the content type
func (s *service) headContentType(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create HEAD request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HEAD %s failed: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: HEAD %s returned %d", ErrUnexpectedStatus, rawURL, resp.StatusCode)
	}

	return resp.Header.Get("Content-Type"), nil
}

// resolvePage downloads an HTML landing page and extracts the title and stream URL
func (s *service) resolvePage(ctx context.Context, rawURL string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", "", fmt.Errorf("failed to create GET request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("GET %s failed: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", "", fmt.Errorf("%w: GET %s returned %d", ErrUnexpectedStatus, rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxPageBytes))
	if err != nil {
		return "", "", fmt.Errorf("failed to read page %s: %w", rawURL, err)
	}
	page := string(body)

	title, ok := metaContent(page, titleMetaKey)
	if !ok {
		return "", "", ErrTitleNotFound
	}

	mediaURL, ok := metaContent(page, streamMetaKey)
	if !ok || mediaURL == "" {
		return "", "", ErrStreamNotFound
	}

	// Stream URLs are sometimes relative to the page
	if base, err := url.Parse(rawURL); err == nil {
		if ref, err := url.Parse(mediaURL); err == nil {
			mediaURL = base.ResolveReference(ref).String()
		}
	}

	return title, mediaURL, nil
}

func (s *service) cachedMedia(ctx context.Context, sourceURL string) *models.Media {
	if s.mediaRepo == nil {
		return nil
	}

	media, err := s.mediaRepo.GetMedia(ctx, &mediaRepo.GetMediaInput{
		SourceURL: sourceURL,
	})
	if err != nil {
		if !errors.Is(err, mediaRepo.ErrMediaNotFound) {
			log.Printf("[Resolver] Cache lookup failed for %s: %v", sourceURL, err)
		}
		return nil
	}

	return media
}

func (s *service) cacheMedia(ctx context.Context, media *models.Media) {
	if s.mediaRepo == nil {
		return
	}

	err := s.mediaRepo.SaveMedia(ctx, &mediaRepo.SaveMediaInput{
		Media: media,
		TTL:   s.cacheTTL,
	})
	if err != nil {
		log.Printf("[Resolver] Failed to cache %s: %v", media.SourceURL, err)
	}
}
