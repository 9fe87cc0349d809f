package playback

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/KirkDiggler/podplay/internal/common/clock"
	"github.com/KirkDiggler/podplay/internal/common/uuid"
	"github.com/KirkDiggler/podplay/internal/models"
	historyRepo "github.com/KirkDiggler/podplay/internal/repositories/history"
	"github.com/KirkDiggler/podplay/internal/services/fetcher"
	"github.com/KirkDiggler/podplay/internal/services/resolver"
	"github.com/KirkDiggler/podplay/internal/voice"
)

type service struct {
	resolver    resolver.Service
	fetcher     fetcher.Service
	historyRepo historyRepo.Repository
	clock       clock.Clock
	uuid        uuid.UUID
	scratchDir  string

	mu     sync.Mutex
	closed bool
	actors map[string]*actor
}

// New creates a new playback service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.ResolverService == nil {
		return nil, ErrNilResolver
	}

	if cfg.FetcherService == nil {
		return nil, ErrNilFetcher
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	if cfg.ScratchDir == "" {
		return nil, ErrEmptyScratchDir
	}

	return &service{
		resolver:    cfg.ResolverService,
		fetcher:     cfg.FetcherService,
		historyRepo: cfg.HistoryRepo,
		clock:       cfg.Clock,
		uuid:        cfg.UUIDGenerator,
		scratchDir:  cfg.ScratchDir,
		actors:      make(map[string]*actor),
	}, nil
}

// actorFor returns the guild's actor, starting it on first use
func (s *service) actorFor(guildID string) (*actor, error) {
	if guildID == "" {
		return nil, precondition(ErrEmptyGuildID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrServiceClosed
	}

	a, ok := s.actors[guildID]
	if !ok {
		a = newActor(s, guildID)
		s.actors[guildID] = a
		go a.loop()
	}

	return a, nil
}

func (s *service) do(ctx context.Context, guildID string, fn func(*session) error) error {
	a, err := s.actorFor(guildID)
	if err != nil {
		return err
	}
	return a.run(ctx, fn)
}

func (s *service) Play(ctx context.Context, input *PlayInput) (*PlayOutput, error) {
	if input == nil {
		return nil, precondition(ErrNilInput)
	}

	var output *PlayOutput
	err := s.do(ctx, input.GuildID, func(sess *session) error {
		var err error
		output, err = s.play(ctx, sess, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

func (s *service) play(ctx context.Context, sess *session, input *PlayInput) (*PlayOutput, error) {
	if input.URL == "" {
		return nil, precondition(ErrMissingURL)
	}

	if input.VoiceChannel == nil {
		return nil, precondition(ErrNotInVoiceChannel)
	}

	media, fetched, err := s.resolveAndFetch(ctx, sess.guildID, input.URL)
	if err != nil {
		return nil, err
	}

	conn := sess.connection
	if conn == nil || conn.ChannelID() != input.VoiceChannel.ID() {
		conn, err = input.VoiceChannel.Join(ctx)
		if err != nil {
			s.removeFile(ctx, fetched.Path)
			return nil, transportFailure(fmt.Errorf("failed to join voice channel: %w", err))
		}
	}

	d, err := conn.Play(ctx, &voice.PlayInput{Path: fetched.Path})
	if err != nil {
		s.removeFile(ctx, fetched.Path)
		return nil, transportFailure(fmt.Errorf("failed to start stream: %w", err))
	}

	replaced := sess.dispatcher != nil
	if replaced {
		sess.dispatcher.Destroy()
	}
	if sess.mediaLocalPath != "" && sess.mediaLocalPath != fetched.Path {
		s.removeFile(ctx, sess.mediaLocalPath)
	}

	sess.voiceChannel = input.VoiceChannel
	sess.connection = conn
	sess.dispatcher = d
	sess.mediaTitle = media.Title
	sess.sourceURL = input.URL
	sess.mediaURL = media.MediaURL
	sess.mediaLocalPath = fetched.Path
	sess.startedPlayingAtSecond = 0

	log.Printf("[Playback] Playing %q on guild %s channel %s", media.Title, sess.guildID, input.VoiceChannel.ID())
	s.recordPlay(ctx, sess, input.UserID)

	return &PlayOutput{
		Media:    media,
		Replaced: replaced,
	}, nil
}

// resolveAndFetch downloads the media behind sourceURL. A cached resolution
// whose media can no longer be fetched is evicted and resolved once more.
func (s *service) resolveAndFetch(ctx context.Context, guildID, sourceURL string) (*models.Media, *fetcher.FetchOutput, error) {
	resolved, err := s.resolver.Resolve(ctx, &resolver.ResolveInput{URL: sourceURL})
	if err != nil {
		return nil, nil, resolutionFailure(err)
	}

	fetched, err := s.fetch(ctx, guildID, resolved.Media)
	if err != nil && resolved.Cached {
		log.Printf("[Playback] Cached media for %s failed to fetch, resolving again: %v", sourceURL, err)

		if invErr := s.resolver.Invalidate(ctx, &resolver.InvalidateInput{URL: sourceURL}); invErr != nil {
			log.Printf("[Playback] Failed to invalidate cached media for %s: %v", sourceURL, invErr)
		}

		resolved, err = s.resolver.Resolve(ctx, &resolver.ResolveInput{URL: sourceURL})
		if err != nil {
			return nil, nil, resolutionFailure(err)
		}

		fetched, err = s.fetch(ctx, guildID, resolved.Media)
	}
	if err != nil {
		return nil, nil, fetchFailure(err)
	}

	return resolved.Media, fetched, nil
}

func (s *service) fetch(ctx context.Context, guildID string, media *models.Media) (*fetcher.FetchOutput, error) {
	return s.fetcher.Fetch(ctx, &fetcher.FetchInput{
		URL:         media.MediaURL,
		Destination: s.scratchPath(guildID, media.MediaURL),
	})
}

func (s *service) Pause(ctx context.Context, input *PauseInput) (*PauseOutput, error) {
	if input == nil {
		return nil, precondition(ErrNilInput)
	}

	var output *PauseOutput
	err := s.do(ctx, input.GuildID, func(sess *session) error {
		switch sess.state() {
		case StateIdle:
			return precondition(ErrNotPlaying)
		case StatePaused:
			return precondition(ErrAlreadyPaused)
		}

		sess.dispatcher.Pause()
		output = &PauseOutput{
			Title:         sess.mediaTitle,
			CurrentSecond: sess.currentSecond(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

func (s *service) Resume(ctx context.Context, input *ResumeInput) (*ResumeOutput, error) {
	if input == nil {
		return nil, precondition(ErrNilInput)
	}

	var output *ResumeOutput
	err := s.do(ctx, input.GuildID, func(sess *session) error {
		switch sess.state() {
		case StateIdle:
			return precondition(ErrNotPlaying)
		case StatePlaying:
			return precondition(ErrNotPaused)
		}

		sess.dispatcher.Resume()
		output = &ResumeOutput{
			Title:         sess.mediaTitle,
			CurrentSecond: sess.currentSecond(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

func (s *service) Stop(ctx context.Context, input *StopInput) (*StopOutput, error) {
	if input == nil {
		return nil, precondition(ErrNilInput)
	}

	var output *StopOutput
	err := s.do(ctx, input.GuildID, func(sess *session) error {
		if sess.dispatcher == nil {
			return precondition(ErrNotPlaying)
		}

		output = &StopOutput{Title: sess.mediaTitle}
		s.release(ctx, sess)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// release destroys the run, leaves the channel and returns the session to idle
func (s *service) release(ctx context.Context, sess *session) {
	if sess.dispatcher != nil {
		sess.dispatcher.Destroy()
	}

	if sess.voiceChannel != nil {
		if err := sess.voiceChannel.Leave(); err != nil {
			log.Printf("[Playback] Failed to leave voice channel on guild %s: %v", sess.guildID, err)
		}
	}

	if sess.mediaLocalPath != "" {
		s.removeFile(ctx, sess.mediaLocalPath)
	}

	sess.clear()
}

func (s *service) Seek(ctx context.Context, input *SeekInput) (*SeekOutput, error) {
	if input == nil {
		return nil, precondition(ErrNilInput)
	}

	var output *SeekOutput
	err := s.do(ctx, input.GuildID, func(sess *session) error {
		if sess.dispatcher == nil {
			return precondition(ErrNotPlaying)
		}

		target, err := seekTarget(input.Target, sess.currentSecond())
		if err != nil {
			return precondition(err)
		}

		d, err := sess.connection.Play(ctx, &voice.PlayInput{
			Path:   sess.mediaLocalPath,
			Offset: time.Duration(target) * time.Second,
		})
		if err != nil {
			return transportFailure(fmt.Errorf("failed to seek to %ds: %w", target, err))
		}

		sess.dispatcher.Destroy()
		sess.dispatcher = d
		sess.startedPlayingAtSecond = target

		log.Printf("[Playback] Seeked %q to %ds on guild %s", sess.mediaTitle, target, sess.guildID)
		output = &SeekOutput{
			Title:                  sess.mediaTitle,
			StartedPlayingAtSecond: target,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

func (s *service) Status(ctx context.Context, input *StatusInput) (*StatusOutput, error) {
	if input == nil {
		return nil, precondition(ErrNilInput)
	}

	var output *StatusOutput
	err := s.do(ctx, input.GuildID, func(sess *session) error {
		state := sess.state()
		if state == StateIdle {
			return precondition(ErrNotPlaying)
		}

		output = &StatusOutput{
			State:         state,
			Title:         sess.mediaTitle,
			MediaURL:      sess.mediaURL,
			CurrentSecond: sess.currentSecond(),
		}
		if state == StatePaused {
			output.PausedSeconds = roundSeconds(sess.dispatcher.PausedTime())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

func (s *service) Snapshot(ctx context.Context, input *SnapshotInput) (*Snapshot, error) {
	if input == nil {
		return nil, precondition(ErrNilInput)
	}

	var snap *Snapshot
	err := s.do(ctx, input.GuildID, func(sess *session) error {
		snap = sess.snapshot()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return snap, nil
}

func (s *service) History(ctx context.Context, input *HistoryInput) (*HistoryOutput, error) {
	if input == nil {
		return nil, precondition(ErrNilInput)
	}

	if input.GuildID == "" {
		return nil, precondition(ErrEmptyGuildID)
	}

	if s.historyRepo == nil {
		return &HistoryOutput{}, nil
	}

	recent, err := s.historyRepo.GetRecentPlays(ctx, &historyRepo.GetRecentPlaysInput{
		GuildID: input.GuildID,
		Limit:   input.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get play history: %w", err)
	}

	return &HistoryOutput{Records: recent.Records}, nil
}

func (s *service) ClearHistory(ctx context.Context, input *ClearHistoryInput) (*ClearHistoryOutput, error) {
	if input == nil {
		return nil, precondition(ErrNilInput)
	}

	if input.GuildID == "" {
		return nil, precondition(ErrEmptyGuildID)
	}

	if s.historyRepo == nil {
		return &ClearHistoryOutput{}, nil
	}

	err := s.historyRepo.ClearHistory(ctx, &historyRepo.ClearHistoryInput{GuildID: input.GuildID})
	if err != nil {
		return nil, fmt.Errorf("failed to clear play history: %w", err)
	}

	log.Printf("[Playback] Cleared play history on guild %s", input.GuildID)
	return &ClearHistoryOutput{}, nil
}

// Close stops every actor; active sessions are released first
func (s *service) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	actors := make([]*actor, 0, len(s.actors))
	for _, a := range s.actors {
		actors = append(actors, a)
	}
	s.mu.Unlock()

	for _, a := range actors {
		close(a.quit)
	}
	for _, a := range actors {
		<-a.done
	}
}

// scratchPath is unique per play so overlapping fetches never share a file
func (s *service) scratchPath(guildID, mediaURL string) string {
	name := guildID + "-" + s.uuid.NewUUID() + mediaExtension(mediaURL)
	return filepath.Join(s.scratchDir, name)
}

func (s *service) removeFile(ctx context.Context, filePath string) {
	if err := s.fetcher.Remove(ctx, &fetcher.RemoveInput{Path: filePath}); err != nil {
		log.Printf("[Playback] Failed to remove %s: %v", filePath, err)
	}
}

func (s *service) recordPlay(ctx context.Context, sess *session, userID string) {
	if s.historyRepo == nil {
		return
	}

	err := s.historyRepo.AddPlayRecord(ctx, &historyRepo.AddPlayRecordInput{
		Record: &models.PlayRecord{
			ID:        s.uuid.NewUUID(),
			GuildID:   sess.guildID,
			UserID:    userID,
			Title:     sess.mediaTitle,
			SourceURL: sess.sourceURL,
			MediaURL:  sess.mediaURL,
			PlayedAt:  s.clock.Now(),
		},
	})
	if err != nil {
		log.Printf("[Playback] Failed to record play on guild %s: %v", sess.guildID, err)
	}
}

// mediaExtension keeps a short alphanumeric extension from the media URL path
func mediaExtension(mediaURL string) string {
	u, err := url.Parse(mediaURL)
	if err != nil {
		return ""
	}

	ext := path.Ext(u.Path)
	if len(ext) < 2 || len(ext) > 6 {
		return ""
	}
	for _, r := range ext[1:] {
		if !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9') {
			return ""
		}
	}
	return ext
}
