package playback

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	clockMocks "github.com/KirkDiggler/podplay/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/podplay/internal/common/uuid/mocks"
	"github.com/KirkDiggler/podplay/internal/models"
	historyRepo "github.com/KirkDiggler/podplay/internal/repositories/history"
	historyMocks "github.com/KirkDiggler/podplay/internal/repositories/history/mocks"
	"github.com/KirkDiggler/podplay/internal/services/fetcher"
	fetcherMocks "github.com/KirkDiggler/podplay/internal/services/fetcher/mocks"
	"github.com/KirkDiggler/podplay/internal/services/resolver"
	resolverMocks "github.com/KirkDiggler/podplay/internal/services/resolver/mocks"
	"github.com/KirkDiggler/podplay/internal/voice"
	voiceMocks "github.com/KirkDiggler/podplay/internal/voice/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// run is a mocked dispatcher with observable pause state and stream time
type run struct {
	mock   *voiceMocks.MockDispatcher
	done   chan struct{}
	paused bool
	stream time.Duration
	pause  time.Duration
}

type PlaybackServiceTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockResolver *resolverMocks.MockService
	mockFetcher  *fetcherMocks.MockService
	mockHistory  *historyMocks.MockRepository
	mockClock    *clockMocks.MockClock
	mockUUID     *uuidMocks.MockUUID
	mockChannel  *voiceMocks.MockChannel
	mockConn     *voiceMocks.MockConnection
	service      *service
	ctx          context.Context

	uuidCount int

	testTime      time.Time
	testGuildID   string
	testUserID    string
	testChannelID string
	testPageURL   string
	testMediaURL  string
	testTitle     string
	testScratch   string
	testMedia     *models.Media
}

func (s *PlaybackServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockResolver = resolverMocks.NewMockService(s.mockCtrl)
	s.mockFetcher = fetcherMocks.NewMockService(s.mockCtrl)
	s.mockHistory = historyMocks.NewMockRepository(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.mockChannel = voiceMocks.NewMockChannel(s.mockCtrl)
	s.mockConn = voiceMocks.NewMockConnection(s.mockCtrl)
	s.ctx = context.Background()

	s.testTime = time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	s.testGuildID = "test-guild-id"
	s.testUserID = "test-user-id"
	s.testChannelID = "test-channel-id"
	s.testPageURL = "https://example.com/episodes/1"
	s.testMediaURL = "https://cdn.example.com/ep.mp3"
	s.testTitle = "My Episode"
	s.testScratch = "/tmp/podplay"
	s.testMedia = &models.Media{
		SourceURL: s.testPageURL,
		MediaURL:  s.testMediaURL,
		Title:     s.testTitle,
	}

	s.uuidCount = 0
	s.mockUUID.EXPECT().NewUUID().DoAndReturn(func() string {
		s.uuidCount++
		return fmt.Sprintf("uuid-%d", s.uuidCount)
	}).AnyTimes()
	s.mockChannel.EXPECT().ID().Return(s.testChannelID).AnyTimes()
	s.mockConn.EXPECT().ChannelID().Return(s.testChannelID).AnyTimes()

	svc, err := New(&Config{
		ResolverService: s.mockResolver,
		FetcherService:  s.mockFetcher,
		Clock:           s.mockClock,
		UUIDGenerator:   s.mockUUID,
		ScratchDir:      s.testScratch,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *PlaybackServiceTestSuite) TearDownTest() {
	s.service.Close()
	s.mockCtrl.Finish()
}

func (s *PlaybackServiceTestSuite) localPath(n int) string {
	return filepath.Join(s.testScratch, fmt.Sprintf("%s-uuid-%d.mp3", s.testGuildID, n))
}

func (s *PlaybackServiceTestSuite) newRun() *run {
	r := &run{
		mock: voiceMocks.NewMockDispatcher(s.mockCtrl),
		done: make(chan struct{}),
	}
	r.mock.EXPECT().Done().Return((<-chan struct{})(r.done)).AnyTimes()
	r.mock.EXPECT().Paused().DoAndReturn(func() bool { return r.paused }).AnyTimes()
	r.mock.EXPECT().StreamTime().DoAndReturn(func() time.Duration { return r.stream }).AnyTimes()
	r.mock.EXPECT().PausedTime().DoAndReturn(func() time.Duration { return r.pause }).AnyTimes()
	return r
}

// expectPlay sets up a successful play of the test page into the nth scratch file
func (s *PlaybackServiceTestSuite) expectPlay(n int, join bool, r *run) {
	s.mockResolver.EXPECT().
		Resolve(gomock.Any(), &resolver.ResolveInput{URL: s.testPageURL}).
		Return(&resolver.ResolveOutput{Media: s.testMedia}, nil)
	s.mockFetcher.EXPECT().
		Fetch(gomock.Any(), &fetcher.FetchInput{URL: s.testMediaURL, Destination: s.localPath(n)}).
		Return(&fetcher.FetchOutput{Path: s.localPath(n), Bytes: 1024, ContentType: "audio/mpeg"}, nil)
	if join {
		s.mockChannel.EXPECT().Join(gomock.Any()).Return(s.mockConn, nil)
	}
	s.mockConn.EXPECT().
		Play(gomock.Any(), &voice.PlayInput{Path: s.localPath(n)}).
		Return(r.mock, nil)
}

func (s *PlaybackServiceTestSuite) expectRelease(r *run, path string) {
	r.mock.EXPECT().Destroy()
	s.mockChannel.EXPECT().Leave().Return(nil)
	s.mockFetcher.EXPECT().Remove(gomock.Any(), &fetcher.RemoveInput{Path: path}).Return(nil)
}

func (s *PlaybackServiceTestSuite) play() {
	_, err := s.service.Play(s.ctx, &PlayInput{
		GuildID:      s.testGuildID,
		UserID:       s.testUserID,
		URL:          s.testPageURL,
		VoiceChannel: s.mockChannel,
	})
	s.Require().NoError(err)
}

func (s *PlaybackServiceTestSuite) snapshot() *Snapshot {
	snap, err := s.service.Snapshot(s.ctx, &SnapshotInput{GuildID: s.testGuildID})
	s.Require().NoError(err)
	return snap
}

func (s *PlaybackServiceTestSuite) idle() *Snapshot {
	return &Snapshot{GuildID: s.testGuildID, State: StateIdle}
}

func (s *PlaybackServiceTestSuite) requirePrecondition(err error, target error) {
	s.Require().Error(err)
	s.Equal(KindPrecondition, KindOf(err))
	s.ErrorIs(err, target)
}

func (s *PlaybackServiceTestSuite) TestNewValidatesConfig() {
	base := Config{
		ResolverService: s.mockResolver,
		FetcherService:  s.mockFetcher,
		Clock:           s.mockClock,
		UUIDGenerator:   s.mockUUID,
		ScratchDir:      s.testScratch,
	}

	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	cfg := base
	cfg.ResolverService = nil
	_, err = New(&cfg)
	s.ErrorIs(err, ErrNilResolver)

	cfg = base
	cfg.FetcherService = nil
	_, err = New(&cfg)
	s.ErrorIs(err, ErrNilFetcher)

	cfg = base
	cfg.Clock = nil
	_, err = New(&cfg)
	s.ErrorIs(err, ErrNilClock)

	cfg = base
	cfg.UUIDGenerator = nil
	_, err = New(&cfg)
	s.ErrorIs(err, ErrNilUUIDGenerator)

	cfg = base
	cfg.ScratchDir = ""
	_, err = New(&cfg)
	s.ErrorIs(err, ErrEmptyScratchDir)
}

func (s *PlaybackServiceTestSuite) TestPauseAndResumeWhileIdle() {
	for i := 0; i < 3; i++ {
		_, err := s.service.Pause(s.ctx, &PauseInput{GuildID: s.testGuildID})
		s.requirePrecondition(err, ErrNotPlaying)

		_, err = s.service.Resume(s.ctx, &ResumeInput{GuildID: s.testGuildID})
		s.requirePrecondition(err, ErrNotPlaying)
	}

	s.Equal(s.idle(), s.snapshot())
}

func (s *PlaybackServiceTestSuite) TestIdleStopSeekStatus() {
	_, err := s.service.Stop(s.ctx, &StopInput{GuildID: s.testGuildID})
	s.requirePrecondition(err, ErrNotPlaying)

	_, err = s.service.Seek(s.ctx, &SeekInput{GuildID: s.testGuildID, Target: "42"})
	s.requirePrecondition(err, ErrNotPlaying)

	_, err = s.service.Status(s.ctx, &StatusInput{GuildID: s.testGuildID})
	s.requirePrecondition(err, ErrNotPlaying)

	s.Equal(s.idle(), s.snapshot())
}

func (s *PlaybackServiceTestSuite) TestEmptyGuildID() {
	_, err := s.service.Status(s.ctx, &StatusInput{})
	s.requirePrecondition(err, ErrEmptyGuildID)

	_, err = s.service.Play(s.ctx, &PlayInput{URL: s.testPageURL, VoiceChannel: s.mockChannel})
	s.requirePrecondition(err, ErrEmptyGuildID)

	_, err = s.service.History(s.ctx, &HistoryInput{})
	s.requirePrecondition(err, ErrEmptyGuildID)

	_, err = s.service.ClearHistory(s.ctx, &ClearHistoryInput{})
	s.requirePrecondition(err, ErrEmptyGuildID)
}

func (s *PlaybackServiceTestSuite) TestNilInputs() {
	var err error

	_, err = s.service.Play(s.ctx, nil)
	s.requirePrecondition(err, ErrNilInput)
	_, err = s.service.Pause(s.ctx, nil)
	s.requirePrecondition(err, ErrNilInput)
	_, err = s.service.Resume(s.ctx, nil)
	s.requirePrecondition(err, ErrNilInput)
	_, err = s.service.Stop(s.ctx, nil)
	s.requirePrecondition(err, ErrNilInput)
	_, err = s.service.Seek(s.ctx, nil)
	s.requirePrecondition(err, ErrNilInput)
	_, err = s.service.Status(s.ctx, nil)
	s.requirePrecondition(err, ErrNilInput)
	_, err = s.service.History(s.ctx, nil)
	s.requirePrecondition(err, ErrNilInput)
	_, err = s.service.ClearHistory(s.ctx, nil)
	s.requirePrecondition(err, ErrNilInput)
	_, err = s.service.Snapshot(s.ctx, nil)
	s.requirePrecondition(err, ErrNilInput)
}

func (s *PlaybackServiceTestSuite) TestPlayCommitsSession() {
	r := s.newRun()
	s.expectPlay(1, true, r)

	output, err := s.service.Play(s.ctx, &PlayInput{
		GuildID:      s.testGuildID,
		UserID:       s.testUserID,
		URL:          s.testPageURL,
		VoiceChannel: s.mockChannel,
	})
	s.Require().NoError(err)
	s.Equal(s.testMedia, output.Media)
	s.False(output.Replaced)

	s.Equal(&Snapshot{
		GuildID:                s.testGuildID,
		State:                  StatePlaying,
		VoiceChannelID:         s.testChannelID,
		HasConnection:          true,
		HasDispatcher:          true,
		MediaTitle:             s.testTitle,
		SourceURL:              s.testPageURL,
		MediaURL:               s.testMediaURL,
		MediaLocalPath:         s.localPath(1),
		StartedPlayingAtSecond: 0,
	}, s.snapshot())

	s.expectRelease(r, s.localPath(1))
}

func (s *PlaybackServiceTestSuite) TestPlayThenStopReturnsToIdle() {
	r := s.newRun()
	s.expectPlay(1, true, r)
	s.play()

	s.expectRelease(r, s.localPath(1))
	output, err := s.service.Stop(s.ctx, &StopInput{GuildID: s.testGuildID})
	s.Require().NoError(err)
	s.Equal(s.testTitle, output.Title)

	s.Equal(s.idle(), s.snapshot())
}

func (s *PlaybackServiceTestSuite) TestStopIgnoresLeaveError() {
	r := s.newRun()
	s.expectPlay(1, true, r)
	s.play()

	r.mock.EXPECT().Destroy()
	s.mockChannel.EXPECT().Leave().Return(errors.New("gateway gone"))
	s.mockFetcher.EXPECT().Remove(gomock.Any(), &fetcher.RemoveInput{Path: s.localPath(1)}).Return(nil)

	_, err := s.service.Stop(s.ctx, &StopInput{GuildID: s.testGuildID})
	s.Require().NoError(err)
	s.Equal(s.idle(), s.snapshot())
}

func (s *PlaybackServiceTestSuite) TestPlayRequiresVoiceChannel() {
	_, err := s.service.Play(s.ctx, &PlayInput{
		GuildID: s.testGuildID,
		URL:     s.testPageURL,
	})
	s.requirePrecondition(err, ErrNotInVoiceChannel)
	s.Equal(s.idle(), s.snapshot())
}

func (s *PlaybackServiceTestSuite) TestPlayRequiresURL() {
	_, err := s.service.Play(s.ctx, &PlayInput{
		GuildID:      s.testGuildID,
		VoiceChannel: s.mockChannel,
	})
	s.requirePrecondition(err, ErrMissingURL)
}

func (s *PlaybackServiceTestSuite) TestResolutionFailureLeavesSessionUntouched() {
	s.mockResolver.EXPECT().
		Resolve(gomock.Any(), &resolver.ResolveInput{URL: s.testPageURL}).
		Return(nil, resolver.ErrStreamNotFound)

	_, err := s.service.Play(s.ctx, &PlayInput{
		GuildID:      s.testGuildID,
		URL:          s.testPageURL,
		VoiceChannel: s.mockChannel,
	})
	s.Require().Error(err)
	s.Equal(KindResolution, KindOf(err))
	s.ErrorIs(err, resolver.ErrStreamNotFound)

	s.Equal(s.idle(), s.snapshot())
}

func (s *PlaybackServiceTestSuite) TestResolutionFailureWhilePlayingKeepsRun() {
	r := s.newRun()
	s.expectPlay(1, true, r)
	s.play()
	before := s.snapshot()

	s.mockResolver.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		Return(nil, resolver.ErrTitleNotFound)

	_, err := s.service.Play(s.ctx, &PlayInput{
		GuildID:      s.testGuildID,
		URL:          "https://example.com/other",
		VoiceChannel: s.mockChannel,
	})
	s.Equal(KindResolution, KindOf(err))
	s.Equal(before, s.snapshot())

	s.expectRelease(r, s.localPath(1))
}

func (s *PlaybackServiceTestSuite) TestFetchFailure() {
	s.mockResolver.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		Return(&resolver.ResolveOutput{Media: s.testMedia}, nil)
	s.mockFetcher.EXPECT().
		Fetch(gomock.Any(), gomock.Any()).
		Return(nil, fetcher.ErrUnexpectedStatus)

	_, err := s.service.Play(s.ctx, &PlayInput{
		GuildID:      s.testGuildID,
		URL:          s.testPageURL,
		VoiceChannel: s.mockChannel,
	})
	s.Equal(KindFetch, KindOf(err))
	s.ErrorIs(err, fetcher.ErrUnexpectedStatus)
	s.Equal(s.idle(), s.snapshot())
}

func (s *PlaybackServiceTestSuite) TestStaleCachedMediaIsResolvedAgain() {
	stale := &models.Media{
		SourceURL: s.testPageURL,
		MediaURL:  "https://cdn.example.com/expired.mp3",
		Title:     s.testTitle,
	}
	r := s.newRun()

	gomock.InOrder(
		s.mockResolver.EXPECT().
			Resolve(gomock.Any(), &resolver.ResolveInput{URL: s.testPageURL}).
			Return(&resolver.ResolveOutput{Media: stale, Cached: true}, nil),
		s.mockFetcher.EXPECT().
			Fetch(gomock.Any(), &fetcher.FetchInput{
				URL:         stale.MediaURL,
				Destination: filepath.Join(s.testScratch, s.testGuildID+"-uuid-1.mp3"),
			}).
			Return(nil, fetcher.ErrUnexpectedStatus),
		s.mockResolver.EXPECT().
			Invalidate(gomock.Any(), &resolver.InvalidateInput{URL: s.testPageURL}).
			Return(nil),
		s.mockResolver.EXPECT().
			Resolve(gomock.Any(), &resolver.ResolveInput{URL: s.testPageURL}).
			Return(&resolver.ResolveOutput{Media: s.testMedia}, nil),
		s.mockFetcher.EXPECT().
			Fetch(gomock.Any(), &fetcher.FetchInput{URL: s.testMediaURL, Destination: s.localPath(2)}).
			Return(&fetcher.FetchOutput{Path: s.localPath(2)}, nil),
	)
	s.mockChannel.EXPECT().Join(gomock.Any()).Return(s.mockConn, nil)
	s.mockConn.EXPECT().Play(gomock.Any(), &voice.PlayInput{Path: s.localPath(2)}).Return(r.mock, nil)

	output, err := s.service.Play(s.ctx, &PlayInput{
		GuildID:      s.testGuildID,
		URL:          s.testPageURL,
		VoiceChannel: s.mockChannel,
	})
	s.Require().NoError(err)
	s.Equal(s.testMedia, output.Media)
	s.Equal(s.testMediaURL, s.snapshot().MediaURL)

	s.expectRelease(r, s.localPath(2))
}

func (s *PlaybackServiceTestSuite) TestStaleCachedMediaStillUnfetchable() {
	s.mockResolver.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		Return(&resolver.ResolveOutput{Media: s.testMedia, Cached: true}, nil)
	s.mockResolver.EXPECT().
		Invalidate(gomock.Any(), &resolver.InvalidateInput{URL: s.testPageURL}).
		Return(errors.New("redis down"))
	s.mockResolver.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		Return(&resolver.ResolveOutput{Media: s.testMedia}, nil)
	s.mockFetcher.EXPECT().
		Fetch(gomock.Any(), gomock.Any()).
		Return(nil, fetcher.ErrUnexpectedStatus).
		Times(2)

	_, err := s.service.Play(s.ctx, &PlayInput{
		GuildID:      s.testGuildID,
		URL:          s.testPageURL,
		VoiceChannel: s.mockChannel,
	})
	s.Equal(KindFetch, KindOf(err))
	s.Equal(s.idle(), s.snapshot())
}

func (s *PlaybackServiceTestSuite) TestJoinFailureRemovesFetchedFile() {
	s.mockResolver.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		Return(&resolver.ResolveOutput{Media: s.testMedia}, nil)
	s.mockFetcher.EXPECT().
		Fetch(gomock.Any(), gomock.Any()).
		Return(&fetcher.FetchOutput{Path: s.localPath(1)}, nil)
	s.mockChannel.EXPECT().Join(gomock.Any()).Return(nil, errors.New("missing permissions"))
	s.mockFetcher.EXPECT().Remove(gomock.Any(), &fetcher.RemoveInput{Path: s.localPath(1)}).Return(nil)

	_, err := s.service.Play(s.ctx, &PlayInput{
		GuildID:      s.testGuildID,
		URL:          s.testPageURL,
		VoiceChannel: s.mockChannel,
	})
	s.Equal(KindTransport, KindOf(err))
	s.Equal(s.idle(), s.snapshot())
}

func (s *PlaybackServiceTestSuite) TestPlayWhilePlayingReplacesMedia() {
	first := s.newRun()
	s.expectPlay(1, true, first)
	s.play()

	second := s.newRun()
	s.expectPlay(2, false, second)
	first.mock.EXPECT().Destroy()
	s.mockFetcher.EXPECT().Remove(gomock.Any(), &fetcher.RemoveInput{Path: s.localPath(1)}).Return(nil)

	output, err := s.service.Play(s.ctx, &PlayInput{
		GuildID:      s.testGuildID,
		URL:          s.testPageURL,
		VoiceChannel: s.mockChannel,
	})
	s.Require().NoError(err)
	s.True(output.Replaced)

	snap := s.snapshot()
	s.Equal(s.localPath(2), snap.MediaLocalPath)
	s.Equal(StatePlaying, snap.State)
	s.Zero(snap.StartedPlayingAtSecond)

	s.expectRelease(second, s.localPath(2))
}

func (s *PlaybackServiceTestSuite) TestPlayFromAnotherChannelJoinsIt() {
	first := s.newRun()
	s.expectPlay(1, true, first)
	s.play()

	other := voiceMocks.NewMockChannel(s.mockCtrl)
	other.EXPECT().ID().Return("other-channel-id").AnyTimes()
	otherConn := voiceMocks.NewMockConnection(s.mockCtrl)

	second := s.newRun()
	s.mockResolver.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		Return(&resolver.ResolveOutput{Media: s.testMedia}, nil)
	s.mockFetcher.EXPECT().
		Fetch(gomock.Any(), gomock.Any()).
		Return(&fetcher.FetchOutput{Path: s.localPath(2)}, nil)
	other.EXPECT().Join(gomock.Any()).Return(otherConn, nil)
	otherConn.EXPECT().Play(gomock.Any(), &voice.PlayInput{Path: s.localPath(2)}).Return(second.mock, nil)
	first.mock.EXPECT().Destroy()
	s.mockFetcher.EXPECT().Remove(gomock.Any(), &fetcher.RemoveInput{Path: s.localPath(1)}).Return(nil)

	_, err := s.service.Play(s.ctx, &PlayInput{
		GuildID:      s.testGuildID,
		URL:          s.testPageURL,
		VoiceChannel: other,
	})
	s.Require().NoError(err)
	s.Equal("other-channel-id", s.snapshot().VoiceChannelID)

	second.mock.EXPECT().Destroy()
	other.EXPECT().Leave().Return(nil)
	s.mockFetcher.EXPECT().Remove(gomock.Any(), &fetcher.RemoveInput{Path: s.localPath(2)}).Return(nil)
}

func (s *PlaybackServiceTestSuite) TestStreamFailureRemovesFetchedFile() {
	s.mockResolver.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		Return(&resolver.ResolveOutput{Media: s.testMedia}, nil)
	s.mockFetcher.EXPECT().
		Fetch(gomock.Any(), gomock.Any()).
		Return(&fetcher.FetchOutput{Path: s.localPath(1)}, nil)
	s.mockChannel.EXPECT().Join(gomock.Any()).Return(s.mockConn, nil)
	s.mockConn.EXPECT().Play(gomock.Any(), gomock.Any()).Return(nil, errors.New("ffmpeg not found"))
	s.mockFetcher.EXPECT().Remove(gomock.Any(), &fetcher.RemoveInput{Path: s.localPath(1)}).Return(nil)

	_, err := s.service.Play(s.ctx, &PlayInput{
		GuildID:      s.testGuildID,
		URL:          s.testPageURL,
		VoiceChannel: s.mockChannel,
	})
	s.Equal(KindTransport, KindOf(err))
	s.Equal(s.idle(), s.snapshot())
}

func (s *PlaybackServiceTestSuite) TestPauseAndResume() {
	r := s.newRun()
	s.expectPlay(1, true, r)
	s.play()
	r.stream = 7 * time.Second

	r.mock.EXPECT().Pause().Do(func() { r.paused = true })
	paused, err := s.service.Pause(s.ctx, &PauseInput{GuildID: s.testGuildID})
	s.Require().NoError(err)
	s.Equal(int64(7), paused.CurrentSecond)
	s.Equal(StatePaused, s.snapshot().State)

	r.mock.EXPECT().Resume().Do(func() { r.paused = false })
	resumed, err := s.service.Resume(s.ctx, &ResumeInput{GuildID: s.testGuildID})
	s.Require().NoError(err)
	s.Equal(int64(7), resumed.CurrentSecond)
	s.Equal(StatePlaying, s.snapshot().State)

	s.expectRelease(r, s.localPath(1))
}

func (s *PlaybackServiceTestSuite) TestPauseWhilePausedKeepsOffset() {
	r := s.newRun()
	s.expectPlay(1, true, r)
	s.play()

	seeked := s.newRun()
	s.mockConn.EXPECT().
		Play(gomock.Any(), &voice.PlayInput{Path: s.localPath(1), Offset: 30 * time.Second}).
		Return(seeked.mock, nil)
	r.mock.EXPECT().Destroy()
	_, err := s.service.Seek(s.ctx, &SeekInput{GuildID: s.testGuildID, Target: "30"})
	s.Require().NoError(err)

	seeked.paused = true
	_, err = s.service.Pause(s.ctx, &PauseInput{GuildID: s.testGuildID})
	s.requirePrecondition(err, ErrAlreadyPaused)
	s.Equal(int64(30), s.snapshot().StartedPlayingAtSecond)

	s.expectRelease(seeked, s.localPath(1))
}

func (s *PlaybackServiceTestSuite) TestResumeWhilePlaying() {
	r := s.newRun()
	s.expectPlay(1, true, r)
	s.play()

	_, err := s.service.Resume(s.ctx, &ResumeInput{GuildID: s.testGuildID})
	s.requirePrecondition(err, ErrNotPaused)

	s.expectRelease(r, s.localPath(1))
}

func (s *PlaybackServiceTestSuite) TestAbsoluteSeekIsReportedByStatus() {
	first := s.newRun()
	s.expectPlay(1, true, first)
	s.play()
	first.stream = 95 * time.Second

	second := s.newRun()
	s.mockConn.EXPECT().
		Play(gomock.Any(), &voice.PlayInput{Path: s.localPath(1), Offset: 42 * time.Second}).
		Return(second.mock, nil)
	first.mock.EXPECT().Destroy()

	output, err := s.service.Seek(s.ctx, &SeekInput{GuildID: s.testGuildID, Target: "42"})
	s.Require().NoError(err)
	s.Equal(int64(42), output.StartedPlayingAtSecond)

	status, err := s.service.Status(s.ctx, &StatusInput{GuildID: s.testGuildID})
	s.Require().NoError(err)
	s.Equal(int64(42), status.CurrentSecond)
	s.Equal(StatePlaying, status.State)
	s.Equal(int64(42), s.snapshot().StartedPlayingAtSecond)

	s.expectRelease(second, s.localPath(1))
}

func (s *PlaybackServiceTestSuite) TestRelativeSeek() {
	first := s.newRun()
	s.expectPlay(1, true, first)
	s.play()

	second := s.newRun()
	s.mockConn.EXPECT().
		Play(gomock.Any(), &voice.PlayInput{Path: s.localPath(1), Offset: 100 * time.Second}).
		Return(second.mock, nil)
	first.mock.EXPECT().Destroy()
	_, err := s.service.Seek(s.ctx, &SeekInput{GuildID: s.testGuildID, Target: "100"})
	s.Require().NoError(err)

	second.stream = 10 * time.Second
	third := s.newRun()
	s.mockConn.EXPECT().
		Play(gomock.Any(), &voice.PlayInput{Path: s.localPath(1), Offset: 115 * time.Second}).
		Return(third.mock, nil)
	second.mock.EXPECT().Destroy()

	output, err := s.service.Seek(s.ctx, &SeekInput{GuildID: s.testGuildID, Target: "+5"})
	s.Require().NoError(err)
	s.Equal(int64(115), output.StartedPlayingAtSecond)
	s.Equal(int64(115), s.snapshot().StartedPlayingAtSecond)

	s.expectRelease(third, s.localPath(1))
}

func (s *PlaybackServiceTestSuite) TestNegativeSeekClampsToStart() {
	first := s.newRun()
	s.expectPlay(1, true, first)
	s.play()
	first.stream = 10 * time.Second

	second := s.newRun()
	s.mockConn.EXPECT().
		Play(gomock.Any(), &voice.PlayInput{Path: s.localPath(1)}).
		Return(second.mock, nil)
	first.mock.EXPECT().Destroy()

	output, err := s.service.Seek(s.ctx, &SeekInput{GuildID: s.testGuildID, Target: "-30"})
	s.Require().NoError(err)
	s.Zero(output.StartedPlayingAtSecond)

	s.expectRelease(second, s.localPath(1))
}

func (s *PlaybackServiceTestSuite) TestSeekWhilePausedResumes() {
	first := s.newRun()
	s.expectPlay(1, true, first)
	s.play()
	first.paused = true

	second := s.newRun()
	s.mockConn.EXPECT().
		Play(gomock.Any(), &voice.PlayInput{Path: s.localPath(1), Offset: 90 * time.Second}).
		Return(second.mock, nil)
	first.mock.EXPECT().Destroy()

	_, err := s.service.Seek(s.ctx, &SeekInput{GuildID: s.testGuildID, Target: "1:30"})
	s.Require().NoError(err)
	s.Equal(StatePlaying, s.snapshot().State)

	s.expectRelease(second, s.localPath(1))
}

func (s *PlaybackServiceTestSuite) TestInvalidSeekTarget() {
	r := s.newRun()
	s.expectPlay(1, true, r)
	s.play()

	_, err := s.service.Seek(s.ctx, &SeekInput{GuildID: s.testGuildID, Target: "soon"})
	s.requirePrecondition(err, ErrInvalidSeekTarget)
	s.Zero(s.snapshot().StartedPlayingAtSecond)

	s.expectRelease(r, s.localPath(1))
}

func (s *PlaybackServiceTestSuite) TestSeekPastOffsetRangeIsRejected() {
	r := s.newRun()
	s.expectPlay(1, true, r)
	s.play()
	before := s.snapshot()

	for _, target := range []string{"9999999999999", "+9223372036854775807", "999999999999999999:00:00"} {
		_, err := s.service.Seek(s.ctx, &SeekInput{GuildID: s.testGuildID, Target: target})
		s.requirePrecondition(err, ErrInvalidSeekTarget)
	}
	s.Equal(before, s.snapshot())

	s.expectRelease(r, s.localPath(1))
}

func (s *PlaybackServiceTestSuite) TestSeekTransportFailureKeepsRun() {
	r := s.newRun()
	s.expectPlay(1, true, r)
	s.play()
	before := s.snapshot()

	s.mockConn.EXPECT().
		Play(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("offset past end of file"))

	_, err := s.service.Seek(s.ctx, &SeekInput{GuildID: s.testGuildID, Target: "99999"})
	s.Equal(KindTransport, KindOf(err))
	s.Equal(before, s.snapshot())

	s.expectRelease(r, s.localPath(1))
}

func (s *PlaybackServiceTestSuite) TestStatusRoundsElapsedTime() {
	r := s.newRun()
	s.expectPlay(1, true, r)
	s.play()

	r.stream = 1499 * time.Millisecond
	status, err := s.service.Status(s.ctx, &StatusInput{GuildID: s.testGuildID})
	s.Require().NoError(err)
	s.Equal(int64(1), status.CurrentSecond)

	r.stream = 1500 * time.Millisecond
	status, err = s.service.Status(s.ctx, &StatusInput{GuildID: s.testGuildID})
	s.Require().NoError(err)
	s.Equal(int64(2), status.CurrentSecond)
	s.Zero(status.PausedSeconds)

	s.expectRelease(r, s.localPath(1))
}

func (s *PlaybackServiceTestSuite) TestStatusWhilePaused() {
	r := s.newRun()
	s.expectPlay(1, true, r)
	s.play()
	r.paused = true
	r.stream = 61 * time.Second
	r.pause = 4400 * time.Millisecond

	status, err := s.service.Status(s.ctx, &StatusInput{GuildID: s.testGuildID})
	s.Require().NoError(err)
	s.Equal(StatePaused, status.State)
	s.Equal(int64(61), status.CurrentSecond)
	s.Equal(int64(4), status.PausedSeconds)
	s.Equal(s.testTitle, status.Title)
	s.Equal(s.testMediaURL, status.MediaURL)

	s.expectRelease(r, s.localPath(1))
}

func (s *PlaybackServiceTestSuite) TestNaturalEndReturnsToIdle() {
	r := s.newRun()
	s.expectPlay(1, true, r)
	s.play()

	s.expectRelease(r, s.localPath(1))
	close(r.done)

	s.Eventually(func() bool {
		return s.snapshot().State == StateIdle
	}, 2*time.Second, 10*time.Millisecond)
	s.Equal(s.idle(), s.snapshot())
}

func (s *PlaybackServiceTestSuite) TestCommandAfterNaturalEndSeesIdle() {
	r := s.newRun()
	s.expectPlay(1, true, r)
	s.play()

	s.expectRelease(r, s.localPath(1))
	close(r.done)

	_, err := s.service.Pause(s.ctx, &PauseInput{GuildID: s.testGuildID})
	s.requirePrecondition(err, ErrNotPlaying)
	s.Equal(s.idle(), s.snapshot())
}

func (s *PlaybackServiceTestSuite) TestCommandsAreSerialized() {
	release := make(chan struct{})
	s.mockResolver.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, input *resolver.ResolveInput) (*resolver.ResolveOutput, error) {
			<-release
			return nil, resolver.ErrStreamNotFound
		})

	result := make(chan error, 1)
	go func() {
		_, err := s.service.Play(s.ctx, &PlayInput{
			GuildID:      s.testGuildID,
			URL:          s.testPageURL,
			VoiceChannel: s.mockChannel,
		})
		result <- err
	}()

	// The play holds the actor, so a status cannot be served in time
	s.Eventually(func() bool {
		ctx, cancel := context.WithTimeout(s.ctx, 20*time.Millisecond)
		defer cancel()
		_, err := s.service.Status(ctx, &StatusInput{GuildID: s.testGuildID})
		return errors.Is(err, context.DeadlineExceeded)
	}, 2*time.Second, 10*time.Millisecond)

	close(release)
	s.Equal(KindResolution, KindOf(<-result))
}

func (s *PlaybackServiceTestSuite) TestGuildsAreIndependent() {
	r := s.newRun()
	s.expectPlay(1, true, r)
	s.play()

	snap, err := s.service.Snapshot(s.ctx, &SnapshotInput{GuildID: "other-guild-id"})
	s.Require().NoError(err)
	s.Equal(&Snapshot{GuildID: "other-guild-id", State: StateIdle}, snap)

	s.expectRelease(r, s.localPath(1))
}

func (s *PlaybackServiceTestSuite) TestCloseReleasesSessions() {
	r := s.newRun()
	s.expectPlay(1, true, r)
	s.play()

	s.expectRelease(r, s.localPath(1))
	s.service.Close()

	_, err := s.service.Status(s.ctx, &StatusInput{GuildID: s.testGuildID})
	s.ErrorIs(err, ErrServiceClosed)
}

func (s *PlaybackServiceTestSuite) TestPlayRecordsHistory() {
	svc, err := New(&Config{
		ResolverService: s.mockResolver,
		FetcherService:  s.mockFetcher,
		HistoryRepo:     s.mockHistory,
		Clock:           s.mockClock,
		UUIDGenerator:   s.mockUUID,
		ScratchDir:      s.testScratch,
	})
	s.Require().NoError(err)
	defer svc.Close()

	r := s.newRun()
	s.expectPlay(1, true, r)
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.mockHistory.EXPECT().
		AddPlayRecord(gomock.Any(), &historyRepo.AddPlayRecordInput{
			Record: &models.PlayRecord{
				ID:        "uuid-2",
				GuildID:   s.testGuildID,
				UserID:    s.testUserID,
				Title:     s.testTitle,
				SourceURL: s.testPageURL,
				MediaURL:  s.testMediaURL,
				PlayedAt:  s.testTime,
			},
		}).
		Return(errors.New("redis down"))

	_, err = svc.Play(s.ctx, &PlayInput{
		GuildID:      s.testGuildID,
		UserID:       s.testUserID,
		URL:          s.testPageURL,
		VoiceChannel: s.mockChannel,
	})
	s.Require().NoError(err)

	s.expectRelease(r, s.localPath(1))
}

func (s *PlaybackServiceTestSuite) TestHistory() {
	output, err := s.service.History(s.ctx, &HistoryInput{GuildID: s.testGuildID})
	s.Require().NoError(err)
	s.Empty(output.Records)

	svc, err := New(&Config{
		ResolverService: s.mockResolver,
		FetcherService:  s.mockFetcher,
		HistoryRepo:     s.mockHistory,
		Clock:           s.mockClock,
		UUIDGenerator:   s.mockUUID,
		ScratchDir:      s.testScratch,
	})
	s.Require().NoError(err)
	defer svc.Close()

	records := []*models.PlayRecord{{ID: "record-1", GuildID: s.testGuildID, Title: s.testTitle}}
	s.mockHistory.EXPECT().
		GetRecentPlays(gomock.Any(), &historyRepo.GetRecentPlaysInput{GuildID: s.testGuildID, Limit: 5}).
		Return(&historyRepo.GetRecentPlaysOutput{Records: records}, nil)

	output, err = svc.History(s.ctx, &HistoryInput{GuildID: s.testGuildID, Limit: 5})
	s.Require().NoError(err)
	s.Equal(records, output.Records)
}

func (s *PlaybackServiceTestSuite) TestClearHistory() {
	_, err := s.service.ClearHistory(s.ctx, &ClearHistoryInput{GuildID: s.testGuildID})
	s.Require().NoError(err)

	svc, err := New(&Config{
		ResolverService: s.mockResolver,
		FetcherService:  s.mockFetcher,
		HistoryRepo:     s.mockHistory,
		Clock:           s.mockClock,
		UUIDGenerator:   s.mockUUID,
		ScratchDir:      s.testScratch,
	})
	s.Require().NoError(err)
	defer svc.Close()

	s.mockHistory.EXPECT().
		ClearHistory(gomock.Any(), &historyRepo.ClearHistoryInput{GuildID: s.testGuildID}).
		Return(nil)
	_, err = svc.ClearHistory(s.ctx, &ClearHistoryInput{GuildID: s.testGuildID})
	s.Require().NoError(err)

	s.mockHistory.EXPECT().
		ClearHistory(gomock.Any(), gomock.Any()).
		Return(errors.New("redis down"))
	_, err = svc.ClearHistory(s.ctx, &ClearHistoryInput{GuildID: s.testGuildID})
	s.Error(err)
}

func TestPlaybackServiceSuite(t *testing.T) {
	suite.Run(t, new(PlaybackServiceTestSuite))
}
