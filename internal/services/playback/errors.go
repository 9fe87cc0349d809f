package playback

import (
	"errors"
	"fmt"
)

// PlaybackError is a custom error type for playback errors
type PlaybackError string

// Error implements the error interface
func (e PlaybackError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNotPlaying        PlaybackError = "nothing is playing"
	ErrAlreadyPaused     PlaybackError = "playback is already paused"
	ErrNotPaused         PlaybackError = "playback is not paused"
	ErrNotInVoiceChannel PlaybackError = "user is not in a voice channel"
	ErrMissingURL        PlaybackError = "a url is required"
	ErrInvalidSeekTarget PlaybackError = "invalid seek target"
	ErrNilInput          PlaybackError = "input cannot be nil"
	ErrEmptyGuildID      PlaybackError = "guild id cannot be empty"
	ErrServiceClosed     PlaybackError = "playback service is closed"
	ErrNilConfig         PlaybackError = "config cannot be nil"
	ErrNilResolver       PlaybackError = "resolver service cannot be nil"
	ErrNilFetcher        PlaybackError = "fetcher service cannot be nil"
	ErrNilClock          PlaybackError = "clock cannot be nil"
	ErrNilUUIDGenerator  PlaybackError = "uuid generator cannot be nil"
	ErrEmptyScratchDir   PlaybackError = "scratch dir cannot be empty"
)

// FailureKind classifies a failed command
type FailureKind string

const (
	KindResolution   FailureKind = "resolution"
	KindFetch        FailureKind = "fetch"
	KindPrecondition FailureKind = "precondition"
	KindTransport    FailureKind = "transport"
)

// Failure is returned by every session operation that did not take effect
type Failure struct {
	Kind FailureKind
	Err  error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s failure: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// KindOf returns the failure kind of err, or "" if err is not a Failure
func KindOf(err error) FailureKind {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure.Kind
	}
	return ""
}

func precondition(err error) error {
	return &Failure{Kind: KindPrecondition, Err: err}
}

func resolutionFailure(err error) error {
	return &Failure{Kind: KindResolution, Err: err}
}

func fetchFailure(err error) error {
	return &Failure{Kind: KindFetch, Err: err}
}

func transportFailure(err error) error {
	return &Failure{Kind: KindTransport, Err: err}
}
