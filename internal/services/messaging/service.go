package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/KirkDiggler/podplay/internal/services/playback"
)

// DefaultPrefix is used when no prefix is configured
const DefaultPrefix = "."

// service implements the Service interface
type service struct {
	rand   *rand.Rand
	prefix string
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	if config == nil {
		config = &ServiceConfig{}
	}

	r := config.Rand
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	prefix := config.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	return &service{
		rand:   r,
		prefix: prefix,
	}, nil
}

func (s *service) pick(messages []string) string {
	return messages[s.rand.Intn(len(messages))]
}

// GetPlayMessage returns a message for when playback starts
func (s *service) GetPlayMessage(ctx context.Context, input *GetPlayMessageInput) (*GetPlayMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var messages []string
	if input.Replaced {
		messages = []string{
			fmt.Sprintf("Switching over to **%s**.", input.Title),
			fmt.Sprintf("Out with the old. Now playing **%s**.", input.Title),
			fmt.Sprintf("Changed the station: **%s**.", input.Title),
		}
	} else {
		messages = []string{
			fmt.Sprintf("Now playing **%s**.", input.Title),
			fmt.Sprintf("Queued up and rolling: **%s**.", input.Title),
			fmt.Sprintf("Pull up a chair, **%s** is on.", input.Title),
		}
	}

	return &GetPlayMessageOutput{
		Message: s.pick(messages),
	}, nil
}

// GetPauseMessage returns a message for when playback is paused
func (s *service) GetPauseMessage(ctx context.Context, input *GetPauseMessageInput) (*GetPauseMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	return &GetPauseMessageOutput{
		Message: fmt.Sprintf("Paused **%s** at %s. Use `%sresume` to continue.", input.Title, FormatPosition(input.CurrentSecond), s.prefix),
	}, nil
}

// GetResumeMessage returns a message for when playback is resumed
func (s *service) GetResumeMessage(ctx context.Context, input *GetResumeMessageInput) (*GetResumeMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	return &GetResumeMessageOutput{
		Message: fmt.Sprintf("Resuming **%s** from %s.", input.Title, FormatPosition(input.CurrentSecond)),
	}, nil
}

// GetStopMessage returns a message for when playback is stopped
func (s *service) GetStopMessage(ctx context.Context, input *GetStopMessageInput) (*GetStopMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	messages := []string{
		fmt.Sprintf("Stopped **%s**. See you next episode.", input.Title),
		fmt.Sprintf("That's a wrap on **%s**.", input.Title),
		fmt.Sprintf("Stopped **%s** and left the channel.", input.Title),
	}

	return &GetStopMessageOutput{
		Message: s.pick(messages),
	}, nil
}

// GetSeekMessage returns a message for when playback jumps to a new position
func (s *service) GetSeekMessage(ctx context.Context, input *GetSeekMessageInput) (*GetSeekMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	return &GetSeekMessageOutput{
		Message: fmt.Sprintf("Jumped to %s in **%s**.", FormatPosition(input.Second), input.Title),
	}, nil
}

// GetStatusMessage returns the current position of playback
func (s *service) GetStatusMessage(ctx context.Context, input *GetStatusMessageInput) (*GetStatusMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var message string
	switch input.State {
	case playback.StatePaused:
		message = fmt.Sprintf("Paused **%s** at %s (paused for %s).",
			input.Title, FormatPosition(input.CurrentSecond), FormatPosition(input.PausedSeconds))
	case playback.StatePlaying:
		message = fmt.Sprintf("Playing **%s**, at %s.", input.Title, FormatPosition(input.CurrentSecond))
	default:
		message = "Nothing is playing right now."
	}

	return &GetStatusMessageOutput{
		Message: message,
	}, nil
}

// GetHelpMessage lists every command
func (s *service) GetHelpMessage(ctx context.Context, input *GetHelpMessageInput) (*GetHelpMessageOutput, error) {
	p := s.prefix
	lines := []string{
		"**Commands**",
		fmt.Sprintf("`%splay <url>` play a podcast page or audio link in your voice channel", p),
		fmt.Sprintf("`%spause` (`%sp`) pause playback", p, p),
		fmt.Sprintf("`%sresume` (`%sr`) resume playback", p, p),
		fmt.Sprintf("`%sstop` (`%ss`) stop and leave the channel", p, p),
		fmt.Sprintf("`%sseek <time>` jump to `90`, `1:30` or `1:02:03`; `+15` and `-10` move relative", p),
		fmt.Sprintf("`%sstatus` show the current position", p),
		fmt.Sprintf("`%shistory` list recent plays; `%shistory clear` forgets them", p, p),
		fmt.Sprintf("`%shelp` show this message", p),
	}

	return &GetHelpMessageOutput{
		Message: strings.Join(lines, "\n"),
	}, nil
}

// GetHistoryMessage lists recent plays
func (s *service) GetHistoryMessage(ctx context.Context, input *GetHistoryMessageInput) (*GetHistoryMessageOutput, error) {
	if input == nil || len(input.Records) == 0 {
		return &GetHistoryMessageOutput{
			Message: "Nothing has been played here yet.",
		}, nil
	}

	var b strings.Builder
	b.WriteString("**Recently played**")
	for i, record := range input.Records {
		fmt.Fprintf(&b, "\n%d. %s (<@%s>, %s)", i+1, record.Title, record.UserID, record.PlayedAt.UTC().Format("Jan 2 15:04 MST"))
	}

	return &GetHistoryMessageOutput{
		Message: b.String(),
	}, nil
}

// GetHistoryClearedMessage confirms the history was cleared
func (s *service) GetHistoryClearedMessage(ctx context.Context, input *GetHistoryClearedMessageInput) (*GetHistoryClearedMessageOutput, error) {
	return &GetHistoryClearedMessageOutput{
		Message: "Play history cleared.",
	}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil || input.Err == nil {
		return nil, errors.New("input must carry an error")
	}

	return &GetErrorMessageOutput{
		Message: s.errorMessage(input.Err),
	}, nil
}

func (s *service) errorMessage(err error) string {
	switch {
	case errors.Is(err, playback.ErrNotPlaying):
		return "Nothing is playing right now."
	case errors.Is(err, playback.ErrAlreadyPaused):
		return fmt.Sprintf("Already paused. Use `%sresume` to continue.", s.prefix)
	case errors.Is(err, playback.ErrNotPaused):
		return "Playback isn't paused."
	case errors.Is(err, playback.ErrNotInVoiceChannel):
		return "Join a voice channel first, then ask me to play."
	case errors.Is(err, playback.ErrMissingURL):
		return fmt.Sprintf("Give me something to play, like `%splay https://example.com/episode`.", s.prefix)
	case errors.Is(err, playback.ErrInvalidSeekTarget):
		return "I can't seek there. Try `90`, `1:30`, `+15` or `-10`."
	case errors.Is(err, playback.ErrServiceClosed):
		return "I'm shutting down. Try again in a moment."
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "That took too long. Try again."
	}

	switch playback.KindOf(err) {
	case playback.KindResolution:
		return "I couldn't find anything playable at that link."
	case playback.KindFetch:
		return "I couldn't download that audio. Try again later."
	case playback.KindTransport:
		return "Something went wrong with the voice connection."
	}

	return "Something went wrong. Try again."
}

// FormatPosition renders seconds as m:ss, or h:mm:ss past an hour
func FormatPosition(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}

	h, m, sec := seconds/3600, seconds%3600/60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}
