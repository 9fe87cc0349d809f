package commands

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/KirkDiggler/podplay/internal/services/messaging"
	"github.com/KirkDiggler/podplay/internal/services/playback"
	"github.com/KirkDiggler/podplay/internal/voice"
)

// DefaultHistoryLimit is how many plays the history command lists
const DefaultHistoryLimit = 10

// ReplySink delivers text back to where the command came from
type ReplySink interface {
	Reply(text string)
}

// DispatcherConfig holds the collaborators of a Dispatcher
type DispatcherConfig struct {
	PlaybackService  playback.Service
	MessagingService messaging.Service

	// HistoryLimit caps the history listing; zero uses DefaultHistoryLimit
	HistoryLimit int
}

// DispatchInput is one command event
type DispatchInput struct {
	GuildID string
	UserID  string
	Command Command

	// VoiceChannel is the issuer's current voice channel, nil if none
	VoiceChannel voice.Channel

	Reply ReplySink
}

// Dispatcher runs parsed commands against the playback service
type Dispatcher struct {
	playback     playback.Service
	messaging    messaging.Service
	historyLimit int
}

// NewDispatcher creates a new command dispatcher
func NewDispatcher(cfg *DispatcherConfig) (*Dispatcher, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.PlaybackService == nil {
		return nil, errors.New("playback service cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	limit := cfg.HistoryLimit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	return &Dispatcher{
		playback:     cfg.PlaybackService,
		messaging:    cfg.MessagingService,
		historyLimit: limit,
	}, nil
}

// Dispatch runs the command and sends exactly one reply
func (d *Dispatcher) Dispatch(ctx context.Context, input *DispatchInput) error {
	if input == nil || input.Command == nil || input.Reply == nil {
		return errors.New("dispatch input needs a command and a reply sink")
	}

	text, err := d.run(ctx, input)
	if err != nil {
		log.Printf("[Commands] %T failed on guild %s: %v", input.Command, input.GuildID, err)

		output, msgErr := d.messaging.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{Err: err})
		if msgErr != nil {
			return fmt.Errorf("failed to render error reply: %w", msgErr)
		}
		text = output.Message
	}

	input.Reply.Reply(text)
	return nil
}

func (d *Dispatcher) run(ctx context.Context, input *DispatchInput) (string, error) {
	guildID := input.GuildID

	switch cmd := input.Command.(type) {
	case Play:
		out, err := d.playback.Play(ctx, &playback.PlayInput{
			GuildID:      guildID,
			UserID:       input.UserID,
			URL:          cmd.URL,
			VoiceChannel: input.VoiceChannel,
		})
		if err != nil {
			return "", err
		}
		msg, err := d.messaging.GetPlayMessage(ctx, &messaging.GetPlayMessageInput{
			Title:    out.Media.Title,
			MediaURL: out.Media.MediaURL,
			Replaced: out.Replaced,
		})
		if err != nil {
			return "", err
		}
		return msg.Message, nil

	case Pause:
		out, err := d.playback.Pause(ctx, &playback.PauseInput{GuildID: guildID})
		if err != nil {
			return "", err
		}
		msg, err := d.messaging.GetPauseMessage(ctx, &messaging.GetPauseMessageInput{
			Title:         out.Title,
			CurrentSecond: out.CurrentSecond,
		})
		if err != nil {
			return "", err
		}
		return msg.Message, nil

	case Resume:
		out, err := d.playback.Resume(ctx, &playback.ResumeInput{GuildID: guildID})
		if err != nil {
			return "", err
		}
		msg, err := d.messaging.GetResumeMessage(ctx, &messaging.GetResumeMessageInput{
			Title:         out.Title,
			CurrentSecond: out.CurrentSecond,
		})
		if err != nil {
			return "", err
		}
		return msg.Message, nil

	case Stop:
		out, err := d.playback.Stop(ctx, &playback.StopInput{GuildID: guildID})
		if err != nil {
			return "", err
		}
		msg, err := d.messaging.GetStopMessage(ctx, &messaging.GetStopMessageInput{Title: out.Title})
		if err != nil {
			return "", err
		}
		return msg.Message, nil

	case Seek:
		out, err := d.playback.Seek(ctx, &playback.SeekInput{GuildID: guildID, Target: cmd.Target})
		if err != nil {
			return "", err
		}
		msg, err := d.messaging.GetSeekMessage(ctx, &messaging.GetSeekMessageInput{
			Title:  out.Title,
			Second: out.StartedPlayingAtSecond,
		})
		if err != nil {
			return "", err
		}
		return msg.Message, nil

	case Status:
		out, err := d.playback.Status(ctx, &playback.StatusInput{GuildID: guildID})
		if err != nil {
			return "", err
		}
		msg, err := d.messaging.GetStatusMessage(ctx, &messaging.GetStatusMessageInput{
			State:         out.State,
			Title:         out.Title,
			CurrentSecond: out.CurrentSecond,
			PausedSeconds: out.PausedSeconds,
		})
		if err != nil {
			return "", err
		}
		return msg.Message, nil

	case Help:
		msg, err := d.messaging.GetHelpMessage(ctx, &messaging.GetHelpMessageInput{})
		if err != nil {
			return "", err
		}
		return msg.Message, nil

	case History:
		if cmd.Clear {
			if _, err := d.playback.ClearHistory(ctx, &playback.ClearHistoryInput{GuildID: guildID}); err != nil {
				return "", err
			}
			msg, err := d.messaging.GetHistoryClearedMessage(ctx, &messaging.GetHistoryClearedMessageInput{})
			if err != nil {
				return "", err
			}
			return msg.Message, nil
		}

		out, err := d.playback.History(ctx, &playback.HistoryInput{GuildID: guildID, Limit: d.historyLimit})
		if err != nil {
			return "", err
		}
		msg, err := d.messaging.GetHistoryMessage(ctx, &messaging.GetHistoryMessageInput{Records: out.Records})
		if err != nil {
			return "", err
		}
		return msg.Message, nil

	default:
		return "", fmt.Errorf("unhandled command %T", cmd)
	}
}
