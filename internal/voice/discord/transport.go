package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/KirkDiggler/podplay/internal/common/clock"
	"github.com/KirkDiggler/podplay/internal/voice"
	"github.com/bwmarrin/discordgo"
	"layeh.com/gopus"
)

// ErrNotConnected is returned when leaving a guild the bot is not connected in
var ErrNotConnected = errors.New("not connected to a voice channel")

// Config holds configuration for the discord voice transport
type Config struct {
	// Session is the gateway session voice connections are opened on
	Session *discordgo.Session

	// FFmpegPath is the decoder binary; defaults to "ffmpeg" on PATH
	FFmpegPath string

	Clock clock.Clock
}

// Transport opens voice connections through discordgo
type Transport struct {
	session    *discordgo.Session
	ffmpegPath string
	clock      clock.Clock

	mu          sync.Mutex
	connections map[string]*connection // keyed by guild ID
}

// New creates a new discord voice transport
func New(cfg *Config) (*Transport, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Session == nil {
		return nil, errors.New("discord session cannot be nil")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	ffmpegPath := cfg.FFmpegPath
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}

	return &Transport{
		session:     cfg.Session,
		ffmpegPath:  ffmpegPath,
		clock:       cfg.Clock,
		connections: make(map[string]*connection),
	}, nil
}

// Channel returns the endpoint for a voice channel in a guild
func (t *Transport) Channel(guildID, channelID string) voice.Channel {
	return &channel{
		transport: t,
		guildID:   guildID,
		channelID: channelID,
	}
}

// UserChannel returns the voice channel a user is currently in, or nil
func (t *Transport) UserChannel(guildID, userID string) voice.Channel {
	state, err := t.session.State.VoiceState(guildID, userID)
	if err != nil || state == nil || state.ChannelID == "" {
		return nil
	}
	return t.Channel(guildID, state.ChannelID)
}

// Close disconnects every voice connection
func (t *Transport) Close() {
	t.mu.Lock()
	conns := make([]*connection, 0, len(t.connections))
	for guildID, conn := range t.connections {
		conns = append(conns, conn)
		delete(t.connections, guildID)
	}
	t.mu.Unlock()

	for _, conn := range conns {
		conn.disconnect()
	}
}

type channel struct {
	transport *Transport
	guildID   string
	channelID string
}

func (c *channel) ID() string {
	return c.channelID
}

func (c *channel) Join(ctx context.Context) (voice.Connection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vc, err := c.transport.session.ChannelVoiceJoin(c.guildID, c.channelID, false, true)
	if err != nil {
		return nil, fmt.Errorf("failed to join voice channel: %w", err)
	}
	log.Printf("[Voice] Joined voice channel %s on guild %s", c.channelID, c.guildID)

	c.transport.mu.Lock()
	defer c.transport.mu.Unlock()

	// discordgo keeps one connection per guild, so a move reuses it
	conn, ok := c.transport.connections[c.guildID]
	if !ok {
		conn = &connection{transport: c.transport}
		c.transport.connections[c.guildID] = conn
	}
	conn.setVoice(vc, c.channelID)

	return conn, nil
}

func (c *channel) Leave() error {
	c.transport.mu.Lock()
	conn, ok := c.transport.connections[c.guildID]
	if ok {
		delete(c.transport.connections, c.guildID)
	}
	c.transport.mu.Unlock()

	if !ok {
		return ErrNotConnected
	}

	log.Printf("[Voice] Leaving voice channel %s on guild %s", c.channelID, c.guildID)
	return conn.disconnect()
}

type connection struct {
	transport *Transport

	mu        sync.Mutex
	vc        *discordgo.VoiceConnection
	channelID string
	current   *dispatcher
}

func (c *connection) setVoice(vc *discordgo.VoiceConnection, channelID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vc = vc
	c.channelID = channelID
}

func (c *connection) ChannelID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.channelID
}

// Play starts a new run; the previous run is destroyed only once the decoder is up
func (c *connection) Play(ctx context.Context, input *voice.PlayInput) (voice.Dispatcher, error) {
	if input == nil || input.Path == "" {
		return nil, errors.New("play input must name a file")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.vc == nil {
		return nil, ErrNotConnected
	}

	encoder, err := gopus.NewEncoder(sampleRate, channels, gopus.Audio)
	if err != nil {
		return nil, fmt.Errorf("encoder error: %w", err)
	}

	source, err := startFFmpeg(c.transport.ffmpegPath, input.Path, input.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to start decoder: %w", err)
	}

	if c.current != nil {
		c.current.Destroy()
	}

	d := newDispatcher(source, encoder, c.vc.OpusSend, c.vc.Speaking, c.transport.clock)
	c.current = d
	go d.run()

	log.Printf("[Voice] Streaming %s from %s on channel %s", input.Path, input.Offset, c.channelID)
	return d, nil
}

func (c *connection) disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil {
		c.current.Destroy()
		c.current = nil
	}

	if c.vc == nil {
		return nil
	}

	err := c.vc.Disconnect()
	c.vc = nil
	if err != nil {
		return fmt.Errorf("failed to disconnect: %w", err)
	}
	return nil
}
