package discord

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/KirkDiggler/podplay/internal/commands"
	"github.com/KirkDiggler/podplay/internal/voice"
	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

// Intents the bot needs to read prefixed commands and find voice channels
const Intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsGuildVoiceStates |
	discordgo.IntentMessageContent

// CommandDispatcher runs a parsed command
type CommandDispatcher interface {
	Dispatch(ctx context.Context, input *commands.DispatchInput) error
}

// ChannelLocator finds the voice channel a user is in
type ChannelLocator interface {
	UserChannel(guildID, userID string) voice.Channel
}

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	dispatcher CommandDispatcher
	locator    ChannelLocator
	limiter    *userLimiter
	prefix     string

	ctx    context.Context
	cancel context.CancelFunc
}

// Config holds the configuration for the bot
type Config struct {
	// Session is the gateway session, see NewSession
	Session *discordgo.Session

	// Prefix marks a message as a command
	Prefix string

	Dispatcher CommandDispatcher
	Locator    ChannelLocator

	// CommandRate and CommandBurst limit commands per user
	CommandRate  rate.Limit
	CommandBurst int
}

// NewSession creates a gateway session with the intents the bot needs
func NewSession(token string) (*discordgo.Session, error) {
	if token == "" {
		return nil, errors.New("token cannot be empty")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	session.Identify.Intents = Intents

	return session, nil
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Session == nil {
		return nil, errors.New("session cannot be nil")
	}

	if cfg.Prefix == "" {
		return nil, errors.New("prefix cannot be empty")
	}

	if cfg.Dispatcher == nil {
		return nil, errors.New("dispatcher cannot be nil")
	}

	if cfg.Locator == nil {
		return nil, errors.New("channel locator cannot be nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	bot := &Bot{
		session:    cfg.Session,
		dispatcher: cfg.Dispatcher,
		locator:    cfg.Locator,
		limiter:    newUserLimiter(cfg.CommandRate, cfg.CommandBurst, nil),
		prefix:     cfg.Prefix,
		ctx:        ctx,
		cancel:     cancel,
	}

	cfg.Session.AddHandler(bot.handleReady)
	cfg.Session.AddHandler(bot.handleMessageCreate)

	return bot, nil
}

// Start opens the Discord connection
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	log.Println("[Bot] Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Drain cancels in-flight commands while keeping the connection open
func (b *Bot) Drain() {
	b.cancel()
}

// Stop cancels in-flight commands and closes the Discord connection
func (b *Bot) Stop() error {
	b.cancel()
	return b.session.Close()
}

func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Printf("[Bot] Logged in as %s#%s, listening for %q commands", r.User.Username, r.User.Discriminator, b.prefix)
}

func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	b.handleMessage(b.ctx, newMessageEvent(m), newMessageReply(s, m))
}

// handleMessage parses and dispatches one message; unrecognized content is ignored
func (b *Bot) handleMessage(ctx context.Context, event *messageEvent, reply commands.ReplySink) {
	if event.IsBot || event.GuildID == "" {
		return
	}

	cmd, ok := commands.Parse(b.prefix, event.Content)
	if !ok {
		return
	}

	if !b.limiter.Allow(event.UserID) {
		reply.Reply("You're sending commands too quickly. Give it a second.")
		return
	}

	err := b.dispatcher.Dispatch(ctx, &commands.DispatchInput{
		GuildID:      event.GuildID,
		UserID:       event.UserID,
		Command:      cmd,
		VoiceChannel: b.locator.UserChannel(event.GuildID, event.UserID),
		Reply:        reply,
	})
	if err != nil {
		log.Printf("[Bot] Error handling %T from %s: %v", cmd, event.UserID, err)
	}
}
