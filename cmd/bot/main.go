package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/podplay/internal/commands"
	"github.com/KirkDiggler/podplay/internal/common/clock"
	"github.com/KirkDiggler/podplay/internal/common/uuid"
	"github.com/KirkDiggler/podplay/internal/config"
	"github.com/KirkDiggler/podplay/internal/handlers/discord"
	"github.com/KirkDiggler/podplay/internal/repositories/history"
	"github.com/KirkDiggler/podplay/internal/repositories/media"
	"github.com/KirkDiggler/podplay/internal/services/fetcher"
	"github.com/KirkDiggler/podplay/internal/services/messaging"
	"github.com/KirkDiggler/podplay/internal/services/playback"
	"github.com/KirkDiggler/podplay/internal/services/resolver"
	voiceDiscord "github.com/KirkDiggler/podplay/internal/voice/discord"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const userAgent = "podplay/1.0 (+https://github.com/KirkDiggler/podplay)"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := os.MkdirAll(cfg.ScratchDir, 0o755); err != nil {
		log.Fatalf("Failed to create scratch dir: %v", err)
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize repositories
	mediaRepo, err := media.NewRedis(&media.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create media repository: %v", err)
	}

	historyRepo, err := history.NewRedis(&history.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create history repository: %v", err)
	}

	// A zero TTL turns the resolution cache off
	var resolutionCache media.Repository
	if cfg.ResolutionCacheTTL > 0 {
		resolutionCache = mediaRepo
	}

	// Initialize services
	httpClient := &http.Client{}
	realClock := clock.New()

	resolverSvc, err := resolver.New(&resolver.Config{
		HTTPClient: httpClient,
		MediaRepo:  resolutionCache,
		CacheTTL:   cfg.ResolutionCacheTTL,
		Timeout:    cfg.ResolveTimeout,
		UserAgent:  userAgent,
		Clock:      realClock,
	})
	if err != nil {
		log.Fatalf("Failed to create resolver service: %v", err)
	}

	fetcherSvc, err := fetcher.New(&fetcher.Config{
		HTTPClient: httpClient,
		Timeout:    cfg.FetchTimeout,
		MaxBytes:   cfg.FetchMaxBytes,
		UserAgent:  userAgent,
	})
	if err != nil {
		log.Fatalf("Failed to create fetcher service: %v", err)
	}

	playbackSvc, err := playback.New(&playback.Config{
		ResolverService: resolverSvc,
		FetcherService:  fetcherSvc,
		HistoryRepo:     historyRepo,
		Clock:           realClock,
		UUIDGenerator:   uuid.New(),
		ScratchDir:      cfg.ScratchDir,
	})
	if err != nil {
		log.Fatalf("Failed to create playback service: %v", err)
	}

	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{
		Prefix: cfg.CommandPrefix,
	})
	if err != nil {
		log.Fatalf("Failed to create messaging service: %v", err)
	}

	dispatcher, err := commands.NewDispatcher(&commands.DispatcherConfig{
		PlaybackService:  playbackSvc,
		MessagingService: messagingSvc,
		HistoryLimit:     cfg.HistoryLimit,
	})
	if err != nil {
		log.Fatalf("Failed to create command dispatcher: %v", err)
	}

	// Initialize Discord session, voice transport and bot
	session, err := discord.NewSession(cfg.DiscordToken)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
	}

	transport, err := voiceDiscord.New(&voiceDiscord.Config{
		Session:    session,
		FFmpegPath: cfg.FFmpegPath,
		Clock:      realClock,
	})
	if err != nil {
		log.Fatalf("Failed to create voice transport: %v", err)
	}

	bot, err := discord.New(&discord.Config{
		Session:      session,
		Prefix:       cfg.CommandPrefix,
		Dispatcher:   dispatcher,
		Locator:      transport,
		CommandRate:  rate.Limit(cfg.CommandRate),
		CommandBurst: cfg.CommandBurst,
	})
	if err != nil {
		log.Fatalf("Failed to create Discord bot: %v", err)
	}

	// Start the bot
	if err := bot.Start(); err != nil {
		log.Fatalf("Failed to start Discord bot: %v", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Idle every session before the gateway goes away
	bot.Drain()
	playbackSvc.Close()
	transport.Close()

	if err := bot.Stop(); err != nil {
		log.Printf("Error stopping bot: %v", err)
	}

	log.Println("Bot has been shut down")
}
