// Package config loads bot settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the bot
type Config struct {
	DiscordToken  string `env:"DISCORD_TOKEN,required,notEmpty"`
	CommandPrefix string `env:"COMMAND_PREFIX" envDefault:"."`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// ScratchDir holds fetched media while it plays
	ScratchDir string `env:"SCRATCH_DIR" envDefault:"/tmp/podplay"`

	ResolveTimeout time.Duration `env:"RESOLVE_TIMEOUT" envDefault:"15s"`
	FetchTimeout   time.Duration `env:"FETCH_TIMEOUT" envDefault:"10m"`

	// FetchMaxBytes rejects larger downloads; zero means unlimited
	FetchMaxBytes int64 `env:"FETCH_MAX_BYTES" envDefault:"524288000"`

	// ResolutionCacheTTL of zero disables the cache
	ResolutionCacheTTL time.Duration `env:"RESOLUTION_CACHE_TTL" envDefault:"1h"`
	HistoryLimit       int           `env:"HISTORY_LIMIT" envDefault:"10"`

	// CommandRate is commands per second allowed per user
	CommandRate  float64 `env:"COMMAND_RATE" envDefault:"1"`
	CommandBurst int     `env:"COMMAND_BURST" envDefault:"3"`

	FFmpegPath string `env:"FFMPEG_PATH" envDefault:"ffmpeg"`
}

// Load reads .env files, when present, then parses the environment
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
		log.Println("[Config] No .env file found, falling back to system environment variables")
	}

	return parse(env.Options{})
}

// FromMap parses settings from vars instead of the process environment
func FromMap(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values the tags cannot express
func (c *Config) Validate() error {
	switch {
	case c.CommandPrefix == "":
		return errors.New("COMMAND_PREFIX cannot be empty")
	case c.ScratchDir == "":
		return errors.New("SCRATCH_DIR cannot be empty")
	case c.ResolveTimeout <= 0:
		return errors.New("RESOLVE_TIMEOUT must be positive")
	case c.FetchTimeout <= 0:
		return errors.New("FETCH_TIMEOUT must be positive")
	case c.FetchMaxBytes < 0:
		return errors.New("FETCH_MAX_BYTES cannot be negative")
	case c.ResolutionCacheTTL < 0:
		return errors.New("RESOLUTION_CACHE_TTL cannot be negative")
	case c.HistoryLimit <= 0:
		return errors.New("HISTORY_LIMIT must be positive")
	case c.CommandRate <= 0 || c.CommandBurst <= 0:
		return errors.New("COMMAND_RATE and COMMAND_BURST must be positive")
	}
	return nil
}
