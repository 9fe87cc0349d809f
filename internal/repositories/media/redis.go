package media

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/podplay/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for Redis
	mediaKeyPrefix = "media:"
)

// ErrMediaNotFound is returned when no cached resolution exists
var ErrMediaNotFound = errors.New("media not found")

// Config holds configuration for the Redis media repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed media repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// mediaKey hashes the source URL so arbitrary user input never ends up in a key
func mediaKey(sourceURL string) string {
	sum := sha1.Sum([]byte(sourceURL))
	return mediaKeyPrefix + hex.EncodeToString(sum[:])
}

// SaveMedia persists a resolution result to Redis
func (r *redisRepository) SaveMedia(ctx context.Context, input *SaveMediaInput) error {
	if input == nil || input.Media == nil {
		return errors.New("input and media cannot be nil")
	}

	if input.Media.SourceURL == "" {
		return errors.New("media source URL cannot be empty")
	}

	if input.TTL < 0 {
		return errors.New("ttl cannot be negative")
	}

	mediaJSON, err := json.Marshal(input.Media)
	if err != nil {
		return fmt.Errorf("failed to marshal media: %w", err)
	}

	if err := r.client.Set(ctx, mediaKey(input.Media.SourceURL), mediaJSON, input.TTL).Err(); err != nil {
		return fmt.Errorf("failed to save media: %w", err)
	}

	return nil
}

// GetMedia retrieves a cached resolution from Redis
func (r *redisRepository) GetMedia(ctx context.Context, input *GetMediaInput) (*models.Media, error) {
	if input == nil || input.SourceURL == "" {
		return nil, errors.New("input and source URL cannot be empty")
	}

	mediaJSON, err := r.client.Get(ctx, mediaKey(input.SourceURL)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMediaNotFound
		}
		return nil, fmt.Errorf("failed to get media: %w", err)
	}

	var media models.Media
	if err := json.Unmarshal([]byte(mediaJSON), &media); err != nil {
		return nil, fmt.Errorf("failed to unmarshal media: %w", err)
	}

	return &media, nil
}

// DeleteMedia removes a cached resolution from Redis
func (r *redisRepository) DeleteMedia(ctx context.Context, input *DeleteMediaInput) error {
	if input == nil || input.SourceURL == "" {
		return errors.New("input and source URL cannot be empty")
	}

	if err := r.client.Del(ctx, mediaKey(input.SourceURL)).Err(); err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}

	return nil
}
