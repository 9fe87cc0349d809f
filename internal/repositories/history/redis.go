package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/podplay/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for Redis
	guildHistoryKeyPrefix = "history:"

	// DefaultMaxRecords is how many plays are kept per guild when Config.MaxRecords is zero
	DefaultMaxRecords = 50
)

// Config holds configuration for the Redis history repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// MaxRecords caps the list length per guild
	MaxRecords int
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client     *redis.Client
	maxRecords int
}

// NewRedis creates a new Redis-backed history repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if cfg.MaxRecords < 0 {
		return nil, errors.New("max records cannot be negative")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	maxRecords := cfg.MaxRecords
	if maxRecords == 0 {
		maxRecords = DefaultMaxRecords
	}

	return &redisRepository{
		client:     cfg.RedisClient,
		maxRecords: maxRecords,
	}, nil
}

func historyKey(guildID string) string {
	return fmt.Sprintf("%s%s", guildHistoryKeyPrefix, guildID)
}

// AddPlayRecord pushes a record onto the guild's list and trims it
func (r *redisRepository) AddPlayRecord(ctx context.Context, input *AddPlayRecordInput) error {
	if input == nil || input.Record == nil {
		return errors.New("input and record cannot be nil")
	}

	record := input.Record
	if record.ID == "" {
		return errors.New("play record ID cannot be empty")
	}

	if record.GuildID == "" {
		return errors.New("play record guild ID cannot be empty")
	}

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal play record: %w", err)
	}

	key := historyKey(record.GuildID)

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, key, recordJSON)
	pipe.LTrim(ctx, key, 0, int64(r.maxRecords-1))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add play record: %w", err)
	}

	return nil
}

// GetRecentPlays reads the newest records for a guild
func (r *redisRepository) GetRecentPlays(ctx context.Context, input *GetRecentPlaysInput) (*GetRecentPlaysOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	stop := int64(-1)
	if input.Limit > 0 {
		stop = int64(input.Limit - 1)
	}

	values, err := r.client.LRange(ctx, historyKey(input.GuildID), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get play records: %w", err)
	}

	records := make([]*models.PlayRecord, 0, len(values))
	for _, value := range values {
		var record models.PlayRecord
		if err := json.Unmarshal([]byte(value), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal play record: %w", err)
		}
		records = append(records, &record)
	}

	return &GetRecentPlaysOutput{
		Records: records,
	}, nil
}

// ClearHistory deletes the guild's list
func (r *redisRepository) ClearHistory(ctx context.Context, input *ClearHistoryInput) error {
	if input == nil || input.GuildID == "" {
		return errors.New("input and guild ID cannot be empty")
	}

	if err := r.client.Del(ctx, historyKey(input.GuildID)).Err(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	return nil
}
