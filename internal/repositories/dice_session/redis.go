package dicesession

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-narrator/internal/errors"
	"github.com/KirkDiggler/rpg-narrator/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-narrator/internal/redis"
)

const (
	// Key pattern: dice_rolls:{game_id}
	rollKeyPrefix = "dice_rolls:"
	defaultTTL    = 24 * time.Hour

	// MaxRolls bounds how many rolls a log keeps
	MaxRolls = 100

	errGameIDEmpty = "game ID cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
	TTL    time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	ttl    time.Duration
}

// NewRedisRepository creates a new Redis repository for roll logs
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
		ttl:    ttl,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Append pushes the roll and trims the log to MaxRolls in one transaction
func (r *redisRepository) Append(ctx context.Context, input AppendInput) (*AppendOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	roll := input.Roll
	if roll.RolledAt.IsZero() {
		roll.RolledAt = r.clock.Now()
	}

	rollJSON, err := json.Marshal(roll)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal roll")
	}

	ttl := input.TTL
	if ttl <= 0 {
		ttl = r.ttl
	}

	key := buildKey(input.GameID)
	var push *redis.IntCmd
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		push = pipe.RPush(ctx, key, rollJSON)
		pipe.LTrim(ctx, key, -MaxRolls, -1)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to append roll in Redis")
	}

	length := int(push.Val())
	if length > MaxRolls {
		length = MaxRolls
	}

	return &AppendOutput{Length: length}, nil
}

// Get retrieves the game's roll log
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	start := int64(0)
	if input.Limit > 0 {
		start = -int64(input.Limit)
	}

	values, err := r.client.LRange(ctx, buildKey(input.GameID), start, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get rolls from Redis")
	}
	if len(values) == 0 {
		return nil, errors.NotFound("roll log not found").WithMeta("game_id", input.GameID)
	}

	log := &RollLog{GameID: input.GameID, Rolls: make([]Roll, 0, len(values))}
	for _, v := range values {
		var roll Roll
		if err := json.Unmarshal([]byte(v), &roll); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to unmarshal roll")
		}
		log.Rolls = append(log.Rolls, roll)
	}

	return &GetOutput{Log: log}, nil
}

// Delete removes the game's roll log
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	key := buildKey(input.GameID)

	var count *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		count = pipe.LLen(ctx, key)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete rolls from Redis")
	}

	return &DeleteOutput{RollsDeleted: int(count.Val())}, nil
}

func buildKey(gameID string) string {
	return rollKeyPrefix + gameID
}
