package saves

import (
	"context"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-narrator/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-narrator/internal/redis"
	"github.com/KirkDiggler/rpg-narrator/internal/savegame"
)

const (
	// Key pattern: savegame:{slot}
	saveKeyPrefix = "savegame:"
	// Set of every slot name
	slotIndexKey = "savegame_slots"
)

// RedisConfig holds the configuration for the Redis repository
type RedisConfig struct {
	Client redisclient.Client
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
}

// NewRedisRepository creates a new Redis repository for save slots
func NewRedisRepository(cfg *RedisConfig) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &redisRepository{client: cfg.Client}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}

	data, err := savegame.Encode(input.Document)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, saveKeyPrefix+input.Slot, data, 0)
	pipe.SAdd(ctx, slotIndexKey, input.Slot)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to save slot %s", input.Slot)
	}

	slog.Info("Game saved", "backend", "redis", "slot", input.Slot, "bytes", len(data))
	return &SaveOutput{Summary: Summarize(input.Slot, input.Document)}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := ValidateSlot(input.Slot); err != nil {
		return nil, err
	}

	result, err := r.client.Get(ctx, saveKeyPrefix+input.Slot).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf(errSlotNotFound, input.Slot)
		}
		return nil, errors.Wrapf(err, "failed to get save slot %s", input.Slot)
	}

	doc, err := decode(input.Slot, result)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Document: doc}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	slots, err := r.client.SMembers(ctx, slotIndexKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list save slots")
	}

	saves := []Summary{}
	if len(slots) == 0 {
		return &ListOutput{Saves: saves}, nil
	}

	keys := make([]string, len(slots))
	for i, slot := range slots {
		keys[i] = saveKeyPrefix + slot
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load save slots")
	}

	for i, v := range values {
		data, ok := v.(string)
		if !ok {
			slog.Warn("Save slot indexed but missing", "slot", slots[i])
			continue
		}
		doc, err := decode(slots[i], []byte(data))
		if err != nil {
			slog.Warn("Skipping unreadable save", "slot", slots[i], "error", err)
			continue
		}
		saves = append(saves, Summarize(slots[i], doc))
	}

	sortSummaries(saves)
	return &ListOutput{Saves: saves}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := ValidateSlot(input.Slot); err != nil {
		return nil, err
	}

	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, saveKeyPrefix+input.Slot)
		pipe.SRem(ctx, slotIndexKey, input.Slot)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete save slot %s", input.Slot)
	}
	if del.Val() == 0 {
		return nil, errors.NotFoundf(errSlotNotFound, input.Slot)
	}

	slog.Info("Save deleted", "backend", "redis", "slot", input.Slot)
	return &DeleteOutput{}, nil
}
