package repositories

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"folio-gate/domain"
	"folio-gate/errors"

	"github.com/go-redis/redis/v8"
	"github.com/samber/lo"
)

const (
	redisKeyPrefix = "ratelimit:"
	fieldCount     = "count"
	fieldReset     = "reset_ms"
)

// RedisRateLimitRepository keeps one hash per client:
// ratelimit:{key} -> {count, reset_ms}, expiring with its window.
type RedisRateLimitRepository struct {
	client *redis.Client
}

func NewRedisRateLimitRepository(ctx context.Context, addr, password string, db int) (*RedisRateLimitRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &RedisRateLimitRepository{client: client}, nil
}

func (r *RedisRateLimitRepository) Get(ctx context.Context, key string) (domain.RateLimitEntry, bool, error) {
	values, err := r.client.HGetAll(ctx, redisKeyPrefix+key).Result()
	if err != nil {
		return domain.RateLimitEntry{}, false, err
	}
	if len(values) == 0 {
		return domain.RateLimitEntry{}, false, nil
	}
	count, err := strconv.Atoi(values[fieldCount])
	if err != nil {
		return domain.RateLimitEntry{}, false, fmt.Errorf("corrupted count for %q: %w", key, err)
	}
	resetMs, err := strconv.ParseInt(values[fieldReset], 10, 64)
	if err != nil {
		return domain.RateLimitEntry{}, false, fmt.Errorf("corrupted reset for %q: %w", key, err)
	}
	return domain.RateLimitEntry{
		ClientKey:     key,
		Count:         count,
		WindowResetAt: time.UnixMilli(resetMs).UTC(),
	}, true, nil
}

func (r *RedisRateLimitRepository) Set(ctx context.Context, entry domain.RateLimitEntry) error {
	key := redisKeyPrefix + entry.ClientKey
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, fieldCount, entry.Count, fieldReset, entry.WindowResetAt.UnixMilli())
		// One extra second so the hash outlives the instant it is compared against.
		pipe.PExpireAt(ctx, key, entry.WindowResetAt.Add(time.Second))
		return nil
	})
	return err
}

func (r *RedisRateLimitRepository) Increment(ctx context.Context, key string) (int, error) {
	count, err := incrementScript.Run(ctx, r.client, []string{redisKeyPrefix + key}).Int()
	if err == redis.Nil {
		return 0, fmt.Errorf("increment %q: %w", key, errors.ErrEntryNotFound)
	}
	return count, err
}

// Take runs reset-or-check-or-increment as a single script.
func (r *RedisRateLimitRepository) Take(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (domain.RateLimitDecision, error) {
	reply, err := takeScript.Run(ctx, r.client, []string{redisKeyPrefix + key},
		limit, window.Milliseconds(), now.UnixMilli()).Slice()
	if err != nil {
		return domain.RateLimitDecision{}, err
	}
	if len(reply) < 3 {
		return domain.RateLimitDecision{}, fmt.Errorf("unexpected take reply %v", reply)
	}
	res := lo.Map(reply, func(v any, _ int) int64 { n, _ := v.(int64); return n })
	entry := domain.RateLimitEntry{ClientKey: key, Count: int(res[1]), WindowResetAt: time.UnixMilli(res[2]).UTC()}
	decision := domain.RateLimitDecision{Allowed: res[0] == 1, Count: entry.Count, ResetAt: entry.WindowResetAt}
	if !decision.Allowed {
		decision.RetryAfterSeconds = entry.RetryAfter(now)
	}
	return decision, nil
}

func (r *RedisRateLimitRepository) Close() error {
	return r.client.Close()
}

var incrementScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then return nil end
return redis.call("HINCRBY", KEYS[1], "count", 1)
`)

var takeScript = redis.NewScript(`
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window_ms = tonumber(ARGV[2])
local now_ms = tonumber(ARGV[3])

local count = tonumber(redis.call("HGET", key, "count"))
local reset_ms = tonumber(redis.call("HGET", key, "reset_ms"))

if count == nil or reset_ms == nil or now_ms > reset_ms then
  reset_ms = now_ms + window_ms
  redis.call("HSET", key, "count", 1, "reset_ms", reset_ms)
  redis.call("PEXPIREAT", key, reset_ms + 1000)
  return {1, 1, reset_ms}
end

if count >= limit then
  return {0, count, reset_ms}
end

count = redis.call("HINCRBY", key, "count", 1)
return {1, count, reset_ms}
`)
