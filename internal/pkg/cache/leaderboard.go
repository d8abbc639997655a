package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	leaderboardKey    = "castquest:leaderboard"
	leaderboardGenKey = "castquest:leaderboard:gen"
)

// LeaderboardCache 排行榜快照缓存。快照按代号存储，积分写入后代号加一，
// 旧代号下构建的快照不会再被读到
type LeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLeaderboardCache(client *redis.Client, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{client: client, ttl: ttl}
}

func snapshotKey(gen int64) string {
	return leaderboardKey + ":" + strconv.FormatInt(gen, 10)
}

// Generation 当前代号，从未失效过时为 0
func (c *LeaderboardCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, leaderboardGenKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Get 读取指定代号的快照到 dest，未命中返回 false
func (c *LeaderboardCache) Get(ctx context.Context, gen int64, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, snapshotKey(gen)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode leaderboard snapshot: %w", err)
	}
	return true, nil
}

// Set 把快照写到构建开始时读到的代号下
func (c *LeaderboardCache) Set(ctx context.Context, gen int64, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode leaderboard snapshot: %w", err)
	}
	return c.client.Set(ctx, snapshotKey(gen), data, c.ttl).Err()
}

// Invalidate 代号加一，旧快照等 TTL 过期
func (c *LeaderboardCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, leaderboardGenKey).Err()
}
