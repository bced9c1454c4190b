package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// RateLimiter はキーごとに一定時間に1回だけ処理を許可します
type RateLimiter interface {
	// Reserve はキーが空いていれば window の間押さえて true を返します。
	// 押さえられている場合は false と残り時間を返します。
	Reserve(ctx context.Context, key string, window time.Duration) (bool, time.Duration, error)
	// Release は Reserve で押さえたキーを解放します
	Release(ctx context.Context, key string) error
}

// RedisRateLimiter は SET NX EX で複数プロセス間の制限を共有します
type RedisRateLimiter struct {
	client redis.Cmdable
	prefix string
}

func NewRedisRateLimiter(client redis.Cmdable, prefix string) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, prefix: prefix}
}

func (l *RedisRateLimiter) Reserve(ctx context.Context, key string, window time.Duration) (bool, time.Duration, error) {
	k := l.prefix + key
	ok, err := l.client.SetNX(ctx, k, 1, window).Result()
	if err != nil {
		return false, 0, fmt.Errorf("RedisRateLimiter.Reserve: %w", err)
	}
	if ok {
		return true, 0, nil
	}
	ttl, err := l.client.TTL(ctx, k).Result()
	if err != nil {
		return false, 0, fmt.Errorf("RedisRateLimiter.Reserve: ttl: %w", err)
	}
	// 期限のないキー（-1）や直前に消えたキー（-2）は window 全体を待たせる
	if ttl <= 0 {
		ttl = window
	}
	return false, ttl, nil
}

func (l *RedisRateLimiter) Release(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.prefix+key).Err(); err != nil {
		return fmt.Errorf("RedisRateLimiter.Release: %w", err)
	}
	return nil
}

// MemoryRateLimiter は単一プロセス用の実装です
type MemoryRateLimiter struct {
	mu    sync.Mutex
	until map[string]time.Time
	now   func() time.Time
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{until: make(map[string]time.Time), now: time.Now}
}

func (l *MemoryRateLimiter) Reserve(_ context.Context, key string, window time.Duration) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if t, ok := l.until[key]; ok && now.Before(t) {
		return false, t.Sub(now), nil
	}
	l.until[key] = now.Add(window)

	// 期限切れのキーを掃除する
	for k, t := range l.until {
		if !now.Before(t) {
			delete(l.until, k)
		}
	}
	return true, 0, nil
}

func (l *MemoryRateLimiter) Release(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.until, key)
	return nil
}
