package api

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisRateCounter is the part of the redis client the login limiter needs.
type redisRateCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// loginLimiter 按 IP+用户名 统计每小时的登录次数，计数器随整点窗口过期。
type loginLimiter struct {
	client  redisRateCounter
	perHour int
	now     func() time.Time
}

func newLoginLimiter(client redisRateCounter, perHour int) *loginLimiter {
	if client == nil || perHour <= 0 {
		return nil
	}
	return &loginLimiter{client: client, perHour: perHour, now: time.Now}
}

func (l *loginLimiter) key(ip, username string) string {
	hour := l.now().UTC().Format("2006010215")
	return "rate:login:" + ip + ":" + strings.ToLower(username) + ":" + hour
}

// Allow records one attempt. A nil limiter allows everything; a counter
// error is returned alongside true so the caller can log and let the
// attempt through.
func (l *loginLimiter) Allow(ctx context.Context, ip, username string) (bool, error) {
	if l == nil {
		return true, nil
	}
	key := l.key(ip, username)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return true, err
	}
	if count == 1 {
		_ = l.client.Expire(ctx, key, time.Hour).Err()
	}
	return count <= int64(l.perHour), nil
}
