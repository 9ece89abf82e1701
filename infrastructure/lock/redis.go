package lock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	keyPrefix       = "adsync:lock:"
	defaultTimeout  = 10 * time.Second
	defaultInterval = 100 * time.Millisecond
)

var ErrLockTimeout = errors.New("timed out waiting for lock")

// só remove a chave se ela ainda pertence a quem adquiriu
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Connect aceita tanto redis://... quanto host:porta
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	var client *redis.Client
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: redisURL})
	}

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

// RedisLocker é um lock consultivo por chave, usado para serializar o refresh
// de token de uma mesma conexão entre instâncias.
type RedisLocker struct {
	client   *redis.Client
	timeout  time.Duration
	interval time.Duration
}

func NewRedisLocker(client *redis.Client, timeout time.Duration) *RedisLocker {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &RedisLocker{
		client:   client,
		timeout:  timeout,
		interval: defaultInterval,
	}
}

// Acquire espera até conseguir a chave ou estourar o timeout. A chave expira
// sozinha depois de ttl caso o processo morra segurando o lock.
func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	token := uuid.NewString()
	redisKey := keyPrefix + key

	waitCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(waitCtx, redisKey, token, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			break
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
		case <-ticker.C:
		}
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := releaseScript.Run(releaseCtx, l.client, []string{redisKey}, token).Err(); err != nil {
			logrus.WithFields(logrus.Fields{
				"key":   key,
				"error": err.Error(),
			}).Warn("lock: failed to release")
		}
	}

	return release, nil
}
