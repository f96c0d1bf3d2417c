package lock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Значения по умолчанию для RedisGate.
const (
	DefaultTTL          = 5 * time.Minute
	DefaultPollInterval = 100 * time.Millisecond
	DefaultPrefix       = "kannon:"
)

// unlockScript удаляет ключ, только если он принадлежит держателю.
const unlockScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`

// RedisConfig: конфигурация RedisGate.
type RedisConfig struct {
	// Key: имя области (обычно run ID).
	Key string

	// Prefix: префикс ключей (по умолчанию "kannon:").
	Prefix string

	// TTL ключа. Держатель, не освободивший область за TTL,
	// теряет её; TTL должен превышать длительность тела задачи.
	TTL time.Duration

	// PollInterval: период повторных попыток SET NX.
	PollInterval time.Duration

	Logger *slog.Logger
}

// RedisGate: эксклюзивная область, разделяемая процессами через Redis.
type RedisGate struct {
	client   *redis.Client
	key      string
	ttl      time.Duration
	interval time.Duration
	logger   *slog.Logger
}

// NewRedisGate создаёт RedisGate.
func NewRedisGate(client *redis.Client, cfg RedisConfig) *RedisGate {
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &RedisGate{
		client:   client,
		key:      cfg.Prefix + "lock:" + cfg.Key,
		ttl:      cfg.TTL,
		interval: cfg.PollInterval,
		logger:   cfg.Logger,
	}
}

// Key возвращает ключ области в Redis.
func (g *RedisGate) Key() string {
	return g.key
}

// Acquire входит в область, опрашивая Redis каждые PollInterval.
func (g *RedisGate) Acquire(ctx context.Context) (Release, error) {
	token := uuid.NewString()

	ok, err := g.tryAcquire(ctx, token)
	if err != nil {
		return nil, err
	}
	if ok {
		return g.release(token), nil
	}

	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			ok, err := g.tryAcquire(ctx, token)
			if err != nil {
				return nil, err
			}
			if ok {
				return g.release(token), nil
			}
		}
	}
}

func (g *RedisGate) tryAcquire(ctx context.Context, token string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key, token, g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrLockAcquire, err)
	}
	return ok, nil
}

// release использует собственный контекст: область должна освобождаться
// и после отмены контекста задачи.
func (g *RedisGate) release(token string) Release {
	return once(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := g.client.Eval(ctx, unlockScript, []string{g.key}, token).Err(); err != nil {
			g.logger.Error("release exclusive region",
				"key", g.key,
				"error", fmt.Errorf("%w: %w", ErrLockRelease, err),
			)
		}
	})
}
