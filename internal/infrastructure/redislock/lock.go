// Package redislock candado por comanda en Redis (SETNX + TTL) para que dos réplicas del servicio
// no entreguen la misma comanda a la vez.
package redislock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/pkg/config"
	"github.com/jhoicas/bodega-api/pkg/logger"
)

const (
	keyPrefix      = "bodega:order-lock:"
	defaultLockTTL = 30 * time.Second
	releaseTimeout = 2 * time.Second
)

var _ inventory.OrderLocker = (*Locker)(nil)

// store operaciones de Redis que usa el candado.
type store interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) *redis.BoolCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Locker implementa inventory.OrderLocker.
type Locker struct {
	client store
	ttl    time.Duration
	log    *logger.Logger
}

// New construye el candado sobre un cliente de Redis.
func New(client store, ttl time.Duration, log *logger.Logger) (*Locker, error) {
	if client == nil {
		return nil, errors.New("redis client required for lock")
	}
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Locker{client: client, ttl: ttl, log: log}, nil
}

// Lock toma el candado de orderID. Si otro proceso lo tiene devuelve domain.ErrConcurrencyConflict.
// unlock solo borra la llave si sigue siendo nuestra.
func (l *Locker) Lock(ctx context.Context, orderID string) (func(), error) {
	key := keyPrefix + orderID
	owner := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key, owner, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("setnx: %w", err)
	}
	if !ok {
		return nil, domain.ErrConcurrencyConflict
	}
	return func() {
		// El ctx de la petición puede estar cancelado; la liberación usa uno propio.
		rctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()
		if err := l.release(rctx, key, owner); err != nil {
			l.log.Warn().Err(err).Str("order_id", orderID).Msg("no se pudo liberar el candado de la comanda")
		}
	}, nil
}

func (l *Locker) release(ctx context.Context, key, owner string) error {
	value, err := l.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("read lock owner: %w", err)
	}
	if value != owner {
		return nil
	}
	if err := l.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete lock: %w", err)
	}
	return nil
}

// NewClient abre la conexión a Redis desde la configuración (URL o dirección) y la verifica con Ping.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	var opts *redis.Options
	switch {
	case cfg.URL != "":
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	case cfg.Address != "":
		opts = &redis.Options{Addr: cfg.Address, Password: cfg.Password, DB: cfg.DB}
	default:
		return nil, errors.New("redis url or address is required")
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
