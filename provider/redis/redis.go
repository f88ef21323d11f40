package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pr "github.com/unkn0wn-root/cachestore/provider"
)

var ErrNilClient = errors.New("redis transport: nil client")

// Redis is a Transport over a go-redis client.
// Flags are not representable in Redis and are dropped.
type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

var (
	_ pr.Transport = (*Redis)(nil)
	_ pr.Prober    = (*Redis)(nil)
)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool // set true only if this transport exclusively owns the client
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, closeClient: cfg.CloseClient}, nil
}

// NewFromAddr builds a client for addr and owns it.
func NewFromAddr(addr, password string, db int) *Redis {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Redis{rdb: rdb, closeClient: true}
}

func (p *Redis) Available() bool { return p != nil && p.rdb != nil }

func (p *Redis) Connect(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}

func (p *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := p.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	return b, true, nil
}

func (p *Redis) Set(ctx context.Context, key string, value []byte, _ uint32, ttl time.Duration) error {
	return p.rdb.Set(ctx, key, value, expiry(ttl)).Err()
}

// Replace maps to SET XX.
func (p *Redis) Replace(ctx context.Context, key string, value []byte, _ uint32, ttl time.Duration) (bool, error) {
	ok, err := p.rdb.SetXX(ctx, key, value, expiry(ttl)).Result()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (p *Redis) Delete(ctx context.Context, key string) error {
	return p.rdb.Del(ctx, key).Err()
}

// FlushAll empties the selected database (FLUSHDB). Every key in it goes,
// not just the ones written through cachestore.
func (p *Redis) FlushAll(ctx context.Context) error {
	return p.rdb.FlushDB(ctx).Err()
}

// Close releases the underlying redis client only when this transport owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (p *Redis) Close(context.Context) error {
	if p.closeClient {
		if err := p.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}

// non-positive TTLs mean "no expiry"; go-redis expresses that as 0
func expiry(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	return ttl
}
