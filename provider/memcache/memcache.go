// Package memcache is a Transport over a memcached server pool.
package memcache

import (
	"context"
	"errors"
	"math"
	"time"

	gm "github.com/bradfitz/gomemcache/memcache"

	pr "github.com/unkn0wn-root/cachestore/provider"
)

// DefaultAddr is used when Config.Servers is empty.
const DefaultAddr = "localhost:11211"

// memcached reads expirations above this many seconds as unix timestamps.
const relativeLimit = 30 * 24 * time.Hour

type Config struct {
	Servers      []string      // host:port; empty => DefaultAddr
	Timeout      time.Duration // socket read/write timeout; 0 => client default
	MaxIdleConns int           // 0 => client default
}

type Memcache struct {
	c       *gm.Client
	servers []string
}

var (
	_ pr.Transport = (*Memcache)(nil)
	_ pr.Prober    = (*Memcache)(nil)
)

// New builds the client. No connection is opened until Connect or the first
// operation.
func New(cfg Config) *Memcache {
	servers := cfg.Servers
	if len(servers) == 0 {
		servers = []string{DefaultAddr}
	}
	c := gm.New(servers...)
	if cfg.Timeout > 0 {
		c.Timeout = cfg.Timeout
	}
	if cfg.MaxIdleConns > 0 {
		c.MaxIdleConns = cfg.MaxIdleConns
	}
	return &Memcache{c: c, servers: servers}
}

// Available reports whether at least one server is configured.
func (m *Memcache) Available() bool { return m != nil && m.c != nil && len(m.servers) > 0 }

// Connect pings every server in the pool.
// The client has no context support; ctx is only checked up front.
func (m *Memcache) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.c.Ping()
}

func (m *Memcache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	it, err := m.c.Get(key)
	if errors.Is(err, gm.ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return it.Value, true, nil
}

func (m *Memcache) Set(ctx context.Context, key string, value []byte, flags uint32, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.c.Set(&gm.Item{Key: key, Value: value, Flags: flags, Expiration: expiration(ttl, time.Now())})
}

func (m *Memcache) Replace(ctx context.Context, key string, value []byte, flags uint32, ttl time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	err := m.c.Replace(&gm.Item{Key: key, Value: value, Flags: flags, Expiration: expiration(ttl, time.Now())})
	if errors.Is(err, gm.ErrNotStored) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (m *Memcache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.c.Delete(key); err != nil && !errors.Is(err, gm.ErrCacheMiss) {
		return err
	}
	return nil
}

// FlushAll invalidates every item on every server in the pool.
func (m *Memcache) FlushAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.c.FlushAll()
}

// Close is a no-op; idle connections are dropped by the server.
func (m *Memcache) Close(context.Context) error { return nil }

// expiration converts ttl to memcached's exptime. Sub-second TTLs round up to
// one second so they never read as "no expiry"; TTLs past the relative limit
// are sent as absolute unix time, capped at the largest exptime memcached
// accepts.
func expiration(ttl time.Duration, now time.Time) int32 {
	if ttl <= 0 {
		return 0
	}
	if ttl > relativeLimit {
		at := now.Add(ttl).Unix()
		if at > math.MaxInt32 {
			return math.MaxInt32
		}
		return int32(at)
	}
	secs := int32(ttl / time.Second)
	if ttl%time.Second != 0 {
		secs++
	}
	return secs
}
