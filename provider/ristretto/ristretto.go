// Package ristretto is an in-process Transport backed by dgraph-io/ristretto.
// Useful for single-replica deployments and tests; FlushAll only clears this
// process's cache.
package ristretto

import (
	"bytes"
	"context"
	"errors"
	"time"

	rc "github.com/dgraph-io/ristretto"

	pr "github.com/unkn0wn-root/cachestore/provider"
)

type Transport struct {
	c *rc.Cache
}

var _ pr.Transport = (*Transport)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64 // bytes; each entry costs len(value)
	BufferItems int64
	Metrics     bool
}

func New(cfg Config) (*Transport, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Transport{c: c}, nil
}

func (p *Transport) Connect(context.Context) error { return nil }

func (p *Transport) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := p.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	if b == nil {
		// self-heal: drop unexpected entry shape
		p.c.Del(key)
		return nil, false, nil
	}
	// the cache holds the slice itself; callers get their own copy
	return bytes.Clone(b), true, nil
}

// Set waits for the write buffer so the value is visible to the next Get.
// Writes dropped by admission read back as misses.
func (p *Transport) Set(_ context.Context, key string, value []byte, _ uint32, ttl time.Duration) error {
	p.set(key, value, ttl)
	return nil
}

func (p *Transport) Replace(_ context.Context, key string, value []byte, _ uint32, ttl time.Duration) (bool, error) {
	if _, ok := p.c.Get(key); !ok {
		return false, nil
	}
	return p.set(key, value, ttl), nil
}

func (p *Transport) Delete(_ context.Context, key string) error {
	p.c.Del(key)
	return nil
}

func (p *Transport) FlushAll(context.Context) error {
	p.c.Clear()
	return nil
}

func (p *Transport) Close(_ context.Context) error {
	p.c.Wait()
	p.c.Close()
	return nil
}

// Helper to expose metrics if desired by the application (not part of provider.Transport).
func (p *Transport) Metrics() *rc.Metrics { return p.c.Metrics }

func (p *Transport) set(key string, value []byte, ttl time.Duration) bool {
	if ttl < 0 {
		ttl = 0
	}
	ok := p.c.SetWithTTL(key, bytes.Clone(value), int64(len(value)), ttl)
	p.c.Wait()
	return ok
}
