// Package bigcache is an in-process Transport backed by allegro/bigcache.
//
// BigCache has no per-entry TTL: every entry lives for the configured
// LifeWindow no matter what ttl the caller passes, so sliding expiration
// degrades to "LifeWindow since last write or renewal".
package bigcache

import (
	"context"
	"errors"
	"time"

	bc "github.com/allegro/bigcache/v3"

	pr "github.com/unkn0wn-root/cachestore/provider"
)

type Transport struct {
	c *bc.BigCache
}

var _ pr.Transport = (*Transport)(nil)

type Config struct {
	LifeWindow         time.Duration
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

func New(ctx context.Context, cfg Config) (*Transport, error) {
	conf := bc.DefaultConfig(cfg.LifeWindow)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.New(ctx, conf)
	if err != nil {
		return nil, err
	}
	return &Transport{c: c}, nil
}

func (p *Transport) Connect(context.Context) error { return nil }

func (p *Transport) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, err := p.c.Get(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (p *Transport) Set(_ context.Context, key string, value []byte, _ uint32, _ time.Duration) error {
	return p.c.Set(key, value)
}

func (p *Transport) Replace(_ context.Context, key string, value []byte, _ uint32, _ time.Duration) (bool, error) {
	if _, err := p.c.Get(key); err != nil {
		if errors.Is(err, bc.ErrEntryNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := p.c.Set(key, value); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Transport) Delete(_ context.Context, key string) error {
	if err := p.c.Delete(key); err != nil && !errors.Is(err, bc.ErrEntryNotFound) {
		return err
	}
	return nil
}

func (p *Transport) FlushAll(context.Context) error {
	return p.c.Reset()
}

func (p *Transport) Close(_ context.Context) error {
	return p.c.Close()
}
