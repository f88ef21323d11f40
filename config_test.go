package cachestore

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Host != "localhost" || cfg.Port != 11211 || cfg.Prefix != "" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if got := cfg.Addr(); got != "localhost:11211" {
		t.Fatalf("Addr=%q", got)
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()

	got := base.Merge(Config{Prefix: "app:"})
	if got.Host != DefaultHost || got.Port != DefaultPort || got.Prefix != "app:" {
		t.Fatalf("zero override fields must keep defaults: %+v", got)
	}

	got = base.Merge(Config{Host: "cache.internal", Port: 6379})
	if got.Addr() != "cache.internal:6379" {
		t.Fatalf("Addr=%q", got.Addr())
	}
}

func TestConfigAddrFillsDefaults(t *testing.T) {
	if got := (Config{}).Addr(); got != "localhost:11211" {
		t.Fatalf("Addr=%q", got)
	}
	if got := (Config{Host: "::1"}).Addr(); got != "[::1]:11211" {
		t.Fatalf("ipv6 Addr=%q", got)
	}
}
