// Package sloghook logs storage events to a *slog.Logger with optional
// sampling of the high-volume ones.
package sloghook

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/unkn0wn-root/cachestore"
	"github.com/unkn0wn-root/cachestore/internal/util"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	DropEvery  uint64
	RenewEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	dropCtr  atomic.Uint64
	renewCtr atomic.Uint64
}

var _ cachestore.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	return util.Redact(k)
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) Connected(addr string) {
	if h.l == nil {
		return
	}
	h.l.Info("cachestore.connected", "addr", addr)
}

func (h *Hooks) EntryDropped(storageKey, reason string) {
	if h.l == nil || !sample(h.opts.DropEvery, &h.dropCtr) {
		return
	}
	level := slog.LevelDebug
	if reason == cachestore.ReasonCorrupt {
		level = slog.LevelWarn
	}
	h.l.Log(context.Background(), level, "cachestore.entry_dropped",
		"key", h.redact(storageKey),
		"reason", reason)
}

func (h *Hooks) EntryRenewed(storageKey string, delta time.Duration) {
	if h.l == nil || !sample(h.opts.RenewEvery, &h.renewCtr) {
		return
	}
	h.l.Debug("cachestore.entry_renewed",
		"key", h.redact(storageKey),
		"delta", delta)
}

func (h *Hooks) Flushed() {
	if h.l == nil {
		return
	}
	h.l.Warn("cachestore.flushed")
}

func (h *Hooks) JournalCleaned(count int) {
	if h.l == nil {
		return
	}
	h.l.Info("cachestore.journal_cleaned", "count", count)
}
