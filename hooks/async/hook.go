// usage:
//
//	raw := sloghook.New(slog.Default(), sloghook.Options{
//	    DropEvery:  10, // sample logs: ~every 10th drop
//	    RenewEvery: 100,
//	})
//
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	store, _ := cachestore.New(cachestore.Options{
//	    Transport: transport,
//	    Prefix:    "app:prod",
//	    Hooks:     hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"
	"time"

	"github.com/unkn0wn-root/cachestore"
)

// Hooks forwards events to inner on a bounded worker pool. Events that
// do not fit in the queue are dropped.
type Hooks struct {
	inner cachestore.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ cachestore.Hooks = (*Hooks)(nil)

func New(inner cachestore.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains the queue and waits for workers. Must not race with
// further hook calls.
func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) Connected(addr string) { h.try(func() { h.inner.Connected(addr) }) }
func (h *Hooks) Flushed()              { h.try(func() { h.inner.Flushed() }) }
func (h *Hooks) JournalCleaned(n int)  { h.try(func() { h.inner.JournalCleaned(n) }) }
func (h *Hooks) EntryDropped(k, r string) {
	h.try(func() { h.inner.EntryDropped(k, r) })
}
func (h *Hooks) EntryRenewed(k string, d time.Duration) {
	h.try(func() { h.inner.EntryRenewed(k, d) })
}
