package cachestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	c "github.com/unkn0wn-root/cachestore/codec"
	"github.com/unkn0wn-root/cachestore/internal/util"
	pr "github.com/unkn0wn-root/cachestore/provider"
)

// entries carry no per-item flags
const entryFlags uint32 = 0

// journalRef holds the optional Journal. The zero value means none is
// configured; callers check ok before any tag/priority path.
type journalRef struct {
	j Journal
}

func (r journalRef) get() (Journal, bool) { return r.j, r.j != nil }

type storage struct {
	t       pr.Transport
	conn    *lazyConn
	prefix  string
	journal journalRef

	validators map[string]Validator
	cbCodec    c.Codec[[]Callback]

	log   Logger
	hooks Hooks
}

func newStorage(opts Options) (*storage, error) {
	if opts.Transport == nil {
		return nil, errors.New("cachestore: transport is required")
	}

	s := &storage{
		t:          opts.Transport,
		prefix:     opts.Prefix,
		journal:    journalRef{j: opts.Journal},
		validators: make(map[string]Validator, len(opts.Validators)),
	}
	for name, fn := range opts.Validators {
		if fn == nil {
			return nil, fmt.Errorf("cachestore: validator %q is nil", name)
		}
		s.validators[name] = fn
	}

	// defaults
	s.log = coalesce[Logger](opts.Logger, NopLogger{})
	s.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	s.cbCodec = coalesce[c.Codec[[]Callback]](opts.CallbackCodec, c.Msgpack[[]Callback]{})

	s.conn = newLazyConn(opts.Transport, opts.Addr, s.log, s.hooks)
	return s, nil
}

func (s *storage) Read(ctx context.Context, key string) ([]byte, bool, error) {
	if err := s.conn.ensure(ctx); err != nil {
		return nil, false, err
	}
	k := s.storageKey(key)
	raw, ok, err := s.t.Get(ctx, k)
	if err != nil {
		return nil, false, s.conn.wrap("read", err)
	}
	if !ok || len(raw) == 0 {
		return nil, false, nil
	}

	e, cbs, err := s.parseEnvelope(raw)
	if err != nil {
		return nil, false, s.drop(ctx, k, ReasonCorrupt)
	}
	if e.HasCallbacks && !s.valid(ctx, k, cbs) {
		return nil, false, s.drop(ctx, k, ReasonInvalid)
	}

	if e.HasDelta {
		delta := time.Duration(e.Delta) * time.Second
		renewed, err := s.t.Replace(ctx, k, raw, entryFlags, delta)
		if err != nil {
			return nil, false, s.conn.wrap("renew", err)
		}
		if renewed {
			s.hooks.EntryRenewed(k, delta)
		} else {
			// deleted between our get and replace; don't resurrect it
			s.log.Debug("renew skipped, entry gone", Fields{"key": k})
		}
	}
	return e.Data, true, nil
}

func (s *storage) Write(ctx context.Context, key string, data []byte, deps Dependencies) error {
	if len(deps.Items) > 0 {
		return &UnsupportedDependencyError{Key: key, Items: deps.Items}
	}
	if err := s.conn.ensure(ctx); err != nil {
		return err
	}

	raw, ttl, err := s.buildEnvelope(data, deps)
	if err != nil {
		return err
	}

	k := s.storageKey(key)
	if deps.indexed() {
		j, ok := s.journal.get()
		if !ok {
			return &JournalMissingError{Key: key}
		}
		if err := j.Write(ctx, k, deps); err != nil {
			return fmt.Errorf("cachestore: journal write %q: %w", key, err)
		}
	}

	if err := s.t.Set(ctx, k, raw, entryFlags, ttl); err != nil {
		return s.conn.wrap("write", err)
	}
	return nil
}

func (s *storage) Remove(ctx context.Context, key string) error {
	if err := s.conn.ensure(ctx); err != nil {
		return err
	}
	return s.conn.wrap("remove", s.t.Delete(ctx, s.storageKey(key)))
}

func (s *storage) Clean(ctx context.Context, conds Conditions) error {
	if err := s.conn.ensure(ctx); err != nil {
		return err
	}

	if conds.All {
		if err := s.t.FlushAll(ctx); err != nil {
			return s.conn.wrap("flush", err)
		}
		s.log.Info("transport flushed", Fields{"prefix": s.prefix})
		s.hooks.Flushed()
		return nil
	}

	j, ok := s.journal.get()
	if !ok || conds.IsZero() {
		// tag/priority conditions cannot be honored without a journal
		return nil
	}
	keys, err := j.Clean(ctx, conds)
	if err != nil {
		return fmt.Errorf("cachestore: journal clean: %w", err)
	}
	for _, k := range keys {
		if err := s.t.Delete(ctx, k); err != nil {
			return s.conn.wrap("clean", err)
		}
	}
	s.log.Debug("journal clean", Fields{"keys": len(keys)})
	s.hooks.JournalCleaned(len(keys))
	return nil
}

func (s *storage) Close(ctx context.Context) error {
	return s.conn.close(ctx)
}

// drop deletes a stored entry that must not be served.
func (s *storage) drop(ctx context.Context, storageKey, reason string) error {
	if err := s.t.Delete(ctx, storageKey); err != nil {
		return s.conn.wrap("read", err)
	}
	s.log.Debug("entry dropped", Fields{"key": storageKey, "reason": reason})
	s.hooks.EntryDropped(storageKey, reason)
	return nil
}

func (s *storage) storageKey(key string) string {
	return util.Namespaced(s.prefix, key)
}
