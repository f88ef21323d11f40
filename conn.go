package cachestore

import (
	"context"
	"sync"

	pr "github.com/unkn0wn-root/cachestore/provider"
)

type connState uint8

const (
	stateDisconnected connState = iota
	stateConnected
)

func (s connState) String() string {
	if s == stateConnected {
		return "connected"
	}
	return "disconnected"
}

// lazyConn defers Transport.Connect until the first operation.
// A failed connect leaves it disconnected, so the next operation tries again.
type lazyConn struct {
	t     pr.Transport
	addr  string
	log   Logger
	hooks Hooks

	mu    sync.Mutex
	state connState
}

func newLazyConn(t pr.Transport, addr string, log Logger, hooks Hooks) *lazyConn {
	return &lazyConn{t: t, addr: addr, log: log, hooks: hooks}
}

// ensure connects on first use and is a no-op afterwards.
func (l *lazyConn) ensure(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == stateConnected {
		return nil
	}
	if err := l.t.Connect(ctx); err != nil {
		return &ConnectionError{Op: "connect", Addr: l.addr, Err: err}
	}
	l.state = stateConnected
	l.log.Debug("transport connected", Fields{"addr": l.addr})
	l.hooks.Connected(l.addr)
	return nil
}

// wrap turns a transport failure during op into a ConnectionError.
func (l *lazyConn) wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ConnectionError{Op: op, Addr: l.addr, Err: err}
}

func (l *lazyConn) connected() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state == stateConnected
}

func (l *lazyConn) close(ctx context.Context) error {
	l.mu.Lock()
	l.state = stateDisconnected
	l.mu.Unlock()
	return l.t.Close(ctx)
}

// IsAvailable reports whether t can be used in this runtime, without
// connecting. Transports that do not implement provider.Prober are assumed
// available.
func IsAvailable(t pr.Transport) bool {
	if t == nil {
		return false
	}
	if p, ok := t.(pr.Prober); ok {
		return p.Available()
	}
	return true
}
