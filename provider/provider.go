// Package provider defines the transport abstraction used by cachestore.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly the
// same []byte that was previously passed to Set or Replace for a key (no
// prepended/appended metadata, no re-encoding, no mutation).
//
// Keys handed to a Transport are already namespaced by cachestore. A Transport
// never interprets them beyond whatever limits the backing server imposes.
package provider

import (
	"context"
	"time"
)

// Transport is a key/value cache client working on raw keys.
//
// A ttl <= 0 means "no expiry". Flags are opaque per-item bits stored next to
// the value by servers that support them (memcached) and ignored elsewhere.
type Transport interface {
	// Connect establishes the connection to the server. cachestore calls it
	// once, lazily, before the first operation.
	Connect(ctx context.Context) error

	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value unconditionally.
	Set(ctx context.Context, key string, value []byte, flags uint32, ttl time.Duration) error

	// Replace stores value only if key currently exists.
	// Returns ok=false (and a nil error) when the key was absent.
	Replace(ctx context.Context, key string, value []byte, flags uint32, ttl time.Duration) (ok bool, err error)

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// FlushAll drops every key the server (or database) holds, regardless of
	// any namespace prefix.
	FlushAll(ctx context.Context) error

	// Close releases resources.
	Close(ctx context.Context) error
}

// Prober is implemented by transports that can tell, without connecting,
// whether they are usable in the current runtime.
type Prober interface {
	Available() bool
}
