// Package cachestore is a cache-storage backend over an external key/value
// server (memcached, Redis, or an in-process store) with expiration,
// validation callbacks and tag/priority invalidation.
//
// Components:
//   - Transport: raw key/value client (see package provider).
//   - Storage: read/write/remove/clean over a Transport. Every value is stored
//     inside an envelope that carries an optional sliding-expiration window
//     and optional validation callbacks.
//   - Journal: optional collaborator that indexes tags/priority per key and
//     resolves clean conditions to the keys to purge.
//
// Keys:
//
//	<prefix><key>  - every entry; the Journal sees the same key
//
// Read path:
//
//	get -> decode envelope -> run callbacks (any false => delete, miss)
//	    -> sliding? replace with ttl=delta -> data
//
// Clean with All flushes the whole server (or Redis database), not only keys
// under this storage's prefix: transports have no per-prefix flush.
package cachestore
