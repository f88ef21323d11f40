package cachestore

import "time"

// Drop reasons passed to Hooks.EntryDropped.
const (
	ReasonCorrupt     = "corrupt"
	ReasonInvalid     = "invalid"
	ReasonValueDecode = "value_decode"
)

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The storage calls them on hot paths.
type Hooks interface {
	// The transport connection was established.
	Connected(addr string)

	// An entry was deleted by the storage on read.
	// reason ∈ {"corrupt", "invalid", "value_decode"}
	EntryDropped(storageKey, reason string)

	// A sliding entry had its TTL reset to delta.
	EntryRenewed(storageKey string, delta time.Duration)

	// Clean(All) flushed the transport.
	Flushed()

	// Clean deleted count keys resolved by the Journal.
	JournalCleaned(count int)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Connected(string)                   {}
func (NopHooks) EntryDropped(string, string)        {}
func (NopHooks) EntryRenewed(string, time.Duration) {}
func (NopHooks) Flushed()                           {}
func (NopHooks) JournalCleaned(int)                 {}
