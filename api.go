package cachestore

import (
	"context"
	"time"

	c "github.com/unkn0wn-root/cachestore/codec"
	pr "github.com/unkn0wn-root/cachestore/provider"
)

// Storage is the cache-storage API. Values are opaque bytes; see Typed for a
// codec-backed wrapper.
type Storage interface {
	// Read returns the stored data. A missing, expired, corrupt or invalidated
	// entry is reported as ok=false with a nil error. The returned slice
	// belongs to the caller.
	Read(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Write stores data under key, replacing any previous entry.
	Write(ctx context.Context, key string, data []byte, deps Dependencies) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Clean drops entries matching conds.
	Clean(ctx context.Context, conds Conditions) error

	Close(ctx context.Context) error
}

// Dependencies describe how a written entry expires and gets invalidated.
type Dependencies struct {
	// Expire is the TTL from now. 0 means no expiration. Sub-second parts are
	// rounded up to whole seconds.
	Expire time.Duration

	// Sliding turns Expire into a window renewed on every successful read.
	// Ignored when Expire is 0.
	Sliding bool

	// Callbacks are stored with the entry and evaluated on every read.
	// nil means none; a non-nil empty slice is stored and is always valid.
	Callbacks []Callback

	// Tags and Priority are handed to the Journal.
	Tags     []string
	Priority *int

	// Items (dependencies on other cache entries) are not supported; a
	// non-empty value fails the write with UnsupportedDependencyError.
	Items []string
}

func (d Dependencies) indexed() bool {
	return len(d.Tags) > 0 || d.Priority != nil
}

// Callback references a registered Validator by name together with the
// arguments it is called with. Args must be encodable by the callback codec.
type Callback struct {
	Name string `json:"name" msgpack:"name" cbor:"name"`
	Args []any  `json:"args" msgpack:"args" cbor:"args"`
}

// Validator decides whether an entry is still valid. Returning false or an
// error invalidates (and deletes) the entry.
type Validator func(ctx context.Context, args []any) (bool, error)

// Conditions select entries for Clean.
type Conditions struct {
	// All flushes the whole transport; other fields are ignored.
	All bool

	// Tags and Priority are interpreted by the Journal only.
	Tags     []string
	Priority *int
}

// IsZero reports whether no condition is set.
func (c Conditions) IsZero() bool {
	return !c.All && len(c.Tags) == 0 && c.Priority == nil
}

// Journal indexes tag/priority metadata per storage key and resolves clean
// conditions to storage keys.
type Journal interface {
	Write(ctx context.Context, key string, deps Dependencies) error
	// Clean returns the storage keys to delete. The result is consumed once.
	Clean(ctx context.Context, conds Conditions) ([]string, error)
}

// Options configure New. Only Transport is required.
type Options struct {
	Transport pr.Transport
	Prefix    string  // prepended to every key; may be empty
	Journal   Journal // nil => tags/priority unsupported

	Validators    map[string]Validator
	CallbackCodec c.Codec[[]Callback] // nil => msgpack

	Logger Logger // nil => NopLogger
	Hooks  Hooks  // nil => NopHooks
	Addr   string // only used in logs and hooks
}

func New(opts Options) (Storage, error) {
	return newStorage(opts)
}
