package cachestore

import (
	"context"
	"fmt"

	c "github.com/unkn0wn-root/cachestore/codec"
)

// Typed wraps a Storage with a value codec.
type Typed[V any] struct {
	Storage
	codec c.Codec[V]
	hooks Hooks
	key   func(string) string
}

// NewTyped returns a codec-backed view over s.
func NewTyped[V any](s Storage, codec c.Codec[V]) *Typed[V] {
	t := &Typed[V]{Storage: s, codec: codec, hooks: NopHooks{}, key: func(k string) string { return k }}
	if st, ok := s.(*storage); ok {
		t.hooks = st.hooks
		t.key = st.storageKey
	}
	return t
}

// Get reads and decodes key. A payload the codec rejects is removed and
// reported as a miss.
func (t *Typed[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	b, ok, err := t.Read(ctx, key)
	if err != nil || !ok {
		return zero, false, err
	}
	v, err := t.codec.Decode(b)
	if err != nil {
		if err := t.Remove(ctx, key); err != nil {
			return zero, false, err
		}
		t.hooks.EntryDropped(t.key(key), ReasonValueDecode)
		return zero, false, nil
	}
	return v, true, nil
}

func (t *Typed[V]) Set(ctx context.Context, key string, value V, deps Dependencies) error {
	b, err := t.codec.Encode(value)
	if err != nil {
		return fmt.Errorf("cachestore: encode %q: %w", key, err)
	}
	return t.Write(ctx, key, b, deps)
}
