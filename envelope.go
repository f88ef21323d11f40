package cachestore

import (
	"fmt"
	"math"
	"time"

	"github.com/unkn0wn-root/cachestore/internal/wire"
)

// seconds rounds d up to whole seconds, clamped to the u32 delta field.
func seconds(d time.Duration) uint32 {
	if d <= 0 {
		return 0
	}
	s := d / time.Second
	if d%time.Second != 0 {
		s++
	}
	if s > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(s)
}

// buildEnvelope returns the encoded entry and the TTL to store it with.
func (s *storage) buildEnvelope(data []byte, deps Dependencies) ([]byte, time.Duration, error) {
	e := wire.Entry{Data: data}

	var ttl time.Duration
	if secs := seconds(deps.Expire); secs > 0 {
		ttl = time.Duration(secs) * time.Second
		if deps.Sliding {
			e.Delta = secs
			e.HasDelta = true
		}
	}

	if deps.Callbacks != nil {
		b, err := s.cbCodec.Encode(deps.Callbacks)
		if err != nil {
			return nil, 0, fmt.Errorf("cachestore: encode callbacks: %w", err)
		}
		e.Callbacks = b
		e.HasCallbacks = true
	}
	return wire.Encode(e), ttl, nil
}

// parseEnvelope decodes raw and its callback list. Any failure means the
// stored bytes are unusable.
func (s *storage) parseEnvelope(raw []byte) (wire.Entry, []Callback, error) {
	e, err := wire.Decode(raw)
	if err != nil {
		return wire.Entry{}, nil, err
	}
	if !e.HasCallbacks || len(e.Callbacks) == 0 {
		return e, nil, nil
	}
	cbs, err := s.cbCodec.Decode(e.Callbacks)
	if err != nil {
		return wire.Entry{}, nil, fmt.Errorf("%w: callbacks: %v", wire.ErrCorrupt, err)
	}
	return e, cbs, nil
}
