package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const (
	version byte = 1

	flagDelta     byte = 1 << 0
	flagCallbacks byte = 1 << 1
	knownFlags         = flagDelta | flagCallbacks
)

var (
	ErrCorrupt = errors.New("cachestore: corrupt entry")
	magic4     = [...]byte{'C', 'S', 'T', 'E'}
)

// Entry is the envelope stored under every key.
// Presence is explicit: HasDelta/HasCallbacks distinguish an absent field
// from a zero delta or an empty callback list.
type Entry struct {
	Data         []byte
	Delta        uint32 // sliding window, seconds
	HasDelta     bool
	Callbacks    []byte // encoded validation list
	HasCallbacks bool
}

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Encode lays out:
//
//	magic(4) | ver(1) | flags(1) | [delta(u32 be)] | dlen(u32 be) | data(dlen) | [clen(u32 be) | callbacks(clen)]
func Encode(e Entry) []byte {
	size := 4 + 1 + 1 + 4 + len(e.Data)
	var flags byte
	if e.HasDelta {
		flags |= flagDelta
		size += 4
	}
	if e.HasCallbacks {
		flags |= flagCallbacks
		size += 4 + len(e.Callbacks)
	}

	var buf bytes.Buffer
	buf.Grow(size)

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(flags)

	var u4 [4]byte
	if e.HasDelta {
		binary.BigEndian.PutUint32(u4[:], e.Delta)
		buf.Write(u4[:])
	}

	binary.BigEndian.PutUint32(u4[:], uint32(len(e.Data)))
	buf.Write(u4[:])
	buf.Write(e.Data)

	if e.HasCallbacks {
		binary.BigEndian.PutUint32(u4[:], uint32(len(e.Callbacks)))
		buf.Write(u4[:])
		buf.Write(e.Callbacks)
	}
	return buf.Bytes()
}

// Decode parses an envelope. Returned slices alias b.
func Decode(b []byte) (Entry, error) {
	const hdr = 4 + 1 + 1
	if len(b) < hdr || !hasMagic(b) || b[4] != version {
		return Entry{}, ErrCorrupt
	}
	flags := b[5]
	if flags&^knownFlags != 0 {
		return Entry{}, ErrCorrupt
	}

	var e Entry
	off := hdr

	if flags&flagDelta != 0 {
		if off+4 > len(b) {
			return Entry{}, ErrCorrupt
		}
		e.Delta = binary.BigEndian.Uint32(b[off : off+4])
		e.HasDelta = true
		off += 4
	}

	data, off, ok := chunk(b, off)
	if !ok {
		return Entry{}, ErrCorrupt
	}
	e.Data = data

	if flags&flagCallbacks != 0 {
		cbs, next, ok := chunk(b, off)
		if !ok {
			return Entry{}, ErrCorrupt
		}
		e.Callbacks = cbs
		e.HasCallbacks = true
		off = next
	}

	if off != len(b) {
		return Entry{}, ErrCorrupt
	}
	return e, nil
}

// chunk reads a u32-length-prefixed slice starting at off.
func chunk(b []byte, off int) ([]byte, int, bool) {
	if off+4 > len(b) {
		return nil, 0, false
	}
	n := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if n < 0 || n > len(b)-off { // overflow-safe bound check
		return nil, 0, false
	}
	return b[off : off+n], off + n, true
}
