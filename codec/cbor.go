package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// CBOR encodes values with fxamacker/cbor. Build it with NewCBOR or
// MustCBOR; the zero value panics on use.
//
// Deterministic mode uses RFC 8949 core deterministic encoding, for
// callers that compare or hash payloads. Times are written as RFC3339Nano
// strings and maps inside interface values decode as map[string]any, so a
// []Callback argument list survives a round trip in a usable shape.
type CBOR[V any] struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ Codec[[]any] = CBOR[[]any]{}

func NewCBOR[V any](deterministic bool) (CBOR[V], error) {
	opts := cbor.PreferredUnsortedEncOptions()
	if deterministic {
		opts = cbor.CoreDetEncOptions()
	}
	opts.Time = cbor.TimeRFC3339Nano

	enc, err := opts.EncMode()
	if err != nil {
		return CBOR[V]{}, err
	}
	dec, err := cbor.DecOptions{DefaultMapType: reflect.TypeOf(map[string]any(nil))}.DecMode()
	if err != nil {
		return CBOR[V]{}, err
	}
	return CBOR[V]{enc: enc, dec: dec}, nil
}

// MustCBOR panics where NewCBOR would fail.
func MustCBOR[V any](deterministic bool) CBOR[V] {
	cd, err := NewCBOR[V](deterministic)
	if err != nil {
		panic(err)
	}
	return cd
}

func (cd CBOR[V]) Encode(v V) ([]byte, error) { return cd.enc.Marshal(v) }

func (cd CBOR[V]) Decode(b []byte) (V, error) {
	var v V
	if err := cd.dec.Unmarshal(b, &v); err != nil {
		return v, err
	}
	return v, nil
}
