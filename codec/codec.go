// Package codec holds value codecs for cachestore.
//
// The storage layer moves opaque bytes; codecs sit on either side of it:
// cachestore.Typed uses a Codec[V] for payloads, and the storage itself uses
// a Codec[[]cachestore.Callback] to persist validation callbacks.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
