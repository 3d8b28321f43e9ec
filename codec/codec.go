// Package codec provides serializers for cache values. A Codec serves two
// roles in ttlcache: detaching values on read (Options.CopyOnRead runs an
// encode/decode roundtrip so the caller never aliases cached memory) and
// decoding payloads fetched by producer sources (see the source package).
package codec

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
