// Package bcs implements the serialization half of Binary Canonical
// Serialization [BCS].
//
// BCS is a deterministic, non-self describing binary format: any given
// logical value has exactly one valid byte encoding. That makes the format
// suitable for cryptographic signing of structured messages, content
// addressed storage, and cross-language replay of state transitions, but it
// also means both sides of the wire need to know the shape of the data ahead
// of time.
//
// Values are serialized either by implementing [Marshaler] and driving a
// [Serializer] directly, or through [Marshal], which walks plain Go values
// with reflection. Check out [ToBytes] and [SerializedSize] for the main
// entry points.
//
// [BCS]: https://github.com/diem/bcs
package bcs
