package bcs

import (
	"bytes"
	"sort"
)

type mapEntry struct {
	key   []byte
	value []byte
}

// MapSerializer buffers fully encoded (key, value) pairs so the map can be
// emitted canonically: entries sorted by the lexicographic byte order of
// their encoded keys, regardless of the order the caller produced them.
//
// Keys and values must alternate strictly (key, value, key, value, ...),
// and every buffered key must receive a value before End.  Nothing reaches
// the outer sink until End.
type MapSerializer struct {
	ser           *Serializer
	entries       []mapEntry
	pendingKey    []byte
	hasPendingKey bool

	// CollapseDuplicates silently keeps the first entry of each run of
	// identical encoded keys instead of failing End with ErrNonCanonicalMap.
	// Duplicate keys are a bug in upstream code either way.
	CollapseDuplicates bool
}

// Map begins serializing a map.  Call Key and Value alternately, then End.
// Maps are unnamed containers, so no depth budget is spent; keys and values
// inherit the serializer's current remaining depth.
func (ser *Serializer) Map() *MapSerializer {
	ser.init()
	return &MapSerializer{ser: ser}
}

// subSerialize runs f against a private temporary sink and returns the
// bytes it produced.
func (ms *MapSerializer) subSerialize(f func(ser *Serializer)) ([]byte, bool) {
	out := &byteBuffer{}
	sub := &Serializer{out: out, maxRemainingDepth: ms.ser.maxRemainingDepth}
	f(sub)
	if sub.err != nil {
		ms.ser.fail(sub.err)
		return nil, false
	}
	return out.buf.Bytes(), true
}

// Key buffers the encoding of the next map key
func (ms *MapSerializer) Key(f func(ser *Serializer)) {
	if ms.ser.err != nil {
		return
	}
	if ms.hasPendingKey {
		ms.ser.fail(ErrExpectedMapValue)
		return
	}
	keyBytes, ok := ms.subSerialize(f)
	if !ok {
		return
	}
	ms.pendingKey = keyBytes
	ms.hasPendingKey = true
}

// Value buffers the encoding of the value for the pending key
func (ms *MapSerializer) Value(f func(ser *Serializer)) {
	if ms.ser.err != nil {
		return
	}
	if !ms.hasPendingKey {
		ms.ser.fail(ErrExpectedMapKey)
		return
	}
	valueBytes, ok := ms.subSerialize(f)
	if !ok {
		return
	}
	ms.entries = append(ms.entries, mapEntry{key: ms.pendingKey, value: valueBytes})
	ms.pendingKey = nil
	ms.hasPendingKey = false
}

// End sorts the buffered entries by encoded key, applies the duplicate
// policy, and emits the length-prefixed canonical stream to the outer sink.
func (ms *MapSerializer) End() {
	ser := ms.ser
	if ser.err != nil {
		return
	}
	if ms.hasPendingKey {
		ser.fail(ErrExpectedMapValue)
		return
	}

	// Stable, so that under CollapseDuplicates the first-buffered entry of
	// each duplicate run is the one that survives.
	sort.SliceStable(ms.entries, func(i, j int) bool {
		return bytes.Compare(ms.entries[i].key, ms.entries[j].key) < 0
	})

	if ms.CollapseDuplicates {
		writeIdx := 0
		for readIdx := 1; readIdx < len(ms.entries); readIdx++ {
			if !bytes.Equal(ms.entries[writeIdx].key, ms.entries[readIdx].key) {
				writeIdx++
				ms.entries[writeIdx] = ms.entries[readIdx]
			}
		}
		if len(ms.entries) > 0 {
			ms.entries = ms.entries[:writeIdx+1]
		}
	} else {
		for i := 1; i < len(ms.entries); i++ {
			if bytes.Equal(ms.entries[i-1].key, ms.entries[i].key) {
				ser.fail(ErrNonCanonicalMap)
				return
			}
		}
	}

	ser.outputSeqLen(len(ms.entries))
	for _, entry := range ms.entries {
		ser.write(entry.key)
		ser.write(entry.value)
	}
}

// SerializeMap serializes a Go map canonically.  Go's randomized iteration
// order does not matter; entries are reordered by encoded key.
func SerializeMap[K comparable, V any](m map[K]V, ser *Serializer, serializeKey func(ser *Serializer, key K), serializeValue func(ser *Serializer, value V)) {
	ms := ser.Map()
	for k, v := range m {
		ms.Key(func(ser *Serializer) {
			serializeKey(ser, k)
		})
		ms.Value(func(ser *Serializer) {
			serializeValue(ser, v)
		})
		if ser.Error() != nil {
			return
		}
	}
	ms.End()
}
