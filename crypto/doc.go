// Package crypto consumes the canonical encoding: it signs and verifies
// serialized values, and derives content addresses from them.
//
// Because a value has exactly one byte encoding, signing its canonical bytes
// commits to the value itself. [SignValue] and [VerifyValue] prepend a
// domain separator so signatures from different contexts can never be
// replayed against each other.
package crypto
