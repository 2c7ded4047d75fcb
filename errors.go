package bcs

import (
	"errors"
	"fmt"
)

// Errors the serializer can surface.  All of them abort the in-progress
// top-level call; there is no recovery within a single encoding.
var (
	// ErrExpectedMapKey a map value was serialized without a pending key
	ErrExpectedMapKey = errors.New("expected map key")
	// ErrExpectedMapValue two map keys were serialized back to back, or a map
	// was finalized with a dangling key
	ErrExpectedMapValue = errors.New("expected map value")
	// ErrNonCanonicalMap a map contained two entries with identical encoded keys
	ErrNonCanonicalMap = errors.New("keys of serialized maps must be unique and in increasing order")
	// ErrMissingLen a sequence was initiated without a known length
	ErrMissingLen = errors.New("sequence missing length")
	// ErrBufferFull the output sink refused a write
	ErrBufferFull = errors.New("output buffer is full")
)

// Errors defined for symmetry with the deserialization direction.  The
// serializer never returns them.
var (
	ErrEof                                  = errors.New("unexpected end of input")
	ErrExpectedBoolean                      = errors.New("expected boolean")
	ErrExpectedOption                       = errors.New("expected option type")
	ErrUtf8                                 = errors.New("malformed utf8")
	ErrNonCanonicalUleb128Encoding          = errors.New("ULEB128 encoding was not minimal in size")
	ErrIntegerOverflowDuringUleb128Decoding = errors.New("ULEB128-encoded integer did not fit in the target size")
)

// MaxLenError is returned when a sequence, byte string, string, or map is
// longer than MaxSequenceLength.
type MaxLenError struct {
	Len int
}

func (e *MaxLenError) Error() string {
	return fmt.Sprintf("exceeded max sequence length: %d", e.Len)
}

// DepthLimitError is returned when entering a named container would exceed
// the serializer's remaining depth budget.  ContainerName is the static
// label of the container that could not be entered.
type DepthLimitError struct {
	ContainerName string
}

func (e *DepthLimitError) Error() string {
	return fmt.Sprintf("exceeded max container depth while entering: %s", e.ContainerName)
}

// NotSupportedError is returned for values outside the BCS domain (floats,
// platform-sized integers) and for invalid configuration such as a depth
// limit above MaxContainerDepth.
type NotSupportedError struct {
	Feature string
}

func (e *NotSupportedError) Error() string {
	return "not supported: " + e.Feature
}

// RemainingInputError belongs to the deserialization direction and is
// defined for symmetry only.
type RemainingInputError struct {
	Remaining uint64
}

func (e *RemainingInputError) Error() string {
	return fmt.Sprintf("remaining input: %d bytes", e.Remaining)
}
