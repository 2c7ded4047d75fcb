package bcs

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"slices"
)

// MaxContainerDepth is the upper bound, and the default budget, for nesting
// of named containers (structs, tuple structs, enum variants).  Unnamed
// shapes such as plain tuples, sequences, options, and maps do not consume
// depth.
const MaxContainerDepth = 500

// MaxSequenceLength bounds the length of any sequence, byte string, string,
// or map.
const MaxSequenceLength = (1 << 31) - 1

// Serializer encodes a set of items into one shared output sink.  The zero
// value writes into a growable buffer with the default depth budget; entry
// points such as [ToBytesWithLimit] configure it differently.
type Serializer struct {
	out               sink
	maxRemainingDepth int
	err               error
}

// NewSerializer creates a Serializer collecting into a growable buffer with
// the default container depth budget.
func NewSerializer() *Serializer {
	return &Serializer{out: &byteBuffer{}, maxRemainingDepth: MaxContainerDepth}
}

// Serialize serializes a single item
func Serialize(value Marshaler) (bytes []byte, err error) {
	return ToBytes(value)
}

// ToBytes serializes a single value into its canonical bytes with the
// default depth budget.
func ToBytes(value Marshaler) ([]byte, error) {
	return ToBytesWithLimit(value, MaxContainerDepth)
}

// ToBytesWithLimit serializes a single value with a custom named-container
// depth budget.  Limits above MaxContainerDepth are rejected.
func ToBytesWithLimit(value Marshaler, limit int) ([]byte, error) {
	if limit < 0 || limit > MaxContainerDepth {
		return nil, &NotSupportedError{"limit exceeds the max allowed depth"}
	}
	out := &byteBuffer{}
	ser := &Serializer{out: out, maxRemainingDepth: limit}
	value.MarshalBCS(ser)
	if ser.err != nil {
		return nil, ser.err
	}
	return out.buf.Bytes(), nil
}

// SerializedSize reports the number of bytes ToBytes would produce, without
// materializing them.
func SerializedSize(value Marshaler) (int, error) {
	return SerializedSizeWithLimit(value, MaxContainerDepth)
}

// SerializedSizeWithLimit is SerializedSize with a custom depth budget.
func SerializedSizeWithLimit(value Marshaler, limit int) (int, error) {
	if limit < 0 || limit > MaxContainerDepth {
		return 0, &NotSupportedError{"limit exceeds the max allowed depth"}
	}
	counter := &sizeCounter{}
	ser := &Serializer{out: counter, maxRemainingDepth: limit}
	value.MarshalBCS(ser)
	if ser.err != nil {
		return 0, ser.err
	}
	return counter.size, nil
}

// Error the error if serialization has failed at any point
func (ser *Serializer) Error() error {
	return ser.err
}

// SetError If the data is well-formed but nonsense, MarshalBCS() code can set error
func (ser *Serializer) SetError(err error) {
	ser.err = err
}

// IsHumanReadable advertises the wire format; drivers that switch encodings
// on this flag must pick their binary representation.
func (ser *Serializer) IsHumanReadable() bool {
	return false
}

func (ser *Serializer) init() {
	if ser.out == nil {
		ser.out = &byteBuffer{}
		ser.maxRemainingDepth = MaxContainerDepth
	}
}

// fail records the first failure; later ones do not overwrite it.
func (ser *Serializer) fail(err error) {
	if ser.err == nil {
		ser.err = err
	}
}

func (ser *Serializer) write(buf []byte) {
	if ser.err != nil {
		return
	}
	ser.init()
	if err := ser.out.writeAll(buf); err != nil {
		ser.err = err
	}
}

func (ser *Serializer) writeByte(b byte) {
	ser.write([]byte{b})
}

// Bool serialize a bool into a single byte
func (ser *Serializer) Bool(v bool) {
	if v {
		ser.U8(1)
	} else {
		ser.U8(0)
	}
}

// U8 serialize a byte
func (ser *Serializer) U8(v uint8) {
	ser.writeByte(v)
}

// U16 serialize an unsigned 16 bit integer
func (ser *Serializer) U16(v uint16) {
	var ub [2]byte
	binary.LittleEndian.PutUint16(ub[:], v)
	ser.write(ub[:])
}

// U32 serialize an unsigned 32 bit integer
func (ser *Serializer) U32(v uint32) {
	var ub [4]byte
	binary.LittleEndian.PutUint32(ub[:], v)
	ser.write(ub[:])
}

// U64 serialize an unsigned 64 bit integer
func (ser *Serializer) U64(v uint64) {
	var ub [8]byte
	binary.LittleEndian.PutUint64(ub[:], v)
	ser.write(ub[:])
}

// U128 serialize an unsigned 128 bit integer, little-endian
func (ser *Serializer) U128(v big.Int) {
	if v.Sign() < 0 || v.BitLen() > 128 {
		ser.fail(fmt.Errorf("value does not fit in a u128: %s", v.String()))
		return
	}
	var ub [16]byte
	v.FillBytes(ub[:])
	slices.Reverse(ub[:])
	ser.write(ub[:])
}

// I8 serialize a signed byte as its two's complement bits
func (ser *Serializer) I8(v int8) {
	ser.U8(uint8(v))
}

// I16 serialize a signed 16 bit integer as its two's complement bits
func (ser *Serializer) I16(v int16) {
	ser.U16(uint16(v))
}

// I32 serialize a signed 32 bit integer as its two's complement bits
func (ser *Serializer) I32(v int32) {
	ser.U32(uint32(v))
}

// I64 serialize a signed 64 bit integer as its two's complement bits
func (ser *Serializer) I64(v int64) {
	ser.U64(uint64(v))
}

var (
	i128Min     = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	i128Max     = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	i128Modulus = new(big.Int).Lsh(big.NewInt(1), 128)
)

// I128 serialize a signed 128 bit integer.  Negative values encode as their
// two's complement, so the high bit of the final byte is set.
func (ser *Serializer) I128(v big.Int) {
	if v.Cmp(i128Min) < 0 || v.Cmp(i128Max) > 0 {
		ser.fail(fmt.Errorf("value does not fit in an i128: %s", v.String()))
		return
	}
	if v.Sign() < 0 {
		wrapped := new(big.Int).Add(i128Modulus, &v)
		ser.U128(*wrapped)
		return
	}
	ser.U128(v)
}

// Uleb128 serialize an unsigned 32-bit integer as a ULEB128.  The encoding
// is the shortest possible: the loop stops at the first byte whose
// continuation bit is clear.  This is used for sequence lengths and enum
// variant indices.
func (ser *Serializer) Uleb128(v uint32) {
	for v >= 0x80 {
		ser.writeByte(uint8(v&0x7f) | 0x80)
		v >>= 7
	}
	ser.writeByte(uint8(v))
}

// outputSeqLen emits a length prefix, bounding it by MaxSequenceLength.
func (ser *Serializer) outputSeqLen(length int) {
	if length > MaxSequenceLength {
		ser.fail(&MaxLenError{Len: length})
		return
	}
	ser.Uleb128(uint32(length))
}

// outputVariantIndex emits an enum variant discriminant.
func (ser *Serializer) outputVariantIndex(index uint32) {
	ser.Uleb128(index)
}

// WriteBytes serialize an array of bytes with its length first as a uleb128
func (ser *Serializer) WriteBytes(v []byte) {
	ser.outputSeqLen(len(v))
	ser.write(v)
}

// WriteString similar to WriteBytes using the UTF-8 byte representation of the string
func (ser *Serializer) WriteString(v string) {
	ser.WriteBytes([]byte(v))
}

// FixedBytes similar to WriteBytes, but it forgoes the length header.  This
// is useful if you know the fixed length size of the data, such as a hash
func (ser *Serializer) FixedBytes(v []byte) {
	ser.write(v)
}

// None serialize an absent optional value
func (ser *Serializer) None() {
	ser.U8(0)
}

// Some serialize a present optional value: a 0x01 marker followed by the value
func (ser *Serializer) Some(inner func(ser *Serializer)) {
	ser.U8(1)
	if ser.err != nil {
		return
	}
	inner(ser)
}

// Unit serialize the unit value, which carries no bytes
func (ser *Serializer) Unit() {}

// enterNamedContainer spends one unit of depth budget and hands back a child
// serializer sharing the sink with the decremented budget.
func (ser *Serializer) enterNamedContainer(name string) (*Serializer, bool) {
	if ser.err != nil {
		return nil, false
	}
	ser.init()
	if ser.maxRemainingDepth <= 0 {
		ser.fail(&DepthLimitError{ContainerName: name})
		return nil, false
	}
	return &Serializer{out: ser.out, maxRemainingDepth: ser.maxRemainingDepth - 1}, true
}

func (ser *Serializer) finishChild(child *Serializer) {
	if child.err != nil {
		ser.fail(child.err)
	}
}

// UnitStruct serialize a named struct with no fields.  No bytes are
// emitted, but the container still spends depth budget.
func (ser *Serializer) UnitStruct(name string) {
	ser.enterNamedContainer(name)
}

// NewtypeStruct serialize a named single-value wrapper
func (ser *Serializer) NewtypeStruct(name string, inner func(ser *Serializer)) {
	child, ok := ser.enterNamedContainer(name)
	if !ok {
		return
	}
	inner(child)
	ser.finishChild(child)
}

// TupleStruct serialize a named struct with positional fields, in order,
// with no length prefix
func (ser *Serializer) TupleStruct(name string, fields func(ser *Serializer)) {
	child, ok := ser.enterNamedContainer(name)
	if !ok {
		return
	}
	fields(child)
	ser.finishChild(child)
}

// Struct serialize a named struct: each field in declared order, no field
// count and no field names
func (ser *Serializer) Struct(name string, fields func(ser *Serializer)) {
	child, ok := ser.enterNamedContainer(name)
	if !ok {
		return
	}
	fields(child)
	ser.finishChild(child)
}

// UnitVariant serialize an enum variant with no payload: just the uleb128
// discriminant
func (ser *Serializer) UnitVariant(name string, index uint32) {
	child, ok := ser.enterNamedContainer(name)
	if !ok {
		return
	}
	child.outputVariantIndex(index)
	ser.finishChild(child)
}

// NewtypeVariant serialize an enum variant wrapping a single value
func (ser *Serializer) NewtypeVariant(name string, index uint32, inner func(ser *Serializer)) {
	child, ok := ser.enterNamedContainer(name)
	if !ok {
		return
	}
	child.outputVariantIndex(index)
	inner(child)
	ser.finishChild(child)
}

// TupleVariant serialize an enum variant with positional payloads
func (ser *Serializer) TupleVariant(name string, index uint32, fields func(ser *Serializer)) {
	child, ok := ser.enterNamedContainer(name)
	if !ok {
		return
	}
	child.outputVariantIndex(index)
	fields(child)
	ser.finishChild(child)
}

// StructVariant serialize an enum variant with named payloads, emitted in
// declared order
func (ser *Serializer) StructVariant(name string, index uint32, fields func(ser *Serializer)) {
	child, ok := ser.enterNamedContainer(name)
	if !ok {
		return
	}
	child.outputVariantIndex(index)
	fields(child)
	ser.finishChild(child)
}

// Tuple serialize an unnamed tuple: each element in order, no length prefix
// and no depth spent
func (ser *Serializer) Tuple(elements func(ser *Serializer)) {
	if ser.err != nil {
		return
	}
	ser.init()
	elements(ser)
}

// Seq serialize a sequence whose elements are written by the callback.  A
// negative length means the length is unknown upfront, which the format
// does not support.
func (ser *Serializer) Seq(length int, elements func(ser *Serializer)) {
	if ser.err != nil {
		return
	}
	if length < 0 {
		ser.fail(ErrMissingLen)
		return
	}
	ser.outputSeqLen(length)
	if ser.err != nil {
		return
	}
	elements(ser)
}

// ToBytes outputs the encoded bytes.  Returns nil when the serializer was
// set up to count rather than collect.
func (ser *Serializer) ToBytes() []byte {
	ser.init()
	if b, ok := ser.out.(*byteBuffer); ok {
		return b.buf.Bytes()
	}
	return nil
}

// Reset clears the serializer to be reused
func (ser *Serializer) Reset() {
	switch out := ser.out.(type) {
	case *byteBuffer:
		out.buf.Reset()
	case *sizeCounter:
		out.size = 0
	}
	ser.maxRemainingDepth = MaxContainerDepth
	ser.err = nil
}

// SerializeSequence serializes a sequence of Marshaler implemented types.  Prefixed with the length of the sequence
func SerializeSequence[AT []T, T any](array AT, ser *Serializer) {
	SerializeSequenceWithFunction(array, ser, func(ser *Serializer, item T) {
		// Check if by value is Marshaler
		mv, ok := any(item).(Marshaler)
		if ok {
			mv.MarshalBCS(ser)
			return
		}
		// Check if by reference is Marshaler
		mv, ok = any(&item).(Marshaler)
		if ok {
			mv.MarshalBCS(ser)
			return
		}
		// If neither works, let's pass an error up
		ser.SetError(fmt.Errorf("type or reference of type is not Marshaler"))
	})
}

// SerializeSequenceWithFunction allows custom serialization of a sequence, which can be useful for non-bcs.Struct types
func SerializeSequenceWithFunction[AT []T, T any](array AT, ser *Serializer, serialize func(ser *Serializer, item T)) {
	ser.outputSeqLen(len(array))
	if ser.Error() != nil {
		return
	}
	for i, v := range array {
		serialize(ser, v)
		// Exit early if there's an error
		if ser.Error() != nil {
			ser.SetError(fmt.Errorf("could not serialize sequence[%d] member of %T %w", i, v, ser.Error()))
			return
		}
	}
}

// SerializeOption serializes an optional value from a pointer: nil encodes
// as absent, anything else as present followed by the value
func SerializeOption[T any](value *T, ser *Serializer, serialize func(ser *Serializer, item T)) {
	if value == nil {
		ser.None()
		return
	}
	ser.Some(func(ser *Serializer) {
		serialize(ser, *value)
	})
}

func SerializeSequenceOnly[AT []T, T any](input AT) ([]byte, error) {
	return SerializeSingle(func(ser *Serializer) {
		SerializeSequence(input, ser)
	})
}

func SerializeBool(input bool) ([]byte, error) {
	return SerializeSingle(func(ser *Serializer) {
		ser.Bool(input)
	})
}

func SerializeU8(input uint8) ([]byte, error) {
	return SerializeSingle(func(ser *Serializer) {
		ser.U8(input)
	})
}

func SerializeU16(input uint16) ([]byte, error) {
	return SerializeSingle(func(ser *Serializer) {
		ser.U16(input)
	})
}

func SerializeU32(input uint32) ([]byte, error) {
	return SerializeSingle(func(ser *Serializer) {
		ser.U32(input)
	})
}

func SerializeU64(input uint64) ([]byte, error) {
	return SerializeSingle(func(ser *Serializer) {
		ser.U64(input)
	})
}

func SerializeU128(input big.Int) ([]byte, error) {
	return SerializeSingle(func(ser *Serializer) {
		ser.U128(input)
	})
}

func SerializeBytes(input []byte) ([]byte, error) {
	return SerializeSingle(func(ser *Serializer) {
		ser.WriteBytes(input)
	})
}

// SerializeSingle is a convenience function, to not have to create a serializer to serialize one value
func SerializeSingle(marshal func(ser *Serializer)) (bytes []byte, err error) {
	ser := NewSerializer()
	marshal(ser)
	err = ser.Error()
	if err != nil {
		return nil, err
	}
	bytes = ser.ToBytes()
	return bytes, nil
}
