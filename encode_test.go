package bcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type wirePoint struct {
	X uint16
	Y uint16
}

type wirePayload struct {
	Flag    bool
	Name    string
	Data    []byte
	Point   wirePoint
	Skipped uint64 `bcs:"-"`
	hidden  uint64
}

func Test_MarshalStruct(t *testing.T) {
	payload := wirePayload{
		Flag:    true,
		Name:    "hi",
		Data:    []byte{0xAA},
		Point:   wirePoint{X: 1, Y: 2},
		Skipped: 99,
		hidden:  99,
	}
	bytes, err := Marshal(payload)
	assert.NoError(t, err)
	expected := []byte{
		0x01,             // Flag
		0x02, 'h', 'i',   // Name
		0x01, 0xAA,       // Data
		0x01, 0x00,       // Point.X
		0x02, 0x00,       // Point.Y
	}
	assert.Equal(t, expected, bytes)
}

func Test_MarshalPrimitives(t *testing.T) {
	bytes, err := Marshal(uint32(1))
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x00, 0x00, 0x00}, bytes)

	bytes, err = Marshal(int8(-1))
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xff}, bytes)

	bytes, err = Marshal(true)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x01}, bytes)

	bytes, err = Marshal("hello")
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x05, 'h', 'e', 'l', 'l', 'o'}, bytes)
}

func Test_MarshalSequences(t *testing.T) {
	bytes, err := Marshal([]bool{true, false, true})
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x03, 0x01, 0x00, 0x01}, bytes)

	// byte slices are length-prefixed
	bytes, err = Marshal([]byte{0x12, 0x34})
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x12, 0x34}, bytes)

	// fixed-size arrays are tuples: no prefix
	bytes, err = Marshal([2]uint8{0x12, 0x34})
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x12, 0x34}, bytes)
}

func Test_MarshalOption(t *testing.T) {
	value := uint16(0x0102)
	bytes, err := Marshal(&value)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x01}, bytes)

	bytes, err = Marshal((*uint8)(nil))
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x00}, bytes)
}

func Test_MarshalMap(t *testing.T) {
	bytes, err := Marshal(map[uint8]uint8{
		2: 9,
		1: 8,
	})
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x01, 0x08, 0x02, 0x09}, bytes)
}

func Test_MarshalMarshalerShortCircuit(t *testing.T) {
	value := &TestStruct{num: 7, b: true}
	viaReflect, err := Marshal(value)
	assert.NoError(t, err)
	viaInterface, err := ToBytes(value)
	assert.NoError(t, err)
	assert.Equal(t, viaInterface, viaReflect)
}

func Test_MarshalUnsupported(t *testing.T) {
	var notSupported *NotSupportedError

	_, err := Marshal(3.14)
	assert.ErrorAs(t, err, &notSupported)

	_, err = Marshal(int(1))
	assert.ErrorAs(t, err, &notSupported)

	_, err = Marshal(uint(1))
	assert.ErrorAs(t, err, &notSupported)

	_, err = Marshal(nil)
	assert.ErrorAs(t, err, &notSupported)

	_, err = Marshal(make(chan uint8))
	assert.ErrorIs(t, err, ErrMissingLen)
}

func Test_MarshalNamedStructsConsumeDepth(t *testing.T) {
	type inner struct {
		V uint8
	}
	type outer struct {
		Inner inner
	}

	bytes, err := MarshalWithLimit(outer{Inner: inner{V: 1}}, 2)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x01}, bytes)

	_, err = MarshalWithLimit(outer{Inner: inner{V: 1}}, 1)
	var depthErr *DepthLimitError
	assert.ErrorAs(t, err, &depthErr)
	assert.Equal(t, "inner", depthErr.ContainerName)

	// anonymous structs are tuples and spend nothing
	_, err = MarshalWithLimit(struct{ V uint8 }{V: 1}, 0)
	assert.NoError(t, err)
}

func Test_MarshaledSize(t *testing.T) {
	values := []any{
		uint64(7),
		"hello",
		[]uint32{1, 2, 3},
		map[string]uint8{"a": 1, "b": 2},
		wirePayload{Flag: true, Name: "x", Data: []byte{1}, Point: wirePoint{X: 3, Y: 4}},
	}
	for _, value := range values {
		bytes, err := Marshal(value)
		assert.NoError(t, err)
		size, err := MarshaledSize(value)
		assert.NoError(t, err)
		assert.Equal(t, len(bytes), size)
	}
}

func Test_MarshalLimitTooLarge(t *testing.T) {
	var notSupported *NotSupportedError
	_, err := MarshalWithLimit(uint8(1), MaxContainerDepth+1)
	assert.ErrorAs(t, err, &notSupported)
}
