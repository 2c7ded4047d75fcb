package bcs

import (
	"math/big"
	"reflect"
)

// Marshal encodes a plain Go value into its canonical bytes by walking it
// with reflection.
//
// Go shapes translate onto the wire as follows:
//
//	Go type                | wire shape
//	-----------------------+--------------------------
//	bool                   | bool
//	uint8 ... uint64       | u8 ... u64, little-endian
//	int8 ... int64         | i8 ... i64, two's complement
//	string                 | length-prefixed UTF-8
//	[]byte                 | length-prefixed bytes
//	[]T                    | length-prefixed sequence
//	[N]T                   | tuple, no length prefix
//	*T                     | option: nil is absent
//	map[K]V                | canonically ordered map
//	named struct           | struct, fields in declared order
//	anonymous struct       | tuple
//
// Values implementing [Marshaler] serialize through their MarshalBCS method
// instead.  Named structs spend depth budget under their type name;
// unexported fields and fields tagged `bcs:"-"` are skipped.  Platform-sized
// int and uint, floats, complex numbers, funcs, and unsized channels are
// outside the domain and fail with typed errors.
func Marshal(v any) ([]byte, error) {
	return MarshalWithLimit(v, MaxContainerDepth)
}

// MarshalWithLimit is Marshal with a custom named-container depth budget.
// Limits above MaxContainerDepth are rejected.
func MarshalWithLimit(v any, limit int) ([]byte, error) {
	if limit < 0 || limit > MaxContainerDepth {
		return nil, &NotSupportedError{"limit exceeds the max allowed depth"}
	}
	out := &byteBuffer{}
	ser := &Serializer{out: out, maxRemainingDepth: limit}
	encodeValue(ser, reflect.ValueOf(v))
	if ser.err != nil {
		return nil, ser.err
	}
	return out.buf.Bytes(), nil
}

// MarshaledSize reports the number of bytes Marshal would produce, without
// materializing them.
func MarshaledSize(v any) (int, error) {
	counter := &sizeCounter{}
	ser := &Serializer{out: counter, maxRemainingDepth: MaxContainerDepth}
	encodeValue(ser, reflect.ValueOf(v))
	if ser.err != nil {
		return 0, ser.err
	}
	return counter.size, nil
}

var bigIntType = reflect.TypeOf(big.Int{})

func encodeValue(ser *Serializer, rv reflect.Value) {
	if ser.err != nil {
		return
	}
	if !rv.IsValid() {
		ser.fail(&NotSupportedError{"untyped nil"})
		return
	}
	if rv.CanInterface() {
		if m, ok := rv.Interface().(Marshaler); ok {
			m.MarshalBCS(ser)
			return
		}
		if rv.CanAddr() {
			if m, ok := rv.Addr().Interface().(Marshaler); ok {
				m.MarshalBCS(ser)
				return
			}
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		ser.Bool(rv.Bool())
	case reflect.Uint8:
		ser.U8(uint8(rv.Uint()))
	case reflect.Uint16:
		ser.U16(uint16(rv.Uint()))
	case reflect.Uint32:
		ser.U32(uint32(rv.Uint()))
	case reflect.Uint64:
		ser.U64(rv.Uint())
	case reflect.Int8:
		ser.I8(int8(rv.Int()))
	case reflect.Int16:
		ser.I16(int16(rv.Int()))
	case reflect.Int32:
		ser.I32(int32(rv.Int()))
	case reflect.Int64:
		ser.I64(rv.Int())
	case reflect.Int, reflect.Uint, reflect.Uintptr:
		// Width differs across platforms, which breaks canonicality
		ser.fail(&NotSupportedError{"platform-sized " + rv.Kind().String()})
	case reflect.Float32:
		ser.fail(&NotSupportedError{"float32"})
	case reflect.Float64:
		ser.fail(&NotSupportedError{"float64"})
	case reflect.String:
		ser.WriteString(rv.String())
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			ser.WriteBytes(rv.Bytes())
			return
		}
		ser.outputSeqLen(rv.Len())
		for i := 0; i < rv.Len(); i++ {
			encodeValue(ser, rv.Index(i))
			if ser.err != nil {
				return
			}
		}
	case reflect.Array:
		// Fixed-size arrays are tuples: the length is part of the schema
		for i := 0; i < rv.Len(); i++ {
			encodeValue(ser, rv.Index(i))
			if ser.err != nil {
				return
			}
		}
	case reflect.Pointer:
		if rv.IsNil() {
			ser.None()
			return
		}
		ser.Some(func(ser *Serializer) {
			encodeValue(ser, rv.Elem())
		})
	case reflect.Map:
		encodeMap(ser, rv)
	case reflect.Struct:
		encodeStruct(ser, rv)
	case reflect.Interface:
		if rv.IsNil() {
			ser.fail(&NotSupportedError{"nil interface"})
			return
		}
		encodeValue(ser, rv.Elem())
	case reflect.Chan:
		// A channel is a sequence of unknown length
		ser.fail(ErrMissingLen)
	default:
		ser.fail(&NotSupportedError{rv.Kind().String()})
	}
}

func encodeMap(ser *Serializer, rv reflect.Value) {
	ms := ser.Map()
	iter := rv.MapRange()
	for iter.Next() {
		key, value := iter.Key(), iter.Value()
		ms.Key(func(ser *Serializer) {
			encodeValue(ser, key)
		})
		ms.Value(func(ser *Serializer) {
			encodeValue(ser, value)
		})
		if ser.err != nil {
			return
		}
	}
	ms.End()
}

func encodeStruct(ser *Serializer, rv reflect.Value) {
	rt := rv.Type()
	if rt == bigIntType {
		// Ambiguous width on the wire; callers pick U128 or I128 explicitly
		ser.fail(&NotSupportedError{"big.Int without an explicit width"})
		return
	}
	fields := func(ser *Serializer) {
		for i := 0; i < rt.NumField(); i++ {
			field := rt.Field(i)
			if field.PkgPath != "" || field.Tag.Get("bcs") == "-" {
				continue
			}
			encodeValue(ser, rv.Field(i))
			if ser.err != nil {
				return
			}
		}
	}
	if rt.Name() == "" {
		ser.Tuple(fields)
		return
	}
	ser.Struct(rt.Name(), fields)
}
