package bcs

import (
	"bytes"
	"math"
)

// sink is the byte destination a Serializer appends into.  It is the only
// stateful effect target of the codec: every encoder is polymorphic over
// which implementation is in use.
type sink interface {
	writeAll(buf []byte) error
}

// byteBuffer collects encoded output in memory.  Appends never fail.
type byteBuffer struct {
	buf bytes.Buffer
}

func (b *byteBuffer) writeAll(buf []byte) error {
	b.buf.Write(buf)
	return nil
}

// sizeCounter counts the bytes an encoding would produce without
// materializing them.
type sizeCounter struct {
	size int
}

func (c *sizeCounter) writeAll(buf []byte) error {
	if c.size > math.MaxInt-len(buf) {
		return ErrBufferFull
	}
	c.size += len(buf)
	return nil
}
