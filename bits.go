package hufftree

import (
	"fmt"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// BitString is an ordered sequence of bits packed into bytes, most
// significant bit first.  Unlike a raw byte slice it carries an exact bit
// length, so the padding in the final byte is not part of the sequence.
type BitString struct {
	data []byte
	size int
}

// NewBitString constructs a BitString from packed bytes.  The first bit of
// the sequence is the most significant bit of data[0].
func NewBitString(data []byte, size int) BitString {
	assert.Assertf(size >= 0, "size %d < 0", size)
	assert.Assertf(size <= 8*len(data), "size %d > %d bits of data", size, 8*len(data))
	return BitString{data: data, size: size}
}

// Len returns the number of bits in the sequence.
func (bs BitString) Len() int {
	return bs.size
}

// Bytes returns the packed bytes.  If Len is not a multiple of 8, the
// low-order bits of the final byte are zero padding.
func (bs BitString) Bytes() []byte {
	return bs.data
}

// Bit returns the i'th bit of the sequence, 0 or 1.
func (bs BitString) Bit(i int) byte {
	assert.Assertf(i >= 0, "bit index %d < 0", i)
	assert.Assertf(i < bs.size, "bit index %d >= Len() %d", i, bs.size)
	return (bs.data[i>>3] >> (7 - uint(i)&7)) & 1
}

// String returns the bits as a string of '0' and '1' characters.
func (bs BitString) String() string {
	var sb strings.Builder
	sb.Grow(bs.size)
	for i := 0; i < bs.size; i++ {
		sb.WriteByte('0' + bs.Bit(i))
	}
	return sb.String()
}

var _ fmt.Stringer = BitString{}
