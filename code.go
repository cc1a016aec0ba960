package hufftree

import (
	"fmt"
	"strconv"
)

// maxCodeSize is the longest representable code, in bits.  A tree deep
// enough to exceed it requires a total weight beyond the range of uint64.
const maxCodeSize = 64

// Code represents a sequence of bits: one symbol's root-to-leaf path.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The first bit of the
	// path is the most significant of the Size low-order bits.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint64) Code {
	return Code{Size: size, Bits: bits}
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	format := "%0" + strconv.FormatUint(uint64(hc.Size), 10) + "b"
	return strconv.Quote(fmt.Sprintf(format, hc.Bits))
}

var _ fmt.Stringer = Code{}
