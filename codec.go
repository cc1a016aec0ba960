package hufftree

import (
	"bytes"
	"strings"

	"github.com/icza/bitio"
)

// Encode encodes text into the concatenation of its symbols' codes, in
// input order, with no separators or alignment.  It returns an
// UnknownSymbolError if text contains a symbol that is absent from the
// tree's encoding table.
func (t *Tree) Encode(text string) (BitString, error) {
	codes := t.Codes()

	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	size := 0
	for _, r := range text {
		hc, found := codes[Symbol(r)]
		if !found {
			return BitString{}, UnknownSymbolError{Symbol(r)}
		}
		if err := bw.WriteBits(hc.Bits, hc.Size); err != nil {
			return BitString{}, err
		}
		size += int(hc.Size)
	}
	if err := bw.Close(); err != nil {
		return BitString{}, err
	}
	return NewBitString(buf.Bytes(), size), nil
}

// Decode walks the tree once per code in bits: 0 descends left, 1 descends
// right, and reaching a leaf emits its symbol and restarts from the root.
// Decode is the exact left inverse of Encode.
//
// Decode returns ErrTruncatedStream if bits ends in the middle of a code,
// and ErrCorruptStream if a walk requires a child that does not exist.
func (t *Tree) Decode(bits BitString) (string, error) {
	br := bitio.NewReader(bytes.NewReader(bits.Bytes()))

	var sb strings.Builder
	if t.nodes[t.root].leaf() {
		// Single-leaf tree: every code is the fixed 1-bit "0".
		symbol := rune(t.nodes[t.root].symbol)
		for i := 0; i < bits.Len(); i++ {
			bit, err := br.ReadBool()
			if err != nil {
				return "", ErrTruncatedStream
			}
			if bit {
				return "", ErrCorruptStream
			}
			sb.WriteRune(symbol)
		}
		return sb.String(), nil
	}

	cur := t.root
	for i := 0; i < bits.Len(); i++ {
		bit, err := br.ReadBool()
		if err != nil {
			return "", ErrTruncatedStream
		}

		next := t.nodes[cur].left
		if bit {
			next = t.nodes[cur].right
		}
		if next == nilNode {
			return "", ErrCorruptStream
		}

		if t.nodes[next].leaf() {
			sb.WriteRune(rune(t.nodes[next].symbol))
			cur = t.root
		} else {
			cur = next
		}
	}
	if cur != t.root {
		return "", ErrTruncatedStream
	}
	return sb.String(), nil
}
