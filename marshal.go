package hufftree

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/icza/bitio"
)

// Serialized tree layout:
//
//	"HTR1"                  magic
//	uvarint                 leaf count
//	pre-order node stream   one discriminator bit per node (0 = internal,
//	                        1 = leaf), each leaf followed by its symbol in
//	                        21 bits; zero-padded to a byte boundary
//	8 bytes, big endian     xxhash64 of everything above
//
// Weights are not serialized; they are needed only during construction.

const treeMagic = "HTR1"

// symbolBits is the fixed width of a serialized leaf symbol.  21 bits
// covers every Unicode scalar value.
const symbolBits = 21

// MarshalBinary converts the tree into its compact byte representation.
//
// MarshalBinary implements encoding.BinaryMarshaler.
func (t *Tree) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(treeMagic)

	var tmp [binary.MaxVarintLen64]byte
	vn := binary.PutUvarint(tmp[:], uint64(t.Leaves()))
	buf.Write(tmp[:vn])

	bw := bitio.NewWriter(&buf)
	stack := make([]int32, 0, maxCodeSize)
	stack = append(stack, t.root)
	for len(stack) != 0 {
		index := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.nodes[index]
		if n.leaf() {
			if err := bw.WriteBool(true); err != nil {
				return nil, err
			}
			if err := bw.WriteBits(uint64(n.symbol), symbolBits); err != nil {
				return nil, err
			}
			continue
		}
		if err := bw.WriteBool(false); err != nil {
			return nil, err
		}
		stack = append(stack, n.right, n.left)
	}
	if err := bw.Close(); err != nil {
		return nil, err
	}

	var sum [8]byte
	binary.BigEndian.PutUint64(sum[:], xxhash.Sum64(buf.Bytes()))
	buf.Write(sum[:])
	return buf.Bytes(), nil
}

var _ encoding.BinaryMarshaler = (*Tree)(nil)

// UnmarshalTree reconstructs a tree from the representation produced by
// MarshalBinary.  The reconstructed tree has the same shape and the same
// symbol-to-leaf assignment as the original; weights are not restored.
//
// UnmarshalTree returns an error wrapping ErrMalformedTree if data is
// truncated, damaged, or not a serialized tree at all.
func UnmarshalTree(data []byte) (*Tree, error) {
	if len(data) < len(treeMagic)+1+8 {
		return nil, fmt.Errorf("%w: %d bytes is too short", ErrMalformedTree, len(data))
	}

	body, trailer := data[:len(data)-8], data[len(data)-8:]
	if xxhash.Sum64(body) != binary.BigEndian.Uint64(trailer) {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrMalformedTree)
	}
	if string(body[:len(treeMagic)]) != treeMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrMalformedTree)
	}

	leafCount, varintLen := binary.Uvarint(body[len(treeMagic):])
	if varintLen <= 0 || leafCount == 0 {
		return nil, fmt.Errorf("%w: bad leaf count", ErrMalformedTree)
	}

	stream := body[len(treeMagic)+varintLen:]
	availBits := uint64(8 * len(stream))
	if leafCount > availBits {
		return nil, fmt.Errorf("%w: truncated node stream", ErrMalformedTree)
	}
	// A tree with n leaves has n-1 internal nodes, so the node stream
	// holds exactly n*(1+symbolBits) + (n-1) bits before padding.
	needBits := leafCount*(1+symbolBits) + (leafCount - 1)
	if needBits > availBits {
		return nil, fmt.Errorf("%w: truncated node stream", ErrMalformedTree)
	}

	maxNodes := 2*leafCount - 1
	t := &Tree{
		nodes: make([]node, 0, maxNodes),
		root:  nilNode,
	}

	br := bitio.NewReader(bytes.NewReader(stream))
	var usedBits, leaves uint64

	readNode := func() (int32, bool, error) {
		if uint64(len(t.nodes)) >= maxNodes {
			return nilNode, false, fmt.Errorf("%w: more than %d nodes", ErrMalformedTree, maxNodes)
		}
		isLeaf, err := br.ReadBool()
		if err != nil {
			return nilNode, false, fmt.Errorf("%w: truncated node stream", ErrMalformedTree)
		}
		usedBits++
		if !isLeaf {
			t.nodes = append(t.nodes, node{symbol: InvalidSymbol, left: nilNode, right: nilNode})
			return int32(len(t.nodes) - 1), false, nil
		}
		raw, err := br.ReadBits(symbolBits)
		if err != nil {
			return nilNode, false, fmt.Errorf("%w: truncated node stream", ErrMalformedTree)
		}
		usedBits += symbolBits
		if !utf8.ValidRune(rune(raw)) {
			return nilNode, false, fmt.Errorf("%w: invalid symbol %#x", ErrMalformedTree, raw)
		}
		leaves++
		t.nodes = append(t.nodes, node{symbol: Symbol(raw), left: nilNode, right: nilNode})
		return int32(len(t.nodes) - 1), true, nil
	}

	root, isLeaf, err := readNode()
	if err != nil {
		return nil, err
	}
	t.root = root

	// Mirror the pre-order emit: each internal node waits on the stack
	// until both of its children have been parsed.
	stack := make([]int32, 0, maxCodeSize)
	if !isLeaf {
		stack = append(stack, root)
	}
	for len(stack) != 0 {
		child, childIsLeaf, err := readNode()
		if err != nil {
			return nil, err
		}
		parent := stack[len(stack)-1]
		if t.nodes[parent].left == nilNode {
			t.nodes[parent].left = child
		} else {
			t.nodes[parent].right = child
			stack = stack[:len(stack)-1]
		}
		if !childIsLeaf {
			stack = append(stack, child)
		}
	}

	if leaves != leafCount {
		return nil, fmt.Errorf("%w: header promises %d leaves, stream has %d", ErrMalformedTree, leafCount, leaves)
	}
	if availBits-usedBits >= 8 {
		return nil, fmt.Errorf("%w: trailing data after node stream", ErrMalformedTree)
	}
	return t, nil
}
