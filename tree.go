package hufftree

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"
	"math"
	"sort"
	"sync"

	"github.com/chronos-tachyon/assert"
)

// nilNode marks an absent child.
const nilNode = int32(-1)

// node is one slot in a Tree's arena.  Leaves have no children and carry a
// symbol; internal nodes carry InvalidSymbol and always have two children.
type node struct {
	symbol Symbol
	weight uint64
	left   int32
	right  int32
}

func (n node) leaf() bool {
	return n.left == nilNode
}

// Tree is a Huffman prefix-code tree.  A Tree is immutable once Build
// returns, so a single Tree may be shared freely between concurrent
// readers.
type Tree struct {
	nodes []node
	root  int32

	once  sync.Once
	codes map[Symbol]Code
}

// Build constructs the optimal prefix-code tree for the given frequency
// table.  It returns ErrEmptyAlphabet if the table is empty; every count
// in the table must be positive.
//
// Builds are reproducible: leaves enter the queue in ascending symbol
// order, and nodes of equal weight leave the queue in insertion order
// (first inserted, first extracted), so two builds from the same table
// always produce the same tree shape.
func Build(frequencies map[Symbol]uint64) (*Tree, error) {
	if len(frequencies) == 0 {
		return nil, ErrEmptyAlphabet
	}

	symbols := make([]Symbol, 0, len(frequencies))
	for symbol := range frequencies {
		symbols = append(symbols, symbol)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })

	t := &Tree{
		nodes: make([]node, 0, 2*len(symbols)-1),
		root:  nilNode,
	}
	for _, symbol := range symbols {
		count := frequencies[symbol]
		assert.Assertf(count > 0, "symbol %q has frequency 0", rune(symbol))
		t.nodes = append(t.nodes, node{symbol: symbol, weight: count, left: nilNode, right: nilNode})
	}

	h := weightHeap{tree: t, list: make([]int32, len(t.nodes))}
	for index := range h.list {
		h.list[index] = int32(index)
	}
	h.Init()

	for h.Len() > 1 {
		a := heap.Pop(&h).(int32)
		b := heap.Pop(&h).(int32)

		// Compute the combined weight using saturating addition.
		weightSum := t.nodes[a].weight + t.nodes[b].weight
		if weightSum < t.nodes[a].weight {
			weightSum = math.MaxUint64
		}

		t.nodes = append(t.nodes, node{symbol: InvalidSymbol, weight: weightSum, left: a, right: b})
		heap.Push(&h, int32(len(t.nodes)-1))
	}

	t.root = heap.Pop(&h).(int32)
	return t, nil
}

// Weight returns the total weight of the tree, i.e. the sum of all input
// frequencies.  Trees reconstructed by UnmarshalTree report a weight of 0:
// weights are needed only during construction and are not serialized.
func (t *Tree) Weight() uint64 {
	return t.nodes[t.root].weight
}

// Leaves returns the number of distinct symbols in the tree's alphabet.
func (t *Tree) Leaves() int {
	count := 0
	for _, n := range t.nodes {
		if n.leaf() {
			count++
		}
	}
	return count
}

// Dump writes a programmer-readable debugging dump of the Tree's symbols
// and codes to the given writer.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	codes := t.Codes()
	symbols := make([]Symbol, 0, len(codes))
	for symbol := range codes {
		symbols = append(symbols, symbol)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })

	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	fmt.Fprintf(&buf, "\tWeight() = %d\n", t.Weight())
	fmt.Fprintf(&buf, "\tLeaves() = %d\n", t.Leaves())
	for _, symbol := range symbols {
		fmt.Fprintf(&buf, "\tCode(%q) = %s\n", rune(symbol), codes[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// type weightHeap {{{

// weightHeap is a min-heap over arena indices, ordered by weight with the
// arena index itself as the secondary key.  The arena index doubles as the
// insertion sequence number, which is what makes builds reproducible when
// several nodes share the minimum weight.
type weightHeap struct {
	tree *Tree
	list []int32
}

func (h *weightHeap) Init() {
	heap.Init(h)
}

func (h *weightHeap) Len() int {
	return len(h.list)
}

func (h *weightHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *weightHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	aw, bw := h.tree.nodes[a].weight, h.tree.nodes[b].weight
	if aw != bw {
		return aw < bw
	}
	return a < b
}

func (h *weightHeap) Push(x interface{}) {
	h.list = append(h.list, x.(int32))
}

func (h *weightHeap) Pop() interface{} {
	last := len(h.list) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*weightHeap)(nil)

// }}}
