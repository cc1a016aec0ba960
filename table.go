package hufftree

import (
	"github.com/chronos-tachyon/assert"
)

// Codes returns the encoding table: a mapping from each leaf symbol to its
// root-to-leaf path, 0 for left and 1 for right.  The table is derived on
// first use and cached, so repeated calls (including concurrent ones)
// share one table.  Callers must not modify the returned map.
//
// A single-leaf tree has no internal nodes; its lone symbol is assigned
// the fixed 1-bit code "0".
func (t *Tree) Codes() map[Symbol]Code {
	t.once.Do(func() {
		t.codes = t.deriveCodes()
	})
	return t.codes
}

func (t *Tree) deriveCodes() map[Symbol]Code {
	codes := make(map[Symbol]Code, (len(t.nodes)+1)/2)

	if t.nodes[t.root].leaf() {
		codes[t.nodes[t.root].symbol] = MakeCode(1, 0)
		return codes
	}

	// Walk the tree with an explicit stack; the accumulated path to each
	// node rides along with its arena index.
	type walkItem struct {
		index int32
		path  Code
	}

	stack := make([]walkItem, 0, maxCodeSize)
	stack = append(stack, walkItem{index: t.root})
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.nodes[top.index]
		if n.leaf() {
			codes[n.symbol] = top.path
			continue
		}

		assert.Assertf(top.path.Size < maxCodeSize, "code longer than %d bits", maxCodeSize)
		stack = append(stack, walkItem{
			index: n.right,
			path:  MakeCode(top.path.Size+1, top.path.Bits<<1|1),
		})
		stack = append(stack, walkItem{
			index: n.left,
			path:  MakeCode(top.path.Size+1, top.path.Bits<<1),
		})
	}
	return codes
}
