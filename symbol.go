package hufftree

import (
	"unicode"
)

// Symbol represents a single unit of input, a Unicode scalar value.
// Negative symbols are not valid.
type Symbol rune

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = Symbol(unicode.MaxRune)

// InvalidSymbol marks tree nodes that carry no symbol, i.e. internal nodes.
const InvalidSymbol = Symbol(-1)
