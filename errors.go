package hufftree

import (
	"errors"
	"fmt"
)

// Errors surfaced by this package.  Every failure mode is deterministic
// given its input; nothing is retried internally.
var (
	// ErrEmptyAlphabet is returned by Build when the frequency table has
	// no symbols to build a tree from.
	ErrEmptyAlphabet = errors.New("hufftree: empty alphabet")

	// ErrTruncatedStream is returned by Decode when the bit sequence ends
	// in the middle of a code.
	ErrTruncatedStream = errors.New("hufftree: truncated bit stream")

	// ErrCorruptStream is returned by Decode when the bit sequence walks
	// off the tree.
	ErrCorruptStream = errors.New("hufftree: corrupt bit stream")

	// ErrMalformedTree is wrapped by errors returned from UnmarshalTree
	// when the byte buffer is not a well-formed serialized tree.
	ErrMalformedTree = errors.New("hufftree: malformed serialized tree")
)

// UnknownSymbolError is returned by Encode when the input contains a symbol
// that is absent from the encoding table.
type UnknownSymbolError struct {
	Symbol Symbol
}

func (e UnknownSymbolError) Error() string {
	return fmt.Sprintf("hufftree: symbol %q is not in the encoding table", rune(e.Symbol))
}

var _ error = UnknownSymbolError{}
