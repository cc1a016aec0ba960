// Package hufftree implements Huffman prefix codes as explicit code trees.
//
// Unlike canonical Huffman codes, which transmit only per-symbol bit
// lengths, this package builds and persists the code tree itself: leaves
// carry symbols, internal nodes carry the summed weight of their subtrees,
// and a symbol's code is its root-to-leaf path (0 = left, 1 = right).
//
// References:
//
//	<https://en.wikipedia.org/wiki/Huffman_coding>
package hufftree
