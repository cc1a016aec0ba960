package hufftree

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/icza/bitio"
)

// seal appends the checksum trailer that UnmarshalTree expects.
func seal(body []byte) []byte {
	var sum [8]byte
	binary.BigEndian.PutUint64(sum[:], xxhash.Sum64(body))
	return append(body, sum[:]...)
}

func expectSameCodes(t *testing.T, expect, actual *Tree) {
	t.Helper()
	expectCodes := expect.Codes()
	actualCodes := actual.Codes()
	if len(expectCodes) != len(actualCodes) {
		t.Fatalf("expected %d codes, got %d", len(expectCodes), len(actualCodes))
	}
	for symbol, hc := range expectCodes {
		if actualCodes[symbol] != hc {
			t.Errorf("Code(%q): expected %s, got %s", rune(symbol), hc, actualCodes[symbol])
		}
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	tree := mustBuild(t, exampleFrequencies())

	data, err := tree.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}
	back, err := UnmarshalTree(data)
	if err != nil {
		t.Fatalf("UnmarshalTree failed: %v", err)
	}

	expectSameCodes(t, tree, back)
	if back.Leaves() != 4 {
		t.Errorf("expected 4 leaves, got %d", back.Leaves())
	}
	if back.Weight() != 0 {
		t.Errorf("weights are not serialized; expected 0, got %d", back.Weight())
	}
}

func TestMarshal_RoundTripUnicode(t *testing.T) {
	frequencies, err := Count(strings.NewReader("héllo wörld ✓"))
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	tree := mustBuild(t, frequencies)

	data, err := tree.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}
	back, err := UnmarshalTree(data)
	if err != nil {
		t.Fatalf("UnmarshalTree failed: %v", err)
	}
	expectSameCodes(t, tree, back)
}

func TestMarshal_DecodeWithReconstructedTree(t *testing.T) {
	const text = "abracadabra"
	frequencies, err := Count(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	tree := mustBuild(t, frequencies)

	bits, err := tree.Encode(text)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	data, err := tree.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}

	back, err := UnmarshalTree(data)
	if err != nil {
		t.Fatalf("UnmarshalTree failed: %v", err)
	}
	decoded, err := back.Decode(bits)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded != text {
		t.Errorf("expected %q, got %q", text, decoded)
	}
}

func TestMarshal_SingleLeaf(t *testing.T) {
	tree := mustBuild(t, map[Symbol]uint64{'x': 7})

	data, err := tree.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}
	back, err := UnmarshalTree(data)
	if err != nil {
		t.Fatalf("UnmarshalTree failed: %v", err)
	}
	expectSameCodes(t, tree, back)
	if !back.nodes[back.root].leaf() {
		t.Error("expected the root to be a leaf")
	}
}

// buildStream bit-packs a hand-crafted node stream for malformed-input
// tests.
func buildStream(t *testing.T, emit func(bw *bitio.Writer)) []byte {
	t.Helper()
	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	emit(bw)
	if err := bw.Close(); err != nil {
		t.Fatalf("bitio close failed: %v", err)
	}
	return buf.Bytes()
}

func TestUnmarshal_Malformed(t *testing.T) {
	valid, err := mustBuild(t, exampleFrequencies()).MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}

	damaged := append([]byte(nil), valid...)
	damaged[len(damaged)/2] ^= 0x40

	wrongMagic := append([]byte(nil), valid[:len(valid)-8]...)
	wrongMagic[0] = 'X'

	withTrailing := append([]byte(nil), valid[:len(valid)-8]...)
	withTrailing = append(withTrailing, 0x00, 0x00)

	// Header promises two leaves, but the node stream holds one.
	leafMismatch := append([]byte(treeMagic), 2)
	leafMismatch = append(leafMismatch, buildStream(t, func(bw *bitio.Writer) {
		_ = bw.WriteBool(true)
		_ = bw.WriteBits(uint64('x'), symbolBits)
		_ = bw.WriteBits(0, 24)
	})...)

	// A leaf symbol above the Unicode scalar value range.
	badSymbol := append([]byte(treeMagic), 1)
	badSymbol = append(badSymbol, buildStream(t, func(bw *bitio.Writer) {
		_ = bw.WriteBool(true)
		_ = bw.WriteBits(0x1FFFFF, symbolBits)
	})...)

	testData := []struct {
		name string
		data []byte
	}{
		{"too short", []byte("HTR1")},
		{"checksum mismatch", damaged},
		{"bad magic", seal(wrongMagic)},
		{"zero leaf count", seal([]byte{'H', 'T', 'R', '1', 0})},
		{"truncated stream", seal(append([]byte(treeMagic), 2, 0xFF))},
		{"leaf count mismatch", seal(leafMismatch)},
		{"invalid symbol", seal(badSymbol)},
		{"trailing data", seal(withTrailing)},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			_, err := UnmarshalTree(row.data)
			if !errors.Is(err, ErrMalformedTree) {
				t.Errorf("expected ErrMalformedTree, got %v", err)
			}
		})
	}
}
