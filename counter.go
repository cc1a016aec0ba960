package hufftree

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
)

// Count reads r line by line and counts how often each symbol occurs.
// Line terminators are not counted.  The resulting table can be fed
// directly to Build.
func Count(r io.Reader) (map[Symbol]uint64, error) {
	counter := make(map[Symbol]uint64)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		for _, c := range scanner.Text() {
			counter[Symbol(c)]++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return counter, nil
}

// WriteFrequencies writes a human-readable listing of the frequency table
// to the given writer, one "'{symbol}': {count}" line per entry, in
// ascending symbol order.
func WriteFrequencies(w io.Writer, frequencies map[Symbol]uint64) (int64, error) {
	symbols := make([]Symbol, 0, len(frequencies))
	for symbol := range frequencies {
		symbols = append(symbols, symbol)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })

	var buf bytes.Buffer
	buf.WriteString("Character Frequency:\n")
	for _, symbol := range symbols {
		fmt.Fprintf(&buf, "'%c': %d\n", rune(symbol), frequencies[symbol])
	}
	return buf.WriteTo(w)
}
