// Command huffstat counts the characters in a file and prints the
// frequency table.
package main

import (
	"fmt"
	"os"

	"github.com/chronos-tachyon/hufftree"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: huffstat <file>")
		os.Exit(2)
	}

	file, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "huffstat:", err)
		os.Exit(1)
	}
	defer file.Close()

	frequencies, err := hufftree.Count(file)
	if err != nil {
		fmt.Fprintln(os.Stderr, "huffstat:", err)
		os.Exit(1)
	}
	if _, err := hufftree.WriteFrequencies(os.Stdout, frequencies); err != nil {
		fmt.Fprintln(os.Stderr, "huffstat:", err)
		os.Exit(1)
	}
}
