package main

import (
	"io"
	"os"
)

// readInput reads path, or stdin when path is "-" or empty.
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
