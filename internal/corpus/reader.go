// Package corpus loads training text from disk. The tokenization core only
// ever consumes a complete in-memory string; these helpers are the
// collaborators that produce one, as a whole file, line by line, or in
// fixed-size rune chunks.
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"os"
)

// ErrNonPositiveChunkSize is returned by Chunks for a size below one.
var ErrNonPositiveChunkSize = errors.New("corpus: chunk size must be positive")

// ReadAll returns the entire file as one string.
func ReadAll(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read corpus %q: %w", path, err)
	}
	return string(data), nil
}

// Lines returns the file's lines without their trailing newline.
func Lines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan corpus %q: %w", path, err)
	}

	return lines, nil
}

// Chunks splits the file into consecutive chunks of size runes each; the
// final chunk may be shorter. Chunking by runes rather than bytes keeps
// multi-byte characters intact at chunk boundaries.
func Chunks(path string, size int) ([]string, error) {
	if size <= 0 {
		return nil, ErrNonPositiveChunkSize
	}

	text, err := ReadAll(path)
	if err != nil {
		return nil, err
	}

	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}

	return chunks, nil
}
