package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleText = "This is just a test! I repeat; this is just a test.\n" +
	"To be or not to be, that is the question.\n" +
	"What is the answer to life, the universe, and everything?\n"

func writeSample(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "corpus.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write sample corpus: %v", err)
	}

	return path
}

// ---------------------------------------------------------------------------
// ReadAll
// ---------------------------------------------------------------------------

func TestReadAll(t *testing.T) {
	path := writeSample(t, sampleText)

	got, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if got != sampleText {
		t.Errorf("ReadAll = %q, want %q", got, sampleText)
	}
}

func TestReadAll_MissingFile(t *testing.T) {
	if _, err := ReadAll(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

// ---------------------------------------------------------------------------
// Lines
// ---------------------------------------------------------------------------

func TestLines(t *testing.T) {
	path := writeSample(t, sampleText)

	got, err := Lines(path)
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}

	want := []string{
		"This is just a test! I repeat; this is just a test.",
		"To be or not to be, that is the question.",
		"What is the answer to life, the universe, and everything?",
	}
	if len(got) != len(want) {
		t.Fatalf("Lines returned %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLines_EmptyFile(t *testing.T) {
	path := writeSample(t, "")

	got, err := Lines(path)
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Lines = %q, want none", got)
	}
}

// ---------------------------------------------------------------------------
// Chunks
// ---------------------------------------------------------------------------

func TestChunks_FixedRuneSize(t *testing.T) {
	path := writeSample(t, "abcdefgh")

	got, err := Chunks(path, 3)
	if err != nil {
		t.Fatalf("Chunks: %v", err)
	}

	want := []string{"abc", "def", "gh"}
	if len(got) != len(want) {
		t.Fatalf("Chunks returned %d chunks, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestChunks_KeepsMultiByteRunesIntact(t *testing.T) {
	path := writeSample(t, "héllo wörld")

	got, err := Chunks(path, 2)
	if err != nil {
		t.Fatalf("Chunks: %v", err)
	}

	var rejoined string
	for _, c := range got {
		if len([]rune(c)) > 2 {
			t.Errorf("chunk %q exceeds 2 runes", c)
		}
		rejoined += c
	}
	if rejoined != "héllo wörld" {
		t.Errorf("chunks rejoin to %q, want %q", rejoined, "héllo wörld")
	}
}

func TestChunks_RejectsNonPositiveSize(t *testing.T) {
	path := writeSample(t, "abc")

	if _, err := Chunks(path, 0); !errors.Is(err, ErrNonPositiveChunkSize) {
		t.Errorf("Chunks(size=0) error = %v, want ErrNonPositiveChunkSize", err)
	}
}
