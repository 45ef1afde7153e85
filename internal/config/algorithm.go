package config

import (
	"fmt"
	"strings"
)

const (
	AlgorithmSimple    = "simple"
	AlgorithmBPE       = "bpe"
	AlgorithmWordPiece = "wordpiece"
	AlgorithmUnigram   = "unigram"
)

// NormalizeAlgorithm maps a raw algorithm string to its canonical name.
// An empty string selects BPE.
func NormalizeAlgorithm(raw string) (string, error) {
	alg := strings.ToLower(strings.TrimSpace(raw))
	if alg == "" {
		alg = AlgorithmBPE
	}
	switch alg {
	case AlgorithmSimple, AlgorithmBPE, AlgorithmWordPiece, AlgorithmUnigram:
		return alg, nil
	case "byte-pair-encoding", "byte_pair_encoding":
		return AlgorithmBPE, nil
	case "word-piece", "word_piece":
		return AlgorithmWordPiece, nil
	default:
		return "", fmt.Errorf(
			"invalid tokenizer algorithm %q (expected %s|%s|%s|%s)",
			raw,
			AlgorithmSimple,
			AlgorithmBPE,
			AlgorithmWordPiece,
			AlgorithmUnigram,
		)
	}
}
