// Package tokenizer implements the subword tokenization engine: the
// Tokenizer contract shared by all variants, the greedy longest-match
// fallback encoder, and the SimpleSegmenter, BytePairEncoding and
// WordPiece implementations.
package tokenizer

import (
	"errors"
	"strings"
	"unicode"

	"github.com/example/go-subtok/internal/vocab"
)

// ErrNotImplemented is returned by variants that are declared as extension
// points but carry no algorithm yet.
var ErrNotImplemented = errors.New("tokenizer: not implemented")

// ErrNonPositiveMaxMerges is returned when a merge-based tokenizer is
// constructed or invoked with a merge cap below one. The cap is the sole
// termination bound of the merge loop and must be positive.
var ErrNonPositiveMaxMerges = errors.New("tokenizer: max merges must be positive")

// DefaultMaxMerges caps the merge loop when callers do not configure one.
const DefaultMaxMerges = 10000

// Tokenizer is the capability every tokenizer variant provides.
//
// Segment splits text into an ordered token sequence. Learn runs one
// segmentation pass over the text and rebuilds the owned vocabulary from
// it; calling it again with the same text yields an identical vocabulary.
// Encode maps text to vocabulary ids and Decode inverts it.
type Tokenizer interface {
	Segment(text string) ([]string, error)
	Learn(text string) error
	Encode(text string) ([]int, error)
	Decode(ids []int) (string, error)
	Vocab() *vocab.Vocabulary
	Len() int
}

// GreedyEncode encodes text against an already-built vocabulary using
// longest-match-first scanning, independent of how the vocabulary was
// trained. At each rune position the longest candidate substring whose id
// is not <UNK> wins; when no substring of any length matches, a single
// <UNK> id is emitted and the cursor advances one rune. Variants that do
// not override Encode use this as their encoder.
func GreedyEncode(v *vocab.Vocabulary, text string) []int {
	runes := []rune(text)
	ids := make([]int, 0, len(runes))

	for i := 0; i < len(runes); {
		matched := false
		for j := len(runes); j > i; j-- {
			if id := v.ID(string(runes[i:j])); id != vocab.UnknownID {
				ids = append(ids, id)
				i = j
				matched = true
				break
			}
		}
		if !matched {
			ids = append(ids, vocab.UnknownID)
			i++
		}
	}

	return ids
}

// ConcatDecode maps each id to its token and concatenates them with no
// separator. Variants that do not override Decode use this as their
// decoder; it inverts GreedyEncode whenever no <UNK> was emitted.
func ConcatDecode(v *vocab.Vocabulary, ids []int) string {
	var b strings.Builder
	for _, id := range ids {
		b.WriteString(v.Token(id))
	}
	return b.String()
}

// learn runs one segmentation pass and rebuilds the vocabulary from its
// result. Shared by all variants.
func learn(v *vocab.Vocabulary, segment func(string) ([]string, error), text string) error {
	tokens, err := segment(text)
	if err != nil {
		return err
	}
	v.Build(tokens)
	return nil
}

// pair is an ordered adjacent token pair considered for merging.
type pair struct {
	left, right string
}

// splitRunes seeds a merge loop: one single-rune token per input rune.
func splitRunes(text string) []string {
	seq := make([]string, 0, len(text))
	for _, r := range text {
		seq = append(seq, string(r))
	}
	return seq
}

// isWordRune reports whether r belongs to a word token: letters, digits
// and underscore. Everything else is punctuation or whitespace.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isBoundary reports whether tok is exactly one punctuation or whitespace
// rune. Boundary tokens never participate in WordPiece merges and always
// start a new word.
func isBoundary(tok string) bool {
	runes := []rune(tok)
	return len(runes) == 1 && !isWordRune(runes[0])
}
