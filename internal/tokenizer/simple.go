package tokenizer

import "github.com/example/go-subtok/internal/vocab"

// SimpleSegmenter splits text into maximal runs of word runes, single
// punctuation runes and single whitespace runes. Every input rune lands in
// exactly one token, so the segmentation is a total partition of the text.
// It serves both as a baseline tokenizer and as the boundary oracle the
// WordPiece rules are defined against.
type SimpleSegmenter struct {
	vocab *vocab.Vocabulary
}

// NewSimpleSegmenter returns a SimpleSegmenter owning a fresh vocabulary
// with the given capacity.
func NewSimpleSegmenter(maxVocabSize int) (*SimpleSegmenter, error) {
	v, err := vocab.New(maxVocabSize)
	if err != nil {
		return nil, err
	}
	return &SimpleSegmenter{vocab: v}, nil
}

// Segment splits text into word runs, single punctuation runes and single
// whitespace runes.
func (t *SimpleSegmenter) Segment(text string) ([]string, error) {
	var tokens []string
	var word []rune

	flush := func() {
		if len(word) > 0 {
			tokens = append(tokens, string(word))
			word = word[:0]
		}
	}

	for _, r := range text {
		if isWordRune(r) {
			word = append(word, r)
			continue
		}
		flush()
		tokens = append(tokens, string(r))
	}
	flush()

	return tokens, nil
}

// Learn rebuilds the vocabulary from one segmentation pass over text.
func (t *SimpleSegmenter) Learn(text string) error {
	return learn(t.vocab, t.Segment, text)
}

// Encode maps text to ids via greedy longest match against the built
// vocabulary.
func (t *SimpleSegmenter) Encode(text string) ([]int, error) {
	return GreedyEncode(t.vocab, text), nil
}

// Decode maps ids back to tokens and concatenates them.
func (t *SimpleSegmenter) Decode(ids []int) (string, error) {
	return ConcatDecode(t.vocab, ids), nil
}

// Vocab returns the owned vocabulary.
func (t *SimpleSegmenter) Vocab() *vocab.Vocabulary { return t.vocab }

// Len returns the vocabulary size.
func (t *SimpleSegmenter) Len() int { return t.vocab.Len() }
