package tokenizer

import "github.com/example/go-subtok/internal/vocab"

// UnigramLanguageModel is the reserved extension point for a
// probabilistic unigram tokenizer. It is constructible so callers can wire
// it up ahead of time, but segmentation and training fail with
// ErrNotImplemented until the algorithm lands.
type UnigramLanguageModel struct {
	vocab *vocab.Vocabulary
}

// NewUnigramLanguageModel returns the unimplemented unigram variant with a
// fresh vocabulary of the given capacity.
func NewUnigramLanguageModel(maxVocabSize int) (*UnigramLanguageModel, error) {
	v, err := vocab.New(maxVocabSize)
	if err != nil {
		return nil, err
	}
	return &UnigramLanguageModel{vocab: v}, nil
}

// Segment fails: the unigram algorithm is not implemented.
func (t *UnigramLanguageModel) Segment(string) ([]string, error) {
	return nil, ErrNotImplemented
}

// Learn fails: training requires Segment.
func (t *UnigramLanguageModel) Learn(text string) error {
	return learn(t.vocab, t.Segment, text)
}

// Encode maps text to ids via the shared greedy fallback. Without a
// trained vocabulary every position resolves to <UNK>.
func (t *UnigramLanguageModel) Encode(text string) ([]int, error) {
	return GreedyEncode(t.vocab, text), nil
}

// Decode maps ids back to tokens and concatenates them.
func (t *UnigramLanguageModel) Decode(ids []int) (string, error) {
	return ConcatDecode(t.vocab, ids), nil
}

// Vocab returns the owned vocabulary.
func (t *UnigramLanguageModel) Vocab() *vocab.Vocabulary { return t.vocab }

// Len returns the vocabulary size.
func (t *UnigramLanguageModel) Len() int { return t.vocab.Len() }
