package tokenizer

import "github.com/example/go-subtok/internal/vocab"

// BytePairEncoding learns a vocabulary by repeatedly merging the most
// frequent adjacent token pair in a character-seeded working sequence,
// capped at a fixed number of merges. Ties on the maximum frequency go to
// the pair seen first during the left-to-right counting scan, which pins
// the output down to a single deterministic segmentation.
type BytePairEncoding struct {
	vocab     *vocab.Vocabulary
	maxMerges int
}

// NewBytePairEncoding returns a BPE tokenizer owning a fresh vocabulary of
// the given capacity, with maxMerges bounding every segmentation pass.
func NewBytePairEncoding(maxVocabSize, maxMerges int) (*BytePairEncoding, error) {
	if maxMerges <= 0 {
		return nil, ErrNonPositiveMaxMerges
	}

	v, err := vocab.New(maxVocabSize)
	if err != nil {
		return nil, err
	}

	return &BytePairEncoding{vocab: v, maxMerges: maxMerges}, nil
}

// Segment runs the merge loop with the configured merge cap.
func (t *BytePairEncoding) Segment(text string) ([]string, error) {
	return t.SegmentWithLimit(text, t.maxMerges)
}

// SegmentWithLimit runs the merge loop with a per-call merge cap: seed one
// token per rune, then up to maxMerges times count adjacent pairs, pick
// the most frequent one and merge its non-overlapping occurrences left to
// right. The loop stops early once no pair remains.
func (t *BytePairEncoding) SegmentWithLimit(text string, maxMerges int) ([]string, error) {
	if maxMerges <= 0 {
		return nil, ErrNonPositiveMaxMerges
	}

	seq := splitRunes(text)
	for n := 0; n < maxMerges; n++ {
		p, ok := mostFrequentPair(seq)
		if !ok {
			break
		}
		seq = mergePair(seq, p)
	}

	return seq, nil
}

// Learn rebuilds the vocabulary from one segmentation pass over text.
func (t *BytePairEncoding) Learn(text string) error {
	return learn(t.vocab, t.Segment, text)
}

// Encode maps text to ids via greedy longest match against the built
// vocabulary.
func (t *BytePairEncoding) Encode(text string) ([]int, error) {
	return GreedyEncode(t.vocab, text), nil
}

// Decode maps ids back to tokens and concatenates them.
func (t *BytePairEncoding) Decode(ids []int) (string, error) {
	return ConcatDecode(t.vocab, ids), nil
}

// Vocab returns the owned vocabulary.
func (t *BytePairEncoding) Vocab() *vocab.Vocabulary { return t.vocab }

// Len returns the vocabulary size.
func (t *BytePairEncoding) Len() int { return t.vocab.Len() }

// mostFrequentPair counts every adjacent pair in seq and returns the one
// with the highest count. Pairs are ranked in first-seen order, so on a
// tie the pair encountered earliest in the scan wins. ok is false when the
// sequence holds fewer than two tokens.
func mostFrequentPair(seq []string) (pair, bool) {
	if len(seq) < 2 {
		return pair{}, false
	}

	counts := make(map[pair]int, len(seq))
	order := make([]pair, 0, len(seq))
	for i := 0; i < len(seq)-1; i++ {
		p := pair{seq[i], seq[i+1]}
		if counts[p] == 0 {
			order = append(order, p)
		}
		counts[p]++
	}

	best := order[0]
	for _, p := range order[1:] {
		if counts[p] > counts[best] {
			best = p
		}
	}

	return best, true
}

// mergePair concatenates every non-overlapping left-to-right occurrence of
// p in seq. Skipping past a merged pair means overlapping triples merge
// only their first occurrence in one pass.
func mergePair(seq []string, p pair) []string {
	merged := make([]string, 0, len(seq))
	for i := 0; i < len(seq); {
		if i+1 < len(seq) && seq[i] == p.left && seq[i+1] == p.right {
			merged = append(merged, p.left+p.right)
			i += 2
			continue
		}
		merged = append(merged, seq[i])
		i++
	}
	return merged
}
