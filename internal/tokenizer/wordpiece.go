package tokenizer

import (
	"strings"

	"github.com/example/go-subtok/internal/vocab"
)

// ContinuationPrefix marks a piece that continues the previous token
// rather than starting a new word.
const ContinuationPrefix = "##"

// WordPiece learns a vocabulary with a normalized merge score instead of
// raw pair frequency. It differs from BytePairEncoding in three ways:
// boundary tokens (a single whitespace or punctuation rune) never merge
// and always restart a word, pairs are ranked by
// freq(pair)/(freq(left)*freq(right)) over an incrementally maintained
// token frequency map, and pieces that continue a word carry the "##"
// prefix. Encode re-derives the segmentation from scratch with the same
// merge loop rather than matching greedily against the vocabulary, and
// Decode strips the prefix so the original text is reconstructed exactly.
type WordPiece struct {
	vocab     *vocab.Vocabulary
	maxMerges int
}

// NewWordPiece returns a WordPiece tokenizer owning a fresh vocabulary of
// the given capacity, with maxMerges bounding every segmentation pass.
func NewWordPiece(maxVocabSize, maxMerges int) (*WordPiece, error) {
	if maxMerges <= 0 {
		return nil, ErrNonPositiveMaxMerges
	}

	v, err := vocab.New(maxVocabSize)
	if err != nil {
		return nil, err
	}

	return &WordPiece{vocab: v, maxMerges: maxMerges}, nil
}

// Segment runs the scored merge loop with the configured merge cap.
func (t *WordPiece) Segment(text string) ([]string, error) {
	return t.SegmentWithLimit(text, t.maxMerges)
}

// SegmentWithLimit runs the scored merge loop with a per-call merge cap
// and returns the final working sequence with continuation prefixes
// applied. The token frequency map is seeded from the rune sequence and
// updated in lockstep with every merge; it is never rebuilt by a second
// full scan.
func (t *WordPiece) SegmentWithLimit(text string, maxMerges int) ([]string, error) {
	if maxMerges <= 0 {
		return nil, ErrNonPositiveMaxMerges
	}

	seq := splitRunes(text)
	freq := make(map[string]int, len(seq))
	for _, tok := range seq {
		freq[tok]++
	}

	for n := 0; n < maxMerges; n++ {
		p, ok := bestScoredPair(seq, freq)
		if !ok {
			break
		}
		seq = mergeScoredPair(seq, p, freq)
	}

	return addPrefixes(seq), nil
}

// Learn rebuilds the vocabulary from one segmentation pass over text. The
// stored pieces carry their continuation prefixes.
func (t *WordPiece) Learn(text string) error {
	return learn(t.vocab, t.Segment, text)
}

// Encode re-derives the segmentation of text with the full merge loop and
// maps each resulting piece to its vocabulary id, defaulting to <UNK>.
func (t *WordPiece) Encode(text string) ([]int, error) {
	pieces, err := t.Segment(text)
	if err != nil {
		return nil, err
	}

	ids := make([]int, len(pieces))
	for i, piece := range pieces {
		ids[i] = t.vocab.ID(piece)
	}

	return ids, nil
}

// Decode maps ids back to pieces, strips continuation prefixes and
// concatenates everything with no separator. This exactly inverts the
// prefixing rule as long as encoding emitted no <UNK>.
func (t *WordPiece) Decode(ids []int) (string, error) {
	var b strings.Builder
	for _, id := range ids {
		b.WriteString(strings.TrimPrefix(t.vocab.Token(id), ContinuationPrefix))
	}
	return b.String(), nil
}

// Vocab returns the owned vocabulary.
func (t *WordPiece) Vocab() *vocab.Vocabulary { return t.vocab }

// Len returns the vocabulary size.
func (t *WordPiece) Len() int { return t.vocab.Len() }

// bestScoredPair returns the admissible adjacent pair with the highest
// merge score freq(pair)/(freq(left)*freq(right)). Pairs touching a
// boundary token are never admissible. Pairs are ranked in first-seen
// order so a score tie goes to the pair encountered earliest in the scan.
// ok is false when no admissible pair remains.
func bestScoredPair(seq []string, freq map[string]int) (pair, bool) {
	counts := make(map[pair]int, len(seq))
	order := make([]pair, 0, len(seq))
	for i := 0; i < len(seq)-1; i++ {
		if isBoundary(seq[i]) || isBoundary(seq[i+1]) {
			continue
		}
		p := pair{seq[i], seq[i+1]}
		if counts[p] == 0 {
			order = append(order, p)
		}
		counts[p]++
	}

	if len(order) == 0 {
		return pair{}, false
	}

	score := func(p pair) float64 {
		return float64(counts[p]) / float64(freq[p.left]*freq[p.right])
	}

	best := order[0]
	bestScore := score(best)
	for _, p := range order[1:] {
		if s := score(p); s > bestScore {
			best = p
			bestScore = s
		}
	}

	return best, true
}

// mergeScoredPair merges every non-overlapping left-to-right occurrence of
// p in seq and updates freq in lockstep: the merged token gains one count
// per merge, each constituent loses one, and constituents that reach zero
// are dropped from the map so they can never be scored again.
func mergeScoredPair(seq []string, p pair, freq map[string]int) []string {
	merged := make([]string, 0, len(seq))
	joined := p.left + p.right
	n := 0

	for i := 0; i < len(seq); {
		if i+1 < len(seq) && seq[i] == p.left && seq[i+1] == p.right {
			merged = append(merged, joined)
			n++
			i += 2
			continue
		}
		merged = append(merged, seq[i])
		i++
	}

	if n > 0 {
		freq[joined] += n
		freq[p.left] -= n
		freq[p.right] -= n
		if freq[p.left] <= 0 {
			delete(freq, p.left)
		}
		if freq[p.right] <= 0 {
			delete(freq, p.right)
		}
	}

	return merged
}

// addPrefixes walks the final working sequence and marks word
// continuations: a boundary token passes through unchanged and restarts
// the word, the first non-boundary token of a word passes through
// unchanged, and every further non-boundary token gains the "##" prefix.
func addPrefixes(seq []string) []string {
	out := make([]string, 0, len(seq))
	startOfWord := true

	for _, tok := range seq {
		switch {
		case isBoundary(tok):
			out = append(out, tok)
			startOfWord = true
		case startOfWord:
			out = append(out, tok)
			startOfWord = false
		default:
			out = append(out, ContinuationPrefix+tok)
		}
	}

	return out
}
