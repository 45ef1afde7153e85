// Package vocab provides the bounded, bidirectional token/id mapping that
// every tokenizer owns. Lookups are total: unknown tokens resolve to the
// <UNK> id and out-of-range ids resolve to the <UNK> token, never an error.
package vocab

import (
	"fmt"
	"sort"
)

// Reserved special tokens, always present and always holding ids 0-3
// in this exact order.
const (
	UnknownToken = "<UNK>"
	PadToken     = "<PAD>"
	BOSToken     = "<BOS>"
	EOSToken     = "<EOS>"
)

// Ids of the reserved special tokens.
const (
	UnknownID = 0
	PadID     = 1
	BOSID     = 2
	EOSID     = 3
)

// NumSpecial is the number of reserved special tokens.
const NumSpecial = 4

// DefaultMaxSize is the vocabulary capacity used when callers do not
// configure one.
const DefaultMaxSize = 30000

var specialTokens = [NumSpecial]string{UnknownToken, PadToken, BOSToken, EOSToken}

// Vocabulary maps tokens to dense integer ids and back. Ids form the range
// [0, Len()); the four special tokens occupy ids 0-3. Build is the only
// mutator and rebuilds both directions atomically.
type Vocabulary struct {
	maxSize   int
	tokenToID map[string]int
	idToToken []string
}

// New returns an empty vocabulary (special tokens only) with the given
// capacity. A capacity smaller than the four mandatory special tokens
// cannot produce a valid vocabulary and is rejected.
func New(maxSize int) (*Vocabulary, error) {
	if maxSize < NumSpecial {
		return nil, fmt.Errorf("vocab: max size %d is smaller than the %d special tokens", maxSize, NumSpecial)
	}

	v := &Vocabulary{maxSize: maxSize}
	v.Build(nil)

	return v, nil
}

// Build replaces the vocabulary contents with the special tokens followed by
// the deduplicated, lexicographically sorted input tokens, truncated to the
// configured capacity. Special tokens appearing in the input are ignored
// (they already hold ids 0-3). Building from the same tokens is idempotent.
func (v *Vocabulary) Build(tokens []string) {
	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if isSpecial(tok) {
			continue
		}
		seen[tok] = struct{}{}
	}

	unique := make([]string, 0, len(seen))
	for tok := range seen {
		unique = append(unique, tok)
	}
	sort.Strings(unique)

	if room := v.maxSize - NumSpecial; len(unique) > room {
		unique = unique[:room]
	}

	// Rebuild both maps in one shot so partial state is never observable.
	idToToken := make([]string, 0, NumSpecial+len(unique))
	idToToken = append(idToToken, specialTokens[:]...)
	idToToken = append(idToToken, unique...)

	tokenToID := make(map[string]int, len(idToToken))
	for id, tok := range idToToken {
		tokenToID[tok] = id
	}

	v.tokenToID = tokenToID
	v.idToToken = idToToken
}

// ID returns the id of token, or UnknownID if the token is not in the
// vocabulary.
func (v *Vocabulary) ID(token string) int {
	if id, ok := v.tokenToID[token]; ok {
		return id
	}
	return UnknownID
}

// Token returns the token with the given id, or UnknownToken if the id is
// negative or beyond the current size.
func (v *Vocabulary) Token(id int) string {
	if id < 0 || id >= len(v.idToToken) {
		return UnknownToken
	}
	return v.idToToken[id]
}

// Len returns the current number of tokens, special tokens included.
func (v *Vocabulary) Len() int {
	return len(v.idToToken)
}

// MaxSize returns the configured capacity ceiling.
func (v *Vocabulary) MaxSize() int {
	return v.maxSize
}

// Tokens returns a copy of all tokens in id order.
func (v *Vocabulary) Tokens() []string {
	out := make([]string, len(v.idToToken))
	copy(out, v.idToToken)
	return out
}

func isSpecial(token string) bool {
	for _, s := range specialTokens {
		if token == s {
			return true
		}
	}
	return false
}
