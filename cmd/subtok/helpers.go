package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/example/go-subtok/internal/config"
	"github.com/example/go-subtok/internal/corpus"
	"github.com/example/go-subtok/internal/tokenizer"
)

// newTokenizer constructs the tokenizer variant named by the config.
func newTokenizer(cfg config.Config) (tokenizer.Tokenizer, error) {
	alg, err := config.NormalizeAlgorithm(cfg.Tokenizer.Algorithm)
	if err != nil {
		return nil, err
	}

	switch alg {
	case config.AlgorithmSimple:
		return tokenizer.NewSimpleSegmenter(cfg.Tokenizer.MaxVocabSize)
	case config.AlgorithmBPE:
		return tokenizer.NewBytePairEncoding(cfg.Tokenizer.MaxVocabSize, cfg.Tokenizer.MaxMerges)
	case config.AlgorithmWordPiece:
		return tokenizer.NewWordPiece(cfg.Tokenizer.MaxVocabSize, cfg.Tokenizer.MaxMerges)
	case config.AlgorithmUnigram:
		return tokenizer.NewUnigramLanguageModel(cfg.Tokenizer.MaxVocabSize)
	default:
		return nil, fmt.Errorf("unsupported tokenizer algorithm %q", alg)
	}
}

// trainedTokenizer builds the configured tokenizer and trains it on the
// corpus file. corpusPath overrides the configured path when non-empty.
func trainedTokenizer(cfg config.Config, corpusPath string) (tokenizer.Tokenizer, error) {
	path := cfg.Corpus.Path
	if corpusPath != "" {
		path = corpusPath
	}

	text, err := corpus.ReadAll(path)
	if err != nil {
		return nil, err
	}

	tok, err := newTokenizer(cfg)
	if err != nil {
		return nil, err
	}

	if err := tok.Learn(text); err != nil {
		return nil, fmt.Errorf("train on %q: %w", path, err)
	}

	slog.Info("tokenizer trained",
		slog.String("algorithm", cfg.Tokenizer.Algorithm),
		slog.String("corpus", path),
		slog.Int("corpus_bytes", len(text)),
		slog.Int("vocab_size", tok.Len()),
	)

	return tok, nil
}

// readInputText returns text when non-empty, otherwise reads all of stdin.
func readInputText(text string, stdin io.Reader) (string, error) {
	if text != "" {
		return text, nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read text from stdin: %w", err)
	}

	input := strings.TrimRight(string(data), "\n")
	if input == "" {
		return "", fmt.Errorf("no input text: pass --text or pipe text on stdin")
	}

	return input, nil
}
