package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

type fakeBinder struct {
	fs *pflag.FlagSet
}

func (f *fakeBinder) Flags() *pflag.FlagSet { return f.fs }

func newBinder(t *testing.T) *fakeBinder {
	t.Helper()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, DefaultConfig())

	return &fakeBinder{fs: fs}
}

// ---------------------------------------------------------------------------
// Defaults
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.Tokenizer.Algorithm != AlgorithmBPE {
		t.Errorf("Tokenizer.Algorithm = %q, want %q", cfg.Tokenizer.Algorithm, AlgorithmBPE)
	}
	if cfg.Tokenizer.MaxVocabSize != 30000 {
		t.Errorf("Tokenizer.MaxVocabSize = %d, want 30000", cfg.Tokenizer.MaxVocabSize)
	}
	if cfg.Tokenizer.MaxMerges != 10000 {
		t.Errorf("Tokenizer.MaxMerges = %d, want 10000", cfg.Tokenizer.MaxMerges)
	}
	if cfg.Corpus.Path != "corpus/train.txt" {
		t.Errorf("Corpus.Path = %q, want corpus/train.txt", cfg.Corpus.Path)
	}
	if cfg.Corpus.ChunkSize != 1024 {
		t.Errorf("Corpus.ChunkSize = %d, want 1024", cfg.Corpus.ChunkSize)
	}
	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("Server.ListenAddr = %q, want :8080", cfg.Server.ListenAddr)
	}
	if cfg.Server.Workers != 2 {
		t.Errorf("Server.Workers = %d, want 2", cfg.Server.Workers)
	}
}

func TestLoad_DefaultsWithoutSources(t *testing.T) {
	cfg, err := Load(LoadOptions{Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg != DefaultConfig() {
		t.Errorf("Load without sources = %+v, want defaults", cfg)
	}
}

// ---------------------------------------------------------------------------
// Precedence
// ---------------------------------------------------------------------------

func TestLoad_FlagOverridesDefault(t *testing.T) {
	binder := newBinder(t)
	if err := binder.fs.Set("tokenizer-algorithm", "wordpiece"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if err := binder.fs.Set("server-workers", "8"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	cfg, err := Load(LoadOptions{Cmd: binder, Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Tokenizer.Algorithm != AlgorithmWordPiece {
		t.Errorf("Tokenizer.Algorithm = %q, want %q", cfg.Tokenizer.Algorithm, AlgorithmWordPiece)
	}
	if cfg.Server.Workers != 8 {
		t.Errorf("Server.Workers = %d, want 8", cfg.Server.Workers)
	}
	if cfg.Corpus.Path != "corpus/train.txt" {
		t.Errorf("untouched Corpus.Path = %q, want default", cfg.Corpus.Path)
	}
}

func TestLoad_EnvOverridesDefault(t *testing.T) {
	t.Setenv("SUBTOK_TOKENIZER_MAX_MERGES", "42")
	t.Setenv("SUBTOK_LOG_LEVEL", "debug")

	cfg, err := Load(LoadOptions{Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Tokenizer.MaxMerges != 42 {
		t.Errorf("Tokenizer.MaxMerges = %d, want 42", cfg.Tokenizer.MaxMerges)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subtok.yaml")
	content := "log_level: warn\ntokenizer:\n  algorithm: simple\n  max_vocab_size: 128\nserver:\n  listen_addr: \":9090\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := Load(LoadOptions{ConfigFile: path, Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if cfg.Tokenizer.Algorithm != AlgorithmSimple {
		t.Errorf("Tokenizer.Algorithm = %q, want %q", cfg.Tokenizer.Algorithm, AlgorithmSimple)
	}
	if cfg.Tokenizer.MaxVocabSize != 128 {
		t.Errorf("Tokenizer.MaxVocabSize = %d, want 128", cfg.Tokenizer.MaxVocabSize)
	}
	if cfg.Server.ListenAddr != ":9090" {
		t.Errorf("Server.ListenAddr = %q, want :9090", cfg.Server.ListenAddr)
	}
	if cfg.Tokenizer.MaxMerges != 10000 {
		t.Errorf("Tokenizer.MaxMerges = %d, want default 10000", cfg.Tokenizer.MaxMerges)
	}
}

func TestLoad_MissingExplicitConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	if _, err := Load(LoadOptions{ConfigFile: path, Defaults: DefaultConfig()}); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

// ---------------------------------------------------------------------------
// NormalizeAlgorithm
// ---------------------------------------------------------------------------

func TestNormalizeAlgorithm(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"", AlgorithmBPE},
		{"simple", AlgorithmSimple},
		{"bpe", AlgorithmBPE},
		{"BPE", AlgorithmBPE},
		{" wordpiece ", AlgorithmWordPiece},
		{"word-piece", AlgorithmWordPiece},
		{"word_piece", AlgorithmWordPiece},
		{"byte-pair-encoding", AlgorithmBPE},
		{"byte_pair_encoding", AlgorithmBPE},
		{"unigram", AlgorithmUnigram},
	}
	for _, tc := range cases {
		got, err := NormalizeAlgorithm(tc.raw)
		if err != nil {
			t.Errorf("NormalizeAlgorithm(%q): %v", tc.raw, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizeAlgorithm(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeAlgorithm_Invalid(t *testing.T) {
	for _, raw := range []string{"sentencepiece", "bp", "none"} {
		if _, err := NormalizeAlgorithm(raw); err == nil {
			t.Errorf("NormalizeAlgorithm(%q): expected error", raw)
		}
	}
}
