package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	LogLevel  string          `mapstructure:"log_level"`
	Corpus    CorpusConfig    `mapstructure:"corpus"`
	Tokenizer TokenizerConfig `mapstructure:"tokenizer"`
	Server    ServerConfig    `mapstructure:"server"`
}

type CorpusConfig struct {
	Path      string `mapstructure:"path"`
	ChunkSize int    `mapstructure:"chunk_size"`
}

type TokenizerConfig struct {
	Algorithm    string `mapstructure:"algorithm"`
	MaxVocabSize int    `mapstructure:"max_vocab_size"`
	MaxMerges    int    `mapstructure:"max_merges"`
}

type ServerConfig struct {
	ListenAddr      string `mapstructure:"listen_addr"`
	Workers         int    `mapstructure:"workers"`
	MaxTextBytes    int    `mapstructure:"max_text_bytes"`
	RequestTimeout  int    `mapstructure:"request_timeout"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Corpus: CorpusConfig{
			Path:      "corpus/train.txt",
			ChunkSize: 1024,
		},
		Tokenizer: TokenizerConfig{
			Algorithm:    AlgorithmBPE,
			MaxVocabSize: 30000,
			MaxMerges:    10000,
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			Workers:         2,
			MaxTextBytes:    65536,
			RequestTimeout:  30,
			ShutdownTimeout: 30,
		},
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
	fs.String("corpus-path", defaults.Corpus.Path, "Path to the training corpus text file")
	fs.Int("corpus-chunk-size", defaults.Corpus.ChunkSize, "Chunk size in runes for chunked corpus reads")
	fs.String("tokenizer-algorithm", defaults.Tokenizer.Algorithm, "Tokenizer algorithm (simple|bpe|wordpiece|unigram)")
	fs.Int("tokenizer-max-vocab-size", defaults.Tokenizer.MaxVocabSize, "Vocabulary capacity including the 4 special tokens")
	fs.Int("tokenizer-max-merges", defaults.Tokenizer.MaxMerges, "Merge cap per segmentation pass")
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("server-workers", defaults.Server.Workers, "Max concurrent tokenization requests")
	fs.Int("server-max-text-bytes", defaults.Server.MaxTextBytes, "Maximum request text size in bytes")
	fs.Int("server-request-timeout", defaults.Server.RequestTimeout, "Per-request timeout in seconds")
	fs.Int("server-shutdown-timeout", defaults.Server.ShutdownTimeout, "Graceful shutdown drain period in seconds")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := v.BindPFlags(opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	registerAliases(v)

	v.SetEnvPrefix("SUBTOK")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("subtok")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("log_level", c.LogLevel)
	v.SetDefault("corpus.path", c.Corpus.Path)
	v.SetDefault("corpus.chunk_size", c.Corpus.ChunkSize)
	v.SetDefault("tokenizer.algorithm", c.Tokenizer.Algorithm)
	v.SetDefault("tokenizer.max_vocab_size", c.Tokenizer.MaxVocabSize)
	v.SetDefault("tokenizer.max_merges", c.Tokenizer.MaxMerges)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.workers", c.Server.Workers)
	v.SetDefault("server.max_text_bytes", c.Server.MaxTextBytes)
	v.SetDefault("server.request_timeout", c.Server.RequestTimeout)
	v.SetDefault("server.shutdown_timeout", c.Server.ShutdownTimeout)
}

func registerAliases(v *viper.Viper) {
	v.RegisterAlias("log_level", "log-level")
	v.RegisterAlias("corpus.path", "corpus-path")
	v.RegisterAlias("corpus.chunk_size", "corpus-chunk-size")
	v.RegisterAlias("tokenizer.algorithm", "tokenizer-algorithm")
	v.RegisterAlias("tokenizer.max_vocab_size", "tokenizer-max-vocab-size")
	v.RegisterAlias("tokenizer.max_merges", "tokenizer-max-merges")
	v.RegisterAlias("server.listen_addr", "server-listen-addr")
	v.RegisterAlias("server.workers", "server-workers")
	v.RegisterAlias("server.max_text_bytes", "server-max-text-bytes")
	v.RegisterAlias("server.request_timeout", "server-request-timeout")
	v.RegisterAlias("server.shutdown_timeout", "server-shutdown-timeout")
}
