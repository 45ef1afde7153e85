// Package server exposes a trained tokenizer over HTTP: GET /health,
// GET /vocab, and POST /segment, /encode and /decode. Training happens
// once before the server starts; every request is a read-only operation
// on the built vocabulary, so requests may run concurrently.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/example/go-subtok/internal/config"
	"github.com/example/go-subtok/internal/tokenizer"
	"github.com/example/go-subtok/internal/vocab"
)

// ParseLogLevel converts a case-insensitive level string to slog.Level.
// An empty string returns slog.LevelInfo. Unknown strings return an error.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}

// Codec is the trained tokenizer surface the server exposes.
// Implementations must be safe for concurrent readers; the server never
// trains after startup.
type Codec interface {
	Segment(text string) ([]string, error)
	Encode(text string) ([]int, error)
	Decode(ids []int) (string, error)
	Vocab() *vocab.Vocabulary
}

// ---------------------------------------------------------------------------
// Functional options
// ---------------------------------------------------------------------------

type options struct {
	maxTextBytes   int
	workers        int
	requestTimeout time.Duration
	logger         *slog.Logger
}

func defaultOptions() options {
	return options{
		maxTextBytes:   65536,
		workers:        2,
		requestTimeout: 30 * time.Second,
		logger:         slog.Default(),
	}
}

// Option configures the HTTP handler.
type Option func(*options)

// WithMaxTextBytes sets the maximum allowed text length in bytes for POST
// requests.
func WithMaxTextBytes(n int) Option {
	return func(o *options) { o.maxTextBytes = n }
}

// WithWorkers sets the maximum number of concurrent tokenization calls.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithRequestTimeout sets the per-request tokenization deadline.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) { o.requestTimeout = d }
}

// WithLogger sets the slog.Logger used for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// ---------------------------------------------------------------------------
// handler
// ---------------------------------------------------------------------------

// handler holds the dependencies needed to serve HTTP requests.
type handler struct {
	codec Codec
	opts  options
	sem   chan struct{} // semaphore for worker pool
	log   *slog.Logger
}

// NewHandler returns an http.Handler serving /health, /vocab, /segment,
// /encode and /decode on top of an already-trained tokenizer.
func NewHandler(codec Codec, optFns ...Option) http.Handler {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	h := &handler{
		codec: codec,
		opts:  opts,
		log:   opts.logger,
	}
	if opts.workers > 0 {
		h.sem = make(chan struct{}, opts.workers)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/vocab", h.handleVocab)
	mux.HandleFunc("/segment", h.handleSegment)
	mux.HandleFunc("/encode", h.handleEncode)
	mux.HandleFunc("/decode", h.handleDecode)
	return mux
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildVersion(),
	})
}

type vocabResponse struct {
	Size   int      `json:"size"`
	Tokens []string `json:"tokens"`
}

func (h *handler) handleVocab(w http.ResponseWriter, _ *http.Request) {
	v := h.codec.Vocab()
	writeJSON(w, http.StatusOK, vocabResponse{
		Size:   v.Len(),
		Tokens: v.Tokens(),
	})
}

type textRequest struct {
	Text string `json:"text"`
}

type segmentResponse struct {
	Tokens []string `json:"tokens"`
}

func (h *handler) handleSegment(w http.ResponseWriter, r *http.Request) {
	text, ok := h.readText(w, r)
	if !ok {
		return
	}

	var tokens []string
	done := h.run(w, r, "segment", len(text), func() error {
		var err error
		tokens, err = h.codec.Segment(text)
		return err
	})
	if !done {
		return
	}

	if tokens == nil {
		tokens = []string{}
	}
	writeJSON(w, http.StatusOK, segmentResponse{Tokens: tokens})
}

type encodeResponse struct {
	IDs []int `json:"ids"`
}

func (h *handler) handleEncode(w http.ResponseWriter, r *http.Request) {
	text, ok := h.readText(w, r)
	if !ok {
		return
	}

	var ids []int
	done := h.run(w, r, "encode", len(text), func() error {
		var err error
		ids, err = h.codec.Encode(text)
		return err
	})
	if !done {
		return
	}

	if ids == nil {
		ids = []int{}
	}
	writeJSON(w, http.StatusOK, encodeResponse{IDs: ids})
}

type decodeRequest struct {
	IDs []int `json:"ids"`
}

type decodeResponse struct {
	Text string `json:"text"`
}

func (h *handler) handleDecode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req decodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	var text string
	done := h.run(w, r, "decode", len(req.IDs), func() error {
		var err error
		text, err = h.codec.Decode(req.IDs)
		return err
	})
	if !done {
		return
	}

	writeJSON(w, http.StatusOK, decodeResponse{Text: text})
}

// readText validates method, body and size for the text-carrying
// endpoints and reports whether the caller should proceed.
func (h *handler) readText(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return "", false
	}

	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return "", false
	}

	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text field is required")
		return "", false
	}

	if len(req.Text) > h.opts.maxTextBytes {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("text exceeds maximum size of %d bytes", h.opts.maxTextBytes))
		return "", false
	}

	return req.Text, true
}

// run executes fn under the worker semaphore and the per-request timeout,
// writing the error response itself when fn fails or the deadline passes.
// It reports whether the caller may write the success response.
func (h *handler) run(w http.ResponseWriter, r *http.Request, op string, inputLen int, fn func() error) bool {
	if h.sem != nil {
		select {
		case h.sem <- struct{}{}:
			// slot acquired
		case <-r.Context().Done():
			writeError(w, http.StatusServiceUnavailable, "request cancelled while waiting for worker")
			return false
		}
		defer func() { <-h.sem }()
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.opts.requestTimeout)
	defer cancel()

	start := time.Now()
	errCh := make(chan error, 1)
	go func() { errCh <- fn() }()

	select {
	case <-ctx.Done():
		h.log.WarnContext(r.Context(), "tokenization timed out",
			slog.String("op", op),
			slog.Int("input_len", inputLen),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		writeError(w, http.StatusGatewayTimeout, op+" timed out")
		return false
	case err := <-errCh:
		durationMS := time.Since(start).Milliseconds()
		if err != nil {
			h.log.ErrorContext(r.Context(), "tokenization failed",
				slog.String("op", op),
				slog.Int("input_len", inputLen),
				slog.Int64("duration_ms", durationMS),
				slog.String("error", err.Error()),
			)
			writeError(w, http.StatusInternalServerError, err.Error())
			return false
		}
		h.log.InfoContext(r.Context(), "tokenization complete",
			slog.String("op", op),
			slog.Int("input_len", inputLen),
			slog.Int64("duration_ms", durationMS),
		)
		return true
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ---------------------------------------------------------------------------
// Server — wires handler into net/http.Server with graceful shutdown
// ---------------------------------------------------------------------------

// Server wires the HTTP handler into a net/http.Server with graceful
// shutdown.
type Server struct {
	cfg             config.Config
	codec           tokenizer.Tokenizer
	shutdownTimeout time.Duration
}

// New returns a Server for an already-trained tokenizer.
func New(cfg config.Config, codec tokenizer.Tokenizer) *Server {
	return &Server{
		cfg:             cfg,
		codec:           codec,
		shutdownTimeout: 30 * time.Second,
	}
}

// WithShutdownTimeout overrides the graceful-shutdown drain period.
func (s *Server) WithShutdownTimeout(d time.Duration) *Server {
	s.shutdownTimeout = d
	return s
}

// Start serves until ctx is cancelled, then drains within the shutdown
// timeout.
func (s *Server) Start(ctx context.Context) error {
	h := NewHandler(s.codec,
		WithWorkers(s.cfg.Server.Workers),
		WithMaxTextBytes(s.cfg.Server.MaxTextBytes),
		WithRequestTimeout(time.Duration(s.cfg.Server.RequestTimeout)*time.Second),
	)

	httpServer := &http.Server{
		Addr:              s.cfg.Server.ListenAddr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return fmt.Errorf("http listen: %w", err)
	}
}

// ProbeHTTP checks the /health endpoint of a running server.
func ProbeHTTP(addr string) error {
	resp, err := http.Get("http://" + addr + "/health") //nolint:noctx
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status: %s", resp.Status)
	}
	return nil
}
