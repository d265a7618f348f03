package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	"github.com/terrytangyuan/social-media-kit-go/internal/chunk"
	"github.com/terrytangyuan/social-media-kit-go/internal/config"
	"github.com/terrytangyuan/social-media-kit-go/internal/platform"
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

// ---------------------------------------------------------------------------
// Functional options
// ---------------------------------------------------------------------------

type options struct {
	maxTextBytes int
	logger       *slog.Logger
}

func defaultOptions() options {
	return options{
		maxTextBytes: 65536,
		logger:       slog.Default(),
	}
}

// Option configures the HTTP handler.
type Option func(*options)

// WithMaxTextBytes sets the maximum allowed text length in bytes for POST /split.
func WithMaxTextBytes(n int) Option {
	return func(o *options) { o.maxTextBytes = n }
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
	table platform.Table
	opts  options
	log   *slog.Logger
}

// NewHandler returns an http.Handler that serves /health, /platforms, and
// POST /split. The table is the injected platform policy; the handler never
// falls back to built-in limits.
func NewHandler(table platform.Table, optFns ...Option) http.Handler {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	h := &handler{
		table: table,
		opts:  opts,
		log:   opts.logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/platforms", h.handlePlatforms)
	mux.HandleFunc("/split", h.handleSplit)
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

type platformPayload struct {
	Name string     `json:"name"`
	Max  int        `json:"max"`
	Mode chunk.Mode `json:"mode"`
}

func (h *handler) handlePlatforms(w http.ResponseWriter, _ *http.Request) {
	payload := make([]platformPayload, 0, len(h.table))
	for name, lim := range h.table {
		payload = append(payload, platformPayload{Name: name, Max: lim.Max, Mode: lim.Mode})
	}
	sort.Slice(payload, func(i, j int) bool { return payload[i].Name < payload[j].Name })
	writeJSON(w, http.StatusOK, payload)
}

type splitRequest struct {
	Text     string `json:"text"`
	Platform string `json:"platform"`
}

type segmentPayload struct {
	Text      string `json:"text"`
	Length    int    `json:"length"`
	Truncated bool   `json:"truncated,omitempty"`
}

type splitResponse struct {
	Platform string           `json:"platform"`
	Limit    int              `json:"limit"`
	Mode     chunk.Mode       `json:"mode"`
	Length   int              `json:"length"`
	Segments []segmentPayload `json:"segments"`
}

func (h *handler) handleSplit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if r.Body == nil {
		writeError(w, http.StatusBadRequest, "request body is required")
		return
	}

	var req splitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text field is required")
		return
	}

	if len(req.Text) > h.opts.maxTextBytes {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("text exceeds maximum size of %d bytes", h.opts.maxTextBytes))
		return
	}

	if req.Platform == "" {
		writeError(w, http.StatusBadRequest, "platform field is required")
		return
	}

	lim, err := h.table.Lookup(req.Platform)
	if err != nil {
		h.log.WarnContext(r.Context(), "split rejected",
			slog.String("platform", req.Platform),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	text := chunk.Normalize(req.Text)

	start := time.Now()
	chunks, err := chunk.Split(text, lim)
	durationUS := time.Since(start).Microseconds()

	if err != nil {
		// The table is validated at load time, so this indicates a bug
		// rather than a bad request.
		h.log.ErrorContext(r.Context(), "split failed",
			slog.String("platform", req.Platform),
			slog.Int("text_len", len(req.Text)),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := splitResponse{
		Platform: req.Platform,
		Limit:    lim.Max,
		Mode:     lim.Mode,
		Segments: make([]segmentPayload, len(chunks)),
	}
	if resp.Length, err = chunk.Length(text, lim.Mode); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	for i, c := range chunks {
		n, err := chunk.Length(c.Text, lim.Mode)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp.Segments[i] = segmentPayload{Text: c.Text, Length: n, Truncated: c.Truncated}
	}

	h.log.InfoContext(r.Context(), "split complete",
		slog.String("platform", req.Platform),
		slog.Int("text_len", len(req.Text)),
		slog.Int("length", resp.Length),
		slog.Int("segments", len(chunks)),
		slog.Int64("duration_us", durationUS),
	)

	writeJSON(w, http.StatusOK, resp)
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

// Server wires the HTTP handler into a net/http.Server with graceful shutdown.
type Server struct {
	cfg             config.Config
	table           platform.Table
	shutdownTimeout time.Duration
}

func New(cfg config.Config, table platform.Table) *Server {
	return &Server{
		cfg:             cfg,
		table:           table,
		shutdownTimeout: 30 * time.Second,
	}
}

// WithShutdownTimeout overrides the graceful-shutdown drain period.
func (s *Server) WithShutdownTimeout(d time.Duration) *Server {
	s.shutdownTimeout = d
	return s
}

func (s *Server) Start(ctx context.Context) error {
	if len(s.table) == 0 {
		return errors.New("empty platform table")
	}

	h := NewHandler(s.table, WithMaxTextBytes(s.cfg.Server.MaxTextBytes))

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
