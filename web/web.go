// Package web serves a live, highlighted preview of a source file.
//
// The page at / shows the file rendered with the active theme together with
// any unrecognized-character diagnostics. When watching is enabled the page
// reloads itself through server-sent events whenever the file changes.
//
// The server has no authentication. It listens on 127.0.0.1 by default and
// only ever reads or writes the one file given to New.
package web

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/lumen-language/Lumen-Kit/errors"
	"github.com/lumen-language/Lumen-Kit/lexer"
	"github.com/lumen-language/Lumen-Kit/output"
	"github.com/lumen-language/Lumen-Kit/telemetry"
	"github.com/lumen-language/Lumen-Kit/watch"
)

// Server previews one file over HTTP.
type Server struct {
	Port         int
	Host         string
	ReadOnly     bool // reject PUT /api/source
	WatchEnabled bool // rescan on change and tell open pages to reload

	opts   []output.Option
	events *hub

	mu          sync.RWMutex
	file        string // absolute once Start has run
	source      []byte
	tokens      []lexer.Token
	diagnostics []error
}

// New creates a server previewing file, rendered with opts.
func New(port int, file string, opts ...output.Option) *Server {
	return &Server{
		Port:   port,
		Host:   "127.0.0.1",
		opts:   opts,
		events: newHub(),
		file:   file,
	}
}

// Start loads the file and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	abs, err := filepath.Abs(s.file)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	s.file = abs

	timer := telemetry.FromContext(ctx).Start(fmt.Sprintf("serve.load %s", filepath.Base(abs)))
	err = s.reload(ctx)
	timer.End()
	if err != nil {
		return fmt.Errorf("failed to load source: %w", err)
	}

	if s.WatchEnabled {
		go s.watchFile(ctx)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.Host, s.Port),
		Handler:           s.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !stdErrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) setupRouter() *http.ServeMux {
	routes := map[string]http.HandlerFunc{
		"GET /{$}":        s.handlePage,
		"GET /api/source": s.handleGetSource,
		"PUT /api/source": s.writable(s.handlePutSource),
		"GET /api/tokens": s.handleGetTokens,
		"GET /api/events": s.events.serveEvents,
	}

	mux := http.NewServeMux()
	for pattern, handler := range routes {
		mux.HandleFunc(pattern, handler)
	}
	return mux
}

// writable wraps a handler that modifies the file.
func (s *Server) writable(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.ReadOnly {
			http.Error(w, "read-only preview: edits are disabled", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

// reload rescans the file from disk. It takes the lock itself.
func (s *Server) reload(ctx context.Context) error {
	source, err := os.ReadFile(s.file)
	if err != nil {
		return err
	}
	return s.update(ctx, source)
}

// update scans source and swaps it in with its tokens and diagnostics.
func (s *Server) update(ctx context.Context, source []byte) error {
	tokens, err := lexer.CollectContext(ctx, lexer.NewReclassifier(lexer.NewScanner(source, s.file)))
	if err != nil {
		return err
	}
	diagnostics := errors.Find(s.file, source, lexer.NewSliceStream(tokens))

	s.mu.Lock()
	s.source = source
	s.tokens = tokens
	s.diagnostics = diagnostics
	s.mu.Unlock()
	return nil
}

func (s *Server) watchFile(ctx context.Context) {
	if err := watch.File(ctx, s.file, func() { s.handleFileChange(ctx) }); err != nil {
		log.Printf("Warning: live reload disabled: %v", err)
	}
}

func (s *Server) handleFileChange(ctx context.Context) {
	if err := s.reload(ctx); err != nil {
		log.Printf("Failed to reload %s: %v", s.file, err)
		return
	}
	s.events.publish("reload")
}
