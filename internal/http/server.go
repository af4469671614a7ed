package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"gastobot/internal/cache"
	"gastobot/internal/log"
	"gastobot/internal/middleware/ratelimit"
	"gastobot/internal/middleware/trace"
	"gastobot/internal/services"
	"gastobot/internal/storage"
)

// Server exposes the assistant over a small JSON API. Inbound chat updates
// are deduplicated by update id so messaging-platform retries do not record
// the same transaction twice.
type Server struct {
	http.Server

	assistant *services.Assistant
	store     storage.DocumentStore
	logger    *log.Logger

	limiter     *ratelimit.Limiter
	seenUpdates *cache.LRUCache[struct{}]
	cacheMgr    *cache.Manager

	maxUploadBytes int64
	startedAt      time.Time
	shutdownOnce   sync.Once
}

// Options configures the HTTP server.
type Options struct {
	Addr              string
	RequestsPerMinute int
	MaxUploadBytes    int64
}

const defaultMaxUploadBytes = 10 << 20 // 10 MiB receipt images

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(opts Options, assistant *services.Assistant, store storage.DocumentStore, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}

	s := &Server{
		assistant: assistant,
		store:     store,
		logger:    logger.WithComponent(log.ComponentHTTP),
		limiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: opts.RequestsPerMinute,
		}),
		seenUpdates:    cache.NewLRUCache[struct{}](1000, 30*time.Minute),
		cacheMgr:       cache.NewManager(),
		maxUploadBytes: opts.MaxUploadBytes,
		startedAt:      time.Now(),
	}
	s.cacheMgr.Register(s.seenUpdates)
	s.cacheMgr.StartCleanup(10 * time.Minute)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/messages", s.handleMessage)
	mux.HandleFunc("/v1/receipts", s.handleReceipt)
	mux.HandleFunc("/v1/transactions", s.handleListTransactions)

	traceMW := trace.NewMiddleware(extractClientIP)
	limitMW := s.limiter.Middleware(extractClientIP, s.handleRateLimited)
	logMW := log.Middleware(logger)

	s.Server = http.Server{
		Addr:              opts.Addr,
		Handler:           traceMW.Middleware(limitMW(logMW(mux))),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}
	return s
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Retry-After", "60")
	writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		s.cacheMgr.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
