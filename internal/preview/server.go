package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/krow/internal/demo"
	"github.com/vango-dev/krow/internal/metrics"
	"github.com/vango-dev/krow/internal/snapshot"
)

// Server is the live preview server.
type Server struct {
	cfg      *Config
	router   chi.Router
	registry *prometheus.Registry
	metrics  *metrics.Collector
	upgrader websocket.Upgrader
	logger   *slog.Logger

	httpServer *http.Server

	// ctx is cancelled on shutdown to stop every session.
	ctx      context.Context
	cancel   context.CancelFunc
	sessions sync.WaitGroup
	nextID   atomic.Uint64
}

// New creates a preview server. A nil config uses DefaultConfig.
func New(cfg *Config) *Server {
	cfg = cfg.withDefaults()

	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:      cfg,
		registry: registry,
		metrics: metrics.New(
			metrics.WithRegistry(registry),
			metrics.WithNamespace(cfg.Namespace),
		),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     cfg.CheckOrigin,
		},
		logger: cfg.Logger,
		ctx:    ctx,
		cancel: cancel,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/demos/"+s.cfg.DefaultDemo, http.StatusFound)
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	if !s.cfg.DisableMetrics {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	r.Get("/client.js", s.serveClient)

	r.Route("/demos", func(r chi.Router) {
		r.Get("/", s.listDemos)
		r.Route("/{name}", func(r chi.Router) {
			r.Use(s.demoContext)
			r.Get("/", s.showDemo)
			r.Get("/snapshot", s.snapshotDemo)
			r.Get("/ws", s.handleWebSocket)
		})
	})
	return r
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler { return s.router }

// Metrics returns the server's metric collectors.
func (s *Server) Metrics() *metrics.Collector { return s.metrics }

// logRequests logs each request once it completes.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

type demoKey struct{}

func (s *Server) demoContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		d, ok := demo.Lookup(name)
		if !ok {
			http.Error(w, fmt.Sprintf("unknown demo %q", name), http.StatusNotFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), demoKey{}, d)))
	})
}

func demoFrom(r *http.Request) demo.Demo {
	return r.Context().Value(demoKey{}).(demo.Demo)
}

type demoInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

func (s *Server) listDemos(w http.ResponseWriter, r *http.Request) {
	all := demo.All()
	out := make([]demoInfo, len(all))
	for i, d := range all {
		out[i] = demoInfo{Name: d.Name, Description: d.Description, URL: "/demos/" + d.Name}
	}
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	if s.cfg.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		s.logger.Error("encode demo list", "error", err)
	}
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Name}} - krow preview</title>
</head>
<body>
<header><strong>{{.Name}}</strong> {{.Description}}</header>
<main id="app" data-ws="/demos/{{.Name}}/ws"><noscript>{{.Snapshot}}</noscript></main>
<script src="/client.js" defer></script>
</body>
</html>
`))

func (s *Server) showDemo(w http.ResponseWriter, r *http.Request) {
	d := demoFrom(r)
	snap, err := snapshot.Render(r.Context(), d.Name, d.New)
	if err != nil {
		s.logger.Error("snapshot failed", "demo", d.Name, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = pageTemplate.Execute(w, struct {
		Name, Description string
		Snapshot          template.HTML
	}{d.Name, d.Description, template.HTML(snap.HTML)})
	if err != nil {
		s.logger.Error("page render failed", "demo", d.Name, "error", err)
	}
}

func (s *Server) snapshotDemo(w http.ResponseWriter, r *http.Request) {
	d := demoFrom(r)
	snap, err := snapshot.Render(r.Context(), d.Name, d.New)
	if err != nil {
		s.logger.Error("snapshot failed", "demo", d.Name, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(snap.Document())
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	d := demoFrom(r)
	def := FormatMsgpack
	if s.cfg.Pretty {
		def = FormatJSON
	}
	format, err := ParseFormat(r.URL.Query().Get("format"), def)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	s.sessions.Add(1)
	defer s.sessions.Done()

	sess := newSession(s.nextID.Add(1), d, conn, format, s.cfg, s.metrics)
	defer sess.close()
	if err := sess.run(s.ctx); err != nil && !errors.Is(err, context.Canceled) {
		sess.logger.Error("session failed", "error", err)
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("preview server starting", "address", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return s.Shutdown(context.Background())
	})
	return g.Wait()
}

// Shutdown stops accepting connections, closes every session and waits for
// them to finish, up to the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()

	s.cancel()
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	done := make(chan struct{})
	go func() {
		s.sessions.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return fmt.Errorf("waiting for sessions: %w", ctx.Err())
	}

	s.logger.Info("preview server stopped")
	return nil
}
