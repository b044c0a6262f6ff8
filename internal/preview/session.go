package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/krow"
	"github.com/vango-dev/krow/internal/demo"
	"github.com/vango-dev/krow/internal/metrics"
	"github.com/vango-dev/krow/pkg/memdom"
	"github.com/vango-dev/krow/pkg/surface"
)

var errSessionClosed = errors.New("preview: session closed")

// session is one connected client running its own application instance.
// The engine is only touched from the read loop.
type session struct {
	id      uint64
	demo    demo.Demo
	conn    *websocket.Conn
	format  Format
	cfg     *Config
	metrics *metrics.Collector
	logger  *slog.Logger

	dom *memdom.DOM
	rec *surface.Recorder
	app krow.Application
	seq uint64
}

func newSession(id uint64, d demo.Demo, conn *websocket.Conn, format Format, cfg *Config, m *metrics.Collector) *session {
	dom := memdom.New()
	s := &session{
		id:      id,
		demo:    d,
		conn:    conn,
		format:  format,
		cfg:     cfg,
		metrics: m,
		logger:  cfg.Logger.With("session", id, "demo", d.Name),
		dom:     dom,
		rec:     surface.NewRecorder(dom, dom.Identify),
	}
	s.app = d.New(s.rec,
		krow.WithLogger(s.logger),
		krow.WithObserver(m),
	)
	return s
}

// run mounts the application, streams the initial frame and serves events
// until the client leaves or ctx is cancelled.
func (s *session) run(ctx context.Context) error {
	s.conn.SetReadLimit(s.cfg.MaxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(s.cfg.PongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.cfg.PongWait))
	})

	if err := s.app.Mount(ctx, s.dom.Body()); err != nil {
		s.logger.Error("mount failed", "error", err)
		if !s.app.Mounted() {
			return err
		}
	}
	s.metrics.ClientConnected()
	defer s.metrics.ClientDisconnected()

	if err := s.send(Frame{Root: s.dom.Body().ID(), Ops: s.rec.Drain()}); err != nil {
		return err
	}
	s.logger.Info("session started")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.readLoop(gctx) })
	g.Go(func() error { return s.pingLoop(gctx) })
	err := g.Wait()
	if errors.Is(err, errSessionClosed) {
		err = nil
	}
	return err
}

func (s *session) readLoop(ctx context.Context) error {
	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				s.logger.Warn("read error", "error", err)
			}
			return errSessionClosed
		}

		var ev ClientEvent
		if err := s.format.Unmarshal(msg, &ev); err != nil {
			s.logger.Warn("event decode error", "error", err)
			continue
		}
		if err := s.handleEvent(ctx, ev); err != nil {
			return err
		}
	}
}

func (s *session) pingLoop(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			deadline := time.Now().Add(s.cfg.WriteTimeout)
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
		case <-ctx.Done():
			// Unblocks the read loop.
			s.conn.Close()
			return ctx.Err()
		}
	}
}

// handleEvent dispatches ev on the live node and sends whatever the handlers
// wrote. Events for nodes that no longer exist are dropped.
func (s *session) handleEvent(ctx context.Context, ev ClientEvent) error {
	n, ok := s.dom.Lookup(ev.Node)
	if !ok {
		s.logger.Debug("event for unknown node", "node", ev.Node, "type", ev.Type)
		return nil
	}

	_, span := s.startEventSpan(ctx, ev)
	start := time.Now()
	ran := s.dom.Dispatch(n, ev.Type, ev.Value)
	s.metrics.ObserveEvent(time.Since(start))
	if ran == 0 {
		s.logger.Debug("event had no listeners", "node", ev.Node, "type", ev.Type)
	}

	ops := s.rec.Drain()
	var err error
	if len(ops) > 0 {
		err = s.send(Frame{Ops: ops})
	}
	endEventSpan(span, ran, len(ops), err)
	return err
}

func (s *session) send(f Frame) error {
	s.seq++
	f.Seq = s.seq
	data, err := s.format.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	s.metrics.RecordOps(f.Ops)
	s.metrics.RecordFrame(len(data))

	s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	if err := s.conn.WriteMessage(s.format.MessageType(), data); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

func (s *session) close() {
	if s.app.Mounted() {
		if err := s.app.Unmount(context.Background()); err != nil {
			s.logger.Error("unmount failed", "error", err)
		}
	}
	s.conn.Close()
	s.logger.Info("session closed", "frames", s.seq)
}
