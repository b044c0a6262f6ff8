package preview

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/krow/pkg/surface"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, cfg *Config) (*Server, *httptest.Server) {
	t.Helper()
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.Logger = quietLogger()
	s := New(cfg)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		_ = s.Shutdown(context.Background())
		ts.Close()
	})
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial(%s) error = %v", path, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn, f Format) Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	mt, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
	if mt != f.MessageType() {
		t.Fatalf("message type = %d, want %d", mt, f.MessageType())
	}
	var frame Frame
	if err := f.Unmarshal(data, &frame); err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	return frame
}

func sendEvent(t *testing.T, conn *websocket.Conn, f Format, ev ClientEvent) {
	t.Helper()
	data, err := f.Marshal(ev)
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteMessage(f.MessageType(), data); err != nil {
		t.Fatalf("WriteMessage() error = %v", err)
	}
}

// nodeOf returns the id of the first node created with the given kind and
// value.
func nodeOf(t *testing.T, ops []surface.Op, kind surface.OpKind, value string) uint64 {
	t.Helper()
	for _, op := range ops {
		if op.Kind == kind && op.Value == value {
			return op.Node
		}
	}
	t.Fatalf("no %s op with value %q", kind, value)
	return 0
}

func TestCounterSessionMsgpack(t *testing.T) {
	_, ts := newTestServer(t, nil)
	conn := dial(t, ts, "/demos/counter/ws")

	first := readFrame(t, conn, FormatMsgpack)
	if first.Seq != 1 || first.Root == 0 {
		t.Fatalf("first frame seq=%d root=%d", first.Seq, first.Root)
	}
	btn := nodeOf(t, first.Ops, surface.OpCreateElement, "button")
	text := nodeOf(t, first.Ops, surface.OpCreateText, "Count: 0")

	sendEvent(t, conn, FormatMsgpack, ClientEvent{Node: btn, Type: "click"})

	next := readFrame(t, conn, FormatMsgpack)
	if next.Seq != 2 {
		t.Errorf("seq = %d, want 2", next.Seq)
	}
	want := []surface.Op{{Kind: surface.OpSetText, Node: text, Value: "Count: 1"}}
	if diff := cmp.Diff(want, next.Ops); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchSessionJSON(t *testing.T) {
	_, ts := newTestServer(t, nil)
	conn := dial(t, ts, "/demos/search/ws?format=json")

	first := readFrame(t, conn, FormatJSON)
	input := nodeOf(t, first.Ops, surface.OpCreateElement, "input")

	sendEvent(t, conn, FormatJSON, ClientEvent{Node: input, Type: "input", Value: "go"})

	next := readFrame(t, conn, FormatJSON)
	nodeOf(t, next.Ops, surface.OpCreateElement, "p")
	nodeOf(t, next.Ops, surface.OpCreateText, `Searching for "go"`)
}

func TestPrettyDefaultsToJSON(t *testing.T) {
	_, ts := newTestServer(t, &Config{Pretty: true})
	conn := dial(t, ts, "/demos/counter/ws")
	readFrame(t, conn, FormatJSON)
}

func TestUnknownNodeIsIgnored(t *testing.T) {
	_, ts := newTestServer(t, nil)
	conn := dial(t, ts, "/demos/counter/ws")

	first := readFrame(t, conn, FormatMsgpack)
	btn := nodeOf(t, first.Ops, surface.OpCreateElement, "button")

	sendEvent(t, conn, FormatMsgpack, ClientEvent{Node: 1 << 60, Type: "click"})
	conn.WriteMessage(websocket.BinaryMessage, []byte{0xc1})
	sendEvent(t, conn, FormatMsgpack, ClientEvent{Node: btn, Type: "click"})

	if next := readFrame(t, conn, FormatMsgpack); next.Seq != 2 {
		t.Errorf("seq = %d, want 2", next.Seq)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	_, ts := newTestServer(t, &Config{Namespace: "test"})
	conn := dial(t, ts, "/demos/counter/ws")
	readFrame(t, conn, FormatMsgpack)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	for _, want := range []string{
		"test_preview_clients 1",
		"test_frames_sent_total 1",
		`test_mounts_total{kind="Element"}`,
		`test_surface_writes_total{op="insert"}`,
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics lack %q", want)
		}
	}
}

func TestRoutes(t *testing.T) {
	s, _ := newTestServer(t, nil)

	tests := []struct {
		name   string
		path   string
		header map[string]string
		status int
		want   string
	}{
		{name: "root redirects", path: "/", status: http.StatusFound},
		{name: "health", path: "/healthz", status: http.StatusOK, want: "ok"},
		{name: "demo list", path: "/demos", status: http.StatusOK, want: `"name":"counter"`},
		{name: "page", path: "/demos/counter", status: http.StatusOK, want: `data-ws="/demos/counter/ws"`},
		{name: "page snapshot", path: "/demos/counter", status: http.StatusOK, want: "<p>Count: 0</p>"},
		{name: "snapshot", path: "/demos/list/snapshot", status: http.StatusOK, want: "<li>foo</li>"},
		{name: "unknown demo", path: "/demos/nope", status: http.StatusNotFound},
		{name: "bad format", path: "/demos/counter/ws?format=xml", status: http.StatusBadRequest},
		{name: "client", path: "/client.js", status: http.StatusOK, want: "WebSocket"},
		{name: "client cached", path: "/client.js", header: map[string]string{"If-None-Match": clientETag}, status: http.StatusNotModified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.want != "" && !strings.Contains(rec.Body.String(), tt.want) {
				t.Errorf("body lacks %q:\n%s", tt.want, rec.Body.String())
			}
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if loc := rec.Header().Get("Location"); loc != "/demos/todos" {
		t.Errorf("Location = %q", loc)
	}
}

func TestDisableMetrics(t *testing.T) {
	s, _ := newTestServer(t, &Config{DisableMetrics: true})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"json", FormatJSON, false},
		{"msgpack", FormatMsgpack, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in, FormatJSON)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	s := New(&Config{Logger: quietLogger(), ShutdownTimeout: 5 * time.Second})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(ctx, ln) }()

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/demos/counter/ws", nil)
	if err != nil {
		cancel()
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()
	readFrame(t, conn, FormatMsgpack)

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not return")
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("session still open after shutdown")
	} else {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			t.Error("session was not closed by shutdown")
		}
	}
}

// recordingTracer remembers the names of started spans.
type recordingTracer struct {
	noop.Tracer

	mu    sync.Mutex
	names []string
}

func (r *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	r.mu.Lock()
	r.names = append(r.names, name)
	r.mu.Unlock()
	return r.Tracer.Start(ctx, name, opts...)
}

func (r *recordingTracer) started() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.names...)
}

func TestEventSpans(t *testing.T) {
	tracer := &recordingTracer{}
	_, ts := newTestServer(t, &Config{Tracer: tracer})
	conn := dial(t, ts, "/demos/counter/ws")

	first := readFrame(t, conn, FormatMsgpack)
	btn := nodeOf(t, first.Ops, surface.OpCreateElement, "button")

	sendEvent(t, conn, FormatMsgpack, ClientEvent{Node: 1 << 62, Type: "click"})
	sendEvent(t, conn, FormatMsgpack, ClientEvent{Node: btn, Type: "click"})
	readFrame(t, conn, FormatMsgpack)

	if diff := cmp.Diff([]string{"krow.click"}, tracer.started()); diff != "" {
		t.Errorf("spans mismatch (-want +got):\n%s", diff)
	}
}
