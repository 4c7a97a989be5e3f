package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/polymer/pkg/cache"
	"github.com/matzehuels/polymer/pkg/observability"
	"github.com/matzehuels/polymer/pkg/pipeline"
)

func newTestServer(t *testing.T, c cache.Cache) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := New(pipeline.NewRunner(c, nil, logger), logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func TestRoutes(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		path        string
		status      int
		contentType string
		contains    string
	}{
		{"/", http.StatusOK, "text/html; charset=utf-8", "Polymer chain"},
		{"/healthz", http.StatusOK, "application/json", `"status":"ok"`},
		{"/api/chain?units=3&angle=90", http.StatusOK, "text/plain; charset=utf-8", "C 1.000000 1.000000 2.000000"},
		{"/api/chain.json?units=2", http.StatusOK, "application/json", `"points"`},
		{"/api/chain.msgpack?units=2", http.StatusOK, "application/msgpack", "points"},
		{"/api/render.svg?units=4&rigidity=2&seed=7", http.StatusOK, "image/svg+xml", "<svg"},
		{"/api/render.png?units=4&width=120&height=90", http.StatusOK, "image/png", "PNG"},
		{"/api/chain?units=0", http.StatusBadRequest, "application/json", "INVALID_ARGUMENT"},
		{"/api/chain?units=abc", http.StatusBadRequest, "application/json", "units must be an integer"},
		{"/api/chain?angle=200", http.StatusBadRequest, "application/json", "INVALID_ARGUMENT"},
		{"/api/chain?rigidity=11", http.StatusBadRequest, "application/json", "INVALID_ARGUMENT"},
		{"/api/chain?seed=-1", http.StatusBadRequest, "application/json", "seed"},
		{"/api/chain?angle=NaN", http.StatusBadRequest, "application/json", "NUMERIC_DOMAIN"},
		{"/api/render.svg?style=neon", http.StatusBadRequest, "application/json", "INVALID_STYLE"},
		{"/api/chain?label=a%20b", http.StatusBadRequest, "application/json", "label"},
		{"/nope", http.StatusNotFound, "application/json", "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, ts, tt.path)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d (body %s)", resp.StatusCode, tt.status, body)
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			if !strings.Contains(body, tt.contains) {
				t.Errorf("body does not contain %q:\n%s", tt.contains, body)
			}
		})
	}
}

func TestChainXYZ(t *testing.T) {
	ts := newTestServer(t, nil)
	_, body := get(t, ts, "/api/chain?units=3&angle=90&comment=hello&label=O")

	want := "3\nhello\n" +
		"O 0.000000 0.000000 0.000000\n" +
		"O 1.000000 0.000000 1.000000\n" +
		"O 1.000000 1.000000 2.000000\n"
	if diff := cmp.Diff(want, body); diff != "" {
		t.Errorf("xyz mismatch (-want +got):\n%s", diff)
	}
}

func TestDownload(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, body := get(t, ts, "/api/download?units=2")

	if got := resp.Header.Get("Content-Disposition"); got != `attachment; filename="polymer.xyz"` {
		t.Errorf("Content-Disposition = %q", got)
	}
	if !strings.HasPrefix(body, "2\n") {
		t.Errorf("body = %q", body)
	}
}

func TestErrorBody(t *testing.T) {
	ts := newTestServer(t, nil)
	_, body := get(t, ts, "/api/chain?units=0")

	var got errorBody
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatal(err)
	}
	want := errorBody{Code: "INVALID_ARGUMENT", Error: "unit count must be at least 1, got 0"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("error body mismatch (-want +got):\n%s", diff)
	}
}

func TestRequestID(t *testing.T) {
	ts := newTestServer(t, nil)

	t.Run("assigned", func(t *testing.T) {
		resp, _ := get(t, ts, "/healthz")
		if _, err := uuid.Parse(resp.Header.Get(HeaderRequestID)); err != nil {
			t.Errorf("X-Request-ID = %q is not a uuid", resp.Header.Get(HeaderRequestID))
		}
	})

	t.Run("preserved", func(t *testing.T) {
		id := uuid.NewString()
		req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
		req.Header.Set(HeaderRequestID, id)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if got := resp.Header.Get(HeaderRequestID); got != id {
			t.Errorf("X-Request-ID = %q, want %q", got, id)
		}
	})

	t.Run("replaced when malformed", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
		req.Header.Set(HeaderRequestID, "not-an-id")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if got := resp.Header.Get(HeaderRequestID); got == "not-an-id" || got == "" {
			t.Errorf("X-Request-ID = %q", got)
		}
	})
}

type requestRecorder chan observability.RequestEvent

func (r requestRecorder) OnRequest(_ context.Context, ev observability.RequestEvent) {
	r <- ev
}

func TestHTTPHooks(t *testing.T) {
	rec := make(requestRecorder, 1)
	observability.SetHTTPHooks(rec)
	t.Cleanup(observability.Reset)

	ts := newTestServer(t, nil)
	resp, _ := get(t, ts, "/api/chain?units=0")

	select {
	case ev := <-rec:
		if ev.Method != http.MethodGet || ev.Path != "/api/chain" || ev.Status != http.StatusBadRequest {
			t.Errorf("event = %+v", ev)
		}
		if ev.ID != resp.Header.Get(HeaderRequestID) {
			t.Errorf("event id = %q, header %q", ev.ID, resp.Header.Get(HeaderRequestID))
		}
	case <-time.After(time.Second):
		t.Fatal("no request event")
	}
}

func TestRenderCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ts := newTestServer(t, fc)

	first, a := get(t, ts, "/api/render.svg?units=6&angle=100")
	second, b := get(t, ts, "/api/render.svg?units=6&angle=100")

	if got := first.Header.Get("X-Cache"); got != "MISS" {
		t.Errorf("first X-Cache = %q, want MISS", got)
	}
	if got := second.Header.Get("X-Cache"); got != "HIT" {
		t.Errorf("second X-Cache = %q, want HIT", got)
	}
	if a != b {
		t.Error("cached picture differs from rendered one")
	}

	random, _ := get(t, ts, "/api/render.svg?units=6&angle=100&rigidity=3")
	if got := random.Header.Get("X-Cache"); got != "" {
		t.Errorf("unseeded random request X-Cache = %q, want none", got)
	}
}

func TestServerDefaults(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := New(pipeline.NewRunner(nil, nil, logger), logger,
		WithDefaults(pipeline.Options{Units: 2, Angle: 90, Label: "N"}))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	_, body := get(t, ts, "/api/chain")
	want := "2\nGenerated polymer chain\nN 0.000000 0.000000 0.000000\nN 1.000000 0.000000 1.000000\n"
	if body != want {
		t.Errorf("body = %q, want %q", body, want)
	}
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	u, _ := url.Parse(ts.URL)
	u.Scheme = "ws"
	u.Path = "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWebsocket(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := dialWS(t, ts)
	_ = conn.SetReadDeadline(time.Now().Add(10 * time.Second))

	if err := conn.WriteJSON(map[string]any{"units": 3, "angle": 90, "rigidity": 0}); err != nil {
		t.Fatal(err)
	}
	var resp wsResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error != "" {
		t.Fatalf("unexpected error %s: %s", resp.Code, resp.Error)
	}
	if _, err := uuid.Parse(resp.ID); err != nil {
		t.Errorf("id %q is not a uuid", resp.ID)
	}
	if resp.Count != 3 {
		t.Errorf("count = %d, want 3", resp.Count)
	}
	if !strings.HasSuffix(resp.XYZ, "C 1.000000 1.000000 2.000000\n") {
		t.Errorf("xyz = %q", resp.XYZ)
	}

	// The connection stays usable after a rejected request.
	if err := conn.WriteJSON(map[string]any{"units": 0}); err != nil {
		t.Fatal(err)
	}
	resp = wsResponse{}
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Code != "INVALID_ARGUMENT" {
		t.Errorf("code = %q, want INVALID_ARGUMENT", resp.Code)
	}

	if err := conn.WriteJSON(map[string]any{"units": 4, "rigidity": 5, "seed": 11}); err != nil {
		t.Fatal(err)
	}
	var seeded wsResponse
	if err := conn.ReadJSON(&seeded); err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(map[string]any{"units": 4, "rigidity": 5, "seed": 11}); err != nil {
		t.Fatal(err)
	}
	var again wsResponse
	if err := conn.ReadJSON(&again); err != nil {
		t.Fatal(err)
	}
	if seeded.XYZ != again.XYZ {
		t.Error("seeded requests produced different chains")
	}
	if seeded.ID == again.ID {
		t.Error("responses share an id")
	}
}

func TestServeShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := New(pipeline.NewRunner(nil, nil, logger), logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
