package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/catalog"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/logger"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/resolver"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeResolver struct {
	snap      *store.Snapshot
	answer    resolver.Result
	answerErr error
	reloadErr error
	panicMsg  string
	got       resolver.Request
	reloads   int
}

func (f *fakeResolver) Answer(_ context.Context, req resolver.Request) (resolver.Result, error) {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	f.got = req
	return f.answer, f.answerErr
}

func (f *fakeResolver) Reload(context.Context) (*store.Snapshot, error) {
	f.reloads++
	if f.reloadErr != nil {
		return nil, f.reloadErr
	}
	return f.snap, nil
}

func (f *fakeResolver) Snapshot() *store.Snapshot { return f.snap }

func (f *fakeResolver) LastLoadError() error { return f.reloadErr }

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func loadedSnapshot() *store.Snapshot {
	p := catalog.NewProducts()
	p.Add("camshaft", 1700)
	s := catalog.NewServices()
	s.Add("cvt cleaning", "₱300")
	s.Add("change oil", "₱250")
	return &store.Snapshot{Version: 4, Products: p, Services: s, Raw: "x", LoadedAt: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)}
}

func newTestServer(t *testing.T, r *fakeResolver, ping Pinger, opts Options) http.Handler {
	t.Helper()
	return New(r, ping, opts, logger.NewTest(t)).Handler()
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestChat_OK(t *testing.T) {
	r := &fakeResolver{snap: loadedSnapshot(), answer: resolver.Result{Text: "The price of Camshaft is ₱1,700.", Intent: "price"}}
	h := newTestServer(t, r, fakePinger{}, Options{})

	w := do(h, http.MethodPost, "/api/chat", `{"message":"how much is camshaft"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "The price of Camshaft is ₱1,700.", decode(t, w)["response"])
	assert.Equal(t, "how much is camshaft", r.got.Message)
	assert.Equal(t, "http", r.got.Context["channel"])
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestChat_RequestIDIsEchoed(t *testing.T) {
	r := &fakeResolver{snap: loadedSnapshot(), answer: resolver.Result{Text: "hi"}}
	h := newTestServer(t, r, fakePinger{}, Options{})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
	assert.Equal(t, "abc-123", r.got.Context["request_id"])
}

func TestChat_BadRequests(t *testing.T) {
	r := &fakeResolver{snap: loadedSnapshot()}
	h := newTestServer(t, r, fakePinger{}, Options{AllowOrigin: "https://pomworkz.example"})

	for _, body := range []string{``, `not json`, `{}`, `{"msg":"hi"}`, `{"message":null}`} {
		w := do(h, http.MethodPost, "/api/chat", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, map[string]any{"error": MissingMessage}, decode(t, w), body)
		assert.Equal(t, "https://pomworkz.example", w.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestChat_ResolverFailureIs500WithApology(t *testing.T) {
	r := &fakeResolver{
		snap:      loadedSnapshot(),
		answer:    resolver.Result{Text: resolver.ApologyEN},
		answerErr: errors.New("dispatch: boom"),
	}
	h := newTestServer(t, r, fakePinger{}, Options{})

	w := do(h, http.MethodPost, "/api/chat", `{"message":"hello"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, map[string]any{"response": resolver.ApologyEN}, decode(t, w))
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestChat_PanicIsRecovered(t *testing.T) {
	r := &fakeResolver{snap: loadedSnapshot(), panicMsg: "nil map"}
	h := newTestServer(t, r, fakePinger{}, Options{})

	w := do(h, http.MethodPost, "/api/chat", `{"message":"hello"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, resolver.ApologyEN, decode(t, w)["response"])
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestPreflight(t *testing.T) {
	h := newTestServer(t, &fakeResolver{snap: loadedSnapshot()}, fakePinger{}, Options{})

	w := do(h, http.MethodOptions, "/api/chat", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestHealth_Statuses(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "catalog.txt")
	require.NoError(t, os.WriteFile(doc, []byte("Camshaft - ₱1700"), 0o644))

	empty := &store.Snapshot{Products: catalog.NewProducts(), Services: catalog.NewServices()}
	tests := []struct {
		name string
		snap *store.Snapshot
		ping error
		want string
	}{
		{"healthy", loadedSnapshot(), nil, StatusHealthy},
		{"llm down", loadedSnapshot(), errors.New("refused"), StatusDegraded},
		{"catalog empty", empty, nil, StatusDegraded},
		{"both down", empty, errors.New("refused"), StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, &fakeResolver{snap: tt.snap}, fakePinger{err: tt.ping}, Options{Model: "qwen2.5:0.5b", Document: doc})
			w := do(h, http.MethodGet, "/health", "")
			require.Equal(t, http.StatusOK, w.Code)
			body := decode(t, w)
			assert.Equal(t, tt.want, body["status"])
			assert.Equal(t, "qwen2.5:0.5b", body["model"])
			assert.Equal(t, true, body["document_exists"])
		})
	}
}

func TestHealth_Fields(t *testing.T) {
	h := newTestServer(t, &fakeResolver{snap: loadedSnapshot()}, fakePinger{}, Options{Document: "/nope.pdf"})
	body := decode(t, do(h, http.MethodGet, "/health", ""))

	assert.Equal(t, "connected", body["llm"])
	assert.Equal(t, false, body["document_exists"])
	assert.Equal(t, true, body["knowledge_loaded"])
	assert.EqualValues(t, 1, body["products"])
	assert.EqualValues(t, 2, body["services"])
	assert.EqualValues(t, 4, body["version"])
	assert.Equal(t, "2024-05-01T08:00:00Z", body["loaded_at"])
}

func TestHealth_NilPinger(t *testing.T) {
	h := newTestServer(t, &fakeResolver{snap: loadedSnapshot()}, nil, Options{})
	body := decode(t, do(h, http.MethodGet, "/health", ""))
	assert.Equal(t, StatusDegraded, body["status"])
	assert.Equal(t, "disconnected", body["llm"])
}

func TestReload(t *testing.T) {
	r := &fakeResolver{snap: loadedSnapshot()}
	h := newTestServer(t, r, fakePinger{}, Options{})

	w := do(h, http.MethodPost, "/api/reload", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","products":1,"services":2,"version":4}`, w.Body.String())
	assert.Equal(t, 1, r.reloads)

	r.reloadErr = errors.New("load documents: no text")
	w = do(h, http.MethodPost, "/api/reload", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "load documents: no text", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(t, &fakeResolver{snap: loadedSnapshot()}, fakePinger{}, Options{})
	w := do(h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestRunShutsDownOnCancel(t *testing.T) {
	s := New(&fakeResolver{snap: loadedSnapshot()}, fakePinger{}, Options{Addr: "127.0.0.1:0"}, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
