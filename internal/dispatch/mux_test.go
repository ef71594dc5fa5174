package dispatch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	"nailbook/pkg/config"
	nethttp "nailbook/pkg/http"
	"nailbook/pkg/lock"
	"nailbook/pkg/logger"
)

func testMux() *Mux {
	cfg := &config.Config{
		Log:      logger.Discard(),
		LockWait: 50 * time.Millisecond,
	}
	return NewMux(cfg, lock.New())
}

func serve(m *Mux, r *http.Request) *httptest.ResponseRecorder {
	router := httprouter.New()
	m.RegisterRoutes(router)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid response JSON: %v (%s)", err, w.Body.String())
	}
	return out
}

func TestUnknownActionReturnsErrorEnvelope(t *testing.T) {
	m := testMux()

	w := serve(m, httptest.NewRequest(http.MethodGet, "/?action=teleport", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	body := decode(t, w)
	if body["status"] != "error" {
		t.Errorf("expected error envelope, got %v", body)
	}
	if !strings.Contains(body["message"].(string), "teleport") {
		t.Errorf("expected action name in message, got %v", body["message"])
	}
}

func TestMissingAction(t *testing.T) {
	m := testMux()

	w := serve(m, httptest.NewRequest(http.MethodGet, "/", nil))
	body := decode(t, w)
	if body["status"] != "error" || body["message"] != "Missing: action" {
		t.Errorf("unexpected envelope %v", body)
	}
}

func TestActionFromQueryAndBody(t *testing.T) {
	m := testMux()
	var got Payload
	m.Register("echo", false, func(ctx context.Context, p Payload) (nethttp.Envelope, error) {
		got = p
		return nethttp.Success(map[string]any{"echo": p.Get("name")}), nil
	})

	// Query-string form.
	w := serve(m, httptest.NewRequest(http.MethodGet, "/?action=echo&name=Mali", nil))
	if body := decode(t, w); body["echo"] != "Mali" {
		t.Errorf("expected query field, got %v", body)
	}

	// JSON body form with mixed value types.
	req := httptest.NewRequest(http.MethodPost, "/api",
		strings.NewReader(`{"action":"echo","name":"Nok","rating":5,"open":true,"meta":{"a":1}}`))
	w = serve(m, req)
	if body := decode(t, w); body["echo"] != "Nok" {
		t.Errorf("expected body field, got %v", body)
	}
	if got.Int("rating", 0) != 5 {
		t.Errorf("expected numeric coercion, got %q", got.Get("rating"))
	}
	if !got.Bool("open") {
		t.Errorf("expected bool coercion, got %q", got.Get("open"))
	}
	if got.Get("meta") != `{"a":1}` {
		t.Errorf("expected nested object kept as JSON, got %q", got.Get("meta"))
	}
}

func TestMutatingActionHeldLockReturnsBusy(t *testing.T) {
	m := testMux()
	m.Register("mutate", true, func(ctx context.Context, p Payload) (nethttp.Envelope, error) {
		return nethttp.Success(nil), nil
	})

	// Hold the lock so the action times out.
	if err := m.lock.Acquire(context.Background(), time.Second); err != nil {
		t.Fatalf("setup acquire failed: %v", err)
	}
	defer m.lock.Release()

	w := serve(m, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"action":"mutate"}`)))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
	if body := decode(t, w); body["status"] != "error" {
		t.Errorf("expected error envelope, got %v", body)
	}
}

func TestReadActionIgnoresHeldLock(t *testing.T) {
	m := testMux()
	m.Register("read", false, func(ctx context.Context, p Payload) (nethttp.Envelope, error) {
		return nethttp.Success(map[string]any{"ok": true}), nil
	})

	if err := m.lock.Acquire(context.Background(), time.Second); err != nil {
		t.Fatalf("setup acquire failed: %v", err)
	}
	defer m.lock.Release()

	w := serve(m, httptest.NewRequest(http.MethodGet, "/?action=read", nil))
	if w.Code != http.StatusOK {
		t.Errorf("reads must not take the lock, got %d", w.Code)
	}
}

func TestLockReleasedAfterMutatingAction(t *testing.T) {
	m := testMux()
	m.Register("mutate", true, func(ctx context.Context, p Payload) (nethttp.Envelope, error) {
		return nethttp.Success(nil), nil
	})

	for i := 0; i < 3; i++ {
		w := serve(m, httptest.NewRequest(http.MethodGet, "/?action=mutate", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("iteration %d: lock was not released, got %d", i, w.Code)
		}
	}
}

func TestNotFoundEnvelopeMapsTo404(t *testing.T) {
	m := testMux()
	m.Register("lookup", false, func(ctx context.Context, p Payload) (nethttp.Envelope, error) {
		return nethttp.NotFound(), nil
	})

	w := serve(m, httptest.NewRequest(http.MethodGet, "/?action=lookup", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if body := decode(t, w); body["status"] != "not_found" {
		t.Errorf("expected not_found envelope, got %v", body)
	}
}

func TestMalformedBody(t *testing.T) {
	m := testMux()

	w := serve(m, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{broken")))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
