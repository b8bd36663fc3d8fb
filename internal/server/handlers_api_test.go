package server

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"sketchboard/internal/config"
)

const testDrawing = "data:image/png;base64,AAA="

func TestCreateSketchRoundTrip(t *testing.T) {
	backends := map[string]func(t *testing.T) *Server{
		"memory": func(t *testing.T) *Server { return New(nil, config.Default()) },
		"sqlite": func(t *testing.T) *Server { return newSQLiteServer(t, config.Default()) },
	}
	for name, build := range backends {
		t.Run(name, func(t *testing.T) {
			ts := newTestServer(t, build(t).Handler())

			created := createSketch(t, ts, "Ann", testDrawing)
			if created.ID == 0 {
				t.Fatalf("expected assigned id")
			}
			if created.Name != "Ann" || created.Drawing != testDrawing {
				t.Fatalf("unexpected created sketch %#v", created)
			}

			resp := doRequest(t, ts, http.MethodGet, "/sketches", nil)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
			}
			list := decodeSketches(t, resp)
			if len(list) != 1 || list[0] != created {
				t.Fatalf("expected first listed sketch to equal created, got %#v", list)
			}
		})
	}
}

func TestCreateSketchResponseShape(t *testing.T) {
	ts := newTestServer(t, New(nil, config.Default()).Handler())

	resp := doRequest(t, ts, http.MethodPost, "/sketches", map[string]string{
		"name":    "Ann",
		"drawing": testDrawing,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if len(body) != 3 {
		t.Fatalf("expected id, name and drawing only, got %#v", body)
	}
	if _, ok := body["id"].(float64); !ok {
		t.Fatalf("expected numeric id, got %#v", body["id"])
	}
	if body["name"] != "Ann" || body["drawing"] != testDrawing {
		t.Fatalf("unexpected body %#v", body)
	}
}

func TestCreateSketchValidation(t *testing.T) {
	cases := map[string]string{
		"empty name":      `{"name":"","drawing":"data:image/png;base64,AAA="}`,
		"missing drawing": `{"name":"Ann"}`,
		"empty drawing":   `{"name":"Ann","drawing":""}`,
		"missing both":    `{}`,
		"wrong type":      `{"name":7,"drawing":"data:image/png;base64,AAA="}`,
		"malformed":       `{"name":`,
		"empty body":      ``,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			store := &recordingStore{inner: newMemoryStore(config.IDAuto)}
			ts := newTestServer(t, NewWithStore(store, config.Default()).Handler())

			resp := doRawRequest(t, ts, http.MethodPost, "/sketches", bytes.NewReader([]byte(payload)), true)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
			}
			body := decodeBody(t, resp)
			if body["error"] != "Name and drawing are required." {
				t.Fatalf("unexpected error %#v", body["error"])
			}
			if store.inserts != 0 {
				t.Fatalf("expected store not to be reached, got %d inserts", store.inserts)
			}
		})
	}
}

func TestCreateSketchKeepsWhitespaceName(t *testing.T) {
	ts := newTestServer(t, New(nil, config.Default()).Handler())

	created := createSketch(t, ts, "  Ann  ", testDrawing)
	if created.Name != "  Ann  " {
		t.Fatalf("expected name stored verbatim, got %q", created.Name)
	}
}

func TestListSketchesEmpty(t *testing.T) {
	ts := newTestServer(t, newSQLiteServer(t, config.Default()).Handler())

	resp := doRequest(t, ts, http.MethodGet, "/sketches", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if strings.TrimSpace(string(raw)) != "[]" {
		t.Fatalf("expected empty array, got %q", raw)
	}
}

func TestListSketchesNewestFirst(t *testing.T) {
	ts := newTestServer(t, newSQLiteServer(t, config.Default()).Handler())

	a := createSketch(t, ts, "A", "data:a")
	b := createSketch(t, ts, "B", "data:b")
	c := createSketch(t, ts, "C", "data:c")

	list := decodeSketches(t, doRequest(t, ts, http.MethodGet, "/sketches", nil))
	if len(list) != 3 {
		t.Fatalf("expected 3 sketches, got %d", len(list))
	}
	if list[0] != c || list[1] != b || list[2] != a {
		t.Fatalf("expected [C, B, A], got %#v", list)
	}
}

func TestAPIPrefixSharesStore(t *testing.T) {
	ts := newTestServer(t, New(nil, config.Default()).Handler())

	resp := doRequest(t, ts, http.MethodPost, "/api/sketches", map[string]string{
		"name":    "Ann",
		"drawing": testDrawing,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	created := decodeSketch(t, resp)

	list := decodeSketches(t, doRequest(t, ts, http.MethodGet, "/sketches", nil))
	if len(list) != 1 || list[0] != created {
		t.Fatalf("expected sketch from /api/sketches in /sketches, got %#v", list)
	}
	list = decodeSketches(t, doRequest(t, ts, http.MethodGet, "/api/sketches", nil))
	if len(list) != 1 || list[0] != created {
		t.Fatalf("expected sketch in /api/sketches, got %#v", list)
	}
}

func TestTimestampStrategyDerivesID(t *testing.T) {
	cfg := config.Default()
	cfg.IDStrategy = config.IDTimestamp
	srv := newSQLiteServer(t, cfg)
	clock := time.Date(2024, time.November, 5, 14, 30, 2, 0, time.UTC)
	srv.now = func() time.Time { return clock }
	ts := newTestServer(t, srv.Handler())

	first := createSketch(t, ts, "Ann", testDrawing)
	if first.ID != 5112024143002 {
		t.Fatalf("expected id 5112024143002, got %d", first.ID)
	}

	// A later second yields a smaller id; listing must still be newest first.
	clock = time.Date(2024, time.November, 6, 9, 0, 0, 0, time.UTC)
	second := createSketch(t, ts, "Bob", testDrawing)
	if second.ID != 6112024090000 {
		t.Fatalf("expected id 6112024090000, got %d", second.ID)
	}
	clock = time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)
	third := createSketch(t, ts, "Cy", testDrawing)

	list := decodeSketches(t, doRequest(t, ts, http.MethodGet, "/sketches", nil))
	if len(list) != 3 || list[0] != third || list[1] != second || list[2] != first {
		t.Fatalf("expected created-desc order, got %#v", list)
	}
}

func TestTimestampStrategyCollisionIsServerError(t *testing.T) {
	backends := map[string]func(t *testing.T, cfg config.Config) *Server{
		"memory": func(t *testing.T, cfg config.Config) *Server { return New(nil, cfg) },
		"sqlite": newSQLiteServer,
	}
	for name, build := range backends {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			cfg.IDStrategy = config.IDTimestamp
			srv := build(t, cfg)
			srv.now = func() time.Time {
				return time.Date(2024, time.November, 5, 14, 30, 2, 0, time.UTC)
			}
			ts := newTestServer(t, srv.Handler())

			createSketch(t, ts, "Ann", testDrawing)
			resp := doRequest(t, ts, http.MethodPost, "/sketches", map[string]string{
				"name":    "Bob",
				"drawing": testDrawing,
			})
			if resp.StatusCode != http.StatusInternalServerError {
				t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, resp.StatusCode)
			}
			body := decodeBody(t, resp)
			if body["error"] != msgSaveFailed {
				t.Fatalf("unexpected error %#v", body["error"])
			}

			list := decodeSketches(t, doRequest(t, ts, http.MethodGet, "/sketches", nil))
			if len(list) != 1 || list[0].Name != "Ann" {
				t.Fatalf("expected only the first sketch, got %#v", list)
			}
		})
	}
}

func TestExposedCollisionCarriesDriverMessage(t *testing.T) {
	cfg := config.Default()
	cfg.IDStrategy = config.IDTimestamp
	cfg.ExposeStorageErrors = true
	srv := newSQLiteServer(t, cfg)
	srv.now = func() time.Time {
		return time.Date(2024, time.November, 5, 14, 30, 2, 0, time.UTC)
	}
	ts := newTestServer(t, srv.Handler())

	createSketch(t, ts, "Ann", testDrawing)
	resp := doRequest(t, ts, http.MethodPost, "/sketches", map[string]string{
		"name":    "Bob",
		"drawing": testDrawing,
	})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, resp.StatusCode)
	}
	message, _ := decodeBody(t, resp)["error"].(string)
	if !strings.Contains(message, "UNIQUE constraint failed") {
		t.Fatalf("expected driver message, got %q", message)
	}
}

func TestStorageFailureHidesCause(t *testing.T) {
	ts := newTestServer(t, NewWithStore(failingStore{}, config.Default()).Handler())

	resp := doRequest(t, ts, http.MethodGet, "/sketches", nil)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["error"] != msgListFailed {
		t.Fatalf("unexpected error %#v", body["error"])
	}

	resp = doRequest(t, ts, http.MethodPost, "/sketches", map[string]string{
		"name":    "Ann",
		"drawing": testDrawing,
	})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["error"] != msgSaveFailed {
		t.Fatalf("unexpected error %#v", body["error"])
	}
}

func TestStorageFailureExposedWhenConfigured(t *testing.T) {
	cfg := config.Default()
	cfg.ExposeStorageErrors = true
	ts := newTestServer(t, NewWithStore(failingStore{}, cfg).Handler())

	resp := doRequest(t, ts, http.MethodPost, "/sketches", map[string]string{
		"name":    "Ann",
		"drawing": testDrawing,
	})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["error"] != errConnRefused.Error() {
		t.Fatalf("expected raw storage message, got %#v", body["error"])
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, newSQLiteServer(t, config.Default()).Handler())
	resp := doRequest(t, ts, http.MethodGet, "/healthz", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	failing := newTestServer(t, NewWithStore(failingStore{}, config.Default()).Handler())
	resp = doRequest(t, failing, http.MethodGet, "/healthz", nil)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, resp.StatusCode)
	}
}

func TestTimestampID(t *testing.T) {
	cases := []struct {
		at   time.Time
		want int64
	}{
		{time.Date(2024, time.November, 5, 14, 30, 2, 0, time.UTC), 5112024143002},
		{time.Date(2025, time.December, 31, 23, 59, 59, 999, time.UTC), 31122025235959},
		{time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), 1012026000000},
	}
	for _, tc := range cases {
		if got := TimestampID(tc.at); got != tc.want {
			t.Fatalf("TimestampID(%s) = %d, want %d", tc.at, got, tc.want)
		}
	}
	at := time.Date(2024, time.November, 5, 14, 30, 2, 0, time.UTC)
	if TimestampID(at) != TimestampID(at.Add(900*time.Millisecond)) {
		t.Fatalf("expected same id within one second")
	}
}
