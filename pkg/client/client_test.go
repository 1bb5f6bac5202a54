package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/strictenc/strictenc"
	"github.com/strictenc/strictenc/errs"
	"github.com/strictenc/strictenc/internal/api"
	"github.com/strictenc/strictenc/internal/config"
	"github.com/strictenc/strictenc/opcode"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := api.NewServer(strictenc.New(), config.DefaultConfig(), nil)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestClientEncode(t *testing.T) {
	ts := newTestServer(t)
	c := New(ts.URL)

	results, err := c.Encode(context.Background(), 100, "(n + 111) % 256;n ^ 217;~n & 255")
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := []int{211, 189, 155}
	if len(results) != len(want) {
		t.Fatalf("results = %v, want %v", results, want)
	}
	for i := range want {
		if results[i] != want[i] {
			t.Errorf("results[%d] = %d, want %d", i, results[i], want[i])
		}
	}
}

func TestClientEncodeErrors(t *testing.T) {
	ts := newTestServer(t)
	c := New(ts.URL)

	_, err := c.Encode(context.Background(), 5, "n & garbage")
	if err == nil {
		t.Fatal("expected error for unsupported instruction")
	}
	if !errors.Is(err, errs.ErrUnsupportedOperation) {
		t.Errorf("errors.Is(err, ErrUnsupportedOperation) = false, err = %v", err)
	}
	if !opcode.IsUnsupportedOperation(err) {
		t.Errorf("expected coded error to survive the wire, got %v", err)
	}
}

func TestClientEncodeBatch(t *testing.T) {
	ts := newTestServer(t)
	c := New(ts.URL)

	rows, err := c.EncodeBatch(context.Background(), []int64{0, 1, 255}, "(n + 1) % 256")
	if err != nil {
		t.Fatalf("EncodeBatch() error = %v", err)
	}
	want := []int{1, 2, 0}
	if len(rows) != len(want) {
		t.Fatalf("rows = %v", rows)
	}
	for i := range want {
		if len(rows[i]) != 1 || rows[i][0] != want[i] {
			t.Errorf("rows[%d] = %v, want [%d]", i, rows[i], want[i])
		}
	}
}

func TestClientEncodeTextAndBytes(t *testing.T) {
	ts := newTestServer(t)
	c := New(ts.URL)

	fromText, err := c.EncodeText(context.Background(), "Hi", "n ^ 217")
	if err != nil {
		t.Fatalf("EncodeText() error = %v", err)
	}
	fromBytes, err := c.EncodeBytes(context.Background(), []byte("Hi"), "n ^ 217")
	if err != nil {
		t.Fatalf("EncodeBytes() error = %v", err)
	}
	if len(fromText) != 2 || len(fromBytes) != 2 {
		t.Fatalf("expected one row per character: text %v bytes %v", fromText, fromBytes)
	}
	for i := range fromText {
		if fromText[i][0] != fromBytes[i][0] {
			t.Errorf("row %d: text %v != bytes %v", i, fromText[i], fromBytes[i])
		}
	}
}

func TestClientCacheAndStatus(t *testing.T) {
	ts := newTestServer(t)
	c := New(ts.URL)

	if _, err := c.Encode(context.Background(), 1, "n ^ 217"); err != nil {
		t.Fatal(err)
	}

	st, err := c.Status(context.Background())
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if st.Name != "strictenc" || st.Version == "" {
		t.Errorf("unexpected status: %+v", st)
	}
	if st.CacheEntries == 0 {
		t.Error("expected a populated cache after encoding")
	}

	if err := c.ClearCache(context.Background()); err != nil {
		t.Fatalf("ClearCache() error = %v", err)
	}
	st, err = c.Status(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if st.CacheEntries != 0 {
		t.Errorf("cache_entries = %d after clear, want 0", st.CacheEntries)
	}
}

func TestClientRetriesTransientFailures(t *testing.T) {
	inner := api.NewServer(strictenc.New(), config.DefaultConfig(), nil).Handler()

	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "transient", http.StatusInternalServerError)
			return
		}
		inner.ServeHTTP(w, r)
	}))
	defer ts.Close()

	c := NewWith(Config{BaseURL: ts.URL, Retries: 3, Timeout: 5 * time.Second})
	results, err := c.Encode(context.Background(), 100, "n ^ 217")
	if err != nil {
		t.Fatalf("Encode() after retry error = %v", err)
	}
	if len(results) != 1 || results[0] != 100^217 {
		t.Errorf("results = %v, want [%d]", results, 100^217)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	inner := api.NewServer(strictenc.New(), config.DefaultConfig(), nil).Handler()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		inner.ServeHTTP(w, r)
	}))
	defer ts.Close()

	c := New(ts.URL)
	if _, err := c.Encode(context.Background(), 5, "n & garbage"); err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1 (400s are terminal)", calls.Load())
	}
}
