package translator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestHTTPTranslator_Translate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/translate" {
			t.Errorf("path = %q, want /api/v1/translate", r.URL.Path)
		}

		var req translateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.TargetLanguage != "spanish" {
			t.Errorf("target_language = %q, want spanish", req.TargetLanguage)
		}

		json.NewEncoder(w).Encode(translateResponse{
			TranslatedText: "Tome ___DOSAGE_0___ con agua.",
		})
	}))
	defer srv.Close()

	tr := NewHTTPTranslator(srv.URL)
	out, err := tr.Translate(context.Background(), "Take ___DOSAGE_0___ with water.", "english", "spanish")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if out != "Tome ___DOSAGE_0___ con agua." {
		t.Errorf("Translate() = %q", out)
	}
}

func TestHTTPTranslator_ServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	tr := NewHTTPTranslator(srv.URL)
	_, err := tr.Translate(context.Background(), "text", "english", "spanish")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Translate() error = %v, want ErrUnavailable", err)
	}
}

func TestHTTPTranslator_ConnectionRefusedIsUnavailable(t *testing.T) {
	tr := NewHTTPTranslator("http://127.0.0.1:1")
	_, err := tr.Translate(context.Background(), "text", "english", "spanish")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Translate() error = %v, want ErrUnavailable", err)
	}
}

func TestGuarded_EnforcesConcurrencyBound(t *testing.T) {
	var current, peak atomic.Int64

	inner := Func(func(ctx context.Context, text, s, tgt string) (string, error) {
		n := current.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		current.Add(-1)
		return text, nil
	})

	g := NewGuarded(inner, 2, time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := g.Translate(context.Background(), "t", "english", "spanish"); err != nil {
				t.Errorf("Translate() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if p := peak.Load(); p > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", p)
	}
}

func TestGuarded_TimeoutIsUnavailable(t *testing.T) {
	inner := Func(func(ctx context.Context, text, s, tgt string) (string, error) {
		select {
		case <-time.After(time.Second):
			return text, nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	})

	g := NewGuarded(inner, 1, 20*time.Millisecond)
	_, err := g.Translate(context.Background(), "t", "english", "spanish")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Translate() error = %v, want ErrUnavailable", err)
	}
}

// mapStore is an in-memory Store for tests.
type mapStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMapStore() *mapStore {
	return &mapStore{data: make(map[string]string)}
}

func (s *mapStore) Get(ctx context.Context, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *mapStore) Set(ctx context.Context, key, value string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

func TestCached_ServesSecondCallFromCache(t *testing.T) {
	var calls atomic.Int64
	inner := Func(func(ctx context.Context, text, s, tgt string) (string, error) {
		calls.Add(1)
		return "translated: " + text, nil
	})

	c := NewCached(inner, newMapStore(), time.Hour, nil)
	ctx := context.Background()

	first, err := c.Translate(ctx, "drink water", "english", "spanish")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	second, err := c.Translate(ctx, "drink water", "english", "spanish")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}

	if first != second {
		t.Errorf("cached result %q differs from original %q", second, first)
	}
	if calls.Load() != 1 {
		t.Errorf("inner translator called %d times, want 1", calls.Load())
	}
}

func TestCached_DistinguishesTargetLanguages(t *testing.T) {
	inner := Func(func(ctx context.Context, text, s, tgt string) (string, error) {
		return tgt + ": " + text, nil
	})

	c := NewCached(inner, newMapStore(), time.Hour, nil)
	ctx := context.Background()

	es, _ := c.Translate(ctx, "rest today", "english", "spanish")
	zh, _ := c.Translate(ctx, "rest today", "english", "mandarin")
	if es == zh {
		t.Error("different target languages returned the same cached value")
	}
}

func TestCached_DoesNotCacheFailures(t *testing.T) {
	var calls atomic.Int64
	inner := Func(func(ctx context.Context, text, s, tgt string) (string, error) {
		if calls.Add(1) == 1 {
			return "", ErrUnavailable
		}
		return "ok", nil
	})

	c := NewCached(inner, newMapStore(), time.Hour, nil)
	ctx := context.Background()

	if _, err := c.Translate(ctx, "text", "english", "spanish"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("first call error = %v, want ErrUnavailable", err)
	}
	out, err := c.Translate(ctx, "text", "english", "spanish")
	if err != nil || out != "ok" {
		t.Errorf("second call = %q, %v; want ok, nil", out, err)
	}
}
