package cache

import (
	"strings"
	"testing"
	"time"

	"textprep/internal/domain"
)

type countingEngine struct {
	calls int
}

func (e *countingEngine) Tokenize(text string) (domain.Text, error) {
	e.calls++
	return domain.PlainText(strings.Fields(text)...), nil
}

func (e *countingEngine) Name() string { return "counting" }

func TestRecordCache_PutGet(t *testing.T) {
	c := NewRecordCache(10, time.Minute)
	records := []domain.Record{domain.PlainRecord("a"), domain.PlainRecord("b")}

	c.Put("split", "a b", records)

	got, ok := c.Get("split", "a b")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != 2 || got[0].Surface() != "a" {
		t.Errorf("unexpected records: %v", got)
	}

	if _, ok := c.Get("word", "a b"); ok {
		t.Error("expected miss for a different engine")
	}

	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %d/%d", hits, misses)
	}
}

func TestRecordCache_Eviction(t *testing.T) {
	c := NewRecordCache(2, time.Minute)
	c.Put("e", "one", nil)
	c.Put("e", "two", nil)
	c.Get("e", "one")
	c.Put("e", "three", nil)

	if c.Size() != 2 {
		t.Fatalf("expected size 2, got %d", c.Size())
	}
	if _, ok := c.Get("e", "two"); ok {
		t.Error("expected least recently used entry to be evicted")
	}
	if _, ok := c.Get("e", "one"); !ok {
		t.Error("expected recently used entry to survive")
	}
}

func TestRecordCache_TTL(t *testing.T) {
	c := NewRecordCache(10, time.Millisecond)
	c.Put("e", "x", nil)
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("e", "x"); ok {
		t.Error("expected expired entry to miss")
	}
	if c.Size() != 0 {
		t.Errorf("expected expired entry to be removed, size %d", c.Size())
	}
}

func TestRecordCache_Invalidate(t *testing.T) {
	c := NewRecordCache(10, time.Minute)
	c.Put("e", "x", nil)
	c.Invalidate()
	if c.Size() != 0 {
		t.Errorf("expected empty cache, got %d", c.Size())
	}
}

func TestCachedEngine_FreshTokensOnHit(t *testing.T) {
	inner := &countingEngine{}
	engine := NewCachedEngine(inner, NewRecordCache(10, time.Minute))

	first, err := engine.Tokenize("Hello World")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first[0].SetSurface("hello")

	second, err := engine.Tokenize("Hello World")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inner.calls != 1 {
		t.Errorf("expected inner engine to run once, ran %d times", inner.calls)
	}
	if second[0].Surface() != "Hello" {
		t.Errorf("expected override not to leak into cached tokens, got %q", second[0].Surface())
	}
	if first[0] == second[0] {
		t.Error("expected distinct token instances on hit")
	}
	if engine.Name() != "counting" {
		t.Errorf("expected inner engine name, got %q", engine.Name())
	}
}
