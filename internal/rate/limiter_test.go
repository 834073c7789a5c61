package rate

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestLimiter() (*MemoryLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := NewMemory()
	m.now = clock.Now
	return m, clock
}

func TestAllowUpToLimit(t *testing.T) {
	m, _ := newTestLimiter()
	for i := 0; i < 3; i++ {
		if ok, _ := m.Allow("login:ip:1.2.3.4", 3, time.Minute); !ok {
			t.Fatalf("hit %d rejected", i)
		}
	}
	ok, retry := m.Allow("login:ip:1.2.3.4", 3, time.Minute)
	if ok {
		t.Fatalf("expected fourth hit to be rejected")
	}
	if retry != time.Minute {
		t.Fatalf("expected retry of a minute, got %s", retry)
	}
	if ok, _ := m.Allow("login:ip:5.6.7.8", 3, time.Minute); !ok {
		t.Fatalf("other key must have its own bucket")
	}
}

func TestWindowResets(t *testing.T) {
	m, clock := newTestLimiter()
	if ok, _ := m.Allow("write:ip:a", 1, time.Minute); !ok {
		t.Fatalf("first hit rejected")
	}
	if ok, _ := m.Allow("write:ip:a", 1, time.Minute); ok {
		t.Fatalf("second hit allowed")
	}
	clock.t = clock.t.Add(time.Minute)
	if ok, _ := m.Allow("write:ip:a", 1, time.Minute); !ok {
		t.Fatalf("hit after the window rejected")
	}
}

func TestPrune(t *testing.T) {
	m, clock := newTestLimiter()
	m.Allow("a", 1, time.Minute)
	m.Allow("b", 1, time.Hour)

	clock.t = clock.t.Add(2 * time.Minute)
	if n := m.Prune(); n != 1 {
		t.Fatalf("expected 1 pruned bucket, got %d", n)
	}
	if _, ok := m.buckets["b"]; !ok {
		t.Fatalf("live bucket pruned")
	}
}
