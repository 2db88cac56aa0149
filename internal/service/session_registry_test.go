package service

import (
	"testing"
	"time"

	"github.com/outlinedev/outline/internal/document"
)

func TestSessionRegistryExpireIdle(t *testing.T) {
	clock := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	reg := NewSessionRegistry(30 * time.Minute)
	reg.now = func() time.Time { return clock }

	reg.Put("d1", "u1", document.NewSession(nil))
	reg.Put("d2", "u1", document.NewSession(nil))

	clock = clock.Add(20 * time.Minute)
	if _, ok := reg.Get("d2"); !ok {
		t.Fatal("d2 should be live")
	}

	clock = clock.Add(15 * time.Minute)
	// d1 is 35 minutes idle, d2 only 15.
	expired := reg.ExpireIdle()
	if len(expired) != 1 || expired[0].DocID != "d1" || expired[0].UserID != "u1" {
		t.Fatalf("expected only d1 expired, got %+v", expired)
	}
	if reg.Len() != 1 {
		t.Fatalf("expected 1 live session, got %d", reg.Len())
	}
	if _, ok := reg.Get("d1"); ok {
		t.Fatal("expired session must be gone")
	}
}

func TestSessionRegistryGetRefreshesIdleClock(t *testing.T) {
	clock := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	reg := NewSessionRegistry(10 * time.Minute)
	reg.now = func() time.Time { return clock }

	reg.Put("d1", "u1", document.NewSession(nil))
	clock = clock.Add(9 * time.Minute)
	reg.Get("d1")
	clock = clock.Add(9 * time.Minute)
	if expired := reg.ExpireIdle(); len(expired) != 0 {
		t.Fatalf("access should have reset the idle clock, expired %+v", expired)
	}
}

func TestSessionRegistryZeroTTLNeverExpires(t *testing.T) {
	reg := NewSessionRegistry(0)
	reg.Put("d1", "u1", document.NewSession(nil))
	if expired := reg.ExpireIdle(); expired != nil {
		t.Fatalf("ttl 0 must disable expiry, got %+v", expired)
	}
	if reg.Len() != 1 {
		t.Fatal("session should survive")
	}
}

func TestSessionRegistryDrain(t *testing.T) {
	reg := NewSessionRegistry(time.Hour)
	reg.Put("d1", "u1", document.NewSession(nil))
	reg.Put("d2", "u2", document.NewSession(nil))
	drained := reg.Drain()
	if len(drained) != 2 {
		t.Fatalf("expected 2 drained sessions, got %d", len(drained))
	}
	if reg.Len() != 0 {
		t.Fatal("registry should be empty after drain")
	}
}
