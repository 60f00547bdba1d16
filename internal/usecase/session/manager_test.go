package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kailas-cloud/radar/internal/domain"
	"github.com/kailas-cloud/radar/internal/domain/catalog"
	"github.com/kailas-cloud/radar/internal/domain/geo"
)

func newTestManager(obs Observer) *Manager {
	return NewManager(Deps{
		Catalog:  catalog.Default(),
		Observer: obs,
		Ticker:   silentTicker,
	})
}

func TestManager_CreateGetDelete(t *testing.T) {
	obs := newMockObserver()
	m := newTestManager(obs)
	ctx := context.Background()

	a, err := m.Create(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := m.Create(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID() == b.ID() {
		t.Fatal("session IDs must be unique")
	}
	if a.PlayerID() != "alice" {
		t.Fatalf("expected player alice, got %s", a.PlayerID())
	}
	if m.Len() != 2 || obs.active != 2 {
		t.Fatalf("expected 2 sessions, got %d (gauge %d)", m.Len(), obs.active)
	}

	got, err := m.Get(a.ID())
	if err != nil || got != a {
		t.Fatalf("expected session %s, got %v %v", a.ID(), got, err)
	}

	if err := m.Delete(a.ID()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Get(a.ID()); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := m.Delete(a.ID()); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound on second delete, got %v", err)
	}
	if m.Len() != 1 || obs.active != 1 {
		t.Fatalf("expected 1 session, got %d (gauge %d)", m.Len(), obs.active)
	}
}

func TestManager_DeleteResetsSession(t *testing.T) {
	m := newTestManager(nil)
	ctx := context.Background()

	c, err := m.Create(ctx, "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.HandleFix(ctx, geo.Fix{Coordinate: origin}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Delete(c.ID()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Snapshot().Ready || c.Pulsing() {
		t.Fatal("deleted session must be reset")
	}
}

func TestManager_IDCollision(t *testing.T) {
	m := newTestManager(nil)
	m.newID = func() string { return "fixed" }

	if _, err := m.Create(context.Background(), "p"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Create(context.Background(), "p"); err == nil {
		t.Fatal("expected collision error")
	}
	if m.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", m.Len())
	}
}

func TestManager_IDsAndClose(t *testing.T) {
	obs := newMockObserver()
	m := newTestManager(obs)
	n := 0
	m.newID = func() string {
		n++
		return fmt.Sprintf("s-%d", n)
	}

	for i := 0; i < 3; i++ {
		if _, err := m.Create(context.Background(), "p"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	ids := m.IDs()
	if len(ids) != 3 || ids[0] != "s-1" || ids[2] != "s-3" {
		t.Fatalf("unexpected ids %v", ids)
	}

	m.Close()
	if m.Len() != 0 || obs.active != 0 {
		t.Fatalf("expected no sessions after close, got %d", m.Len())
	}
}

// fakeClock is a settable time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func TestManager_SweepEvictsIdleSessions(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	obs := newMockObserver()
	m := NewManager(Deps{
		Catalog:  catalog.Default(),
		Observer: obs,
		Ticker:   silentTicker,
		Now:      clock.Now,
	}).WithIdleTTL(10 * time.Minute)

	var evicted []string
	m.OnEvict(func(id string) { evicted = append(evicted, id) })
	ctx := context.Background()

	idle, err := m.Create(ctx, "idle")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	active, err := m.Create(ctx, "active")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range []*Controller{idle, active} {
		if _, err := c.HandleFix(ctx, east(10)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if !idle.Pulsing() {
		t.Fatal("expected pulses while approaching")
	}

	clock.Advance(6 * time.Minute)
	if _, err := active.HandleFix(ctx, east(11)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := m.Sweep(clock.Now()); n != 0 {
		t.Fatalf("nothing is idle yet, evicted %d", n)
	}

	clock.Advance(5 * time.Minute)
	if n := m.Sweep(clock.Now()); n != 1 {
		t.Fatalf("expected 1 eviction, got %d", n)
	}
	if _, err := m.Get(idle.ID()); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected idle session removed, got %v", err)
	}
	if _, err := m.Get(active.ID()); err != nil {
		t.Fatalf("active session must survive: %v", err)
	}
	if idle.Pulsing() || idle.Snapshot().Ready {
		t.Fatal("evicted session must be reset")
	}
	if len(evicted) != 1 || evicted[0] != idle.ID() {
		t.Fatalf("expected eviction hook for %s, got %v", idle.ID(), evicted)
	}
	if obs.active != 1 {
		t.Fatalf("expected gauge 1, got %d", obs.active)
	}
}

func TestManager_SweepDisabled(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	m := NewManager(Deps{Catalog: catalog.Default(), Ticker: silentTicker, Now: clock.Now})

	if _, err := m.Create(context.Background(), "p"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	clock.Advance(24 * time.Hour)
	if n := m.Sweep(clock.Now()); n != 0 || m.Len() != 1 {
		t.Fatalf("eviction without ttl: evicted %d, left %d", n, m.Len())
	}
}

func TestManager_RunSweeperStopsOnCancel(t *testing.T) {
	m := newTestManager(nil).WithIdleTTL(time.Millisecond)
	evicted := make(chan string, 1)
	m.OnEvict(func(id string) { evicted <- id })

	c, err := m.Create(context.Background(), "p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.RunSweeper(ctx, 5*time.Millisecond)
		close(done)
	}()

	select {
	case id := <-evicted:
		if id != c.ID() {
			t.Fatalf("evicted %s, want %s", id, c.ID())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not evict the idle session")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}
