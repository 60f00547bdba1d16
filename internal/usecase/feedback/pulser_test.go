package feedback

import (
	"sync"
	"testing"
	"time"
)

// --- Mock ticker ---

type fakeTicker struct {
	mu      sync.Mutex
	started []time.Duration
	stopped int
	ch      chan time.Time
}

func newFakeTicker() *fakeTicker {
	return &fakeTicker{ch: make(chan time.Time)}
}

func (f *fakeTicker) factory(d time.Duration) (<-chan time.Time, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = append(f.started, d)
	return f.ch, func() {
		f.mu.Lock()
		f.stopped++
		f.mu.Unlock()
	}
}

func (f *fakeTicker) starts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.started)
}

func (f *fakeTicker) stops() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

func active(interval, intensity float64) Signal {
	return Signal{Active: true, PulseIntervalSeconds: interval, PulseIntensity: intensity}
}

// --- Tests ---

func TestPulser_RearmOnlyOnSignificantChange(t *testing.T) {
	ft := newFakeTicker()
	p := NewPulser(nil, 0.05).WithTicker(ft.factory)
	defer p.Stop()

	if !p.Apply(active(0.8, 0.4)) {
		t.Fatal("first active signal should start the ticker")
	}
	if p.Apply(active(0.77, 0.45)) {
		t.Fatal("0.03s change must not re-arm")
	}
	if p.Apply(active(0.76, 0.5)) {
		t.Fatal("0.04s change must not re-arm")
	}
	if !p.Apply(active(0.7, 0.55)) {
		t.Fatal("0.1s change should re-arm")
	}
	if ft.starts() != 2 {
		t.Fatalf("expected 2 ticker starts, got %d", ft.starts())
	}
	if ft.stops() != 1 {
		t.Fatalf("expected previous ticker stopped once, got %d", ft.stops())
	}
	if p.Interval() != 0.7 {
		t.Fatalf("expected interval 0.7, got %f", p.Interval())
	}
	if p.Intensity() != 0.55 {
		t.Fatalf("intensity should follow every signal, got %f", p.Intensity())
	}
}

func TestPulser_TickPulsesDriver(t *testing.T) {
	ft := newFakeTicker()
	got := make(chan float64, 1)
	p := NewPulser(HapticDriverFunc(func(i float64) { got <- i }), 0.05).WithTicker(ft.factory)
	defer p.Stop()

	p.Apply(active(0.5, 0.9))
	ft.ch <- time.Now()

	select {
	case v := <-got:
		if v != 0.9 {
			t.Fatalf("expected intensity 0.9, got %f", v)
		}
	case <-time.After(time.Second):
		t.Fatal("driver was not pulsed")
	}
}

func TestPulser_InactiveStops(t *testing.T) {
	ft := newFakeTicker()
	p := NewPulser(nil, 0.05).WithTicker(ft.factory)

	p.Apply(active(0.5, 0.5))
	if !p.Running() {
		t.Fatal("expected running")
	}
	p.Apply(Signal{})
	if p.Running() {
		t.Fatal("inactive signal should stop pulses")
	}
	if p.Interval() != 0 {
		t.Fatalf("stopped pulser should report 0 interval, got %f", p.Interval())
	}
	if ft.stops() != 1 {
		t.Fatalf("ticker should be stopped once, got %d", ft.stops())
	}
}

func TestPulser_StopIsIdempotent(t *testing.T) {
	p := NewPulser(nil, 0.05).WithTicker(newFakeTicker().factory)
	p.Stop()
	p.Apply(active(0.5, 0.5))
	p.Stop()
	p.Stop()
	if p.Running() {
		t.Fatal("expected stopped")
	}
	if !p.Apply(active(0.5, 0.5)) {
		t.Fatal("pulser should restart after stop")
	}
	p.Stop()
}

func TestPulser_RealTicker(t *testing.T) {
	var mu sync.Mutex
	count := 0
	p := NewPulser(HapticDriverFunc(func(float64) {
		mu.Lock()
		count++
		mu.Unlock()
	}), 0.05)

	p.Apply(active(0.01, 1))
	time.Sleep(60 * time.Millisecond)
	p.Stop()

	mu.Lock()
	after := count
	mu.Unlock()
	if after == 0 {
		t.Fatal("expected at least one pulse")
	}

	time.Sleep(30 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if count != after {
		t.Fatal("no pulses may fire after Stop returns")
	}
}
