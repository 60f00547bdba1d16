package feedback

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// TickerFunc starts a periodic ticker and returns its channel and stop function.
type TickerFunc func(d time.Duration) (<-chan time.Time, func())

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Pulser drives a HapticDriver from a background ticker, independent of how
// often fixes arrive. Stop is always safe and repeatable.
type Pulser struct {
	driver    HapticDriver
	rearm     float64
	newTicker TickerFunc

	intensity atomic.Uint64 // math.Float64bits

	mu       sync.Mutex
	running  bool
	interval float64
	stop     chan struct{}
	done     chan struct{}
}

// NewPulser creates a Pulser. The ticker restarts only when the interval
// changes by more than rearmSeconds.
func NewPulser(driver HapticDriver, rearmSeconds float64) *Pulser {
	return &Pulser{driver: driver, rearm: rearmSeconds, newTicker: realTicker}
}

// WithTicker replaces the ticker factory (tests).
func (p *Pulser) WithTicker(fn TickerFunc) *Pulser {
	p.newTicker = fn
	return p
}

// Apply follows sig: inactive stops the pulses, active updates the intensity
// and re-arms the ticker when needed. Returns true when the ticker was (re)started.
func (p *Pulser) Apply(sig Signal) bool {
	if !sig.Active || sig.PulseIntervalSeconds <= 0 || math.IsNaN(sig.PulseIntervalSeconds) {
		p.Stop()
		return false
	}

	p.intensity.Store(math.Float64bits(sig.PulseIntensity))

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running && math.Abs(sig.PulseIntervalSeconds-p.interval) <= p.rearm {
		return false
	}
	p.stopLocked()
	p.startLocked(sig.PulseIntervalSeconds)
	return true
}

// Stop cancels the ticker and waits for the pulse goroutine to exit.
func (p *Pulser) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// Running reports whether pulses are scheduled.
func (p *Pulser) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Interval returns the scheduled interval in seconds (0 when stopped).
func (p *Pulser) Interval() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return 0
	}
	return p.interval
}

// Intensity returns the intensity used for the next pulse.
func (p *Pulser) Intensity() float64 {
	return math.Float64frombits(p.intensity.Load())
}

func (p *Pulser) startLocked(interval float64) {
	ticks, stopTicker := p.newTicker(time.Duration(interval * float64(time.Second)))
	stop := make(chan struct{})
	done := make(chan struct{})

	p.running = true
	p.interval = interval
	p.stop = stop
	p.done = done

	go func() {
		defer close(done)
		defer stopTicker()
		for {
			select {
			case <-stop:
				return
			case _, ok := <-ticks:
				if !ok {
					return
				}
				select {
				case <-stop:
					return
				default:
				}
				if p.driver != nil {
					p.driver.Pulse(p.Intensity())
				}
			}
		}
	}()
}

func (p *Pulser) stopLocked() {
	if !p.running {
		return
	}
	close(p.stop)
	<-p.done
	p.running = false
	p.interval = 0
	p.stop = nil
	p.done = nil
}
