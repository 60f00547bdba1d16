package feedback

import (
	"math"
	"time"
)

// Level is a coarse proximity bucket for status display.
type Level string

const (
	// LevelSearching means there is no usable distance.
	LevelSearching Level = "searching"
	// LevelFar is beyond 30 m.
	LevelFar Level = "far"
	// LevelMedium is within 30 m.
	LevelMedium Level = "medium"
	// LevelNear is within 15 m.
	LevelNear Level = "near"
	// LevelArrived is within the arrival threshold.
	LevelArrived Level = "arrived"
)

const (
	minPulseInterval  = 0.25
	maxPulseInterval  = 1.0
	pulseIntervalStep = 0.6
	minPulseIntensity = 0.3
)

// Signal is the feedback derived from one distance sample.
// Interval and intensity are meaningful only when Active.
type Signal struct {
	Active               bool    `json:"active"`
	PulseIntervalSeconds float64 `json:"pulse_interval_seconds"`
	PulseIntensity       float64 `json:"pulse_intensity"`
	ProgressPercent      float64 `json:"progress_percent"`
	Level                Level   `json:"level"`
}

// PulseInterval returns the pulse period as a duration.
func (s Signal) PulseInterval() time.Duration {
	return time.Duration(s.PulseIntervalSeconds * float64(time.Second))
}

// Mapper turns distances into feedback and keeps the running progress maximum
// of the current approach. Not safe for concurrent use.
type Mapper struct {
	rangeMeters   float64
	arrivalMeters float64
	progress      float64
}

// NewMapper creates a Mapper. Feedback starts at rangeMeters.
func NewMapper(rangeMeters, arrivalMeters float64) *Mapper {
	if rangeMeters <= 0 {
		rangeMeters = 50
	}
	return &Mapper{rangeMeters: rangeMeters, arrivalMeters: arrivalMeters}
}

// Closeness maps a distance to [0, 1]; 1 at the target, 0 at or beyond rangeMeters.
func (m *Mapper) Closeness(distance float64) float64 {
	clamped := math.Max(0, math.Min(distance, m.rangeMeters))
	return 1 - clamped/m.rangeMeters
}

// Map computes feedback for distance. nil or non-finite distance stops feedback
// and leaves progress unchanged.
func (m *Mapper) Map(distance *float64) Signal {
	if distance == nil || math.IsNaN(*distance) || math.IsInf(*distance, 0) {
		return Signal{ProgressPercent: m.progress, Level: LevelSearching}
	}

	d := *distance
	c := m.Closeness(d)
	m.progress = math.Max(m.progress, c*100)

	sig := Signal{ProgressPercent: m.progress, Level: m.level(d)}
	if c <= 0 {
		return sig
	}

	sig.Active = true
	sig.PulseIntervalSeconds = PulseIntervalSeconds(c)
	sig.PulseIntensity = PulseIntensity(c)
	return sig
}

// Arrive reports a completed approach: progress 100 and feedback stopped.
func (m *Mapper) Arrive() Signal {
	m.progress = 100
	return Signal{ProgressPercent: 100, Level: LevelArrived}
}

// Reset zeroes the running progress.
func (m *Mapper) Reset() {
	m.progress = 0
}

// Progress returns the running progress maximum.
func (m *Mapper) Progress() float64 { return m.progress }

func (m *Mapper) level(d float64) Level {
	switch {
	case d <= m.arrivalMeters:
		return LevelArrived
	case d <= 15:
		return LevelNear
	case d <= 30:
		return LevelMedium
	default:
		return LevelFar
	}
}

// PulseIntervalSeconds returns max(0.25, 1 - 0.6c).
func PulseIntervalSeconds(c float64) float64 {
	return math.Max(minPulseInterval, maxPulseInterval-pulseIntervalStep*clamp01(c))
}

// PulseIntensity returns max(0.3, c).
func PulseIntensity(c float64) float64 {
	return math.Max(minPulseIntensity, clamp01(c))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
