package feedback

// HapticDriver plays one haptic pulse at the given intensity in [0.3, 1].
// Pulse is called from the pulser goroutine and must not call back into the Pulser.
type HapticDriver interface {
	Pulse(intensity float64)
}

// HapticDriverFunc adapts a function to HapticDriver.
type HapticDriverFunc func(intensity float64)

// Pulse implements HapticDriver.
func (f HapticDriverFunc) Pulse(intensity float64) { f(intensity) }
