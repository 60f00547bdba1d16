package domain

// EngineConfig holds the tunables of the proximity discovery engine.
type EngineConfig struct {
	// MinRadiusMeters and MaxRadiusMeters bound the scatter annulus.
	MinRadiusMeters float64
	MaxRadiusMeters float64
	// ArrivalThresholdMeters is the distance at which a target is discovered.
	ArrivalThresholdMeters float64
	// FeedbackRangeMeters is the distance at which feedback starts.
	FeedbackRangeMeters float64
	// RearmThresholdSeconds is the minimal pulse interval change that restarts the timer.
	RearmThresholdSeconds float64
}

// DefaultEngineConfig returns the defaults used by the radar mode.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MinRadiusMeters:        5,
		MaxRadiusMeters:        50,
		ArrivalThresholdMeters: 5,
		FeedbackRangeMeters:    50,
		RearmThresholdSeconds:  0.05,
	}
}
