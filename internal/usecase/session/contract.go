package session

import (
	"context"
	"time"

	"github.com/kailas-cloud/radar/internal/domain/target"
	"github.com/kailas-cloud/radar/internal/usecase/feedback"
)

// Discovery is emitted once per target when the player reaches it.
type Discovery struct {
	SessionID string
	PlayerID  string
	Target    target.View
	At        time.Time
}

// DiscoveryListener receives discovery events. Called outside the session lock.
type DiscoveryListener interface {
	OnDiscovery(ctx context.Context, d Discovery) error
}

// DiscoveryListenerFunc adapts a function to DiscoveryListener.
type DiscoveryListenerFunc func(ctx context.Context, d Discovery) error

// OnDiscovery implements DiscoveryListener.
func (f DiscoveryListenerFunc) OnDiscovery(ctx context.Context, d Discovery) error { return f(ctx, d) }

// CollectedReader returns the item IDs a player already collected.
type CollectedReader interface {
	LoadCollected(ctx context.Context, playerID string) ([]int, error)
}

// HapticsFactory returns the haptic driver for a session.
type HapticsFactory func(sessionID string) feedback.HapticDriver

// Observer records engine activity.
type Observer interface {
	FixProcessed(result string)
	Scattered(result string)
	Discovered()
	NearestDistance(meters float64)
	PulseRearmed()
	SessionsActive(n int)
}

// Fix results reported to Observer.FixProcessed.
const (
	FixOK        = "ok"
	FixInvalid   = "invalid"
	FixNotReady  = "not_ready"
	FixDiscovery = "discovery"
)

// Scatter results reported to Observer.Scattered.
const (
	ScatterOK        = "ok"
	ScatterCoalesced = "coalesced"
	ScatterDiscarded = "discarded"
)

type nopObserver struct{}

func (nopObserver) FixProcessed(string) {}
func (nopObserver) Scattered(string) {}
func (nopObserver) Discovered() {}
func (nopObserver) NearestDistance(float64) {}
func (nopObserver) PulseRearmed() {}
func (nopObserver) SessionsActive(int) {}
