package session

import (
	"context"
	"fmt"
	"time"
)

// CollectedWriter persists a discovered item for a player.
type CollectedWriter interface {
	Add(ctx context.Context, playerID string, itemID int, at time.Time) (bool, error)
}

// PersistDiscoveries returns a listener that stores every discovery, so the
// next session of the same player starts with it collected.
func PersistDiscoveries(w CollectedWriter) DiscoveryListener {
	return DiscoveryListenerFunc(func(ctx context.Context, d Discovery) error {
		if _, err := w.Add(ctx, d.PlayerID, d.Target.Item.ID, d.At); err != nil {
			return fmt.Errorf("persist discovery: %w", err)
		}
		return nil
	})
}
