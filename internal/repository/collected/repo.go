package collected

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/kailas-cloud/radar/internal/domain/player"
)

// store is the consumer interface for collected items (ISP).
type store interface {
	HSetNX(ctx context.Context, key, field, value string) (bool, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HDel(ctx context.Context, key string, fields ...string) error
	Del(ctx context.Context, key string) error
}

// Repo keeps the items each player collected in a hash
// {prefix}collected:{player} -> {item id: first discovery time}.
type Repo struct {
	store  store
	prefix string
}

// New creates a collected-items repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, prefix: keyPrefix}
}

func (r *Repo) key(playerID string) string {
	return r.prefix + "collected:" + playerID
}

// Add records itemID for playerID. The first discovery time wins; returns
// false when the item was already collected.
func (r *Repo) Add(ctx context.Context, playerID string, itemID int, at time.Time) (bool, error) {
	if err := player.ValidateID(playerID); err != nil {
		return false, err
	}
	created, err := r.store.HSetNX(ctx, r.key(playerID), strconv.Itoa(itemID), at.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return false, fmt.Errorf("collected add %s/%d: %w", playerID, itemID, err)
	}
	return created, nil
}

// LoadCollected returns the collected item IDs in ascending order.
func (r *Repo) LoadCollected(ctx context.Context, playerID string) ([]int, error) {
	entries, err := r.List(ctx, playerID)
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(entries))
	for i, e := range entries {
		ids[i] = e.ItemID
	}
	return ids, nil
}

// List returns the collected items with their discovery time, by item ID.
func (r *Repo) List(ctx context.Context, playerID string) ([]player.Collected, error) {
	if err := player.ValidateID(playerID); err != nil {
		return nil, err
	}
	fields, err := r.store.HGetAll(ctx, r.key(playerID))
	if err != nil {
		return nil, fmt.Errorf("collected list %s: %w", playerID, err)
	}

	out := make([]player.Collected, 0, len(fields))
	for field, value := range fields {
		id, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("collected list %s: bad item id %q: %w", playerID, field, err)
		}
		at, err := time.Parse(time.RFC3339Nano, value)
		if err != nil {
			return nil, fmt.Errorf("collected list %s: bad time for item %d: %w", playerID, id, err)
		}
		out = append(out, player.Collected{ItemID: id, At: at})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out, nil
}

// Remove forgets the given items.
func (r *Repo) Remove(ctx context.Context, playerID string, itemIDs ...int) error {
	if err := player.ValidateID(playerID); err != nil {
		return err
	}
	fields := make([]string, len(itemIDs))
	for i, id := range itemIDs {
		fields[i] = strconv.Itoa(id)
	}
	if err := r.store.HDel(ctx, r.key(playerID), fields...); err != nil {
		return fmt.Errorf("collected remove %s: %w", playerID, err)
	}
	return nil
}

// Clear forgets everything playerID collected.
func (r *Repo) Clear(ctx context.Context, playerID string) error {
	if err := player.ValidateID(playerID); err != nil {
		return err
	}
	if err := r.store.Del(ctx, r.key(playerID)); err != nil {
		return fmt.Errorf("collected clear %s: %w", playerID, err)
	}
	return nil
}
