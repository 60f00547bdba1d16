package player

import (
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/radar/internal/domain"
)

const maxIDLength = 128

// Collected records the first time a player discovered a catalog item.
type Collected struct {
	ItemID int
	At     time.Time
}

// ValidateID checks a player identifier: non-empty, bounded, no whitespace or ':'.
func ValidateID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", domain.ErrInvalidPlayer)
	}
	if len(id) > maxIDLength {
		return fmt.Errorf("%w: longer than %d bytes", domain.ErrInvalidPlayer, maxIDLength)
	}
	if strings.ContainsAny(id, " \t\r\n:") {
		return fmt.Errorf("%w: %q contains forbidden characters", domain.ErrInvalidPlayer, id)
	}
	return nil
}
