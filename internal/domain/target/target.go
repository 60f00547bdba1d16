package target

import (
	"sync/atomic"

	"github.com/kailas-cloud/radar/internal/domain/catalog"
	"github.com/kailas-cloud/radar/internal/domain/geo"
)

// State is the discovery state of a placed target.
type State string

const (
	// Hidden targets have not been reached yet.
	Hidden State = "hidden"
	// Discovered is terminal within a session.
	Discovered State = "discovered"
)

// Placed is one catalog item placed at a generated coordinate for a session.
// The coordinate never changes; the discovered flag is a set-once cell.
type Placed struct {
	item       catalog.Item
	coordinate geo.Coordinate
	discovered atomic.Bool
}

// New places item at coordinate.
func New(item catalog.Item, coordinate geo.Coordinate, discovered bool) *Placed {
	p := &Placed{item: item, coordinate: coordinate}
	p.discovered.Store(discovered)
	return p
}

// Item returns the placed catalog item.
func (p *Placed) Item() catalog.Item { return p.item }

// ID returns the catalog item ID.
func (p *Placed) ID() int { return p.item.ID }

// Coordinate returns the generated location.
func (p *Placed) Coordinate() geo.Coordinate { return p.coordinate }

// Discovered reports whether the target has been found.
func (p *Placed) Discovered() bool { return p.discovered.Load() }

// State returns Hidden or Discovered.
func (p *Placed) State() State {
	if p.Discovered() {
		return Discovered
	}
	return Hidden
}

// MarkDiscovered performs the Hidden -> Discovered transition.
// It returns true only for the call that made the transition.
func (p *Placed) MarkDiscovered() bool {
	return p.discovered.CompareAndSwap(false, true)
}

// View is a plain copy of a placed target for presentation.
type View struct {
	Item       catalog.Item   `json:"item"`
	Coordinate geo.Coordinate `json:"coordinate"`
	Discovered bool           `json:"discovered"`
}

// View snapshots the target.
func (p *Placed) View() View {
	return View{Item: p.item, Coordinate: p.coordinate, Discovered: p.Discovered()}
}
