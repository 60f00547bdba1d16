package scatter

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/kailas-cloud/radar/internal/domain/catalog"
	"github.com/kailas-cloud/radar/internal/domain/geo"
	"github.com/kailas-cloud/radar/internal/domain/target"
)

// Request describes one scatter call.
type Request struct {
	Origin geo.Coordinate
	Items  []catalog.Item
	// Prior placements keep their coordinate and discovered flag.
	Prior map[int]*target.Placed
	// Seed lists item IDs the player already collected; they start discovered.
	Seed map[int]struct{}
}

// Result is the outcome of a scatter call.
type Result struct {
	Targets []*target.Placed
	// Coalesced is true when another scatter was in flight and no draw happened.
	Coalesced bool
}

// Service places catalog items at random points of an annulus around a fix.
type Service struct {
	rnd       RandSource
	minRadius float64
	maxRadius float64

	generating atomic.Bool
	mu         sync.Mutex
	last       []*target.Placed
}

// New creates a Service. rnd can be nil (process-wide generator).
func New(rnd RandSource, minRadius, maxRadius float64) *Service {
	if rnd == nil {
		rnd = RandFunc(rand.Float64)
	}
	if minRadius < 0 {
		minRadius = 0
	}
	if maxRadius < minRadius {
		maxRadius = minRadius
	}
	return &Service{rnd: rnd, minRadius: minRadius, maxRadius: maxRadius}
}

// MinRadius returns the inner annulus radius in meters.
func (s *Service) MinRadius() float64 { return s.minRadius }

// MaxRadius returns the outer annulus radius in meters.
func (s *Service) MaxRadius() float64 { return s.maxRadius }

// Scatter places every item of req. A call made while another one is in
// flight is coalesced and returns the previous completed result.
func (s *Service) Scatter(req Request) Result {
	if !s.generating.CompareAndSwap(false, true) {
		s.mu.Lock()
		defer s.mu.Unlock()
		return Result{Targets: s.last, Coalesced: true}
	}
	defer s.generating.Store(false)

	targets := make([]*target.Placed, 0, len(req.Items))
	for _, item := range req.Items {
		_, collected := req.Seed[item.ID]

		if existing, ok := req.Prior[item.ID]; ok && existing != nil {
			if collected {
				existing.MarkDiscovered()
			}
			targets = append(targets, existing)
			continue
		}

		targets = append(targets, target.New(item, s.randomCoordinate(req.Origin), collected))
	}

	s.mu.Lock()
	s.last = targets
	s.mu.Unlock()

	return Result{Targets: targets}
}

// Forget drops the remembered result so a coalesced call cannot return
// targets from a finished session.
func (s *Service) Forget() {
	s.mu.Lock()
	s.last = nil
	s.mu.Unlock()
}

// randomCoordinate draws an independent bearing and distance.
func (s *Service) randomCoordinate(origin geo.Coordinate) geo.Coordinate {
	bearing := s.rnd.Float64() * 360
	distance := s.minRadius + s.rnd.Float64()*(s.maxRadius-s.minRadius)
	return geo.DestinationPoint(origin, bearing, distance)
}
