package tracker

import (
	"fmt"
	"math"
	"sort"

	"github.com/kailas-cloud/radar/internal/domain"
	"github.com/kailas-cloud/radar/internal/domain/geo"
	"github.com/kailas-cloud/radar/internal/domain/target"
)

// Result is the outcome of one fix.
type Result struct {
	// Discovered is the target that transitioned Hidden -> Discovered on this fix.
	Discovered *target.Placed
	// NearestDistance is the distance in meters to Nearest; nil when there are no targets.
	NearestDistance *float64
	// Nearest is the closest target, discovered or not.
	Nearest *target.Placed
}

// Service holds the placed targets of a session and evaluates fixes against them.
// It is not safe for concurrent use; the owning session serialises access.
type Service struct {
	threshold float64
	targets   []*target.Placed
}

// New creates a Service with the arrival threshold in meters.
func New(threshold float64) *Service {
	return &Service{threshold: threshold}
}

// Threshold returns the arrival threshold in meters.
func (s *Service) Threshold() float64 { return s.threshold }

// Load replaces the tracked targets. Targets are kept in item ID order.
func (s *Service) Load(targets []*target.Placed) {
	sorted := make([]*target.Placed, 0, len(targets))
	for _, t := range targets {
		if t != nil {
			sorted = append(sorted, t)
		}
	}
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].ID() < sorted[b].ID() })
	s.targets = sorted
}

// Clear drops all targets.
func (s *Service) Clear() {
	s.targets = nil
}

// Targets returns the tracked targets in item ID order.
func (s *Service) Targets() []*target.Placed {
	out := make([]*target.Placed, len(s.targets))
	copy(out, s.targets)
	return out
}

// Remaining returns the number of hidden targets.
func (s *Service) Remaining() int {
	n := 0
	for _, t := range s.targets {
		if !t.Discovered() {
			n++
		}
	}
	return n
}

// Update evaluates fix against every target. At most one target is
// discovered per call: the nearest qualifying one, ties broken by lowest
// item ID. An unusable fix leaves the state untouched.
func (s *Service) Update(fix geo.Coordinate) (Result, error) {
	if !fix.Valid() {
		return Result{}, fmt.Errorf("%w: lat=%v lon=%v", domain.ErrInvalidFix, fix.Lat, fix.Lon)
	}
	if len(s.targets) == 0 {
		return Result{}, nil
	}

	var (
		nearest      *target.Placed
		nearestDist  = math.Inf(1)
		candidate    *target.Placed
		candidateDst = math.Inf(1)
	)

	// targets are ID ordered, so strict comparisons keep the lowest ID on ties.
	for _, t := range s.targets {
		d := geo.DistanceMeters(fix, t.Coordinate())
		if math.IsNaN(d) {
			continue
		}
		if d < nearestDist {
			nearest, nearestDist = t, d
		}
		if !t.Discovered() && d <= s.threshold && d < candidateDst {
			candidate, candidateDst = t, d
		}
	}

	var res Result
	if nearest != nil {
		dist := nearestDist
		res.Nearest = nearest
		res.NearestDistance = &dist
	}
	if candidate != nil && candidate.MarkDiscovered() {
		res.Discovered = candidate
	}
	return res, nil
}
