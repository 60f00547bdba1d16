package tracker

import (
	"errors"
	"math"
	"testing"

	"github.com/kailas-cloud/radar/internal/domain"
	"github.com/kailas-cloud/radar/internal/domain/catalog"
	"github.com/kailas-cloud/radar/internal/domain/geo"
	"github.com/kailas-cloud/radar/internal/domain/target"
)

var origin = geo.Coordinate{Lat: 13.7367, Lon: 100.5232}

// placeAt puts item id at distance meters along bearing from origin.
func placeAt(id int, bearing, meters float64) *target.Placed {
	return target.New(catalog.Item{ID: id}, geo.DestinationPoint(origin, bearing, meters), false)
}

func TestUpdate_NoTargets(t *testing.T) {
	svc := New(5)
	res, err := svc.Update(origin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Discovered != nil || res.Nearest != nil || res.NearestDistance != nil {
		t.Fatalf("expected empty result, got %+v", res)
	}
}

func TestUpdate_NearestOverAllTargets(t *testing.T) {
	svc := New(5)
	near := placeAt(1, 0, 20)
	far := placeAt(2, 90, 40)
	near.MarkDiscovered()
	svc.Load([]*target.Placed{far, near})

	res, err := svc.Update(origin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Nearest != near {
		t.Fatalf("nearest should include discovered targets, got %v", res.Nearest)
	}
	if res.NearestDistance == nil || math.Abs(*res.NearestDistance-20) > 0.01 {
		t.Fatalf("expected ~20m, got %v", res.NearestDistance)
	}
	if res.Discovered != nil {
		t.Fatal("no target is within the threshold")
	}
}

func TestUpdate_DiscoversWithinThreshold(t *testing.T) {
	svc := New(5)
	tg := placeAt(1, 45, 4)
	svc.Load([]*target.Placed{tg})

	res, _ := svc.Update(origin)
	if res.Discovered != tg {
		t.Fatalf("expected discovery of target 1, got %v", res.Discovered)
	}
	if !tg.Discovered() {
		t.Fatal("target flag should be set")
	}
	if svc.Remaining() != 0 {
		t.Fatalf("expected 0 remaining, got %d", svc.Remaining())
	}

	// Same fix again: no second discovery event.
	res, _ = svc.Update(origin)
	if res.Discovered != nil {
		t.Fatal("target must not be discovered twice")
	}
	if res.Nearest != tg {
		t.Fatal("discovered target still drives the compass")
	}
}

func TestUpdate_ThresholdIsInclusive(t *testing.T) {
	svc := New(5)
	tg := placeAt(1, 0, 10)
	svc.Load([]*target.Placed{tg})

	// Stand exactly 5m away from the target (as measured by the tracker).
	fix := geo.DestinationPoint(tg.Coordinate(), 180, 5)
	d := geo.DistanceMeters(fix, tg.Coordinate())
	res, _ := svc.Update(fix)
	if d <= 5 && res.Discovered == nil {
		t.Fatalf("distance %.9f <= 5 should discover", d)
	}
	if d > 5 && res.Discovered != nil {
		t.Fatalf("distance %.9f > 5 should not discover", d)
	}
}

func TestUpdate_AtMostOnePerCall_NearestWins(t *testing.T) {
	svc := New(5)
	a := placeAt(1, 0, 3)
	b := placeAt(2, 180, 1)
	c := placeAt(3, 90, 4)
	svc.Load([]*target.Placed{a, b, c})

	res, _ := svc.Update(origin)
	if res.Discovered != b {
		t.Fatalf("expected nearest qualifying target 2, got %v", res.Discovered)
	}
	if a.Discovered() || c.Discovered() {
		t.Fatal("only one target may transition per update")
	}

	res, _ = svc.Update(origin)
	if res.Discovered != a {
		t.Fatalf("second update should discover target 1, got %v", res.Discovered)
	}
	res, _ = svc.Update(origin)
	if res.Discovered != c {
		t.Fatalf("third update should discover target 3, got %v", res.Discovered)
	}
	res, _ = svc.Update(origin)
	if res.Discovered != nil {
		t.Fatal("nothing left to discover")
	}
}

func TestUpdate_TieBreakLowestID(t *testing.T) {
	svc := New(5)
	same := geo.DestinationPoint(origin, 10, 2)
	hi := target.New(catalog.Item{ID: 9}, same, false)
	lo := target.New(catalog.Item{ID: 4}, same, false)
	svc.Load([]*target.Placed{hi, lo})

	res, _ := svc.Update(origin)
	if res.Discovered != lo {
		t.Fatalf("tie should go to lowest id, got %v", res.Discovered)
	}
	if res.Nearest != lo {
		t.Fatalf("nearest tie should go to lowest id, got %v", res.Nearest)
	}
}

func TestUpdate_InvalidFixKeepsState(t *testing.T) {
	svc := New(5)
	tg := placeAt(1, 0, 1)
	svc.Load([]*target.Placed{tg})

	bad := []geo.Coordinate{
		{Lat: math.NaN(), Lon: 100},
		{Lat: 13, Lon: math.Inf(-1)},
		{Lat: 120, Lon: 0},
	}
	for _, fix := range bad {
		res, err := svc.Update(fix)
		if !errors.Is(err, domain.ErrInvalidFix) {
			t.Fatalf("expected ErrInvalidFix for %v, got %v", fix, err)
		}
		if res.Discovered != nil || res.Nearest != nil {
			t.Fatalf("invalid fix must not produce results: %+v", res)
		}
	}
	if tg.Discovered() {
		t.Fatal("invalid fixes must not discover")
	}
}

func TestUpdate_DiscoveryIsMonotonic(t *testing.T) {
	svc := New(5)
	tg := placeAt(1, 0, 30)
	svc.Load([]*target.Placed{tg})

	walk := []float64{30, 20, 10, 2, 10, 40, 100, 1, 3000}
	seen := false
	discoveries := 0
	for _, away := range walk {
		fix := geo.DestinationPoint(tg.Coordinate(), 270, away)
		res, err := svc.Update(fix)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Discovered != nil {
			discoveries++
		}
		if seen && !tg.Discovered() {
			t.Fatal("discovered flag reverted")
		}
		seen = seen || tg.Discovered()
	}
	if discoveries != 1 {
		t.Fatalf("expected exactly one discovery, got %d", discoveries)
	}
}

func TestLoadClearTargets(t *testing.T) {
	svc := New(5)
	svc.Load([]*target.Placed{placeAt(3, 0, 10), nil, placeAt(1, 0, 20)})
	got := svc.Targets()
	if len(got) != 2 || got[0].ID() != 1 || got[1].ID() != 3 {
		t.Fatalf("expected targets [1 3], got %v", got)
	}
	svc.Clear()
	if len(svc.Targets()) != 0 || svc.Remaining() != 0 {
		t.Fatal("Clear should drop all targets")
	}
}
