package session

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/radar/internal/domain"
	"github.com/kailas-cloud/radar/internal/domain/catalog"
	"github.com/kailas-cloud/radar/internal/domain/geo"
	"github.com/kailas-cloud/radar/internal/domain/target"
	"github.com/kailas-cloud/radar/internal/usecase/feedback"
	"github.com/kailas-cloud/radar/internal/usecase/scatter"
	"github.com/kailas-cloud/radar/internal/usecase/tracker"
)

// Deps holds the collaborators shared by every session.
type Deps struct {
	Catalog   catalog.Catalog
	Engine    domain.EngineConfig
	Rand      scatter.RandSource
	Collected CollectedReader
	Listeners []DiscoveryListener
	Haptics   HapticsFactory
	Observer  Observer
	Logger    *zap.Logger
	// Ticker overrides the pulse ticker (tests).
	Ticker feedback.TickerFunc
	Now    func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Engine == (domain.EngineConfig{}) {
		d.Engine = domain.DefaultEngineConfig()
	}
	if d.Observer == nil {
		d.Observer = nopObserver{}
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// Update is the outcome of one fix as presented to the player.
type Update struct {
	// Ready is false until the first scatter of the session completed.
	Ready bool
	Fix   geo.Coordinate
	// Heading is the device heading of the fix, when known.
	Heading *float64

	Discovered      *target.View
	Nearest         *target.View
	NearestDistance *float64
	// BearingDegrees points from the fix to Nearest; RelativeBearing subtracts Heading.
	BearingDegrees  *float64
	RelativeBearing *float64
	Cardinal        string

	Signal    feedback.Signal
	Remaining int
}

// Snapshot is a read-only view of a session.
type Snapshot struct {
	ID        string
	PlayerID  string
	Ready     bool
	Targets   []target.View
	Focus     *target.View
	Last      Update
	Remaining int
	Progress  float64
}

// Controller owns the state of one exploration session. All mutations happen
// under mu; listeners run after it is released.
type Controller struct {
	id       string
	playerID string
	deps     Deps

	scatter *scatter.Service
	pulser  *feedback.Pulser

	mu         sync.Mutex
	tracker    *tracker.Service
	mapper     *feedback.Mapper
	scattered  bool
	rescatter  bool
	scattering bool
	epoch      uint64
	focus      *target.Placed
	seed       map[int]struct{}
	last       Update
	lastActive time.Time
}

// NewController creates an empty session.
func NewController(id, playerID string, deps Deps) *Controller {
	deps = deps.withDefaults()

	var driver feedback.HapticDriver
	if deps.Haptics != nil {
		driver = deps.Haptics(id)
	}
	pulser := feedback.NewPulser(driver, deps.Engine.RearmThresholdSeconds)
	if deps.Ticker != nil {
		pulser.WithTicker(deps.Ticker)
	}

	return &Controller{
		id:         id,
		playerID:   playerID,
		deps:       deps,
		scatter:    scatter.New(deps.Rand, deps.Engine.MinRadiusMeters, deps.Engine.MaxRadiusMeters),
		pulser:     pulser,
		tracker:    tracker.New(deps.Engine.ArrivalThresholdMeters),
		mapper:     feedback.NewMapper(deps.Engine.FeedbackRangeMeters, deps.Engine.ArrivalThresholdMeters),
		lastActive: deps.Now(),
	}
}

// ID returns the session ID.
func (c *Controller) ID() string { return c.id }

// PlayerID returns the owning player.
func (c *Controller) PlayerID() string { return c.playerID }

// BeginExploration scatters the catalog around fix unless the session is
// already populated. After a consumed focus, existing placements are kept.
// A call made while another scatter of the same epoch is in flight returns
// without drawing.
func (c *Controller) BeginExploration(ctx context.Context, fix geo.Fix) error {
	if !fix.Valid() {
		return fmt.Errorf("begin exploration: %w", domain.ErrInvalidFix)
	}

	c.mu.Lock()
	c.lastActive = c.deps.Now()
	if c.scattered && !c.rescatter {
		c.mu.Unlock()
		return nil
	}
	if c.scattering {
		c.mu.Unlock()
		c.deps.Observer.Scattered(ScatterCoalesced)
		return nil
	}
	c.scattering = true
	epoch := c.epoch
	seed := c.seed
	var prior map[int]*target.Placed
	if c.rescatter {
		prior = make(map[int]*target.Placed)
		for _, t := range c.tracker.Targets() {
			prior[t.ID()] = t
		}
	}
	c.mu.Unlock()

	if seed == nil {
		seed = c.loadSeed(ctx)
	}

	res := c.scatter.Scatter(scatter.Request{
		Origin: fix.Coordinate,
		Items:  c.deps.Catalog.Items(),
		Prior:  prior,
		Seed:   seed,
	})

	c.mu.Lock()
	if c.epoch != epoch {
		// Reset already cleared the in-flight marker for this epoch.
		c.mu.Unlock()
		c.deps.Observer.Scattered(ScatterDiscarded)
		c.deps.Logger.Debug("Stale scatter discarded", zap.String("session_id", c.id))
		return nil
	}
	c.scattering = false
	if res.Coalesced {
		c.mu.Unlock()
		c.deps.Observer.Scattered(ScatterCoalesced)
		return nil
	}
	c.seed = seed
	c.tracker.Load(res.Targets)
	c.scattered = true
	c.rescatter = false
	c.mu.Unlock()

	c.deps.Observer.Scattered(ScatterOK)
	c.deps.Logger.Debug("Targets scattered",
		zap.String("session_id", c.id),
		zap.Int("targets", len(res.Targets)),
		zap.Float64("lat", fix.Lat),
		zap.Float64("lon", fix.Lon),
	)
	return nil
}

// loadSeed reads the collected set once per session start. A failing reader
// leaves every target hidden.
func (c *Controller) loadSeed(ctx context.Context) map[int]struct{} {
	seed := make(map[int]struct{})
	if c.deps.Collected == nil {
		return seed
	}
	ids, err := c.deps.Collected.LoadCollected(ctx, c.playerID)
	if err != nil {
		c.deps.Logger.Warn("Failed to load collected items",
			zap.String("session_id", c.id),
			zap.String("player_id", c.playerID),
			zap.Error(err),
		)
		return seed
	}
	for _, id := range ids {
		seed[id] = struct{}{}
	}
	return seed
}

// OnFix evaluates one fix. Before the first scatter it returns Update{Ready: false}.
func (c *Controller) OnFix(ctx context.Context, fix geo.Fix) (Update, error) {
	if !fix.Valid() {
		c.deps.Observer.FixProcessed(FixInvalid)
		return Update{}, fmt.Errorf("on fix: %w", domain.ErrInvalidFix)
	}

	c.mu.Lock()
	c.lastActive = c.deps.Now()
	if !c.scattered {
		c.mu.Unlock()
		c.deps.Observer.FixProcessed(FixNotReady)
		return Update{Fix: fix.Coordinate, Heading: fix.Heading}, nil
	}

	res, err := c.tracker.Update(fix.Coordinate)
	if err != nil {
		c.mu.Unlock()
		c.deps.Observer.FixProcessed(FixInvalid)
		return Update{}, fmt.Errorf("on fix: %w", err)
	}

	upd := Update{
		Ready:           true,
		Fix:             fix.Coordinate,
		Heading:         fix.Heading,
		NearestDistance: res.NearestDistance,
		Remaining:       c.tracker.Remaining(),
	}
	if res.Nearest != nil {
		v := res.Nearest.View()
		upd.Nearest = &v
		bearing := geo.InitialBearingDegrees(fix.Coordinate, v.Coordinate)
		upd.BearingDegrees = &bearing
		upd.Cardinal = geo.Cardinal(bearing)
		if fix.Heading != nil && !math.IsNaN(*fix.Heading) && !math.IsInf(*fix.Heading, 0) {
			rel := math.Mod(math.Mod(bearing-*fix.Heading, 360)+360, 360)
			upd.RelativeBearing = &rel
		}
	}

	var event *Discovery
	rearmed := false
	switch {
	case res.Discovered != nil:
		v := res.Discovered.View()
		upd.Discovered = &v
		c.focus = res.Discovered
		c.pulser.Stop()
		upd.Signal = c.mapper.Arrive()
		event = &Discovery{SessionID: c.id, PlayerID: c.playerID, Target: v, At: c.deps.Now()}
	case c.focus != nil:
		c.pulser.Stop()
		upd.Signal = c.mapper.Arrive()
	default:
		upd.Signal = c.mapper.Map(res.NearestDistance)
		rearmed = c.pulser.Apply(upd.Signal)
	}
	c.last = upd
	c.mu.Unlock()

	if res.NearestDistance != nil {
		c.deps.Observer.NearestDistance(*res.NearestDistance)
	}
	if rearmed {
		c.deps.Observer.PulseRearmed()
	}
	if event == nil {
		c.deps.Observer.FixProcessed(FixOK)
		return upd, nil
	}

	c.deps.Observer.FixProcessed(FixDiscovery)
	c.deps.Observer.Discovered()
	c.deps.Logger.Info("Target discovered",
		zap.String("session_id", c.id),
		zap.String("player_id", c.playerID),
		zap.Int("item_id", event.Target.Item.ID),
		zap.String("item", event.Target.Item.NameEN),
	)
	c.notify(ctx, *event)
	return upd, nil
}

func (c *Controller) notify(ctx context.Context, d Discovery) {
	for _, l := range c.deps.Listeners {
		if err := l.OnDiscovery(ctx, d); err != nil {
			c.deps.Logger.Warn("Discovery listener failed",
				zap.String("session_id", c.id),
				zap.Int("item_id", d.Target.Item.ID),
				zap.Error(err),
			)
		}
	}
}

// HandleFix scatters on the first fix and evaluates it.
func (c *Controller) HandleFix(ctx context.Context, fix geo.Fix) (Update, error) {
	if err := c.BeginExploration(ctx, fix); err != nil {
		c.deps.Observer.FixProcessed(FixInvalid)
		return Update{}, err
	}
	return c.OnFix(ctx, fix)
}

// ConsumeFocused returns the last discovered target once. Consuming completes
// the discovery: progress restarts from zero and the next exploration call
// rescatters around the player, keeping existing placements.
func (c *Controller) ConsumeFocused() (*target.Placed, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.focus == nil {
		return nil, false
	}
	f := c.focus
	c.focus = nil
	c.mapper.Reset()
	c.rescatter = true
	c.last.Signal = feedback.Signal{Level: feedback.LevelSearching}
	return f, true
}

// Reset ends the session: targets, focus and feedback are cleared and any
// scatter in flight is discarded. Safe to call repeatedly.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.tracker.Clear()
	c.focus = nil
	c.mapper.Reset()
	c.pulser.Stop()
	c.epoch++
	c.scattered = false
	c.rescatter = false
	c.scattering = false
	c.seed = nil
	c.last = Update{}
	c.mu.Unlock()

	c.scatter.Forget()
}

// Restart resets the session and scatters fresh targets around fix.
func (c *Controller) Restart(ctx context.Context, fix geo.Fix) error {
	if !fix.Valid() {
		return fmt.Errorf("restart: %w", domain.ErrInvalidFix)
	}
	c.Reset()
	return c.BeginExploration(ctx, fix)
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	targets := c.tracker.Targets()
	views := make([]target.View, 0, len(targets))
	for _, t := range targets {
		views = append(views, t.View())
	}

	snap := Snapshot{
		ID:        c.id,
		PlayerID:  c.playerID,
		Ready:     c.scattered,
		Targets:   views,
		Last:      c.last,
		Remaining: c.tracker.Remaining(),
		Progress:  c.mapper.Progress(),
	}
	if c.focus != nil {
		v := c.focus.View()
		snap.Focus = &v
	}
	return snap
}

// LastActive returns the time of the last fix or exploration call.
func (c *Controller) LastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive
}

// Pulsing reports whether haptic pulses are scheduled.
func (c *Controller) Pulsing() bool {
	return c.pulser.Running()
}
