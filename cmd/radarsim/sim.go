package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/radar/internal/domain/geo"
	"github.com/kailas-cloud/radar/internal/domain/target"
	"github.com/kailas-cloud/radar/internal/usecase/feedback"
	sessionuc "github.com/kailas-cloud/radar/internal/usecase/session"
	radar "github.com/kailas-cloud/radar/pkg/sdk"
)

// step is the part of a fix outcome the walker needs.
type step struct {
	Ready      bool
	Discovered string
	Remaining  int
	Distance   *float64
	Signal     feedback.Signal
}

// engine drives one session, either in-process or over HTTP.
type engine interface {
	Fix(ctx context.Context, at geo.Coordinate) (step, error)
	Targets(ctx context.Context) ([]target.View, error)
	Consume(ctx context.Context) error
}

type localEngine struct {
	c *sessionuc.Controller
}

func (e localEngine) Fix(ctx context.Context, at geo.Coordinate) (step, error) {
	upd, err := e.c.HandleFix(ctx, geo.Fix{Coordinate: at})
	if err != nil {
		return step{}, err
	}
	s := step{Ready: upd.Ready, Remaining: upd.Remaining, Distance: upd.NearestDistance, Signal: upd.Signal}
	if upd.Discovered != nil {
		s.Discovered = upd.Discovered.Item.NameEN
	}
	return s, nil
}

func (e localEngine) Targets(context.Context) ([]target.View, error) {
	return e.c.Snapshot().Targets, nil
}

func (e localEngine) Consume(context.Context) error {
	e.c.ConsumeFocused()
	return nil
}

type remoteEngine struct {
	s *radar.Session
}

func (e remoteEngine) Fix(ctx context.Context, at geo.Coordinate) (step, error) {
	upd, err := e.s.Fix(ctx, radar.Fix{Lat: at.Lat, Lon: at.Lon})
	if err != nil {
		return step{}, err
	}
	s := step{Ready: upd.Ready, Remaining: upd.Remaining, Distance: upd.NearestDistance, Signal: upd.Signal}
	if upd.Discovered != nil {
		s.Discovered = upd.Discovered.Item.NameEN
	}
	return s, nil
}

func (e remoteEngine) Targets(ctx context.Context) ([]target.View, error) {
	st, err := e.s.State(ctx)
	if err != nil {
		return nil, err
	}
	return st.Targets, nil
}

func (e remoteEngine) Consume(ctx context.Context) error {
	_, _, err := e.s.ConsumeFocus(ctx)
	return err
}

// walker moves a synthetic player toward the nearest hidden target.
type walker struct {
	eng        engine
	stepMeters float64
	maxSteps   int
	interval   time.Duration
	logger     *zap.Logger
}

// walk returns the number of targets discovered before every target was
// found, maxSteps ran out or ctx ended.
func (w walker) walk(ctx context.Context, start geo.Coordinate) (int, error) {
	pos := start
	found := 0

	for i := 0; i < w.maxSteps; i++ {
		st, err := w.eng.Fix(ctx, pos)
		if err != nil {
			return found, fmt.Errorf("fix %d: %w", i, err)
		}

		fields := []zap.Field{
			zap.Int("step", i),
			zap.Float64("lat", pos.Lat),
			zap.Float64("lon", pos.Lon),
			zap.String("level", string(st.Signal.Level)),
			zap.Float64("progress", st.Signal.ProgressPercent),
			zap.Int("remaining", st.Remaining),
		}
		if st.Distance != nil {
			fields = append(fields, zap.Float64("nearest_m", *st.Distance))
		}
		w.logger.Debug("Fix", fields...)

		if st.Discovered != "" {
			found++
			w.logger.Info("Discovered", zap.String("item", st.Discovered), zap.Int("step", i))
			if err := w.eng.Consume(ctx); err != nil {
				return found, fmt.Errorf("consume: %w", err)
			}
		}
		if st.Ready && st.Remaining == 0 {
			return found, nil
		}

		next, ok, err := w.nextPosition(ctx, pos)
		if err != nil {
			return found, err
		}
		if !ok {
			return found, nil
		}
		pos = next

		if err := sleep(ctx, w.interval); err != nil {
			return found, err
		}
	}
	return found, errors.New("step limit reached")
}

func (w walker) nextPosition(ctx context.Context, pos geo.Coordinate) (geo.Coordinate, bool, error) {
	targets, err := w.eng.Targets(ctx)
	if err != nil {
		return pos, false, fmt.Errorf("targets: %w", err)
	}
	var goal *geo.Coordinate
	best := math.Inf(1)
	for _, t := range targets {
		if t.Discovered {
			continue
		}
		if d := geo.DistanceMeters(pos, t.Coordinate); d < best {
			best = d
			c := t.Coordinate
			goal = &c
		}
	}
	if goal == nil {
		// Stay put until targets exist; stop once all are found.
		return pos, len(targets) == 0, nil
	}
	return geo.DestinationPoint(pos, geo.InitialBearingDegrees(pos, *goal), math.Min(w.stepMeters, best)), true, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
