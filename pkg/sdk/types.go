package radar

import (
	"github.com/kailas-cloud/radar/internal/domain/catalog"
	"github.com/kailas-cloud/radar/internal/domain/geo"
	"github.com/kailas-cloud/radar/internal/domain/target"
	gen "github.com/kailas-cloud/radar/internal/transport/generated"
	"github.com/kailas-cloud/radar/internal/transport/ws"
	"github.com/kailas-cloud/radar/internal/usecase/feedback"
)

type (
	// Item is a catalog entry.
	Item = catalog.Item
	// Coordinate is a latitude/longitude pair in degrees.
	Coordinate = geo.Coordinate
	// Target is a placed catalog item.
	Target = target.View
	// Signal is the haptic feedback for one fix.
	Signal = feedback.Signal
	// Update is the server's answer to a fix.
	Update = gen.UpdateResponse
	// SessionState is a session snapshot.
	SessionState = gen.SessionResponse
	// CollectedItem is one entry of a player's collection.
	CollectedItem = gen.CollectedItem
	// HealthStatus is the aggregated server health.
	HealthStatus = gen.HealthResponse
	// StreamMessage is one frame of the live session stream.
	StreamMessage = ws.Message
)

// Stream message types.
const (
	MessagePulse     = ws.TypePulse
	MessageDiscovery = ws.TypeDiscovery
)

// Fix is a location sample sent to a session. Heading is optional.
type Fix struct {
	Lat     float64
	Lon     float64
	Heading *float64
}

func (f Fix) request() gen.FixRequest {
	lat, lon := f.Lat, f.Lon
	return gen.FixRequest{Lat: &lat, Lon: &lon, Heading: f.Heading}
}
