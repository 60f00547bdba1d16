package chi

import (
	"github.com/kailas-cloud/radar/internal/domain/catalog"
	"github.com/kailas-cloud/radar/internal/domain/geo"
	"github.com/kailas-cloud/radar/internal/domain/player"
	"github.com/kailas-cloud/radar/internal/domain/target"
	gen "github.com/kailas-cloud/radar/internal/transport/generated"
	sessionuc "github.com/kailas-cloud/radar/internal/usecase/session"
)

// fixFromRequest converts a fix body. ok is false when a coordinate is
// missing; range checks are left to the session.
func fixFromRequest(req gen.FixRequest) (geo.Fix, bool) {
	if req.Lat == nil || req.Lon == nil {
		return geo.Fix{}, false
	}
	fix := geo.NewFix(*req.Lat, *req.Lon)
	fix.Heading = req.Heading
	return fix, true
}

func updateToResponse(u sessionuc.Update) gen.UpdateResponse {
	return gen.UpdateResponse{
		Ready:           u.Ready,
		Fix:             u.Fix,
		Heading:         u.Heading,
		Discovered:      u.Discovered,
		Nearest:         u.Nearest,
		NearestDistance: u.NearestDistance,
		Bearing:         u.BearingDegrees,
		RelativeBearing: u.RelativeBearing,
		Cardinal:        u.Cardinal,
		Signal:          u.Signal,
		Remaining:       u.Remaining,
	}
}

func snapshotToResponse(s sessionuc.Snapshot) gen.SessionResponse {
	targets := s.Targets
	if targets == nil {
		targets = []target.View{}
	}
	return gen.SessionResponse{
		ID:        s.ID,
		PlayerID:  s.PlayerID,
		Ready:     s.Ready,
		Targets:   targets,
		Focus:     s.Focus,
		Last:      updateToResponse(s.Last),
		Remaining: s.Remaining,
		Progress:  s.Progress,
	}
}

func collectedToResponse(playerID string, items []player.Collected, cat catalog.Catalog) gen.CollectedResponse {
	out := gen.CollectedResponse{PlayerID: playerID, Items: make([]gen.CollectedItem, 0, len(items))}
	for _, c := range items {
		ci := gen.CollectedItem{ItemID: c.ItemID, At: c.At}
		if it, ok := cat.Get(c.ItemID); ok {
			ci.Item = &it
		}
		out.Items = append(out.Items, ci)
	}
	return out
}
