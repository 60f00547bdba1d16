// Package radar is a Go client for the radar proximity discovery API.
//
//	client, _ := radar.New("http://localhost:8080", radar.WithAPIKey("secret"))
//	s, _ := client.CreateSession(ctx, "player-1")
//	upd, _ := s.Fix(ctx, radar.Fix{Lat: 13.7367, Lon: 100.5232})
//	if upd.Discovered != nil {
//	    item, _, _ := s.ConsumeFocus(ctx)
//	    fmt.Println("found", item.Item.NameEN)
//	}
//
// Live haptic pulses and discoveries are available through Session.Stream.
package radar
