package radar

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/radar/internal/db/memory"
	"github.com/kailas-cloud/radar/internal/domain/catalog"
	"github.com/kailas-cloud/radar/internal/domain/geo"
	"github.com/kailas-cloud/radar/internal/repository/collected"
	chiTransport "github.com/kailas-cloud/radar/internal/transport/chi"
	"github.com/kailas-cloud/radar/internal/transport/ws"
	healthuc "github.com/kailas-cloud/radar/internal/usecase/health"
	"github.com/kailas-cloud/radar/internal/usecase/scatter"
	sessionuc "github.com/kailas-cloud/radar/internal/usecase/session"
)

const testKey = "secret"

var origin = geo.Coordinate{Lat: 13.7367, Lon: 100.5232}

// spot is where every default item lands with a constant 0.5 random source.
var spot = geo.DestinationPoint(origin, 180, 27.5)

type testServer struct {
	url string
	hub *ws.Hub
}

func silentTicker(time.Duration) (<-chan time.Time, func()) {
	return make(chan time.Time), func() {}
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := memory.NewStore()
	repo := collected.New(store, "radar:")
	cat := catalog.Default()
	hub := ws.NewHub(ws.Config{}, zap.NewNop())
	mgr := sessionuc.NewManager(sessionuc.Deps{
		Catalog:   cat,
		Rand:      scatter.RandFunc(func() float64 { return 0.5 }),
		Collected: repo,
		Listeners: []sessionuc.DiscoveryListener{sessionuc.PersistDiscoveries(repo), hub},
		Haptics:   hub.Haptics,
		Ticker:    silentTicker,
	})

	srv := chiTransport.NewServer(mgr, cat, repo, hub, healthuc.New(store, nil, mgr), zap.NewNop())
	r := chi.NewRouter()
	r.Use(chiTransport.BearerAuthMiddleware([]string{testKey}))
	srv.Routes(r)

	ts := httptest.NewServer(r)
	t.Cleanup(func() {
		hub.Close()
		ts.Close()
		mgr.Close()
	})
	return &testServer{url: ts.URL, hub: hub}
}

func newTestClient(t *testing.T, url string, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithAPIKey(testKey)}, opts...)
	c, err := New(url, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNew_InvalidURL(t *testing.T) {
	for _, u := range []string{"localhost:8080", "ftp://radar", "://bad"} {
		if _, err := New(u); err == nil {
			t.Errorf("New(%q): expected error", u)
		}
	}
}

func TestClient_DiscoveryWalk(t *testing.T) {
	ts := newTestServer(t)
	c := newTestClient(t, ts.url)
	ctx := context.Background()

	s, err := c.CreateSession(ctx, "player-1")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	upd, err := s.Fix(ctx, Fix{Lat: origin.Lat, Lon: origin.Lon})
	if err != nil {
		t.Fatalf("first fix: %v", err)
	}
	if !upd.Ready || upd.Remaining != 4 || upd.Discovered != nil {
		t.Fatalf("first fix: %+v", upd)
	}

	upd, err = s.Fix(ctx, Fix{Lat: spot.Lat, Lon: spot.Lon})
	if err != nil {
		t.Fatalf("second fix: %v", err)
	}
	if upd.Discovered == nil || upd.Discovered.Item.ID != 1 {
		t.Fatalf("discovered: %+v", upd.Discovered)
	}

	focus, ok, err := s.ConsumeFocus(ctx)
	if err != nil || !ok || focus.Item.ID != 1 {
		t.Fatalf("ConsumeFocus: %+v ok=%v err=%v", focus, ok, err)
	}
	if _, ok, err := s.ConsumeFocus(ctx); err != nil || ok {
		t.Errorf("second ConsumeFocus: ok=%v err=%v", ok, err)
	}

	state, err := s.State(ctx)
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if state.Remaining != 3 || state.PlayerID != "player-1" {
		t.Errorf("state: remaining=%d player=%s", state.Remaining, state.PlayerID)
	}

	items, err := c.Collected(ctx, "player-1")
	if err != nil {
		t.Fatalf("Collected: %v", err)
	}
	if len(items) != 1 || items[0].ItemID != 1 {
		t.Errorf("collected: %+v", items)
	}

	if err := s.Delete(ctx); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.State(ctx); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("State after delete: got %v", err)
	}
}

func TestClient_RestartAndReset(t *testing.T) {
	ts := newTestServer(t)
	c := newTestClient(t, ts.url)
	ctx := context.Background()

	s, _ := c.CreateSession(ctx, "player-1")
	state, err := s.Restart(ctx, Fix{Lat: origin.Lat, Lon: origin.Lon})
	if err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if !state.Ready || len(state.Targets) != 4 {
		t.Fatalf("restart state: ready=%v targets=%d", state.Ready, len(state.Targets))
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	state, _ = s.State(ctx)
	if state.Ready {
		t.Error("session should not be ready after reset")
	}
}

func TestClient_Errors(t *testing.T) {
	ts := newTestServer(t)
	c := newTestClient(t, ts.url)
	ctx := context.Background()

	if _, err := c.CreateSession(ctx, "bad id"); !errors.Is(err, ErrInvalidPlayer) {
		t.Errorf("invalid player: got %v", err)
	}
	if _, err := c.Session("missing").Fix(ctx, Fix{Lat: 1, Lon: 1}); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("missing session: got %v", err)
	}
	if _, err := c.Item(ctx, 99); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("missing item: got %v", err)
	}

	s, _ := c.CreateSession(ctx, "player-1")
	_, err := s.Fix(ctx, Fix{Lat: 100, Lon: 0})
	if !errors.Is(err, ErrInvalidFix) {
		t.Errorf("invalid fix: got %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 400 {
		t.Errorf("expected APIError with status 400, got %v", err)
	}

	anon, _ := New(ts.url)
	if _, err := anon.Catalog(ctx); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("no api key: got %v", err)
	}
}

func TestClient_CatalogAndHealth(t *testing.T) {
	ts := newTestServer(t)
	c := newTestClient(t, ts.url)
	ctx := context.Background()

	items, err := c.Catalog(ctx)
	if err != nil || len(items) != 4 {
		t.Fatalf("Catalog: %d items, err=%v", len(items), err)
	}
	item, err := c.Item(ctx, 3)
	if err != nil || item.ID != 3 {
		t.Fatalf("Item: %+v err=%v", item, err)
	}

	h, err := c.Health(ctx)
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if h.Status != "ok" {
		t.Errorf("health status: %s", h.Status)
	}
}

func TestSession_Stream(t *testing.T) {
	ts := newTestServer(t)
	c := newTestClient(t, ts.url)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s, _ := c.CreateSession(ctx, "player-1")
	msgs, err := s.Stream(ctx)
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	for ts.hub.Clients(s.ID()) == 0 {
		select {
		case <-ctx.Done():
			t.Fatal("stream never registered")
		case <-time.After(5 * time.Millisecond):
		}
	}

	if _, err := s.Fix(ctx, Fix{Lat: origin.Lat, Lon: origin.Lon}); err != nil {
		t.Fatalf("fix: %v", err)
	}
	if _, err := s.Fix(ctx, Fix{Lat: spot.Lat, Lon: spot.Lon}); err != nil {
		t.Fatalf("fix: %v", err)
	}

	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				t.Fatal("stream closed before discovery")
			}
			if msg.Type != MessageDiscovery {
				continue
			}
			if msg.Target == nil || msg.Target.Item.ID != 1 || msg.SessionID != s.ID() {
				t.Fatalf("discovery message: %+v", msg)
			}
			return
		case <-ctx.Done():
			t.Fatal("no discovery message")
		}
	}
}

func TestSession_StreamUnknownSession(t *testing.T) {
	ts := newTestServer(t)
	c := newTestClient(t, ts.url)

	if _, err := c.Session("missing").Stream(context.Background()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("got %v, want ErrSessionNotFound", err)
	}
}

func TestClient_Prometheus(t *testing.T) {
	ts := newTestServer(t)
	reg := prometheus.NewRegistry()
	c := newTestClient(t, ts.url, WithPrometheus(reg))
	// A second client on the same registry reuses the collectors.
	c2 := newTestClient(t, ts.url, WithPrometheus(reg))
	ctx := context.Background()

	_, _ = c.Catalog(ctx)
	_, _ = c2.Catalog(ctx)
	_, _ = c.Item(ctx, 99)

	ops := c.obs.metrics.operations
	if got := testutil.ToFloat64(ops.WithLabelValues("catalog", "ok")); got != 2 {
		t.Errorf("catalog ok: got %v, want 2", got)
	}
	if got := testutil.ToFloat64(ops.WithLabelValues("item", "client_error")); got != 1 {
		t.Errorf("item client_error: got %v, want 1", got)
	}
}
