package radar

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// Session is a handle to one exploration session on the server.
type Session struct {
	id     string
	client *Client
}

// ID returns the server-assigned session ID.
func (s *Session) ID() string { return s.id }

func (s *Session) path(suffix string) string {
	return "/v1/sessions/" + url.PathEscape(s.id) + suffix
}

// Fix reports one location sample. The first valid fix scatters the targets.
func (s *Session) Fix(ctx context.Context, fix Fix) (upd Update, err error) {
	start := time.Now()
	defer func() { s.client.obs.observe("fix", start, err) }()

	err = s.client.do(ctx, http.MethodPost, s.path("/fixes"), fix.request(), &upd)
	return upd, err
}

// State returns the session snapshot.
func (s *Session) State(ctx context.Context) (state SessionState, err error) {
	start := time.Now()
	defer func() { s.client.obs.observe("state", start, err) }()

	err = s.client.do(ctx, http.MethodGet, s.path(""), nil, &state)
	return state, err
}

// ConsumeFocus takes the last discovered target. ok is false when there is none.
func (s *Session) ConsumeFocus(ctx context.Context) (t Target, ok bool, err error) {
	start := time.Now()
	defer func() { s.client.obs.observe("consume_focus", start, err) }()

	var out *Target
	if err = s.client.do(ctx, http.MethodPost, s.path("/focus:consume"), nil, &out); err != nil {
		return Target{}, false, err
	}
	if out == nil {
		return Target{}, false, nil
	}
	return *out, true, nil
}

// Reset clears targets and feedback; the next fix scatters again.
func (s *Session) Reset(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { s.client.obs.observe("reset", start, err) }()

	return s.client.do(ctx, http.MethodPost, s.path("/reset"), nil, nil)
}

// Restart resets the session and scatters new targets around fix.
func (s *Session) Restart(ctx context.Context, fix Fix) (state SessionState, err error) {
	start := time.Now()
	defer func() { s.client.obs.observe("restart", start, err) }()

	err = s.client.do(ctx, http.MethodPost, s.path("/restart"), fix.request(), &state)
	return state, err
}

// Delete ends the session.
func (s *Session) Delete(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { s.client.obs.observe("delete", start, err) }()

	return s.client.do(ctx, http.MethodDelete, s.path(""), nil, nil)
}

// Stream subscribes to live pulses and discoveries. The channel closes when
// ctx is done or the server ends the stream.
func (s *Session) Stream(ctx context.Context) (<-chan StreamMessage, error) {
	u := *s.client.baseURL
	u.Scheme = strings.Replace(u.Scheme, "http", "ws", 1)
	u.Path = strings.TrimRight(u.Path, "/") + s.path("/stream")

	header := http.Header{}
	if s.client.apiKey != "" {
		header.Set("Authorization", "Bearer "+s.client.apiKey)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), header)
	if resp != nil && resp.Body != nil {
		defer func() { _ = resp.Body.Close() }()
	}
	if err != nil {
		if resp != nil && resp.StatusCode >= 400 {
			return nil, decodeError(resp)
		}
		return nil, fmt.Errorf("radar: dial stream: %w", err)
	}

	out := make(chan StreamMessage, 16)
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		_ = conn.Close()
	}()
	go func() {
		defer close(out)
		defer close(done)
		for {
			var msg StreamMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			select {
			case out <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
