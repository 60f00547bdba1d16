package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/radar/internal/domain"
	"github.com/kailas-cloud/radar/internal/domain/catalog"
	"github.com/kailas-cloud/radar/internal/domain/player"
	logpkg "github.com/kailas-cloud/radar/internal/logger"
	gen "github.com/kailas-cloud/radar/internal/transport/generated"
	healthuc "github.com/kailas-cloud/radar/internal/usecase/health"
	sessionuc "github.com/kailas-cloud/radar/internal/usecase/session"
)

const maxBodyBytes = 1 << 16

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// CollectedLister reads a player's collection.
type CollectedLister interface {
	List(ctx context.Context, playerID string) ([]player.Collected, error)
}

// Streamer serves the live feedback stream of a session.
type Streamer interface {
	ServeSession(w http.ResponseWriter, r *http.Request, sessionID string)
	Disconnect(sessionID string)
}

// Server implements generated.ServerInterface for the oapi-codegen chi router.
type Server struct {
	gen.Unimplemented
	sessions      *sessionuc.Manager
	catalog       catalog.Catalog
	collected     CollectedLister
	stream        Streamer
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ gen.ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server. collected and stream can be nil.
func NewServer(
	sessions *sessionuc.Manager,
	cat catalog.Catalog,
	collected CollectedLister,
	stream Streamer,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		sessions:  sessions,
		catalog:   cat,
		collected: collected,
		stream:    stream,
		health:    health,
		logger:    logger,
		errorHandlers: []errorHandler{
			sentinelHandler(domain.ErrSessionNotFound, http.StatusNotFound, gen.ErrorResponseCodeNotFound),
			sentinelHandler(domain.ErrItemNotFound, http.StatusNotFound, gen.ErrorResponseCodeNotFound),
			sentinelHandler(domain.ErrInvalidFix, http.StatusBadRequest, gen.ErrorResponseCodeInvalidFix),
			sentinelHandler(domain.ErrInvalidPlayer, http.StatusBadRequest, gen.ErrorResponseCodeInvalidPlayer),
		},
	}
}

// Routes registers the generated API routes on r. Malformed path
// parameters are answered with a bad_request error.
func (s *Server) Routes(r chi.Router) {
	gen.HandlerWithOptions(s, gen.ChiServerOptions{
		BaseRouter: r,
		ErrorHandlerFunc: func(w http.ResponseWriter, _ *http.Request, err error) {
			s.logger.Debug("invalid request parameter", zap.Error(err))
			writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeBadRequest, "invalid request")
		},
	})
}

// Handler returns a router serving the API with no middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Routes(r)
	return r
}

// ListCatalog handles GET /v1/catalog.
func (s *Server) ListCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, gen.CatalogResponse{Items: s.catalog.Items()})
}

// GetCatalogItem handles GET /v1/catalog/{itemID}.
func (s *Server) GetCatalogItem(w http.ResponseWriter, _ *http.Request, itemID gen.ItemID) {
	item, ok := s.catalog.Get(itemID)
	if !ok {
		s.handleDomainError(w, fmt.Errorf("item %d: %w", itemID, domain.ErrItemNotFound))
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// CreateSession handles POST /v1/sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req gen.CreateSessionJSONRequestBody
	if !decodeBody(w, r, &req) {
		return
	}
	if err := player.ValidateID(req.PlayerID); err != nil {
		s.handleDomainError(w, err)
		return
	}

	c, err := s.sessions.Create(r.Context(), req.PlayerID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, gen.CreateSessionResponse{ID: c.ID(), PlayerID: c.PlayerID()})
}

// GetSession handles GET /v1/sessions/{sessionID}.
func (s *Server) GetSession(w http.ResponseWriter, _ *http.Request, sessionID gen.SessionID) {
	c, ok := s.session(w, sessionID)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snapshotToResponse(c.Snapshot()))
}

// DeleteSession handles DELETE /v1/sessions/{sessionID}.
func (s *Server) DeleteSession(w http.ResponseWriter, _ *http.Request, sessionID gen.SessionID) {
	if err := s.sessions.Delete(sessionID); err != nil {
		s.handleDomainError(w, err)
		return
	}
	if s.stream != nil {
		s.stream.Disconnect(sessionID)
	}
	w.WriteHeader(http.StatusNoContent)
}

// SubmitFix handles POST /v1/sessions/{sessionID}/fixes.
func (s *Server) SubmitFix(w http.ResponseWriter, r *http.Request, sessionID gen.SessionID) {
	c, ok := s.session(w, sessionID)
	if !ok {
		return
	}
	var req gen.SubmitFixJSONRequestBody
	if !decodeBody(w, r, &req) {
		return
	}

	fix, ok := fixFromRequest(req)
	if !ok {
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeInvalidFix, "lat and lon are required")
		return
	}

	ctx := logpkg.WithSession(r.Context(), c.ID(), c.PlayerID())
	upd, err := c.HandleFix(ctx, fix)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updateToResponse(upd))
}

// ConsumeFocus handles POST /v1/sessions/{sessionID}/focus:consume.
func (s *Server) ConsumeFocus(w http.ResponseWriter, _ *http.Request, sessionID gen.SessionID) {
	c, ok := s.session(w, sessionID)
	if !ok {
		return
	}
	f, ok := c.ConsumeFocused()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, f.View())
}

// ResetSession handles POST /v1/sessions/{sessionID}/reset.
func (s *Server) ResetSession(w http.ResponseWriter, _ *http.Request, sessionID gen.SessionID) {
	c, ok := s.session(w, sessionID)
	if !ok {
		return
	}
	c.Reset()
	writeJSON(w, http.StatusOK, snapshotToResponse(c.Snapshot()))
}

// RestartSession handles POST /v1/sessions/{sessionID}/restart.
func (s *Server) RestartSession(w http.ResponseWriter, r *http.Request, sessionID gen.SessionID) {
	c, ok := s.session(w, sessionID)
	if !ok {
		return
	}
	var req gen.RestartSessionJSONRequestBody
	if !decodeBody(w, r, &req) {
		return
	}
	fix, ok := fixFromRequest(req)
	if !ok {
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeInvalidFix, "lat and lon are required")
		return
	}

	ctx := logpkg.WithSession(r.Context(), c.ID(), c.PlayerID())
	if err := c.Restart(ctx, fix); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshotToResponse(c.Snapshot()))
}

// StreamSession handles GET /v1/sessions/{sessionID}/stream.
func (s *Server) StreamSession(w http.ResponseWriter, r *http.Request, sessionID gen.SessionID) {
	c, ok := s.session(w, sessionID)
	if !ok {
		return
	}
	if s.stream == nil {
		writeError(w, http.StatusNotFound, gen.ErrorResponseCodeNotFound, "streaming disabled")
		return
	}
	s.stream.ServeSession(w, r, c.ID())
}

// ListCollected handles GET /v1/players/{playerID}/collected.
func (s *Server) ListCollected(w http.ResponseWriter, r *http.Request, playerID string) {
	if err := player.ValidateID(playerID); err != nil {
		s.handleDomainError(w, err)
		return
	}
	if s.collected == nil {
		writeJSON(w, http.StatusOK, gen.CollectedResponse{PlayerID: playerID, Items: []gen.CollectedItem{}})
		return
	}

	items, err := s.collected.List(r.Context(), playerID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, collectedToResponse(playerID, items, s.catalog))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, gen.HealthResponse{
		Status:   string(report.Status),
		Checks:   checks,
		Sessions: report.Sessions,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) session(w http.ResponseWriter, id gen.SessionID) (*sessionuc.Controller, bool) {
	c, err := s.sessions.Get(id)
	if err != nil {
		s.handleDomainError(w, err)
		return nil, false
	}
	return c, true
}

// decodeBody reads a JSON body into v. An empty body leaves v untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code gen.ErrorResponseCode, message string) {
	writeJSON(w, status, gen.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrSessionNotFound,
		domain.ErrItemNotFound,
		domain.ErrInvalidFix,
		domain.ErrInvalidPlayer,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func sentinelHandler(sentinel error, status int, code gen.ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			s.logger.Debug("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, gen.ErrorResponseCodeInternalError, "internal error")
}
